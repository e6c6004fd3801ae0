// Package pitfill produces a copy of a DEM in which every
// hydrologically undrained region (pit) is raised to the elevation of
// its lowest pour point, leaving drained flats (plateaus) unchanged.
//
// Algorithm: scan for an unvisited seed pixel; if any neighbour drains
// it locally, skip it; otherwise BFS its same-height region, marking
// every visited cell in a flat-region mask. A region with any
// draining member (lower, nodata, or off-raster neighbour) is a
// plateau and is left alone. A region with none is a pit: seed a
// min-heap with every pit-floor cell and expand outward in increasing
// elevation until the first pop whose neighbour is off-raster, nodata,
// or strictly lower and unvisited — that popped elevation is the fill
// height. A final BFS from the pit raises every connected pixel below
// that height.
//
// Grounded on gridgraph.ConnectedComponents (BFS region growing over a
// 2D grid; that package is since deleted — see DESIGN.md) for the
// flat-region BFS shape, and on graph/algorithms/dijkstra.go's
// container/heap.Interface wrapper for the pour-point search.
package pitfill
