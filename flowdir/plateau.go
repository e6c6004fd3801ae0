package flowdir

import (
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// slopeFactor returns the diagonal-correction multiplier for
// direction i: 1/√2 for a diagonal step, 1 for a cardinal one.
func slopeFactor(i int) float64 {
	if neighbor.IsDiagonal(i) {
		return neighbor.InvDiagCost
	}
	return 1
}

// bestDownhill returns the direction and adjusted slope of the
// steepest strictly-lower, real (in-bounds, non-nodata) neighbour of
// (x, y), or dir < 0 if none exists. Ties (equal adjusted slope) keep
// the first direction scanned.
func bestDownhill(r *rasterio.ManagedRaster, nodata float64, x, y int32, v float64) (dir int, slope float64, err error) {
	dir = -1
	for i := 0; i < 8; i++ {
		nb := neighbor.Step(x, y, i)
		if !r.InBounds(int(nb.X), int(nb.Y)) {
			continue
		}
		nv, gerr := r.Get(int(nb.X), int(nb.Y))
		if gerr != nil {
			return -1, 0, gerr
		}
		if nv == nodata {
			continue
		}
		s := (v - nv) * slopeFactor(i)
		if s > slope {
			slope = s
			dir = i
		}
	}
	return dir, slope, nil
}

// firstOffEdge returns the direction of the first off-raster or
// nodata neighbour of c, scanned in direction order, or -1 if none.
func firstOffEdge(r *rasterio.ManagedRaster, nodata float64, c neighbor.Coord) (int, error) {
	for i := 0; i < 8; i++ {
		nb := neighbor.Step(c.X, c.Y, i)
		if !r.InBounds(int(nb.X), int(nb.Y)) {
			return i, nil
		}
		nv, err := r.Get(int(nb.X), int(nb.Y))
		if err != nil {
			return -1, err
		}
		if nv == nodata {
			return i, nil
		}
	}
	return -1, nil
}

// growPlateau BFS-expands the maximal connected same-elevation region
// containing (sx, sy), regardless of whether individual members
// already resolved in a local-slope pass, marking every visited cell
// in regionMask.
func growPlateau(dem, regionMask *rasterio.ManagedRaster, sx, sy int32, height float64) ([]neighbor.Coord, error) {
	var q neighbor.Queue
	start := neighbor.Coord{X: sx, Y: sy}
	if err := regionMask.Set(int(sx), int(sy), 1); err != nil {
		return nil, err
	}
	members := []neighbor.Coord{start}
	q.Push(start)

	for q.Len() > 0 {
		c, _ := q.Pop()
		for i := 0; i < 8; i++ {
			nb := neighbor.Step(c.X, c.Y, i)
			if !dem.InBounds(int(nb.X), int(nb.Y)) {
				continue
			}
			nv, err := dem.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return nil, err
			}
			if nv != height {
				continue
			}
			visited, err := regionMask.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return nil, err
			}
			if visited != 0 {
				continue
			}
			if err := regionMask.Set(int(nb.X), int(nb.Y), 1); err != nil {
				return nil, err
			}
			members = append(members, nb)
			q.Push(nb)
		}
	}
	return members, nil
}
