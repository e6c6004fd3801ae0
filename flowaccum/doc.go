// Package flowaccum computes flow accumulation over a D8 or MFD
// flow-direction raster: component F of the routing engine. Each
// variant walks the implicit upstream graph with an explicit,
// resumable DFS stack rather than recursion, so traversal depth is
// bounded only by available heap memory.
package flowaccum
