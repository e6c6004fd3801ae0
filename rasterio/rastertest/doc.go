// Package rastertest provides an in-memory fake of rasterio.Dataset
// and rasterio.VectorLayer for this module's own tests. It is not a
// production raster/vector library — that is treated as an external
// collaborator out of scope for this module — and lives under
// rastertest specifically so production code never imports it.
package rastertest
