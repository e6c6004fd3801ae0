// Package rasterio defines the external raster/vector I/O collaborator
// contracts this module depends on but does not implement, and the
// ManagedRaster pixel-addressable cache built on top of them.
//
// What:
//
//   - Dataset and VectorLayer are the seams a real georeferenced
//     raster/vector library (GDAL/OGR or equivalent) would satisfy:
//     tile reads/writes, nodata, geotransform, projection, and
//     rasterize/polygonize for the vector side.
//   - ManagedRaster wraps one tilecache.Cache over a Dataset, giving
//     algorithms Get(x,y)/Set(x,y,v) pixel access without per-pixel
//     calls across the Dataset boundary.
//
// Why:
//
//   - Reprojection, resampling, and format support are explicitly out
//     of scope (spec §1); this package only needs enough of a raster
//     library's surface to drive block-cached pixel access and to
//     create derived rasters from a template.
//
// This package ships no production Dataset/VectorLayer implementation.
// See rasterio/rastertest for an in-memory fake used by this module's
// own tests.
package rasterio
