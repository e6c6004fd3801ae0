package rasterio

import "errors"

// ErrBadBlockGeometry indicates the dataset's block dimensions are not
// powers of two: block-aligned coordinates
// must reduce to shifts and masks.
var ErrBadBlockGeometry = errors.New("rasterio: block dimensions must be powers of two")

// ErrBadBand indicates an out-of-range band index.
var ErrBadBand = errors.New("rasterio: band index out of range")

// ErrClosed indicates an operation was attempted on a ManagedRaster
// after Close. This module reports it rather than corrupting state
// silently.
var ErrClosed = errors.New("rasterio: managed raster is closed")

// ErrReadOnly indicates Set was called on a raster opened ModeRead.
var ErrReadOnly = errors.New("rasterio: managed raster is read-only")

// ErrOutOfBounds indicates a pixel coordinate outside [0,W)x[0,H).
var ErrOutOfBounds = errors.New("rasterio: pixel coordinate out of bounds")
