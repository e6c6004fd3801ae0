package routing

import "github.com/catchbasin/flowroute/rasterio"

// Opener resolves a file path to a raster or vector collaborator.
// This module never implements Opener itself outside of tests: a real
// deployment backs it with a GDAL/OGR binding or equivalent.
type Opener interface {
	OpenRaster(path string, mode rasterio.Mode) (rasterio.Dataset, error)
	OpenVector(path string) (rasterio.VectorLayer, error)
}

// Engine dispatches the public entry points against one Opener.
type Engine struct {
	open Opener
}

// New builds an Engine backed by open.
func New(open Opener) *Engine {
	return &Engine{open: open}
}

func validateRasterArg(path string, band int) error {
	if path == "" || band < 1 {
		return ErrInvalidArgument
	}
	return nil
}

// openBand validates (path, band), opens the raster at path, and
// returns both the raw Dataset (needed by callers to derive scratch
// rasters) and the requested band as a ManagedRaster.
func (e *Engine) openBand(path string, band int, mode rasterio.Mode) (rasterio.Dataset, *rasterio.ManagedRaster, error) {
	if err := validateRasterArg(path, band); err != nil {
		return nil, nil, err
	}
	ds, err := e.open.OpenRaster(path, mode)
	if err != nil {
		return nil, nil, err
	}
	mr, err := rasterio.Open(ds, band, mode)
	if err != nil {
		ds.Close()
		return nil, nil, err
	}
	return ds, mr, nil
}
