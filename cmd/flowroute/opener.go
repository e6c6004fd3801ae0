package main

import (
	"errors"

	"github.com/catchbasin/flowroute/rasterio"
)

// ErrNoBackend is returned by every subcommand: this module never
// ships a GDAL/OGR-backed routing.Opener (see routing/opener.go),
// only the interface a deployment wires its own raster/vector binding
// to. stubOpener exists so the CLI's flag parsing and dispatch are
// exercised end to end without one.
var ErrNoBackend = errors.New("no raster/vector backend configured; build flowroute with a routing.Opener wired to your raster/vector library")

type stubOpener struct{}

func (stubOpener) OpenRaster(path string, mode rasterio.Mode) (rasterio.Dataset, error) {
	return nil, ErrNoBackend
}

func (stubOpener) OpenVector(path string) (rasterio.VectorLayer, error) {
	return nil, ErrNoBackend
}
