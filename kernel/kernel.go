package kernel

import (
	"fmt"
	"math"

	"github.com/catchbasin/flowroute/rasterio"
)

// Size returns the odd, centered footprint of a kernel raster built
// for maxDistance: 2*ceil(maxDistance)+1 pixels on each side, with the
// center pixel at Radius(maxDistance).
func Size(maxDistance float64) int {
	return 2*Radius(maxDistance) + 1
}

// Radius returns the pixel offset of a kernel's center from its edge:
// ceil(maxDistance).
func Radius(maxDistance float64) int {
	return int(math.Ceil(maxDistance))
}

// distanceFunc maps a pixel's distance from the kernel center to its
// weight, already zeroed beyond maxDistance by the caller.
type distanceFunc func(distance float64) float64

// Dichotomous builds a binary kernel: 1 within maxDistance, 0 beyond.
// Never normalized.
func Dichotomous(ds rasterio.Dataset, maxDistance float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	return createDistanceBasedKernel(ds, maxDistance, false, opts, func(d float64) float64 {
		if d <= maxDistance {
			return 1
		}
		return 0
	})
}

// Density builds an Epanechnikov-style density kernel: 0 beyond
// maxDistance, 0.75*(1-(d/maxDistance)^2) within it. Never normalized.
func Density(ds rasterio.Dataset, maxDistance float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	return createDistanceBasedKernel(ds, maxDistance, false, opts, func(d float64) float64 {
		if d > maxDistance {
			return 0
		}
		r := d / maxDistance
		return 0.75 * (1 - r*r)
	})
}

// Exponential builds an exponential-decay kernel, exp(-d/maxDistance)
// within maxDistance and 0 beyond, then normalized to sum to 1.
func Exponential(ds rasterio.Dataset, maxDistance float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	return createDistanceBasedKernel(ds, maxDistance, true, opts, func(d float64) float64 {
		if d > maxDistance {
			return 0
		}
		return math.Exp(-d / maxDistance)
	})
}

// Linear builds a linear-decay kernel, (maxDistance-d)/maxDistance
// within maxDistance and 0 beyond, then normalized to sum to 1.
func Linear(ds rasterio.Dataset, maxDistance float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	return createDistanceBasedKernel(ds, maxDistance, true, opts, func(d float64) float64 {
		if d > maxDistance {
			return 0
		}
		return (maxDistance - d) / maxDistance
	})
}

// Gaussian builds a gaussian kernel with standard deviation sigma,
// truncated at nStdDev standard deviations and normalized to sum to 1.
func Gaussian(ds rasterio.Dataset, sigma, nStdDev float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	maxDistance := sigma * nStdDev
	return createDistanceBasedKernel(ds, maxDistance, true, opts, func(d float64) float64 {
		if d > maxDistance {
			return 0
		}
		return 1 / (2 * math.Pi * sigma * sigma) * math.Exp(-(d*d)/(2*sigma*sigma))
	})
}

// createDistanceBasedKernel writes fn(distance-from-center) into every
// pixel of a new Float32 raster sized to match ds, then optionally
// rescales the whole raster so its values sum to 1 (a second full
// pass, mirroring kernels.py's compute-then-normalize shape). ds must
// already be sized to Size(maxDistance) on each side; the caller is
// responsible for allocating it that way (the raster collaborator
// never resizes itself).
func createDistanceBasedKernel(ds rasterio.Dataset, maxDistance float64, normalize bool, opts []Option, fn distanceFunc) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	meta, err := ds.Metadata()
	if err != nil {
		return nil, err
	}
	size := Size(maxDistance)
	if meta.Width != size || meta.Height != size {
		return nil, fmt.Errorf("%w: want %dx%d, got %dx%d", ErrBadKernelSize, size, size, meta.Width, meta.Height)
	}
	radius := Radius(maxDistance)

	creation := rasterio.DefaultCreationOptions()
	kernelDS, err := ds.CreateFrom(cfg.scratchPrefix+".tif", 1, rasterio.Float32, NoData, 0, creation)
	if err != nil {
		return nil, fmt.Errorf("kernel: create raster: %w", err)
	}
	kr, err := rasterio.Open(kernelDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("kernel: open raster: %w", err)
	}

	var sum float64
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x-radius), float64(y-radius))
			v := fn(d)
			if err := kr.Set(x, y, v); err != nil {
				kr.Close()
				return nil, err
			}
			sum += v
		}
	}

	if normalize && sum != 0 {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v, err := kr.Get(x, y)
				if err != nil {
					kr.Close()
					return nil, err
				}
				if err := kr.Set(x, y, v/sum); err != nil {
					kr.Close()
					return nil, err
				}
			}
		}
	}
	return kr, nil
}
