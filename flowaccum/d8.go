package flowaccum

import (
	"context"

	"github.com/catchbasin/flowroute/internal/progress"
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// D8 computes single-flow-direction accumulation over dir (a D8
// direction raster, read through ds). weight may be
// nil, defaulting every pixel's own contribution to 1. The returned
// raster is float64, nodata NoDataAccum, open read-write; the caller
// closes it.
func D8(dir *rasterio.ManagedRaster, ds rasterio.Dataset, dirNoData float64, weight *rasterio.ManagedRaster, opts ...Option) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	accumDS, err := ds.CreateFrom(cfg.scratchPrefix+"_accum_d8.tif", 1, rasterio.Float64, NoDataAccum, NoDataAccum, creation)
	if err != nil {
		return nil, err
	}
	accum, err := rasterio.Open(accumDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, err
	}

	weightAt := weightFuncOf(weight)

	flowsInto := func(x, y int32, i int) (bool, float64, error) {
		nb := neighbor.Step(x, y, i)
		if !dir.InBounds(int(nb.X), int(nb.Y)) {
			return false, 0, nil
		}
		nv, err := dir.Get(int(nb.X), int(nb.Y))
		if err != nil {
			return false, 0, err
		}
		if nv == dirNoData || int(nv) != neighbor.Reverse[i] {
			return false, 0, nil
		}
		return true, 1, nil
	}

	isRoot := func(x, y int32) (bool, error) {
		v, err := dir.Get(int(x), int(y))
		if err != nil {
			return false, err
		}
		nb := neighbor.Step(x, y, int(v))
		if !dir.InBounds(int(nb.X), int(nb.Y)) {
			return true, nil
		}
		nv, err := dir.Get(int(nb.X), int(nb.Y))
		if err != nil {
			return false, err
		}
		return nv == dirNoData, nil
	}

	if err := scanRoots(cfg.ctx, dir, accum, dirNoData, weightAt, flowsInto, isRoot, cfg.reporter); err != nil {
		accum.Close()
		return nil, err
	}
	return accum, nil
}

// weightFuncOf adapts an optional weight raster into a weightFunc
// defaulting to 1 per pixel when weight is nil.
func weightFuncOf(weight *rasterio.ManagedRaster) weightFunc {
	if weight == nil {
		return func(x, y int32) (float64, error) { return 1, nil }
	}
	return func(x, y int32) (float64, error) { return weight.Get(int(x), int(y)) }
}

// scanRoots performs the outer tile scan shared by D8 and MFD: every
// unvisited root pixel drains its upstream closure onto the explicit
// stack. A pixel whose own direction is nodata is a DEM-nodata pixel,
// not a root — it is skipped and left at NoDataAccum.
func scanRoots(ctx context.Context, dir, accum *rasterio.ManagedRaster, dirNoData float64, weight weightFunc, flowsInto upstreamFunc, isRoot func(x, y int32) (bool, error), reporter *progress.Reporter) error {
	w, h := dir.Width(), dir.Height()
	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reporter != nil {
			reporter.Report(int64(y), int64(h))
		}
		for x := 0; x < w; x++ {
			done, err := accum.Get(x, y)
			if err != nil {
				return err
			}
			if done != NoDataAccum {
				continue
			}
			dv, err := dir.Get(x, y)
			if err != nil {
				return err
			}
			if dv == dirNoData {
				continue
			}
			root, err := isRoot(int32(x), int32(y))
			if err != nil {
				return err
			}
			if !root {
				continue
			}
			if err := run(accum, weight, flowsInto, int32(x), int32(y)); err != nil {
				return err
			}
		}
	}
	if reporter != nil {
		reporter.Done(int64(h))
	}
	return nil
}
