package flowaccum

import (
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// MFD computes multiple-flow-direction accumulation over dir (an MFD
// direction raster, read through ds). weight may be
// nil. The returned raster is float64, nodata NoDataAccum, open
// read-write; the caller closes it.
//
// A pixel whose entire MFD distribution points off-raster or at
// nodata (the promoted nodata-drain case of flowdir.MFD) is a root
// too, even though its cell is nonzero: none of its weight ever lands
// on an in-bounds neighbour, so nobody would otherwise pull it onto
// the stack.
func MFD(dir *rasterio.ManagedRaster, ds rasterio.Dataset, dirNoData float64, weight *rasterio.ManagedRaster, opts ...Option) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	accumDS, err := ds.CreateFrom(cfg.scratchPrefix+"_accum_mfd.tif", 1, rasterio.Float64, NoDataAccum, NoDataAccum, creation)
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
		cell := neighbor.MFDCell(uint32(nv))
		j := neighbor.Reverse[i]
		wj := cell.Weight(j)
		if wj == 0 {
			return false, 0, nil
		}
		return true, cell.Fraction(j), nil
	}

	isRoot := func(x, y int32) (bool, error) {
		v, err := dir.Get(int(x), int(y))
		if err != nil {
			return false, err
		}
		cell := neighbor.MFDCell(uint32(v))
		for i := 0; i < 8; i++ {
			if cell.Weight(i) == 0 {
				continue
			}
			nb := neighbor.Step(x, y, i)
			if !dir.InBounds(int(nb.X), int(nb.Y)) {
				continue
			}
			nv, err := dir.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return false, err
			}
			if nv != dirNoData {
				return false, nil
			}
		}
		return true, nil
	}

	if err := scanRoots(cfg.ctx, dir, accum, dirNoData, weightAt, flowsInto, isRoot, cfg.reporter); err != nil {
		accum.Close()
		return nil, err
	}
	return accum, nil
}
