package chandist

import (
	"context"

	"github.com/catchbasin/flowroute/internal/progress"
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// D8 computes downstream distance-to-channel over dir (a D8 direction
// raster) given channel (a 0/1 channel mask). weight
// may be nil, defaulting every step's cost to its geometric length.
// The returned raster is float64, nodata NoDataDistance, open
// read-write; the caller closes it.
func D8(dir, channel *rasterio.ManagedRaster, ds rasterio.Dataset, dirNoData float64, weight *rasterio.ManagedRaster, opts ...Option) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	distDS, err := ds.CreateFrom(cfg.scratchPrefix+"_dist_d8.tif", 1, rasterio.Float64, NoDataDistance, NoDataDistance, creation)
	if err != nil {
		return nil, err
	}
	dist, err := rasterio.Open(distDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, err
	}

	if err := runD8(cfg.ctx, dir, channel, dist, dirNoData, weight, cfg.reporter); err != nil {
		dist.Close()
		return nil, err
	}
	return dist, nil
}

func runD8(ctx context.Context, dir, channel, dist *rasterio.ManagedRaster, dirNoData float64, weight *rasterio.ManagedRaster, reporter *progress.Reporter) error {
	w, h := dir.Width(), dir.Height()
	var q neighbor.Queue

	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			isChan, err := channel.Get(x, y)
			if err != nil {
				return err
			}
			if isChan != 1 {
				continue
			}
			if err := dist.Set(x, y, 0); err != nil {
				return err
			}
			q.Push(neighbor.Coord{X: int32(x), Y: int32(y)})
		}
	}

	total := int64(w) * int64(h)
	var processed int64
	for q.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		processed++
		if reporter != nil {
			reporter.Report(processed, total)
		}
		cur, _ := q.Pop()
		d, err := dist.Get(int(cur.X), int(cur.Y))
		if err != nil {
			return err
		}
		for i := 0; i < 8; i++ {
			nb := neighbor.Step(cur.X, cur.Y, i)
			if !dir.InBounds(int(nb.X), int(nb.Y)) {
				continue
			}
			nv, err := dir.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if nv == dirNoData || int(nv) != neighbor.Reverse[i] {
				continue
			}
			isChan, err := channel.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if isChan == 1 {
				continue
			}
			already, err := dist.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if already != NoDataDistance {
				continue
			}
			cost, err := costAt(weight, nb, i)
			if err != nil {
				return err
			}
			if err := dist.Set(int(nb.X), int(nb.Y), d+cost); err != nil {
				return err
			}
			q.Push(nb)
		}
	}
	if reporter != nil {
		reporter.Done(total)
	}
	return nil
}
