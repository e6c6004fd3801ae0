package chandist

import (
	"context"

	"github.com/catchbasin/flowroute/internal/progress"
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// MFD computes downstream distance-to-channel over dir (an MFD
// direction raster) given channel. Each pixel's
// distance is the weight-fraction-weighted sum of (cost + distance)
// over its outgoing directions; a purely-nodata downstream neighbour
// contributes nothing.
func MFD(dir, channel *rasterio.ManagedRaster, ds rasterio.Dataset, dirNoData float64, weight *rasterio.ManagedRaster, opts ...Option) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	distDS, err := ds.CreateFrom(cfg.scratchPrefix+"_dist_mfd.tif", 1, rasterio.Float64, NoDataDistance, NoDataDistance, creation)
	if err != nil {
		return nil, err
	}
	dist, err := rasterio.Open(distDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, err
	}

	if err := runMFD(cfg.ctx, dir, channel, dist, dirNoData, weight, cfg.reporter); err != nil {
		dist.Close()
		return nil, err
	}
	return dist, nil
}

type mfdFrame struct {
	X, Y    int32
	Next    int8
	Running float64
}

func runMFD(ctx context.Context, dir, channel, dist *rasterio.ManagedRaster, dirNoData float64, weight *rasterio.ManagedRaster, reporter *progress.Reporter) error {
	w, h := dir.Width(), dir.Height()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			isChan, err := channel.Get(x, y)
			if err != nil {
				return err
			}
			if isChan == 1 {
				if err := dist.Set(x, y, 0); err != nil {
					return err
				}
			}
		}
	}

	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reporter != nil {
			reporter.Report(int64(y), int64(h))
		}
		for x := 0; x < w; x++ {
			done, err := dist.Get(x, y)
			if err != nil {
				return err
			}
			if done != NoDataDistance {
				continue
			}
			v, err := dir.Get(x, y)
			if err != nil {
				return err
			}
			if v == dirNoData {
				continue
			}
			if err := walkMFD(dir, channel, dist, dirNoData, weight, int32(x), int32(y)); err != nil {
				return err
			}
		}
	}
	if reporter != nil {
		reporter.Done(int64(h))
	}
	return nil
}

// walkMFD drains the downstream closure of one root pixel onto an
// explicit stack, grounded on the same dfsDinicPush preemption-
// resumption idiom as flowaccum.run, but walking a pixel's own
// outgoing MFD weights rather than pulling from its incoming
// neighbours.
func walkMFD(dir, channel, dist *rasterio.ManagedRaster, dirNoData float64, weight *rasterio.ManagedRaster, rootX, rootY int32) error {
	stack := []mfdFrame{{X: rootX, Y: rootY, Next: 0, Running: 0}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		cellBits, err := dir.Get(int(top.X), int(top.Y))
		if err != nil {
			return err
		}
		cell := neighbor.MFDCell(uint32(cellBits))
		sum := cell.Sum()

		preempted := false
		for i := int(top.Next); i < 8; i++ {
			wi := cell.Weight(i)
			if wi == 0 || sum == 0 {
				continue
			}
			frac := float64(wi) / float64(sum)
			nb := neighbor.Step(top.X, top.Y, i)
			if !dir.InBounds(int(nb.X), int(nb.Y)) {
				continue
			}
			cost, err := costAt(weight, nb, i)
			if err != nil {
				return err
			}
			isChan, err := channel.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if isChan == 1 {
				top.Running += frac * cost
				continue
			}
			nv, err := dir.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if nv == dirNoData {
				continue
			}
			nd, err := dist.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if nd != NoDataDistance {
				top.Running += frac * (cost + nd)
				continue
			}
			top.Next = int8(i)
			stack = append(stack, mfdFrame{X: nb.X, Y: nb.Y, Next: 0, Running: 0})
			preempted = true
			break
		}
		if preempted {
			continue
		}
		if err := dist.Set(int(top.X), int(top.Y), top.Running); err != nil {
			return err
		}
		stack = stack[:len(stack)-1]
	}
	return nil
}
