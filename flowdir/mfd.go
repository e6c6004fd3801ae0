package flowdir

import (
	"context"
	"math"

	"github.com/catchbasin/flowroute/internal/progress"
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// NoDataMFD is the nodata sentinel for an MFD direction raster: the
// all-zero cell, meaning "no outflow defined".
const NoDataMFD = 0.0

// MFD computes multiple-flow-direction routing over dem. The returned
// raster is int32-valued (packed MFD cells), nodata NoDataMFD, open
// read-write; the caller closes it.
//
// Interior plateau members receive a distribution over only those
// same-height neighbours strictly closer to a drain; a member with no
// such neighbour, and every member of a plateau with no drain at all,
// is left at NoDataMFD.
func MFD(dem *rasterio.ManagedRaster, ds rasterio.Dataset, demNoData float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	dirDS, err := ds.CreateFrom(cfg.scratchPrefix+"_mfd.tif", 1, rasterio.Int32, NoDataMFD, NoDataMFD, creation)
	if err != nil {
		return nil, err
	}
	dir, err := rasterio.Open(dirDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, err
	}

	regionDS, err := ds.CreateFrom(cfg.scratchPrefix+"_mfdregion.tif", 1, rasterio.Byte, 0, 0, creation)
	if err != nil {
		dir.Close()
		return nil, err
	}
	region, err := rasterio.Open(regionDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		dir.Close()
		return nil, err
	}
	defer region.Close()

	if err := runMFD(cfg.ctx, dem, dir, region, demNoData, cfg.reporter); err != nil {
		dir.Close()
		return nil, err
	}
	return dir, nil
}

func runMFD(ctx context.Context, dem, dir, region *rasterio.ManagedRaster, nodata float64, reporter *progress.Reporter) error {
	w, h := dem.Width(), dem.Height()

	// Phase 1: pack the real-downhill distribution for every pixel
	// that has at least one strictly-lower real neighbour.
	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reporter != nil {
			reporter.Report(int64(y), int64(2*h))
		}
		for x := 0; x < w; x++ {
			v, err := dem.Get(x, y)
			if err != nil {
				return err
			}
			if v == nodata {
				continue
			}
			weights, err := downhillWeights(dem, nodata, int32(x), int32(y), v)
			if err != nil {
				return err
			}
			if cell := neighbor.PackProportional(weights); cell != 0 {
				if err := dir.Set(x, y, float64(cell)); err != nil {
					return err
				}
			}
		}
	}

	// Phase 2-4: plateau classification, distance propagation, and
	// interior MFD assignment.
	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reporter != nil {
			reporter.Report(int64(h+y), int64(2*h))
		}
		for x := 0; x < w; x++ {
			visited, err := region.Get(x, y)
			if err != nil {
				return err
			}
			if visited != 0 {
				continue
			}
			v, err := dem.Get(x, y)
			if err != nil {
				return err
			}
			if v == nodata {
				continue
			}
			members, err := growPlateau(dem, region, int32(x), int32(y), v)
			if err != nil {
				return err
			}
			if err := resolvePlateauMFD(dem, dir, nodata, members); err != nil {
				return err
			}
		}
	}
	if reporter != nil {
		reporter.Done(int64(2 * h))
	}
	return nil
}

// downhillWeights returns, per direction, the adjusted slope toward
// every strictly-lower real neighbour of (x, y); zero elsewhere.
func downhillWeights(r *rasterio.ManagedRaster, nodata float64, x, y int32, v float64) ([8]float64, error) {
	var weights [8]float64
	for i := 0; i < 8; i++ {
		nb := neighbor.Step(x, y, i)
		if !r.InBounds(int(nb.X), int(nb.Y)) {
			continue
		}
		nv, err := r.Get(int(nb.X), int(nb.Y))
		if err != nil {
			return weights, err
		}
		if nv == nodata {
			continue
		}
		if s := (v - nv) * slopeFactor(i); s > 0 {
			weights[i] = s
		}
	}
	return weights, nil
}

// nodataDrainWeights returns, per direction, the diagonal-corrected
// unit weight toward every off-raster or nodata neighbour of c; zero
// elsewhere (phase 2's nodata-drain distribution).
func nodataDrainWeights(r *rasterio.ManagedRaster, nodata float64, c neighbor.Coord) ([8]float64, error) {
	var weights [8]float64
	for i := 0; i < 8; i++ {
		nb := neighbor.Step(c.X, c.Y, i)
		if !r.InBounds(int(nb.X), int(nb.Y)) {
			weights[i] = slopeFactor(i)
			continue
		}
		nv, err := r.Get(int(nb.X), int(nb.Y))
		if err != nil {
			return weights, err
		}
		if nv == nodata {
			weights[i] = slopeFactor(i)
		}
	}
	return weights, nil
}

// resolvePlateauMFD mirrors resolvePlateauD8's drain classification
// and shortest-path distance propagation, then assigns every interior
// member an MFD distribution over same-height neighbours strictly
// closer to a drain (phase 4). Same members/distance-map memory
// tradeoff as resolvePlateauD8.
func resolvePlateauMFD(dem, dir *rasterio.ManagedRaster, nodata float64, members []neighbor.Coord) error {
	type seed struct {
		c    neighbor.Coord
		cell neighbor.MFDCell
	}
	var downhill, nodataDrains []seed

	for _, c := range members {
		curBits, err := dir.Get(int(c.X), int(c.Y))
		if err != nil {
			return err
		}
		if curBits != NoDataMFD {
			downhill = append(downhill, seed{c: c, cell: neighbor.MFDCell(uint32(curBits))})
			continue
		}
		if len(members) == 1 {
			continue
		}
		weights, err := nodataDrainWeights(dem, nodata, c)
		if err != nil {
			return err
		}
		if cell := neighbor.PackProportional(weights); cell != 0 {
			nodataDrains = append(nodataDrains, seed{c: c, cell: cell})
		}
	}

	var seeds []seed
	switch {
	case len(downhill) > 0:
		seeds = downhill
	case len(nodataDrains) > 0:
		for _, s := range nodataDrains {
			if err := dir.Set(int(s.c.X), int(s.c.Y), float64(s.cell)); err != nil {
				return err
			}
		}
		seeds = nodataDrains
	default:
		return nil
	}

	const inf = math.MaxFloat64
	dist := make(map[neighbor.Coord]float64, len(members))
	isSeed := make(map[neighbor.Coord]bool, len(seeds))
	for _, c := range members {
		dist[c] = inf
	}
	var q neighbor.Queue
	for _, s := range seeds {
		dist[s.c] = 0
		isSeed[s.c] = true
		q.Push(s.c)
	}

	for q.Len() > 0 {
		c, _ := q.Pop()
		d := dist[c]
		for i := 0; i < 8; i++ {
			nb := neighbor.Step(c.X, c.Y, i)
			nd, ok := dist[nb]
			if !ok {
				continue
			}
			cand := d + neighbor.StepCost(i)
			if cand < nd {
				dist[nb] = cand
				q.Push(nb)
			}
		}
	}

	for _, c := range members {
		if isSeed[c] {
			continue
		}
		var weights [8]float64
		for i := 0; i < 8; i++ {
			nb := neighbor.Step(c.X, c.Y, i)
			nd, ok := dist[nb]
			if !ok || nd >= dist[c] {
				continue
			}
			weights[i] = slopeFactor(i)
		}
		if cell := neighbor.PackProportional(weights); cell != 0 {
			if err := dir.Set(int(c.X), int(c.Y), float64(cell)); err != nil {
				return err
			}
		}
	}
	return nil
}
