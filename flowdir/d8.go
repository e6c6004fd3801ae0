package flowdir

import (
	"context"
	"math"

	"github.com/catchbasin/flowroute/internal/progress"
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// NoDataD8 is the nodata sentinel for a D8 direction raster.
const NoDataD8 = 128.0

// D8 computes single-flow-direction routing over dem (read through
// ds, dem's own dataset collaborator). The returned
// raster is uint8-valued (0..7), nodata NoDataD8, open read-write; the
// caller closes it.
func D8(dem *rasterio.ManagedRaster, ds rasterio.Dataset, demNoData float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	dirDS, err := ds.CreateFrom(cfg.scratchPrefix+"_d8.tif", 1, rasterio.Byte, NoDataD8, NoDataD8, creation)
	if err != nil {
		return nil, err
	}
	dir, err := rasterio.Open(dirDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, err
	}

	regionDS, err := ds.CreateFrom(cfg.scratchPrefix+"_d8region.tif", 1, rasterio.Byte, 0, 0, creation)
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

	if err := runD8(cfg.ctx, dem, dir, region, demNoData, cfg.reporter); err != nil {
		dir.Close()
		return nil, err
	}
	return dir, nil
}

func runD8(ctx context.Context, dem, dir, region *rasterio.ManagedRaster, nodata float64, reporter *progress.Reporter) error {
	w, h := dem.Width(), dem.Height()

	// Phase 1: every pixel with a real strictly-lower neighbour
	// resolves locally, independent of plateau structure.
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
			i, slope, err := bestDownhill(dem, nodata, int32(x), int32(y), v)
			if err != nil {
				return err
			}
			if i >= 0 && slope > 0 {
				if err := dir.Set(x, y, float64(i)); err != nil {
					return err
				}
			}
		}
	}

	// Phase 2/3: plateau discovery and shortest-path assignment.
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
			if err := resolvePlateauD8(dem, dir, nodata, members); err != nil {
				return err
			}
		}
	}
	if reporter != nil {
		reporter.Done(int64(2 * h))
	}
	return nil
}

// resolvePlateauD8 classifies the members of one same-elevation region
// and, where a pour point exists, runs the shortest-path BFS assigning
// flow direction to interior members. A singleton region (no
// same-height neighbour at all) with no real downhill neighbour is an
// edge drain with no in-raster destination and is left unresolved,
// matching the failure semantics for cells that cannot be assigned a
// direction pointing at an actual pixel.
//
// members and the shortest-path distances computed over it are held
// in memory for the life of one plateau; an out-of-core raster with a
// single plateau spanning most of its area would hold that much of
// the region in memory at once rather than streaming it through the
// scratch distance raster.
func resolvePlateauD8(dem, dir *rasterio.ManagedRaster, nodata float64, members []neighbor.Coord) error {
	type seed struct {
		c neighbor.Coord
		d int
	}
	var downhill, nodataDrains []seed

	for _, c := range members {
		cur, err := dir.Get(int(c.X), int(c.Y))
		if err != nil {
			return err
		}
		if cur != NoDataD8 {
			downhill = append(downhill, seed{c: c, d: int(cur)})
			continue
		}
		if len(members) == 1 {
			continue
		}
		fallDir, err := firstOffEdge(dem, nodata, c)
		if err != nil {
			return err
		}
		if fallDir >= 0 {
			nodataDrains = append(nodataDrains, seed{c: c, d: fallDir})
		}
	}

	var seeds []seed
	switch {
	case len(downhill) > 0:
		seeds = downhill
	case len(nodataDrains) > 0:
		for _, s := range nodataDrains {
			if err := dir.Set(int(s.c.X), int(s.c.Y), float64(s.d)); err != nil {
				return err
			}
		}
		seeds = nodataDrains
	default:
		return nil
	}

	const inf = math.MaxFloat64
	dist := make(map[neighbor.Coord]float64, len(members))
	for _, c := range members {
		dist[c] = inf
	}
	var q neighbor.Queue
	for _, s := range seeds {
		dist[s.c] = 0
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
				if err := dir.Set(int(nb.X), int(nb.Y), float64(neighbor.Reverse[i])); err != nil {
					return err
				}
				q.Push(nb)
			}
		}
	}
	return nil
}
