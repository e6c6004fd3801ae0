package pitfill

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/catchbasin/flowroute/internal/progress"
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// Fill produces a copy of dem (read through ds, dem's own dataset
// collaborator) in which every undrained region is raised to the
// elevation of its lowest pour point. The returned
// ManagedRaster is open for read-write; the caller is responsible for
// closing it (which flushes the filled DEM to disk).
func Fill(dem *rasterio.ManagedRaster, ds rasterio.Dataset, nodata float64, opts ...Option) (*rasterio.ManagedRaster, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	filled, err := createAndCopy(dem, ds, nodata, cfg, creation)
	if err != nil {
		return nil, err
	}

	flatMask, pitMask, err := openScratch(ds, cfg, creation)
	if err != nil {
		filled.Close()
		return nil, err
	}
	defer flatMask.Close()
	defer pitMask.Close()

	if err := run(cfg.ctx, filled, flatMask, pitMask, nodata, cfg.reporter); err != nil {
		filled.Close()
		return nil, err
	}
	return filled, nil
}

func createAndCopy(dem *rasterio.ManagedRaster, ds rasterio.Dataset, nodata float64, cfg Options, creation rasterio.CreationOptions) (*rasterio.ManagedRaster, error) {
	filledDS, err := ds.CreateFrom(cfg.scratchPrefix+"_filled.tif", 1, rasterio.Float64, nodata, nodata, creation)
	if err != nil {
		return nil, fmt.Errorf("pitfill: create filled DEM: %w", err)
	}
	filled, err := rasterio.Open(filledDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("pitfill: open filled DEM: %w", err)
	}
	w, h := dem.Width(), dem.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v, err := dem.Get(x, y)
			if err != nil {
				filled.Close()
				return nil, err
			}
			if err := filled.Set(x, y, v); err != nil {
				filled.Close()
				return nil, err
			}
		}
	}
	return filled, nil
}

func openScratch(ds rasterio.Dataset, cfg Options, creation rasterio.CreationOptions) (flatMask, pitMask *rasterio.ManagedRaster, err error) {
	flatDS, err := ds.CreateFrom(cfg.scratchPrefix+"_flat.tif", 1, rasterio.Byte, 0, 0, creation)
	if err != nil {
		return nil, nil, fmt.Errorf("pitfill: create flat-region mask: %w", err)
	}
	flatMask, err = rasterio.Open(flatDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, nil, fmt.Errorf("pitfill: open flat-region mask: %w", err)
	}
	pitDS, err := ds.CreateFrom(cfg.scratchPrefix+"_pit.tif", 1, rasterio.Int32, 0, 0, creation)
	if err != nil {
		flatMask.Close()
		return nil, nil, fmt.Errorf("pitfill: create pit mask: %w", err)
	}
	pitMask, err = rasterio.Open(pitDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		flatMask.Close()
		return nil, nil, fmt.Errorf("pitfill: open pit mask: %w", err)
	}
	return flatMask, pitMask, nil
}

// run performs the outer tile scan, dispatching each unvisited,
// non-draining seed into a flat-region BFS and, for pits, the
// pour-point search and raise.
func run(ctx context.Context, filled, flatMask, pitMask *rasterio.ManagedRaster, nodata float64, reporter *progress.Reporter) error {
	w, h := filled.Width(), filled.Height()
	var featureID int32

	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if reporter != nil {
			reporter.Report(int64(y), int64(h))
		}
		for x := 0; x < w; x++ {
			visited, err := flatMask.Get(x, y)
			if err != nil {
				return err
			}
			if visited != 0 {
				continue
			}
			v, err := filled.Get(x, y)
			if err != nil {
				return err
			}
			if v == nodata {
				continue
			}
			drains, err := drainsLocally(filled, nodata, x, y, v)
			if err != nil {
				return err
			}
			if drains {
				continue
			}

			region, regionDrains, err := growFlatRegion(filled, flatMask, nodata, x, y, v)
			if err != nil {
				return err
			}
			if regionDrains {
				continue // plateau: DEM unchanged
			}

			featureID++
			fillHeightValue, err := findPourPoint(filled, pitMask, nodata, featureID, region, v)
			if err != nil {
				return err
			}
			if err := raise(filled, nodata, x, y, fillHeightValue); err != nil {
				return err
			}
		}
	}
	if reporter != nil {
		reporter.Done(int64(h))
	}
	return nil
}

// drainsLocally reports whether pixel (x, y) with value v has any
// neighbour that is off-raster, nodata, or strictly lower: the
// per-seed local-drain check.
func drainsLocally(r *rasterio.ManagedRaster, nodata float64, x, y int, v float64) (bool, error) {
	for i := 0; i < 8; i++ {
		nb := neighbor.Step(int32(x), int32(y), i)
		if !r.InBounds(int(nb.X), int(nb.Y)) {
			return true, nil
		}
		nv, err := r.Get(int(nb.X), int(nb.Y))
		if err != nil {
			return false, err
		}
		if nv == nodata || nv < v {
			return true, nil
		}
	}
	return false, nil
}

// growFlatRegion BFS-expands the maximal same-height region containing
// (sx, sy), marking every visited cell in flatMask, and reports
// whether any region member drains (lower, nodata, or off-raster
// neighbour).
func growFlatRegion(r, flatMask *rasterio.ManagedRaster, nodata float64, sx, sy int, height float64) ([]neighbor.Coord, bool, error) {
	var q neighbor.Queue
	start := neighbor.Coord{X: int32(sx), Y: int32(sy)}
	if err := flatMask.Set(sx, sy, 1); err != nil {
		return nil, false, err
	}
	region := []neighbor.Coord{start}
	q.Push(start)

	drains := false
	for q.Len() > 0 {
		c, _ := q.Pop()
		for i := 0; i < 8; i++ {
			nb := neighbor.Step(c.X, c.Y, i)
			if !r.InBounds(int(nb.X), int(nb.Y)) {
				drains = true
				continue
			}
			nv, err := r.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return nil, false, err
			}
			switch {
			case nv == nodata:
				drains = true
			case nv < height:
				drains = true
			case nv == height:
				visited, err := flatMask.Get(int(nb.X), int(nb.Y))
				if err != nil {
					return nil, false, err
				}
				if visited == 0 {
					if err := flatMask.Set(int(nb.X), int(nb.Y), 1); err != nil {
						return nil, false, err
					}
					region = append(region, nb)
					q.Push(nb)
				}
			}
		}
	}
	return region, drains, nil
}

// findPourPoint seeds a min-heap with every pit-floor cell and expands
// outward in increasing elevation (ties broken by block index) until
// the first pop whose neighbour is off-raster, nodata, or strictly
// lower and unvisited: that popped elevation is the fill height.
// Every visited cell (the pit floor and everything the heap explores
// beyond it) is marked featureID in pitMask, which doubles as the
// visited tracker across the whole search, not just this one pit's
// floor.
func findPourPoint(r, pitMask *rasterio.ManagedRaster, nodata float64, featureID int32, region []neighbor.Coord, floorHeight float64) (float64, error) {
	h := &pixelHeap{}
	heap.Init(h)
	for _, c := range region {
		if err := pitMask.Set(int(c.X), int(c.Y), float64(featureID)); err != nil {
			return 0, err
		}
		heap.Push(h, &pixelItem{
			Value:    floorHeight,
			X:        c.X,
			Y:        c.Y,
			Tiebreak: r.BlockIndex(int(c.X), int(c.Y)),
		})
	}

	for h.Len() > 0 {
		top := heap.Pop(h).(*pixelItem)
		for i := 0; i < 8; i++ {
			nb := neighbor.Step(top.X, top.Y, i)
			if !r.InBounds(int(nb.X), int(nb.Y)) {
				return top.Value, nil
			}
			nv, err := r.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return 0, err
			}
			if nv == nodata {
				return top.Value, nil
			}
			already, err := pitMask.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return 0, err
			}
			if already != 0 {
				continue
			}
			if nv < top.Value {
				return top.Value, nil
			}
			if err := pitMask.Set(int(nb.X), int(nb.Y), float64(featureID)); err != nil {
				return 0, err
			}
			heap.Push(h, &pixelItem{
				Value:    nv,
				X:        nb.X,
				Y:        nb.Y,
				Tiebreak: r.BlockIndex(int(nb.X), int(nb.Y)),
			})
		}
	}
	return 0, ErrUndrainedRaster
}

// raise BFS-expands from (sx, sy) over the filled-DEM view, raising
// every connected pixel whose current value is below fillHeight to
// exactly fillHeight; pixels already at or above fillHeight act as
// barriers and stop the expansion.
func raise(r *rasterio.ManagedRaster, nodata float64, sx, sy int, fillHeight float64) error {
	visited := neighbor.CoordSet{}
	var q neighbor.Queue
	start := neighbor.Coord{X: int32(sx), Y: int32(sy)}
	visited.Add(start)
	q.Push(start)

	for q.Len() > 0 {
		c, _ := q.Pop()
		v, err := r.Get(int(c.X), int(c.Y))
		if err != nil {
			return err
		}
		if v < fillHeight {
			if err := r.Set(int(c.X), int(c.Y), fillHeight); err != nil {
				return err
			}
		}
		for i := 0; i < 8; i++ {
			nb := neighbor.Step(c.X, c.Y, i)
			if !r.InBounds(int(nb.X), int(nb.Y)) || visited.Has(nb) {
				continue
			}
			nv, err := r.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if nv == nodata {
				continue
			}
			if nv < fillHeight {
				visited.Add(nb)
				q.Push(nb)
			}
		}
	}
	return nil
}
