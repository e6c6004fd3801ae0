package watershed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// Delineate computes watershed polygons for outflows over dir (a D8
// flow-direction raster). Each returned polygon
// carries the originating outflow point's attributes plus ws_id and
// upstream_fragments, a comma-joined sorted list of the other ws_ids
// whose pixels this watershed's backward BFS reached without absorbing
// them.
// The returned layer is created through outflows.CreateLayer; the
// caller closes it.
func Delineate(dir *rasterio.ManagedRaster, outflows rasterio.VectorLayer, ds rasterio.Dataset, dirNoData float64, opts ...Option) (rasterio.VectorLayer, error) {
	cfg := resolveOptions(opts)
	creation := rasterio.DefaultCreationOptions()

	feats, err := outflows.Features()
	if err != nil {
		return nil, fmt.Errorf("watershed: list outflows: %w", err)
	}

	var seeds []seed
	for _, f := range feats {
		x, y := int(f.Point[0]), int(f.Point[1])
		if !dir.InBounds(x, y) {
			continue
		}
		seeds = append(seeds, seed{wsID: int64(len(seeds) + 1), feat: f})
	}

	wsDS, err := ds.CreateFrom(cfg.scratchPrefix+"_ws.tif", 1, rasterio.Int64, NoWatershed, NoWatershed, creation)
	if err != nil {
		return nil, fmt.Errorf("watershed: create ws_id raster: %w", err)
	}
	ws, err := rasterio.Open(wsDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("watershed: open ws_id raster: %w", err)
	}

	maskDS, err := ds.CreateFrom(cfg.scratchPrefix+"_visited.tif", 1, rasterio.Byte, 0, 0, creation)
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("watershed: create visited mask: %w", err)
	}
	mask, err := rasterio.Open(maskDS, 1, rasterio.ModeReadWrite)
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("watershed: open visited mask: %w", err)
	}

	if len(seeds) > 0 {
		seedLayer, err := outflows.CreateLayer(cfg.scratchPrefix+"_seeds", "seeds", outflows.SpatialRef(), rasterio.GeomPoint, []rasterio.FieldDef{{Name: "ws_id", Type: rasterio.FieldInt}})
		if err != nil {
			return nil, fmt.Errorf("watershed: create seed layer: %w", err)
		}
		for _, s := range seeds {
			if err := seedLayer.AddFeature(rasterio.Feature{Point: s.feat.Point, Attributes: map[string]any{"ws_id": float64(s.wsID)}}); err != nil {
				return nil, err
			}
		}
		if err := seedLayer.Rasterize(wsDS, 1, true, "ws_id"); err != nil {
			return nil, fmt.Errorf("watershed: rasterize outflows: %w", err)
		}
	}

	nested := make(map[int64]map[int64]bool)
	for seedIdx, s := range seeds {
		if err := cfg.ctx.Err(); err != nil {
			ws.Close()
			mask.Close()
			return nil, err
		}
		if cfg.reporter != nil {
			cfg.reporter.Report(int64(seedIdx), int64(len(seeds)))
		}
		sx, sy := int32(s.feat.Point[0]), int32(s.feat.Point[1])
		if err := bfsBackward(dir, ws, mask, dirNoData, sx, sy, s.wsID, nested); err != nil {
			ws.Close()
			mask.Close()
			return nil, err
		}
	}
	if cfg.reporter != nil {
		cfg.reporter.Done(int64(len(seeds)))
	}

	// Flush both scratch rasters before Polygonize, which reads wsDS
	// and maskDS directly and would otherwise see stale, pre-BFS values
	// still sitting in ws's and mask's dirty block cache.
	if err := ws.Close(); err != nil {
		mask.Close()
		return nil, fmt.Errorf("watershed: flush ws_id raster: %w", err)
	}
	if err := mask.Close(); err != nil {
		return nil, fmt.Errorf("watershed: flush visited mask: %w", err)
	}

	polys, err := outflows.Polygonize(wsDS, 1, maskDS, 1)
	if err != nil {
		return nil, fmt.Errorf("watershed: polygonize: %w", err)
	}

	fields := fieldsFromSeeds(seeds)
	target, err := outflows.CreateLayer(cfg.scratchPrefix+"_result", "watersheds", outflows.SpatialRef(), rasterio.GeomPolygon, fields)
	if err != nil {
		return nil, fmt.Errorf("watershed: create result layer: %w", err)
	}

	byID := make(map[int64]seed, len(seeds))
	for _, s := range seeds {
		byID[s.wsID] = s
	}
	for _, pf := range polys {
		s, ok := byID[pf.Label]
		if !ok {
			continue
		}
		attrs := make(map[string]any, len(s.feat.Attributes)+2)
		for k, v := range s.feat.Attributes {
			attrs[k] = v
		}
		attrs["ws_id"] = pf.Label
		attrs["upstream_fragments"] = joinFragments(nested[pf.Label])
		if err := target.AddFeature(rasterio.Feature{Attributes: attrs, Rings: pf.Rings}); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// seed pairs a clipped outflow feature with its dense ws_id.
type seed struct {
	wsID int64
	feat rasterio.Feature
}

func fieldsFromSeeds(seeds []seed) []rasterio.FieldDef {
	seen := make(map[string]bool)
	var fields []rasterio.FieldDef
	for _, s := range seeds {
		for k, v := range s.feat.Attributes {
			if seen[k] {
				continue
			}
			seen[k] = true
			fields = append(fields, rasterio.FieldDef{Name: k, Type: fieldTypeOf(v)})
		}
	}
	fields = append(fields, rasterio.FieldDef{Name: "ws_id", Type: rasterio.FieldInt})
	fields = append(fields, rasterio.FieldDef{Name: "upstream_fragments", Type: rasterio.FieldString})
	return fields
}

func fieldTypeOf(v any) rasterio.FieldType {
	switch v.(type) {
	case string:
		return rasterio.FieldString
	case int, int32, int64:
		return rasterio.FieldInt
	default:
		return rasterio.FieldReal
	}
}

func joinFragments(set map[int64]bool) string {
	if len(set) == 0 {
		return ""
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// bfsBackward traces the backward D8 closure of one outflow pixel onto
// wsID: a neighbour is absorbed iff it flows
// into the current pixel (its own direction is the reverse toward it)
// or it already carries wsID (propagating a multi-pixel seed cluster
// burned by an all-touched rasterization). A neighbour already claimed
// by a different watershed is recorded as nested rather than absorbed.
func bfsBackward(dir, ws, mask *rasterio.ManagedRaster, dirNoData float64, sx, sy int32, wsID int64, nested map[int64]map[int64]bool) error {
	var q neighbor.Queue
	queued := map[neighbor.Coord]bool{{X: sx, Y: sy}: true}
	q.Push(neighbor.Coord{X: sx, Y: sy})

	for q.Len() > 0 {
		cur, _ := q.Pop()
		if err := ws.Set(int(cur.X), int(cur.Y), float64(wsID)); err != nil {
			return err
		}
		if err := mask.Set(int(cur.X), int(cur.Y), 1); err != nil {
			return err
		}

		for i := 0; i < 8; i++ {
			nb := neighbor.Step(cur.X, cur.Y, i)
			if !dir.InBounds(int(nb.X), int(nb.Y)) {
				continue
			}
			visited, err := mask.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			nbWS, err := ws.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			if visited == 1 {
				if int64(nbWS) != wsID && nbWS != NoWatershed {
					recordNested(nested, wsID, int64(nbWS))
				}
				continue
			}
			if queued[nb] {
				continue
			}

			if nbWS != NoWatershed && int64(nbWS) != wsID {
				recordNested(nested, wsID, int64(nbWS))
				continue
			}

			nv, err := dir.Get(int(nb.X), int(nb.Y))
			if err != nil {
				return err
			}
			flowsIntoCur := nv != dirNoData && int(nv) == neighbor.Reverse[i]
			sameCluster := int64(nbWS) == wsID
			if !flowsIntoCur && !sameCluster {
				continue
			}

			queued[nb] = true
			q.Push(nb)
		}
	}
	return nil
}

func recordNested(nested map[int64]map[int64]bool, wsID, other int64) {
	set := nested[wsID]
	if set == nil {
		set = make(map[int64]bool)
		nested[wsID] = set
	}
	set[other] = true
}
