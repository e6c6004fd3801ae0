package rastertest

import (
	"sort"

	"github.com/catchbasin/flowroute/rasterio"
)

// MemVectorLayer is an in-memory rasterio.VectorLayer. Rasterize and
// Polygonize implement just enough of GDAL's gdal_rasterize/Polygonize
// semantics to drive watershed.Delineate's tests: point burning and
// grouping of masked pixels by label value.
type MemVectorLayer struct {
	name          string
	spatialRefWKT string
	geomType      rasterio.GeomType
	fields        []rasterio.FieldDef
	features      []rasterio.Feature
}

func NewMemVectorLayer(name, spatialRefWKT string, geomType rasterio.GeomType, fields []rasterio.FieldDef) *MemVectorLayer {
	return &MemVectorLayer{name: name, spatialRefWKT: spatialRefWKT, geomType: geomType, fields: fields}
}

func (l *MemVectorLayer) Features() ([]rasterio.Feature, error) {
	return l.features, nil
}

func (l *MemVectorLayer) SpatialRef() string { return l.spatialRefWKT }

func (l *MemVectorLayer) CreateLayer(path, name, spatialRefWKT string, geomType rasterio.GeomType, fields []rasterio.FieldDef) (rasterio.VectorLayer, error) {
	return NewMemVectorLayer(name, spatialRefWKT, geomType, fields), nil
}

func (l *MemVectorLayer) AddFeature(f rasterio.Feature) error {
	l.features = append(l.features, f)
	return nil
}

func (l *MemVectorLayer) Close() error { return nil }

// Rasterize burns each point feature's attribute value into target's
// band at the pixel containing the point. allTouched has no additional
// effect for point geometries (a point touches exactly one pixel);
// MemVectorLayer supports point burning only, which is all
// watershed.Delineate requires of its outflow-point layer.
func (l *MemVectorLayer) Rasterize(target rasterio.Dataset, band int, allTouched bool, attribute string) error {
	meta, err := target.Metadata()
	if err != nil {
		return err
	}
	for _, f := range l.features {
		x := int(f.Point[0])
		y := int(f.Point[1])
		if x < 0 || x >= meta.Width || y < 0 || y >= meta.Height {
			continue
		}
		v, _ := f.Attributes[attribute].(float64)
		if err := target.WriteWindow(band, x, y, 1, 1, []float64{v}); err != nil {
			return err
		}
	}
	return nil
}

// Polygonize groups every pixel where maskBand != 0 by its label value
// and returns one PolygonFeature per distinct label, in ascending label
// order, with a degenerate single-pixel "ring" per member pixel (enough
// for watershed tests, which assert membership and ws_id, not
// geometry). Pixels sharing a label are not split into separate
// connected regions.
func (l *MemVectorLayer) Polygonize(labels rasterio.Dataset, labelBand int, mask rasterio.Dataset, maskBand int) ([]rasterio.PolygonFeature, error) {
	meta, err := labels.Metadata()
	if err != nil {
		return nil, err
	}
	lblData, err := labels.ReadWindow(labelBand, 0, 0, meta.Width, meta.Height)
	if err != nil {
		return nil, err
	}
	maskData, err := mask.ReadWindow(maskBand, 0, 0, meta.Width, meta.Height)
	if err != nil {
		return nil, err
	}

	byLabel := make(map[int64][][][2]float64)
	var order []int64
	seen := make(map[int64]bool)
	for y := 0; y < meta.Height; y++ {
		for x := 0; x < meta.Width; x++ {
			idx := y*meta.Width + x
			if maskData[idx] == 0 {
				continue
			}
			lbl := int64(lblData[idx])
			ring := [][2]float64{{float64(x), float64(y)}}
			byLabel[lbl] = append(byLabel[lbl], ring)
			if !seen[lbl] {
				seen[lbl] = true
				order = append(order, lbl)
			}
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]rasterio.PolygonFeature, 0, len(order))
	for _, lbl := range order {
		out = append(out, rasterio.PolygonFeature{Label: lbl, Rings: byLabel[lbl]})
	}
	return out, nil
}
