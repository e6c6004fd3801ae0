package rasterio

// VectorLayer is the vector I/O collaborator this module expects:
// iterate point/polygon features, create a layer with a spatial
// reference and fields, rasterize into an existing raster with an
// all-touched flag and attribute selector, and polygonize a labelled
// raster masked by a validity raster using 8-connectivity.
type VectorLayer interface {
	// Features returns every feature of this layer, attributes and
	// geometry included.
	Features() ([]Feature, error)

	// SpatialRef returns this layer's spatial reference as WKT.
	SpatialRef() string

	// CreateLayer creates a new layer at path with the given name,
	// spatial reference, geometry type, and schema.
	CreateLayer(path, name, spatialRefWKT string, geomType GeomType, fields []FieldDef) (VectorLayer, error)

	// Rasterize burns this layer's geometries into target's band,
	// writing the value of attribute for each covered pixel. allTouched
	// selects GDAL's ALL_TOUCHED burn semantics (every pixel any part
	// of the geometry passes through, not just pixel centers).
	Rasterize(target Dataset, band int, allTouched bool, attribute string) error

	// Polygonize traces connected regions of equal value in labels'
	// band labelBand, restricted to pixels where mask's band maskBand
	// is nonzero, using 8-connectivity, and returns one PolygonFeature
	// per labelled region.
	Polygonize(labels Dataset, labelBand int, mask Dataset, maskBand int) ([]PolygonFeature, error)

	// AddFeature appends f to this layer.
	AddFeature(f Feature) error

	// Close releases any resources the collaborator holds open.
	Close() error
}
