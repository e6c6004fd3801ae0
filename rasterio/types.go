package rasterio

// DataType is the on-disk pixel type of a raster band. The managed
// raster's working element type is always float64 regardless of
// DataType; DataType only governs what CreateFrom writes to disk.
type DataType int

const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Byte
)

// GeomType selects the geometry kind of a vector layer.
type GeomType int

const (
	GeomPoint GeomType = iota
	GeomPolygon
)

// FieldType selects the attribute type of a vector field.
type FieldType int

const (
	FieldInt FieldType = iota
	FieldReal
	FieldString
)

// FieldDef declares one attribute field on a created vector layer.
type FieldDef struct {
	Name string
	Type FieldType
}

// Metadata describes a raster dataset's shape and georeferencing.
type Metadata struct {
	Width, Height           int
	BlockWidth, BlockHeight int
	BandCount               int
	NoData                  []float64 // per band
	GeoTransform            [6]float64
	ProjectionWKT           string
	BoundingBox             [4]float64 // xmin, ymin, xmax, ymax
}

// Window is one tile of a TileWindows() iteration: the offset and
// size of a rectangular sub-raster, in pixels.
type Window struct {
	XOff, YOff     int
	WinX, WinY     int
}

// CreationOptions mirrors the creation options expected of
// the raster collaborator: tiled layout, a tile size, lossless
// compression, and big-file support. The fields are passed through to
// the real raster library unchanged; this module only names them.
type CreationOptions struct {
	Tiled               bool
	BlockWidth          int
	BlockHeight         int
	Compression         string // e.g. "DEFLATE"
	BigTIFF             bool
}

// DefaultCreationOptions is tiled, 256x256 blocks
// (1<<8), lossless compression, big-file support.
func DefaultCreationOptions() CreationOptions {
	return CreationOptions{
		Tiled:       true,
		BlockWidth:  1 << 8,
		BlockHeight: 1 << 8,
		Compression: "DEFLATE",
		BigTIFF:     true,
	}
}

// Feature is one record of a vector layer: an attribute bag plus a
// geometry. Geometry is either a single (x, y) point (for outflow
// inputs) or a slice of (x, y) ring coordinates (for polygon output);
// callers know which by the layer's GeomType.
type Feature struct {
	Attributes map[string]any
	Point      [2]float64
	Rings      [][][2]float64
}

// PolygonFeature is one labelled region produced by Polygonize.
type PolygonFeature struct {
	Label int64
	Rings [][][2]float64
}
