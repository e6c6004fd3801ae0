package rasterio

// Dataset is the raster I/O collaborator this module expects: open
// for read/read-write, report metadata, read and write rectangular
// windows, create a derived raster from a template, and iterate tile
// windows for an outer tile-scan loop. Implementations are expected to
// wrap a real georeferenced raster library (GDAL or equivalent); this
// module never implements Dataset itself outside of tests.
type Dataset interface {
	// Metadata reports the dataset's size, tiling, nodata, and
	// georeferencing.
	Metadata() (Metadata, error)

	// ReadWindow reads the rectangle [xoff, xoff+winX) x [yoff, yoff+winY),
	// clipped to the raster bounds, from band, returning row-major
	// float64 values sized winX*winY (the caller, not Dataset, embeds
	// a clipped read into a zero-padded block buffer).
	ReadWindow(band, xoff, yoff, winX, winY int) ([]float64, error)

	// WriteWindow writes data (row-major, winX*winY values) into band
	// at [xoff, yoff). mode must be ModeReadWrite.
	WriteWindow(band, xoff, yoff, winX, winY int, data []float64) error

	// CreateFrom creates a new single-band raster at path, copying
	// this dataset's dimensions, geotransform, and projection, with
	// the given dtype, nodata, initial fill value, and creation
	// options, and returns it opened for read-write.
	CreateFrom(path string, band int, dtype DataType, nodata, fill float64, opts CreationOptions) (Dataset, error)

	// TileWindows iterates this dataset's native tile layout, yielding
	// (xoff, yoff, winX, winY) for each tile. Used by the outer
	// tile-scan loop to find unprocessed seeds.
	TileWindows() ([]Window, error)

	// Close releases any resources the collaborator holds open.
	Close() error
}
