package rastertest

import (
	"github.com/catchbasin/flowroute/rasterio"
)

// MemDataset is an in-memory rasterio.Dataset backed by a single flat
// float64 slice per band, row-major. It exists only to drive this
// module's tests against a small literal grid without a real
// GDAL-backed collaborator.
type MemDataset struct {
	meta  rasterio.Metadata
	bands [][]float64 // bands[b-1][y*W+x]
}

// New creates a MemDataset of the given size, tile geometry, and
// per-band nodata, with every band initially filled with its nodata
// value.
func New(width, height, blockWidth, blockHeight int, nodata []float64) *MemDataset {
	bands := make([][]float64, len(nodata))
	for b := range bands {
		band := make([]float64, width*height)
		for i := range band {
			band[i] = nodata[b]
		}
		bands[b] = band
	}
	return &MemDataset{
		meta: rasterio.Metadata{
			Width:       width,
			Height:      height,
			BlockWidth:  blockWidth,
			BlockHeight: blockHeight,
			BandCount:   len(nodata),
			NoData:      nodata,
		},
		bands: bands,
	}
}

// FromRows builds a single-band MemDataset from a literal row-major
// grid (rows[y][x]), useful for small literal test fixtures.
func FromRows(rows [][]float64, blockWidth, blockHeight int, nodata float64) *MemDataset {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	ds := New(w, h, blockWidth, blockHeight, []float64{nodata})
	for y, row := range rows {
		for x, v := range row {
			ds.bands[0][y*w+x] = v
		}
	}
	return ds
}

// Value returns the current value of band b (1-based) at (x, y), for
// assertions in tests.
func (d *MemDataset) Value(band, x, y int) float64 {
	return d.bands[band-1][y*d.meta.Width+x]
}

func (d *MemDataset) Metadata() (rasterio.Metadata, error) { return d.meta, nil }

func (d *MemDataset) ReadWindow(band, xoff, yoff, winX, winY int) ([]float64, error) {
	if band < 1 || band > len(d.bands) {
		return nil, rasterio.ErrBadBand
	}
	out := make([]float64, winX*winY)
	src := d.bands[band-1]
	for row := 0; row < winY; row++ {
		srcRow := (yoff + row) * d.meta.Width
		copy(out[row*winX:(row+1)*winX], src[srcRow+xoff:srcRow+xoff+winX])
	}
	return out, nil
}

func (d *MemDataset) WriteWindow(band, xoff, yoff, winX, winY int, data []float64) error {
	if band < 1 || band > len(d.bands) {
		return rasterio.ErrBadBand
	}
	dst := d.bands[band-1]
	for row := 0; row < winY; row++ {
		dstRow := (yoff + row) * d.meta.Width
		copy(dst[dstRow+xoff:dstRow+xoff+winX], data[row*winX:(row+1)*winX])
	}
	return nil
}

func (d *MemDataset) CreateFrom(path string, band int, dtype rasterio.DataType, nodata, fill float64, opts rasterio.CreationOptions) (rasterio.Dataset, error) {
	out := New(d.meta.Width, d.meta.Height, opts.BlockWidth, opts.BlockHeight, []float64{nodata})
	for i := range out.bands[0] {
		out.bands[0][i] = fill
	}
	out.meta.GeoTransform = d.meta.GeoTransform
	out.meta.ProjectionWKT = d.meta.ProjectionWKT
	out.meta.BoundingBox = d.meta.BoundingBox
	return out, nil
}

func (d *MemDataset) TileWindows() ([]rasterio.Window, error) {
	var windows []rasterio.Window
	for yoff := 0; yoff < d.meta.Height; yoff += d.meta.BlockHeight {
		winY := minInt(d.meta.BlockHeight, d.meta.Height-yoff)
		for xoff := 0; xoff < d.meta.Width; xoff += d.meta.BlockWidth {
			winX := minInt(d.meta.BlockWidth, d.meta.Width-xoff)
			windows = append(windows, rasterio.Window{XOff: xoff, YOff: yoff, WinX: winX, WinY: winY})
		}
	}
	return windows, nil
}

func (d *MemDataset) Close() error { return nil }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
