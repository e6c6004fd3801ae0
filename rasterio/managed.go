package rasterio

import (
	"fmt"
	"math"

	"github.com/catchbasin/flowroute/tilecache"
)

// ManagedRaster is a pixel-addressable view over a Dataset, backed by
// one tilecache.Cache. All pixel access goes through Get/Set; callers
// bounds-check coordinates before calling either — pixel coordinates
// outside [0,W)x[0,H) are never passed to the cache.
type ManagedRaster struct {
	ds   Dataset
	band int
	mode Mode

	meta Metadata
	nbx  int // blocks per row, ceil(W/BW)
	nby  int

	cache *tilecache.Cache
	dirty map[int64]struct{}

	closed bool
}

// Open creates a ManagedRaster over ds's band (1-based), in the given
// mode. It fails with ErrBadBlockGeometry if the dataset's block
// dimensions are not powers of two, and with ErrBadBand if band is out
// of range.
func Open(ds Dataset, band int, mode Mode, opts ...Option) (*ManagedRaster, error) {
	meta, err := ds.Metadata()
	if err != nil {
		return nil, fmt.Errorf("rasterio: read metadata: %w", err)
	}
	if band < 1 || band > meta.BandCount {
		return nil, ErrBadBand
	}
	if !isPowerOfTwo(meta.BlockWidth) || !isPowerOfTwo(meta.BlockHeight) {
		return nil, ErrBadBlockGeometry
	}

	cfg := resolveOptions(opts)
	mr := &ManagedRaster{
		ds:    ds,
		band:  band,
		mode:  mode,
		meta:  meta,
		nbx:   ceilDiv(meta.Width, meta.BlockWidth),
		nby:   ceilDiv(meta.Height, meta.BlockHeight),
		cache: tilecache.New(cfg.cacheCapacity),
		dirty: make(map[int64]struct{}),
	}
	return mr, nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// Width and Height report the raster's pixel dimensions.
func (mr *ManagedRaster) Width() int  { return mr.meta.Width }
func (mr *ManagedRaster) Height() int { return mr.meta.Height }

// NoData returns the nodata sentinel for this raster's band, or NaN if
// the collaborator did not report one.
func (mr *ManagedRaster) NoData() float64 {
	if mr.band-1 < len(mr.meta.NoData) {
		return mr.meta.NoData[mr.band-1]
	}
	return math.NaN()
}

// InBounds reports whether (x, y) lies within [0,W)x[0,H).
func (mr *ManagedRaster) InBounds(x, y int) bool {
	return x >= 0 && x < mr.meta.Width && y >= 0 && y < mr.meta.Height
}

// BlockIndex returns the index of the block containing pixel (x, y).
// Used as the heap tiebreak field of a pixel record: it
// makes priority-queue pop order independent of allocator or hash
// iteration order, and gives cache-friendly locality when the caller
// happens to pop several pixels from the same block in a row.
func (mr *ManagedRaster) BlockIndex(x, y int) int64 {
	bx, by, _, _ := mr.blockOf(x, y)
	return mr.blockIndex(bx, by)
}

func (mr *ManagedRaster) blockIndex(bx, by int) int64 {
	return int64(by)*int64(mr.nbx) + int64(bx)
}

func (mr *ManagedRaster) blockOf(x, y int) (bx, by, ox, oy int) {
	bw, bh := mr.meta.BlockWidth, mr.meta.BlockHeight
	bx, by = x/bw, y/bh
	ox, oy = x%bw, y%bh
	return
}

// Get returns the value of pixel (x, y), loading its containing block
// if absent.
func (mr *ManagedRaster) Get(x, y int) (float64, error) {
	if mr.closed {
		return 0, ErrClosed
	}
	if !mr.InBounds(x, y) {
		return 0, ErrOutOfBounds
	}
	bx, by, ox, oy := mr.blockOf(x, y)
	block, err := mr.ensureBlock(bx, by)
	if err != nil {
		return 0, err
	}
	return block.Values[oy*mr.meta.BlockWidth+ox], nil
}

// Set writes v to pixel (x, y), loading its containing block if
// absent and marking it dirty. Set requires ModeReadWrite.
func (mr *ManagedRaster) Set(x, y int, v float64) error {
	if mr.closed {
		return ErrClosed
	}
	if mr.mode != ModeReadWrite {
		return ErrReadOnly
	}
	if !mr.InBounds(x, y) {
		return ErrOutOfBounds
	}
	bx, by, ox, oy := mr.blockOf(x, y)
	block, err := mr.ensureBlock(bx, by)
	if err != nil {
		return err
	}
	block.Values[oy*mr.meta.BlockWidth+ox] = v
	block.Dirty = true
	mr.dirty[block.Index] = struct{}{}
	return nil
}

// ensureBlock returns the resident block for (bx, by), loading it from
// the dataset on a cache miss and flushing any block the load evicts.
func (mr *ManagedRaster) ensureBlock(bx, by int) (*tilecache.Block, error) {
	idx := mr.blockIndex(bx, by)
	if block, ok := mr.cache.Get(idx); ok {
		return block, nil
	}
	block, err := mr.loadBlock(idx, bx, by)
	if err != nil {
		return nil, err
	}
	evicted := mr.cache.Put(block)
	for _, ev := range evicted {
		if err := mr.flushIfDirty(ev.Block); err != nil {
			return nil, err
		}
	}
	return block, nil
}

// loadBlock reads the dataset rectangle for block (bx, by), clipped to
// raster bounds, embedding it into a zero-padded BW*BH buffer.
func (mr *ManagedRaster) loadBlock(idx int64, bx, by int) (*tilecache.Block, error) {
	bw, bh := mr.meta.BlockWidth, mr.meta.BlockHeight
	xoff, yoff := bx*bw, by*bh
	ws := minInt(bw, mr.meta.Width-xoff)
	hs := minInt(bh, mr.meta.Height-yoff)

	block := tilecache.NewBlock(idx, bw, bh)
	if ws <= 0 || hs <= 0 {
		return block, nil
	}
	data, err := mr.ds.ReadWindow(mr.band, xoff, yoff, ws, hs)
	if err != nil {
		return nil, fmt.Errorf("rasterio: read block %d: %w", idx, err)
	}
	for row := 0; row < hs; row++ {
		srcOff := row * ws
		dstOff := row * bw
		copy(block.Values[dstOff:dstOff+ws], data[srcOff:srcOff+ws])
	}
	return block, nil
}

// flushIfDirty writes block's valid sub-rectangle back through the
// dataset if it was marked dirty, and clears the dirty bookkeeping.
func (mr *ManagedRaster) flushIfDirty(block *tilecache.Block) error {
	if !block.Dirty {
		return nil
	}
	if err := mr.writeBlock(block); err != nil {
		return err
	}
	block.Dirty = false
	delete(mr.dirty, block.Index)
	return nil
}

func (mr *ManagedRaster) writeBlock(block *tilecache.Block) error {
	bw, bh := mr.meta.BlockWidth, mr.meta.BlockHeight
	by := int(block.Index) / mr.nbx
	bx := int(block.Index) % mr.nbx
	xoff, yoff := bx*bw, by*bh
	ws := minInt(bw, mr.meta.Width-xoff)
	hs := minInt(bh, mr.meta.Height-yoff)
	if ws <= 0 || hs <= 0 {
		return nil
	}
	staging := make([]float64, ws*hs)
	for row := 0; row < hs; row++ {
		srcOff := row * bw
		dstOff := row * ws
		copy(staging[dstOff:dstOff+ws], block.Values[srcOff:srcOff+ws])
	}
	if err := mr.ds.WriteWindow(mr.band, xoff, yoff, ws, hs, staging); err != nil {
		return fmt.Errorf("rasterio: write block %d: %w", block.Index, err)
	}
	return nil
}

// Close flushes every dirty cached block to the dataset and releases
// buffers. Close is idempotent; after Close, all other operations
// return ErrClosed.
func (mr *ManagedRaster) Close() error {
	if mr.closed {
		return nil
	}
	var firstErr error
	for _, block := range mr.cache.All() {
		if err := mr.flushIfDirty(block); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	mr.closed = true
	return firstErr
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
