package tilecache

// Block is an owned buffer of BlockWidth*BlockHeight float64 values,
// plus the block index it represents within its raster. Unused slots
// in a partial edge block are zero-padded: callers never read past the
// valid sub-rectangle because they bounds-check pixel coordinates
// before translating them into a block-relative offset.
type Block struct {
	Index  int64
	Values []float64
	Dirty  bool
}

// NewBlock allocates a zeroed block of width*height values for index.
func NewBlock(index int64, width, height int) *Block {
	return &Block{
		Index:  index,
		Values: make([]float64, width*height),
	}
}
