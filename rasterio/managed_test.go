package rasterio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/rasterio"
	"github.com/catchbasin/flowroute/rasterio/rastertest"
)

func TestManagedRaster_RoundTrip(t *testing.T) {
	ds := rastertest.New(6, 6, 4, 4, []float64{-9999})
	mr, err := rasterio.Open(ds, 1, rasterio.ModeReadWrite, rasterio.WithCacheCapacity(2))
	require.NoError(t, err)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			require.NoError(t, mr.Set(x, y, float64(y*6+x)))
		}
	}
	require.NoError(t, mr.Close())

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			require.Equal(t, float64(y*6+x), ds.Value(1, x, y))
		}
	}

	// Re-open and verify Get reflects the flushed disk state.
	mr2, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.NoError(t, err)
	v, err := mr2.Get(3, 4)
	require.NoError(t, err)
	require.Equal(t, float64(4*6+3), v)
	require.NoError(t, mr2.Close())
}

func TestManagedRaster_RejectsBadBlockGeometry(t *testing.T) {
	ds := rastertest.New(6, 6, 3, 3, []float64{-9999}) // 3 is not a power of two
	_, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.ErrorIs(t, err, rasterio.ErrBadBlockGeometry)
}

func TestManagedRaster_RejectsBadBand(t *testing.T) {
	ds := rastertest.New(4, 4, 4, 4, []float64{-9999})
	_, err := rasterio.Open(ds, 2, rasterio.ModeRead)
	require.ErrorIs(t, err, rasterio.ErrBadBand)
}

func TestManagedRaster_ReadOnlyRejectsSet(t *testing.T) {
	ds := rastertest.New(4, 4, 4, 4, []float64{-9999})
	mr, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.NoError(t, err)
	err = mr.Set(0, 0, 1)
	require.ErrorIs(t, err, rasterio.ErrReadOnly)
}

func TestManagedRaster_OutOfBounds(t *testing.T) {
	ds := rastertest.New(4, 4, 4, 4, []float64{-9999})
	mr, err := rasterio.Open(ds, 1, rasterio.ModeReadWrite)
	require.NoError(t, err)
	_, err = mr.Get(-1, 0)
	require.ErrorIs(t, err, rasterio.ErrOutOfBounds)
	_, err = mr.Get(4, 0)
	require.ErrorIs(t, err, rasterio.ErrOutOfBounds)
}

func TestManagedRaster_ClosedIsIdempotentAndBlocksFurtherUse(t *testing.T) {
	ds := rastertest.New(4, 4, 4, 4, []float64{-9999})
	mr, err := rasterio.Open(ds, 1, rasterio.ModeReadWrite)
	require.NoError(t, err)
	require.NoError(t, mr.Set(0, 0, 42))
	require.NoError(t, mr.Close())
	require.NoError(t, mr.Close()) // idempotent

	_, err = mr.Get(0, 0)
	require.ErrorIs(t, err, rasterio.ErrClosed)
}

// TestManagedRaster_PartialEdgeBlock exercises a raster whose
// dimensions are not a multiple of the block size: the cache's
// zero-padded buffer must still flush only the valid sub-rectangle.
func TestManagedRaster_PartialEdgeBlock(t *testing.T) {
	ds := rastertest.New(5, 3, 4, 4, []float64{-9999})
	mr, err := rasterio.Open(ds, 1, rasterio.ModeReadWrite)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			require.NoError(t, mr.Set(x, y, float64(x+y)))
		}
	}
	require.NoError(t, mr.Close())
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			require.Equal(t, float64(x+y), ds.Value(1, x, y))
		}
	}
}
