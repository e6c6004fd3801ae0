package chandist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/chandist"
	"github.com/catchbasin/flowroute/flowdir"
	"github.com/catchbasin/flowroute/rasterio"
	"github.com/catchbasin/flowroute/rasterio/rastertest"
)

const nodata = -9999.0

func TestD8_DistanceAlongRamp(t *testing.T) {
	ds := rastertest.FromRows([][]float64{{3, 2, 1}}, 4, 4, nodata)
	dem, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.NoError(t, err)
	defer dem.Close()

	dir, err := flowdir.D8(dem, ds, nodata)
	require.NoError(t, err)
	defer dir.Close()

	channelDS, err := ds.CreateFrom("channel.tif", 1, rasterio.Byte, 0, 0, rasterio.DefaultCreationOptions())
	require.NoError(t, err)
	channel, err := rasterio.Open(channelDS, 1, rasterio.ModeReadWrite)
	require.NoError(t, err)
	defer channel.Close()
	require.NoError(t, channel.Set(2, 0, 1))

	dist, err := chandist.D8(dir, channel, ds, flowdir.NoDataD8, nil)
	require.NoError(t, err)
	defer dist.Close()

	want := []float64{2, 1, 0}
	for x, wv := range want {
		v, err := dist.Get(x, 0)
		require.NoError(t, err)
		require.Equal(t, wv, v, "pixel (%d,0)", x)
	}
}
