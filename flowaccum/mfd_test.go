package flowaccum_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/flowaccum"
	"github.com/catchbasin/flowroute/flowdir"
	"github.com/catchbasin/flowroute/rasterio"
	"github.com/catchbasin/flowroute/rasterio/rastertest"
)

// TestMFD_NoDataPixelStaysNoData mirrors TestD8_NoDataPixelStaysNoData
// for the MFD convention: (1,1)'s packed cell carries nonzero weight
// toward the in-bounds nodata cell (2,1) alongside its off-raster
// weights (flowdir's promoted nodata-drain case), so isRoot must
// recognize it as a root from its outflow neighbours rather than from
// its own packed cell being nonzero, and the nodata cell itself must
// never receive a computed accumulation value.
func TestMFD_NoDataPixelStaysNoData(t *testing.T) {
	ds := rastertest.FromRows([][]float64{
		{9, 9, 9},
		{5, 5, nodata},
	}, 4, 4, nodata)
	dem, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.NoError(t, err)
	defer dem.Close()

	dir, err := flowdir.MFD(dem, ds, nodata)
	require.NoError(t, err)
	defer dir.Close()

	accum, err := flowaccum.MFD(dir, ds, flowdir.NoDataMFD, nil)
	require.NoError(t, err)
	defer accum.Close()

	v, err := accum.Get(2, 1)
	require.NoError(t, err)
	require.Equal(t, flowaccum.NoDataAccum, v, "nodata DEM cell must stay at NoDataAccum")

	v, err = accum.Get(1, 1)
	require.NoError(t, err)
	require.NotEqual(t, flowaccum.NoDataAccum, v, "edge-drain pixel whose outflow weight lands partly on the nodata cell must still be treated as a root")
	require.Greater(t, v, 0.0)
}
