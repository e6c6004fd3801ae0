package routing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/flowdir"
	"github.com/catchbasin/flowroute/rasterio"
	"github.com/catchbasin/flowroute/rasterio/rastertest"
	"github.com/catchbasin/flowroute/routing"
)

const nodata = -9999.0

// mapOpener resolves every path against a fixed in-memory table, the
// test-side stand-in for a real GDAL/OGR-backed Opener.
type mapOpener struct {
	rasters map[string]rasterio.Dataset
	vectors map[string]rasterio.VectorLayer
}

func (o mapOpener) OpenRaster(path string, mode rasterio.Mode) (rasterio.Dataset, error) {
	ds, ok := o.rasters[path]
	if !ok {
		return nil, rasterio.ErrBadBand
	}
	return ds, nil
}

func (o mapOpener) OpenVector(path string) (rasterio.VectorLayer, error) {
	v, ok := o.vectors[path]
	if !ok {
		return nil, rasterio.ErrBadBand
	}
	return v, nil
}

func TestFillPits_InvalidArgument(t *testing.T) {
	e := routing.New(mapOpener{})

	_, err := e.FillPits("", 1, "out")
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	ds := rastertest.FromRows([][]float64{{1}}, 4, 4, nodata)
	e2 := routing.New(mapOpener{rasters: map[string]rasterio.Dataset{"dem.tif": ds}})
	_, err = e2.FillPits("dem.tif", 0, "out")
	require.ErrorIs(t, err, routing.ErrInvalidArgument)
}

func TestRemainingEntryPoints_InvalidArgument(t *testing.T) {
	e := routing.New(mapOpener{})

	_, err := e.FlowDirD8("", 1, "out")
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	_, err = e.FlowDirMFD("dem.tif", 0, "out")
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	_, err = e.FlowAccumulationD8("", 1, "out", "", 0)
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	_, err = e.FlowAccumulationD8("dir.tif", 1, "out", "weight.tif", 0)
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	_, err = e.FlowAccumulationMFD("dir.tif", 0, "out", "", 0)
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	_, err = e.DistanceToChannelD8("", 1, "chan.tif", 1, "out", "", 0)
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	_, err = e.DistanceToChannelMFD("dir.tif", 0, "chan.tif", 1, "out", "", 0)
	require.ErrorIs(t, err, routing.ErrInvalidArgument)

	_, err = e.DelineateWatersheds("", 1, "outflows.shp", "out")
	require.ErrorIs(t, err, routing.ErrInvalidArgument)
}

// TestFillPits_RaisesCentralPit exercises fill_pits through the
// public API.
func TestFillPits_RaisesCentralPit(t *testing.T) {
	ds := rastertest.FromRows([][]float64{
		{9, 9, 9, 9, 9},
		{9, 5, 5, 5, 9},
		{9, 5, 1, 5, 9},
		{9, 5, 5, 5, 9},
		{9, 9, 9, 9, 9},
	}, 4, 4, nodata)
	e := routing.New(mapOpener{rasters: map[string]rasterio.Dataset{"dem.tif": ds}})

	filled, err := e.FillPits("dem.tif", 1, "flowroute_test_filled")
	require.NoError(t, err)
	defer filled.Close()

	v, err := filled.Get(2, 2)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
}

// TestFlowAccumulationD8_ThroughAPI feeds a precomputed D8 direction
// raster (as a prior pipeline stage's persisted output would look)
// through the public flow_accumulation_d8 entry point.
func TestFlowAccumulationD8_ThroughAPI(t *testing.T) {
	demDS := rastertest.FromRows([][]float64{{3, 2, 1}}, 4, 4, nodata)
	dem, err := rasterio.Open(demDS, 1, rasterio.ModeRead)
	require.NoError(t, err)
	defer dem.Close()

	dir, err := flowdir.D8(dem, demDS, nodata)
	require.NoError(t, err)
	defer dir.Close()

	dirDS, err := demDS.CreateFrom("dir.tif", 1, rasterio.Byte, flowdir.NoDataD8, flowdir.NoDataD8, rasterio.DefaultCreationOptions())
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		v, err := dir.Get(x, 0)
		require.NoError(t, err)
		require.NoError(t, dirDS.WriteWindow(1, x, 0, 1, 1, []float64{v}))
	}

	e := routing.New(mapOpener{rasters: map[string]rasterio.Dataset{"dir.tif": dirDS}})
	accum, err := e.FlowAccumulationD8("dir.tif", 1, "flowroute_test_accum", "", 0)
	require.NoError(t, err)
	defer accum.Close()

	want := []float64{1, 2, 3}
	for x, wv := range want {
		v, err := accum.Get(x, 0)
		require.NoError(t, err)
		require.Equal(t, wv, v, "pixel (%d,0)", x)
	}
}
