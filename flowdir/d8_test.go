package flowdir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/flowdir"
	"github.com/catchbasin/flowroute/rasterio"
	"github.com/catchbasin/flowroute/rasterio/rastertest"
)

const nodata = -9999.0

func openDEM(t *testing.T, rows [][]float64) (*rasterio.ManagedRaster, *rastertest.MemDataset) {
	t.Helper()
	ds := rastertest.FromRows(rows, 4, 4, nodata)
	dem, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.NoError(t, err)
	return dem, ds
}

// TestD8_S2FlatRamp: on a flat ramp, D8 output is [[0,0,128]].
func TestD8_S2FlatRamp(t *testing.T) {
	dem, ds := openDEM(t, [][]float64{{3, 2, 1}})
	defer dem.Close()

	dir, err := flowdir.D8(dem, ds, nodata)
	require.NoError(t, err)
	defer dir.Close()

	want := []float64{0, 0, flowdir.NoDataD8}
	for x, wv := range want {
		v, err := dir.Get(x, 0)
		require.NoError(t, err)
		require.Equal(t, wv, v, "pixel (%d,0)", x)
	}
}

// TestD8_S5PlateauShortestPath: plateau shortest-path assignment
// toward a single real drain off the east edge of row 0.
func TestD8_S5PlateauShortestPath(t *testing.T) {
	rows := [][]float64{
		{5, 5, 5, 5, 0},
		{5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5},
	}
	dem, ds := openDEM(t, rows)
	defer dem.Close()

	dir, err := flowdir.D8(dem, ds, nodata)
	require.NoError(t, err)
	defer dir.Close()

	const east, north = 0, 2
	for x := 0; x < 4; x++ {
		v, err := dir.Get(x, 0)
		require.NoError(t, err)
		require.Equal(t, float64(east), v, "row 0, pixel (%d,0)", x)
	}
	for y := 1; y < 3; y++ {
		for x := 0; x < 5; x++ {
			v, err := dir.Get(x, y)
			require.NoError(t, err)
			require.NotEqual(t, flowdir.NoDataD8, v, "pixel (%d,%d) must resolve", x, y)
		}
	}
}

func TestD8_Determinism(t *testing.T) {
	rows := [][]float64{
		{5, 5, 5, 5, 0},
		{5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5},
	}
	dem, ds := openDEM(t, rows)
	defer dem.Close()

	first, err := flowdir.D8(dem, ds, nodata)
	require.NoError(t, err)
	defer first.Close()

	dem2, ds2 := openDEM(t, rows)
	defer dem2.Close()
	second, err := flowdir.D8(dem2, ds2, nodata)
	require.NoError(t, err)
	defer second.Close()

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			a, err := first.Get(x, y)
			require.NoError(t, err)
			b, err := second.Get(x, y)
			require.NoError(t, err)
			require.Equal(t, a, b, "pixel (%d,%d)", x, y)
		}
	}
}
