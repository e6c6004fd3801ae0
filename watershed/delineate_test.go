package watershed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/flowdir"
	"github.com/catchbasin/flowroute/rasterio"
	"github.com/catchbasin/flowroute/rasterio/rastertest"
	"github.com/catchbasin/flowroute/watershed"
)

const nodata = -9999.0

// TestDelineate_NestedWatersheds covers the case where outflow A sits
// downstream of outflow B on the same ramp. A's backward BFS walks
// through pixels B already claimed, so A records B's ws_id as a
// nested fragment; B, having run first with nothing yet claimed,
// records none.
func TestDelineate_NestedWatersheds(t *testing.T) {
	ds := rastertest.FromRows([][]float64{{3, 2, 1}}, 4, 4, nodata)
	dem, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.NoError(t, err)
	defer dem.Close()

	dir, err := flowdir.D8(dem, ds, nodata)
	require.NoError(t, err)
	defer dir.Close()

	outflows := rastertest.NewMemVectorLayer("outflows", "", rasterio.GeomPoint, []rasterio.FieldDef{{Name: "name", Type: rasterio.FieldString}})
	require.NoError(t, outflows.AddFeature(rasterio.Feature{Point: [2]float64{0, 0}, Attributes: map[string]any{"name": "B"}}))
	require.NoError(t, outflows.AddFeature(rasterio.Feature{Point: [2]float64{2, 0}, Attributes: map[string]any{"name": "A"}}))

	result, err := watershed.Delineate(dir, outflows, ds, flowdir.NoDataD8)
	require.NoError(t, err)
	defer result.Close()

	feats, err := result.Features()
	require.NoError(t, err)

	byName := make(map[string]rasterio.Feature)
	for _, f := range feats {
		byName[f.Attributes["name"].(string)] = f
	}

	require.Equal(t, "", byName["B"].Attributes["upstream_fragments"])
	require.Equal(t, int64(1), byName["B"].Attributes["ws_id"])
	require.Equal(t, int64(2), byName["A"].Attributes["ws_id"])
	require.Equal(t, "1", byName["A"].Attributes["upstream_fragments"])
}

// TestDelineate_NestedWatersheds_DownstreamProcessedFirst is the same
// ramp and outflow pair as TestDelineate_NestedWatersheds with the
// AddFeature order reversed, so the downstream outflow (A) is
// processed before the upstream one (B). Before any BFS runs,
// Rasterize has already burned every seed's ws_id onto the scratch
// raster, so when A's backward BFS reaches B's still-unvisited seed
// pixel it must record B's ws_id as a nested fragment rather than
// absorb it, even though that pixel also satisfies the reverse-D8
// "flows into" condition.
func TestDelineate_NestedWatersheds_DownstreamProcessedFirst(t *testing.T) {
	ds := rastertest.FromRows([][]float64{{3, 2, 1}}, 4, 4, nodata)
	dem, err := rasterio.Open(ds, 1, rasterio.ModeRead)
	require.NoError(t, err)
	defer dem.Close()

	dir, err := flowdir.D8(dem, ds, nodata)
	require.NoError(t, err)
	defer dir.Close()

	outflows := rastertest.NewMemVectorLayer("outflows", "", rasterio.GeomPoint, []rasterio.FieldDef{{Name: "name", Type: rasterio.FieldString}})
	require.NoError(t, outflows.AddFeature(rasterio.Feature{Point: [2]float64{2, 0}, Attributes: map[string]any{"name": "A"}}))
	require.NoError(t, outflows.AddFeature(rasterio.Feature{Point: [2]float64{0, 0}, Attributes: map[string]any{"name": "B"}}))

	result, err := watershed.Delineate(dir, outflows, ds, flowdir.NoDataD8)
	require.NoError(t, err)
	defer result.Close()

	feats, err := result.Features()
	require.NoError(t, err)

	byName := make(map[string]rasterio.Feature)
	for _, f := range feats {
		byName[f.Attributes["name"].(string)] = f
	}

	require.Equal(t, int64(1), byName["A"].Attributes["ws_id"])
	require.Equal(t, int64(2), byName["B"].Attributes["ws_id"])
	require.Equal(t, "2", byName["A"].Attributes["upstream_fragments"])
	require.Equal(t, "1", byName["B"].Attributes["upstream_fragments"])
}
