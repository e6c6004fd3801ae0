package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/kernel"
	"github.com/catchbasin/flowroute/rasterio/rastertest"
)

func memDataset(maxDistance float64) *rastertest.MemDataset {
	size := kernel.Size(maxDistance)
	return rastertest.New(size, size, 4, 4, []float64{0})
}

func TestDichotomous_UnitDisc(t *testing.T) {
	ds := memDataset(1)
	k, err := kernel.Dichotomous(ds, 1)
	require.NoError(t, err)
	defer k.Close()

	r := kernel.Radius(1)
	center, err := k.Get(r, r)
	require.NoError(t, err)
	require.Equal(t, 1.0, center)

	corner, err := k.Get(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, corner)
}

func TestExponential_NormalizedToOne(t *testing.T) {
	ds := memDataset(3)
	k, err := kernel.Exponential(ds, 3)
	require.NoError(t, err)
	defer k.Close()

	size := kernel.Size(3)
	var sum float64
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v, err := k.Get(x, y)
			require.NoError(t, err)
			sum += v
		}
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestGaussian_CenterIsMaximum(t *testing.T) {
	ds := memDataset(3)
	k, err := kernel.Gaussian(ds, 1, 3)
	require.NoError(t, err)
	defer k.Close()

	r := kernel.Radius(3)
	center, err := k.Get(r, r)
	require.NoError(t, err)
	edge, err := k.Get(0, r)
	require.NoError(t, err)
	require.Greater(t, center, edge)
}

func TestCreateDistanceBasedKernel_WrongSize(t *testing.T) {
	ds := rastertest.New(3, 3, 4, 4, []float64{0})
	_, err := kernel.Dichotomous(ds, 5)
	require.ErrorIs(t, err, kernel.ErrBadKernelSize)
}
