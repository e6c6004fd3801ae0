package neighbor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/neighbor"
)

func TestMFDCell_PackUnpack(t *testing.T) {
	c := neighbor.MFDCell(0).SetWeight(0, 5).SetWeight(6, 10)
	require.Equal(t, uint32(5), c.Weight(0))
	require.Equal(t, uint32(10), c.Weight(6))
	require.Equal(t, uint32(0), c.Weight(1))
	require.False(t, c.IsZero())
}

func TestMFDCell_PackProportional_SumsTo15(t *testing.T) {
	// Equal split among SW, S, SE (indices 5, 6, 7).
	c := neighbor.PackProportional([8]float64{0, 0, 0, 0, 0, 1, 1, 1})
	require.Equal(t, uint32(15), c.Sum())
	for _, i := range []int{5, 6, 7} {
		require.NotZero(t, c.Weight(i), "direction %d should carry weight", i)
	}
	for _, i := range []int{0, 1, 2, 3, 4} {
		require.Zero(t, c.Weight(i), "direction %d should carry no weight", i)
	}
}

func TestMFDCell_PackProportional_AllZeroIsZeroCell(t *testing.T) {
	c := neighbor.PackProportional([8]float64{})
	require.True(t, c.IsZero())
}

func TestMFDCell_Fraction(t *testing.T) {
	c := neighbor.MFDCell(0).SetWeight(0, 10).SetWeight(6, 5)
	require.InDelta(t, 2.0/3.0, c.Fraction(0), 1e-9)
	require.InDelta(t, 1.0/3.0, c.Fraction(6), 1e-9)
}
