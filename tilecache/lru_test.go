package tilecache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/tilecache"
)

func TestCache_PutGetExists(t *testing.T) {
	c := tilecache.New(2)
	require.Equal(t, 0, c.Len())

	b0 := tilecache.NewBlock(0, 2, 2)
	require.Empty(t, c.Put(b0))
	require.True(t, c.Exists(0))

	got, ok := c.Get(0)
	require.True(t, ok)
	require.Same(t, b0, got)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := tilecache.New(2)
	b0 := tilecache.NewBlock(0, 2, 2)
	b1 := tilecache.NewBlock(1, 2, 2)
	b2 := tilecache.NewBlock(2, 2, 2)

	require.Empty(t, c.Put(b0))
	require.Empty(t, c.Put(b1))
	// Touch b0 so b1 becomes least-recently-used.
	_, _ = c.Get(0)

	evicted := c.Put(b2)
	require.Len(t, evicted, 1)
	require.Equal(t, int64(1), evicted[0].Index)
	require.False(t, c.Exists(1))
	require.True(t, c.Exists(0))
	require.True(t, c.Exists(2))
	require.LessOrEqual(t, c.Len(), c.Capacity())
}

func TestCache_NeverExceedsCapacity(t *testing.T) {
	c := tilecache.New(3)
	for i := int64(0); i < 100; i++ {
		c.Put(tilecache.NewBlock(i, 4, 4))
		require.LessOrEqual(t, c.Len(), c.Capacity())
	}
	require.Equal(t, 3, c.Len())
}

func TestCache_PutSameIndexTwiceDoesNotDuplicate(t *testing.T) {
	c := tilecache.New(4)
	b0 := tilecache.NewBlock(0, 2, 2)
	c.Put(b0)
	b0Updated := tilecache.NewBlock(0, 2, 2)
	b0Updated.Dirty = true
	evicted := c.Put(b0Updated)
	require.Empty(t, evicted)
	require.Equal(t, 1, c.Len())
	got, _ := c.Get(0)
	require.True(t, got.Dirty)
}

func TestCache_DefaultCapacity(t *testing.T) {
	c := tilecache.New(0)
	require.Equal(t, tilecache.DefaultCapacity, c.Capacity())
}

func TestCache_RemoveAndAll(t *testing.T) {
	c := tilecache.New(4)
	c.Put(tilecache.NewBlock(0, 2, 2))
	c.Put(tilecache.NewBlock(1, 2, 2))

	b, ok := c.Remove(0)
	require.True(t, ok)
	require.Equal(t, int64(0), b.Index)
	require.False(t, c.Exists(0))

	all := c.All()
	require.Len(t, all, 1)
	require.Equal(t, int64(1), all[0].Index)
}
