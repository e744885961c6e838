package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binview/binview/array"
	"github.com/binview/binview/unit"
)

func dummyView(t *testing.T, v float64) *array.Array {
	t.Helper()
	a, err := array.New([]string{"x"}, []int{1}, unit.Counts, []float64{v})
	require.NoError(t, err)
	return a
}

func TestHomeLast_FirstStoreBecomesHome(t *testing.T) {
	c := NewHomeLastCache()
	home := dummyView(t, 1)

	c.Store("sig-a", home)
	arr, outcome := c.Lookup("sig-a")
	assert.Equal(t, HitRecent, outcome, "home is also the most recent view")
	assert.Same(t, home, arr)

	c.Store("sig-b", dummyView(t, 2))
	arr, outcome = c.Lookup("sig-a")
	assert.Equal(t, HitHome, outcome)
	assert.Same(t, home, arr)
}

func TestHomeLast_ThirdSignatureEvictsOnlyLast(t *testing.T) {
	c := NewHomeLastCache()
	c.Store("sig-a", dummyView(t, 1))
	c.Store("sig-b", dummyView(t, 2))
	c.Store("sig-c", dummyView(t, 3))

	_, outcome := c.Lookup("sig-b")
	assert.Equal(t, Miss, outcome)
	_, outcome = c.Lookup("sig-a")
	assert.Equal(t, HitHome, outcome, "home survives any number of stores")
	_, outcome = c.Lookup("sig-c")
	assert.Equal(t, HitRecent, outcome)
}

func TestHomeLast_Reset(t *testing.T) {
	c := NewHomeLastCache()
	c.Store("sig-a", dummyView(t, 1))
	c.Reset()
	_, outcome := c.Lookup("sig-a")
	assert.Equal(t, Miss, outcome)
}

func TestLRU_KeepsBoundedHistory(t *testing.T) {
	c := NewLRUCache(2)
	c.Store("sig-a", dummyView(t, 1)) // pinned as home
	c.Store("sig-b", dummyView(t, 2))
	c.Store("sig-c", dummyView(t, 3))
	c.Store("sig-d", dummyView(t, 4))

	_, outcome := c.Lookup("sig-b")
	assert.Equal(t, Miss, outcome, "evicted")
	_, outcome = c.Lookup("sig-c")
	assert.Equal(t, HitRecent, outcome)
	_, outcome = c.Lookup("sig-d")
	assert.Equal(t, HitRecent, outcome)
	_, outcome = c.Lookup("sig-a")
	assert.Equal(t, HitHome, outcome, "home guarantee holds under eviction")
}

func TestLRU_LookupRefreshesRecency(t *testing.T) {
	c := NewLRUCache(2)
	c.Store("sig-a", dummyView(t, 1))
	c.Store("sig-b", dummyView(t, 2))
	c.Store("sig-c", dummyView(t, 3))

	_, _ = c.Lookup("sig-b")      // refresh b
	c.Store("sig-d", dummyView(t, 4)) // evicts c

	_, outcome := c.Lookup("sig-b")
	assert.Equal(t, HitRecent, outcome)
	_, outcome = c.Lookup("sig-c")
	assert.Equal(t, Miss, outcome)
}
