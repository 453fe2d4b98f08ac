package priorityarr

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxCost = 1 << 30

func TestNewAllInfinite(t *testing.T) {
	a := New(5, maxCost)
	_, v := a.GetMinIndex()
	assert.Equal(t, maxCost, v)
}

func TestSetLowersMinimum(t *testing.T) {
	a := New(4, maxCost)
	a.Set(2, 10)
	idx, v := a.GetMinIndex()
	assert.Equal(t, 2, idx)
	assert.Equal(t, 10, v)

	a.Set(0, 3)
	idx, v = a.GetMinIndex()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 3, v)
}

func TestSetRaiseToRemoveFromFrontier(t *testing.T) {
	a := New(3, maxCost)
	a.Set(0, 1)
	a.Set(1, 2)
	idx, _ := a.GetMinIndex()
	require.Equal(t, 0, idx)

	// Raising slot 0 back to maxCost should make slot 1 the new minimum,
	// mirroring how the search engine retires a popped cell.
	a.Set(0, maxCost)
	idx, v := a.GetMinIndex()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, v)
}

func TestNonPowerOfTwoSizePadding(t *testing.T) {
	a := New(5, maxCost)
	assert.Equal(t, 5, a.Len())
	for i := 0; i < 5; i++ {
		a.Set(i, 100-i)
	}
	idx, v := a.GetMinIndex()
	assert.Equal(t, 4, idx)
	assert.Equal(t, 96, v)
}

func TestGetReflectsSet(t *testing.T) {
	a := New(8, maxCost)
	a.Set(3, 55)
	assert.Equal(t, 55, a.Get(3))
	assert.Equal(t, maxCost, a.Get(0))
}

func TestAgainstBruteForce(t *testing.T) {
	const n = 37
	a := New(n, maxCost)
	ref := make([]int, n)
	for i := range ref {
		ref[i] = maxCost
	}
	rng := rand.New(rand.NewSource(1))
	for step := 0; step < 500; step++ {
		i := rng.Intn(n)
		v := rng.Intn(1000)
		a.Set(i, v)
		ref[i] = v

		wantIdx, wantVal := 0, ref[0]
		for j, rv := range ref {
			if rv < wantVal {
				wantIdx, wantVal = j, rv
			}
		}
		gotIdx, gotVal := a.GetMinIndex()
		assert.Equal(t, wantVal, gotVal)
		assert.Equal(t, wantVal, ref[gotIdx])
		_ = wantIdx
	}
}

func TestPanicsOnBadNewSize(t *testing.T) {
	assert.Panics(t, func() { New(0, maxCost) })
}

func TestPanicsOnOutOfRange(t *testing.T) {
	a := New(3, maxCost)
	assert.Panics(t, func() { a.Set(3, 1) })
	assert.Panics(t, func() { a.Get(-1) })
}
