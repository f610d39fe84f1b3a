package generics

import (
	"github.com/stretchr/testify/assert"
	"slices"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	// Since the builtin map iterator in Go is deliberately non-deterministic, we
	// run it a bunch of times to show it is stably sorted.
	want := []int{1, 3, 5}
	for range 100 {
		got := slices.Collect(SortedKeys(m))
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestArgMaxAll(t *testing.T) {
	assert.Nil(t, ArgMaxAll[float32](nil))
	assert.Equal(t, []int{0}, ArgMaxAll([]int{7}))
	assert.Equal(t, []int{1, 3}, ArgMaxAll([]float32{-1, 4, 2, 4}))
	assert.Equal(t, []int{0, 1, 2}, ArgMaxAll([]int{3, 3, 3}))
}

func TestMinMaxOf(t *testing.T) {
	_, found := MinOf(slices.Values([]int{}))
	assert.False(t, found)
	minV, found := MinOf(slices.Values([]int{5, -2, 9}))
	assert.True(t, found)
	assert.Equal(t, -2, minV)
	maxV, found := MaxOf(slices.Values([]int{5, -2, 9}))
	assert.True(t, found)
	assert.Equal(t, 9, maxV)
}

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	// Check inserting and recovery.
	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := SetWith(5, 7)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(5))
	assert.False(t, s2.Has(3))
}

func TestSliceMap(t *testing.T) {
	got := SliceMap([]int{1, 2, 3}, func(e int) string { return string(rune('a' + e)) })
	assert.Equal(t, []string{"b", "c", "d"}, got)
}
