// Package generics implements generic data structure functions missing from the stdlib.
package generics

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// SliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// SortedKeys returns an iterator over the sorted keys of the given map.
//
// It extracts the keys, sort them and then iterate over, so it's convenient but not fast.
func SortedKeys[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) iter.Seq[K] {
	sortedKeys := slices.Collect(maps.Keys(m))
	slices.Sort(sortedKeys)
	return slices.Values(sortedKeys)
}

// ArgMaxAll returns the indices of all the elements equal to the maximum value, in increasing order.
// It returns nil for an empty slice.
//
// Values are compared with ==, so NaN is never part of the result unless all values are NaN.
func ArgMaxAll[T cmp.Ordered](values []T) (indices []int) {
	if len(values) == 0 {
		return nil
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	for ii, v := range values {
		if v == best {
			indices = append(indices, ii)
		}
	}
	return
}

// MinOf returns the minimum of the values produced by seq, and false if seq was empty.
func MinOf[T cmp.Ordered](seq iter.Seq[T]) (minValue T, found bool) {
	for v := range seq {
		if !found || v < minValue {
			minValue = v
			found = true
		}
	}
	return
}

// MaxOf returns the maximum of the values produced by seq, and false if seq was empty.
func MaxOf[T cmp.Ordered](seq iter.Seq[T]) (maxValue T, found bool) {
	for v := range seq {
		if !found || v > maxValue {
			maxValue = v
			found = true
		}
	}
	return
}

// Set implements a Set for the key type T.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set of the given type. Size is optional, and if given
// will reserve the expected size.
func MakeSet[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// SetWith creates a Set[T] with the given elements inserted.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	for _, element := range elements {
		s.Insert(element)
	}
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}
