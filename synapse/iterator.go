// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synapse decodes the sparse index ranges a network attaches to
// its neurons (weight synapses and input synapses) into flat indices.
//
// A synapse is a (start, size) pair, optionally carrying a
// reach-past-loops counter for input synapses. A non-negative start
// addresses size consecutive internal (neuron) indices, start, start+1,
// ...; a negative start addresses size consecutive external (network
// input) indices via the bijection external = -start-1, walked in the
// direction of increasing external index, i.e. start, start-1, ....
package synapse

// Range is one (start, size) synapse, with an optional reach-past-loops
// count used only by input synapses.
type Range struct {
	Start          int
	Size           int
	ReachPastLoops int
}

// IsIndexInput reports whether a flat index refers to an external
// (network input) slot rather than an internal (neuron) one.
func IsIndexInput(i int) bool {
	return i < 0
}

// ExternalIndexFromArrayIndex converts a negative synapse-encoded index
// into the non-negative external input index it denotes.
func ExternalIndexFromArrayIndex(i int) int {
	return -i - 1
}

// SynapseIndexFromInputIndex is the inverse of ExternalIndexFromArrayIndex;
// the mapping -x-1 is its own inverse.
func SynapseIndexFromInputIndex(i int) int {
	return -i - 1
}

// Iterator walks the flat indices denoted by an ordered list of Ranges,
// caching the last visited (range, offset) pair to amortize repeated
// random access via At.
type Iterator struct {
	ranges []Range
	total  int

	lastRange int
	lastFlat  int
}

// New builds an Iterator over the given ranges, in order.
func New(ranges []Range) *Iterator {
	total := 0
	for _, r := range ranges {
		total += r.Size
	}
	return &Iterator{ranges: ranges, total: total}
}

// Ranges returns the underlying synapse ranges, in iteration order.
func (it *Iterator) Ranges() []Range {
	return it.ranges
}

// Size returns the total number of flat indices this iterator visits.
func (it *Iterator) Size() int {
	return it.total
}

func indexAt(r Range, offset int) int {
	if IsIndexInput(r.Start) {
		return r.Start - offset
	}
	return r.Start + offset
}

// Iterate calls fn with every flat index denoted by the ranges, in order.
func (it *Iterator) Iterate(fn func(flatIndex int)) {
	it.IterateTerminatable(func(flatIndex int) bool {
		fn(flatIndex)
		return true
	})
}

// IterateTerminatable calls fn with every flat index in order, stopping
// early if fn returns false.
func (it *Iterator) IterateTerminatable(fn func(flatIndex int) bool) {
	for _, r := range it.ranges {
		for off := 0; off < r.Size; off++ {
			if !fn(indexAt(r, off)) {
				return
			}
		}
	}
}

// RangeAt returns the synapse range that the k-th visited element belongs
// to, and the reach-past-loops counter that applies to it.
func (it *Iterator) RangeAt(k int) Range {
	r, _ := it.rangeAndOffset(k)
	return r
}

// At returns the flat index at logical position k (0-based), amortizing
// repeated nearby access by resuming from the last (range, offset) pair
// visited.
func (it *Iterator) At(k int) int {
	r, off := it.rangeAndOffset(k)
	return indexAt(r, off)
}

// rangeAndOffset finds the (range, offset within range) pair for logical
// position k, resuming the search from the cached position when k is at
// or after the last lookup.
func (it *Iterator) rangeAndOffset(k int) (Range, int) {
	startRange, count := 0, 0
	if k >= it.lastFlat {
		startRange, count = it.lastRange, it.lastFlat
	}
	for ri := startRange; ri < len(it.ranges); ri++ {
		r := it.ranges[ri]
		if k < count+r.Size {
			off := k - count
			it.lastRange, it.lastFlat = ri, count
			return r, off
		}
		count += r.Size
	}
	panic("synapse: index out of range")
}
