// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package weightfrag implements sparse weight fragments: a values array
// plus a list of (start, length) ranges over a weight table, applied with
// apply := w - learning_rate*delta, grounded on spec.md §3/§8 and the
// original RafkoNetApproximizer's gradient-fragment collection.
package weightfrag

import (
	"fmt"

	"github.com/davids91/rafko/netmodel"
	"gonum.org/v1/gonum/floats"
)

// Range is a (start, length) span over the weight table.
type Range struct {
	Start  int
	Length int
}

// Fragment is a sparse weight update: Values holds one delta per weight
// index named by Ranges, in the same flattened order the ranges are
// listed in.
type Fragment struct {
	Ranges []Range
	Values []float64
}

// New builds a Fragment, validating that Values has exactly as many
// entries as the ranges cover.
func New(ranges []Range, values []float64) (*Fragment, error) {
	total := 0
	for _, r := range ranges {
		total += r.Length
	}
	if total != len(values) {
		return nil, fmt.Errorf("weightfrag: ranges cover %d weights but got %d values", total, len(values))
	}
	return &Fragment{Ranges: ranges, Values: values}, nil
}

// Negate returns a new fragment with every delta negated, same ranges.
func (f *Fragment) Negate() *Fragment {
	neg := make([]float64, len(f.Values))
	copy(neg, f.Values)
	floats.Scale(-1, neg)
	return &Fragment{Ranges: f.Ranges, Values: neg}
}

// Apply subtracts learningRate*delta from each weight the fragment names.
// Applying a fragment and then its Negate() restores the weight table
// exactly (spec.md §8's round-trip idempotence property), since Apply's
// subtraction and Negate's sign flip are each other's inverse bit for bit
// when learningRate is held fixed across both calls.
func Apply(f *Fragment, weights *netmodel.WeightTable, learningRate float64) error {
	idx := 0
	for _, r := range f.Ranges {
		if r.Start < 0 || r.Start+r.Length > weights.Len() {
			return fmt.Errorf("weightfrag: range [%d,%d) out of bounds for %d weights", r.Start, r.Start+r.Length, weights.Len())
		}
		for j := 0; j < r.Length; j++ {
			weights.Add(r.Start+j, -learningRate*f.Values[idx])
			idx++
		}
	}
	return nil
}
