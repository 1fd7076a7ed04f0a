// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package netmodel holds the network data model: neurons, their synapse
// ranges into a shared weight table, and the network that owns them.
package netmodel

import "cogentcore.org/core/tensor"

// WeightTable is the flat table of trainable weights shared by every
// operation in the network; weight synapses and bias synapses address it
// by (start, size) ranges rather than holding values of their own.
type WeightTable struct {
	values tensor.Float64
}

// NewWeightTable allocates a table of n weights, all zero.
func NewWeightTable(n int) *WeightTable {
	wt := &WeightTable{}
	wt.values.SetShapeSizes(n)
	return wt
}

// Len returns the number of weights in the table.
func (wt *WeightTable) Len() int { return len(wt.values.Values) }

// Get returns the weight at i.
func (wt *WeightTable) Get(i int) float64 { return wt.values.Values[i] }

// Set stores v at weight index i.
func (wt *WeightTable) Set(i int, v float64) { wt.values.Values[i] = v }

// Add adds delta to the weight at index i.
func (wt *WeightTable) Add(i int, delta float64) { wt.values.Values[i] += delta }

// Values exposes the underlying slice for bulk operations (weight
// updaters, fragment application); callers must not change its length.
func (wt *WeightTable) Values() []float64 { return wt.values.Values }
