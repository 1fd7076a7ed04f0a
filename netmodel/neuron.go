// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"github.com/davids91/rafko/scalarfn"
	"github.com/davids91/rafko/synapse"
)

// WeightRange is a (start, size) range into a Network's WeightTable,
// mirroring the flat connection-range encoding leabra's PrjnStru uses for
// RConIdxSt/RConN, specialized to a single shared weight table rather
// than one tensor per projection.
type WeightRange struct {
	Start int
	Size  int
}

// Neuron is one node of the network: its transfer/input/spike function
// choices, the shape parameters those functions need, and the ordered
// weight and input synapses that feed it.
//
// WeightSynapses is laid out in the fixed order spec.md §3 mandates: one
// spike-function weight, then BiasCount bias weights, then exactly one
// weight per index visited across InputSynapses (in synapse order, each
// range's Size matching the corresponding InputSynapses[i].Size).
type Neuron struct {
	SpikeFn    scalarfn.Spike
	TransferFn scalarfn.Transfer
	InputFn    scalarfn.Input

	// Alpha and Lambda parameterize the ELU/SELU transfer functions; zero
	// for every other transfer function.
	Alpha  float64
	Lambda float64

	WeightSynapses []WeightRange
	BiasCount      int

	InputSynapses []synapse.Range
}

// SpikeWeightIndex returns the single weight table index holding this
// neuron's spike-function weight.
func (n *Neuron) SpikeWeightIndex() int {
	return n.WeightSynapses[0].Start
}

// BiasWeightRanges returns the slice of WeightSynapses holding bias
// weights (those between the spike weight and the per-input weights).
func (n *Neuron) BiasWeightRanges() []WeightRange {
	return n.WeightSynapses[1 : 1+n.BiasCount]
}

// InputWeightRanges returns the slice of WeightSynapses paired one-to-one
// with InputSynapses.
func (n *Neuron) InputWeightRanges() []WeightRange {
	return n.WeightSynapses[1+n.BiasCount:]
}

// InputSynapseIterator builds a synapse.Iterator over this neuron's input
// synapses.
func (n *Neuron) InputSynapseIterator() *synapse.Iterator {
	return synapse.New(n.InputSynapses)
}

// InputTerm is one visited index of a neuron's input synapses, paired
// with the single weight spec.md §3 assigns it.
type InputTerm struct {
	// SourceIndex is the synapse-encoded index: non-negative for an
	// internal neuron, negative for an external input (see the
	// synapse package's encoding invariant).
	SourceIndex    int
	WeightIndex    int
	ReachPastLoops int
}

// FlattenedInputTerms expands InputSynapses and their paired
// InputWeightRanges into the flat, ordered list of (source, weight)
// terms the graph builder folds into a NeuronInput chain.
func (n *Neuron) FlattenedInputTerms() []InputTerm {
	weightRanges := n.InputWeightRanges()
	var terms []InputTerm
	for si, syn := range n.InputSynapses {
		wr := weightRanges[si]
		it := synapse.New([]synapse.Range{syn})
		offset := 0
		it.Iterate(func(sourceIndex int) {
			terms = append(terms, InputTerm{
				SourceIndex:    sourceIndex,
				WeightIndex:    wr.Start + offset,
				ReachPastLoops: syn.ReachPastLoops,
			})
			offset++
		})
	}
	return terms
}
