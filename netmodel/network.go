// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netmodel

import (
	"errors"
	"fmt"

	"github.com/davids91/rafko/synapse"
)

var (
	// ErrNoNeurons is returned by Validate when a network has no neurons.
	ErrNoNeurons = errors.New("netmodel: network has no neurons")
	// ErrTooFewOutputs is returned when OutputCount exceeds the neuron count.
	ErrTooFewOutputs = errors.New("netmodel: output count exceeds neuron count")
	// ErrWeightRangeOutOfBounds is returned when a neuron's weight synapse
	// addresses an index outside the weight table.
	ErrWeightRangeOutOfBounds = errors.New("netmodel: weight synapse out of bounds")
	// ErrInputSynapseOutOfBounds is returned when an input synapse's
	// internal index falls outside the neuron array.
	ErrInputSynapseOutOfBounds = errors.New("netmodel: input synapse out of bounds")
)

// Network is the external, read-mostly-during-training description of a
// compiled neural network: an ordered array of neurons, a shared weight
// table, and the input/output bookkeeping the rest of the package needs.
type Network struct {
	Neurons []Neuron
	Weights *WeightTable

	// InputDataSize is the number of external network inputs per time
	// step.
	InputDataSize int

	// MemorySize is the minimum history length the network's spike/input
	// functions reach back across (the largest ReachPastLoops value used
	// anywhere, at least).
	MemorySize int

	// OutputCount is K: the last K neurons, in order, are the network's
	// outputs.
	OutputCount int
}

// NewNetwork builds a Network, allocating a weight table sized by
// weightCount; callers populate Neurons and then call Validate.
func NewNetwork(weightCount, inputDataSize, memorySize, outputCount int) *Network {
	return &Network{
		Weights:       NewWeightTable(weightCount),
		InputDataSize: inputDataSize,
		MemorySize:    memorySize,
		OutputCount:   outputCount,
	}
}

// OutputNeuronIndex maps an output slot 0..OutputCount-1 to its neuron
// index.
func (n *Network) OutputNeuronIndex(outputSlot int) int {
	return len(n.Neurons) - n.OutputCount + outputSlot
}

// IsOutputNeuron reports whether neuronIndex is among the last
// OutputCount neurons.
func (n *Network) IsOutputNeuron(neuronIndex int) bool {
	return neuronIndex >= len(n.Neurons)-n.OutputCount
}

// Validate checks the structural invariants spec.md §3 requires: every
// weight synapse addresses the weight table in bounds, every internal
// input synapse addresses a neuron in bounds, and the output range fits.
// It does not panic on malformed networks — bad topology from a caller is
// a user-reachable error, not a bug in this package.
func (n *Network) Validate() error {
	if len(n.Neurons) == 0 {
		return ErrNoNeurons
	}
	if n.OutputCount > len(n.Neurons) {
		return ErrTooFewOutputs
	}
	weightLen := n.Weights.Len()
	for ni, neuron := range n.Neurons {
		for _, wr := range neuron.WeightSynapses {
			if wr.Start < 0 || wr.Start+wr.Size > weightLen {
				return fmt.Errorf("neuron %d weight range [%d,%d): %w", ni, wr.Start, wr.Start+wr.Size, ErrWeightRangeOutOfBounds)
			}
		}
		for _, is := range neuron.InputSynapses {
			if err := n.validateInputSynapse(ni, is); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *Network) validateInputSynapse(neuronIndex int, is synapse.Range) error {
	// external (network-input) indices are bounds-checked by the caller
	// against InputDataSize at read time (dataset.View supplies them);
	// only internal neuron indices are checked here.
	if is.Start < 0 {
		return nil
	}
	last := is.Start
	if is.Size > 0 {
		last = is.Start + is.Size - 1
	}
	if last >= len(n.Neurons) {
		return fmt.Errorf("neuron %d input synapse reaches neuron %d: %w", neuronIndex, last, ErrInputSynapseOutOfBounds)
	}
	return nil
}
