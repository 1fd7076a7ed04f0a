// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"testing"

	"github.com/davids91/rafko/backprop"
	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/scalarfn"
	"github.com/stretchr/testify/assert"
)

// buildSpikeMemoryNetwork wires a single neuron: one external input with
// weight 1 feeding identity transfer, spike=memory with weight 0.5 (spec
// §8 scenario 4).
func buildSpikeMemoryNetwork() (*netmodel.Network, []Operation) {
	net := netmodel.NewNetwork(2, 1, 1, 1)
	net.Weights.Set(0, 0.5) // spike weight
	net.Weights.Set(1, 1.0) // input weight
	net.Neurons = []netmodel.Neuron{{
		SpikeFn:    scalarfn.SpikeMemory,
		TransferFn: scalarfn.TransferIdentity,
		InputFn:    scalarfn.InputAdd,
	}}

	operations := []Operation{
		{ // op0: NetworkInput, external index 0, weight 1
			Kind: NetworkInput, Index: 0,
			WeightIndex: 1, ExternalIndex: 0, ExternalStepsBack: 0,
		},
		{ // op1: NeuronInput, last (and only) term, external source
			Kind: NeuronInput, Index: 1, NeuronIndex: 0,
			Dependencies: []int{0}, UpstreamOp: 0, UpstreamIsExternal: true,
			HasNext: false,
		},
		{ // op2: TransferFn(identity)
			Kind: TransferFn, Index: 2, NeuronIndex: 0,
			Dependencies: []int{1}, TransferKind: scalarfn.TransferIdentity,
		},
		{ // op3: SpikeFn(memory, weight index 0)
			Kind: SpikeFn, Index: 3, NeuronIndex: 0,
			Dependencies: []int{2}, WeightIndex: 0, SpikeKind: scalarfn.SpikeMemory,
		},
	}
	return net, operations
}

func TestSpikeMemoryForwardSequenceMatchesSpec(t *testing.T) {
	net, operations := buildSpikeMemoryNetwork()
	buf := backprop.NewBuffer(2, len(operations), net.Weights.Len(), 3)
	history := &backprop.InputHistory{}

	inputs := [][]float64{{1}, {0}, {0}}
	want := []float64{0.5, 0.25, 0.125}

	for step, in := range inputs {
		buf.Step()
		history.Push(in)
		for i := range operations {
			operations[i].ComputeValue(net, buf, history)
		}
		got := buf.Value(operations[3].Index, 0)
		assert.InDeltaf(t, want[step], got, 1e-12, "step %d", step)
	}
}

func TestNetworkInputAndNeuronInputDoNotDoubleWeight(t *testing.T) {
	net, operations := buildSpikeMemoryNetwork()
	net.Weights.Set(1, 2.0) // input weight now 2
	buf := backprop.NewBuffer(2, len(operations), net.Weights.Len(), 3)
	history := &backprop.InputHistory{}
	history.Push([]float64{3})
	buf.Step()
	operations[0].ComputeValue(net, buf, history)
	operations[1].ComputeValue(net, buf, history)
	// NetworkInput: 3*2=6; NeuronInput forwards it unweighted (external
	// source), so it must read back exactly 6, not 12.
	assert.Equal(t, 6.0, buf.Value(0, 0))
	assert.Equal(t, 6.0, buf.Value(1, 0))
}
