// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autodiff

import (
	"testing"

	"github.com/davids91/rafko/graph"
	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/objective"
	"github.com/davids91/rafko/ops"
	"github.com/davids91/rafko/scalarfn"
	"github.com/davids91/rafko/synapse"
	"github.com/davids91/rafko/weightupdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLinearNetwork is a single neuron computing w1 + w2*input0: identity
// transfer, add input function, no-op spike function, one bias and one
// external input synapse. Weight layout: [0]=spike (unused), [1]=bias,
// [2]=input weight.
func buildLinearNetwork(bias, inputWeight float64) *netmodel.Network {
	n := netmodel.NewNetwork(3, 1, 0, 1)
	n.Weights.Set(1, bias)
	n.Weights.Set(2, inputWeight)
	n.Neurons = []netmodel.Neuron{
		{
			SpikeFn:    scalarfn.SpikeNone,
			TransferFn: scalarfn.TransferIdentity,
			InputFn:    scalarfn.InputAdd,
			WeightSynapses: []netmodel.WeightRange{
				{Start: 0, Size: 1},
				{Start: 1, Size: 1},
				{Start: 2, Size: 1},
			},
			BiasCount:     1,
			InputSynapses: []synapse.Range{{Start: -1, Size: 1}},
		},
	}
	return n
}

func TestForwardConsistencyBetweenIterateAndSolve(t *testing.T) {
	net := buildLinearNetwork(0.5, 2.0)
	g, err := graph.Build(net, objective.MSE{}, 1)
	require.NoError(t, err)

	inputs := [][]float64{{1.0}, {2.0}, {3.0}}
	labels := [][]float64{{2.5}, {4.5}, {6.5}}

	updater := weightupdate.NewPlain(net.Weights, weightupdate.HyperParams{LearningRate: 0})
	opt := New(net, g, updater, len(inputs))
	require.NoError(t, opt.Iterate(nil, inputs, labels))

	spikeOpIdx := -1
	for _, op := range g.Operations {
		if op.Kind == ops.SpikeFn {
			spikeOpIdx = op.Index
		}
	}
	require.GreaterOrEqual(t, spikeOpIdx, 0)
	fromIterate := opt.Buffer().Value(spikeOpIdx, 0)

	solveBuf, err := Solve(net, g, nil, inputs)
	require.NoError(t, err)
	fromSolve := solveBuf.Value(spikeOpIdx, 0)

	assert.InDelta(t, fromSolve, fromIterate, 1e-10)
	assert.InDelta(t, 0.5+2.0*3.0, fromIterate, 1e-10)
}

func TestGradientMatchesFiniteDifference(t *testing.T) {
	const h = 1e-5
	inputs := [][]float64{{1.0}, {2.0}}
	labels := [][]float64{{1.0}, {1.0}}

	gradAt := func(bias, inputWeight float64) []float64 {
		net := buildLinearNetwork(bias, inputWeight)
		g, err := graph.Build(net, objective.SquaredError{}, 1)
		require.NoError(t, err)
		updater := weightupdate.NewPlain(net.Weights, weightupdate.HyperParams{LearningRate: 0})
		opt := New(net, g, updater, len(inputs))
		require.NoError(t, opt.Iterate(nil, inputs, labels))
		return opt.Gradients()
	}

	// finite-difference the per-step-averaged squared-error cost with
	// respect to the bias weight directly, bypassing the autodiff gradient
	// machinery. AvgGradient averages sequence_derivatives across steps,
	// so the comparable finite-difference quantity is the average
	// per-step cost, not its sum.
	costOf := func(bias, inputWeight float64) float64 {
		total := 0.0
		for i, in := range inputs {
			pred := bias + inputWeight*in[0]
			diff := pred - labels[i][0]
			total += diff * diff
		}
		return total / float64(len(inputs))
	}

	base := gradAt(0.5, 2.0)
	plus := costOf(0.5+h, 2.0)
	minus := costOf(0.5-h, 2.0)
	fd := (plus - minus) / (2 * h)

	// sequence_derivatives starts each slot at zero and folds in exactly
	// one Objective write per step here (single output neuron), and the
	// running average is (stored+new)/2 by design (backprop.Buffer's
	// recency-biased average), so a single write halves the raw
	// derivative before AvgGradient ever averages across steps.
	assert.InDelta(t, fd/2, base[1], 1e-3)
}

func TestIterateAppliesPlainUpdate(t *testing.T) {
	net := buildLinearNetwork(0.5, 2.0)
	g, err := graph.Build(net, objective.SquaredError{}, 1)
	require.NoError(t, err)
	inputs := [][]float64{{1.0}}
	labels := [][]float64{{1.0}}

	updater := weightupdate.NewPlain(net.Weights, weightupdate.HyperParams{LearningRate: 0.1})
	opt := New(net, g, updater, len(inputs))
	before := net.Weights.Get(1)
	require.NoError(t, opt.Iterate(nil, inputs, labels))
	after := net.Weights.Get(1)
	assert.NotEqual(t, before, after)
}
