// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/objective"
	"github.com/davids91/rafko/ops"
	"github.com/davids91/rafko/scalarfn"
	"github.com/davids91/rafko/synapse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRecurrentNetwork has two neurons: neuron 0 reads external input 0
// and feeds neuron 1; neuron 1 also feeds back into neuron 0 one step in
// the past (reach_past_loops=1), giving the builder a genuine recurrent
// reference to resolve without it looking like a same-step cycle.
func buildRecurrentNetwork() *netmodel.Network {
	n := netmodel.NewNetwork(8, 1, 1, 1)
	n.Neurons = []netmodel.Neuron{
		{
			SpikeFn: scalarfn.SpikeNone, TransferFn: scalarfn.TransferIdentity, InputFn: scalarfn.InputAdd,
			WeightSynapses: []netmodel.WeightRange{{Start: 0, Size: 1}, {Start: 1, Size: 1}, {Start: 2, Size: 1}, {Start: 3, Size: 1}},
			BiasCount:      1,
			InputSynapses:  []synapse.Range{{Start: -1, Size: 1}, {Start: 1, Size: 1, ReachPastLoops: 1}},
		},
		{
			SpikeFn: scalarfn.SpikeMemory, TransferFn: scalarfn.TransferSigmoid, InputFn: scalarfn.InputAdd,
			WeightSynapses: []netmodel.WeightRange{{Start: 4, Size: 1}, {Start: 5, Size: 1}, {Start: 6, Size: 1}},
			BiasCount:      1,
			InputSynapses:  []synapse.Range{{Start: 0, Size: 1}},
		},
	}
	return n
}

// buildSelfRecurrentNetwork has one neuron reading external input 0 and
// its own previous-step spike value (reach_past_loops=1) — the simplest
// case where ensureSpikeOp's own in-progress build is the source of a
// deferred upstream, not just another neuron's.
func buildSelfRecurrentNetwork() *netmodel.Network {
	n := netmodel.NewNetwork(8, 1, 1, 1)
	n.Neurons = []netmodel.Neuron{
		{
			SpikeFn: scalarfn.SpikeMemory, TransferFn: scalarfn.TransferIdentity, InputFn: scalarfn.InputAdd,
			WeightSynapses: []netmodel.WeightRange{{Start: 0, Size: 1}, {Start: 1, Size: 1}, {Start: 2, Size: 1}, {Start: 3, Size: 1}},
			BiasCount:      1,
			InputSynapses:  []synapse.Range{{Start: -1, Size: 1}, {Start: 0, Size: 1, ReachPastLoops: 1}},
		},
	}
	return n
}

func TestBuildResolvesSelfRecurrenceWithoutErrCycle(t *testing.T) {
	net := buildSelfRecurrentNetwork()
	g, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)

	spikeIdx, ok := g.NeuronSpikeOps[0]
	require.True(t, ok)

	found := false
	for _, op := range g.Operations {
		if op.Kind == ops.NeuronInput && op.UpstreamStepsBack == 1 && !op.UpstreamIsExternal {
			found = true
			assert.Equal(t, spikeIdx, op.UpstreamOp, "deferred self-reference should patch in neuron 0's own SpikeFn index")
			for _, dep := range op.Dependencies {
				assert.NotEqual(t, spikeIdx, dep, "a reach_past_loops>0 upstream must not be a same-step Dependency")
			}
		}
	}
	assert.True(t, found, "expected a NeuronInput operation reading the self-recurrent past-step term")
}

func TestBuildTopologicalOrder(t *testing.T) {
	net := buildRecurrentNetwork()
	g, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)
	for i, op := range g.Operations {
		for _, dep := range op.Dependencies {
			assert.Lessf(t, dep, i, "operation %d (%s) has dependency %d >= its own index", i, op.Kind, dep)
		}
	}
}

func TestNeuronIndicesSortedAscending(t *testing.T) {
	net := buildRecurrentNetwork()
	g, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, g.NeuronIndices())
}

func TestBuildDedupsSpikeFnPerNeuron(t *testing.T) {
	net := buildRecurrentNetwork()
	g, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)
	counts := map[int]int{}
	for _, op := range g.Operations {
		if op.Kind == ops.SpikeFn {
			counts[op.NeuronIndex]++
		}
	}
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, 1, counts[1])
}

// kindSequence renders a graph's operation kinds one per line, so a
// mismatch between two builds shows up as a readable line diff instead of
// an opaque slice-equality failure.
func kindSequence(g *Graph) string {
	var b strings.Builder
	for _, op := range g.Operations {
		b.WriteString(op.Kind.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func TestBuildIsIdempotent(t *testing.T) {
	net := buildRecurrentNetwork()
	g1, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)
	g2, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)

	s1, s2 := kindSequence(g1), kindSequence(g2)
	if s1 != s2 {
		t.Errorf("rebuilding the same network produced a different operation sequence:\n%s", diff.LineDiff(s1, s2))
	}
}

func TestBuildOneObjectivePerOutputNeuron(t *testing.T) {
	net := buildRecurrentNetwork()
	net.OutputCount = 2
	g, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)
	count := 0
	for _, op := range g.Operations {
		if op.Kind == ops.Objective {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Len(t, g.WeightRelevant, 2)
}

func TestBuildWithOutputSoftmaxAppendsSolutionFeatureBeforeObjectives(t *testing.T) {
	net := buildRecurrentNetwork()
	net.OutputCount = 2
	g, err := Build(net, objective.MSE{}, 1, BuildConfig{OutputSoftmax: true})
	require.NoError(t, err)

	var featureIdx, firstObjectiveIdx = -1, -1
	for _, op := range g.Operations {
		if op.Kind == ops.SolutionFeature && featureIdx == -1 {
			featureIdx = op.Index
		}
		if op.Kind == ops.Objective && firstObjectiveIdx == -1 {
			firstObjectiveIdx = op.Index
		}
	}
	require.NotEqual(t, -1, featureIdx)
	require.NotEqual(t, -1, firstObjectiveIdx)
	assert.Less(t, featureIdx, firstObjectiveIdx)
}

func TestBuildWithRegularizationAppendsWeightRegularizationOverAllWeights(t *testing.T) {
	net := buildRecurrentNetwork()
	g, err := Build(net, objective.MSE{}, 1, BuildConfig{Regularization: &RegularizationConfig{Kind: ops.RegL2}})
	require.NoError(t, err)

	found := false
	for _, op := range g.Operations {
		if op.Kind == ops.WeightRegularization {
			found = true
			assert.Equal(t, net.Weights.Len(), len(op.RegWeightIndices))
			assert.Equal(t, ops.RegL2, op.RegKind)
		}
	}
	assert.True(t, found)
}

func TestAppendDropoutAddsTrailingSolutionFeatureOperation(t *testing.T) {
	net := buildRecurrentNetwork()
	g, err := Build(net, objective.MSE{}, 1)
	require.NoError(t, err)
	before := len(g.Operations)

	idx := AppendDropout(g, []int{0}, 0.5)
	assert.Equal(t, before, idx)
	assert.Equal(t, ops.SolutionFeature, g.Operations[idx].Kind)
	assert.Equal(t, ops.FeatureDropout, g.Operations[idx].FeatureKind)
	assert.Equal(t, 0.5, g.Operations[idx].DropoutP)
}
