// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph builds the autodiff operation list from a network: a
// worklist-driven dependency resolution (recursion standing in for the
// explicit worklist spec.md §4.5 describes, since each same-time-step
// request strictly shortens the distance to a network input or a dedup'd
// SpikeFn, the same termination argument either way), deduplicating one
// SpikeFn operation per neuron and finalizing a topologically-ordered
// operation list. A reach_past_loops>0 reference to a neuron still
// mid-build — self-recurrence, or two neurons feeding each other a step
// apart — is deferred and patched in once that neuron's SpikeFn index is
// known, rather than recursed into, since it reads a past, already-settled
// ring-buffer slot rather than this step's still-being-built value.
package graph

import (
	"errors"
	"fmt"

	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/objective"
	"github.com/davids91/rafko/ops"
	"github.com/davids91/rafko/synapse"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrCycle is returned when a neuron's same-time-step inputs form a cycle
// that no reach_past_loops breaks; such a network cannot be evaluated
// combinationally.
var ErrCycle = errors.New("graph: same-time-step dependency cycle")

// ErrNeuronHasNoTerms is returned when a neuron has neither bias weights
// nor input synapses to feed its transfer function.
var ErrNeuronHasNoTerms = errors.New("graph: neuron has no bias or input terms")

// Graph is the finalized, built operation list for a network.
type Graph struct {
	Operations []ops.Operation

	// WeightRelevant lists the Objective operation indices: the only
	// operations sequence_derivatives accumulates from.
	WeightRelevant []int

	// NeuronSpikeOps maps each visited neuron index to its (dedup'd)
	// SpikeFn operation index, the same lookup the builder itself used
	// while resolving NeuronInput upstream references.
	NeuronSpikeOps map[int]int
}

// NeuronIndices returns every neuron index the graph has a SpikeFn
// operation for, sorted ascending.
func (g *Graph) NeuronIndices() []int {
	indices := maps.Keys(g.NeuronSpikeOps)
	slices.Sort(indices)
	return indices
}

// RegularizationConfig requests one WeightRegularization operation over a
// set of weight indices (every weight, if WeightIndices is nil).
type RegularizationConfig struct {
	Kind          ops.RegKind
	WeightIndices []int
}

// BuildConfig extends Build with the optional solution-feature and
// regularization operations spec.md §3's discriminated operation list
// names alongside the core neuron/objective kinds.
type BuildConfig struct {
	// Regularization, if set, appends one WeightRegularization operation
	// computing the named penalty over the named weights.
	Regularization *RegularizationConfig

	// OutputSoftmax, if true, appends one SolutionFeature operation that
	// rewrites every output neuron's spike value into a softmax
	// distribution over the output slots.
	OutputSoftmax bool
}

// Build constructs the operation list for net: one Objective operation
// per output neuron (wired to costFn and sampleSize), the full dependency
// closure of TransferFn/SpikeFn/NeuronInput/NeuronBias/NetworkInput
// operations each output neuron's spike value needs, and any solution
// feature / regularization operations cfg requests.
func Build(net *netmodel.Network, costFn objective.CostFunction, sampleSize int, cfg ...BuildConfig) (*Graph, error) {
	b := &builder{net: net, spikeOps: map[int]int{}, building: map[int]bool{}, pending: map[int][]int{}}

	outputSpikeOps := make([]int, net.OutputCount)
	for slot := 0; slot < net.OutputCount; slot++ {
		neuronIndex := net.OutputNeuronIndex(slot)
		spikeIdx, err := b.ensureSpikeOp(neuronIndex)
		if err != nil {
			return nil, err
		}
		outputSpikeOps[slot] = spikeIdx
	}

	if len(cfg) > 0 && cfg[0].OutputSoftmax {
		b.append(ops.Operation{
			Kind:             ops.SolutionFeature,
			FeatureKind:      ops.FeatureSoftmax,
			Dependencies:     append([]int{}, outputSpikeOps...),
			FeatureTargetOps: append([]int{}, outputSpikeOps...),
		})
	}

	for slot := 0; slot < net.OutputCount; slot++ {
		objIdx := b.append(ops.Operation{
			Kind:         ops.Objective,
			Dependencies: []int{outputSpikeOps[slot]},
			OutputSlot:   slot,
			CostFn:       costFn,
			SampleSize:   sampleSize,
		})
		b.weightRelevant = append(b.weightRelevant, objIdx)
	}

	if len(cfg) > 0 && cfg[0].Regularization != nil {
		reg := cfg[0].Regularization
		indices := reg.WeightIndices
		if indices == nil {
			indices = make([]int, net.Weights.Len())
			for i := range indices {
				indices[i] = i
			}
		}
		b.append(ops.Operation{
			Kind:             ops.WeightRegularization,
			RegKind:          reg.Kind,
			RegWeightIndices: indices,
		})
	}

	return &Graph{Operations: b.operations, WeightRelevant: b.weightRelevant, NeuronSpikeOps: b.spikeOps}, nil
}

// AppendDropout appends a dropout SolutionFeature operation rewriting the
// named operations' buffered values in place. Unlike OutputSoftmax this is
// not wired in Build itself because the dropout mask is per-step random
// state the training context generates fresh every sequence, not part of
// the static topology; callers set Graph.Operations[idx].DropoutMask
// (and DropoutP) before each forward pass.
func AppendDropout(g *Graph, targetOps []int, p float64) int {
	op := ops.Operation{
		Kind:             ops.SolutionFeature,
		FeatureKind:      ops.FeatureDropout,
		FeatureTargetOps: append([]int{}, targetOps...),
		DropoutP:         p,
	}
	op.Index = len(g.Operations)
	g.Operations = append(g.Operations, op)
	return op.Index
}

type builder struct {
	net        *netmodel.Network
	operations []ops.Operation
	spikeOps   map[int]int
	building   map[int]bool

	// pending maps a neuron index still mid-build to the indices of the
	// NeuronInput operations waiting on its eventual SpikeFn index: a
	// reach_past_loops>0 reference to that neuron (ordinary self/mutual
	// recurrence, reading a past time step already sitting in the ring
	// buffer) rather than the same-step combinational cycle building[...]
	// guards against. Patched in once ensureSpikeOp finishes that neuron.
	pending map[int][]int

	weightRelevant []int
}

func (b *builder) append(op ops.Operation) int {
	op.Index = len(b.operations)
	b.operations = append(b.operations, op)
	return op.Index
}

// ensureSpikeOp returns the SpikeFn operation index for neuronIndex,
// building its whole dependency chain on first request and reusing it on
// every subsequent request (the dedup contract spec.md §4.4 requires).
// building[neuronIndex] only ever guards against a genuine same-time-step
// combinational cycle; a reach_past_loops>0 reference to a neuron still
// mid-build is resolved by resolveUpstream as a deferred upstream (see
// buildFoldChain) instead of recursing back in here, so self- and
// mutually-recurrent neurons build without ever hitting this guard.
func (b *builder) ensureSpikeOp(neuronIndex int) (int, error) {
	if idx, ok := b.spikeOps[neuronIndex]; ok {
		return idx, nil
	}
	if b.building[neuronIndex] {
		return 0, fmt.Errorf("neuron %d: %w", neuronIndex, ErrCycle)
	}
	b.building[neuronIndex] = true
	defer delete(b.building, neuronIndex)

	neuron := &b.net.Neurons[neuronIndex]
	head, err := b.buildFoldChain(neuronIndex, neuron)
	if err != nil {
		return 0, err
	}
	transferIdx := b.append(ops.Operation{
		Kind:         ops.TransferFn,
		NeuronIndex:  neuronIndex,
		Dependencies: []int{head},
		TransferKind: neuron.TransferFn,
		Alpha:        neuron.Alpha,
		Lambda:       neuron.Lambda,
	})
	spikeIdx := b.append(ops.Operation{
		Kind:         ops.SpikeFn,
		NeuronIndex:  neuronIndex,
		Dependencies: []int{transferIdx},
		WeightIndex:  neuron.SpikeWeightIndex(),
		SpikeKind:    neuron.SpikeFn,
	})
	b.spikeOps[neuronIndex] = spikeIdx

	for _, opIdx := range b.pending[neuronIndex] {
		b.operations[opIdx].UpstreamOp = spikeIdx
	}
	delete(b.pending, neuronIndex)

	return spikeIdx, nil
}

// buildFoldChain builds the right-associative NeuronBias/NeuronInput fold
// tail-first (terminal bias gets the smallest index, the head of the
// chain — what TransferFn depends on — gets the largest), so every
// NextOp/UpstreamOp reference already satisfies the topological-order
// invariant by construction.
func (b *builder) buildFoldChain(neuronIndex int, neuron *netmodel.Neuron) (int, error) {
	biasRanges := neuron.BiasWeightRanges()
	nextOp, hasNext := -1, false

	for bi := len(biasRanges) - 1; bi >= 0; bi-- {
		op := ops.Operation{
			Kind:        ops.NeuronBias,
			NeuronIndex: neuronIndex,
			WeightIndex: biasRanges[bi].Start,
			InputFn:     neuron.InputFn,
			HasNext:     hasNext,
			NextOp:      nextOp,
		}
		if hasNext {
			op.Dependencies = []int{nextOp}
		}
		nextOp = b.append(op)
		hasNext = true
	}

	terms := neuron.FlattenedInputTerms()
	for ti := len(terms) - 1; ti >= 0; ti-- {
		term := terms[ti]
		upstreamOp, upstreamStepsBack, isExternal, deferred, err := b.resolveUpstream(term)
		if err != nil {
			return 0, err
		}
		op := ops.Operation{
			Kind:               ops.NeuronInput,
			NeuronIndex:        neuronIndex,
			WeightIndex:        term.WeightIndex,
			InputFn:            neuron.InputFn,
			UpstreamOp:         upstreamOp,
			UpstreamStepsBack:  upstreamStepsBack,
			UpstreamIsExternal: isExternal,
			HasNext:            hasNext,
			NextOp:             nextOp,
		}
		// A deferred upstream reads a past time step's already-completed
		// buffer slot, not this step's still-being-built value, so it must
		// not be listed as a same-step Dependency (its eventual index can
		// land anywhere, including after this op's own index).
		switch {
		case hasNext && !deferred:
			op.Dependencies = []int{upstreamOp, nextOp}
		case hasNext:
			op.Dependencies = []int{nextOp}
		case !deferred:
			op.Dependencies = []int{upstreamOp}
		}
		opIdx := b.append(op)
		if deferred {
			b.pending[term.SourceIndex] = append(b.pending[term.SourceIndex], opIdx)
		}
		nextOp = opIdx
		hasNext = true
	}

	if nextOp == -1 {
		return 0, fmt.Errorf("neuron %d: %w", neuronIndex, ErrNeuronHasNoTerms)
	}
	return nextOp, nil
}

// resolveUpstream returns the dependency operation a NeuronInput term
// reads from: a fresh NetworkInput leaf for an external source, or the
// (dedup'd) SpikeFn of the referenced neuron for an internal source.
//
// A reach_past_loops>0 reference to a neuron that is still mid-build (the
// neuron feeds itself, or two neurons feed each other, across a past time
// step) is ordinary recurrence, not a combinational cycle: the value it
// reads already sits in the ring buffer from a previous sweep. Recursing
// into ensureSpikeOp here would hit the same-step cycle guard and reject
// every genuinely recurrent network, so instead this returns deferred=true
// with a placeholder op index; the caller registers a fixup that
// ensureSpikeOp patches in once the referenced neuron's SpikeFn index is
// finally known. A reach_past_loops==0 reference to a neuron still
// mid-build is a real same-time-step cycle and is rejected as before.
func (b *builder) resolveUpstream(term netmodel.InputTerm) (op int, stepsBack int, isExternal, deferred bool, err error) {
	if synapse.IsIndexInput(term.SourceIndex) {
		extIdx := synapse.ExternalIndexFromArrayIndex(term.SourceIndex)
		leaf := b.append(ops.Operation{
			Kind:              ops.NetworkInput,
			WeightIndex:       term.WeightIndex,
			ExternalIndex:     extIdx,
			ExternalStepsBack: term.ReachPastLoops,
		})
		return leaf, 0, true, false, nil
	}
	if term.ReachPastLoops > 0 && b.building[term.SourceIndex] {
		return 0, term.ReachPastLoops, false, true, nil
	}
	spikeIdx, err := b.ensureSpikeOp(term.SourceIndex)
	if err != nil {
		return 0, 0, false, false, err
	}
	return spikeIdx, term.ReachPastLoops, false, false, nil
}
