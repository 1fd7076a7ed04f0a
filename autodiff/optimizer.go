// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package autodiff drives the forward/backward sweep spec.md §4.6
// describes: a value-only prefill pass, then a per-labeled-step pass that
// computes every operation's value once and its derivative with respect
// to every weight, folding each Objective operation's contribution into
// the sequence-wide running-average gradient, and finally handing that
// gradient to a weight updater.
//
// Operation list order is ascending by index throughout (both the value
// and derivative passes), since every operation's dependency indices are
// strictly smaller than its own (graph.Build's finalization invariant) —
// processing low-to-high guarantees a dependency's value/derivative for
// the current step is already written before its dependent reads it. The
// "reverse topological order" spec.md §4.6 describes refers to the
// discovery order during graph building (outputs request their
// dependencies, working from sinks toward sources); the finalized list is
// already that discovery order reversed, so executing it index-ascending
// *is* executing it in reverse-of-discovery order.
package autodiff

import (
	"fmt"

	"github.com/davids91/rafko/backprop"
	"github.com/davids91/rafko/graph"
	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/ops"
	"github.com/davids91/rafko/weightupdate"
)

// Optimizer owns the ring-buffered BackpropData for one network/graph pair
// and drives Iterate against a weight updater.
type Optimizer struct {
	net     *netmodel.Network
	graph   *graph.Graph
	buf     *backprop.Buffer
	history *backprop.InputHistory
	updater weightupdate.Updater

	labeledSteps int
}

// New builds an Optimizer. sequenceSize bounds the number of labeled steps
// a single Iterate call's sequence_derivatives can hold.
func New(net *netmodel.Network, g *graph.Graph, updater weightupdate.Updater, sequenceSize int) *Optimizer {
	weightCount := net.Weights.Len()
	return &Optimizer{
		net:     net,
		graph:   g,
		buf:     backprop.NewBuffer(net.MemorySize+1, len(g.Operations), weightCount, sequenceSize),
		history: &backprop.InputHistory{},
		updater: updater,
	}
}

// Buffer exposes the underlying BackpropData, mainly for tests that want
// to inspect per-step values/derivatives directly.
func (o *Optimizer) Buffer() *backprop.Buffer { return o.buf }

// Iterate runs one full forward/backward sweep over prefillInputs (value
// only, no labels) followed by sequenceInputs/sequenceLabels (value and,
// for every weight, derivative), then asks the weight updater for new
// weights and applies them. Nesterov-style updaters that need a second
// gradient evaluation at probed weights get it: the updater's grad
// callback re-runs the whole sweep against the (possibly probed) weight
// table.
func (o *Optimizer) Iterate(prefillInputs, sequenceInputs, sequenceLabels [][]float64) error {
	if len(sequenceInputs) != len(sequenceLabels) {
		return fmt.Errorf("autodiff: %d sequence inputs but %d labels", len(sequenceInputs), len(sequenceLabels))
	}
	var sweepErr error
	grad := func() []float64 {
		if err := o.sweep(prefillInputs, sequenceInputs, sequenceLabels); err != nil {
			sweepErr = err
			return make([]float64, o.net.Weights.Len())
		}
		return o.Gradients()
	}
	weightupdate.Apply(o.updater, o.net.Weights, grad)
	return sweepErr
}

func (o *Optimizer) sweep(prefillInputs, sequenceInputs, sequenceLabels [][]float64) error {
	o.buf.Reset()
	o.history.Reset()
	operations := o.graph.Operations

	for _, vec := range prefillInputs {
		if len(vec) != o.net.InputDataSize {
			return fmt.Errorf("autodiff: prefill vector has length %d, want %d", len(vec), o.net.InputDataSize)
		}
		o.history.Push(vec)
		o.buf.Step()
		for i := range operations {
			operations[i].ComputeValue(o.net, o.buf, o.history)
		}
	}

	weightCount := o.net.Weights.Len()
	o.labeledSteps = len(sequenceInputs)
	for step, vec := range sequenceInputs {
		if len(vec) != o.net.InputDataSize {
			return fmt.Errorf("autodiff: sequence input %d has length %d, want %d", step, len(vec), o.net.InputDataSize)
		}
		o.history.Push(vec)
		o.buf.Step()
		for i := range operations {
			operations[i].ComputeValue(o.net, o.buf, o.history)
		}

		label := sequenceLabels[step]
		for w := 0; w < weightCount; w++ {
			for i := range operations {
				op := &operations[i]
				labelValue := 0.0
				if op.Kind == ops.Objective && op.OutputSlot < len(label) {
					labelValue = label[op.OutputSlot]
				}
				op.ComputeDerivative(o.net, o.buf, o.history, w, labelValue)
			}
		}
		o.buf.AdvanceSequenceStep()
	}
	return nil
}

// AvgGradient sums sequence_derivatives[step][w] over every remembered
// labeled step and divides by the count, per spec.md §4.6's avg_gradient.
func (o *Optimizer) AvgGradient(w int) float64 {
	count := o.labeledSteps
	if count > o.buf.SequenceSize() {
		count = o.buf.SequenceSize()
	}
	if count == 0 {
		return 0
	}
	sum := 0.0
	for step := 0; step < count; step++ {
		sum += o.buf.SequenceDerivative(step, w)
	}
	return sum / float64(count)
}

// Gradients returns AvgGradient(w) for every weight index, in order.
func (o *Optimizer) Gradients() []float64 {
	weightCount := o.net.Weights.Len()
	g := make([]float64, weightCount)
	for w := 0; w < weightCount; w++ {
		g[w] = o.AvgGradient(w)
	}
	return g
}
