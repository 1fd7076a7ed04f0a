// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autodiff

import (
	"fmt"

	"github.com/davids91/rafko/backprop"
	"github.com/davids91/rafko/graph"
	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/ops"
)

// Solve runs a value-only forward pass (prefill then the data sequence, no
// derivatives) over a fresh Buffer/InputHistory and returns the Buffer so a
// caller can read any operation's final value — the "straightforward
// forward-only evaluator" spec.md §4.6's forward consistency requirement
// checks autodiff's own forward pass against.
func Solve(net *netmodel.Network, g *graph.Graph, prefillInputs, sequenceInputs [][]float64) (*backprop.Buffer, error) {
	buf := backprop.NewBuffer(net.MemorySize+1, len(g.Operations), net.Weights.Len(), 1)
	history := &backprop.InputHistory{}
	operations := g.Operations

	for _, vec := range prefillInputs {
		if len(vec) != net.InputDataSize {
			return nil, fmt.Errorf("autodiff: prefill vector has length %d, want %d", len(vec), net.InputDataSize)
		}
		history.Push(vec)
		buf.Step()
		for i := range operations {
			operations[i].ComputeValue(net, buf, history)
		}
	}
	for step, vec := range sequenceInputs {
		if len(vec) != net.InputDataSize {
			return nil, fmt.Errorf("autodiff: sequence input %d has length %d, want %d", step, len(vec), net.InputDataSize)
		}
		history.Push(vec)
		buf.Step()
		for i := range operations {
			operations[i].ComputeValue(net, buf, history)
		}
	}
	return buf, nil
}

// Output reads the spike value (SpikeFn op preceding the output neuron's
// Objective, i.e. the Objective's sole dependency) for output slot at the
// most recent step buf holds.
func Output(g *graph.Graph, buf *backprop.Buffer, outputSlot int) float64 {
	for _, op := range g.Operations {
		if op.Kind == ops.Objective && op.OutputSlot == outputSlot {
			return buf.Value(op.Dependencies[0], 0)
		}
	}
	return 0
}
