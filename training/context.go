// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package training implements the training context spec.md §4.8
// describes: the object that owns a network, its compiled operation
// graph, a dataset view, an objective, an autodiff optimizer and a weight
// updater, and exposes whole-dataset and stochastic-minibatch fitness
// evaluation plus a persistent one-step solver. Evaluation fans out
// across rafkopool's bounded solve pool the way spec.md §5 describes,
// giving each parallel sequence its own ring buffer rather than sharing
// one across goroutines.
package training

import (
	"fmt"

	"github.com/davids91/rafko/autodiff"
	"github.com/davids91/rafko/backprop"
	"github.com/davids91/rafko/dataset"
	"github.com/davids91/rafko/erand"
	"github.com/davids91/rafko/graph"
	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/objective"
	"github.com/davids91/rafko/ops"
	"github.com/davids91/rafko/rafkopool"
	"github.com/davids91/rafko/settings"
	"github.com/davids91/rafko/weightupdate"
)

// Context is the training context: network, graph, dataset, objective,
// optimizer and weight updater bundled together, plus the persistent
// solver state Solve steps against.
type Context struct {
	net      *netmodel.Network
	graph    *graph.Graph
	dataset  dataset.View
	cost     objective.CostFunction
	updater  weightupdate.Updater
	settings *settings.Settings
	optimizer *autodiff.Optimizer

	solvePool      *rafkopool.Pool
	processingPool *rafkopool.Pool

	solveBuf     *backprop.Buffer
	solveHistory *backprop.InputHistory
}

// New builds a Context. g must have been built from net with cost as its
// objective (costFn/sampleSize are baked into each Objective operation at
// graph.Build time); SetObjective patches them in place afterward if the
// objective needs to change.
func New(net *netmodel.Network, g *graph.Graph, ds dataset.View, cost objective.CostFunction, updater weightupdate.Updater, s *settings.Settings) (*Context, error) {
	if ds.InputSize() != net.InputDataSize {
		return nil, fmt.Errorf("training: dataset input size %d does not match network input size %d", ds.InputSize(), net.InputDataSize)
	}
	if ds.FeatureSize() != net.OutputCount {
		return nil, fmt.Errorf("training: dataset feature size %d does not match network output count %d", ds.FeatureSize(), net.OutputCount)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	tc := &Context{
		net:      net,
		graph:    g,
		dataset:  ds,
		cost:     cost,
		updater:  updater,
		settings: s,

		solvePool:      rafkopool.New(s.MaxSolveThreads),
		processingPool: rafkopool.New(s.MaxProcessingThreads),

		solveBuf:     backprop.NewBuffer(net.MemorySize+1, len(g.Operations), net.Weights.Len(), 1),
		solveHistory: &backprop.InputHistory{},
	}
	tc.optimizer = autodiff.New(net, g, updater, ds.SequenceSize())
	return tc, nil
}

// Network, Graph, Optimizer, Settings expose the owned collaborators so a
// caller can drive training directly (e.g. calling Optimizer().Iterate
// for one sequence at a time); the context itself only implements the
// evaluation/solve surface spec.md §4.8 names.
func (tc *Context) Network() *netmodel.Network   { return tc.net }
func (tc *Context) Graph() *graph.Graph          { return tc.graph }
func (tc *Context) Optimizer() *autodiff.Optimizer { return tc.optimizer }
func (tc *Context) Settings() *settings.Settings { return tc.settings }

// sequenceVectors gathers sequence s's prefill inputs, labeled-step
// inputs and labels from the dataset view.
func sequenceVectors(ds dataset.View, s int) (prefill, inputs, labels [][]float64, err error) {
	prefill = make([][]float64, ds.PrefillSize())
	for i := range prefill {
		prefill[i], err = ds.InputSample(dataset.InputIndex(ds, s, i))
		if err != nil {
			return nil, nil, nil, err
		}
	}
	inputs = make([][]float64, ds.SequenceSize())
	labels = make([][]float64, ds.SequenceSize())
	for i := 0; i < ds.SequenceSize(); i++ {
		inputs[i], err = ds.InputSample(dataset.InputIndex(ds, s, ds.PrefillSize()+i))
		if err != nil {
			return nil, nil, nil, err
		}
		labels[i], err = ds.LabelSample(dataset.LabelIndex(ds, s, i))
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return prefill, inputs, labels, nil
}

// evaluateWindow runs a fresh forward-only sweep: the full prefill, then
// sequenceInputs[0:windowStart] as silent (uncosted) additional prefill to
// build up recurrent state, then windowLen labeled steps starting at
// windowStart whose predicted/label cost is summed and returned. Gathering
// the per-feature output vector at each labeled step is the intra-step
// data-parallel accumulation pool (processing) is used for.
func evaluateWindow(net *netmodel.Network, g *graph.Graph, pool *rafkopool.Pool, cost objective.CostFunction, prefill, inputs, labels [][]float64, windowStart, windowLen int) (float64, error) {
	buf := backprop.NewBuffer(net.MemorySize+1, len(g.Operations), net.Weights.Len(), 1)
	history := &backprop.InputHistory{}
	operations := g.Operations

	step := func(vec []float64) {
		history.Push(vec)
		buf.Step()
		for i := range operations {
			operations[i].ComputeValue(net, buf, history)
		}
	}

	for _, vec := range prefill {
		if len(vec) != net.InputDataSize {
			return 0, fmt.Errorf("training: prefill vector has length %d, want %d", len(vec), net.InputDataSize)
		}
		step(vec)
	}
	for i := 0; i < windowStart; i++ {
		step(inputs[i])
	}

	predicted := make([]float64, net.OutputCount)
	gatherPredicted := make([]rafkopool.WorkFunc, net.OutputCount)
	for slot := range gatherPredicted {
		slot := slot
		gatherPredicted[slot] = func() { predicted[slot] = autodiff.Output(g, buf, slot) }
	}

	total := 0.0
	for i := windowStart; i < windowStart+windowLen; i++ {
		step(inputs[i])
		pool.Run(gatherPredicted)
		total += cost.FeatureError(labels[i], predicted, net.OutputCount)
	}
	return total, nil
}

// FullEvaluation evaluates every sequence in the dataset over its whole
// labeled span and returns fitness = -sum(cost) across all sequences.
func (tc *Context) FullEvaluation() (float64, error) {
	n := tc.dataset.NumberOfSequences()
	costs := make([]float64, n)
	errs := make([]error, n)

	work := make([]rafkopool.WorkFunc, n)
	for s := 0; s < n; s++ {
		s := s
		work[s] = func() {
			prefill, inputs, labels, err := sequenceVectors(tc.dataset, s)
			if err != nil {
				errs[s] = err
				return
			}
			costs[s], errs[s] = evaluateWindow(tc.net, tc.graph, tc.processingPool, tc.cost, prefill, inputs, labels, 0, tc.dataset.SequenceSize())
		}
	}
	tc.solvePool.Run(work)

	total := 0.0
	for s := 0; s < n; s++ {
		if errs[s] != nil {
			return 0, errs[s]
		}
		total += costs[s]
	}
	return -total, nil
}

// StochasticEvaluation selects settings.MinibatchSize distinct sequences
// at random (fewer if the dataset is smaller) and, within each, a random
// labeled-step window of length settings.MemoryTruncation (the whole
// sequence if MemoryTruncation is 0), returning fitness = -sum(cost) over
// just that slice. A nil seed draws from the global random source;
// a non-nil seed makes the minibatch/window choice reproducible.
func (tc *Context) StochasticEvaluation(seed *int64) (float64, error) {
	n := tc.dataset.NumberOfSequences()
	minibatch := tc.settings.MinibatchSize
	if minibatch > n {
		minibatch = n
	}
	if minibatch <= 0 {
		return 0, nil
	}

	rnd := erand.NewGlobalRand()
	if seed != nil {
		rnd = seededRand(*seed)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	shuffle(order, rnd)
	chosen := order[:minibatch]

	windowLen := tc.dataset.SequenceSize()
	if tc.settings.MemoryTruncation > 0 && tc.settings.MemoryTruncation < windowLen {
		windowLen = tc.settings.MemoryTruncation
	}

	costs := make([]float64, minibatch)
	errs := make([]error, minibatch)
	work := make([]rafkopool.WorkFunc, minibatch)
	for idx, s := range chosen {
		idx, s := idx, s
		maxStart := tc.dataset.SequenceSize() - windowLen
		windowStart := 0
		if maxStart > 0 {
			windowStart = int(rnd.Int63n(int64(maxStart+1), -1))
		}
		work[idx] = func() {
			prefill, inputs, labels, err := sequenceVectors(tc.dataset, s)
			if err != nil {
				errs[idx] = err
				return
			}
			costs[idx], errs[idx] = evaluateWindow(tc.net, tc.graph, tc.processingPool, tc.cost, prefill, inputs, labels, windowStart, windowLen)
		}
	}
	tc.solvePool.Run(work)

	total := 0.0
	for idx := range costs {
		if errs[idx] != nil {
			return 0, errs[idx]
		}
		total += costs[idx]
	}
	return -total, nil
}

// Solve runs the persistent solver forward one step with input, resetting
// its neuron memory first if reset is true, and returns the network's
// output vector for this step.
func (tc *Context) Solve(input []float64, reset bool) ([]float64, error) {
	if len(input) != tc.net.InputDataSize {
		return nil, fmt.Errorf("training: solve input has length %d, want %d", len(input), tc.net.InputDataSize)
	}
	if reset {
		tc.solveBuf.Reset()
		tc.solveHistory.Reset()
	}
	tc.solveHistory.Push(input)
	tc.solveBuf.Step()
	for i := range tc.graph.Operations {
		tc.graph.Operations[i].ComputeValue(tc.net, tc.solveBuf, tc.solveHistory)
	}
	output := make([]float64, tc.net.OutputCount)
	for slot := 0; slot < tc.net.OutputCount; slot++ {
		output[slot] = autodiff.Output(tc.graph, tc.solveBuf, slot)
	}
	return output, nil
}

// SetEnvironment swaps the dataset view, rebuilding the optimizer's
// sequence-derivative buffer to match the new sequence size.
func (tc *Context) SetEnvironment(ds dataset.View) error {
	if ds.InputSize() != tc.net.InputDataSize {
		return fmt.Errorf("training: dataset input size %d does not match network input size %d", ds.InputSize(), tc.net.InputDataSize)
	}
	if ds.FeatureSize() != tc.net.OutputCount {
		return fmt.Errorf("training: dataset feature size %d does not match network output count %d", ds.FeatureSize(), tc.net.OutputCount)
	}
	tc.dataset = ds
	tc.optimizer = autodiff.New(tc.net, tc.graph, tc.updater, ds.SequenceSize())
	return nil
}

// SetObjective swaps the cost function, patching every Objective
// operation in the graph in place (the graph's topology does not change,
// only which cost/derivative functions its Objective operations call).
func (tc *Context) SetObjective(cost objective.CostFunction) {
	tc.cost = cost
	for i := range tc.graph.Operations {
		if tc.graph.Operations[i].Kind == ops.Objective {
			tc.graph.Operations[i].CostFn = cost
		}
	}
}

// SetWeightUpdater swaps the weight updater, rebuilding the optimizer
// since the updater is fixed at optimizer construction time.
func (tc *Context) SetWeightUpdater(updater weightupdate.Updater) {
	tc.updater = updater
	tc.optimizer = autodiff.New(tc.net, tc.graph, updater, tc.dataset.SequenceSize())
}
