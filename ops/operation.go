// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/davids91/rafko/backprop"
	"github.com/davids91/rafko/netfeature"
	"github.com/davids91/rafko/netmodel"
	"github.com/davids91/rafko/objective"
	"github.com/davids91/rafko/scalarfn"
)

// Operation is one node of the autodiff DAG. It is a discriminated
// struct rather than an interface hierarchy: Kind selects which payload
// fields and which branch of Value/Derivative apply, following the
// "discriminated kind" shape spec.md's data model lays out directly.
type Operation struct {
	Kind  Kind
	Index int

	// Dependencies lists this operation's dependency operation indices in
	// the finalized, topologically-ordered DAG (SpikeFn's self-recurrence
	// is excluded: it is resolved through the ring buffer, not this list).
	Dependencies []int

	// NeuronIndex identifies the owning neuron for NeuronBias, NeuronInput,
	// TransferFn and SpikeFn.
	NeuronIndex int

	// WeightIndex is the weight this operation's own term reads: the
	// NetworkInput weight, the bias weight, the per-input weight, or the
	// spike weight.
	WeightIndex int

	// HasNext and NextOp describe the right-associative fold chain
	// NeuronInput/NeuronBias operations form: when HasNext, this term's
	// value/derivative are combined with NextOp's via the neuron's input
	// function; the final bias term in the chain has HasNext == false.
	HasNext bool
	NextOp  int
	InputFn scalarfn.Input

	// UpstreamOp and UpstreamStepsBack apply to NeuronInput only: the
	// operation (NetworkInput leaf or another neuron's SpikeFn) this
	// term's own value comes from, and how many steps back to read it
	// (nonzero only for a recurrent input synapse with reach_past_loops
	// > 0 on an internal source).
	//
	// UpstreamIsExternal distinguishes the two cases the weight for this
	// visited index is applied in: when the source is external, the
	// upstream NetworkInput operation has already multiplied by the
	// synapse weight (spec.md §4.4's "NetworkInput(i,w): input[i] *
	// weights[w]"), so this term just forwards upstream's value/deriv
	// unweighted; when the source is internal, upstream is a bare SpikeFn
	// value with no weight baked in, so WeightIndex's multiply happens
	// here.
	UpstreamOp         int
	UpstreamStepsBack  int
	UpstreamIsExternal bool

	// ExternalIndex and ExternalStepsBack apply to NetworkInput only: the
	// index into the per-step external input vector, and how far back in
	// the sequence's input history to read it.
	ExternalIndex     int
	ExternalStepsBack int

	// TransferFn: TransferKind selects the activation; Alpha/Lambda
	// parameterize elu/selu.
	TransferKind scalarfn.Transfer
	Alpha        float64
	Lambda       float64

	// SpikeFn: SpikeKind, resolved once per neuron (dedup contract).
	SpikeKind scalarfn.Spike

	// Objective payload.
	OutputSlot int
	CostFn     objective.CostFunction
	SampleSize int

	// WeightRegularization payload.
	RegKind          RegKind
	RegWeightIndices []int

	// SolutionFeature payload: which operations' buffered values this
	// feature rewrites in place, and which feature it applies.
	FeatureKind      FeatureKind
	FeatureTargetOps []int
	DropoutP         float64
	DropoutMask      []bool
}

// ComputeValue evaluates this operation's value rule and writes it into
// buf at the current time step.
func (op *Operation) ComputeValue(net *netmodel.Network, buf *backprop.Buffer, history *backprop.InputHistory) {
	switch op.Kind {
	case NetworkInput:
		vec := history.At(op.ExternalStepsBack, net.InputDataSize)
		v := 0.0
		if op.ExternalIndex < len(vec) {
			v = vec[op.ExternalIndex]
		}
		buf.SetValue(op.Index, v*net.Weights.Get(op.WeightIndex))

	case NeuronBias:
		own := net.Weights.Get(op.WeightIndex)
		buf.SetValue(op.Index, op.mergeValue(buf, own))

	case NeuronInput:
		upstreamVal := buf.Value(op.UpstreamOp, op.UpstreamStepsBack)
		own := upstreamVal
		if !op.UpstreamIsExternal {
			own = net.Weights.Get(op.WeightIndex) * upstreamVal
		}
		buf.SetValue(op.Index, op.mergeValue(buf, own))

	case TransferFn:
		x := buf.Value(op.Dependencies[0], 0)
		buf.SetValue(op.Index, scalarfn.TransferValue(op.TransferKind, x, op.Alpha, op.Lambda))

	case SpikeFn:
		transferVal := buf.Value(op.Dependencies[0], 0)
		prevVal := buf.Value(op.Index, 1)
		w := net.Weights.Get(op.WeightIndex)
		buf.SetValue(op.Index, scalarfn.SpikeValue(op.SpikeKind, w, transferVal, prevVal))

	case Objective:
		spikeVal := buf.Value(op.Dependencies[0], 0)
		buf.SetValue(op.Index, spikeVal)

	case WeightRegularization:
		weights := make([]float64, len(op.RegWeightIndices))
		for i, wi := range op.RegWeightIndices {
			weights[i] = net.Weights.Get(wi)
		}
		if op.RegKind == RegL1 {
			buf.SetValue(op.Index, netfeature.L1(weights))
		} else {
			buf.SetValue(op.Index, netfeature.L2(weights))
		}

	case SolutionFeature:
		op.applyFeature(buf)
		buf.SetValue(op.Index, 0)
	}
}

// ComputeDerivative evaluates d(operation)/d(weight w) and writes it into
// buf at the current time step. label is the target value for Objective
// operations and history supplies external input lookback for
// NetworkInput; both are ignored by every other kind.
func (op *Operation) ComputeDerivative(net *netmodel.Network, buf *backprop.Buffer, history *backprop.InputHistory, w int, label float64) {
	switch op.Kind {
	case NetworkInput:
		d := 0.0
		if w == op.WeightIndex {
			vec := history.At(op.ExternalStepsBack, net.InputDataSize)
			if op.ExternalIndex < len(vec) {
				d = vec[op.ExternalIndex]
			}
		}
		buf.SetDerivative(op.Index, w, d)

	case NeuronBias:
		own := net.Weights.Get(op.WeightIndex)
		selfD := 0.0
		if w == op.WeightIndex {
			selfD = 1
		}
		buf.SetDerivative(op.Index, w, op.mergeDerivative(buf, own, w, selfD))

	case NeuronInput:
		upstreamVal := buf.Value(op.UpstreamOp, op.UpstreamStepsBack)
		upstreamD := buf.Derivative(op.UpstreamOp, w, op.UpstreamStepsBack)
		var own, selfD float64
		if op.UpstreamIsExternal {
			own = upstreamVal
			selfD = upstreamD
		} else {
			weight := net.Weights.Get(op.WeightIndex)
			own = weight * upstreamVal
			selfD = weight*upstreamD + boolToFloat(w == op.WeightIndex)*upstreamVal
		}
		buf.SetDerivative(op.Index, w, op.mergeDerivative(buf, own, w, selfD))

	case TransferFn:
		x := buf.Value(op.Dependencies[0], 0)
		val := buf.Value(op.Index, 0)
		xd := buf.Derivative(op.Dependencies[0], w, 0)
		fprime := scalarfn.TransferDerivative(op.TransferKind, x, val, op.Alpha, op.Lambda)
		buf.SetDerivative(op.Index, w, fprime*xd)

	case SpikeFn:
		transferVal := buf.Value(op.Dependencies[0], 0)
		transferD := buf.Derivative(op.Dependencies[0], w, 0)
		prevVal := buf.Value(op.Index, 1)
		prevD := buf.Derivative(op.Index, w, 1)
		weight := net.Weights.Get(op.WeightIndex)
		isSpikeWeight := w == op.WeightIndex
		d := scalarfn.SpikeDerivative(op.SpikeKind, weight, transferVal, transferD, prevVal, prevD, isSpikeWeight)
		buf.SetDerivative(op.Index, w, d)

	case Objective:
		spikeVal := buf.Value(op.Dependencies[0], 0)
		spikeD := buf.Derivative(op.Dependencies[0], w, 0)
		costD := op.CostFn.Derivative(label, spikeVal, op.SampleSize)
		d := costD * spikeD
		buf.SetDerivative(op.Index, w, d)
		buf.AccumulateSequenceDerivative(w, d)

	case WeightRegularization:
		d := 0.0
		for _, wi := range op.RegWeightIndices {
			if wi != w {
				continue
			}
			wv := net.Weights.Get(wi)
			if op.RegKind == RegL1 {
				d = netfeature.L1Derivative(wv)
			} else {
				d = netfeature.L2Derivative(wv)
			}
		}
		buf.SetDerivative(op.Index, w, d)

	case SolutionFeature:
		// Rewrites every FeatureTargetOps derivative in place (the
		// softmax Jacobian-vector product, or dropout's elementwise
		// rescale) the same way applyFeature rewrote their values; this
		// op's own buffered value is an unused side-effect slot, so its
		// own derivative is left at zero.
		op.applyFeatureDerivative(buf, w)
		buf.SetDerivative(op.Index, w, 0)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// mergeValue combines own with the next term's value via the neuron's
// input function, or returns own unchanged when this is the terminal term
// of the fold chain.
func (op *Operation) mergeValue(buf *backprop.Buffer, own float64) float64 {
	if !op.HasNext {
		return own
	}
	next := buf.Value(op.NextOp, 0)
	return scalarfn.InputValue(op.InputFn, own, next)
}

func (op *Operation) mergeDerivative(buf *backprop.Buffer, own float64, w int, selfD float64) float64 {
	if !op.HasNext {
		return selfD
	}
	next := buf.Value(op.NextOp, 0)
	nextD := buf.Derivative(op.NextOp, w, 0)
	return scalarfn.InputDerivative(op.InputFn, own, selfD, next, nextD)
}
