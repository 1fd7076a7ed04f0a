// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ops implements the autodiff DAG's operation kernels: the value
// and derivative rule for each discriminated operation kind, driven by a
// stable operation index and a finalized dependency list built by the
// graph package.
package ops

// Kind discriminates the autodiff operation kinds.
type Kind int

const (
	NetworkInput Kind = iota
	NeuronBias
	NeuronInput
	TransferFn
	SpikeFn
	Objective
	WeightRegularization
	SolutionFeature
)

func (k Kind) String() string {
	switch k {
	case NetworkInput:
		return "NetworkInput"
	case NeuronBias:
		return "NeuronBias"
	case NeuronInput:
		return "NeuronInput"
	case TransferFn:
		return "TransferFn"
	case SpikeFn:
		return "SpikeFn"
	case Objective:
		return "Objective"
	case WeightRegularization:
		return "WeightRegularization"
	case SolutionFeature:
		return "SolutionFeature"
	default:
		return "Unknown"
	}
}

// RegKind picks the weight-regularization formula a WeightRegularization
// operation applies.
type RegKind int

const (
	RegL1 RegKind = iota
	RegL2
)

// FeatureKind picks the solution feature a SolutionFeature operation
// applies.
type FeatureKind int

const (
	FeatureSoftmax FeatureKind = iota
	FeatureDropout
)
