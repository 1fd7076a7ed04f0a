// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objective implements the cost functions the autodiff Objective
// operation and the training context's evaluation passes consume.
package objective

// CostFunction is the consumed cost-function interface: a scalar error
// over a full label/prediction vector pair, a batch variant filling a
// caller-owned output slice, and the per-feature derivative the autodiff
// Objective operation chains against the output neuron's own derivative.
type CostFunction interface {
	// FeatureError returns the scalar cost for one sample, given its
	// label and prediction vectors of equal length and sampleCount (the
	// normalizer, typically the vector length or batch size).
	FeatureError(label, prediction []float64, sampleCount int) float64

	// FeatureErrors fills out[start : start+count*stride : stride] with
	// the per-sample cost for each of the count label/prediction pairs.
	FeatureErrors(labels, predictions [][]float64, out []float64, start, stride, count int)

	// Derivative returns d(cost)/d(featureValue) at one scalar
	// label/prediction pair; the caller multiplies by the output
	// neuron's own derivative to get d(cost)/dw by the chain rule.
	Derivative(labelValue, featureValue float64, sampleCount int) float64
}
