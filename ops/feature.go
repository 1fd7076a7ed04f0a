// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"github.com/davids91/rafko/backprop"
	"github.com/davids91/rafko/netfeature"
)

// applyFeature rewrites the buffered values of FeatureTargetOps in place:
// softmax normalizes them jointly, dropout zeroes/rescales per
// DropoutMask. Both features apply to a slice of neuron-derived values,
// which is why they are expressed as an in-place rewrite over other
// operations' value slots rather than a value of their own.
func (op *Operation) applyFeature(buf *backprop.Buffer) {
	vals := make([]float64, len(op.FeatureTargetOps))
	for i, target := range op.FeatureTargetOps {
		vals[i] = buf.Value(target, 0)
	}
	switch op.FeatureKind {
	case FeatureSoftmax:
		vals = netfeature.Softmax(vals)
	case FeatureDropout:
		vals = netfeature.Dropout(vals, op.DropoutMask, op.DropoutP)
	}
	for i, target := range op.FeatureTargetOps {
		buf.SetValue(target, vals[i])
	}
}

// applyFeatureDerivative rewrites the buffered d/dw derivatives of
// FeatureTargetOps in place, mirroring applyFeature's value rewrite:
// softmax mixes every target through the softmax Jacobian-vector product
// (each output depends on every pre-softmax input), dropout only rescales
// each target independently by the same factor applyFeature used for its
// value. Both read every target's pre-rewrite derivative before writing
// any of them back, since softmax's Jacobian needs them all at once.
func (op *Operation) applyFeatureDerivative(buf *backprop.Buffer, w int) {
	preD := make([]float64, len(op.FeatureTargetOps))
	for i, target := range op.FeatureTargetOps {
		preD[i] = buf.Derivative(target, w, 0)
	}
	switch op.FeatureKind {
	case FeatureSoftmax:
		y := make([]float64, len(op.FeatureTargetOps))
		for i, target := range op.FeatureTargetOps {
			y[i] = buf.Value(target, 0)
		}
		for i, target := range op.FeatureTargetOps {
			d := 0.0
			for j := range preD {
				d += netfeature.SoftmaxDerivative(y, i, j) * preD[j]
			}
			buf.SetDerivative(target, w, d)
		}
	case FeatureDropout:
		for i, target := range op.FeatureTargetOps {
			scale := netfeature.DropoutDerivative(op.DropoutMask, i, op.DropoutP)
			buf.SetDerivative(target, w, scale*preD[i])
		}
	}
}
