// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weightupdate

import "github.com/davids91/rafko/netmodel"

// Nesterov is momentum with a lookahead gradient evaluation: the first
// micro-iteration probes the weights at w - gamma*v_prev (mutating the
// table in place so the caller's next gradient computation sees the
// probed point), the second consumes the gradient evaluated there to
// produce the real velocity/weight update relative to the original
// weights.
type Nesterov struct {
	weights   *netmodel.WeightTable
	params    HyperParams
	velocity  []float64
	original  []float64
	iteration int
}

// NewNesterov builds a Nesterov updater.
func NewNesterov(weights *netmodel.WeightTable, params HyperParams) *Nesterov {
	return &Nesterov{
		weights:  weights,
		params:   params,
		velocity: make([]float64, weights.Len()),
		original: make([]float64, weights.Len()),
	}
}

func (n *Nesterov) Start() { n.iteration = 0 }

func (n *Nesterov) Iterate(gradients []float64) {
	switch n.iteration {
	case 0:
		for i := range n.original {
			n.original[i] = n.weights.Get(i)
			n.weights.Set(i, n.original[i]-n.params.Gamma*n.velocity[i])
		}
	case 1:
		for i := range n.velocity {
			n.velocity[i] = n.params.Gamma*n.velocity[i] + gradients[i]*n.params.LearningRate
			n.weights.Set(i, n.original[i])
		}
	}
	n.iteration++
}

func (n *Nesterov) IsFinished() bool { return n.iteration >= 2 }

func (n *Nesterov) NewVelocity(i int, gradients []float64) float64 { return n.velocity[i] }

func (n *Nesterov) NewWeight(i int, gradients []float64) float64 {
	return n.original[i] - n.velocity[i]
}
