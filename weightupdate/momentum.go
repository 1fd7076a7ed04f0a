// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weightupdate

import "github.com/davids91/rafko/netmodel"

// Momentum is gradient descent with velocity carried across iterations:
// velocity = gamma*v_prev + grad*lr, weight = w - v. One micro-iteration.
type Momentum struct {
	weights  *netmodel.WeightTable
	params   HyperParams
	velocity []float64
	finished bool
}

// NewMomentum builds a Momentum updater.
func NewMomentum(weights *netmodel.WeightTable, params HyperParams) *Momentum {
	return &Momentum{weights: weights, params: params, velocity: make([]float64, weights.Len())}
}

func (m *Momentum) Start() { m.finished = false }

func (m *Momentum) Iterate(gradients []float64) {
	for i := range m.velocity {
		m.velocity[i] = m.params.Gamma*m.velocity[i] + gradients[i]*m.params.LearningRate
	}
	m.finished = true
}

func (m *Momentum) IsFinished() bool { return m.finished }

func (m *Momentum) NewVelocity(i int, gradients []float64) float64 { return m.velocity[i] }

func (m *Momentum) NewWeight(i int, gradients []float64) float64 {
	return m.weights.Get(i) - m.velocity[i]
}
