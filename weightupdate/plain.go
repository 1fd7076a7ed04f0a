// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weightupdate

import "github.com/davids91/rafko/netmodel"

// Plain is plain gradient descent: velocity = grad*lr, weight = w - v.
// One micro-iteration.
type Plain struct {
	weights  *netmodel.WeightTable
	params   HyperParams
	finished bool
}

// NewPlain builds a Plain updater reading from and writing to weights.
func NewPlain(weights *netmodel.WeightTable, params HyperParams) *Plain {
	return &Plain{weights: weights, params: params}
}

func (p *Plain) Start() { p.finished = false }

func (p *Plain) Iterate(gradients []float64) { p.finished = true }

func (p *Plain) IsFinished() bool { return p.finished }

func (p *Plain) NewVelocity(i int, gradients []float64) float64 {
	return gradients[i] * p.params.LearningRate
}

func (p *Plain) NewWeight(i int, gradients []float64) float64 {
	return p.weights.Get(i) - p.NewVelocity(i, gradients)
}
