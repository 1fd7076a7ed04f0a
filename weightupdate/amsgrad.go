// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weightupdate

import (
	"math"

	"github.com/davids91/rafko/netmodel"
)

// AMSGrad is Adam with a non-decreasing second-moment estimate: r_max_t =
// max(r_max_{t-1}, r_t), used in place of r_t when computing the update.
// One micro-iteration.
type AMSGrad struct {
	weights  *netmodel.WeightTable
	params   HyperParams
	m        []float64
	r        []float64
	rMax     []float64
	velocity []float64
	step     int
	finished bool
}

// NewAMSGrad builds an AMSGrad updater.
func NewAMSGrad(weights *netmodel.WeightTable, params HyperParams) *AMSGrad {
	return &AMSGrad{
		weights:  weights,
		params:   params,
		m:        make([]float64, weights.Len()),
		r:        make([]float64, weights.Len()),
		rMax:     make([]float64, weights.Len()),
		velocity: make([]float64, weights.Len()),
	}
}

func (a *AMSGrad) Start() { a.finished = false }

func (a *AMSGrad) Iterate(gradients []float64) {
	a.step++
	beta1Corr := 1 - math.Pow(a.params.Beta, float64(a.step))
	for i, g := range gradients {
		a.m[i] = a.params.Beta*a.m[i] + (1-a.params.Beta)*g
		a.r[i] = a.params.Beta2*a.r[i] + (1-a.params.Beta2)*g*g
		a.rMax[i] = math.Max(a.rMax[i], a.r[i])
		mHat := a.m[i] / beta1Corr
		a.velocity[i] = a.params.LearningRate * mHat / (math.Sqrt(a.rMax[i]) + a.params.Epsilon)
	}
	a.finished = true
}

func (a *AMSGrad) IsFinished() bool { return a.finished }

func (a *AMSGrad) NewVelocity(i int, gradients []float64) float64 { return a.velocity[i] }

func (a *AMSGrad) NewWeight(i int, gradients []float64) float64 {
	return a.weights.Get(i) - a.velocity[i]
}
