// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weightupdate

import (
	"math"

	"github.com/davids91/rafko/netmodel"
)

// Adam keeps a first-moment and second-moment running average of the
// gradient, bias-corrected by the iteration count, per spec.md §4.7:
// m_t = beta*m + (1-beta)*g; r_t = beta2*r + (1-beta2)*g^2;
// v = lr*mhat/(sqrt(rhat)+eps). One micro-iteration.
type Adam struct {
	weights  *netmodel.WeightTable
	params   HyperParams
	m        []float64
	r        []float64
	velocity []float64
	step     int
	finished bool
}

// NewAdam builds an Adam updater.
func NewAdam(weights *netmodel.WeightTable, params HyperParams) *Adam {
	return &Adam{
		weights:  weights,
		params:   params,
		m:        make([]float64, weights.Len()),
		r:        make([]float64, weights.Len()),
		velocity: make([]float64, weights.Len()),
	}
}

func (a *Adam) Start() { a.finished = false }

func (a *Adam) Iterate(gradients []float64) {
	a.step++
	beta1Corr := 1 - math.Pow(a.params.Beta, float64(a.step))
	beta2Corr := 1 - math.Pow(a.params.Beta2, float64(a.step))
	for i, g := range gradients {
		a.m[i] = a.params.Beta*a.m[i] + (1-a.params.Beta)*g
		a.r[i] = a.params.Beta2*a.r[i] + (1-a.params.Beta2)*g*g
		mHat := a.m[i] / beta1Corr
		rHat := a.r[i] / beta2Corr
		a.velocity[i] = a.params.LearningRate * mHat / (math.Sqrt(rHat) + a.params.Epsilon)
	}
	a.finished = true
}

func (a *Adam) IsFinished() bool { return a.finished }

func (a *Adam) NewVelocity(i int, gradients []float64) float64 { return a.velocity[i] }

func (a *Adam) NewWeight(i int, gradients []float64) float64 {
	return a.weights.Get(i) - a.velocity[i]
}
