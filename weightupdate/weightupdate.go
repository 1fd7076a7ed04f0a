// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package weightupdate implements the five weight updaters spec.md §4.7
// lists: Plain, Momentum, Nesterov, Adam and AMSGrad, each exposing the
// same start/iterate/is_finished/new_weight/new_velocity contract so the
// autodiff optimizer can drive any of them identically.
package weightupdate

import "github.com/davids91/rafko/netmodel"

// HyperParams collects the learning-rate and optimizer constants
// spec.md §6's settings table lists (β, β₂, γ, ε and the base
// learning rate); not every updater reads every field.
type HyperParams struct {
	LearningRate float64
	Beta         float64
	Beta2        float64
	Gamma        float64
	Epsilon      float64
}

// Updater is the shared weight-updater contract: Start begins a new
// update (resetting any multi-micro-iteration state), Iterate consumes
// one set of gradients (one per weight), IsFinished reports whether the
// required number of micro-iterations has been reached, and NewWeight/
// NewVelocity expose the would-be values for weight i without requiring
// the caller to track internal state directly.
type Updater interface {
	Start()
	Iterate(gradients []float64)
	IsFinished() bool
	NewWeight(i int, gradients []float64) float64
	NewVelocity(i int, gradients []float64) float64
}

// Apply drives u to completion against weights, feeding it gradients
// (recomputed by grad for each micro-iteration, since Nesterov's second
// micro-iteration needs a gradient evaluated at the probed weights) and
// writes the final NewWeight back into the table.
func Apply(u Updater, weights *netmodel.WeightTable, grad func() []float64) {
	u.Start()
	gradients := grad()
	for !u.IsFinished() {
		u.Iterate(gradients)
		if !u.IsFinished() {
			gradients = grad()
		}
	}
	for i := 0; i < weights.Len(); i++ {
		weights.Set(i, u.NewWeight(i, gradients))
	}
}
