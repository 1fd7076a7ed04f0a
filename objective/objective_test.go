// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMSEDerivativeMatchesFiniteDifference(t *testing.T) {
	label, n := 0.7, 4
	const h = 1e-6
	up := MSE{}.FeatureError([]float64{label}, []float64{0.3 + h}, n)
	down := MSE{}.FeatureError([]float64{label}, []float64{0.3 - h}, n)
	want := (up - down) / (2 * h)
	got := MSE{}.Derivative(label, 0.3, n)
	assert.InDelta(t, want, got, 1e-4)
}

func TestSquaredErrorHasNoNormalization(t *testing.T) {
	e := SquaredError{}.FeatureError([]float64{1, 2}, []float64{0, 0}, 2)
	assert.Equal(t, 5.0, e)
}

func TestCrossEntropyDerivative(t *testing.T) {
	got := CrossEntropy{}.Derivative(1, 0.5, 1)
	assert.InDelta(t, -2.0, got, 1e-9)
}

func TestFeatureErrorsFillsStrided(t *testing.T) {
	out := make([]float64, 4)
	SquaredError{}.FeatureErrors(
		[][]float64{{1}, {2}},
		[][]float64{{1}, {0}},
		out, 0, 2, 2,
	)
	assert.Equal(t, []float64{0, 0, 4, 0}, out)
}
