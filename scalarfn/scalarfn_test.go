// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const h = 1e-5

func numericDerivative(fn Transfer, x, alpha, lambda float64) float64 {
	up := TransferValue(fn, x+h, alpha, lambda)
	down := TransferValue(fn, x-h, alpha, lambda)
	return (up - down) / (2 * h)
}

func TestTransferDerivativesMatchFiniteDifference(t *testing.T) {
	fns := []Transfer{TransferIdentity, TransferSigmoid, TransferTanh, TransferELU, TransferSELU}
	xs := []float64{-2.5, -0.3, 0.7, 3.1}
	for _, fn := range fns {
		for _, x := range xs {
			val := TransferValue(fn, x, 1.0, 1.05)
			got := TransferDerivative(fn, x, val, 1.0, 1.05)
			want := numericDerivative(fn, x, 1.0, 1.05)
			assert.InDeltaf(t, want, got, 1e-3, "fn=%d x=%f", fn, x)
		}
	}
}

func TestReLUDerivative(t *testing.T) {
	assert.Equal(t, 0.0, TransferValue(TransferReLU, -1, 0, 0))
	assert.Equal(t, 2.0, TransferValue(TransferReLU, 2, 0, 0))
	assert.Equal(t, 0.0, TransferDerivative(TransferReLU, -1, 0, 0, 0))
	assert.Equal(t, 1.0, TransferDerivative(TransferReLU, 2, 2, 0, 0))
}

func TestSigmoidClampsOverflow(t *testing.T) {
	v := TransferValue(TransferSigmoid, 1e9, 0, 0)
	assert.InDelta(t, 1.0, v, 1e-9)
	v = TransferValue(TransferSigmoid, -1e9, 0, 0)
	assert.InDelta(t, 0.0, v, 1e-9)
}

func TestInputFunctions(t *testing.T) {
	assert.Equal(t, 5.0, InputValue(InputAdd, 2, 3))
	assert.Equal(t, 6.0, InputValue(InputMultiply, 2, 3))
	assert.Equal(t, 1.0+1.0, InputDerivative(InputAdd, 2, 1, 3, 1))
	// d/dw(a*b) = da*b + a*db = 1*3 + 2*1 = 5
	assert.Equal(t, 5.0, InputDerivative(InputMultiply, 2, 1, 3, 1))
}

func TestSpikeFunctionsAgainstFiniteDifference(t *testing.T) {
	// treat w as the only variable, newData/prevData fixed and independent
	// of w (newDataD = prevDataD = 0), so the derivative reduces to the
	// partial w.r.t. w alone.
	newData, prevData := 0.7, 0.3
	fns := []Spike{SpikeNone, SpikeMemory, SpikeP, SpikeAmplify}
	for _, fn := range fns {
		w := 0.42
		val := func(ww float64) float64 { return SpikeValue(fn, ww, newData, prevData) }
		want := (val(w+h) - val(w-h)) / (2 * h)
		got := SpikeDerivative(fn, w, newData, 0, prevData, 0, true)
		assert.InDeltaf(t, want, got, 1e-4, "fn=%d", fn)
	}
}

func TestSpikeDerivativeIgnoresSelfTermWhenNotSpikeWeight(t *testing.T) {
	// when w is not the spike weight, SpikeValue doesn't vary with it at
	// all (holding newData/prevData fixed), so the derivative should just
	// carry through the upstream derivatives.
	got := SpikeDerivative(SpikeMemory, 0.5, 1, 2, 3, 4, false)
	assert.Equal(t, 0.5*4+(1-0.5)*2, got)
}
