// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarfn

// Input identifies one of the pairwise merge functions used to combine a
// neuron's weighted inputs (and its bias chain).
type Input int

const (
	InputAdd Input = iota
	InputMultiply
)

// InputValue merges a and b through fn.
func InputValue(fn Input, a, b float64) float64 {
	switch fn {
	case InputAdd:
		return a + b
	case InputMultiply:
		return a * b
	default:
		panic("scalarfn: unknown input function")
	}
}

// InputDerivative computes d(InputValue(fn,a,b))/dw given da = da/dw and
// db = db/dw, applying the product rule for multiply and simple addition
// for add.
func InputDerivative(fn Input, a, da, b, db float64) float64 {
	switch fn {
	case InputAdd:
		return da + db
	case InputMultiply:
		return da*b + a*db
	default:
		panic("scalarfn: unknown input function")
	}
}
