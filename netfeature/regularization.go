// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netfeature

import "math"

// L1 computes sum(|w|) over the designated weights.
func L1(weights []float64) float64 {
	sum := 0.0
	for _, w := range weights {
		sum += math.Abs(w)
	}
	return sum
}

// L1Derivative returns sign(w); 0 at w == 0, matching the conventional
// subgradient choice.
func L1Derivative(w float64) float64 {
	switch {
	case w > 0:
		return 1
	case w < 0:
		return -1
	default:
		return 0
	}
}

// L2 computes sum(w^2) over the designated weights.
func L2(weights []float64) float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w * w
	}
	return sum
}

// L2Derivative returns 2*w.
func L2Derivative(w float64) float64 {
	return 2 * w
}
