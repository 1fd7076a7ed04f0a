// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package training

import (
	"math/rand"

	"github.com/davids91/rafko/erand"
)

// seededSource is an erand.Rand backed by a private, seeded math/rand
// source, so a caller-supplied seed makes StochasticEvaluation's minibatch
// and window choice reproducible independent of the global source.
type seededSource struct{ r *rand.Rand }

func seededRand(seed int64) erand.Rand {
	return seededSource{r: rand.New(rand.NewSource(seed))}
}

func (s seededSource) Float32(thr int) float32       { return s.r.Float32() }
func (s seededSource) Float64(thr int) float64       { return s.r.Float64() }
func (s seededSource) Int63n(n int64, thr int) int64 { return s.r.Int63n(n) }

// shuffle performs a Fisher-Yates shuffle of order using rnd, the seeded
// equivalent of erand.PermuteInts (which always draws from the global
// math/rand source and so cannot be made reproducible by a seed).
func shuffle(order []int, rnd erand.Rand) {
	for i := len(order) - 1; i > 0; i-- {
		j := int(rnd.Int63n(int64(i+1), -1))
		order[i], order[j] = order[j], order[i]
	}
}
