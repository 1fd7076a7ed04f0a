// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package erand

import "math/rand"

// Rand abstracts the random number source every function in this package
// draws from, so a caller can swap in a per-thread generator (thr picks
// which one) instead of always hitting the global math/rand source.
type Rand interface {
	Float32(thr int) float32
	Float64(thr int) float64
	Int63n(n int64, thr int) int64
}

// StdRand implements Rand directly on top of math/rand, ignoring thr (the
// global source has no per-thread notion of its own).
type StdRand struct{}

func (StdRand) Float32(thr int) float32     { return rand.Float32() }
func (StdRand) Float64(thr int) float64     { return rand.Float64() }
func (StdRand) Int63n(n int64, thr int) int64 { return rand.Int63n(n) }

// NewGlobalRand returns the Rand implementation every exported function
// here falls back to when no explicit source is passed.
func NewGlobalRand() Rand { return StdRand{} }
