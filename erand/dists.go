// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package erand

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// threadSource adapts a thread-aware Rand into the *rand.Rand distuv's
// distributions want: it seeds a fresh source from one rnd.Int63n draw,
// passing thr on to that draw only; the returned source carries no
// per-thread state of its own.
func threadSource(rnd Rand, thr int) *rand.Rand {
	return rand.New(rand.NewSource(int64(rnd.Int63n(1<<62, thr))))
}

// GaussianGen draws from a normal distribution with the given mean and
// standard deviation.
func GaussianGen(mean, sigma float64, thr int, randOpt ...Rand) float64 {
	rnd := resolve(randOpt)
	d := distuv.Normal{Mu: mean, Sigma: sigma, Src: threadSource(rnd, thr)}
	return d.Rand()
}

// BinomialGen draws the number of successes in n Bernoulli trials with
// success probability p.
func BinomialGen(n, p float64, thr int, randOpt ...Rand) float64 {
	rnd := resolve(randOpt)
	d := distuv.Binomial{N: n, P: p, Src: threadSource(rnd, thr)}
	return d.Rand()
}

// PoissonGen draws from a Poisson distribution with the given event rate.
func PoissonGen(lambda float64, thr int, randOpt ...Rand) float64 {
	rnd := resolve(randOpt)
	d := distuv.Poisson{Lambda: lambda, Src: threadSource(rnd, thr)}
	return d.Rand()
}

// GammaGen draws from a gamma distribution with shape alpha and rate beta.
func GammaGen(alpha, beta float64, thr int, randOpt ...Rand) float64 {
	rnd := resolve(randOpt)
	d := distuv.Gamma{Alpha: alpha, Beta: beta, Src: threadSource(rnd, thr)}
	return d.Rand()
}

// BetaGen draws from a beta distribution with the given alpha/beta shape
// parameters.
func BetaGen(alpha, beta float64, thr int, randOpt ...Rand) float64 {
	rnd := resolve(randOpt)
	d := distuv.Beta{Alpha: alpha, Beta: beta, Src: threadSource(rnd, thr)}
	return d.Rand()
}

func resolve(randOpt []Rand) Rand {
	if len(randOpt) == 0 {
		return NewGlobalRand()
	}
	return randOpt[0]
}
