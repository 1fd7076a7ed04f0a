// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalarfn

// Spike identifies one of the per-neuron state-update (recurrence)
// functions. Every spike function uses exactly one weight: the first
// weight synapse of the neuron.
type Spike int

const (
	SpikeNone Spike = iota
	SpikeMemory
	SpikeP
	SpikeAmplify
)

// SpikeValue computes the new spike (neuron) value from the spike weight
// w, the current transfer output newData, and the neuron's own value one
// time step back, prevData.
func SpikeValue(fn Spike, w, newData, prevData float64) float64 {
	switch fn {
	case SpikeNone:
		return newData
	case SpikeMemory:
		return w*prevData + (1-w)*newData
	case SpikeP:
		return prevData + (newData-prevData)*w
	case SpikeAmplify:
		return w * newData
	default:
		panic("scalarfn: unknown spike function")
	}
}

// SpikeDerivative computes d(SpikeValue)/dWeight, given:
//   - w: the spike weight's current value
//   - newData, newDataD: the transfer output this step and its derivative
//     w.r.t. weight
//   - prevData, prevDataD: this spike operation's own value and derivative
//     one step back, read from the ring buffer
//   - isSpikeWeight: whether the weight being differentiated against is
//     this neuron's spike weight itself
func SpikeDerivative(fn Spike, w, newData, newDataD, prevData, prevDataD float64, isSpikeWeight bool) float64 {
	var selfTerm float64
	switch fn {
	case SpikeNone:
		return newDataD
	case SpikeMemory:
		if isSpikeWeight {
			selfTerm = prevData - newData
		}
		return selfTerm + w*prevDataD + (1-w)*newDataD
	case SpikeP:
		if isSpikeWeight {
			selfTerm = newData - prevData
		}
		return selfTerm + (1-w)*prevDataD + w*newDataD
	case SpikeAmplify:
		if isSpikeWeight {
			selfTerm = newData
		}
		return selfTerm + w*newDataD
	default:
		panic("scalarfn: unknown spike function")
	}
}
