// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepZeroFillsCurrentSlot(t *testing.T) {
	b := NewBuffer(3, 2, 2, 5)
	b.SetValue(0, 1.5)
	b.Step()
	b.SetValue(0, 9)
	b.Step()
	// three steps total (constructor starts at slot memorySlots-1, then two
	// Step calls): current value slot must start zeroed before being set.
	assert.Equal(t, 0.0, b.Value(0, 0))
}

func TestValueHistoryAcrossSteps(t *testing.T) {
	b := NewBuffer(3, 1, 1, 5)
	b.SetValue(0, 1)
	b.Step()
	b.SetValue(0, 2)
	b.Step()
	b.SetValue(0, 3)
	assert.Equal(t, 3.0, b.Value(0, 0))
	assert.Equal(t, 2.0, b.Value(0, 1))
	assert.Equal(t, 1.0, b.Value(0, 2))
}

func TestRingWrapsAtMemorySlots(t *testing.T) {
	b := NewBuffer(2, 1, 1, 5)
	b.SetValue(0, 1)
	b.Step()
	b.SetValue(0, 2)
	b.Step()
	b.SetValue(0, 3)
	// memorySlots=2, so only the last 2 steps are retrievable.
	assert.Equal(t, 3.0, b.Value(0, 0))
	assert.Equal(t, 2.0, b.Value(0, 1))
}

func TestSequenceDerivativeRecencyAverage(t *testing.T) {
	b := NewBuffer(3, 1, 1, 2)
	b.AccumulateSequenceDerivative(0, 4)
	assert.Equal(t, 2.0, b.SequenceDerivative(0, 0))
	b.AccumulateSequenceDerivative(0, 4)
	assert.Equal(t, 3.0, b.SequenceDerivative(0, 0))
}

func TestSequenceStepZeroFilledByStepPastSize(t *testing.T) {
	b := NewBuffer(3, 1, 1, 1)
	b.AccumulateSequenceDerivative(0, 10)
	b.AdvanceSequenceStep()
	// beyond sequenceSize, accumulation and step-zero-fill are no-ops.
	b.Step()
	b.AccumulateSequenceDerivative(0, 99)
	assert.Equal(t, 5.0, b.SequenceDerivative(0, 0))
}

func TestResetZeroesEverything(t *testing.T) {
	b := NewBuffer(2, 2, 2, 2)
	b.SetValue(0, 5)
	b.SetDerivative(0, 1, 7)
	b.AccumulateSequenceDerivative(0, 3)
	b.Reset()
	assert.Equal(t, 0.0, b.Value(0, 0))
	assert.Equal(t, 0.0, b.Derivative(0, 1, 0))
	assert.Equal(t, 0.0, b.SequenceDerivative(0, 0))
}
