// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset defines the view interface the training context reads
// sequences through, generalizing env.Env's counter/sample abstraction
// down to the flat indexed-sample contract spec.md §6 specifies.
package dataset

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by InputSample/LabelSample for an index
// beyond the view's bounds.
var ErrIndexOutOfRange = errors.New("dataset: index out of range")

// View is the dataset contract the training context consumes: fixed input
// and feature widths, a sequence length plus a prefill length (steps run
// before any label is available), and a fixed sequence count. For sequence
// s and step i, the input sample raw index is s*(SequenceSize()+PrefillSize())+i
// and the label sample raw index is s*SequenceSize()+i (labels have no
// prefill).
type View interface {
	InputSize() int
	FeatureSize() int
	SequenceSize() int
	PrefillSize() int
	NumberOfSequences() int
	InputSample(rawIndex int) ([]float64, error)
	LabelSample(rawIndex int) ([]float64, error)
}

// InputIndex computes the raw input-sample index for sequence s, step i.
func InputIndex(v View, s, i int) int {
	return s*(v.SequenceSize()+v.PrefillSize()) + i
}

// LabelIndex computes the raw label-sample index for sequence s, step i.
func LabelIndex(v View, s, i int) int {
	return s*v.SequenceSize() + i
}

// InMemory is a View backed by plain slices held entirely in memory.
type InMemory struct {
	inputSize   int
	featureSize int
	sequenceSz  int
	prefillSz   int
	inputs      [][]float64
	labels      [][]float64
}

// NewInMemory builds an in-memory dataset view. inputs must hold
// numberOfSequences*(sequenceSize+prefillSize) samples of length
// inputSize; labels must hold numberOfSequences*sequenceSize samples of
// length featureSize.
func NewInMemory(inputSize, featureSize, sequenceSize, prefillSize int, inputs, labels [][]float64) (*InMemory, error) {
	if inputSize <= 0 || featureSize <= 0 || sequenceSize <= 0 || prefillSize < 0 {
		return nil, fmt.Errorf("dataset: invalid dimensions (input=%d feature=%d sequence=%d prefill=%d)",
			inputSize, featureSize, sequenceSize, prefillSize)
	}
	for i, in := range inputs {
		if len(in) != inputSize {
			return nil, fmt.Errorf("dataset: input sample %d has length %d, want %d", i, len(in), inputSize)
		}
	}
	for i, lb := range labels {
		if len(lb) != featureSize {
			return nil, fmt.Errorf("dataset: label sample %d has length %d, want %d", i, len(lb), featureSize)
		}
	}
	numSequences := 0
	if sequenceSize+prefillSize > 0 {
		numSequences = len(inputs) / (sequenceSize + prefillSize)
	}
	if numSequences*(sequenceSize+prefillSize) != len(inputs) {
		return nil, fmt.Errorf("dataset: %d input samples does not evenly divide into sequences of %d", len(inputs), sequenceSize+prefillSize)
	}
	if numSequences*sequenceSize != len(labels) {
		return nil, fmt.Errorf("dataset: %d label samples does not match %d sequences of size %d", len(labels), numSequences, sequenceSize)
	}
	return &InMemory{
		inputSize:   inputSize,
		featureSize: featureSize,
		sequenceSz:  sequenceSize,
		prefillSz:   prefillSize,
		inputs:      inputs,
		labels:      labels,
	}, nil
}

func (d *InMemory) InputSize() int    { return d.inputSize }
func (d *InMemory) FeatureSize() int  { return d.featureSize }
func (d *InMemory) SequenceSize() int { return d.sequenceSz }
func (d *InMemory) PrefillSize() int  { return d.prefillSz }

func (d *InMemory) NumberOfSequences() int {
	total := d.sequenceSz + d.prefillSz
	if total == 0 {
		return 0
	}
	return len(d.inputs) / total
}

func (d *InMemory) InputSample(rawIndex int) ([]float64, error) {
	if rawIndex < 0 || rawIndex >= len(d.inputs) {
		return nil, fmt.Errorf("%w: input index %d (have %d)", ErrIndexOutOfRange, rawIndex, len(d.inputs))
	}
	return d.inputs[rawIndex], nil
}

func (d *InMemory) LabelSample(rawIndex int) ([]float64, error) {
	if rawIndex < 0 || rawIndex >= len(d.labels) {
		return nil, fmt.Errorf("%w: label index %d (have %d)", ErrIndexOutOfRange, rawIndex, len(d.labels))
	}
	return d.labels[rawIndex], nil
}
