// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings holds the tunables spec.md §6's settings table lists,
// applying `default:` field-tag values the way econfig.SetFromDefaultsStruct
// applies `def:` tags, and deriving SCREAMING_SNAKE_CASE environment
// variable names from field names via strcase the way econfig derives
// flag names from field names.
package settings

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// TrainingStrategy is one bit of the training_strategies bitset.
type TrainingStrategy uint8

const (
	StopIfTrainingErrorZero TrainingStrategy = 1 << iota
	StopIfTrainingErrorBelowLearningRate
	EarlyStopping
)

// DecayStep is one entry of a learning_rate_decay schedule: once the
// iteration counter reaches Iteration, LearningRate is multiplied by
// Multiplier.
type DecayStep struct {
	Iteration  int
	Multiplier float64
}

// Settings collects every tunable spec.md §6 lists. Fields carry
// `default:` tags consumed by Defaults(), mirroring econfig's `def:` tag
// convention.
type Settings struct {
	MaxSolveThreads      int     `default:"4"`
	MaxProcessingThreads int     `default:"4"`
	LearningRate         float64 `default:"0.01"`
	MinibatchSize        int     `default:"32"`
	MemoryTruncation     int     `default:"0"`
	DropoutProbability   float64 `default:"0.0"`
	TrainingStrategies   TrainingStrategy

	// LearningRateDecay is a sorted-by-Iteration multiplier schedule; no
	// `default:` tag since a slice default isn't representable as a tag
	// string, and LoadEnvOverrides skips slice fields, so it is set via
	// code only.
	LearningRateDecay []DecayStep

	Alpha   float64 `default:"1.0"`
	Beta    float64 `default:"0.9"`
	Beta2   float64 `default:"0.999"`
	Gamma   float64 `default:"0.9"`
	Delta   float64 `default:"0.0"`
	Epsilon float64 `default:"1e-8"`
	Zetta   float64 `default:"0.0"`
	Lambda  float64 `default:"0.0"`
}

// Defaults builds a Settings populated purely from `default:` field tags.
func Defaults() *Settings {
	s := &Settings{}
	setFromDefaultTags(s)
	return s
}

func setFromDefaultTags(s *Settings) {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok || def == "" {
			continue
		}
		fv := val.Field(i)
		switch fv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(def, 10, 64)
			if err == nil {
				fv.SetInt(n)
			}
		case reflect.Float64, reflect.Float32:
			fl, err := strconv.ParseFloat(def, 64)
			if err == nil {
				fv.SetFloat(fl)
			}
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(def, 10, 64)
			if err == nil {
				fv.SetUint(n)
			}
		}
	}
}

// LoadEnvOverrides overrides any field that has a matching environment
// variable set, named RAFKO_<SCREAMING_SNAKE_CASE of field name> via
// strcase.ToScreamingSnake, mirroring econfig's field-name-to-flag-name
// derivation but for the environment instead of the command line.
func (s *Settings) LoadEnvOverrides() error {
	val := reflect.ValueOf(s).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		fv := val.Field(i)
		if fv.Kind() == reflect.Slice {
			continue
		}
		envKey := "RAFKO_" + strcase.ToScreamingSnake(f.Name)
		raw, ok := os.LookupEnv(envKey)
		if !ok || raw == "" {
			continue
		}
		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("settings: env override %s: %w", envKey, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Float64, reflect.Float32:
		fl, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		fv.SetFloat(fl)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		fv.SetUint(n)
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}
	return nil
}

// Validate reports the first settings invariant violation found, or nil.
func (s *Settings) Validate() error {
	switch {
	case s.MaxSolveThreads < 1:
		return fmt.Errorf("settings: max_solve_threads must be >= 1, got %d", s.MaxSolveThreads)
	case s.MaxProcessingThreads < 1:
		return fmt.Errorf("settings: max_processing_threads must be >= 1, got %d", s.MaxProcessingThreads)
	case s.LearningRate <= 0:
		return fmt.Errorf("settings: learning_rate must be > 0, got %g", s.LearningRate)
	case s.MinibatchSize < 1:
		return fmt.Errorf("settings: minibatch_size must be >= 1, got %d", s.MinibatchSize)
	case s.MemoryTruncation < 0:
		return fmt.Errorf("settings: memory_truncation must be >= 0, got %d", s.MemoryTruncation)
	case s.DropoutProbability < 0 || s.DropoutProbability >= 1:
		return fmt.Errorf("settings: dropout_probability must be in [0, 1), got %g", s.DropoutProbability)
	}
	for i := 1; i < len(s.LearningRateDecay); i++ {
		if s.LearningRateDecay[i].Iteration <= s.LearningRateDecay[i-1].Iteration {
			return fmt.Errorf("settings: learning_rate_decay must be sorted by iteration, entry %d (%d) <= entry %d (%d)",
				i, s.LearningRateDecay[i].Iteration, i-1, s.LearningRateDecay[i-1].Iteration)
		}
	}
	return nil
}

// Has reports whether strategy bit is set in the training_strategies
// bitset.
func (s *Settings) Has(strategy TrainingStrategy) bool {
	return s.TrainingStrategies&strategy != 0
}

// LearningRateAt applies the decay schedule multiplicatively up through
// iteration, returning the effective learning rate.
func (s *Settings) LearningRateAt(iteration int) float64 {
	rate := s.LearningRate
	for _, step := range s.LearningRateDecay {
		if iteration >= step.Iteration {
			rate *= step.Multiplier
		}
	}
	return rate
}

func (s TrainingStrategy) String() string {
	var names []string
	if s&StopIfTrainingErrorZero != 0 {
		names = append(names, "stop_if_training_error_zero")
	}
	if s&StopIfTrainingErrorBelowLearningRate != 0 {
		names = append(names, "stop_if_training_error_below_learning_rate")
	}
	if s&EarlyStopping != 0 {
		names = append(names, "early_stopping")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
