//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package composite combines individual metric values into one weighted score.
package composite

import (
	"errors"
	"fmt"

	"trpc.group/trpc-go/toolscore-go/metric"
)

var (
	// ErrNegativeWeight is returned when a supplied weight is negative.
	ErrNegativeWeight = errors.New("negative weight")
	// ErrUnrecognizedMetric is returned when a weight key matches no known metric.
	ErrUnrecognizedMetric = errors.New("unrecognized metric")
)

// Weights maps metric names to non-negative weights. Weights need not sum to
// one; the score divides by the sum of the weights actually supplied, so a
// caller can zero out a metric without shifting the scale of the rest.
type Weights map[string]float64

// DefaultWeights is the default metric weighting. The redundant rate weight
// applies to 1-redundant_rate so a higher composite is always better.
func DefaultWeights() Weights {
	return Weights{
		metric.SelectionAccuracy: 0.4,
		metric.ArgumentF1:        0.3,
		metric.SequenceAccuracy:  0.2,
		metric.RedundantRate:     0.1,
	}
}

// recognized lists the metric names a weight key may reference.
var recognized = map[string]bool{
	metric.SelectionAccuracy:   true,
	metric.ArgumentF1:          true,
	metric.SequenceAccuracy:    true,
	metric.RedundantRate:       true,
	metric.ToolCorrectness:     true,
	metric.TrajectoryAccuracy:  true,
	metric.SemanticCorrectness: true,
}

// Validate checks the weight map before any evaluation work begins.
func (w Weights) Validate() error {
	return w.ValidateWith()
}

// ValidateWith checks the weight map, additionally accepting the given
// custom metric names. Registered evaluator metrics are weighted through it.
func (w Weights) ValidateWith(extra ...string) error {
	for name, weight := range w {
		if !recognized[name] && !containsName(extra, name) {
			return fmt.Errorf("%w: %s", ErrUnrecognizedMetric, name)
		}
		if weight < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeWeight, name, weight)
		}
	}
	return nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Score combines metric values into one weighted score in [0, 1].
// Metrics marked unavailable are dropped from both the weighted sum and the
// normalizing denominator. The redundant rate contributes inverted.
func Score(values []*metric.Value, weights Weights, opt ...Option) (float64, error) {
	opts := newOptions(opt...)
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.ValidateWith(opts.extraMetrics...); err != nil {
		return 0, err
	}
	byName := make(map[string]*metric.Value, len(values))
	for _, v := range values {
		byName[v.Name] = v
	}
	var weightedSum, weightSum float64
	for name, weight := range weights {
		value, ok := byName[name]
		if !ok || value.Unavailable {
			continue
		}
		score := value.Score
		if name == metric.RedundantRate {
			score = 1 - score
		}
		weightedSum += weight * score
		weightSum += weight
	}
	if weightSum == 0 {
		return 0, nil
	}
	return clamp(weightedSum / weightSum), nil
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
