//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package baseline saves evaluation snapshots and compares later runs
// against them to detect metric regressions.
package baseline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"trpc.group/trpc-go/toolscore-go/epochtime"
	"trpc.group/trpc-go/toolscore-go/evalresult"
	"trpc.group/trpc-go/toolscore-go/metric"
)

// Status describes how a metric moved relative to the baseline.
type Status string

const (
	// StatusRegression means the metric degraded beyond the threshold.
	StatusRegression Status = "regression"
	// StatusImprovement means the metric improved beyond the threshold.
	StatusImprovement Status = "improvement"
	// StatusStable means the metric stayed within the threshold.
	StatusStable Status = "stable"
)

// Baseline is a saved metric snapshot used for regression testing.
type Baseline struct {
	CreationTimestamp  *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
	CallSetFingerprint string               `json:"callSetFingerprint,omitempty"`
	CompositeScore     float64              `json:"compositeScore"`
	Metrics            map[string]float64   `json:"metrics"`
	ExpectedCount      int                  `json:"expectedCount"`
	ActualCount        int                  `json:"actualCount"`
}

// FromResult builds a baseline snapshot from an evaluation result.
// Metrics flagged unavailable are excluded from the snapshot.
func FromResult(result *evalresult.EvaluationResult) (*Baseline, error) {
	if result == nil {
		return nil, errors.New("evaluation result is nil")
	}
	metrics := make(map[string]float64, len(result.Metrics))
	for _, v := range result.Metrics {
		if v == nil || v.Unavailable {
			continue
		}
		metrics[v.Name] = v.Score
	}
	return &Baseline{
		CreationTimestamp:  epochtime.Now(),
		CallSetFingerprint: result.CallSetFingerprint,
		CompositeScore:     result.CompositeScore,
		Metrics:            metrics,
		ExpectedCount:      result.ExpectedCount,
		ActualCount:        result.ActualCount,
	}, nil
}

// Save writes the baseline to path as JSON. The write is atomic: data goes
// to a temporary file first and is renamed into place.
func Save(b *Baseline, path string) error {
	if b == nil {
		return errors.New("baseline is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create baseline directory: %w", err)
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write baseline: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename baseline: %w", err)
	}
	return nil
}

// Load reads a baseline from path.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode baseline %s: %w", path, err)
	}
	if b.Metrics == nil {
		return nil, fmt.Errorf("invalid baseline file %s: missing metrics", path)
	}
	return &b, nil
}

// RegressionItem records the movement of a single metric.
type RegressionItem struct {
	MetricName    string  `json:"metricName"`
	BaselineValue float64 `json:"baselineValue"`
	CurrentValue  float64 `json:"currentValue"`
	Delta         float64 `json:"delta"`
	DeltaPercent  float64 `json:"deltaPercent"`
	Threshold     float64 `json:"threshold"`
	Status        Status  `json:"status"`
}

// ComparisonResult is the outcome of comparing a run against a baseline.
type ComparisonResult struct {
	Passed              bool                 `json:"passed"`
	Threshold           float64              `json:"threshold"`
	FingerprintMatched  bool                 `json:"fingerprintMatched"`
	BaselineTimestamp   *epochtime.EpochTime `json:"baselineTimestamp,omitempty"`
	ComparisonTimestamp *epochtime.EpochTime `json:"comparisonTimestamp,omitempty"`
	Items               []*RegressionItem    `json:"items,omitempty"`
	Summary             string               `json:"summary"`
}

// Regressions returns only the items that regressed.
func (r *ComparisonResult) Regressions() []*RegressionItem {
	return r.filter(StatusRegression)
}

// Improvements returns only the items that improved.
func (r *ComparisonResult) Improvements() []*RegressionItem {
	return r.filter(StatusImprovement)
}

func (r *ComparisonResult) filter(status Status) []*RegressionItem {
	var items []*RegressionItem
	for _, item := range r.Items {
		if item.Status == status {
			items = append(items, item)
		}
	}
	return items
}

// lowerIsBetter lists metrics where a decrease is an improvement.
var lowerIsBetter = map[string]bool{
	metric.RedundantRate: true,
}

// Compare evaluates the current result against the baseline. A metric counts
// as a regression when it degrades by more than the threshold; every
// regression fails the comparison. Metrics absent from the current result
// are compared as zero.
func Compare(result *evalresult.EvaluationResult, b *Baseline, opt ...Option) (*ComparisonResult, error) {
	if result == nil {
		return nil, errors.New("evaluation result is nil")
	}
	if b == nil {
		return nil, errors.New("baseline is nil")
	}
	opts := newOptions(opt...)
	threshold := opts.threshold

	current := make(map[string]float64, len(result.Metrics))
	for _, v := range result.Metrics {
		if v == nil || v.Unavailable {
			continue
		}
		current[v.Name] = v.Score
	}

	names := make([]string, 0, len(b.Metrics))
	for name := range b.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	passed := true
	items := make([]*RegressionItem, 0, len(names))
	for _, name := range names {
		baselineValue := b.Metrics[name]
		currentValue := current[name]
		delta := currentValue - baselineValue
		item := &RegressionItem{
			MetricName:    name,
			BaselineValue: baselineValue,
			CurrentValue:  currentValue,
			Delta:         delta,
			DeltaPercent:  deltaPercent(delta, baselineValue),
			Threshold:     threshold,
			Status:        classify(name, delta, threshold),
		}
		if item.Status == StatusRegression {
			passed = false
		}
		items = append(items, item)
	}

	// Regressions first, then by delta magnitude.
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].Status == StatusRegression, items[j].Status == StatusRegression
		if ri != rj {
			return ri
		}
		return abs(items[i].Delta) > abs(items[j].Delta)
	})

	fingerprintMatched := b.CallSetFingerprint == "" ||
		b.CallSetFingerprint == result.CallSetFingerprint

	return &ComparisonResult{
		Passed:              passed,
		Threshold:           threshold,
		FingerprintMatched:  fingerprintMatched,
		BaselineTimestamp:   b.CreationTimestamp,
		ComparisonTimestamp: epochtime.Now(),
		Items:               items,
		Summary:             summarize(passed, threshold, items),
	}, nil
}

func classify(name string, delta, threshold float64) Status {
	if lowerIsBetter[name] {
		delta = -delta
	}
	switch {
	case delta < -threshold:
		return StatusRegression
	case delta > threshold:
		return StatusImprovement
	default:
		return StatusStable
	}
}

func deltaPercent(delta, baselineValue float64) float64 {
	if baselineValue != 0 {
		return delta / baselineValue * 100
	}
	switch {
	case delta > 0:
		return 100
	case delta < 0:
		return -100
	default:
		return 0
	}
}

func summarize(passed bool, threshold float64, items []*RegressionItem) string {
	regressions, improvements := 0, 0
	for _, item := range items {
		switch item.Status {
		case StatusRegression:
			regressions++
		case StatusImprovement:
			improvements++
		}
	}
	if !passed {
		return fmt.Sprintf("FAIL: %d regression(s) detected (threshold: %.0f%%)",
			regressions, threshold*100)
	}
	if improvements > 0 {
		return fmt.Sprintf("PASS: no regressions, %d improvement(s) detected", improvements)
	}
	return fmt.Sprintf("PASS: no significant changes (threshold: %.0f%%)", threshold*100)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
