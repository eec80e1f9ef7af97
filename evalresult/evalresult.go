//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package evalresult provides the immutable evaluation result aggregate.
package evalresult

import (
	"context"
	"errors"

	"trpc.group/trpc-go/toolscore-go/align"
	"trpc.group/trpc-go/toolscore-go/epochtime"
	"trpc.group/trpc-go/toolscore-go/explain"
	"trpc.group/trpc-go/toolscore-go/metric"
	"trpc.group/trpc-go/toolscore-go/status"
)

// EvaluationResult aggregates everything one evaluation produced. It is
// created once per evaluation and never mutated afterwards, so it is safe to
// share and read concurrently.
type EvaluationResult struct {
	// ResultID uniquely identifies this result.
	ResultID string `json:"resultId,omitempty"`
	// CallSetFingerprint is the integrity hash of the expected call list.
	CallSetFingerprint string `json:"callSetFingerprint,omitempty"`
	// CompositeScore is the weighted composite in [0, 1].
	CompositeScore float64 `json:"compositeScore"`
	// Status maps the composite score against the configured threshold.
	Status status.EvalStatus `json:"status"`
	// Threshold is the pass threshold that was applied.
	Threshold float64 `json:"threshold"`
	// Metrics holds every computed metric value.
	Metrics []*metric.Value `json:"metrics,omitempty"`
	// Alignment is the name sequence alignment the metrics were derived from.
	Alignment *align.Alignment `json:"alignment,omitempty"`
	// Report is the explainer output.
	Report *explain.Report `json:"report,omitempty"`
	// ExpectedCount is the expected call count.
	ExpectedCount int `json:"expectedCount"`
	// ActualCount is the actual call count.
	ActualCount int `json:"actualCount"`
	// CreationTimestamp when this result was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// Metric returns the named metric value, or nil when absent.
func (r *EvaluationResult) Metric(name string) *metric.Value {
	for _, v := range r.Metrics {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Validate checks the identifiers persistence backends rely on.
func (r *EvaluationResult) Validate() error {
	if r == nil {
		return errors.New("result is nil")
	}
	if r.ResultID == "" {
		return errors.New("result id is empty")
	}
	return nil
}

// Manager defines the interface for managing evaluation results.
type Manager interface {
	// Save stores an evaluation result.
	Save(ctx context.Context, result *EvaluationResult) error
	// Get retrieves an evaluation result by id.
	Get(ctx context.Context, resultID string) (*EvaluationResult, error)
	// List returns all stored result ids.
	List(ctx context.Context) ([]string, error)
}
