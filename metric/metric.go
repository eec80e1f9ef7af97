//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package metric computes the individual evaluation metrics.
package metric

import (
	"context"

	"trpc.group/trpc-go/toolscore-go/align"
	"trpc.group/trpc-go/toolscore-go/argdiff"
	"trpc.group/trpc-go/toolscore-go/callset"
)

// Value is a named metric score with a free-form details payload.
type Value struct {
	// Name identifies the metric.
	Name string `json:"name"`
	// Score is the metric score in [0, 1].
	Score float64 `json:"score"`
	// Unavailable marks a metric whose scorer could not run; the score is
	// then meaningless and the metric is omitted from the composite.
	Unavailable bool `json:"unavailable,omitempty"`
	// Details contains additional metric-specific information for display.
	Details map[string]any `json:"details,omitempty"`
}

// Input carries the shared evaluation state every metric is a pure function of.
type Input struct {
	// Expected is the gold standard call list.
	Expected []*callset.Call
	// Actual is the traced call list.
	Actual []*callset.Call
	// Alignment is the minimum edit distance alignment of the name sequences.
	Alignment *align.Alignment
	// Diffs maps alignment op indexes of name-equal pairs to their argument diffs.
	Diffs map[int]*argdiff.Diff
}

// Evaluator computes one metric from the shared evaluation input.
// Implementations must be pure: no hidden state, safe for concurrent use.
type Evaluator interface {
	// Name returns the metric name.
	Name() string
	// Description returns a description of what this evaluator measures.
	Description() string
	// Evaluate computes the metric value.
	Evaluate(ctx context.Context, in *Input) (*Value, error)
}
