//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"sort"

	"trpc.group/trpc-go/toolscore-go/align"
	"trpc.group/trpc-go/toolscore-go/callset"
)

// Engine computes the built-in metric set from shared evaluation inputs.
type Engine struct {
	trajectoryBlend float64
}

// NewEngine creates a metric engine with the provided options.
func NewEngine(opt ...EngineOption) *Engine {
	opts := newEngineOptions(opt...)
	return &Engine{trajectoryBlend: opts.trajectoryBlend}
}

// Compute returns every built-in metric for the given input, in a fixed order.
func (e *Engine) Compute(in *Input) []*Value {
	selection := ComputeSelectionAccuracy(in)
	coverage := ComputeToolCorrectness(in)
	return []*Value{
		selection,
		coverage,
		ComputeArgumentF1(in),
		ComputeSequenceAccuracy(in),
		ComputeRedundantRate(in),
		e.computeTrajectoryAccuracy(in, selection.Score, coverage.Score),
	}
}

// ComputeSelectionAccuracy measures name-level correctness per aligned
// position. Unaligned insert and delete positions count as incorrect; the
// denominator is the expected call count.
func ComputeSelectionAccuracy(in *Input) *Value {
	matched := 0
	for _, op := range in.Alignment.Ops {
		if op.Kind == align.OpMatch {
			matched++
		}
	}
	score := 0.0
	switch {
	case len(in.Expected) > 0:
		score = float64(matched) / float64(len(in.Expected))
	case len(in.Actual) == 0:
		// Nothing expected, nothing called.
		score = 1.0
	}
	return &Value{
		Name:  SelectionAccuracy,
		Score: score,
		Details: map[string]any{
			"matched_positions": matched,
			"total_expected":    len(in.Expected),
		},
	}
}

// ComputeToolCorrectness measures coverage: the fraction of distinct expected
// tool names that appear at least once anywhere in the actual trace.
func ComputeToolCorrectness(in *Input) *Value {
	expectedSet := nameSet(in.Expected)
	actualSet := nameSet(in.Actual)
	var missing, extra, covered []string
	for name := range expectedSet {
		if actualSet[name] {
			covered = append(covered, name)
		} else {
			missing = append(missing, name)
		}
	}
	for name := range actualSet {
		if !expectedSet[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	sort.Strings(covered)
	score := 1.0 // Nothing expected, nothing to cover.
	if len(expectedSet) > 0 {
		score = float64(len(covered)) / float64(len(expectedSet))
	}
	return &Value{
		Name:  ToolCorrectness,
		Score: score,
		Details: map[string]any{
			"correct_count":  len(covered),
			"total_expected": len(expectedSet),
			"missing_tools":  missing,
			"extra_tools":    extra,
		},
	}
}

// ComputeArgumentF1 averages per-position argument F1 over aligned pairs.
// Pairs with mismatched names contribute zero; insert and delete positions are
// excluded from the denominator and reported as not evaluable.
func ComputeArgumentF1(in *Input) *Value {
	pairs := in.Alignment.Pairs()
	skipped := len(in.Alignment.Ops) - len(pairs)
	var sum float64
	evaluated := 0
	for idx, op := range in.Alignment.Ops {
		if op.Kind != align.OpMatch {
			continue
		}
		if diff, ok := in.Diffs[idx]; ok {
			sum += diff.Score.FMeasure
			evaluated++
		}
	}
	score := 0.0
	switch {
	case len(pairs) > 0:
		score = sum / float64(len(pairs))
	case len(in.Expected) == 0 && len(in.Actual) == 0:
		// Equal empty traces are vacuously correct.
		score = 1.0
	}
	return &Value{
		Name:  ArgumentF1,
		Score: score,
		Details: map[string]any{
			"evaluated_pairs": evaluated,
			"aligned_pairs":   len(pairs),
			"not_evaluable":   skipped,
		},
	}
}

// ComputeSequenceAccuracy reads the normalized edit distance off the alignment.
func ComputeSequenceAccuracy(in *Input) *Value {
	return &Value{
		Name:  SequenceAccuracy,
		Score: in.Alignment.SequenceAccuracy(),
		Details: map[string]any{
			"edit_distance": in.Alignment.EditDistance(),
		},
	}
}

// ComputeRedundantRate measures the fraction of actual calls that exactly
// duplicate an earlier actual call (same tool, same arguments). The first
// occurrence is never counted.
func ComputeRedundantRate(in *Input) *Value {
	redundant := 0
	var positions []int
	for i, call := range in.Actual {
		for j := 0; j < i; j++ {
			earlier := in.Actual[j]
			if earlier.Tool == call.Tool && earlier.Args.Equal(call.Args) {
				redundant++
				positions = append(positions, i)
				break
			}
		}
	}
	score := 0.0
	if len(in.Actual) > 0 {
		score = float64(redundant) / float64(len(in.Actual))
	}
	return &Value{
		Name:  RedundantRate,
		Score: score,
		Details: map[string]any{
			"redundant_count":     redundant,
			"total_calls":         len(in.Actual),
			"redundant_positions": positions,
		},
	}
}

// computeTrajectoryAccuracy rewards out-of-order-but-present calls by blending
// the strict aligned measure with coverage:
//
//	trajectory = blend*selection + (1-blend)*coverage
//
// The blend defaults to 0.5 and is configurable. Step-level details preserve
// the stricter positionwise view for callers that want it.
func (e *Engine) computeTrajectoryAccuracy(in *Input, selection, coverage float64) *Value {
	score := e.trajectoryBlend*selection + (1-e.trajectoryBlend)*coverage
	correctSteps := 0
	steps := min(len(in.Expected), len(in.Actual))
	for i := 0; i < steps; i++ {
		if in.Expected[i].Tool == in.Actual[i].Tool && in.Expected[i].Args.Equal(in.Actual[i].Args) {
			correctSteps++
		}
	}
	stepMatchRate := 0.0
	switch {
	case len(in.Expected) > 0:
		stepMatchRate = float64(correctSteps) / float64(len(in.Expected))
	case len(in.Actual) == 0:
		stepMatchRate = 1.0
	}
	pathEfficiency := 1.0
	if len(in.Actual) > len(in.Expected) && len(in.Actual) > 0 {
		pathEfficiency = float64(len(in.Expected)) / float64(len(in.Actual))
	}
	return &Value{
		Name:  TrajectoryAccuracy,
		Score: score,
		Details: map[string]any{
			"blend":           e.trajectoryBlend,
			"step_match_rate": stepMatchRate,
			"path_efficiency": pathEfficiency,
			"correct_steps":   correctSteps,
		},
	}
}

func nameSet(calls []*callset.Call) map[string]bool {
	set := make(map[string]bool, len(calls))
	for _, call := range calls {
		set[call.Tool] = true
	}
	return set
}
