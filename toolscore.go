//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package toolscore scores a recorded tool call sequence against a gold
// standard one. Evaluate aligns the two sequences, diffs arguments of
// name-matched pairs, computes the metric suite and folds it into one
// weighted composite score with an attached diagnosis report.
package toolscore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"trpc.group/trpc-go/toolscore-go/align"
	"trpc.group/trpc-go/toolscore-go/argdiff"
	"trpc.group/trpc-go/toolscore-go/callset"
	"trpc.group/trpc-go/toolscore-go/epochtime"
	"trpc.group/trpc-go/toolscore-go/evalresult"
	"trpc.group/trpc-go/toolscore-go/explain"
	"trpc.group/trpc-go/toolscore-go/log"
	"trpc.group/trpc-go/toolscore-go/metric"
	"trpc.group/trpc-go/toolscore-go/metric/composite"
	"trpc.group/trpc-go/toolscore-go/semantic"
	"trpc.group/trpc-go/toolscore-go/status"
)

// Evaluate scores the actual call sequence against the expected one.
// It is a pure function of its inputs and options; concurrent calls share
// no mutable state. Malformed calls return an InputError and malformed
// settings a ConfigurationError, in both cases without a partial result.
func Evaluate(ctx context.Context, expected, actual []*callset.Call, opt ...Option) (*evalresult.EvaluationResult, error) {
	opts := NewOptions(opt...)
	if err := validateInput(expected, actual); err != nil {
		return nil, err
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	alignment := align.Align(callset.Names(expected), callset.Names(actual))
	diffs, err := runArgDiffs(buildArgDiffTasks(expected, actual, alignment, opts), opts.Parallelism)
	if err != nil {
		return nil, fmt.Errorf("compare arguments: %w", err)
	}

	in := &metric.Input{
		Expected:  expected,
		Actual:    actual,
		Alignment: alignment,
		Diffs:     diffs,
	}
	engine := metric.NewEngine(metric.WithTrajectoryBlend(opts.TrajectoryBlend))
	values := engine.Compute(in)
	report := explain.Explain(in)
	if opts.Scorer != nil {
		value, issue := scoreSemantic(ctx, opts.Scorer, in)
		values = append(values, value)
		if issue != nil {
			report.Issues = append(report.Issues, *issue)
		}
	}
	if opts.Registry != nil {
		values = append(values, runEvaluators(ctx, opts.Registry, in)...)
	}

	compositeScore, err := composite.Score(values, opts.Weights,
		composite.WithExtraMetrics(registeredNames(opts.Registry)...))
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	return &evalresult.EvaluationResult{
		ResultID:           uuid.NewString(),
		CallSetFingerprint: callset.Fingerprint(expected),
		CompositeScore:     compositeScore,
		Status:             status.ForScore(compositeScore, opts.Threshold),
		Threshold:          opts.Threshold,
		Metrics:            values,
		Alignment:          alignment,
		Report:             report,
		ExpectedCount:      len(expected),
		ActualCount:        len(actual),
		CreationTimestamp:  epochtime.Now(),
	}, nil
}

func validateInput(expected, actual []*callset.Call) error {
	if err := callset.ValidateCalls(expected); err != nil {
		return &InputError{Err: fmt.Errorf("expected calls: %w", err)}
	}
	if err := callset.ValidateCalls(actual); err != nil {
		return &InputError{Err: fmt.Errorf("actual calls: %w", err)}
	}
	return nil
}

func validateOptions(opts *Options) error {
	if len(opts.Weights) > 0 {
		if err := opts.Weights.ValidateWith(registeredNames(opts.Registry)...); err != nil {
			return &ConfigurationError{Err: err}
		}
	}
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return &ConfigurationError{
			Err: fmt.Errorf("threshold %v out of range [0, 1]", opts.Threshold),
		}
	}
	if opts.TrajectoryBlend < 0 || opts.TrajectoryBlend > 1 {
		return &ConfigurationError{
			Err: fmt.Errorf("trajectory blend %v out of range [0, 1]", opts.TrajectoryBlend),
		}
	}
	for tool, schema := range opts.Schemas {
		for arg, rule := range schema {
			if rule == nil {
				continue
			}
			if err := rule.Check(); err != nil {
				return &ConfigurationError{
					Err: fmt.Errorf("schema for %s.%s: %w", tool, arg, err),
				}
			}
		}
	}
	return nil
}

// buildArgDiffTasks collects one comparison task per name-equal aligned
// pair. Schemas attached to the expected call win over configured ones.
func buildArgDiffTasks(expected, actual []*callset.Call, alignment *align.Alignment, opts *Options) []*argDiffTask {
	var tasks []*argDiffTask
	for i, op := range alignment.Ops {
		if op.Kind != align.OpMatch {
			continue
		}
		expectedCall := expected[op.ExpectedIndex]
		diffOpts := []argdiff.Option{}
		if len(opts.SetKeys) > 0 {
			diffOpts = append(diffOpts, argdiff.WithSetKeys(opts.SetKeys...))
		}
		schema := expectedCall.Schema
		if schema == nil {
			schema = opts.Schemas[expectedCall.Tool]
		}
		if schema != nil {
			diffOpts = append(diffOpts, argdiff.WithSchema(schema))
		}
		tasks = append(tasks, &argDiffTask{
			opIndex:  i,
			expected: expectedCall.Args,
			actual:   actual[op.ActualIndex].Args,
			opt:      diffOpts,
		})
	}
	return tasks
}

// scoreSemantic asks the pluggable judge to rate each name-mismatched pair.
// A failing or panicking scorer never fails the evaluation: the metric comes
// back flagged unavailable together with a scorer issue for the report.
func scoreSemantic(ctx context.Context, scorer semantic.Scorer, in *metric.Input) (*metric.Value, *explain.Issue) {
	var pairs []align.Op
	for _, op := range in.Alignment.Ops {
		if op.Kind == align.OpSubstitute {
			pairs = append(pairs, op)
		}
	}
	if len(pairs) == 0 {
		return &metric.Value{
			Name:    metric.SemanticCorrectness,
			Score:   1.0,
			Details: map[string]any{"scored_pairs": 0},
		}, nil
	}
	var sum float64
	for _, op := range pairs {
		expectedCall := in.Expected[op.ExpectedIndex]
		actualCall := in.Actual[op.ActualIndex]
		score, err := safeScoreEquivalence(ctx, scorer, expectedCall, actualCall)
		if err != nil {
			log.Warnf("semantic scorer failed for %s vs %s: %v",
				expectedCall.Tool, actualCall.Tool, err)
			return &metric.Value{
					Name:        metric.SemanticCorrectness,
					Unavailable: true,
					Details:     map[string]any{"error": err.Error()},
				}, &explain.Issue{
					Category:     explain.CategoryScorerUnavailable,
					Position:     op.ExpectedIndex,
					ExpectedTool: expectedCall.Tool,
					ActualTool:   actualCall.Tool,
					Message:      fmt.Sprintf("semantic scorer unavailable: %v", err),
				}
		}
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		sum += score
	}
	return &metric.Value{
		Name:    metric.SemanticCorrectness,
		Score:   sum / float64(len(pairs)),
		Details: map[string]any{"scored_pairs": len(pairs)},
	}, nil
}

func safeScoreEquivalence(ctx context.Context, scorer semantic.Scorer, expected, actual *callset.Call) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("semantic scorer panic: %v", r)
		}
	}()
	return scorer.ScoreEquivalence(ctx, expected, actual)
}

// runEvaluators computes every registered custom metric over the shared
// input. A failing or panicking evaluator degrades to an unavailable metric
// instead of failing the evaluation, like the semantic scorer does.
func runEvaluators(ctx context.Context, reg metric.Registry, in *metric.Input) []*metric.Value {
	var values []*metric.Value
	for _, name := range reg.List() {
		e, err := reg.Get(name)
		if err != nil {
			continue
		}
		value, err := safeEvaluate(ctx, e, in)
		if err == nil && value == nil {
			err = errors.New("evaluator returned no value")
		}
		if err != nil {
			log.Warnf("evaluator %s failed: %v", name, err)
			values = append(values, &metric.Value{
				Name:        name,
				Unavailable: true,
				Details:     map[string]any{"error": err.Error()},
			})
			continue
		}
		if value.Name == "" {
			value.Name = name
		}
		if value.Score < 0 {
			value.Score = 0
		}
		if value.Score > 1 {
			value.Score = 1
		}
		values = append(values, value)
	}
	return values
}

func safeEvaluate(ctx context.Context, e metric.Evaluator, in *metric.Input) (value *metric.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluator panic: %v", r)
		}
	}()
	return e.Evaluate(ctx, in)
}

func registeredNames(reg metric.Registry) []string {
	if reg == nil {
		return nil
	}
	return reg.List()
}
