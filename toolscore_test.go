//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package toolscore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/toolscore-go/callset"
	"trpc.group/trpc-go/toolscore-go/config"
	"trpc.group/trpc-go/toolscore-go/explain"
	"trpc.group/trpc-go/toolscore-go/metric"
	"trpc.group/trpc-go/toolscore-go/metric/composite"
	"trpc.group/trpc-go/toolscore-go/semantic"
	"trpc.group/trpc-go/toolscore-go/status"
)

func call(tool string, args callset.ArgMap) *callset.Call {
	return &callset.Call{Tool: tool, Args: args}
}

func goldCalls() []*callset.Call {
	return []*callset.Call{
		call("get_weather", callset.ArgMap{"city": callset.String("NYC")}),
		call("send_email", callset.ArgMap{"to": callset.String("a@b.com")}),
	}
}

func TestEvaluatePerfectRun(t *testing.T) {
	result, err := Evaluate(context.Background(), goldCalls(), goldCalls())
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.CompositeScore)
	assert.Equal(t, status.EvalStatusPassed, result.Status)
	assert.NotEmpty(t, result.ResultID)
	assert.NotEmpty(t, result.CallSetFingerprint)
	assert.Equal(t, 2, result.ExpectedCount)
	assert.Equal(t, 2, result.ActualCount)
	assert.Empty(t, result.Report.Issues)
	assert.Empty(t, result.Report.Tips)
	assert.NotNil(t, result.CreationTimestamp)
}

func TestEvaluateBothEmpty(t *testing.T) {
	result, err := Evaluate(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.CompositeScore)
	assert.Equal(t, status.EvalStatusPassed, result.Status)
	assert.Empty(t, result.Report.Issues)
}

func TestEvaluateValueMismatchComposite(t *testing.T) {
	actual := []*callset.Call{
		call("get_weather", callset.ArgMap{"city": callset.String("New York")}),
		call("send_email", callset.ArgMap{"to": callset.String("a@b.com")}),
	}

	result, err := Evaluate(context.Background(), goldCalls(), actual)
	require.NoError(t, err)

	// 0.4*1 + 0.3*0.5 + 0.2*1 + 0.1*1 = 0.85
	assert.InDelta(t, 0.85, result.CompositeScore, 1e-9)
	assert.Equal(t, status.EvalStatusPassed, result.Status)

	argF1 := result.Metric(metric.ArgumentF1)
	require.NotNil(t, argF1)
	assert.InDelta(t, 0.5, argF1.Score, 1e-9)

	require.Len(t, result.Report.Issues, 1)
	assert.Equal(t, explain.MismatchArgs, result.Report.Issues[0].Kind)
}

func TestEvaluateSimilarNameSubstitution(t *testing.T) {
	expected := []*callset.Call{call("search_web", callset.ArgMap{"q": callset.String("go")})}
	actual := []*callset.Call{call("web_search", callset.ArgMap{"q": callset.String("go")})}

	result, err := Evaluate(context.Background(), expected, actual)
	require.NoError(t, err)

	require.Len(t, result.Report.Issues, 1)
	assert.Equal(t, explain.MismatchName, result.Report.Issues[0].Kind)
	require.Len(t, result.Report.Tips, 1)
	assert.Contains(t, result.Report.Tips[0].Message, "semantic equivalence")
}

func TestEvaluateEmptyActual(t *testing.T) {
	result, err := Evaluate(context.Background(), goldCalls(), nil)
	require.NoError(t, err)

	assert.Equal(t, status.EvalStatusFailed, result.Status)
	assert.Equal(t, 0.0, result.Metric(metric.SelectionAccuracy).Score)
	assert.Equal(t, 0.0, result.Metric(metric.SequenceAccuracy).Score)
	assert.Len(t, result.Report.Issues, 2)
}

func TestEvaluateInputErrors(t *testing.T) {
	var inputErr *InputError

	_, err := Evaluate(context.Background(), []*callset.Call{{Tool: ""}}, nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &inputErr)

	_, err = Evaluate(context.Background(), nil, []*callset.Call{nil})
	require.Error(t, err)
	assert.ErrorAs(t, err, &inputErr)
}

func TestEvaluateConfigurationErrors(t *testing.T) {
	var configErr *ConfigurationError

	_, err := Evaluate(context.Background(), goldCalls(), goldCalls(),
		WithWeights(composite.Weights{"bogus": 1}))
	require.Error(t, err)
	assert.ErrorAs(t, err, &configErr)

	_, err = Evaluate(context.Background(), goldCalls(), goldCalls(),
		WithThreshold(1.5))
	require.Error(t, err)
	assert.ErrorAs(t, err, &configErr)

	_, err = Evaluate(context.Background(), goldCalls(), goldCalls(),
		WithSchemas(map[string]map[string]*callset.ArgSchema{
			"send_email": {"to": {Type: "float"}},
		}))
	require.Error(t, err)
	assert.ErrorAs(t, err, &configErr)
}

func TestEvaluateCustomWeightsAndThreshold(t *testing.T) {
	actual := []*callset.Call{
		call("get_weather", callset.ArgMap{"city": callset.String("New York")}),
		call("send_email", callset.ArgMap{"to": callset.String("a@b.com")}),
	}

	result, err := Evaluate(context.Background(), goldCalls(), actual,
		WithWeights(composite.Weights{metric.ArgumentF1: 1}),
		WithThreshold(0.6))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.CompositeScore, 1e-9)
	assert.Equal(t, status.EvalStatusFailed, result.Status)
	assert.Equal(t, 0.6, result.Threshold)
}

func TestEvaluateSetKeys(t *testing.T) {
	expected := []*callset.Call{call("search", callset.ArgMap{
		"tags": callset.Array(callset.String("a"), callset.String("b")),
	})}
	actual := []*callset.Call{call("search", callset.ArgMap{
		"tags": callset.Array(callset.String("b"), callset.String("a")),
	})}

	strict, err := Evaluate(context.Background(), expected, actual)
	require.NoError(t, err)
	assert.Equal(t, 0.0, strict.Metric(metric.ArgumentF1).Score)

	relaxed, err := Evaluate(context.Background(), expected, actual, WithSetKeys("tags"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, relaxed.Metric(metric.ArgumentF1).Score)
}

func TestEvaluateSchemaViolationsReported(t *testing.T) {
	expected := []*callset.Call{call("send_email", callset.ArgMap{
		"to": callset.String("a@b.com"),
	})}
	actual := []*callset.Call{call("send_email", callset.ArgMap{
		"to": callset.String("not-an-email"),
	})}

	result, err := Evaluate(context.Background(), expected, actual,
		WithSchemas(map[string]map[string]*callset.ArgSchema{
			"send_email": {"to": {Type: "string", Pattern: `^[^@]+@[^@]+$`}},
		}))
	require.NoError(t, err)

	require.Len(t, result.Report.Issues, 1)
	issue := result.Report.Issues[0]
	assert.Equal(t, explain.MismatchArgs, issue.Kind)
}

func TestEvaluateParallelismMatchesSequential(t *testing.T) {
	expected := make([]*callset.Call, 0, 8)
	actual := make([]*callset.Call, 0, 8)
	for _, city := range []string{"NYC", "LA", "SF", "SEA", "BOS", "DEN", "ATL", "DC"} {
		expected = append(expected, call("get_weather", callset.ArgMap{"city": callset.String(city)}))
		actual = append(actual, call("get_weather", callset.ArgMap{"city": callset.String(city)}))
	}
	actual[3] = call("get_weather", callset.ArgMap{"city": callset.String("PDX")})

	sequential, err := Evaluate(context.Background(), expected, actual)
	require.NoError(t, err)
	parallel, err := Evaluate(context.Background(), expected, actual, WithParallelism(4))
	require.NoError(t, err)

	assert.Equal(t, sequential.CompositeScore, parallel.CompositeScore)
	for _, v := range sequential.Metrics {
		assert.Equal(t, v.Score, parallel.Metric(v.Name).Score, v.Name)
	}
}

func TestEvaluateSemanticScorer(t *testing.T) {
	expected := []*callset.Call{call("search_web", nil)}
	actual := []*callset.Call{call("web_search", nil)}

	scorer := semantic.ScorerFunc(func(ctx context.Context, e, a *callset.Call) (float64, error) {
		return 0.9, nil
	})
	result, err := Evaluate(context.Background(), expected, actual,
		WithSemanticScorer(scorer))
	require.NoError(t, err)

	sem := result.Metric(metric.SemanticCorrectness)
	require.NotNil(t, sem)
	assert.False(t, sem.Unavailable)
	assert.InDelta(t, 0.9, sem.Score, 1e-9)
}

func TestEvaluateSemanticScorerFailureIsRecovered(t *testing.T) {
	expected := []*callset.Call{call("search_web", nil)}
	actual := []*callset.Call{call("web_search", nil)}

	scorer := semantic.ScorerFunc(func(ctx context.Context, e, a *callset.Call) (float64, error) {
		return 0, errors.New("judge offline")
	})
	result, err := Evaluate(context.Background(), expected, actual,
		WithSemanticScorer(scorer))
	require.NoError(t, err)

	sem := result.Metric(metric.SemanticCorrectness)
	require.NotNil(t, sem)
	assert.True(t, sem.Unavailable)

	found := false
	for _, issue := range result.Report.Issues {
		if issue.Category == explain.CategoryScorerUnavailable {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvaluateSemanticScorerPanicIsRecovered(t *testing.T) {
	expected := []*callset.Call{call("a", nil)}
	actual := []*callset.Call{call("b", nil)}

	scorer := semantic.ScorerFunc(func(ctx context.Context, e, a *callset.Call) (float64, error) {
		panic("boom")
	})
	result, err := Evaluate(context.Background(), expected, actual,
		WithSemanticScorer(scorer))
	require.NoError(t, err)
	assert.True(t, result.Metric(metric.SemanticCorrectness).Unavailable)
}

func TestEvaluateCustomEvaluatorRegistry(t *testing.T) {
	reg := metric.NewRegistry()
	require.NoError(t, reg.Register("", &fixedEvaluator{name: "tone_match", score: 0.5}))

	weights := composite.Weights{
		metric.SelectionAccuracy: 0.5,
		"tone_match":             0.5,
	}
	result, err := Evaluate(context.Background(), goldCalls(), goldCalls(),
		WithEvaluatorRegistry(reg), WithWeights(weights))
	require.NoError(t, err)

	value := result.Metric("tone_match")
	require.NotNil(t, value)
	assert.Equal(t, 0.5, value.Score)
	assert.InDelta(t, 0.75, result.CompositeScore, 1e-9)
}

func TestEvaluateCustomEvaluatorFailureIsRecovered(t *testing.T) {
	reg := metric.NewRegistry()
	require.NoError(t, reg.Register("flaky", &fixedEvaluator{
		name: "flaky", err: errors.New("judge offline"),
	}))

	result, err := Evaluate(context.Background(), goldCalls(), goldCalls(),
		WithEvaluatorRegistry(reg))
	require.NoError(t, err)

	value := result.Metric("flaky")
	require.NotNil(t, value)
	assert.True(t, value.Unavailable)
	// The unavailable custom metric carries no default weight, so the
	// composite is untouched.
	assert.Equal(t, 1.0, result.CompositeScore)
}

func TestEvaluateWithConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("threshold: 0.95\ntrajectory_blend: 1.0\n"))
	require.NoError(t, err)

	actual := []*callset.Call{
		call("get_weather", callset.ArgMap{"city": callset.String("New York")}),
		call("send_email", callset.ArgMap{"to": callset.String("a@b.com")}),
	}
	result, err := Evaluate(context.Background(), goldCalls(), actual, WithConfig(cfg))
	require.NoError(t, err)

	assert.Equal(t, 0.95, result.Threshold)
	assert.Equal(t, status.EvalStatusFailed, result.Status)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	actual := []*callset.Call{
		call("get_weather", callset.ArgMap{"city": callset.String("New York")}),
		call("send_email", callset.ArgMap{"to": callset.String("a@b.com")}),
	}

	first, err := Evaluate(context.Background(), goldCalls(), actual)
	require.NoError(t, err)
	second, err := Evaluate(context.Background(), goldCalls(), actual)
	require.NoError(t, err)

	assert.Equal(t, first.CompositeScore, second.CompositeScore)
	assert.Equal(t, first.CallSetFingerprint, second.CallSetFingerprint)
	assert.NotEqual(t, first.ResultID, second.ResultID)
}

// fixedEvaluator returns a fixed score or error for registry tests.
type fixedEvaluator struct {
	name  string
	score float64
	err   error
}

func (e *fixedEvaluator) Name() string        { return e.name }
func (e *fixedEvaluator) Description() string { return "fixed score evaluator" }

func (e *fixedEvaluator) Evaluate(context.Context, *metric.Input) (*metric.Value, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &metric.Value{Name: e.name, Score: e.score}, nil
}
