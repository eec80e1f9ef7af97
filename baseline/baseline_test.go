//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package baseline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/toolscore-go/evalresult"
	"trpc.group/trpc-go/toolscore-go/metric"
)

func newResult(selection, redundant float64) *evalresult.EvaluationResult {
	return &evalresult.EvaluationResult{
		ResultID:           "r-1",
		CallSetFingerprint: "fp-1",
		CompositeScore:     0.85,
		Metrics: []*metric.Value{
			{Name: metric.SelectionAccuracy, Score: selection},
			{Name: metric.RedundantRate, Score: redundant},
			{Name: metric.SemanticCorrectness, Unavailable: true},
		},
		ExpectedCount: 2,
		ActualCount:   2,
	}
}

func TestFromResult(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	assert.Equal(t, "fp-1", b.CallSetFingerprint)
	assert.Equal(t, 0.85, b.CompositeScore)
	assert.Equal(t, 0.9, b.Metrics[metric.SelectionAccuracy])
	assert.NotNil(t, b.CreationTimestamp)
	// Unavailable metrics never enter the snapshot.
	_, ok := b.Metrics[metric.SemanticCorrectness]
	assert.False(t, ok)

	_, err = FromResult(nil)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "baseline.json")
	require.NoError(t, Save(b, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, b.CallSetFingerprint, loaded.CallSetFingerprint)
	assert.Equal(t, b.Metrics, loaded.Metrics)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCompareStable(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	result, err := Compare(newResult(0.91, 0.1), b)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Regressions())
	assert.Contains(t, result.Summary, "PASS")
}

func TestCompareRegression(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	result, err := Compare(newResult(0.7, 0.1), b)
	require.NoError(t, err)
	assert.False(t, result.Passed)

	regressions := result.Regressions()
	require.Len(t, regressions, 1)
	assert.Equal(t, metric.SelectionAccuracy, regressions[0].MetricName)
	assert.InDelta(t, -0.2, regressions[0].Delta, 1e-9)
	assert.Contains(t, result.Summary, "FAIL")
}

func TestCompareImprovement(t *testing.T) {
	b, err := FromResult(newResult(0.7, 0.1))
	require.NoError(t, err)

	result, err := Compare(newResult(0.9, 0.1), b)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	require.Len(t, result.Improvements(), 1)
	assert.Contains(t, result.Summary, "improvement")
}

func TestCompareRedundantRateLowerIsBetter(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	// Redundant rate going up is a regression.
	worse, err := Compare(newResult(0.9, 0.5), b)
	require.NoError(t, err)
	assert.False(t, worse.Passed)

	// Redundant rate going down is an improvement.
	better, err := Compare(newResult(0.9, 0.0), b)
	require.NoError(t, err)
	assert.True(t, better.Passed)
	assert.Len(t, better.Improvements(), 1)
}

func TestCompareThresholdOption(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	strict, err := Compare(newResult(0.85, 0.1), b, WithThreshold(0.01))
	require.NoError(t, err)
	assert.False(t, strict.Passed)

	lenient, err := Compare(newResult(0.85, 0.1), b, WithThreshold(0.1))
	require.NoError(t, err)
	assert.True(t, lenient.Passed)
}

func TestCompareFingerprintMismatchSurfaced(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	current := newResult(0.9, 0.1)
	current.CallSetFingerprint = "fp-other"

	result, err := Compare(current, b)
	require.NoError(t, err)
	assert.False(t, result.FingerprintMatched)
	// A changed gold set warns but never fails the comparison by itself.
	assert.True(t, result.Passed)
}

func TestCompareRegressionsSortFirst(t *testing.T) {
	b, err := FromResult(newResult(0.9, 0.1))
	require.NoError(t, err)

	result, err := Compare(newResult(0.5, 0.1), b)
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, StatusRegression, result.Items[0].Status)
}
