//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package evalresult

import (
	"sort"

	"trpc.group/trpc-go/toolscore-go/status"
)

// Summary rolls a collection of evaluation results up for easier inspection.
type Summary struct {
	// NumResults is the number of results summarized.
	NumResults int `json:"numResults,omitempty"`
	// StatusCounts counts results per final status.
	StatusCounts *StatusCounts `json:"statusCounts,omitempty"`
	// MetricSummaries contains aggregated outcomes per metric.
	MetricSummaries []*MetricSummary `json:"metricSummaries,omitempty"`
}

// StatusCounts counts evaluation statuses.
type StatusCounts struct {
	// Passed is the number of passed evaluations.
	Passed int `json:"passed,omitempty"`
	// Failed is the number of failed evaluations.
	Failed int `json:"failed,omitempty"`
	// NotEvaluated is the number of evaluations without a final status.
	NotEvaluated int `json:"notEvaluated,omitempty"`
}

// MetricSummary aggregates one metric across results.
type MetricSummary struct {
	// MetricName identifies the metric.
	MetricName string `json:"metricName,omitempty"`
	// AverageScore is the mean score across results carrying the metric.
	AverageScore float64 `json:"averageScore,omitempty"`
	// MinScore is the lowest score observed.
	MinScore float64 `json:"minScore,omitempty"`
	// MaxScore is the highest score observed.
	MaxScore float64 `json:"maxScore,omitempty"`
	// NumSamples is the number of results carrying the metric.
	NumSamples int `json:"numSamples,omitempty"`
}

// Summarize aggregates results into a Summary. Unavailable metric values are
// skipped so a degraded scorer does not drag the aggregate down.
func Summarize(results []*EvaluationResult) *Summary {
	s := &Summary{
		NumResults:   len(results),
		StatusCounts: &StatusCounts{},
	}
	perMetric := make(map[string]*MetricSummary)
	for _, result := range results {
		if result == nil {
			continue
		}
		switch result.Status {
		case status.EvalStatusPassed:
			s.StatusCounts.Passed++
		case status.EvalStatusFailed:
			s.StatusCounts.Failed++
		default:
			s.StatusCounts.NotEvaluated++
		}
		for _, value := range result.Metrics {
			if value == nil || value.Unavailable {
				continue
			}
			ms, ok := perMetric[value.Name]
			if !ok {
				ms = &MetricSummary{
					MetricName: value.Name,
					MinScore:   value.Score,
					MaxScore:   value.Score,
				}
				perMetric[value.Name] = ms
			}
			ms.AverageScore += value.Score
			ms.NumSamples++
			if value.Score < ms.MinScore {
				ms.MinScore = value.Score
			}
			if value.Score > ms.MaxScore {
				ms.MaxScore = value.Score
			}
		}
	}
	names := make([]string, 0, len(perMetric))
	for name := range perMetric {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ms := perMetric[name]
		ms.AverageScore /= float64(ms.NumSamples)
		s.MetricSummaries = append(s.MetricSummaries, ms)
	}
	return s
}
