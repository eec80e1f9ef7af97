//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package metric

// Metric name constants recognized across the module.
const (
	// SelectionAccuracy is the fraction of aligned positions with exactly matching tool names.
	SelectionAccuracy = "selection_accuracy"
	// ToolCorrectness is the fraction of distinct expected tools that appear anywhere in the actual trace.
	ToolCorrectness = "tool_correctness"
	// ArgumentF1 is the aggregate argument F1 over aligned name-equal pairs.
	ArgumentF1 = "argument_f1"
	// SequenceAccuracy is 1 minus the normalized edit distance between the name sequences.
	SequenceAccuracy = "sequence_accuracy"
	// RedundantRate is the fraction of actual calls that exactly duplicate an earlier actual call.
	RedundantRate = "redundant_rate"
	// TrajectoryAccuracy blends selection accuracy with tool coverage for partial order credit.
	TrajectoryAccuracy = "trajectory_accuracy"
	// SemanticCorrectness is the average injected-scorer equivalence over substituted pairs.
	SemanticCorrectness = "semantic_correctness"
)
