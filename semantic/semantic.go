//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package semantic defines the injected equivalence scorer capability.
// The engine never knows about any concrete provider; callers inject an
// implementation (an LLM judge, an embedding comparison, a lookup table) and
// the engine degrades gracefully when it fails.
package semantic

import (
	"context"

	"trpc.group/trpc-go/toolscore-go/callset"
)

// Scorer judges whether two tool calls are semantically equivalent even when
// their names or arguments differ syntactically.
type Scorer interface {
	// ScoreEquivalence returns an equivalence score in [0, 1] for the pair.
	// Implementations may block; the engine invokes it with the evaluation
	// context and treats any error as a recoverable degradation.
	ScoreEquivalence(ctx context.Context, expected, actual *callset.Call) (float64, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, expected, actual *callset.Call) (float64, error)

// ScoreEquivalence implements Scorer.
func (f ScorerFunc) ScoreEquivalence(ctx context.Context, expected, actual *callset.Call) (float64, error) {
	return f(ctx, expected, actual)
}
