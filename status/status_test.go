//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalStatusString(t *testing.T) {
	tests := map[EvalStatus]string{
		EvalStatusUnknown:      "unknown",
		EvalStatusPassed:       "passed",
		EvalStatusFailed:       "failed",
		EvalStatusNotEvaluated: "not_evaluated",
		EvalStatus(99):         "unknown",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, input.String())
	}
}

func TestForScore(t *testing.T) {
	assert.Equal(t, EvalStatusPassed, ForScore(0.9, 0.8))
	assert.Equal(t, EvalStatusPassed, ForScore(0.8, 0.8))
	assert.Equal(t, EvalStatusFailed, ForScore(0.79, 0.8))
	assert.Equal(t, EvalStatusPassed, ForScore(0.0, 0.0))
}
