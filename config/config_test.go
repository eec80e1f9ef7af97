//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/toolscore-go/callset"
	"trpc.group/trpc-go/toolscore-go/metric"
)

const sampleConfig = `
weights:
  selection_accuracy: 0.5
  argument_f1: 0.3
  sequence_accuracy: 0.1
  redundant_rate: 0.1
threshold: 0.75
trajectory_blend: 0.6
set_keys:
  - tags
  - filters.ids
schemas:
  send_email:
    to:
      type: string
      pattern: '^[^@]+@[^@]+$'
    subject:
      type: string
      required: false
      maxLength: 100
    priority:
      type: string
      enum: [low, normal, high]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Weights[metric.SelectionAccuracy])
	require.NotNil(t, cfg.Threshold)
	assert.Equal(t, 0.75, *cfg.Threshold)
	require.NotNil(t, cfg.TrajectoryBlend)
	assert.Equal(t, 0.6, *cfg.TrajectoryBlend)
	assert.Equal(t, []string{"tags", "filters.ids"}, cfg.SetKeys)

	schema := cfg.Schema("send_email")
	require.NotNil(t, schema)
	assert.Equal(t, "string", schema["to"].Type)
	assert.False(t, schema["subject"].IsRequired())
	assert.Nil(t, cfg.Schema("unknown_tool"))

	require.Len(t, schema["priority"].Enum, 3)
	assert.NoError(t, schema["priority"].Validate("priority", callset.String("low")))
	assert.Error(t, schema["priority"].Validate("priority", callset.String("urgent")))
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Weights)
	assert.Nil(t, cfg.Threshold)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("weights: ["))
	assert.Error(t, err)
}

func TestParseRejectsUnknownMetricWeight(t *testing.T) {
	_, err := Parse([]byte("weights:\n  bogus_metric: 0.5\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadThreshold(t *testing.T) {
	_, err := Parse([]byte("threshold: 1.5\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadTrajectoryBlend(t *testing.T) {
	_, err := Parse([]byte("trajectory_blend: -0.1\n"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedSchema(t *testing.T) {
	data := `
schemas:
  send_email:
    to:
      type: float
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send_email.to")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Weights[metric.ArgumentF1])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
