//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads evaluation settings from YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"trpc.group/trpc-go/toolscore-go/callset"
	"trpc.group/trpc-go/toolscore-go/metric/composite"
)

// Config holds evaluation settings that are usually checked into a repo
// next to the gold call sets.
type Config struct {
	// Weights overrides the composite score weights. Empty means defaults.
	Weights composite.Weights `yaml:"weights,omitempty"`
	// Threshold is the composite score at or above which a run passes.
	Threshold *float64 `yaml:"threshold,omitempty"`
	// TrajectoryBlend balances step matching against path efficiency in
	// the trajectory accuracy metric.
	TrajectoryBlend *float64 `yaml:"trajectory_blend,omitempty"`
	// SetKeys lists dotted argument paths whose arrays compare as
	// multisets instead of ordered lists.
	SetKeys []string `yaml:"set_keys,omitempty"`
	// Schemas maps tool names to per-argument validation rules.
	Schemas map[string]map[string]*callset.ArgSchema `yaml:"schemas,omitempty"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks weights, thresholds and schema rules for well-formedness.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if len(c.Weights) > 0 {
		if err := c.Weights.Validate(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if c.Threshold != nil && (*c.Threshold < 0 || *c.Threshold > 1) {
		errs = multierror.Append(errs,
			fmt.Errorf("threshold %v out of range [0, 1]", *c.Threshold))
	}
	if c.TrajectoryBlend != nil && (*c.TrajectoryBlend < 0 || *c.TrajectoryBlend > 1) {
		errs = multierror.Append(errs,
			fmt.Errorf("trajectory_blend %v out of range [0, 1]", *c.TrajectoryBlend))
	}
	for tool, schema := range c.Schemas {
		for arg, rule := range schema {
			if rule == nil {
				continue
			}
			if err := rule.Check(); err != nil {
				errs = multierror.Append(errs,
					fmt.Errorf("schema for %s.%s: %w", tool, arg, err))
			}
		}
	}
	return errs.ErrorOrNil()
}

// Schema returns the argument schema for a tool, or nil when none is set.
func (c *Config) Schema(tool string) map[string]*callset.ArgSchema {
	if c == nil {
		return nil
	}
	return c.Schemas[tool]
}
