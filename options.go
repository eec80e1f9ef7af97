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
	"trpc.group/trpc-go/toolscore-go/callset"
	"trpc.group/trpc-go/toolscore-go/config"
	"trpc.group/trpc-go/toolscore-go/metric"
	"trpc.group/trpc-go/toolscore-go/metric/composite"
	"trpc.group/trpc-go/toolscore-go/semantic"
)

// DefaultThreshold is the composite score at or above which a run passes.
const DefaultThreshold = 0.8

// Options is the configuration for a single evaluation.
type Options struct {
	// Weights overrides the composite score weights. Nil means defaults.
	Weights composite.Weights
	// Threshold is the pass threshold applied to the composite score.
	Threshold float64
	// TrajectoryBlend balances step matching against path efficiency.
	TrajectoryBlend float64
	// SetKeys lists dotted argument paths compared as multisets.
	SetKeys []string
	// Schemas maps tool names to per-argument validation rules.
	Schemas map[string]map[string]*callset.ArgSchema
	// Scorer is an optional semantic equivalence judge for name mismatches.
	Scorer semantic.Scorer
	// Registry holds custom metric evaluators run alongside the built-in
	// metrics. Nil means no custom metrics.
	Registry metric.Registry
	// Parallelism is the worker count for per-pair argument comparison.
	// Values below two keep the comparison sequential.
	Parallelism int
}

// Option is the functional option for Evaluate.
type Option func(*Options)

// NewOptions creates evaluation options with defaults applied.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		Threshold:       DefaultThreshold,
		TrajectoryBlend: metric.DefaultTrajectoryBlend,
		Parallelism:     1,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithWeights overrides the composite score weights.
func WithWeights(weights composite.Weights) Option {
	return func(o *Options) {
		o.Weights = weights
	}
}

// WithThreshold sets the pass threshold for the composite score.
func WithThreshold(threshold float64) Option {
	return func(o *Options) {
		o.Threshold = threshold
	}
}

// WithTrajectoryBlend sets the trajectory accuracy blend factor.
func WithTrajectoryBlend(blend float64) Option {
	return func(o *Options) {
		o.TrajectoryBlend = blend
	}
}

// WithSetKeys marks dotted argument paths whose arrays compare as multisets.
func WithSetKeys(paths ...string) Option {
	return func(o *Options) {
		o.SetKeys = append(o.SetKeys, paths...)
	}
}

// WithSchemas sets per-tool argument validation rules.
func WithSchemas(schemas map[string]map[string]*callset.ArgSchema) Option {
	return func(o *Options) {
		o.Schemas = schemas
	}
}

// WithSemanticScorer plugs in an external equivalence judge. Scorer failures
// do not fail the evaluation; the semantic metric is marked unavailable.
func WithSemanticScorer(scorer semantic.Scorer) Option {
	return func(o *Options) {
		o.Scorer = scorer
	}
}

// WithEvaluatorRegistry plugs in a registry of custom metric evaluators.
// Registered metrics are appended to the built-in ones and their names may
// carry composite weights.
func WithEvaluatorRegistry(r metric.Registry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

// WithParallelism sets the worker count for per-pair argument comparison.
func WithParallelism(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Parallelism = n
		}
	}
}

// WithConfig applies settings loaded from a config file. Later options
// override the config values.
func WithConfig(cfg *config.Config) Option {
	return func(o *Options) {
		if cfg == nil {
			return
		}
		if len(cfg.Weights) > 0 {
			o.Weights = cfg.Weights
		}
		if cfg.Threshold != nil {
			o.Threshold = *cfg.Threshold
		}
		if cfg.TrajectoryBlend != nil {
			o.TrajectoryBlend = *cfg.TrajectoryBlend
		}
		if len(cfg.SetKeys) > 0 {
			o.SetKeys = append(o.SetKeys, cfg.SetKeys...)
		}
		if len(cfg.Schemas) > 0 {
			o.Schemas = cfg.Schemas
		}
	}
}
