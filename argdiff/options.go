//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package argdiff

import "trpc.group/trpc-go/toolscore-go/callset"

// options holds the configuration for a comparison.
type options struct {
	setKeys map[string]bool
	schema  map[string]*callset.ArgSchema
}

func newOptions(opt ...Option) *options {
	opts := &options{setKeys: make(map[string]bool)}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures a comparison.
type Option func(*options)

// WithSetKeys marks the given dotted paths as set-valued: arrays at these
// paths compare as multisets instead of element by element in order.
func WithSetKeys(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			o.setKeys[p] = true
		}
	}
}

// WithSchema attaches per-argument validation rules, keyed by top-level
// argument name. Violations are appended to the diff without altering the
// match classification.
func WithSchema(schema map[string]*callset.ArgSchema) Option {
	return func(o *options) {
		o.schema = schema
	}
}
