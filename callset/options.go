//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package callset

// defaultBaseDir is the default base directory for call set files.
const defaultBaseDir = "callsets"

// DefaultCallSetExtension is the default extension for call set files.
const DefaultCallSetExtension = ".callset.json"

// Options configure call set managers.
type Options struct {
	// BaseDir is the base directory for call set files.
	BaseDir string
}

// NewOptions constructs Options with the default values.
func NewOptions(opt ...Option) *Options {
	options := &Options{
		BaseDir: defaultBaseDir,
	}
	for _, o := range opt {
		o(options)
	}
	return options
}

// Option configures Options.
type Option func(*Options)

// WithBaseDir sets the root directory for storing call set JSON files.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}
