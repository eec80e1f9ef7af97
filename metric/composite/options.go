//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package composite

type options struct {
	extraMetrics []string
}

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is the functional option for Score.
type Option func(*options)

// WithExtraMetrics declares custom metric names a weight key may reference,
// on top of the built-in ones.
func WithExtraMetrics(names ...string) Option {
	return func(o *options) {
		o.extraMetrics = append(o.extraMetrics, names...)
	}
}
