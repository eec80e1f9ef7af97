//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package baseline

// DefaultThreshold is the maximum allowed metric degradation before a
// comparison counts as a regression.
const DefaultThreshold = 0.05

type options struct {
	threshold float64
}

// Option configures a baseline comparison.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{
		threshold: DefaultThreshold,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithThreshold sets the regression threshold as an absolute score delta.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		if threshold >= 0 {
			o.threshold = threshold
		}
	}
}
