//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package metric

// DefaultTrajectoryBlend is the default weight of selection accuracy inside
// the trajectory blend; the remainder goes to tool coverage.
const DefaultTrajectoryBlend = 0.5

// engineOptions holds the configuration for the metric engine.
type engineOptions struct {
	trajectoryBlend float64
}

func newEngineOptions(opt ...EngineOption) *engineOptions {
	opts := &engineOptions{trajectoryBlend: DefaultTrajectoryBlend}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// EngineOption configures the metric engine.
type EngineOption func(*engineOptions)

// WithTrajectoryBlend sets the selection weight of the trajectory blend.
// Values outside [0, 1] are clamped.
func WithTrajectoryBlend(blend float64) EngineOption {
	return func(o *engineOptions) {
		if blend < 0 {
			blend = 0
		}
		if blend > 1 {
			blend = 1
		}
		o.trajectoryBlend = blend
	}
}
