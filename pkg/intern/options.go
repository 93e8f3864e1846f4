// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

package intern

import (
	"time"

	"github.com/benbjohnson/clock"
)

type config struct {
	name           string
	clock          clock.Clock
	reportInterval time.Duration
}

func makeConfig(options ...Option) config {
	cfg := config{
		clock: clock.New(),
	}
	for _, opt := range options {
		opt.apply(&cfg)
	}
	return cfg
}

// Option configures a Pool.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) {
	f(c)
}

// WithName labels the pool in logs and telemetry. The default label is
// the value type's name.
func WithName(name string) Option {
	return optionFunc(func(c *config) {
		c.name = name
	})
}

// WithClock sets the clock used for report pacing. Tests inject a mock
// clock here.
func WithClock(clk clock.Clock) Option {
	return optionFunc(func(c *config) {
		c.clock = clk
	})
}

// WithReportInterval makes the pool log its statistics at most once per
// interval, piggybacked on intern calls. Zero (the default) disables
// reporting.
func WithReportInterval(interval time.Duration) Option {
	return optionFunc(func(c *config) {
		c.reportInterval = interval
	})
}
