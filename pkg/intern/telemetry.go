// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

package intern

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is the telemetry-facing view of a pool, satisfied by every
// Pool and by StringPool.
type StatsSource interface {
	Name() string
	Stats() Stats
}

// Collector exposes a pool's statistics as Prometheus metrics. It emits
// const metrics from a Stats snapshot at scrape time, so it can be
// registered with any registry without the pool keeping metric state.
type Collector struct {
	source    StatsSource
	entries   *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Prometheus collector for a pool. The pool's
// name becomes the constant "pool" label on every metric.
func NewCollector(source StatsSource) *Collector {
	labels := prometheus.Labels{"pool": source.Name()}
	return &Collector{
		source: source,
		entries: prometheus.NewDesc("intern_pool_entries",
			"Number of live canonical values in the pool.", nil, labels),
		hits: prometheus.NewDesc("intern_pool_hits_total",
			"Interns that found an existing canonical value.", nil, labels),
		misses: prometheus.NewDesc("intern_pool_misses_total",
			"Interns that stored a new canonical value.", nil, labels),
		evictions: prometheus.NewDesc("intern_pool_evictions_total",
			"Entries removed after their last reference was released.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(stats.Entries))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(stats.Evictions))
}
