// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mwmdiff/mwmdiff/internal/batch"
	"github.com/mwmdiff/mwmdiff/internal/differ"
	"github.com/mwmdiff/mwmdiff/internal/version"
)

const namespace = "mwmdiff"

// Recorder collects batch metrics in its own registry. It is not registered
// with the default registry; export goes through WriteTextfile.
type Recorder struct {
	registry *prometheus.Registry

	buildInfo    prometheus.Gauge
	pairs        *prometheus.CounterVec
	diffBytes    *prometheus.GaugeVec
	newBytes     *prometheus.GaugeVec
	duration     *prometheus.GaugeVec
	lastRun      *prometheus.GaugeVec
	lastRunState *prometheus.GaugeVec
}

// NewRecorder returns a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.pairs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pairs_total",
		Help:      "Diff pairs attempted, by region and outcome",
	}, []string{"region", "outcome"})

	r.diffBytes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "diff_bytes",
		Help:      "Total size of diffs computed by the last run",
	}, []string{"region"})

	r.newBytes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "new_bytes",
		Help:      "Total size of the new files behind the diffs computed by the last run",
	}, []string{"region"})

	r.duration = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "duration_seconds",
		Help:      "Wall time of the last run",
	}, []string{"region"})

	r.lastRun = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the end of the last run",
	}, []string{"region"})

	r.lastRunState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "aborted",
		Help:      "1 when the last run was aborted, 0 when it completed",
	}, []string{"region"})

	r.buildInfo = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "build_info",
		Help:        "Always 1, labeled with the mwmdiff version",
		ConstLabels: prometheus.Labels{"version": version.Version},
	})
	r.buildInfo.Set(1)

	r.registry.MustRegister(r.buildInfo, r.pairs, r.diffBytes, r.newBytes, r.duration, r.lastRun, r.lastRunState)

	return r
}

// Observe records s. A nil summary is ignored.
func (r *Recorder) Observe(s *batch.Summary) {
	if s == nil {
		return
	}

	// Zero-valued outcome series are still emitted.
	for _, o := range differ.Outcomes() {
		r.pairs.WithLabelValues(s.Region, o.String()).Add(float64(s.Count(o)))
	}

	d, n := s.Produced()
	r.diffBytes.WithLabelValues(s.Region).Set(float64(d))
	r.newBytes.WithLabelValues(s.Region).Set(float64(n))
	r.duration.WithLabelValues(s.Region).Set(s.Duration().Seconds())
	if !s.Finished.IsZero() {
		r.lastRun.WithLabelValues(s.Region).Set(float64(s.Finished.Unix()))
	}

	aborted := 0.0
	if s.State == batch.Aborted {
		aborted = 1
	}
	r.lastRunState.WithLabelValues(s.Region).Set(aborted)
}

// WriteTextfile writes the registry in the text exposition format to path,
// atomically, for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
