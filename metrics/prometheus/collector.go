// Package prometheus exports verification metrics through client_golang.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/zcurve/verify"
)

// Collector implements verify.MetricsCollector.
type Collector struct {
	runs     *prometheus.CounterVec
	samples  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ verify.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zcurve_verification_runs_total",
			Help: "Completed verification runs",
		}, []string{"mode", "status"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zcurve_verification_samples_total",
			Help: "Coordinates round-tripped by verification runs",
		}, []string{"mode"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zcurve_verification_failures_total",
			Help: "Failing samples by failure kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zcurve_verification_duration_seconds",
			Help:    "Wall time of verification runs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"mode"}),
	}

	for _, m := range []prometheus.Collector{c.runs, c.samples, c.failures, c.duration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RecordRun implements verify.MetricsCollector.
func (c *Collector) RecordRun(mode verify.Mode, total, failures uint64, duration time.Duration) {
	status := "passed"
	if failures > 0 {
		status = "failed"
	}
	c.runs.WithLabelValues(mode.String(), status).Inc()
	c.samples.WithLabelValues(mode.String()).Add(float64(total))
	c.duration.WithLabelValues(mode.String()).Observe(duration.Seconds())
}

// RecordFailures implements verify.MetricsCollector.
func (c *Collector) RecordFailures(kind verify.FailureKind, count uint64) {
	c.failures.WithLabelValues(kind.String()).Add(float64(count))
}
