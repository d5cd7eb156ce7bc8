package verify

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics of verification runs.
// Implementations must be safe for concurrent use; see metrics/prometheus.
type MetricsCollector interface {
	// RecordRun is called once per completed run.
	RecordRun(mode Mode, total, failures uint64, duration time.Duration)

	// RecordFailures is called once per failure kind seen in a run with the
	// number of samples of that kind.
	RecordFailures(kind FailureKind, count uint64)
}

// NoopMetricsCollector drops all metrics. It is the default.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(Mode, uint64, uint64, time.Duration) {}
func (NoopMetricsCollector) RecordFailures(FailureKind, uint64)            {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	Runs           atomic.Int64
	Samples        atomic.Uint64
	Failures       atomic.Uint64
	TotalNanos     atomic.Int64
	Mismatches     atomic.Uint64
	Collisions     atomic.Uint64
	EncodeErrors   atomic.Uint64
	DecodeErrors   atomic.Uint64
	ExhaustiveRuns atomic.Int64
}

var _ MetricsCollector = (*BasicMetricsCollector)(nil)

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(mode Mode, total, failures uint64, duration time.Duration) {
	b.Runs.Add(1)
	b.Samples.Add(total)
	b.Failures.Add(failures)
	b.TotalNanos.Add(duration.Nanoseconds())
	if mode == ModeExhaustive {
		b.ExhaustiveRuns.Add(1)
	}
}

// RecordFailures implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFailures(kind FailureKind, count uint64) {
	switch kind {
	case FailureMismatch:
		b.Mismatches.Add(count)
	case FailureCollision:
		b.Collisions.Add(count)
	case FailureEncodeError:
		b.EncodeErrors.Add(count)
	case FailureDecodeError:
		b.DecodeErrors.Add(count)
	case FailureNone:
	}
}

// GetStats returns a snapshot of the counters.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	runs := b.Runs.Load()
	var avg int64
	if runs > 0 {
		avg = b.TotalNanos.Load() / runs
	}

	return BasicMetricsStats{
		Runs:           runs,
		ExhaustiveRuns: b.ExhaustiveRuns.Load(),
		Samples:        b.Samples.Load(),
		Failures:       b.Failures.Load(),
		RunAvgNanos:    avg,
		Mismatches:     b.Mismatches.Load(),
		Collisions:     b.Collisions.Load(),
		EncodeErrors:   b.EncodeErrors.Load(),
		DecodeErrors:   b.DecodeErrors.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	Runs           int64
	ExhaustiveRuns int64
	Samples        uint64
	Failures       uint64
	RunAvgNanos    int64
	Mismatches     uint64
	Collisions     uint64
	EncodeErrors   uint64
	DecodeErrors   uint64
}
