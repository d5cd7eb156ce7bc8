package verify

import (
	"fmt"
	"runtime"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/internal/options"
)

const (
	// DefaultSampleCount is the number of samples drawn in sampled mode.
	DefaultSampleCount = 1_000_000
	// DefaultBatchSize is the number of samples checked per batch.
	DefaultBatchSize = 4096
	// DefaultMaxFailures caps the failure records kept in a Run.
	DefaultMaxFailures = 16
	// DefaultMaxExhaustiveBits bounds exhaustive runs to 2^24 samples (depth 12).
	DefaultMaxExhaustiveBits = 24
	// MaxExhaustiveBitsLimit is the largest accepted WithMaxExhaustiveBits value.
	MaxExhaustiveBitsLimit = 62
	// MaxBatches bounds the number of batches in one run. Larger runs need a
	// larger batch size or fewer samples.
	MaxBatches = 1 << 20
	// MaxRetainedSamples bounds runs that keep every sample in memory, that is
	// runs with WithRecords or WithCollisionCheck.
	MaxRetainedSamples = 1 << 32
)

// Config holds the settings of a Verifier.
type Config struct {
	mode              Mode
	sampleCount       uint64
	seed              uint64
	workers           int
	batchSize         int
	maxFailures       int
	keepRecords       bool
	collisionCheck    bool
	maxExhaustiveBits int
	logger            Logger
	metrics           MetricsCollector
}

func defaultConfig() *Config {
	return &Config{
		mode:              ModeSampled,
		sampleCount:       DefaultSampleCount,
		workers:           runtime.GOMAXPROCS(0),
		batchSize:         DefaultBatchSize,
		maxFailures:       DefaultMaxFailures,
		maxExhaustiveBits: DefaultMaxExhaustiveBits,
		logger:            NopLogger{},
		metrics:           NoopMetricsCollector{},
	}
}

// Option configures a Verifier.
type Option = options.Option[*Config]

// WithMode selects sampled or exhaustive verification.
func WithMode(mode Mode) Option {
	return options.New(func(c *Config) error {
		if mode != ModeSampled && mode != ModeExhaustive {
			return fmt.Errorf("%w: %d", errs.ErrInvalidMode, uint8(mode))
		}
		c.mode = mode

		return nil
	})
}

// WithSampleCount sets the number of samples drawn in sampled mode.
// Zero is allowed and yields an empty, passing run.
func WithSampleCount(n uint64) Option {
	return options.NoError(func(c *Config) {
		c.sampleCount = n
	})
}

// WithSeed sets the seed of the sample stream. Runs with equal seeds and
// sample counts check the same coordinates in the same order.
func WithSeed(seed uint64) Option {
	return options.NoError(func(c *Config) {
		c.seed = seed
	})
}

// WithWorkers sets how many batches are checked concurrently. The result does
// not depend on it.
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.workers = n

		return nil
	})
}

// WithBatchSize sets the number of samples per batch.
func WithBatchSize(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: batch size must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.batchSize = n

		return nil
	})
}

// WithMaxFailures caps the failure records kept in Run.FailureRecords.
// Failures are still counted past the cap, and the first one is always kept.
func WithMaxFailures(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: max failures must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.maxFailures = n

		return nil
	})
}

// WithRecords keeps every record in Run.Records. Memory grows with the sample count.
func WithRecords(keep bool) Option {
	return options.NoError(func(c *Config) {
		c.keepRecords = keep
	})
}

// WithCollisionCheck also checks that no two distinct coordinates share a key.
func WithCollisionCheck(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.collisionCheck = enabled
	})
}

// WithMaxExhaustiveBits sets the largest 2*depth accepted by exhaustive mode.
func WithMaxExhaustiveBits(bits int) Option {
	return options.New(func(c *Config) error {
		if bits < 2 || bits > MaxExhaustiveBitsLimit {
			return fmt.Errorf("%w: max exhaustive bits %d not in [2, %d]",
				errs.ErrInvalidOption, bits, MaxExhaustiveBitsLimit)
		}
		c.maxExhaustiveBits = bits

		return nil
	})
}

// WithLogger sets the logger. Nil restores the no-op logger.
func WithLogger(l Logger) Option {
	return options.NoError(func(c *Config) {
		if l == nil {
			l = NopLogger{}
		}
		c.logger = l
	})
}

// WithMetrics sets the metrics collector. Nil restores the no-op collector.
func WithMetrics(m MetricsCollector) Option {
	return options.NoError(func(c *Config) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		c.metrics = m
	})
}
