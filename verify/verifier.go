package verify

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/internal/options"
	"github.com/arloliu/zcurve/morton"
)

// Codec is the codec under verification. morton.Codec implements it.
type Codec interface {
	Depth() int
	Encode(x, y uint64) (morton.Key, error)
	Decode(z morton.Key) (x, y uint32, err error)
}

var _ Codec = morton.Codec{}

// Verifier checks that a codec round-trips coordinates and maps distinct
// coordinates to distinct keys.
//
// A Verifier holds only configuration. It is safe for concurrent use, and
// runs never influence each other.
type Verifier struct {
	cfg Config
}

// New creates a verifier. Invalid options return an error wrapping
// errs.ErrConfiguration.
func New(opts ...Option) (*Verifier, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Verifier{cfg: *cfg}, nil
}

// Verify creates a verifier from opts and runs it once against codec.
func Verify(codec Codec, opts ...Option) (*Run, error) {
	v, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return v.Run(codec)
}

// Run verifies codec. Round-trip failures are reported in the returned Run;
// the error is non-nil only for configuration problems.
func (v *Verifier) Run(codec Codec) (*Run, error) {
	return v.RunContext(context.Background(), codec)
}

// RunContext is Run with cancellation between batches.
func (v *Verifier) RunContext(ctx context.Context, codec Codec) (*Run, error) {
	plan, err := v.plan(codec)
	if err != nil {
		return nil, err
	}

	cfg := &v.cfg
	cfg.logger.Debug("verification started", Fields{
		"mode":            cfg.mode.String(),
		"depth":           plan.depth,
		"seed":            cfg.seed,
		"total":           plan.total,
		"workers":         cfg.workers,
		"batch_size":      cfg.batchSize,
		"collision_check": cfg.collisionCheck,
	})

	start := time.Now()
	results, err := v.runBatches(ctx, codec, plan)
	if err != nil {
		cfg.logger.Error("verification aborted", Fields{"error": err.Error()})
		return nil, err
	}

	run, kinds := v.merge(plan, results)
	elapsed := time.Since(start)

	cfg.metrics.RecordRun(cfg.mode, run.Total, run.Failures, elapsed)
	for kind, n := range kinds {
		if n > 0 {
			cfg.metrics.RecordFailures(FailureKind(kind), n) //nolint:gosec
		}
	}

	fields := Fields{
		"mode":        cfg.mode.String(),
		"depth":       run.Depth,
		"total":       run.Total,
		"failures":    run.Failures,
		"fingerprint": fmt.Sprintf("%016x", run.Fingerprint),
		"duration":    elapsed.String(),
	}
	if run.Passed() {
		cfg.logger.Info("verification passed", fields)
	} else {
		if run.FirstFailure != nil {
			fields["first_failure"] = run.FirstFailure.String()
		}
		cfg.logger.Warn("verification failed", fields)
	}

	return run, nil
}

// plan describes the sample sequence of one run.
type plan struct {
	depth      int
	mask       uint64
	total      uint64
	exhaustive bool
	seed       uint64
}

func (v *Verifier) plan(codec Codec) (plan, error) {
	if codec == nil {
		return plan{}, errs.ErrNilCodec
	}

	depth := codec.Depth()
	if err := morton.ValidateDepth(depth); err != nil {
		return plan{}, err
	}

	p := plan{
		depth: depth,
		mask:  uint64(1)<<depth - 1,
		seed:  v.cfg.seed,
	}

	switch v.cfg.mode {
	case ModeExhaustive:
		if 2*depth > v.cfg.maxExhaustiveBits {
			return plan{}, fmt.Errorf("%w: 2^%d coordinates at depth %d, limit 2^%d",
				errs.ErrExhaustiveTooLarge, 2*depth, depth, v.cfg.maxExhaustiveBits)
		}
		p.exhaustive = true
		p.total = uint64(1) << (2 * depth)
	default:
		p.total = v.cfg.sampleCount
	}

	if n := batchCount(p.total, v.cfg.batchSize); n > MaxBatches {
		sentinel := errs.ErrInvalidOption
		if p.exhaustive {
			sentinel = errs.ErrExhaustiveTooLarge
		}

		return plan{}, fmt.Errorf("%w: %d samples need %d batches of %d, limit %d",
			sentinel, p.total, n, v.cfg.batchSize, MaxBatches)
	}

	if (v.cfg.keepRecords || v.cfg.collisionCheck) && p.total > MaxRetainedSamples {
		return plan{}, fmt.Errorf("%w: %d samples retained in memory, limit %d",
			errs.ErrInvalidOption, p.total, uint64(MaxRetainedSamples))
	}

	return p, nil
}

// batchCount returns ceil(total/size) without overflowing near 2^64.
func batchCount(total uint64, size int) uint64 {
	s := uint64(size) //nolint:gosec
	n := total / s
	if total%s != 0 {
		n++
	}

	return n
}

func (v *Verifier) runBatches(ctx context.Context, codec Codec, p plan) ([]batchResult, error) {
	size := uint64(v.cfg.batchSize) //nolint:gosec
	n := batchCount(p.total, v.cfg.batchSize)
	results := make([]batchResult, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.cfg.workers)
	for b := uint64(0); b < n; b++ {
		if gctx.Err() != nil {
			break
		}
		start := b * size
		end := start + min(size, p.total-start)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[b] = checkBatch(codec, p, start, end, v.cfg.maxFailures, v.cfg.keepRecords, v.cfg.collisionCheck)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
