package verify

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/zcurve/internal/collision"
	"github.com/arloliu/zcurve/internal/hash"
	"github.com/arloliu/zcurve/morton"
)

const numFailureKinds = int(FailureDecodeError) + 1

// batchResult holds the outcome of samples [start, end).
type batchResult struct {
	start       uint64
	end         uint64
	kinds       [numFailureKinds]uint64
	fingerprint uint64
	// failures holds the first failing records of the batch, up to the
	// configured cap. Unused when all is set.
	failures []Record
	// all holds every record when records are kept.
	all []Record
	// samples holds every sample in compact form for collision checks
	// when full records are not kept.
	samples []sample
}

// sample is a Record without index and detail.
type sample struct {
	in   morton.Coordinate
	dec  morton.Coordinate
	z    morton.Key
	kind FailureKind
}

func (s sample) record(i uint64) Record {
	return Record{
		Index:   i,
		Input:   s.in,
		Encoded: s.z,
		Decoded: s.dec,
		Matched: s.kind == FailureNone,
		Kind:    s.kind,
	}
}

// records yields the batch's records in index order: every record when
// all or samples is set, otherwise only the kept failures.
//
// Records rebuilt from samples lack the detail of codec errors that fell
// beyond the batch's failure cap.
func (res *batchResult) records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		switch {
		case res.all != nil:
			for _, r := range res.all {
				if !yield(r) {
					return
				}
			}
		case res.samples != nil:
			next := 0
			for off, s := range res.samples {
				r := s.record(res.start + uint64(off)) //nolint:gosec
				if next < len(res.failures) && res.failures[next].Index == r.Index {
					r = res.failures[next]
					next++
				}
				if !yield(r) {
					return
				}
			}
		default:
			for _, r := range res.failures {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// coordinate returns sample i of the run.
//
// Exhaustive runs walk the domain row by row. Sampled runs hash (seed, i), so
// sample i does not depend on any other sample.
func (p plan) coordinate(i uint64) morton.Coordinate {
	if p.exhaustive {
		return morton.Coordinate{
			X: uint32(i & p.mask),              //nolint:gosec
			Y: uint32((i >> p.depth) & p.mask), //nolint:gosec
		}
	}

	h := hash.Sample(p.seed, i)

	return morton.Coordinate{
		X: uint32(h & p.mask),         //nolint:gosec
		Y: uint32((h >> 32) & p.mask), //nolint:gosec
	}
}

// check round-trips one sample.
func check(codec Codec, p plan, i uint64) Record {
	in := p.coordinate(i)
	r := Record{Index: i, Input: in}

	z, err := codec.Encode(uint64(in.X), uint64(in.Y))
	if err != nil {
		r.Kind = FailureEncodeError
		r.Detail = err.Error()

		return r
	}
	r.Encoded = z

	x, y, err := codec.Decode(z)
	if err != nil {
		r.Kind = FailureDecodeError
		r.Detail = err.Error()

		return r
	}
	r.Decoded = morton.Coordinate{X: x, Y: y}
	r.Matched = r.Decoded == in
	if !r.Matched {
		r.Kind = FailureMismatch
	}

	return r
}

func checkBatch(codec Codec, p plan, start, end uint64, maxFailures int, keepRecords, trackKeys bool) batchResult {
	res := batchResult{start: start, end: end}
	switch {
	case keepRecords:
		res.all = make([]Record, 0, end-start)
	case trackKeys:
		res.samples = make([]sample, 0, end-start)
	}

	for i := start; i < end; i++ {
		r := check(codec, p, i)
		res.kinds[r.Kind]++
		res.fingerprint += digest(r)

		if keepRecords {
			res.all = append(res.all, r)
			continue
		}
		if r.Failed() && len(res.failures) < maxFailures {
			res.failures = append(res.failures, r)
		}
		if trackKeys {
			res.samples = append(res.samples, sample{in: r.Input, dec: r.Decoded, z: r.Encoded, kind: r.Kind})
		}
	}

	return res
}

// merge folds batch results in index order into a Run. Collision tracking
// happens here so that the first collision is found in sample order.
func (v *Verifier) merge(p plan, results []batchResult) (*Run, [numFailureKinds]uint64) {
	cfg := &v.cfg
	run := &Run{
		Depth:          p.depth,
		Mode:           cfg.mode,
		Seed:           cfg.seed,
		SampleCount:    p.total,
		CollisionCheck: cfg.collisionCheck,
		Total:          p.total,
	}
	if cfg.mode == ModeSampled {
		run.SampleCount = cfg.sampleCount
	}

	var kinds [numFailureKinds]uint64
	var tracker *collision.Tracker
	if cfg.collisionCheck {
		tracker = collision.NewTracker()
	}
	if cfg.keepRecords {
		run.Records = make([]Record, 0, min(p.total, 1<<20))
	}

	keep := func(r Record) {
		if len(run.FailureRecords) < cfg.maxFailures {
			run.FailureRecords = append(run.FailureRecords, r)
		}
	}

	for bi := range results {
		res := &results[bi]
		run.Fingerprint += res.fingerprint
		for k, n := range res.kinds {
			kinds[k] += n
		}

		for r := range res.records() {
			if tracker != nil && r.Kind != FailureEncodeError {
				// A collision takes precedence over the mismatch it causes.
				if tracker.Track(r.Input, r.Encoded) && r.Kind != FailureDecodeError {
					run.Fingerprint -= digest(r)
					kinds[r.Kind]--
					r.Kind = FailureCollision
					if len(run.FailureRecords) < cfg.maxFailures {
						r.Detail = collisionDetail(results[:bi+1], r)
					}
					run.Fingerprint += digest(r)
					kinds[FailureCollision]++
				}
			}
			if r.Failed() {
				keep(r)
			}
			if cfg.keepRecords {
				run.Records = append(run.Records, r)
			}
		}
	}

	run.Failures = p.total - kinds[FailureNone]
	if len(run.FailureRecords) > 0 {
		first := run.FailureRecords[0]
		run.FirstFailure = &first
	}

	return run, kinds
}

// collisionDetail names the earliest coordinate that produced r's key.
func collisionDetail(results []batchResult, r Record) string {
	for bi := range results {
		for prev := range results[bi].records() {
			if prev.Index >= r.Index {
				break
			}
			if prev.Encoded == r.Encoded && prev.Input != r.Input && prev.Kind != FailureEncodeError {
				return fmt.Sprintf("key %d already produced by (%d,%d) at #%d",
					r.Encoded, prev.Input.X, prev.Input.Y, prev.Index)
			}
		}
	}

	return fmt.Sprintf("key %d already produced by another coordinate", r.Encoded)
}

// digest hashes every field of r that appears in a report.
func digest(r Record) uint64 {
	var buf [48]byte
	binary.LittleEndian.PutUint64(buf[0:8], r.Index)
	binary.LittleEndian.PutUint32(buf[8:12], r.Input.X)
	binary.LittleEndian.PutUint32(buf[12:16], r.Input.Y)
	binary.LittleEndian.PutUint64(buf[16:24], r.Encoded)
	binary.LittleEndian.PutUint32(buf[24:28], r.Decoded.X)
	binary.LittleEndian.PutUint32(buf[28:32], r.Decoded.Y)
	buf[32] = byte(r.Kind)
	if r.Matched {
		buf[33] = 1
	}
	// Collision details depend on the failure cap; only codec errors are hashed.
	d := hash.Sum(buf[:34])
	if r.Kind == FailureEncodeError || r.Kind == FailureDecodeError {
		d ^= hash.ID(r.Detail)
	}

	return d
}
