package regression

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arloliu/zcurve/blob"
	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/internal/options"
	"github.com/arloliu/zcurve/morton"
)

// ErrNoBlobs is returned when Analyze gets no keys to measure.
var ErrNoBlobs = errors.New("no keys to analyze")

// Analyze pools the keys of all blobs and fits a single size model.
//
// The pooled keys are sorted and cut into consecutive chunks for every
// configured chunk size not larger than the key count. Each full chunk is
// encoded as its own blob and the mean bytes per key becomes one sample.
// All blobs must share one depth.
func Analyze(blobs []blob.KeyBlob, opts ...AnalyzeOption) (*Result, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	depth, keys, err := pool(blobs)
	if err != nil {
		return nil, err
	}

	return analyzeKeys(cfg, depth, keys)
}

// AnalyzeEach fits one model per blob, for comparing key distributions.
func AnalyzeEach(blobs []blob.KeyBlob, opts ...AnalyzeOption) ([]*Result, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if len(blobs) == 0 {
		return nil, ErrNoBlobs
	}

	results := make([]*Result, len(blobs))
	for i, b := range blobs {
		keys := slices.Sorted(b.Keys())
		res, err := analyzeKeys(cfg, b.Depth(), keys)
		if err != nil {
			return nil, fmt.Errorf("blob %d: %w", i, err)
		}
		results[i] = res
	}

	return results, nil
}

func pool(blobs []blob.KeyBlob) (int, []morton.Key, error) {
	if len(blobs) == 0 {
		return 0, nil, ErrNoBlobs
	}

	depth := blobs[0].Depth()
	total := 0
	for i, b := range blobs {
		if b.Depth() != depth {
			return 0, nil, fmt.Errorf("%w: blob %d has depth %d, blob 0 has %d", errs.ErrDepthMismatch, i, b.Depth(), depth)
		}
		total += b.Len()
	}

	keys := make([]morton.Key, 0, total)
	for _, b := range blobs {
		keys = slices.AppendSeq(keys, b.Keys())
	}
	slices.Sort(keys)

	return depth, keys, nil
}

func analyzeKeys(cfg *AnalyzeConfig, depth int, keys []morton.Key) (*Result, error) {
	if len(keys) == 0 {
		return nil, ErrNoBlobs
	}

	var samples []Sample
	for _, size := range cfg.ChunkSizes {
		if size > len(keys) {
			continue
		}

		s, err := measure(cfg, depth, keys, size)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	kpb := make([]float64, len(samples))
	bpk := make([]float64, len(samples))
	for i, s := range samples {
		kpb[i] = float64(s.KeysPerBlob)
		bpk[i] = s.BytesPerKey
	}

	res, err := Fit(kpb, bpk)
	if err != nil {
		return nil, err
	}
	res.Samples = samples

	return res, nil
}

// measure encodes every full chunk of size keys; a trailing partial chunk is skipped.
func measure(cfg *AnalyzeConfig, depth int, keys []morton.Key, size int) (Sample, error) {
	s := Sample{KeysPerBlob: size}

	for start := 0; start+size <= len(keys); start += size {
		enc, err := blob.NewKeyEncoder(depth,
			blob.WithKeyEncoding(cfg.Encoding),
			blob.WithKeyCompression(cfg.Compression),
		)
		if err != nil {
			return Sample{}, err
		}
		for _, z := range keys[start : start+size] {
			if err := enc.AddKey(z); err != nil {
				return Sample{}, err
			}
		}
		data, err := enc.Finish()
		if err != nil {
			return Sample{}, err
		}

		s.Blobs++
		s.TotalBytes += len(data)
	}
	s.BytesPerKey = float64(s.TotalBytes) / float64(s.Blobs*size)

	return s, nil
}
