package regression

import (
	"fmt"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/internal/options"
)

// DefaultChunkSizes are the blob sizes measured when no sizes are configured.
var DefaultChunkSizes = []int{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 50000}

// AnalyzeConfig selects how keys are re-encoded for measurement.
type AnalyzeConfig struct {
	Encoding    format.EncodingType
	Compression format.CompressionType
	ChunkSizes  []int
}

func defaultAnalyzeConfig() *AnalyzeConfig {
	return &AnalyzeConfig{
		Encoding:    format.TypeDelta,
		Compression: format.CompressionZstd,
		ChunkSizes:  DefaultChunkSizes,
	}
}

// AnalyzeOption configures Analyze.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithEncoding sets the key encoding used for measurement.
func WithEncoding(enc format.EncodingType) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if enc != format.TypeRaw && enc != format.TypeDelta {
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, enc)
		}
		cfg.Encoding = enc

		return nil
	})
}

// WithCompression sets the payload compression used for measurement.
func WithCompression(comp format.CompressionType) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if comp < format.CompressionNone || comp > format.CompressionLZ4 {
			return fmt.Errorf("%w: compression %s", errs.ErrInvalidOption, comp)
		}
		cfg.Compression = comp

		return nil
	})
}

// WithChunkSizes overrides the blob sizes to measure. Sizes must be positive.
func WithChunkSizes(sizes ...int) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		for _, s := range sizes {
			if s <= 0 {
				return fmt.Errorf("%w: chunk size %d", errs.ErrInvalidOption, s)
			}
		}
		cfg.ChunkSizes = sizes

		return nil
	})
}
