package regression

import (
	"fmt"
	"math"
	"strings"
)

// ModelType identifies a regression curve.
type ModelType int

const (
	// ModelTypeHyperbolic is BPK = a + b / KPB.
	ModelTypeHyperbolic ModelType = iota
	// ModelTypeLogarithmic is BPK = a + b * ln(KPB).
	ModelTypeLogarithmic
	// ModelTypePower is BPK = a * KPB^b.
	ModelTypePower
	// ModelTypeLinear is BPK = a + b * KPB.
	ModelTypeLinear
)

var modelTypeNames = [...]string{
	ModelTypeHyperbolic:  "hyperbolic",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
	ModelTypeLinear:      "linear",
}

func (mt ModelType) String() string {
	if mt >= 0 && int(mt) < len(modelTypeNames) {
		return modelTypeNames[mt]
	}

	return "unknown"
}

// ParseModelType returns the model type named name (case-insensitive).
func ParseModelType(name string) (ModelType, bool) {
	for i, n := range modelTypeNames {
		if strings.EqualFold(n, name) {
			return ModelType(i), true
		}
	}

	return 0, false
}

// Estimator predicts bytes per key for a blob holding kpb keys.
type Estimator interface {
	Estimate(kpb float64) float64
	Type() ModelType
	// Coefficients returns a copy of [a, b].
	Coefficients() []float64
}

// curve is a two-coefficient Estimator.
type curve struct {
	kind ModelType
	a, b float64
}

// NewEstimator builds an estimator of the given type from coefficients [a, b].
func NewEstimator(kind ModelType, coeffs []float64) (Estimator, error) {
	if kind.String() == "unknown" {
		return nil, fmt.Errorf("unknown model type %d", kind)
	}
	if len(coeffs) != 2 {
		return nil, fmt.Errorf("%s model expects 2 coefficients, got %d", kind, len(coeffs))
	}

	return curve{kind: kind, a: coeffs[0], b: coeffs[1]}, nil
}

// Estimate returns +Inf for a non-positive blob size.
func (c curve) Estimate(kpb float64) float64 {
	if kpb <= 0 {
		return math.Inf(1)
	}

	switch c.kind {
	case ModelTypeHyperbolic:
		return c.a + c.b/kpb
	case ModelTypeLogarithmic:
		return c.a + c.b*math.Log(kpb)
	case ModelTypePower:
		return c.a * math.Pow(kpb, c.b)
	default:
		return c.a + c.b*kpb
	}
}

func (c curve) Type() ModelType { return c.kind }

func (c curve) Coefficients() []float64 { return []float64{c.a, c.b} }

func (c curve) formula() string {
	switch c.kind {
	case ModelTypeHyperbolic:
		return fmt.Sprintf("BPK = %.3f + %.3f / KPB", c.a, c.b)
	case ModelTypeLogarithmic:
		return fmt.Sprintf("BPK = %.3f + %.3f * ln(KPB)", c.a, c.b)
	case ModelTypePower:
		return fmt.Sprintf("BPK = %.3f * KPB^%.4f", c.a, c.b)
	default:
		return fmt.Sprintf("BPK = %.3f + %.6f * KPB", c.a, c.b)
	}
}

// EstimateBlobSize predicts the total encoded size in bytes of a blob of n keys.
func EstimateBlobSize(e Estimator, n int) int {
	if n <= 0 {
		return 0
	}

	return int(math.Ceil(e.Estimate(float64(n)) * float64(n)))
}
