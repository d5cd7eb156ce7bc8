package regression

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInsufficientData is returned when fewer than two usable measurements remain.
var ErrInsufficientData = errors.New("insufficient data for regression")

// transform linearizes a model as Y' = A + b*X' and maps A back to a.
type transform struct {
	kind ModelType
	x    func(float64) float64
	y    func(float64) float64
	a    func(float64) float64
}

func identity(v float64) float64 { return v }
func inverse(v float64) float64  { return 1 / v }

var transforms = []transform{
	{kind: ModelTypeHyperbolic, x: inverse, y: identity, a: identity},
	{kind: ModelTypeLogarithmic, x: math.Log, y: identity, a: identity},
	{kind: ModelTypePower, x: math.Log, y: math.Log, a: math.Exp},
	{kind: ModelTypeLinear, x: identity, y: identity, a: identity},
}

// Fit fits every model type to (kpb, bpk) and ranks them by R².
//
// Pairs with a non-positive coordinate are skipped since the logarithmic and
// power transforms are undefined there.
func Fit(kpb, bpk []float64) (*Result, error) {
	if len(kpb) != len(bpk) {
		return nil, fmt.Errorf("mismatched data lengths: %d KPB vs %d BPK", len(kpb), len(bpk))
	}

	var x, y []float64
	for i := range kpb {
		if kpb[i] > 0 && bpk[i] > 0 {
			x = append(x, kpb[i])
			y = append(y, bpk[i])
		}
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: %d points", ErrInsufficientData, len(x))
	}

	models := make([]*Model, 0, len(transforms))
	for _, t := range transforms {
		models = append(models, fitModel(t, x, y))
	}

	slices.SortStableFunc(models, func(a, b *Model) int {
		switch {
		case a.RSquared > b.RSquared:
			return -1
		case a.RSquared < b.RSquared:
			return 1
		default:
			return 0
		}
	})

	return &Result{BestFit: models[0], AllModels: models}, nil
}

func fitModel(t transform, x, y []float64) *Model {
	n := float64(len(x))

	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		xi, yi := t.x(x[i]), t.y(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX, meanY := sumX/n, sumY/n
	var b float64
	if den := sumX2 - n*meanX*meanX; den != 0 {
		b = (sumXY - n*meanX*meanY) / den
	}
	c := curve{kind: t.kind, a: t.a(meanY - b*meanX), b: b}

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = c.Estimate(x[i])
	}
	r2, rmse := goodness(y, predicted)

	return &Model{
		Type:         t.kind,
		Coefficients: c.Coefficients(),
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      c.formula(),
		Estimator:    c,
	}
}

// goodness returns R² and RMSE of predicted against observed.
// R² is 0 when observed has no variance.
func goodness(observed, predicted []float64) (r2, rmse float64) {
	var mean float64
	for _, v := range observed {
		mean += v
	}
	mean /= float64(len(observed))

	var ssTot, ssRes float64
	for i, v := range observed {
		ssTot += (v - mean) * (v - mean)
		ssRes += (v - predicted[i]) * (v - predicted[i])
	}

	rmse = math.Sqrt(ssRes / float64(len(observed)))
	if ssTot == 0 {
		return 0, rmse
	}

	return 1 - ssRes/ssTot, rmse
}
