package regression

import (
	"errors"
	"math"
	"testing"
)

func TestFit_RecoversHyperbolic(t *testing.T) {
	x := []float64{1, 2, 5, 10, 50, 100, 1000}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2.5 + 32/v
	}

	res, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if res.BestFit.Type != ModelTypeHyperbolic {
		t.Fatalf("expected hyperbolic best fit, got %s", res.BestFit.Type)
	}
	if math.Abs(res.BestFit.RSquared-1) > 1e-9 {
		t.Errorf("expected R² of 1, got %f", res.BestFit.RSquared)
	}
	c := res.BestFit.Coefficients
	if math.Abs(c[0]-2.5) > 1e-9 || math.Abs(c[1]-32) > 1e-9 {
		t.Errorf("unexpected coefficients %v", c)
	}
	if len(res.AllModels) != len(transforms) {
		t.Fatalf("expected %d models, got %d", len(transforms), len(res.AllModels))
	}
	for i := 1; i < len(res.AllModels); i++ {
		if res.AllModels[i-1].RSquared < res.AllModels[i].RSquared {
			t.Errorf("models not ranked by R² at %d", i)
		}
	}
}

func TestFit_RecoversPower(t *testing.T) {
	x := []float64{1, 4, 9, 16, 100}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3 * math.Pow(v, -0.5)
	}

	res, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if res.BestFit.Type != ModelTypePower {
		t.Fatalf("expected power best fit, got %s", res.BestFit.Type)
	}
	if got := res.BestFit.Estimator.Estimate(25); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Estimate(25) = %f, want 0.6", got)
	}
}

func TestFit_Errors(t *testing.T) {
	if _, err := Fit([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := Fit([]float64{1}, []float64{1}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	// Non-positive pairs are dropped before fitting.
	if _, err := Fit([]float64{0, -1, 3}, []float64{1, 1, 1}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestFit_FlatData(t *testing.T) {
	res, err := Fit([]float64{1, 2, 3}, []float64{8, 8, 8})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if res.BestFit.RSquared != 0 {
		t.Errorf("flat data should give R² 0, got %f", res.BestFit.RSquared)
	}
	if got := res.BestFit.Estimator.Estimate(10); math.Abs(got-8) > 1e-9 {
		t.Errorf("Estimate(10) = %f, want 8", got)
	}
}

func TestNewEstimator(t *testing.T) {
	tests := []struct {
		kind ModelType
		kpb  float64
		want float64
	}{
		{ModelTypeHyperbolic, 4, 2 + 3.0/4},
		{ModelTypeLogarithmic, math.E, 5},
		{ModelTypePower, 4, 2 * 64},
		{ModelTypeLinear, 10, 32},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e, err := NewEstimator(tt.kind, []float64{2, 3})
			if err != nil {
				t.Fatalf("NewEstimator failed: %v", err)
			}
			if e.Type() != tt.kind {
				t.Errorf("Type() = %s", e.Type())
			}
			if got := e.Estimate(tt.kpb); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Estimate(%v) = %v, want %v", tt.kpb, got, tt.want)
			}
			if !math.IsInf(e.Estimate(0), 1) {
				t.Error("Estimate(0) should be +Inf")
			}
		})
	}

	if _, err := NewEstimator(ModelType(42), []float64{1, 2}); err == nil {
		t.Error("expected error for unknown model type")
	}
	if _, err := NewEstimator(ModelTypePower, []float64{1}); err == nil {
		t.Error("expected error for wrong coefficient count")
	}
}

func TestParseModelType(t *testing.T) {
	for _, name := range []string{"hyperbolic", "Logarithmic", "POWER", "linear"} {
		kind, ok := ParseModelType(name)
		if !ok {
			t.Fatalf("ParseModelType(%q) failed", name)
		}
		if _, ok := ParseModelType(kind.String()); !ok {
			t.Errorf("round trip of %q failed", name)
		}
	}
	if _, ok := ParseModelType("exponential"); ok {
		t.Error("exponential is not a supported model")
	}
	if ModelType(-1).String() != "unknown" {
		t.Error("out-of-range model type should be unknown")
	}
}

func TestEstimateBlobSize(t *testing.T) {
	e, _ := NewEstimator(ModelTypeHyperbolic, []float64{2, 32})
	if got := EstimateBlobSize(e, 16); got != 64 {
		t.Errorf("EstimateBlobSize(16) = %d, want 64", got)
	}
	if got := EstimateBlobSize(e, 0); got != 0 {
		t.Errorf("EstimateBlobSize(0) = %d, want 0", got)
	}
}
