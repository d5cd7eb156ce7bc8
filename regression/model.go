package regression

import "fmt"

// Model is one fitted curve.
type Model struct {
	Type         ModelType
	Coefficients []float64
	// RSquared is the coefficient of determination; higher is better.
	RSquared float64
	// RMSE is in bytes per key; lower is better.
	RMSE      float64
	Formula   string
	Estimator Estimator
}

func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Sample is one measurement: blobs of KeysPerBlob keys cost BytesPerKey each.
type Sample struct {
	KeysPerBlob int
	Blobs       int
	TotalBytes  int
	BytesPerKey float64
}

// Result is the outcome of an analysis.
type Result struct {
	// BestFit is AllModels[0].
	BestFit *Model
	// AllModels are ranked by R², best first.
	AllModels []*Model
	// Samples are the measurements the models were fitted to, by chunk size.
	Samples []Sample
}

func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, TotalModels: %d}", r.BestFit, len(r.AllModels))
}
