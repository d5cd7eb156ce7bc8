// Package regression estimates key blob sizes from measured blobs.
//
// Delta-encoded Morton keys get cheaper per key as a blob grows: neighbouring
// keys sit closer together and the fixed 32-byte header is spread over more
// keys. This package re-encodes the keys of existing blobs at a range of
// chunk sizes, measures bytes per key (BPK) against keys per blob (KPB), and
// fits candidate curves to the measurements.
//
// # Usage
//
//	result, err := regression.Analyze([]blob.KeyBlob{kb1, kb2},
//	    regression.WithCompression(format.CompressionZstd),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.BestFit.Formula)
//	size := regression.EstimateBlobSize(result.BestFit.Estimator, 5000)
//
// # Model Types
//
//   - Hyperbolic: BPK = a + b / KPB (the header term dominates small blobs)
//   - Logarithmic: BPK = a + b * ln(KPB)
//   - Power: BPK = a * KPB^b
//   - Linear: BPK = a + b * KPB
//
// The model with the highest R² is the best fit.
package regression
