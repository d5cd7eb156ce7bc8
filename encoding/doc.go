// Package encoding defines columnar encoders for Morton key columns.
//
// ColumnarEncoder and ColumnarDecoder are generic over the column type; this
// package implements them for morton.Key:
//
//   - KeyRawEncoder / KeyRawDecoder: fixed 8-byte words, O(1) At.
//   - KeyDeltaEncoder / KeyDeltaDecoder: uvarint deltas of ascending keys.
//
// Most callers use package blob, which selects an encoding, adds a header and
// optional compression:
//
//	enc := encoding.NewKeyDeltaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice(sortedKeys)
//	payload := enc.Bytes()
//
//	for z := range encoding.NewKeyDeltaDecoder().All(payload, len(sortedKeys)) {
//		...
//	}
package encoding
