// Package zcurve maps 2D integer coordinates to 1D Morton (Z-order) keys and
// proves that the mapping is a bijection.
//
// A key interleaves the bits of its coordinates: bit i of x lands at key bit
// 2i and bit i of y at key bit 2i+1. Points that are close in the plane tend to
// have close keys, which makes Morton keys a cheap spatial index for sorted
// stores, range scans and sharding.
//
// # Core Features
//
//   - Branch-free encode/decode at any depth from 1 to 32 bits per coordinate
//   - Out-of-domain input is rejected, never truncated or wrapped
//   - Exhaustive and seeded sampled bijectivity verification
//   - Deterministic, prefix-stable sampling independent of worker count
//   - Compact key blobs (raw or delta keys, optional zstd/s2/lz4 compression)
//
// # Basic Usage
//
// Encoding and decoding:
//
//	codec, _ := zcurve.NewCodec(16)
//	z, _ := codec.Encode(5, 10)
//	x, y, _ := codec.Decode(z)
//
// Verifying a codec:
//
//	run, _ := zcurve.Verify(codec, verify.WithMode(verify.ModeSampled), verify.WithSeed(42))
//	if !run.Passed() {
//	    fmt.Println(run.FirstFailure)
//	}
//
// # Package Structure
//
// This package wraps the morton, verify and blob packages for the common cases.
// Use those packages directly for fine-grained control.
package zcurve

import (
	"github.com/arloliu/zcurve/blob"
	"github.com/arloliu/zcurve/morton"
	"github.com/arloliu/zcurve/verify"
)

// DefaultDepth is the depth used by Encode and Decode: full 32-bit coordinates
// and 64-bit keys.
const DefaultDepth = morton.DefaultDepth

var defaultCodec = morton.MustNewCodec(DefaultDepth)

// NewCodec creates a Morton codec for the given bit depth.
//
// Parameters:
//   - depth: bits per coordinate, in [1, 32]
//
// Returns:
//   - morton.Codec: an immutable codec, safe for concurrent use
//   - error: errs.ErrInvalidDepth when depth is out of range
//
// Example:
//
//	codec, err := zcurve.NewCodec(16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	z, err := codec.Encode(1234, 5678)
func NewCodec(depth int) (morton.Codec, error) {
	return morton.NewCodec(depth)
}

// Encode interleaves x and y at DefaultDepth.
//
// Coordinates above math.MaxUint32 fail with an *errs.DomainError.
func Encode(x, y uint64) (morton.Key, error) {
	return defaultCodec.Encode(x, y)
}

// Decode splits a DefaultDepth key into its coordinates. Every uint64 is a
// valid key at this depth.
func Decode(z morton.Key) (x, y uint32, err error) {
	return defaultCodec.Decode(z)
}

// Verify checks that encode and decode are inverse bijections on codec's domain.
//
// With no options the run is sampled: verify.DefaultSampleCount pseudo-random
// coordinates drawn from seed 0. Use verify.WithMode(verify.ModeExhaustive)
// to cover the whole domain at small depths.
//
// Returns:
//   - *verify.Run: totals, failure count and the first failing record
//   - error: a configuration error; round-trip failures are reported in the run
//
// Example:
//
//	run, err := zcurve.Verify(codec,
//	    verify.WithMode(verify.ModeExhaustive),
//	    verify.WithCollisionCheck(true),
//	)
func Verify(codec verify.Codec, opts ...verify.Option) (*verify.Run, error) {
	return verify.Verify(codec, opts...)
}

// NewKeyEncoder creates an encoder that packs coordinates of the given depth
// into a key blob.
//
// Defaults: sorted delta keys, zstd compression, little-endian header.
//
// Example:
//
//	enc, _ := zcurve.NewKeyEncoder(16)
//	for _, p := range points {
//	    if err := enc.AddPoint(uint64(p.X), uint64(p.Y)); err != nil {
//	        return err
//	    }
//	}
//	data, err := enc.Finish()
func NewKeyEncoder(depth int, opts ...blob.KeyEncoderOption) (*blob.KeyEncoder, error) {
	return blob.NewKeyEncoder(depth, opts...)
}

// NewKeyDecoder parses a key blob header and prepares the payload for decoding.
//
// Example:
//
//	dec, err := zcurve.NewKeyDecoder(data)
//	if err != nil {
//	    return err
//	}
//	kb, err := dec.Decode()
//	for p := range kb.Points() {
//	    fmt.Println(p.X, p.Y, p.Z)
//	}
func NewKeyDecoder(data []byte) (*blob.KeyDecoder, error) {
	return blob.NewKeyDecoder(data)
}
