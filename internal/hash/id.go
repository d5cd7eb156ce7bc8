// Package hash wraps xxHash64 for the places zcurve needs a fast, stable hash:
// deriving verification samples and fingerprinting payloads.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Sample returns element index of the pseudo-random stream identified by seed.
//
// Each element depends only on (seed, index), so a stream can be read in any
// order, split across goroutines, or extended without changing earlier values.
func Sample(seed, index uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint64(buf[8:16], index)

	return xxhash.Sum64(buf[:])
}
