// Package endian selects the byte order used for raw keys and blob headers.
//
// EndianEngine joins binary.ByteOrder and binary.AppendByteOrder so encoders
// can both patch fixed offsets and append:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, key)
//
// Little-endian is the zcurve default. Big-endian exists for consumers that
// compare raw key bytes lexicographically: big-endian keys sort the same way
// as their integer values.
//
// All engines are stateless and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the host's native byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}
