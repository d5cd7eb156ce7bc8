package morton

// Masks used to spread a 32-bit value over the even bits of a 64-bit word.
// Step i moves groups of 2^(5-i) bits apart.
var spreadMasks = [...]uint64{
	0x0000FFFF0000FFFF,
	0x00FF00FF00FF00FF,
	0x0F0F0F0F0F0F0F0F,
	0x3333333333333333,
	0x5555555555555555,
}

var spreadShifts = [...]uint{16, 8, 4, 2, 1}

// Spread places bit i of v at bit 2i of the result. All odd bits are zero.
func Spread(v uint32) uint64 {
	x := uint64(v)
	for i, shift := range spreadShifts {
		x = (x | (x << shift)) & spreadMasks[i]
	}

	return x
}

// Compact is the inverse of Spread: bit 2i of v becomes bit i of the result.
// Odd bits of v are ignored.
func Compact(v uint64) uint32 {
	x := v & spreadMasks[len(spreadMasks)-1]
	for i := len(spreadShifts) - 1; i >= 0; i-- {
		var mask uint64 = 0x00000000FFFFFFFF
		if i > 0 {
			mask = spreadMasks[i-1]
		}
		x = (x | (x >> spreadShifts[i])) & mask
	}

	return uint32(x) //nolint:gosec
}

func interleave(x, y uint32) Key {
	return Spread(x) | (Spread(y) << 1)
}

func deinterleave(z Key) (x, y uint32) {
	return Compact(z), Compact(z >> 1)
}
