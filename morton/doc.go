// Package morton implements a bijective Z-order (Morton) codec between 2D
// integer coordinates and 1D keys.
//
// A Codec is built for a fixed bit depth B in [1, 32]. It accepts coordinates
// in [0, 2^B) and produces keys in [0, 2^(2B)) by interleaving bits: bit i of x
// goes to key bit 2i and bit i of y to key bit 2i+1.
//
//	c, _ := morton.NewCodec(4)
//	z, _ := c.Encode(5, 10)    // 0b1001_1001 = 153
//	x, y, _ := c.Decode(z)     // 5, 10
//
// Encode and Decode are mutual inverses over the domain. Inputs outside the
// domain fail with *errs.DomainError and are never truncated. Points close in
// 2D tend to have close keys, so sorting by key groups nearby points.
//
// Codec values are immutable and safe for concurrent use.
package morton
