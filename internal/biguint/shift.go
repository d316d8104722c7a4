package biguint

import "math/bits"

// Shl returns x << n for an arbitrary bit count, expressed as a whole-word
// shift plus a sub-word shift whose carry crosses word boundaries upward.
func Shl(x *Nat, n uint) *Nat {
	if x.IsZero() || n == 0 {
		return x.Clone()
	}
	words := int(n / WordBits)
	sh := n % WordBits
	z := make([]uint32, len(x.w)+words+1)
	for i, xi := range x.w {
		v := uint64(xi) << sh
		z[i+words] |= uint32(v)
		z[i+words+1] |= uint32(v >> WordBits)
	}
	return (&Nat{w: z}).norm()
}

// Shr returns x >> n, discarding bits shifted off the low end.
func Shr(x *Nat, n uint) *Nat {
	words := int(n / WordBits)
	sh := n % WordBits
	if words >= len(x.w) {
		return Zero()
	}
	z := make([]uint32, len(x.w)-words)
	for i := range z {
		z[i] = x.w[i+words] >> sh
		if sh > 0 && i+words+1 < len(x.w) {
			z[i] |= x.w[i+words+1] << (WordBits - sh)
		}
	}
	return (&Nat{w: z}).norm()
}

// ShrWords returns x >> (32*n), a pure word-granular shift. Barrett
// reduction uses it for its two windowing steps.
func ShrWords(x *Nat, n int) *Nat {
	if n >= len(x.w) {
		return Zero()
	}
	z := make([]uint32, len(x.w)-n)
	copy(z, x.w[n:])
	return (&Nat{w: z}).norm()
}

// TruncWords returns x mod b^n, b = 2^32: the n low-order words of x.
func TruncWords(x *Nat, n int) *Nat {
	if n >= len(x.w) {
		return x.Clone()
	}
	z := make([]uint32, n)
	copy(z, x.w[:n])
	return (&Nat{w: z}).norm()
}

// BitLen returns the length of x in bits: zero for the value 0, otherwise
// the index of the highest set bit plus one.
func (x *Nat) BitLen() int {
	return (len(x.w)-1)*WordBits + bits.Len32(x.w[len(x.w)-1])
}

// Bit returns the value of the i'th bit of x (0 or 1).
func (x *Nat) Bit(i int) uint {
	word := i / WordBits
	if i < 0 || word >= len(x.w) {
		return 0
	}
	return uint(x.w[word]>>(i%WordBits)) & 1
}

// SetBit returns a fresh magnitude equal to x with bit i set, growing the
// word buffer when i lies beyond the current length.
func SetBit(x *Nat, i int) *Nat {
	if i < 0 {
		panic("biguint: negative bit index")
	}
	word := i / WordBits
	n := len(x.w)
	if word+1 > n {
		n = word + 1
	}
	z := make([]uint32, n)
	copy(z, x.w)
	z[word] |= 1 << (i % WordBits)
	return &Nat{w: z} // top word just gained a bit or was already non-zero
}
