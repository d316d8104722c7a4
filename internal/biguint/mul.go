package biguint

// Mul returns x * y as a fresh magnitude using the schoolbook double loop.
// Each output word accumulates through a 64-bit register: the product of two
// 32-bit words plus the running output word plus the incoming carry always
// fits in 64 bits, so no partial sums are ever lost. The output buffer is
// sized to the sum of the operand lengths.
func Mul(x, y *Nat) *Nat {
	if x.IsZero() || y.IsZero() {
		return Zero()
	}
	z := make([]uint32, len(x.w)+len(y.w))
	for i, xi := range x.w {
		if xi == 0 {
			continue
		}
		xv := uint64(xi)
		var c uint64
		for j, yj := range y.w {
			c += uint64(z[i+j]) + xv*uint64(yj)
			z[i+j] = uint32(c)
			c >>= WordBits
		}
		z[i+len(y.w)] = uint32(c)
	}
	return (&Nat{w: z}).norm()
}

// MulTrunc returns (x * y) mod b^maxWords, b = 2^32: the schoolbook product
// truncated to a window of maxWords low-order words. Multiplier words whose
// partial products land entirely above the window are skipped, and carries
// are propagated only up to the window edge. Barrett reduction uses this to
// avoid computing precision it is about to discard.
func MulTrunc(x, y *Nat, maxWords int) *Nat {
	if maxWords < 1 {
		maxWords = 1
	}
	z := make([]uint32, maxWords)
	for i, xi := range x.w {
		if i >= maxWords {
			break
		}
		if xi == 0 {
			continue
		}
		xv := uint64(xi)
		var c uint64
		j := 0
		for ; j < len(y.w) && i+j < maxWords; j++ {
			c += uint64(z[i+j]) + xv*uint64(y.w[j])
			z[i+j] = uint32(c)
			c >>= WordBits
		}
		for k := i + j; c != 0 && k < maxWords; k++ {
			c += uint64(z[k])
			z[k] = uint32(c)
			c >>= WordBits
		}
	}
	return (&Nat{w: z}).norm()
}

// accMulAddWord computes x = x*m + a in place. It backs radix parsing and is
// cheaper than a full Mul against a one-word magnitude.
func (x *Nat) accMulAddWord(m, a uint32) {
	c := uint64(a)
	mv := uint64(m)
	for i := range x.w {
		c += uint64(x.w[i]) * mv
		x.w[i] = uint32(c)
		c >>= WordBits
	}
	if c != 0 {
		x.w = append(x.w, uint32(c))
	}
	x.norm()
}
