package biguint

import "math/bits"

// DivMod returns the quotient and remainder of x / y as fresh magnitudes.
// Division truncates toward zero, which for magnitudes is floor division.
// It panics when y is zero.
//
// Three paths, fastest applicable first: a dividend shorter than the divisor
// yields quotient 0 and the dividend unchanged as remainder; a one-word
// divisor runs the word-at-a-time loop; everything else goes through Knuth's
// Algorithm D.
func DivMod(x, y *Nat) (q, r *Nat) {
	if y.IsZero() {
		panic("biguint: division by zero")
	}
	if x.Cmp(y) < 0 {
		return Zero(), x.Clone()
	}
	if len(y.w) == 1 {
		q, rem := divModWord(x, y.w[0])
		return q, FromUint64(uint64(rem))
	}
	return divKnuth(x, y)
}

// Mod returns x mod y. It is DivMod without materializing the quotient when
// the one-word fast path applies.
func Mod(x, y *Nat) *Nat {
	if y.IsZero() {
		panic("biguint: division by zero")
	}
	if x.Cmp(y) < 0 {
		return x.Clone()
	}
	if len(y.w) == 1 {
		return FromUint64(uint64(x.ModWord(y.w[0])))
	}
	_, r := divKnuth(x, y)
	return r
}

// divModWord divides x by a single word d, returning a fresh quotient and
// the remainder word.
func divModWord(x *Nat, d uint32) (*Nat, uint32) {
	q := make([]uint32, len(x.w))
	var r uint64
	dv := uint64(d)
	for i := len(x.w) - 1; i >= 0; i-- {
		r = r<<WordBits | uint64(x.w[i])
		q[i] = uint32(r / dv)
		r %= dv
	}
	return (&Nat{w: q}).norm(), uint32(r)
}

// AccDivWord divides x by a single word d in place, leaving the quotient in
// x and returning the remainder. This is the hot path for radix rendering,
// which repeatedly divides by the radix. The caller must hold exclusive
// access to x. Panics when d is zero.
func (x *Nat) AccDivWord(d uint32) uint32 {
	if d == 0 {
		panic("biguint: division by zero")
	}
	var r uint64
	dv := uint64(d)
	for i := len(x.w) - 1; i >= 0; i-- {
		r = r<<WordBits | uint64(x.w[i])
		x.w[i] = uint32(r / dv)
		r %= dv
	}
	x.norm()
	return uint32(r)
}

// ModWord returns x mod d for a single word d without computing the
// quotient. Panics when d is zero.
func (x *Nat) ModWord(d uint32) uint32 {
	if d == 0 {
		panic("biguint: division by zero")
	}
	var r uint64
	dv := uint64(d)
	for i := len(x.w) - 1; i >= 0; i-- {
		r = (r<<WordBits | uint64(x.w[i])) % dv
	}
	return uint32(r)
}

// correctQhat refines a quotient-word estimate against the second divisor
// word: while the estimate provably overshoots — it no longer fits in a
// word, or scaled by vNext it exceeds the three-word remainder window —
// decrement it and fold the top divisor word back into rhat. It returns the
// corrected estimate and the number of downward steps taken; under Algorithm
// D's normalization precondition (vTop has its high bit set) the step count
// is at most 2, which tests assert rather than trust.
func correctQhat(qhat, rhat, vTop, vNext, u2 uint64) (uint64, int) {
	steps := 0
	for qhat>>WordBits != 0 || qhat*vNext > rhat<<WordBits|u2 {
		qhat--
		rhat += vTop
		steps++
		if rhat>>WordBits != 0 {
			break
		}
	}
	return qhat, steps
}

// divKnuth implements Knuth's Algorithm D for a divisor of at least two
// words and a dividend no smaller than the divisor.
//
// The divisor is normalized so its top word has the high bit set, with the
// dividend shifted by the same count; under that precondition the quotient
// word estimated from the top two divisor words and top three remainder
// words is at most two too large. The estimate is corrected downward before
// the multiply-subtract, and at most one add-back repairs the rare remaining
// overshoot (asserted by tests rather than trusted silently).
func divKnuth(x, y *Nat) (*Nat, *Nat) {
	n := len(y.w) // >= 2 by caller
	m := len(x.w) // >= n by caller

	// D1: normalize so vn[n-1] has its top bit set.
	shift := uint(bits.LeadingZeros32(y.w[n-1]))
	vn := make([]uint32, n)
	for i := n - 1; i > 0; i-- {
		vn[i] = y.w[i]<<shift | uint32(uint64(y.w[i-1])>>(WordBits-shift))
	}
	vn[0] = y.w[0] << shift

	// The dividend gets one extra high word to hold the shifted-out bits.
	un := make([]uint32, m+1)
	un[m] = uint32(uint64(x.w[m-1]) >> (WordBits - shift))
	for i := m - 1; i > 0; i-- {
		un[i] = x.w[i]<<shift | uint32(uint64(x.w[i-1])>>(WordBits-shift))
	}
	un[0] = x.w[0] << shift

	q := make([]uint32, m-n+1)
	vTop := uint64(vn[n-1])
	vNext := uint64(vn[n-2])

	// D2..D7: one quotient word per window position, high to low.
	for j := m - n; j >= 0; j-- {
		// D3: estimate from the top two remainder words against the top
		// divisor word, then correct downward.
		num := uint64(un[j+n])<<WordBits | uint64(un[j+n-1])
		qhat, _ := correctQhat(num/vTop, num%vTop, vTop, vNext, uint64(un[j+n-2]))

		// D4: multiply and subtract the scaled divisor from the remainder
		// window un[j .. j+n].
		var carry, borrow uint64
		for i := 0; i < n; i++ {
			p := qhat*uint64(vn[i]) + carry
			carry = p >> WordBits
			d := uint64(un[i+j]) - (p & (1<<WordBits - 1)) - borrow
			un[i+j] = uint32(d)
			borrow = d >> 63
		}
		d := uint64(un[j+n]) - carry - borrow
		un[j+n] = uint32(d)

		// D6: the subtraction borrowed, so qhat was still one too large.
		// Decrement and add the divisor back once; the resulting carry
		// cancels the borrow.
		if d>>63 != 0 {
			qhat--
			var c uint64
			for i := 0; i < n; i++ {
				c += uint64(un[i+j]) + uint64(vn[i])
				un[i+j] = uint32(c)
				c >>= WordBits
			}
			un[j+n] += uint32(c)
		}
		q[j] = uint32(qhat)
	}

	// D8: denormalize the remainder, undoing the D1 shift.
	r := make([]uint32, n)
	for i := 0; i < n; i++ {
		r[i] = un[i] >> shift
		if shift > 0 {
			r[i] |= un[i+1] << (WordBits - shift)
		}
	}
	return (&Nat{w: q}).norm(), (&Nat{w: r}).norm()
}
