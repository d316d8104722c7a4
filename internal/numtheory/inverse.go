package numtheory

import (
	"errors"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/modring"
)

// ErrNoInverse is returned by ModInverse when gcd(a, m) != 1, so no modular
// inverse exists. Unlike the arithmetic contract violations, this is an
// expected, recoverable condition: a key-exchange caller handles it by
// rejecting the offending parameter, not by retrying.
var ErrNoInverse = errors.New("numtheory: no modular inverse exists")

// ModInverse returns x with (a * x) mod m == 1, for m > 1.
//
// The general case runs the extended Euclidean algorithm, carrying only the
// Bézout coefficient of a through the recurrence
//
//	p[i] = p[i-2] - p[i-1]*q[i-2]  (mod m)
//
// where the quotients q come from the same division sequence that drives the
// GCD. The subtraction is the ring's modular Difference, which absorbs the
// alternating sign of the coefficients without ever materializing a negative
// value. A single-word modulus bypasses all of that for a native-word
// extended Euclid.
func ModInverse(a, m *biguint.Nat) (*biguint.Nat, error) {
	ring, err := modring.New(m)
	if err != nil {
		return nil, err
	}
	if m.Len() == 1 {
		inv, ok := invWord(uint64(a.ModWord(m.Word0())), uint64(m.Word0()))
		if !ok {
			return nil, ErrNoInverse
		}
		return biguint.FromUint64(inv), nil
	}

	p0 := biguint.Zero() // coefficient of r0
	p1 := biguint.One()  // coefficient of r1
	r0 := m.Clone()
	r1 := biguint.Mod(a, m)

	for !r1.IsZero() {
		q, r := biguint.DivMod(r0, r1)
		p0, p1 = p1, ring.Difference(p0, ring.Mul(q, p1))
		r0, r1 = r1, r
	}
	if !r0.IsOne() {
		return nil, ErrNoInverse
	}
	return p0, nil
}

// invWord computes the inverse of a modulo m on native words via the signed
// extended Euclidean recurrence. It reports ok=false when gcd(a, m) != 1.
func invWord(a, m uint64) (uint64, bool) {
	if a == 0 {
		return 0, false
	}
	var t0, t1 int64 = 0, 1
	r0, r1 := m, a
	for r1 != 0 {
		q := r0 / r1
		t0, t1 = t1, t0-int64(q)*t1
		r0, r1 = r1, r0-q*r1
	}
	if r0 != 1 {
		return 0, false
	}
	if t0 < 0 {
		t0 += int64(m)
	}
	return uint64(t0), true
}
