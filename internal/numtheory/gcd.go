// Package numtheory provides the number-theoretic operations built on the
// arithmetic kernel and the modulus ring: greatest common divisor and
// modular inverse. The handshake layer uses them to validate key-exchange
// parameters (a public value without an inverse modulo the group prime is
// malformed or adversarial).
package numtheory

import (
	"math/bits"

	"github.com/agbru/modmath/internal/biguint"
)

// GCD returns the greatest common divisor of a and b; GCD(a, 0) = a and
// GCD(0, 0) = 0.
//
// The algorithm is a hybrid: while either operand spans more than one word,
// Euclidean steps through full division shrink the pair quickly; once both
// fit in a single word the binary GCD takes over, which beats division on
// small values since it needs only shifts and subtractions.
func GCD(a, b *biguint.Nat) *biguint.Nat {
	x, y := a.Clone(), b.Clone()
	if x.Cmp(y) < 0 {
		x, y = y, x
	}
	for !y.IsZero() && (x.Len() > 1 || y.Len() > 1) {
		r := biguint.Mod(x, y)
		x, y = y, r
	}
	if y.IsZero() {
		return x
	}
	return biguint.FromUint64(binaryGCD(uint64(x.Word0()), uint64(y.Word0())))
}

// binaryGCD is Stein's algorithm on machine words: strip the common power
// of two, keep the remaining operands odd by halving, subtract the smaller
// from the larger until they meet, then restore the stripped twos.
func binaryGCD(u, v uint64) uint64 {
	if u == 0 {
		return v
	}
	if v == 0 {
		return u
	}
	shift := bits.TrailingZeros64(u | v)
	u >>= bits.TrailingZeros64(u)
	for v != 0 {
		v >>= bits.TrailingZeros64(v)
		if u > v {
			u, v = v, u
		}
		v -= u
	}
	return u << shift
}
