// Package modring implements arithmetic in the ring of integers modulo a
// fixed modulus. A Ring precomputes a Barrett reduction constant once per
// modulus and then serves many modular multiplications, differences, and
// exponentiations against it. That is the shape of the key-exchange workload,
// where the modulus is the protocol's fixed prime and every handshake reuses
// it.
//
// A Ring is immutable after construction and safe to share across sequential
// operations. Its methods never mutate their operands and always return
// fresh values.
package modring

import (
	"errors"

	"github.com/agbru/modmath/internal/biguint"
)

// ErrInvalidModulus is returned by New for a modulus smaller than 2, for
// which the ring is degenerate.
var ErrInvalidModulus = errors.New("modring: modulus must be greater than 1")

// Ring is a modulus together with its precomputed Barrett constant
// R = b^(2k) / m, where k is the modulus word length and b = 2^32.
type Ring struct {
	m *biguint.Nat // the modulus, k words
	r *biguint.Nat // Barrett constant b^(2k)/m
	k int
}

// New builds a Ring for modulus m. The single full division performed here
// is what every subsequent Barrett reduction avoids.
func New(m *biguint.Nat) (*Ring, error) {
	if m.IsZero() || m.IsOne() {
		return nil, ErrInvalidModulus
	}
	k := m.Len()
	b2k := biguint.SetBit(biguint.Zero(), 2*k*biguint.WordBits)
	r, _ := biguint.DivMod(b2k, m)
	return &Ring{m: m.Clone(), r: r, k: k}, nil
}

// Modulus returns the ring's modulus.
func (rg *Ring) Modulus() *biguint.Nat { return rg.m }

// reduce returns x mod m via Barrett reduction. Precondition: x < b^(2k),
// which holds for any product of two operands already below the modulus.
//
//	q1 = x >> 32*(k-1)
//	q3 = (q1 * R) >> 32*(k+1)
//	r  = x mod b^(k+1)  -  (q3 * m) mod b^(k+1)
//
// with b^(k+1) added back when the subtraction would go negative, and a
// short correction loop subtracting m until the result is below it. Because
// R approximates b^(2k)/m with bounded error, the loop runs at most twice.
func (rg *Ring) reduce(x *biguint.Nat) *biguint.Nat {
	k := rg.k
	if x.Len() < k {
		// Fewer words than the modulus means x < b^(k-1) <= m.
		return x.Clone()
	}

	q1 := biguint.ShrWords(x, k-1)
	q3 := biguint.ShrWords(biguint.Mul(q1, rg.r), k+1)

	r1 := biguint.TruncWords(x, k+1)
	// The bounded multiply ignores everything at or above word k+1; a full
	// product here would compute precision the next line throws away.
	r2 := biguint.MulTrunc(q3, rg.m, k+1)

	if r1.Cmp(r2) < 0 {
		r1.AccAdd(biguint.SetBit(biguint.Zero(), (k+1)*biguint.WordBits))
	}
	r1.AccSub(r2)

	for r1.Cmp(rg.m) >= 0 {
		r1.AccSub(rg.m)
	}
	return r1
}

// normalize brings an arbitrary magnitude below the modulus: values already
// reduced pass through, values within Barrett's input range take the fast
// path, anything wider falls back to full division.
func (rg *Ring) normalize(x *biguint.Nat) *biguint.Nat {
	if x.Cmp(rg.m) < 0 {
		return x
	}
	if x.Len() <= 2*rg.k {
		return rg.reduce(x)
	}
	return biguint.Mod(x, rg.m)
}

// Mul returns (a * b) mod m. Operands at or above the modulus are reduced
// first so the product stays inside Barrett's input range.
func (rg *Ring) Mul(a, b *biguint.Nat) *biguint.Nat {
	return rg.reduce(biguint.Mul(rg.normalize(a), rg.normalize(b)))
}

// Difference returns (a - b) mod m for arbitrary magnitudes a, b: the
// absolute difference is reduced, then reflected to m - d when a < b. Equal
// operands yield zero. This is the subtraction the extended-Euclidean
// inverse leans on, since Bézout coefficients alternate in sign.
func (rg *Ring) Difference(a, b *biguint.Nat) *biguint.Nat {
	c := a.Cmp(b)
	if c == 0 {
		return biguint.Zero()
	}
	var d *biguint.Nat
	var err error
	if c > 0 {
		d, err = biguint.Sub(a, b)
	} else {
		d, err = biguint.Sub(b, a)
	}
	if err != nil {
		// Unreachable: operand order follows the comparison above.
		panic("modring: difference underflow")
	}
	d = rg.normalize(d)
	if c < 0 && !d.IsZero() {
		d, _ = biguint.Sub(rg.m, d)
	}
	return d
}

// Pow returns base^exp mod m by square-and-multiply, consuming exponent bits
// least significant first: a running square tracks base^(2^i) and is folded
// into the accumulator at every set bit, with bit 0 seeding the accumulator.
// An exponent of zero yields 1. This is the handshake's load-bearing
// operation: cost is O(bits(exp)) ring multiplications, each O(k²).
func (rg *Ring) Pow(base, exp *biguint.Nat) *biguint.Nat {
	n := exp.BitLen()
	if n == 0 {
		return biguint.One()
	}
	square := rg.normalize(base)
	var acc *biguint.Nat
	if exp.Bit(0) == 1 {
		acc = square.Clone()
	}
	for i := 1; i < n; i++ {
		square = rg.Mul(square, square)
		if exp.Bit(i) == 1 {
			if acc == nil {
				acc = square
			} else {
				acc = rg.Mul(acc, square)
			}
		}
	}
	// The top bit of a non-zero exponent is set, so acc was assigned.
	return acc
}
