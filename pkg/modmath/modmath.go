// Package modmath is the boundary surface of the arithmetic engine: the
// operations the surrounding peer-to-peer handshake code consumes. It moves
// values across the wire format (big-endian byte buffers), performs the
// load-bearing modular exponentiation, and exposes GCD and modular inverse
// for key-pair validation. Everything else (the word-array kernel, the
// Barrett ring) is internal composition detail.
package modmath

import (
	"context"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/engine"
	"github.com/agbru/modmath/internal/modring"
	"github.com/agbru/modmath/internal/numtheory"
)

// ErrNoInverse reports that ModInverse was asked for an inverse that does
// not exist (gcd(a, m) != 1). Handshake callers treat it as a malformed or
// adversarial parameter and abort the exchange.
var ErrNoInverse = numtheory.ErrNoInverse

// ErrInvalidModulus reports a modulus smaller than 2.
var ErrInvalidModulus = modring.ErrInvalidModulus

// ErrNegativeResult reports a subtraction whose true result would be
// negative; the engine is unsigned-magnitude only.
var ErrNegativeResult = biguint.ErrNegativeResult

// Num is an unsigned arbitrary-precision integer, opaque to callers. Values
// are immutable through this API: every operation returns a fresh Num.
type Num struct {
	nat *biguint.Nat
}

// FromBytes interprets a big-endian byte buffer as a Num. The buffer length
// need not be a multiple of 4; an empty buffer is zero.
func FromBytes(b []byte) Num {
	return Num{nat: biguint.FromBytes(b)}
}

// Bytes returns the minimal big-endian representation of n: no redundant
// leading zero bytes, and an empty buffer for zero.
func (n Num) Bytes() []byte { return n.nat.Bytes() }

// Cmp returns -1, 0, or +1 as n is less than, equal to, or greater than
// other.
func (n Num) Cmp(other Num) int { return n.nat.Cmp(other.nat) }

// BitLen returns the length of n in bits; zero for the value 0.
func (n Num) BitLen() int { return n.nat.BitLen() }

// String renders n in decimal, for logs and debugging only.
func (n Num) String() string { return n.nat.String() }

// ToString renders n in the given radix using the supplied digit alphabet.
// The radix must exceed 1 and must not exceed the alphabet length.
func ToString(n Num, radix int, alphabet string) (string, error) {
	return n.nat.Text(radix, alphabet)
}

// Pow computes base^exponent mod modulus over big-endian byte buffers, the
// exact shape of the key-exchange call site: public values arrive in wire
// messages and the shared secret goes back into one. The modulus must be
// greater than 1. The context gates only the start of the computation; the
// arithmetic runs to completion once begun.
func Pow(ctx context.Context, base, exponent, modulus []byte) ([]byte, error) {
	e, err := engine.Default().Get("barrett")
	if err != nil {
		return nil, err
	}
	r, err := e.Pow(ctx, biguint.FromBytes(base), biguint.FromBytes(exponent), biguint.FromBytes(modulus))
	if err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b Num) Num {
	return Num{nat: numtheory.GCD(a.nat, b.nat)}
}

// ModInverse returns x with (a * x) mod m == 1, or ErrNoInverse when
// gcd(a, m) != 1.
func ModInverse(a, m Num) (Num, error) {
	inv, err := numtheory.ModInverse(a.nat, m.nat)
	if err != nil {
		return Num{}, err
	}
	return Num{nat: inv}, nil
}
