//go:build gmp

// This file provides a GMP-backed exponentiation engine, conditionally
// compiled with the "gmp" build tag. The tag keeps the default build free of
// cgo and of the libgmp system dependency; operators who want GMP's
// assembly-tuned modular exponentiation for very large groups opt in with:
//
//	go build -tags=gmp
//
// System requirements:
//   - Linux: apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp

package engine

import (
	"context"

	"github.com/ncw/gmp"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/modring"
)

func init() {
	Default().Register("gmp", func() Engine { return &GMPEngine{} })
}

// GMPEngine computes Pow through libgmp via github.com/ncw/gmp. The CGO
// call overhead dominates for small operands, but for multi-thousand-bit
// moduli GMP's mpz_powm outruns both the native ring and math/big.
type GMPEngine struct{}

// Name returns "gmp".
func (e *GMPEngine) Name() string { return "gmp" }

// Pow implements Engine, converting through the big-endian byte
// representation at the boundary.
func (e *GMPEngine) Pow(ctx context.Context, base, exponent, modulus *biguint.Nat) (*biguint.Nat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if modulus.IsZero() || modulus.IsOne() {
		return nil, modring.ErrInvalidModulus
	}
	r := new(gmp.Int).Exp(
		new(gmp.Int).SetBytes(base.Bytes()),
		new(gmp.Int).SetBytes(exponent.Bytes()),
		new(gmp.Int).SetBytes(modulus.Bytes()),
	)
	return biguint.FromBytes(r.Bytes()), nil
}
