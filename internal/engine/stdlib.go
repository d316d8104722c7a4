package engine

import (
	"context"
	"math/big"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/modring"
)

// StdlibEngine computes Pow through math/big. It exists as an independently
// implemented oracle: the CLI's compare and self-test modes run it next to
// the Barrett engine and fail loudly on any disagreement.
type StdlibEngine struct{}

// NewStdlibEngine returns the math/big reference engine.
func NewStdlibEngine() *StdlibEngine { return &StdlibEngine{} }

// Name returns "stdlib".
func (e *StdlibEngine) Name() string { return "stdlib" }

// Pow implements Engine via big.Int.Exp, converting through the big-endian
// byte representation at the boundary.
func (e *StdlibEngine) Pow(ctx context.Context, base, exponent, modulus *biguint.Nat) (*biguint.Nat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if modulus.IsZero() || modulus.IsOne() {
		return nil, modring.ErrInvalidModulus
	}
	r := new(big.Int).Exp(
		new(big.Int).SetBytes(base.Bytes()),
		new(big.Int).SetBytes(exponent.Bytes()),
		new(big.Int).SetBytes(modulus.Bytes()),
	)
	return biguint.FromBytes(r.Bytes()), nil
}
