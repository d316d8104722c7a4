// Package engine exposes modular exponentiation behind a small Engine
// interface so interchangeable implementations can back the same entry
// point: the native Barrett-reduction ring (default), a math/big reference
// used for cross-checking, and an optional GMP-backed engine behind the
// `gmp` build tag. A registry hands out shared instances by name and an
// instrumentation decorator adds metrics, tracing, and structured logging
// around every call.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/modring"
)

// Engine computes base^exponent mod modulus. Implementations must be safe
// for concurrent use as long as callers supply distinct operand values, and
// must never mutate their operands.
type Engine interface {
	// Pow returns base^exponent mod modulus as a fresh magnitude. The
	// context is consulted before work begins; the arithmetic itself is
	// synchronous and runs to completion.
	Pow(ctx context.Context, base, exponent, modulus *biguint.Nat) (*biguint.Nat, error)

	// Name returns the engine's registry name.
	Name() string
}

// BarrettEngine is the native engine: a modring.Ring per modulus, with the
// most recent ring cached since the handshake protocol exponentiates against
// one fixed prime for every negotiation.
type BarrettEngine struct {
	mu   sync.Mutex
	ring *modring.Ring
}

// NewBarrettEngine returns the native Barrett-reduction engine.
func NewBarrettEngine() *BarrettEngine { return &BarrettEngine{} }

// Name returns "barrett".
func (e *BarrettEngine) Name() string { return "barrett" }

// Pow implements Engine using the cached ring when the modulus matches the
// previous call, rebuilding it otherwise.
func (e *BarrettEngine) Pow(ctx context.Context, base, exponent, modulus *biguint.Nat) (*biguint.Nat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ring, err := e.ringFor(modulus)
	if err != nil {
		return nil, err
	}
	return ring.Pow(base, exponent), nil
}

func (e *BarrettEngine) ringFor(modulus *biguint.Nat) (*modring.Ring, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ring != nil && e.ring.Modulus().Cmp(modulus) == 0 {
		return e.ring, nil
	}
	ring, err := modring.New(modulus)
	if err != nil {
		return nil, fmt.Errorf("engine: building ring: %w", err)
	}
	e.ring = ring
	return ring, nil
}
