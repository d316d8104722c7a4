package engine

import (
	"context"

	"github.com/agbru/modmath/internal/biguint"
)

// MockEngine is a canned Engine for tests in this and other packages: it
// returns the pre-configured Result and Err, or delegates to Fn when set.
type MockEngine struct {
	EngineName string
	Result     *biguint.Nat
	Err        error
	Fn         func(ctx context.Context, base, exponent, modulus *biguint.Nat) (*biguint.Nat, error)

	Calls int
}

// Name returns the configured name, defaulting to "mock".
func (m *MockEngine) Name() string {
	if m.EngineName == "" {
		return "mock"
	}
	return m.EngineName
}

// Pow returns the canned result or runs Fn.
func (m *MockEngine) Pow(ctx context.Context, base, exponent, modulus *biguint.Nat) (*biguint.Nat, error) {
	m.Calls++
	if m.Fn != nil {
		return m.Fn(ctx, base, exponent, modulus)
	}
	return m.Result, m.Err
}
