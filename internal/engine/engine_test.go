package engine

import (
	"context"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/modring"
)

func TestEnginesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(60))
	reg := NewRegistry()
	ctx := context.Background()
	for i := 0; i < 200; i++ {
		m := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 256))
		if m.Cmp(big.NewInt(2)) < 0 {
			m.SetInt64(2)
		}
		base := new(big.Int).Rand(rng, m)
		exp := new(big.Int).Rand(rng, m)

		var prev *biguint.Nat
		for _, name := range reg.List() {
			e, err := reg.Get(name)
			if err != nil {
				t.Fatal(err)
			}
			got, err := e.Pow(ctx,
				biguint.FromBytes(base.Bytes()),
				biguint.FromBytes(exp.Bytes()),
				biguint.FromBytes(m.Bytes()))
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if prev != nil && got.Cmp(prev) != 0 {
				t.Fatalf("engine %s disagrees: %s vs %s", name, got, prev)
			}
			prev = got
		}
	}
}

func TestBarrettEngineRingCache(t *testing.T) {
	e := NewBarrettEngine()
	ctx := context.Background()
	m := biguint.FromUint64(497)
	if _, err := e.Pow(ctx, biguint.FromUint64(4), biguint.FromUint64(13), m); err != nil {
		t.Fatal(err)
	}
	cached := e.ring
	if _, err := e.Pow(ctx, biguint.FromUint64(5), biguint.FromUint64(3), m); err != nil {
		t.Fatal(err)
	}
	if e.ring != cached {
		t.Error("ring was rebuilt for an unchanged modulus")
	}
	if _, err := e.Pow(ctx, biguint.FromUint64(5), biguint.FromUint64(3), biguint.FromUint64(499)); err != nil {
		t.Fatal(err)
	}
	if e.ring == cached {
		t.Error("ring was not rebuilt for a new modulus")
	}
}

func TestEngineRejectsBadModulus(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"barrett", "stdlib"} {
		e, err := Default().Get(name)
		if err != nil {
			t.Fatal(err)
		}
		_, err = e.Pow(ctx, biguint.FromUint64(4), biguint.FromUint64(13), biguint.One())
		if !errors.Is(err, modring.ErrInvalidModulus) {
			t.Errorf("%s: got %v, want ErrInvalidModulus", name, err)
		}
	}
}

func TestEngineHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e, _ := Default().Get("barrett")
	if _, err := e.Pow(ctx, biguint.FromUint64(4), biguint.FromUint64(13), biguint.FromUint64(497)); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("no-such-engine"); err == nil {
		t.Error("unknown engine did not error")
	}

	names := reg.List()
	if len(names) < 2 {
		t.Fatalf("expected at least barrett and stdlib, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("List not sorted: %v", names)
		}
	}

	// Instances are shared.
	a, _ := reg.Get("barrett")
	b, _ := reg.Get("barrett")
	if a != b {
		t.Error("Get returned distinct instances for the same name")
	}

	// Registration replaces and invalidates the cache.
	mock := &MockEngine{EngineName: "barrett", Result: biguint.One()}
	reg.Register("barrett", func() Engine { return mock })
	c, _ := reg.Get("barrett")
	if c == a {
		t.Error("Register did not invalidate the cached instance")
	}
}

func TestInstrumentedPassesThrough(t *testing.T) {
	want := biguint.FromUint64(445)
	mock := &MockEngine{Result: want}
	e := Instrument(mock)
	got, err := e.Pow(context.Background(), biguint.FromUint64(4), biguint.FromUint64(13), biguint.FromUint64(497))
	if err != nil || got.Cmp(want) != 0 {
		t.Fatalf("got (%v, %v), want (%v, nil)", got, err, want)
	}
	if mock.Calls != 1 {
		t.Errorf("inner engine called %d times", mock.Calls)
	}
	if e.Name() != "mock" {
		t.Errorf("Name = %q", e.Name())
	}
}
