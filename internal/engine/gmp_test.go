//go:build gmp

package engine

import (
	"context"
	"math/big"
	"math/rand"
	"testing"

	"github.com/agbru/modmath/internal/biguint"
)

// TestGMPEngineAgreesWithBarrett cross-checks the cgo-backed engine against
// the native one. Runs only under -tags=gmp.
func TestGMPEngineAgreesWithBarrett(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	gmpEng, err := Default().Get("gmp")
	if err != nil {
		t.Fatal(err)
	}
	barrett, _ := Default().Get("barrett")
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		m := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 512))
		if m.Cmp(big.NewInt(2)) < 0 {
			m.SetInt64(2)
		}
		base := new(big.Int).Rand(rng, m)
		exp := new(big.Int).Rand(rng, m)
		bn, en, mn := biguint.FromBytes(base.Bytes()), biguint.FromBytes(exp.Bytes()), biguint.FromBytes(m.Bytes())

		a, err := gmpEng.Pow(ctx, bn, en, mn)
		if err != nil {
			t.Fatal(err)
		}
		b, err := barrett.Pow(ctx, bn, en, mn)
		if err != nil {
			t.Fatal(err)
		}
		if a.Cmp(b) != 0 {
			t.Fatalf("gmp %s != barrett %s", a, b)
		}
	}
}
