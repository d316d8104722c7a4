package modmath

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"
)

// TestHandshakeScenario walks the concrete end-to-end vectors the engine
// must satisfy at its boundary.
func TestHandshakeScenario(t *testing.T) {
	// fromBytes([0x01, 0x00]) == 256
	v := FromBytes([]byte{0x01, 0x00})
	if v.String() != "256" {
		t.Fatalf("FromBytes([01 00]) = %s, want 256", v)
	}

	// pow(4, 13, 497) == 445
	got, err := Pow(context.Background(), []byte{4}, []byte{13}, []byte{0x01, 0xF1})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x01, 0xBD}) { // 445
		t.Fatalf("pow(4, 13, 497) = %x, want 01bd", got)
	}

	// gcd(48, 18) == 6
	if g := GCD(FromBytes([]byte{48}), FromBytes([]byte{18})); g.String() != "6" {
		t.Fatalf("gcd(48, 18) = %s, want 6", g)
	}

	// toString(255, 16, "0123456789ABCDEF") == "FF"
	s, err := ToString(FromBytes([]byte{255}), 16, "0123456789ABCDEF")
	if err != nil {
		t.Fatal(err)
	}
	if s != "FF" {
		t.Fatalf("toString(255, 16) = %q, want FF", s)
	}
}

func TestByteRoundTrip(t *testing.T) {
	in := []byte{0x00, 0x00, 0xDE, 0xAD, 0xBE, 0xEF, 0x42}
	out := FromBytes(in).Bytes()
	if !bytes.Equal(out, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x42}) {
		t.Fatalf("round trip = %x", out)
	}
	if got := FromBytes(nil).Bytes(); len(got) != 0 {
		t.Fatalf("zero should marshal to an empty buffer, got %x", got)
	}
}

func TestPowInvalidModulus(t *testing.T) {
	for _, mod := range [][]byte{nil, {0}, {1}} {
		if _, err := Pow(context.Background(), []byte{4}, []byte{13}, mod); !errors.Is(err, ErrInvalidModulus) {
			t.Errorf("modulus %x: got %v, want ErrInvalidModulus", mod, err)
		}
	}
}

func TestModInverse(t *testing.T) {
	m := FromBytes([]byte{97})
	inv, err := ModInverse(FromBytes([]byte{31}), m)
	if err != nil {
		t.Fatal(err)
	}
	// 31 * 72 = 2232 = 23*97 + 1
	if inv.String() != "72" {
		t.Fatalf("31^-1 mod 97 = %s, want 72", inv)
	}

	if _, err := ModInverse(FromBytes([]byte{6}), FromBytes([]byte{9})); !errors.Is(err, ErrNoInverse) {
		t.Fatalf("got %v, want ErrNoInverse", err)
	}
}

// TestSharedSecretSymmetry mirrors the Diffie-Hellman use: both sides must
// derive the same secret from each other's public values.
func TestSharedSecretSymmetry(t *testing.T) {
	ctx := context.Background()
	// RFC 2409 Oakley group 1 prime (768-bit).
	prime := FromBytes(mustHex(t,
		"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74"+
			"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437"+
			"4FE1356D6D51C245E485B576625E7EC6F44C42E9A63A3620FFFFFFFFFFFFFFFF")).Bytes()
	g := []byte{2}
	aSecret := mustHex(t, "3f2e1a0908b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b9")
	bSecret := mustHex(t, "9b8a7c6d5e4f30211203f4e5d6c7b8a9fa0b1c2d3e4f5a6b")

	aPub, err := Pow(ctx, g, aSecret, prime)
	if err != nil {
		t.Fatal(err)
	}
	bPub, err := Pow(ctx, g, bSecret, prime)
	if err != nil {
		t.Fatal(err)
	}
	s1, err := Pow(ctx, bPub, aSecret, prime)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := Pow(ctx, aPub, bSecret, prime)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatalf("shared secrets differ: %x vs %x", s1, s2)
	}
	if len(s1) == 0 {
		t.Fatal("empty shared secret")
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	out, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return out
}
