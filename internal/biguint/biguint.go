// Package biguint implements unsigned arbitrary-precision integer arithmetic
// over 32-bit word arrays. It is the kernel underlying the modular-arithmetic
// engine used by the key-exchange handshake: comparison, addition,
// subtraction, multiplication (full and truncated), Knuth-style long
// division, bit shifts, and byte/string conversions.
//
// Values are magnitudes only: there is no sign. Any operation whose true
// mathematical result would be negative fails with ErrNegativeResult instead
// of producing a value.
//
// Every value returned by an exported operation is normalized: the logical
// word length is at least 1 and the most significant stored word is non-zero
// unless the value is zero. Exported functions return fresh, independently
// owned values. The in-place "Acc" methods mutate their receiver for use in
// hot loops and require the caller to hold exclusive access to it for the
// duration of the call.
package biguint

import "errors"

// WordBits is the width of a single magnitude word.
const WordBits = 32

// ErrNegativeResult is returned when a subtraction's true result would be
// negative. Magnitudes cannot represent negative values, so this is a caller
// contract violation: ensure a >= b (via Cmp) before subtracting.
var ErrNegativeResult = errors.New("biguint: negative result")

// ErrInvalidRadix is returned by Text and Parse when the radix is smaller
// than 2 or exceeds the supplied digit alphabet.
var ErrInvalidRadix = errors.New("biguint: invalid radix")

// Nat is an unsigned arbitrary-precision integer. Words are stored least
// significant first; len(w) is the logical length and cap(w) the buffer
// capacity, which may be larger (operations reserve room for carry-out
// words).
//
// The zero value of Nat is not valid; use the constructors.
type Nat struct {
	w []uint32
}

// newNat returns an un-normalized zero-filled magnitude of exactly n words.
// Internal producers fill it and must normalize before returning it.
func newNat(n int) *Nat {
	if n < 1 {
		n = 1
	}
	return &Nat{w: make([]uint32, n)}
}

// FromUint64 constructs a magnitude holding v.
func FromUint64(v uint64) *Nat {
	if v>>WordBits == 0 {
		return &Nat{w: []uint32{uint32(v)}}
	}
	return &Nat{w: []uint32{uint32(v), uint32(v >> WordBits)}}
}

// Zero returns a fresh magnitude holding 0.
func Zero() *Nat { return &Nat{w: []uint32{0}} }

// One returns a fresh magnitude holding 1.
func One() *Nat { return &Nat{w: []uint32{1}} }

// Clone deep-copies x. The copy owns its buffer and is safe to mutate
// independently of x.
func (x *Nat) Clone() *Nat {
	w := make([]uint32, len(x.w))
	copy(w, x.w)
	return &Nat{w: w}
}

// cloneCap deep-copies x into a buffer with room for extra additional words,
// so in-place accumulation can grow without reallocating.
func (x *Nat) cloneCap(extra int) *Nat {
	w := make([]uint32, len(x.w), len(x.w)+extra)
	copy(w, x.w)
	return &Nat{w: w}
}

// norm trims insignificant leading zero words, flooring the logical length
// at 1. It returns its receiver for chaining.
func (x *Nat) norm() *Nat {
	n := len(x.w)
	for n > 1 && x.w[n-1] == 0 {
		n--
	}
	x.w = x.w[:n]
	return x
}

// grow extends the logical length to n words, zero-filling the new high
// words and reallocating only when the capacity is exhausted.
func (x *Nat) grow(n int) {
	if len(x.w) >= n {
		return
	}
	if cap(x.w) >= n {
		old := len(x.w)
		x.w = x.w[:n]
		for i := old; i < n; i++ {
			x.w[i] = 0
		}
		return
	}
	w := make([]uint32, n)
	copy(w, x.w)
	x.w = w
}

// Len returns the logical word length. It is at least 1, and the top word is
// non-zero unless the value is zero.
func (x *Nat) Len() int { return len(x.w) }

// IsZero reports whether x == 0.
func (x *Nat) IsZero() bool { return len(x.w) == 1 && x.w[0] == 0 }

// IsOne reports whether x == 1.
func (x *Nat) IsOne() bool { return len(x.w) == 1 && x.w[0] == 1 }

// Word0 returns the least significant word.
func (x *Nat) Word0() uint32 { return x.w[0] }

// Uint64 returns the low 64 bits of x.
func (x *Nat) Uint64() uint64 {
	v := uint64(x.w[0])
	if len(x.w) > 1 {
		v |= uint64(x.w[1]) << WordBits
	}
	return v
}

// Cmp compares two normalized magnitudes and returns -1, 0, or +1. It first
// compares logical lengths and, on a tie, words from most significant to
// least significant. Cmp is the single source of truth for ordering: every
// relational decision in the engine goes through it.
func (x *Nat) Cmp(y *Nat) int {
	if len(x.w) != len(y.w) {
		if len(x.w) < len(y.w) {
			return -1
		}
		return 1
	}
	for i := len(x.w) - 1; i >= 0; i-- {
		if x.w[i] != y.w[i] {
			if x.w[i] < y.w[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
