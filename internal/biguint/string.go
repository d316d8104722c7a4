package biguint

import (
	"fmt"
	"strings"
)

// digits is the default alphabet shared by Text, String, and Parse. It
// covers every radix up to 36.
const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Text renders x in the given radix using the supplied digit alphabet,
// repeatedly dividing a working copy by the radix word and prepending each
// remainder's digit. The radix must exceed 1 (radix 1 has no positional
// meaning) and must not exceed the alphabet length; otherwise Text returns
// ErrInvalidRadix.
func (x *Nat) Text(radix int, alphabet string) (string, error) {
	if radix < 2 || radix > len(alphabet) {
		return "", ErrInvalidRadix
	}
	if x.IsZero() {
		return string(alphabet[0]), nil
	}
	tmp := x.Clone()
	buf := make([]byte, 0, x.BitLen()/4+1)
	for !tmp.IsZero() {
		buf = append(buf, alphabet[tmp.AccDivWord(uint32(radix))])
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// String renders x in decimal. Debug use only; the wire format is Bytes.
func (x *Nat) String() string {
	s, _ := x.Text(10, digits)
	return s
}

// Hex renders x in lowercase hexadecimal.
func (x *Nat) Hex() string {
	s, _ := x.Text(16, digits)
	return s
}

// Parse interprets s as an unsigned integer in the given radix (2 to 36,
// case-insensitive digits). It returns ErrInvalidRadix for an unsupported
// radix and a descriptive error for a malformed string.
func Parse(s string, radix int) (*Nat, error) {
	if radix < 2 || radix > len(digits) {
		return nil, ErrInvalidRadix
	}
	if s == "" {
		return nil, errEmptyNumber
	}
	// Each digit contributes at most 6 bits (radix <= 36), so reserving
	// capacity up front keeps accMulAddWord from reallocating per digit.
	z := Zero().cloneCap(len(s)*6/WordBits + 1)
	for _, r := range strings.ToLower(s) {
		d := strings.IndexRune(digits[:radix], r)
		if d < 0 {
			return nil, &SyntaxError{Input: s, Radix: radix}
		}
		z.accMulAddWord(uint32(radix), uint32(d))
	}
	return z, nil
}

var errEmptyNumber = &SyntaxError{Input: ""}

// SyntaxError reports a malformed numeric string passed to Parse.
type SyntaxError struct {
	Input string
	Radix int
}

func (e *SyntaxError) Error() string {
	if e.Input == "" {
		return "biguint: empty number"
	}
	return fmt.Sprintf("biguint: invalid base-%d digit in %q", e.Radix, e.Input)
}
