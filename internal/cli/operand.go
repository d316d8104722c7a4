// Package cli provides functions for building the command-line interface of
// the modmath application. It handles operand parsing, the asynchronous
// display of computation progress, and formats the results for a clear and
// readable presentation.
package cli

import (
	"strings"

	"github.com/agbru/modmath/internal/biguint"
	apperrors "github.com/agbru/modmath/internal/errors"
)

// ParseOperand converts a command-line operand into a natural number.
// Operands are decimal by default; a "0x" or "0X" prefix selects
// hexadecimal. Underscores may be used as digit separators.
//
// Parameters:
//   - field: The flag name, used in error messages.
//   - value: The operand text.
//
// Returns:
//   - *biguint.Nat: The parsed number.
//   - error: A ValidationError if the text is not a valid number.
func ParseOperand(field, value string) (*biguint.Nat, error) {
	s := strings.ReplaceAll(value, "_", "")
	radix := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		radix = 16
	}
	if s == "" {
		return nil, apperrors.NewValidationError(field, "operand is empty", value)
	}
	n, err := biguint.Parse(s, radix)
	if err != nil {
		return nil, apperrors.NewValidationError(field, "must be a decimal or 0x-prefixed hex number", value)
	}
	return n, nil
}
