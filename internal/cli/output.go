package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/ui"
)

const (
	// TruncationLimit is the digit threshold from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
)

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.GetCurrentTheme().Reset }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.GetCurrentTheme().Warning }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.GetCurrentTheme().Bold }

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// JSON outputs the result as a single JSON object.
	JSON bool
	// Quiet prints only the result value, for scripting.
	Quiet bool
	// HexOutput renders the result in hexadecimal.
	HexOutput bool
	// Verbose prints the full value regardless of size.
	Verbose bool
}

// jsonResult is the machine-readable result record emitted with -json.
type jsonResult struct {
	Op         string `json:"op"`
	Engine     string `json:"engine,omitempty"`
	Result     string `json:"result"`
	Bits       int    `json:"bits"`
	DurationMS int64  `json:"duration_ms"`
}

// renderValue renders the result in the configured radix.
func renderValue(result *biguint.Nat, hexOutput bool) string {
	if hexOutput {
		return "0x" + result.Hex()
	}
	return result.String()
}

// DisplayResult formats and prints the final result of an operation.
// It provides different levels of detail based on the output configuration:
// a bare value in quiet mode, a JSON record in JSON mode, and a colorized
// human-readable report otherwise. For very large numbers, the report
// truncates the value unless verbose is set.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - op: The operation name ("pow", "gcd", ...).
//   - engine: The engine that produced the result (may be empty).
//   - result: The computed value.
//   - duration: The time taken for the computation.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if JSON encoding fails.
func DisplayResult(out io.Writer, op, engine string, result *biguint.Nat, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		fmt.Fprintln(out, renderValue(result, config.HexOutput))
		return nil
	}

	if config.JSON {
		enc := json.NewEncoder(out)
		return enc.Encode(jsonResult{
			Op:         op,
			Engine:     engine,
			Result:     renderValue(result, config.HexOutput),
			Bits:       result.BitLen(),
			DurationMS: duration.Milliseconds(),
		})
	}

	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}
	fmt.Fprintf(out, "Result binary size : %s%s%s bits\n", ColorCyan(), formatNumberString(fmt.Sprintf("%d", result.BitLen())), ColorReset())
	fmt.Fprintf(out, "Computation time   : %s%s%s\n", ColorGreen(), durationStr, ColorReset())

	valueStr := renderValue(result, config.HexOutput)
	fmt.Fprintf(out, "\n%s--- Result (%s) ---%s\n", ColorBold(), op, ColorReset())
	if !config.Verbose && len(valueStr) > TruncationLimit {
		fmt.Fprintf(out, "%s%s...%s%s (truncated)\n",
			ColorGreen(), valueStr[:DisplayEdges], valueStr[len(valueStr)-DisplayEdges:], ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ColorYellow(), ColorReset())
	} else {
		fmt.Fprintf(out, "%s%s%s\n", ColorGreen(), valueStr, ColorReset())
	}
	return nil
}

// DisplayText prints a rendered string result, as produced by the str
// operation. The radix rendering is done by the caller; this only handles
// the output modes.
func DisplayText(out io.Writer, op, value string, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		fmt.Fprintln(out, value)
		return nil
	}
	if config.JSON {
		enc := json.NewEncoder(out)
		return enc.Encode(jsonResult{Op: op, Result: value, DurationMS: duration.Milliseconds()})
	}
	fmt.Fprintf(out, "%s--- Result (%s) ---%s\n%s%s%s\n", ColorBold(), op, ColorReset(), ColorGreen(), value, ColorReset())
	return nil
}

// formatNumberString inserts thousand separators into a numeric string.
func formatNumberString(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeparators := (n - 1) / 3
	var builder strings.Builder
	builder.Grow(n + numSeparators)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])

	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
