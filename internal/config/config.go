// Package config provides the configuration management for the modmath
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/modmath/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by modmath.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "MODMATH_"
)

// Operation names accepted by the -op flag.
const (
	OpPow      = "pow"
	OpGCD      = "gcd"
	OpInv      = "inv"
	OpStr      = "str"
	OpSelfTest = "selftest"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultOp is the default operation.
	DefaultOp = OpPow
	// DefaultTimeout is the default computation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultEngine is the default engine selection.
	DefaultEngine = "barrett"
	// DefaultRadix is the default radix for the str operation.
	DefaultRadix = 10
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the operands to the engine selection.
type AppConfig struct {
	// Op is the operation to perform: pow, gcd, inv, str or selftest.
	Op string
	// Base is the base operand for pow, as a decimal or 0x-prefixed hex string.
	Base string
	// Exp is the exponent operand for pow.
	Exp string
	// Mod is the modulus operand for pow and inv.
	Mod string
	// A is the first operand for gcd, the operand for inv and str.
	A string
	// B is the second operand for gcd.
	B string
	// Radix is the target radix for the str operation (2 to 36).
	Radix int
	// Engine selects the exponentiation engine: a registered engine name,
	// or "all" to run every engine and compare results.
	Engine string
	// Timeout sets the maximum duration for the computation.
	Timeout time.Duration
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Quiet mode suppresses the spinner and informational messages.
	Quiet bool
	// HexOutput, if true, displays the result in hexadecimal format.
	HexOutput bool
	// Verbose enables debug-level logging.
	Verbose bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// MetricsListen, if non-empty, serves Prometheus metrics on this address
	// for the lifetime of the process.
	MetricsListen string
}

// operandFlags maps each operation to the operand flags it requires.
var operandFlags = map[string][]string{
	OpPow:      {"base", "exp", "mod"},
	OpGCD:      {"a", "b"},
	OpInv:      {"a", "mod"},
	OpStr:      {"a"},
	OpSelfTest: nil,
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures the operation is known, its operands are present, and the chosen
// engine is registered.
//
// Parameters:
//   - availableEngines: A slice of strings listing the valid engine names
//     (e.g., ["barrett", "stdlib"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}

	required, ok := operandFlags[c.Op]
	if !ok {
		return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: pow, gcd, inv, str, selftest", c.Op)
	}
	values := map[string]string{"base": c.Base, "exp": c.Exp, "mod": c.Mod, "a": c.A, "b": c.B}
	for _, name := range required {
		if values[name] == "" {
			return apperrors.NewConfigError("operation '%s' requires the -%s flag", c.Op, name)
		}
	}

	if c.Op == OpStr && (c.Radix < 2 || c.Radix > 36) {
		return apperrors.NewConfigError("radix must be between 2 and 36, got %d", c.Radix)
	}

	if c.Engine != "all" {
		found := false
		for _, e := range availableEngines {
			if e == c.Engine {
				found = true
				break
			}
		}
		if !found {
			return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: 'all' or [%s]", c.Engine, strings.Join(availableEngines, ", "))
		}
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it applies environment
// variable overrides and validates the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableEngines: A slice of valid engine names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Engine to use: 'all' or one of [%s].", strings.Join(availableEngines, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", DefaultOp, "Operation to perform: pow, gcd, inv, str or selftest.")
	fs.StringVar(&config.Base, "base", "", "Base operand (decimal or 0x-prefixed hex).")
	fs.StringVar(&config.Exp, "exp", "", "Exponent operand (decimal or 0x-prefixed hex).")
	fs.StringVar(&config.Mod, "mod", "", "Modulus operand (decimal or 0x-prefixed hex, must be > 1).")
	fs.StringVar(&config.A, "a", "", "First operand for gcd, operand for inv and str.")
	fs.StringVar(&config.B, "b", "", "Second operand for gcd.")
	fs.IntVar(&config.Radix, "radix", DefaultRadix, "Target radix for the str operation (2 to 36).")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the computation.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.HexOutput, "hex", false, "Display result in hexadecimal format.")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug-level logging.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.MetricsListen, "metrics-listen", "", "Address to serve Prometheus metrics on (empty disables).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Op = strings.ToLower(config.Op)
	config.Engine = strings.ToLower(config.Engine)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
