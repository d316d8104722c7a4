// Package config provides the configuration management for the modmath
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given
// key (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false
// (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as time.Duration, or the default value
// if not set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - MODMATH_OP: Operation to perform (string: pow, gcd, inv, str, selftest)
//   - MODMATH_BASE, MODMATH_EXP, MODMATH_MOD: pow operands (string)
//   - MODMATH_A, MODMATH_B: gcd/inv/str operands (string)
//   - MODMATH_RADIX: Target radix for str (int)
//   - MODMATH_ENGINE: Engine to use (string: barrett, stdlib, all)
//   - MODMATH_TIMEOUT: Computation timeout (duration: "5m", "30s")
//   - MODMATH_JSON: Enable JSON output (bool: true/false, 1/0, yes/no)
//   - MODMATH_QUIET: Enable quiet mode (bool)
//   - MODMATH_HEX: Enable hexadecimal output (bool)
//   - MODMATH_VERBOSE: Enable debug logging (bool)
//   - MODMATH_NO_COLOR: Disable colored output (bool)
//   - MODMATH_METRICS_LISTEN: Metrics listen address (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyStringOverrides(config, fs)
	applyNumericOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "op") {
		config.Op = getEnvString("OP", config.Op)
	}
	if !isFlagSet(fs, "base") {
		config.Base = getEnvString("BASE", config.Base)
	}
	if !isFlagSet(fs, "exp") {
		config.Exp = getEnvString("EXP", config.Exp)
	}
	if !isFlagSet(fs, "mod") {
		config.Mod = getEnvString("MOD", config.Mod)
	}
	if !isFlagSet(fs, "a") {
		config.A = getEnvString("A", config.A)
	}
	if !isFlagSet(fs, "b") {
		config.B = getEnvString("B", config.B)
	}
	if !isFlagSet(fs, "engine") {
		config.Engine = getEnvString("ENGINE", config.Engine)
	}
	if !isFlagSet(fs, "metrics-listen") {
		config.MetricsListen = getEnvString("METRICS_LISTEN", config.MetricsListen)
	}
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "radix") {
		config.Radix = getEnvInt("RADIX", config.Radix)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "hex") {
		config.HexOutput = getEnvBool("HEX", config.HexOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
