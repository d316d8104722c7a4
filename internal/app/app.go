package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/cli"
	"github.com/agbru/modmath/internal/config"
	"github.com/agbru/modmath/internal/engine"
	apperrors "github.com/agbru/modmath/internal/errors"
	"github.com/agbru/modmath/internal/logging"
	"github.com/agbru/modmath/internal/numtheory"
	"github.com/agbru/modmath/internal/orchestration"
	"github.com/agbru/modmath/internal/server"
	"github.com/agbru/modmath/internal/ui"
)

// textAlphabet is the digit alphabet used by the str operation.
const textAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Application represents the modmath application instance.
// It encapsulates the configuration and provides methods to run the
// configured operation.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Registry provides access to the exponentiation engines.
	Registry *engine.Registry
	// Logger is the structured logger for operational records.
	Logger logging.Logger
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	registry := engine.Default()

	programName := "modmath"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, registry.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Registry:  registry,
		Logger:    logging.NewLogger(os.Stderr, "modmath", cfg.Verbose, cfg.Quiet),
		ErrWriter: errWriter,
	}, nil
}

// Run executes the configured operation and returns the process exit code.
// It installs the timeout and signal lifecycle, optionally serves the
// metrics endpoint for the duration of the run, and dispatches on the
// operation name.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	// The metrics endpoint lives exactly as long as the computation.
	var metricsDone chan error
	metricsCtx, stopMetrics := context.WithCancel(ctx)
	defer stopMetrics()
	if a.Config.MetricsListen != "" {
		srv := server.NewMetricsServer(a.Config.MetricsListen, server.WithLogger(a.Logger))
		metricsDone = make(chan error, 1)
		go func() { metricsDone <- srv.ListenAndServe(metricsCtx) }()
	}

	code := a.dispatch(ctx, out)

	stopMetrics()
	if metricsDone != nil {
		if err := <-metricsDone; err != nil {
			a.Logger.Error("metrics server terminated abnormally", err)
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	return code
}

func (a *Application) dispatch(ctx context.Context, out io.Writer) int {
	switch a.Config.Op {
	case config.OpPow:
		return a.runPow(ctx, out)
	case config.OpGCD:
		return a.runGCD(ctx, out)
	case config.OpInv:
		return a.runInv(ctx, out)
	case config.OpStr:
		return a.runStr(out)
	case config.OpSelfTest:
		return a.runSelfTest(ctx, out)
	default:
		// Validate rejects unknown operations before dispatch.
		fmt.Fprintf(a.ErrWriter, "unknown operation: %s\n", a.Config.Op)
		return apperrors.ExitErrorConfig
	}
}

// outputConfig builds the CLI output options from the configuration.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		JSON:      a.Config.JSONOutput,
		Quiet:     a.Config.Quiet,
		HexOutput: a.Config.HexOutput,
		Verbose:   a.Config.Verbose,
	}
}

// enginesToRun resolves the -engine flag to concrete engine instances.
func (a *Application) enginesToRun() ([]engine.Engine, error) {
	names := []string{a.Config.Engine}
	if a.Config.Engine == "all" {
		names = a.Registry.List()
	}
	engines := make([]engine.Engine, 0, len(names))
	for _, name := range names {
		e, err := a.Registry.Get(name)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	return engines, nil
}

func (a *Application) runPow(ctx context.Context, out io.Writer) int {
	base, err := cli.ParseOperand("base", a.Config.Base)
	if err != nil {
		return a.configFailure(err)
	}
	exp, err := cli.ParseOperand("exp", a.Config.Exp)
	if err != nil {
		return a.configFailure(err)
	}
	mod, err := cli.ParseOperand("mod", a.Config.Mod)
	if err != nil {
		return a.configFailure(err)
	}

	engines, err := a.enginesToRun()
	if err != nil {
		return a.configFailure(err)
	}

	stop := cli.StartProgress(out, "computing modular exponentiation...", a.Config.Quiet || a.Config.JSONOutput)
	results := orchestration.ExecuteEngines(ctx, engines, base, exp, mod)
	stop()

	if len(results) > 1 {
		return orchestration.AnalyzeComparisonResults(results, a.outputConfig(), out)
	}

	res := results[0]
	if res.Err != nil {
		a.Logger.Error("pow failed", res.Err, logging.String("engine", res.Name))
		return apperrors.HandleComputationError(res.Err, res.Duration, a.ErrWriter, ui.ThemeColors{})
	}
	a.Logger.Debug("pow complete",
		logging.String("engine", res.Name),
		logging.Int("result_bits", res.Result.BitLen()),
		logging.Dur("elapsed", res.Duration))
	if err := cli.DisplayResult(out, config.OpPow, res.Name, res.Result, res.Duration, a.outputConfig()); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runGCD(ctx context.Context, out io.Writer) int {
	x, err := cli.ParseOperand("a", a.Config.A)
	if err != nil {
		return a.configFailure(err)
	}
	y, err := cli.ParseOperand("b", a.Config.B)
	if err != nil {
		return a.configFailure(err)
	}
	if err := ctx.Err(); err != nil {
		return apperrors.HandleComputationError(err, 0, a.ErrWriter, ui.ThemeColors{})
	}

	start := time.Now()
	g := numtheory.GCD(x, y)
	if err := cli.DisplayResult(out, config.OpGCD, "", g, time.Since(start), a.outputConfig()); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runInv(ctx context.Context, out io.Writer) int {
	x, err := cli.ParseOperand("a", a.Config.A)
	if err != nil {
		return a.configFailure(err)
	}
	mod, err := cli.ParseOperand("mod", a.Config.Mod)
	if err != nil {
		return a.configFailure(err)
	}
	if err := ctx.Err(); err != nil {
		return apperrors.HandleComputationError(err, 0, a.ErrWriter, ui.ThemeColors{})
	}

	start := time.Now()
	inv, err := numtheory.ModInverse(x, mod)
	if err != nil {
		wrapped := apperrors.NewMathError(config.OpInv, err)
		a.Logger.Error("inverse failed", wrapped)
		return apperrors.HandleComputationError(wrapped, time.Since(start), a.ErrWriter, ui.ThemeColors{})
	}
	if err := cli.DisplayResult(out, config.OpInv, "", inv, time.Since(start), a.outputConfig()); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runStr(out io.Writer) int {
	x, err := cli.ParseOperand("a", a.Config.A)
	if err != nil {
		return a.configFailure(err)
	}

	start := time.Now()
	text, err := x.Text(a.Config.Radix, textAlphabet)
	if err != nil {
		wrapped := apperrors.NewMathError(config.OpStr, err)
		return apperrors.HandleComputationError(wrapped, time.Since(start), a.ErrWriter, ui.ThemeColors{})
	}
	if err := cli.DisplayText(out, config.OpStr, text, time.Since(start), a.outputConfig()); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) configFailure(err error) int {
	fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
	return apperrors.ExitErrorConfig
}

// IsHelpError checks if the error is a help flag error (-h was used).
// The caller should exit with success after help text has been displayed.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// selfTestVector is a known-answer exponentiation checked by -op selftest.
type selfTestVector struct {
	name           string
	base, exp, mod uint64
	expected       uint64
}

var selfTestVectors = []selfTestVector{
	{"small prime modulus", 4, 13, 497, 445},
	{"fermat little theorem", 7, 96, 97, 1},
	{"base larger than modulus", 1000, 3, 7, 6},
	{"exponent zero", 12345, 0, 1000003, 1},
	{"modulus two", 9, 9, 2, 1},
}

// runSelfTest runs the known-answer vectors through every registered engine
// and compares the outcomes. It is the install-check mode: a failure means
// the build's arithmetic cannot be trusted.
func (a *Application) runSelfTest(ctx context.Context, out io.Writer) int {
	theme := ui.GetCurrentTheme()

	names := a.Registry.List()
	engines := make([]engine.Engine, 0, len(names))
	for _, name := range names {
		e, err := a.Registry.Get(name)
		if err != nil {
			return a.configFailure(err)
		}
		engines = append(engines, e)
	}

	failures := 0
	for _, vec := range selfTestVectors {
		base := biguint.FromUint64(vec.base)
		exp := biguint.FromUint64(vec.exp)
		mod := biguint.FromUint64(vec.mod)
		expected := biguint.FromUint64(vec.expected)

		results := orchestration.ExecuteEngines(ctx, engines, base, exp, mod)
		for _, res := range results {
			switch {
			case res.Err != nil:
				failures++
				fmt.Fprintf(out, "%s✗%s %s/%s: %v\n", theme.Error, theme.Reset, vec.name, res.Name, res.Err)
			case res.Result.Cmp(expected) != 0:
				failures++
				fmt.Fprintf(out, "%s✗%s %s/%s: got %s, want %s\n", theme.Error, theme.Reset, vec.name, res.Name, res.Result, expected)
			default:
				if !a.Config.Quiet {
					fmt.Fprintf(out, "%s✓%s %s/%s\n", theme.Success, theme.Reset, vec.name, res.Name)
				}
			}
		}
	}

	// Number-theory vectors exercise the non-engine operations.
	if g := numtheory.GCD(biguint.FromUint64(48), biguint.FromUint64(18)); g.Cmp(biguint.FromUint64(6)) != 0 {
		failures++
		fmt.Fprintf(out, "%s✗%s gcd(48,18): got %s, want 6\n", theme.Error, theme.Reset, g)
	}
	if inv, err := numtheory.ModInverse(biguint.FromUint64(31), biguint.FromUint64(97)); err != nil || inv.Cmp(biguint.FromUint64(72)) != 0 {
		failures++
		fmt.Fprintf(out, "%s✗%s inv(31 mod 97): got %v (%v), want 72\n", theme.Error, theme.Reset, inv, err)
	}
	if text, err := biguint.FromUint64(255).Text(16, textAlphabet); err != nil || text != "ff" {
		failures++
		fmt.Fprintf(out, "%s✗%s text(255,16): got %q (%v), want \"ff\"\n", theme.Error, theme.Reset, text, err)
	}

	if failures > 0 {
		fmt.Fprintf(out, "\nSelf-test: %s%d failure(s)%s\n", theme.Error, failures, theme.Reset)
		return apperrors.ExitErrorMismatch
	}
	fmt.Fprintf(out, "\nSelf-test: %sall checks passed%s (%d engines)\n", theme.Success, theme.Reset, len(engines))
	return apperrors.ExitSuccess
}
