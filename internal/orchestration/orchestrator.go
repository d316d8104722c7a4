// Package orchestration coordinates the concurrent execution of modular
// exponentiation engines and the comparison of their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/cli"
	"github.com/agbru/modmath/internal/engine"
	apperrors "github.com/agbru/modmath/internal/errors"
	"github.com/agbru/modmath/internal/ui"
)

// EngineResult encapsulates the outcome of a single engine run.
// It serves as a standardized container for results from different engines,
// facilitating comparison and reporting.
type EngineResult struct {
	// Name is the identifier of the engine used (e.g., "barrett").
	Name string
	// Result is the computed value. It is nil if an error occurred.
	Result *biguint.Nat
	// Duration is the time taken to complete the computation.
	Duration time.Duration
	// Err contains any error that occurred during the computation.
	Err error
}

// ExecuteEngines runs the same modular exponentiation on every given engine
// concurrently and collects the per-engine outcomes.
//
// Engine failures are recorded in the result slice rather than aborting the
// group, so one failing engine never hides the others' results.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - engines: The engines to execute.
//   - base, exponent, modulus: The operands, shared read-only by all engines.
//
// Returns:
//   - []EngineResult: A slice containing the result of each engine, in the
//     order the engines were given.
func ExecuteEngines(ctx context.Context, engines []engine.Engine, base, exponent, modulus *biguint.Nat) []EngineResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EngineResult, len(engines))

	for i, eng := range engines {
		idx, e := i, eng
		g.Go(func() error {
			startTime := time.Now()
			res, err := e.Pow(ctx, base, exponent, modulus)
			results[idx] = EngineResult{
				Name: e.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	return results
}

// AnalyzeComparisonResults processes the results from multiple engines and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful runs, and displays a comparative table. It handles the logic for
// determining global success or failure based on the individual outcomes.
//
// Parameters:
//   - results: The slice of engine results to analyze.
//   - outputCfg: Output options for displaying the agreed result.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []EngineResult, outputCfg cli.OutputConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *EngineResult
	var firstError error
	successCount := 0

	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sEngine%s\t%sDuration%s\t%sStatus%s\n",
		theme.Bold, theme.Reset, theme.Bold, theme.Reset, theme.Bold, theme.Reset)

	for i := range results {
		res := &results[i]
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", theme.Error, res.Err, theme.Reset)
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", theme.Success, theme.Reset)
			successCount++
			if firstValid == nil {
				firstValid = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			theme.Primary, res.Name, theme.Reset,
			theme.Warning, duration, theme.Reset,
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the computation.\n")
		return apperrors.HandleComputationError(firstError, 0, out, ui.ThemeColors{})
	}

	for i := range results {
		res := &results[i]
		if res.Err == nil && res.Result.Cmp(firstValid.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the engine results.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	if err := cli.DisplayResult(out, "pow", firstValid.Name, firstValid.Result, firstValid.Duration, outputCfg); err != nil {
		fmt.Fprintf(out, "Warning: failed to display result: %v\n", err)
	}
	return apperrors.ExitSuccess
}
