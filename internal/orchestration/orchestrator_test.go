package orchestration

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/modmath/internal/biguint"
	"github.com/agbru/modmath/internal/cli"
	"github.com/agbru/modmath/internal/engine"
	apperrors "github.com/agbru/modmath/internal/errors"
	"github.com/agbru/modmath/internal/ui"
)

func withoutColors(t *testing.T) {
	t.Helper()
	original := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(original) })
}

func TestExecuteEngines(t *testing.T) {
	t.Parallel()
	base := biguint.FromUint64(4)
	exp := biguint.FromUint64(13)
	mod := biguint.FromUint64(497)
	want := biguint.FromUint64(445)

	engines := []engine.Engine{
		&engine.MockEngine{EngineName: "first", Result: want},
		&engine.MockEngine{EngineName: "second", Result: want},
	}

	results := ExecuteEngines(context.Background(), engines, base, exp, mod)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "first" || results[1].Name != "second" {
		t.Errorf("results should keep engine order: %s, %s", results[0].Name, results[1].Name)
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("engine %s unexpected error: %v", res.Name, res.Err)
		}
		if res.Result.Cmp(want) != 0 {
			t.Errorf("engine %s result = %s, want %s", res.Name, res.Result, want)
		}
	}
}

func TestExecuteEnginesCollectsFailures(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	engines := []engine.Engine{
		&engine.MockEngine{EngineName: "ok", Result: biguint.FromUint64(1)},
		&engine.MockEngine{EngineName: "bad", Err: boom},
	}

	results := ExecuteEngines(context.Background(), engines,
		biguint.FromUint64(2), biguint.FromUint64(3), biguint.FromUint64(5))

	if results[0].Err != nil {
		t.Errorf("ok engine should succeed, got %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("bad engine error = %v, want %v", results[1].Err, boom)
	}
}

func TestExecuteEnginesRunsConcurrently(t *testing.T) {
	t.Parallel()
	// An unbuffered rendezvous only completes if both engines run at once.
	rendezvous := make(chan struct{})
	one := biguint.FromUint64(1)
	sender := func(ctx context.Context, base, exp, mod *biguint.Nat) (*biguint.Nat, error) {
		select {
		case rendezvous <- struct{}{}:
			return one, nil
		case <-time.After(5 * time.Second):
			return nil, errors.New("engines did not run concurrently")
		}
	}
	receiver := func(ctx context.Context, base, exp, mod *biguint.Nat) (*biguint.Nat, error) {
		select {
		case <-rendezvous:
			return one, nil
		case <-time.After(5 * time.Second):
			return nil, errors.New("engines did not run concurrently")
		}
	}
	engines := []engine.Engine{
		&engine.MockEngine{EngineName: "a", Fn: sender},
		&engine.MockEngine{EngineName: "b", Fn: receiver},
	}

	results := ExecuteEngines(context.Background(), engines,
		biguint.FromUint64(2), biguint.FromUint64(3), biguint.FromUint64(5))
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("engine %s: %v", res.Name, res.Err)
		}
	}
}

func TestAnalyzeComparisonResultsSuccess(t *testing.T) {
	withoutColors(t)
	want := biguint.FromUint64(445)
	results := []EngineResult{
		{Name: "barrett", Result: want, Duration: time.Millisecond},
		{Name: "stdlib", Result: want, Duration: 2 * time.Millisecond},
	}

	out := new(bytes.Buffer)
	code := AnalyzeComparisonResults(results, cli.OutputConfig{}, out)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "All valid results are consistent") {
		t.Errorf("missing success status: %q", out.String())
	}
	if !strings.Contains(out.String(), "445") {
		t.Errorf("missing agreed result: %q", out.String())
	}
}

func TestAnalyzeComparisonResultsMismatch(t *testing.T) {
	withoutColors(t)
	results := []EngineResult{
		{Name: "barrett", Result: biguint.FromUint64(445), Duration: time.Millisecond},
		{Name: "stdlib", Result: biguint.FromUint64(444), Duration: 2 * time.Millisecond},
	}

	out := new(bytes.Buffer)
	code := AnalyzeComparisonResults(results, cli.OutputConfig{}, out)
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(out.String(), "inconsistency") {
		t.Errorf("missing mismatch status: %q", out.String())
	}
}

func TestAnalyzeComparisonResultsPartialFailure(t *testing.T) {
	withoutColors(t)
	want := biguint.FromUint64(7)
	results := []EngineResult{
		{Name: "bad", Err: errors.New("boom"), Duration: time.Millisecond},
		{Name: "good", Result: want, Duration: time.Millisecond},
	}

	out := new(bytes.Buffer)
	code := AnalyzeComparisonResults(results, cli.OutputConfig{}, out)
	if code != apperrors.ExitSuccess {
		t.Errorf("one healthy engine should still succeed, got code %d", code)
	}
	if !strings.Contains(out.String(), "Failure (boom)") {
		t.Errorf("failed engine should appear in the table: %q", out.String())
	}
}

func TestAnalyzeComparisonResultsAllFailed(t *testing.T) {
	withoutColors(t)
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []EngineResult{
				{Name: "a", Err: tt.err, Duration: time.Millisecond},
				{Name: "b", Err: tt.err, Duration: time.Millisecond},
			}
			out := new(bytes.Buffer)
			code := AnalyzeComparisonResults(results, cli.OutputConfig{}, out)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(out.String(), "No engine could complete") {
				t.Errorf("missing global failure status: %q", out.String())
			}
		})
	}
}

func TestAnalyzeSortsFastestFirst(t *testing.T) {
	withoutColors(t)
	want := biguint.FromUint64(1)
	results := []EngineResult{
		{Name: "slow", Result: want, Duration: time.Second},
		{Name: "fast", Result: want, Duration: time.Millisecond},
	}

	out := new(bytes.Buffer)
	AnalyzeComparisonResults(results, cli.OutputConfig{Quiet: true}, out)

	text := out.String()
	if strings.Index(text, "fast") > strings.Index(text, "slow") {
		t.Errorf("fastest engine should be listed first:\n%s", text)
	}
}
