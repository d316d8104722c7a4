package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// SpinnerRefreshRate defines the refresh frequency of the progress spinner.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner abstracts the behavior of a terminal spinner, decoupling progress
// display from a specific implementation for easier testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// noopSpinner is used when the output is not an interactive terminal.
type noopSpinner struct{}

func (noopSpinner) Start()              {}
func (noopSpinner) Stop()               {}
func (noopSpinner) UpdateSuffix(string) {}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
// Overridable in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StartProgress starts a spinner with the given message and returns a stop
// function. The spinner is suppressed in quiet mode and when out does not
// go to a terminal, so scripted invocations get clean output.
func StartProgress(out io.Writer, message string, quiet bool) func() {
	var s Spinner = noopSpinner{}
	if !quiet && stdoutIsTerminal() {
		s = newSpinner(spinner.WithWriter(out))
	}
	s.UpdateSuffix(" " + message)
	s.Start()
	return s.Stop
}
