// Package testutil holds helpers shared by tests in several packages.
package testutil

import "regexp"

// ansiRegex matches CSI escape sequences (ESC [ ... letter), which covers
// every code the ui themes emit.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from s so tests can assert on
// themed CLI output without caring which theme is active.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
