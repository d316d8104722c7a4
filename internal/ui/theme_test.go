package ui

import (
	"os"
	"testing"
)

func TestInitTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name     string
		noColor  bool
		envSet   bool
		expected string
	}{
		{"default is dark", false, false, "dark"},
		{"noColor flag disables colors", true, false, "none"},
		{"NO_COLOR env disables colors", false, true, "none"},
		{"flag wins even with env", true, true, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv("NO_COLOR", "1")
			} else {
				// t.Setenv registers the restore; LookupEnv must not see
				// the variable at all, so unset it afterwards.
				t.Setenv("NO_COLOR", "")
				if err := os.Unsetenv("NO_COLOR"); err != nil {
					t.Fatal(err)
				}
			}
			InitTheme(tt.noColor)
			if got := GetCurrentTheme().Name; got != tt.expected {
				t.Errorf("theme = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNoColorThemeIsEmpty(t *testing.T) {
	t.Parallel()
	th := NoColorTheme
	for name, code := range map[string]string{
		"Primary":   th.Primary,
		"Secondary": th.Secondary,
		"Success":   th.Success,
		"Warning":   th.Warning,
		"Error":     th.Error,
		"Bold":      th.Bold,
		"Reset":     th.Reset,
	} {
		if code != "" {
			t.Errorf("NoColorTheme.%s should be empty, got %q", name, code)
		}
	}
}

func TestThemeColorsFollowCurrentTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(DarkTheme)
	c := ThemeColors{}
	if c.Yellow() != DarkTheme.Warning {
		t.Errorf("Yellow() = %q, want %q", c.Yellow(), DarkTheme.Warning)
	}
	if c.Reset() != DarkTheme.Reset {
		t.Errorf("Reset() = %q, want %q", c.Reset(), DarkTheme.Reset)
	}

	SetCurrentTheme(NoColorTheme)
	if c.Yellow() != "" || c.Reset() != "" {
		t.Error("ThemeColors should be empty under NoColorTheme")
	}
}
