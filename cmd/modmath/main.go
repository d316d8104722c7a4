// Command modmath is an arbitrary-precision modular arithmetic calculator.
// It exposes the exponentiation engines, GCD, modular inverse, and radix
// rendering operations over a flag-driven CLI.
package main

import (
	"context"
	"os"

	"github.com/agbru/modmath/internal/app"
	apperrors "github.com/agbru/modmath/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
