package main

import (
	"errors"
	"os"

	"github.com/scriptdeck/scriptdeck/internal/cli"
	"github.com/scriptdeck/scriptdeck/internal/runner"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		// A failing script passes its own exit code through.
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
