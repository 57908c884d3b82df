// Package tui prompts the user to pick a script, either with a full-screen
// fuzzy picker or with a numbered menu for plain terminals and pipes.
package tui

import (
	"context"
	"errors"
	"os"
)

// ErrCancelled is returned when the user dismisses a prompt.
var ErrCancelled = errors.New("cancelled")

// SearchFunc returns the indexes of labels matching query, best first.
type SearchFunc func(query string) []int

// Picker asks the user to choose one of labels.
type Picker interface {
	// Pick returns the index of the chosen label.
	Pick(ctx context.Context, title string, labels []string, search SearchFunc) (int, error)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// Default returns the full-screen picker when stdin and stdout are terminals
// and the numbered menu otherwise.
func Default() Picker {
	if IsTerminal(os.Stdin) && IsTerminal(os.Stdout) {
		return NewProgram(os.Stdin, os.Stderr)
	}
	return NewNumbered(os.Stdin, os.Stdout)
}
