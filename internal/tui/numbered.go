package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Numbered is a line-oriented picker: it prints a numbered list and reads a
// number. Any other input filters the list.
type Numbered struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewNumbered returns a numbered picker reading r and writing w.
func NewNumbered(r io.Reader, w io.Writer) *Numbered {
	return &Numbered{reader: bufio.NewReader(r), w: w}
}

// Pick implements Picker. Entering "q" or reaching end of input cancels; an
// empty line clears the filter.
func (n *Numbered) Pick(ctx context.Context, title string, labels []string, search SearchFunc) (int, error) {
	if len(labels) == 0 {
		return 0, errors.New("nothing to choose from")
	}

	visible := all(len(labels))
	for {
		if err := ctx.Err(); err != nil {
			return 0, ErrCancelled
		}

		fmt.Fprintf(n.w, "\n%s\n", title)
		for i, idx := range visible {
			fmt.Fprintf(n.w, "  %d) %s\n", i+1, labels[idx])
		}
		if len(visible) == 0 {
			fmt.Fprintln(n.w, "  (no matches)")
		}
		fmt.Fprintf(n.w, "Enter number [1-%d], text to filter, q to quit: ", len(visible))

		line, err := n.readLine()
		if err != nil {
			return 0, err
		}

		switch {
		case line == "q":
			return 0, ErrCancelled
		case line == "":
			visible = all(len(labels))
			continue
		}

		if num, err := strconv.Atoi(line); err == nil {
			if num >= 1 && num <= len(visible) {
				return visible[num-1], nil
			}
			fmt.Fprintf(n.w, "invalid selection %q: choose 1-%d\n", line, len(visible))
			continue
		}

		if search != nil {
			visible = search(line)
		}
	}
}

// Confirm implements Picker.
func (n *Numbered) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, ErrCancelled
	}
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(n.w, "%s %s ", question, hint)

	line, err := n.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (n *Numbered) readLine() (string, error) {
	line, err := n.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading selection: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func all(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
