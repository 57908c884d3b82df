package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// prefixSearch matches labels starting with the query.
func prefixSearch(labels []string) SearchFunc {
	return func(q string) []int {
		var out []int
		for i, l := range labels {
			if strings.HasPrefix(l, q) {
				out = append(out, i)
			}
		}
		return out
	}
}

var labels = []string{"build", "test", "bench", "lint"}

func TestNumbered_Pick(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{"number", "2\n", 1, nil},
		{"no trailing newline", "4", 3, nil},
		{"filter then pick", "b\n2\n", 2, nil},
		{"clear filter", "b\n\n2\n", 1, nil},
		{"out of range retries", "9\n1\n", 0, nil},
		{"quit", "q\n", 0, ErrCancelled},
		{"eof", "", 0, ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			n := NewNumbered(strings.NewReader(tt.input), &out)

			got, err := n.Pick(context.Background(), "Pick a script", labels, prefixSearch(labels))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Pick() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Pick() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNumbered_PickPrintsMenu(t *testing.T) {
	var out bytes.Buffer
	n := NewNumbered(strings.NewReader("1\n"), &out)
	if _, err := n.Pick(context.Background(), "Pick a script", labels, nil); err != nil {
		t.Fatalf("Pick() error: %v", err)
	}
	for _, want := range []string{"Pick a script", "  1) build", "  4) lint", "[1-4]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestNumbered_PickCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := NewNumbered(strings.NewReader("1\n"), &bytes.Buffer{})
	if _, err := n.Pick(ctx, "t", labels, nil); !errors.Is(err, ErrCancelled) {
		t.Errorf("Pick() error = %v, want ErrCancelled", err)
	}
}

func TestNumbered_Confirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
	}
	for _, tt := range tests {
		n := NewNumbered(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := n.Confirm(context.Background(), "Create config?", tt.defaultYes)
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, default %v) = %v, want %v", tt.input, tt.defaultYes, got, tt.want)
		}
	}
}

func update(t *testing.T, m pickModel, msg tea.Msg) pickModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(pickModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return pm
}

func TestPickModel_FilterAndSelect(t *testing.T) {
	m := newPickModel("Scripts", labels, prefixSearch(labels))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if len(m.visible) != 2 {
		t.Fatalf("visible = %v, want two matches", m.visible)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.done || m.chosen != 2 {
		t.Errorf("chosen = %d (done %v), want 2", m.chosen, m.done)
	}
}

func TestPickModel_Cancel(t *testing.T) {
	m := newPickModel("Scripts", labels, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.cancelled {
		t.Error("esc did not cancel")
	}
}

func TestPickModel_CursorBounds(t *testing.T) {
	m := newPickModel("Scripts", labels, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top", m.cursor)
	}
	for range 10 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(labels)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(labels)-1)
	}
	if !strings.Contains(m.View(), "lint") {
		t.Errorf("View() missing last label:\n%s", m.View())
	}
}

func TestProgram_ConfirmKeepsBufferedInput(t *testing.T) {
	var out bytes.Buffer
	p := NewProgram(strings.NewReader("y\nn\n"), &out)

	first, err := p.Confirm(context.Background(), "Create config?", false)
	if err != nil {
		t.Fatalf("first Confirm() error: %v", err)
	}
	second, err := p.Confirm(context.Background(), "Improve descriptions?", true)
	if err != nil {
		t.Fatalf("second Confirm() error: %v", err)
	}
	if !first || second {
		t.Errorf("Confirm() answers = %v, %v, want true, false", first, second)
	}
	if !strings.Contains(out.String(), "Improve descriptions? [Y/n]") {
		t.Errorf("output missing second prompt:\n%s", out.String())
	}
}
