package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// defaultHeight is the list height used before the terminal size is known.
const defaultHeight = 15

// Program is the full-screen fuzzy picker. Confirm prompts share one line
// reader so input buffered by one prompt is seen by the next.
type Program struct {
	prompt *Numbered
}

// NewProgram returns a picker whose yes/no prompts read r and write w.
func NewProgram(r io.Reader, w io.Writer) *Program {
	return &Program{prompt: NewNumbered(r, w)}
}

// Pick implements Picker.
func (p *Program) Pick(ctx context.Context, title string, labels []string, search SearchFunc) (int, error) {
	if len(labels) == 0 {
		return 0, errors.New("nothing to choose from")
	}

	final, err := tea.NewProgram(newPickModel(title, labels, search),
		tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return 0, ErrCancelled
		}
		return 0, fmt.Errorf("running picker: %w", err)
	}

	m := final.(pickModel)
	if m.cancelled || m.chosen < 0 {
		return 0, ErrCancelled
	}
	return m.chosen, nil
}

// Confirm implements Picker with a one-line prompt on the terminal.
func (p *Program) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	if p.prompt == nil {
		p.prompt = NewNumbered(os.Stdin, os.Stderr)
	}
	return p.prompt.Confirm(ctx, question, defaultYes)
}

type pickModel struct {
	title     string
	labels    []string
	search    SearchFunc
	input     textinput.Model
	visible   []int
	cursor    int
	height    int
	chosen    int
	cancelled bool
	done      bool
}

func newPickModel(title string, labels []string, search SearchFunc) pickModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "> "
	ti.Focus()

	return pickModel{
		title:   title,
		labels:  labels,
		search:  search,
		input:   ti,
		visible: all(len(labels)),
		height:  defaultHeight,
		chosen:  -1,
	}
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.visible) == 0 {
				return m, nil
			}
			m.chosen = m.visible[m.cursor]
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.height = max(1, msg.Height-4)
		m.input.Width = max(1, msg.Width-4)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if query := m.input.Value(); query != before {
		m.refilter(query)
	}
	return m, cmd
}

func (m *pickModel) refilter(query string) {
	if query == "" || m.search == nil {
		m.visible = all(len(m.labels))
	} else {
		m.visible = m.search(query)
	}
	m.cursor = 0
}

func (m pickModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	start := 0
	if m.cursor >= m.height {
		start = m.cursor - m.height + 1
	}
	end := min(len(m.visible), start+m.height)
	for i := start; i < end; i++ {
		label := m.labels[m.visible[i]]
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("❯ "))
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString("  ")
			b.WriteString(label)
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d • ↑/↓ move • enter run • esc quit", len(m.visible), len(m.labels))))
	return b.String()
}
