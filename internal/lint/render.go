package lint

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	keyStyle     = lipgloss.NewStyle().Bold(true)
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

func severityStyle(s Severity) lipgloss.Style {
	switch s {
	case SeverityError:
		return errorStyle
	case SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// WriteText renders the report for a terminal.
func WriteText(w io.Writer, r *Report) error {
	for _, i := range r.Issues {
		subject := ""
		switch {
		case i.Key != "":
			subject = keyStyle.Render(i.Key) + ": "
		case i.Group != "":
			subject = keyStyle.Render(i.Group) + ": "
		}
		if _, err := fmt.Fprintf(w, "%-7s %s%s %s\n",
			severityStyle(i.Severity).Render(string(i.Severity)), subject, i.Message, ruleStyle.Render("("+i.Rule+")")); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d error(s), %d warning(s), %d info", r.Errors, r.Warnings, r.Infos)
	if r.Passed {
		summary = passStyle.Render("passed") + "  " + summary
	} else {
		summary = errorStyle.Render("failed") + "  " + summary
	}
	if len(r.Issues) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
