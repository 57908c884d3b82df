package aggregate

import (
	"fmt"
	"strings"

	"github.com/scriptdeck/scriptdeck/internal/search"
)

// Status describes how a menu entry relates to the raw scripts map.
type Status string

const (
	// StatusPresent marks a documented script that can be run.
	StatusPresent Status = "present"
	// StatusMissing marks a documented script with no runnable command.
	StatusMissing Status = "missing"
	// StatusExtra marks a runnable script no annotation source documents.
	StatusExtra Status = "extra"
)

// Control actions.
const (
	ActionMigrate       = "migrate"
	ActionTogglePreview = "toggle-preview"
	ActionExit          = "exit"
)

// Group names produced by the cascade.
const (
	GroupLifecycle = "Lifecycle Scripts"
	GroupOther     = "Other Available Scripts"
	GroupAvailable = "Available Scripts"
	GroupActions   = "Actions"
)

// MenuEntry is one selectable line of the launcher.
type MenuEntry struct {
	Key         string `json:"key,omitempty"`
	Label       string `json:"label"`
	Group       string `json:"group"`
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Title       string `json:"title,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	Status      Status `json:"status,omitempty"`
	Action      string `json:"action,omitempty"`
}

// Selectable reports whether choosing the entry does something.
func (e MenuEntry) Selectable() bool {
	return e.Action != "" || e.Status != StatusMissing
}

// IsControl reports whether the entry is a control action rather than a script.
func (e MenuEntry) IsControl() bool {
	return e.Action != ""
}

func label(e MenuEntry, preview bool) string {
	var b strings.Builder
	if e.Emoji != "" {
		b.WriteString(e.Emoji)
		b.WriteByte(' ')
	}
	if e.Title != "" && e.Title != e.Key {
		fmt.Fprintf(&b, "%s (%s)", e.Title, e.Key)
	} else {
		b.WriteString(e.Key)
	}
	if desc := strings.TrimSpace(strings.TrimPrefix(e.Description, e.Emoji)); desc != "" {
		b.WriteString(": ")
		b.WriteString(desc)
	}
	if e.Status == StatusMissing {
		b.WriteString(" [missing]")
	}
	if preview && e.Command != "" {
		b.WriteString(" $ ")
		b.WriteString(e.Command)
	}
	return b.String()
}

// Controls returns the fixed control entries shown after the scripts.
func Controls(preview bool) []MenuEntry {
	toggle := "Show command preview"
	if preview {
		toggle = "Hide command preview"
	}
	return []MenuEntry{
		{Label: "Migrate script annotations", Group: GroupActions, Action: ActionMigrate},
		{Label: toggle, Group: GroupActions, Action: ActionTogglePreview},
		{Label: "Exit", Group: GroupActions, Action: ActionExit},
	}
}

// Labels returns the entry labels in order.
func Labels(entries []MenuEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

// Filter returns the entries whose label fuzzily matches query, best first.
func Filter(entries []MenuEntry, query string) []MenuEntry {
	idx := search.Indexes(query, Labels(entries))
	out := make([]MenuEntry, len(idx))
	for i, j := range idx {
		out[i] = entries[j]
	}
	return out
}
