package manifest

import (
	"path/filepath"

	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/tidwall/gjson"
)

// FileName is the manifest file looked up in a project directory.
const FileName = "package.json"

// Kind classifies one entry of the scripts map.
type Kind int

const (
	// KindCommand is a runnable script.
	KindCommand Kind = iota
	// KindHeader is a category header marker such as "\n# Build" or "comment:build".
	KindHeader
	// KindPseudo is a "?key" entry documenting the script "key".
	KindPseudo
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindHeader:
		return "header"
	case KindPseudo:
		return "pseudo"
	default:
		return "unknown"
	}
}

// Script is one tokenized entry of the scripts map.
type Script struct {
	Key   string
	Value string
	Kind  Kind
	// Label is the header text with marker syntax stripped (KindHeader only).
	Label string
	// Target is the documented script key (KindPseudo only).
	Target string
}

// Entry is one key/value pair of a JSON object, in document order.
type Entry struct {
	Key   string
	Value gjson.Result
}

// Pair is a string-valued object entry.
type Pair struct {
	Key   string
	Value string
}

// Manifest is a decoded package.json plus the sidecar found next to it.
type Manifest struct {
	Path    string
	Data    []byte
	Fields  []Entry
	Scripts []Script

	// Embedded is the canonical config stored in the manifest field, if any.
	Embedded    *descriptor.Config
	EmbeddedErr error

	// Sidecar is the canonical config from the sidecar file, if any.
	Sidecar     *descriptor.Config
	SidecarPath string
	SidecarErr  error
}

// Dir returns the project directory containing the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Field returns a top-level field by exact key.
func (m *Manifest) Field(key string) (gjson.Result, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return gjson.Result{}, false
}

// StringField returns a top-level string field, or "".
func (m *Manifest) StringField(key string) string {
	v, ok := m.Field(key)
	if !ok || v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// Commands returns the runnable scripts in manifest order.
func (m *Manifest) Commands() []descriptor.Command {
	var out []descriptor.Command
	for _, s := range m.Scripts {
		if s.Kind == KindCommand {
			out = append(out, descriptor.Command{Key: s.Key, Command: s.Value})
		}
	}
	return out
}

// Command returns the raw command for a runnable script key.
func (m *Manifest) Command(key string) (string, bool) {
	for _, s := range m.Scripts {
		if s.Kind == KindCommand && s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}

// HasHeaders reports whether any scripts entry is a header marker.
func (m *Manifest) HasHeaders() bool {
	for _, s := range m.Scripts {
		if s.Kind == KindHeader {
			return true
		}
	}
	return false
}

// Native returns the canonical config carried by the project: the embedded
// field wins over the sidecar. Configs without groups are ignored.
func (m *Manifest) Native() (*descriptor.Config, string) {
	if m.Embedded != nil && len(m.Embedded.Groups) > 0 {
		return m.Embedded, m.Path
	}
	if m.Sidecar != nil && len(m.Sidecar.Groups) > 0 {
		return m.Sidecar, m.SidecarPath
	}
	return nil, ""
}

// ConfigErr returns the decode error of a canonical config that exists but
// could not be read, embedded field first. It is nil when every config
// present decoded.
func (m *Manifest) ConfigErr() error {
	if m.EmbeddedErr != nil {
		return m.EmbeddedErr
	}
	return m.SidecarErr
}

// Entries returns the entries of a JSON object in document order.
func Entries(v gjson.Result) []Entry {
	if !v.IsObject() {
		return nil
	}
	var out []Entry
	v.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Entry{Key: key.String(), Value: value})
		return true
	})
	return out
}

// StringPairs returns the string-valued entries of a JSON object in document
// order. Entries with other value types are skipped.
func StringPairs(v gjson.Result) []Pair {
	var out []Pair
	for _, e := range Entries(v) {
		if e.Value.Type == gjson.String {
			out = append(out, Pair{Key: e.Key, Value: e.Value.Str})
		}
	}
	return out
}

// Lookup returns the value of key in an ordered pair list.
func Lookup(pairs []Pair, key string) (string, bool) {
	for _, p := range pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}
