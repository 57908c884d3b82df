package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/tidwall/gjson"
	"go.yaml.in/yaml/v3"
)

// SidecarExtensions lists the sidecar file extensions in lookup order.
var SidecarExtensions = []string{".yaml", ".yml", ".json"}

// Load reads package.json from dir and attaches the first sidecar file found.
// A missing manifest returns an error wrapping ErrNotFound. A sidecar that
// cannot be decoded is recorded in SidecarErr and otherwise ignored.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	m, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	if sidecarPath, ok := FindSidecar(dir); ok {
		m.SidecarPath = sidecarPath
		cfg, err := LoadSidecar(sidecarPath)
		if err != nil {
			log.Warn("ignoring unreadable sidecar", "path", sidecarPath, "err", err)
			m.SidecarErr = err
		} else {
			m.Sidecar = cfg
		}
	}

	return m, nil
}

// Parse decodes manifest bytes. The path is only used for error messages and
// to locate the project directory.
func Parse(path string, data []byte) (*Manifest, error) {
	// gjson does not report why a document is invalid; encoding/json does.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &SyntaxError{Path: path, Err: err}
	}

	root := gjson.ParseBytes(data)
	m := &Manifest{
		Path:   path,
		Data:   data,
		Fields: Entries(root),
	}

	if scripts, ok := m.Field("scripts"); ok {
		for _, e := range Entries(scripts) {
			if e.Value.Type != gjson.String {
				log.Debug("skipping non-string script", "key", e.Key, "type", e.Value.Type.String())
				continue
			}
			m.Scripts = append(m.Scripts, tokenize(e.Key, e.Value.Str))
		}
	}

	if raw, ok := m.Field(branding.ManifestField()); ok && raw.IsObject() {
		var cfg descriptor.Config
		if err := json.Unmarshal([]byte(raw.Raw), &cfg); err != nil {
			m.EmbeddedErr = &SyntaxError{Path: path, Err: fmt.Errorf("field %q: %w", branding.ManifestField(), err)}
		} else {
			normalized := cfg.Normalize()
			m.Embedded = &normalized
		}
	}

	return m, nil
}

// tokenize classifies one scripts entry.
func tokenize(key, value string) Script {
	s := Script{Key: key, Value: value, Kind: KindCommand}

	switch {
	case strings.HasPrefix(key, "comment:"):
		s.Kind = KindHeader
		s.Label = HeaderLabel(value)
		if s.Label == "" {
			s.Label = HeaderLabel(strings.TrimPrefix(key, "comment:"))
		}
	case isHeaderKey(key) && value == "":
		s.Kind = KindHeader
		s.Label = HeaderLabel(key)
	case strings.HasPrefix(key, "?") && len(key) > 1:
		s.Kind = KindPseudo
		s.Target = key[1:]
	}

	return s
}

func isHeaderKey(key string) bool {
	if strings.HasPrefix(key, "# ") {
		return true
	}
	trimmed := strings.TrimLeft(key, "\r\n")
	return trimmed != key && strings.HasPrefix(trimmed, "#")
}

// HeaderLabel strips marker syntax from a header: surrounding whitespace and
// newlines, a "comment:" prefix, '#' markers, decorative '=', '-' and '*' runs,
// and a trailing colon.
func HeaderLabel(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "comment:")
	s = strings.Trim(s, "#=-* \t\r\n")
	s = strings.TrimSuffix(s, ":")
	return strings.TrimSpace(s)
}

// FindSidecar returns the first sidecar file present in dir.
func FindSidecar(dir string) (string, bool) {
	for _, ext := range SidecarExtensions {
		p := filepath.Join(dir, branding.SidecarBase()+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// LoadSidecar reads and decodes a sidecar file. The encoding is chosen by
// file extension.
func LoadSidecar(path string) (*descriptor.Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSidecar(path, data)
}

// DecodeSidecar decodes sidecar bytes as JSON for .json paths and YAML otherwise.
func DecodeSidecar(path string, data []byte) (*descriptor.Config, error) {
	var cfg descriptor.Config
	if isJSON(path) {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, &SyntaxError{Path: path, Err: err}
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &SyntaxError{Path: path, Err: err}
		}
	}
	normalized := cfg.Normalize()
	return &normalized, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
