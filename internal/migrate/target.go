package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"go.yaml.in/yaml/v3"
)

// Target is a migration destination.
type Target string

const (
	TargetYAML     Target = "yaml"
	TargetJSON     Target = "json"
	TargetManifest Target = "manifest"
)

// Targets lists every supported target.
var Targets = []Target{TargetYAML, TargetJSON, TargetManifest}

// ParseTarget validates a target name.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Targets {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown migration target %q (want yaml, json or manifest)", s)
}

// Path returns the file a target writes for a project directory.
func (t Target) Path(dir string) string {
	switch t {
	case TargetYAML:
		return filepath.Join(dir, branding.SidecarBase()+".yaml")
	case TargetJSON:
		return filepath.Join(dir, branding.SidecarBase()+".json")
	default:
		return filepath.Join(dir, manifest.FileName)
	}
}

// Encode serializes cfg for a sidecar target. The manifest target encodes
// the bare field value as JSON.
func Encode(cfg descriptor.Config, t Target) ([]byte, error) {
	cfg = cfg.Normalize()
	if t == TargetYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := marshalJSON(cfg, "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// marshalJSON encodes v without HTML escaping. An empty indent yields
// compact output.
func marshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
