package migrate

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"github.com/scriptdeck/scriptdeck/internal/platform"
)

// Render returns the bytes Write would store for t, without touching disk.
func Render(m *manifest.Manifest, cfg descriptor.Config, t Target) ([]byte, error) {
	if t != TargetManifest {
		return Encode(cfg, t)
	}
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	out, err := Embed(data, branding.ManifestField(), cfg.Normalize())
	if err != nil {
		return nil, &manifest.SyntaxError{Path: m.Path, Err: err}
	}
	return out, nil
}

// Write stores cfg at target t next to the manifest and returns the path
// written. The manifest target re-reads package.json from disk so concurrent
// edits made since Load are not lost. The file is replaced atomically.
func Write(m *manifest.Manifest, cfg descriptor.Config, t Target) (string, error) {
	data, err := Render(m, cfg, t)
	if err != nil {
		return "", err
	}

	path := t.Path(m.Dir())
	if err := platform.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	if t != TargetManifest {
		if existing, ok := manifest.FindSidecar(m.Dir()); ok && existing != path {
			log.Warn("another sidecar takes precedence over the written file", "existing", existing, "written", path)
		}
	}
	log.Debug("migration written", "target", t, "path", path)
	return path, nil
}
