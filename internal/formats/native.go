package formats

import (
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

func detectNative(m *manifest.Manifest) bool {
	cfg, _ := m.Native()
	return cfg != nil
}

// parseNative passes the canonical groups through unchanged.
func parseNative(m *manifest.Manifest) []descriptor.Group {
	cfg, _ := m.Native()
	if cfg == nil {
		return []descriptor.Group{}
	}
	return cfg.Normalize().Groups
}
