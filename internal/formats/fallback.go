package formats

import (
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

func detectFallback(m *manifest.Manifest) bool {
	return len(m.Commands()) > 0
}

func parseFallback(m *manifest.Manifest) []descriptor.Group {
	return flatten(m, nil)
}
