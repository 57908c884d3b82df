package formats

import (
	"strings"

	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

// themes maps common category names to their display names.
var themes = map[string]string{
	"development":  "🚀 Development",
	"testing":      "🧪 Testing",
	"build":        "📦 Build",
	"deployment":   "🚢 Deployment",
	"code quality": "✨ Code Quality",
	"utility":      "🔧 Utilities",
	"utilities":    "🔧 Utilities",
}

// ThemeName returns the display name for a header label. Labels outside the
// theme table are returned unchanged.
func ThemeName(label string) string {
	if themed, ok := themes[strings.ToLower(strings.TrimSpace(label))]; ok {
		return themed
	}
	return label
}

func detectHeaders(m *manifest.Manifest) bool {
	return m.HasHeaders()
}

func parseHeaders(m *manifest.Manifest) []descriptor.Group {
	chain := DescriptionChain(m)
	return HeaderGroups(m, func(key, command string) string {
		return descriptor.Describe(key, chain.Lookup(key), command)
	})
}

// HeaderGroups splits the scripts map at header markers. Runnable scripts
// before the first header form the implicit "Scripts" group. Groups without
// runnable scripts are dropped. describe resolves each script's description.
func HeaderGroups(m *manifest.Manifest, describe func(key, command string) string) []descriptor.Group {
	groups := []descriptor.Group{}
	current := descriptor.Group{Name: GroupImplicit, Scripts: []descriptor.Descriptor{}}

	flush := func() {
		if len(current.Scripts) > 0 {
			groups = append(groups, current)
		}
	}

	for _, s := range m.Scripts {
		switch s.Kind {
		case manifest.KindHeader:
			flush()
			name := ThemeName(s.Label)
			if name == "" {
				name = GroupImplicit
			}
			current = descriptor.Group{Name: name, Scripts: []descriptor.Descriptor{}}
		case manifest.KindCommand:
			current.Scripts = append(current.Scripts, descriptor.NewDescriptor(s.Key, describe(s.Key, s.Value)))
		}
	}
	flush()

	return groups
}
