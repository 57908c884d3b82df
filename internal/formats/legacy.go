package formats

import (
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

func detectNtl(m *manifest.Manifest) bool {
	return len(NtlDescriptions(m)) > 0
}

func parseNtl(m *manifest.Manifest) []descriptor.Group {
	return flatten(m, NtlDescriptions(m))
}

func detectScriptsInfo(m *manifest.Manifest) bool {
	if v, ok := m.Field(FieldScriptsInfo); ok && len(manifest.StringPairs(v)) > 0 {
		return true
	}
	for _, s := range m.Scripts {
		if s.Kind == manifest.KindPseudo {
			return true
		}
	}
	return false
}

func parseScriptsInfo(m *manifest.Manifest) []descriptor.Group {
	return flatten(m, ScriptsInfoDescriptions(m))
}

func detectScriptsDescriptions(m *manifest.Manifest) bool {
	return len(ScriptsDescriptionsMap(m)) > 0
}

func parseScriptsDescriptions(m *manifest.Manifest) []descriptor.Group {
	return flatten(m, ScriptsDescriptionsMap(m))
}

// flatten builds the single "Available Scripts" group of the description-map
// conventions: every runnable script in manifest order, then documented keys
// that have no runnable script, in documentation order.
func flatten(m *manifest.Manifest, documented []manifest.Pair) []descriptor.Group {
	group := descriptor.Group{Name: GroupAvailable, Scripts: []descriptor.Descriptor{}}
	seen := make(map[string]bool)

	for _, c := range m.Commands() {
		explicit, _ := manifest.Lookup(documented, c.Key)
		group.Scripts = append(group.Scripts, descriptor.NewDescriptor(c.Key, descriptor.Describe(c.Key, explicit, c.Command)))
		seen[c.Key] = true
	}
	for _, p := range documented {
		if seen[p.Key] {
			continue
		}
		group.Scripts = append(group.Scripts, descriptor.NewDescriptor(p.Key, descriptor.Describe(p.Key, p.Value)))
		seen[p.Key] = true
	}

	return []descriptor.Group{group}
}
