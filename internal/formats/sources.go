package formats

import (
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"github.com/tidwall/gjson"
)

// Manifest fields read by the legacy conventions.
const (
	FieldNtl                 = "ntl"
	FieldScriptsInfo         = "scripts-info"
	FieldScriptsDescriptions = "scripts-descriptions"
	FieldBetterScripts       = "better-scripts"
)

// NtlDescriptions returns `ntl.descriptions` in document order.
func NtlDescriptions(m *manifest.Manifest) []manifest.Pair {
	ntl, ok := m.Field(FieldNtl)
	if !ok || !ntl.IsObject() {
		return nil
	}
	return manifest.StringPairs(ntl.Get("descriptions"))
}

// ScriptsInfoDescriptions returns the `scripts-info` map followed by
// descriptions extracted from `?key` pseudo-scripts whose key the map does
// not already document.
func ScriptsInfoDescriptions(m *manifest.Manifest) []manifest.Pair {
	var pairs []manifest.Pair
	if v, ok := m.Field(FieldScriptsInfo); ok {
		pairs = manifest.StringPairs(v)
	}
	for _, s := range m.Scripts {
		if s.Kind != manifest.KindPseudo {
			continue
		}
		if _, ok := manifest.Lookup(pairs, s.Target); ok {
			continue
		}
		pairs = append(pairs, manifest.Pair{Key: s.Target, Value: EchoText(s.Value)})
	}
	return pairs
}

// ScriptsDescriptionsMap returns the top-level `scripts-descriptions` map.
func ScriptsDescriptionsMap(m *manifest.Manifest) []manifest.Pair {
	v, ok := m.Field(FieldScriptsDescriptions)
	if !ok {
		return nil
	}
	return manifest.StringPairs(v)
}

// betterScripts returns the raw `better-scripts` object entries.
func betterScripts(m *manifest.Manifest) []manifest.Entry {
	v, ok := m.Field(FieldBetterScripts)
	if !ok || v.Type != gjson.JSON {
		return nil
	}
	return manifest.Entries(v)
}

// Chain resolves a script description through ordered description sources.
// The first source documenting the key wins.
type Chain [][]manifest.Pair

// Lookup returns the first non-empty description for key.
func (c Chain) Lookup(key string) string {
	for _, pairs := range c {
		if v, ok := manifest.Lookup(pairs, key); ok && v != "" {
			return v
		}
	}
	return ""
}

// DescriptionChain returns the ntl → scripts-info chain used for
// header-organized and flat listings.
func DescriptionChain(m *manifest.Manifest) Chain {
	return Chain{NtlDescriptions(m), ScriptsInfoDescriptions(m)}
}
