package formats

import (
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

// Format is one supported script-annotation convention.
type Format interface {
	// Name identifies the format in reports and logs.
	Name() string
	// Priority orders detection precedence; higher wins.
	Priority() int
	// Detect reports whether the manifest uses this convention.
	Detect(m *manifest.Manifest) bool
	// Parse converts the convention into canonical groups.
	Parse(m *manifest.Manifest) []descriptor.Group
}

// Format names.
const (
	NameNative              = "native"
	NameNtl                 = "ntl"
	NameBetterScripts       = "better-scripts"
	NameScriptsInfo         = "scripts-info"
	NameScriptsDescriptions = "scripts-descriptions"
	NameHeaders             = "header-organization"
	NameFallback            = "fallback"
)

// Format priorities.
const (
	PriorityNative              = 200
	PriorityNtl                 = 100
	PriorityBetterScripts       = 90
	PriorityScriptsInfo         = 80
	PriorityScriptsDescriptions = 70
	PriorityHeaders             = 60
	PriorityFallback            = 10
)

// Group names produced by converters.
const (
	GroupAvailable = "Available Scripts"
	GroupImplicit  = "Scripts"
)

// format is the shared Format implementation: a name, a priority and two
// functions over the manifest.
type format struct {
	name     string
	priority int
	detect   func(*manifest.Manifest) bool
	parse    func(*manifest.Manifest) []descriptor.Group
}

func (f *format) Name() string { return f.name }
func (f *format) Priority() int { return f.priority }
func (f *format) Detect(m *manifest.Manifest) bool { return f.detect(m) }
func (f *format) Parse(m *manifest.Manifest) []descriptor.Group { return f.parse(m) }

// Native is the canonical config embedded in package.json or in a sidecar.
func Native() Format {
	return &format{name: NameNative, priority: PriorityNative, detect: detectNative, parse: parseNative}
}

// Ntl reads `ntl.descriptions`.
func Ntl() Format {
	return &format{name: NameNtl, priority: PriorityNtl, detect: detectNtl, parse: parseNtl}
}

// BetterScripts reads the mixed-shape `better-scripts` object.
func BetterScripts() Format {
	return &format{name: NameBetterScripts, priority: PriorityBetterScripts, detect: detectBetterScripts, parse: parseBetterScripts}
}

// ScriptsInfo reads the top-level `scripts-info` map and `?key` pseudo-scripts.
func ScriptsInfo() Format {
	return &format{name: NameScriptsInfo, priority: PriorityScriptsInfo, detect: detectScriptsInfo, parse: parseScriptsInfo}
}

// ScriptsDescriptions reads the top-level `scripts-descriptions` map.
func ScriptsDescriptions() Format {
	return &format{name: NameScriptsDescriptions, priority: PriorityScriptsDescriptions, detect: detectScriptsDescriptions, parse: parseScriptsDescriptions}
}

// Headers groups scripts under comment-marker category headers.
func Headers() Format {
	return &format{name: NameHeaders, priority: PriorityHeaders, detect: detectHeaders, parse: parseHeaders}
}

// Fallback lists the raw scripts map as-is.
func Fallback() Format {
	return &format{name: NameFallback, priority: PriorityFallback, detect: detectFallback, parse: parseFallback}
}
