package formats

import (
	"errors"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

// ErrUnknownFormat is returned when no format matches a manifest.
var ErrUnknownFormat = errors.New("no supported script format detected")

// Registry is an immutable, priority-sorted list of formats.
type Registry struct {
	formats []Format
}

// NewRegistry returns a registry holding formats sorted by descending
// priority. Formats with equal priority keep their argument order.
func NewRegistry(formats ...Format) *Registry {
	sorted := make([]Format, len(formats))
	copy(sorted, formats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return &Registry{formats: sorted}
}

// DefaultRegistry returns a registry with every built-in format.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Fallback(),
		Headers(),
		ScriptsDescriptions(),
		ScriptsInfo(),
		BetterScripts(),
		Ntl(),
		Native(),
	)
}

// Formats returns the registered formats in priority order.
func (r *Registry) Formats() []Format {
	out := make([]Format, len(r.formats))
	copy(out, r.formats)
	return out
}

// Lookup returns the format with the given name.
func (r *Registry) Lookup(name string) (Format, bool) {
	for _, f := range r.formats {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Best returns the highest-priority format that detects the manifest.
func (r *Registry) Best(m *manifest.Manifest) (Format, bool) {
	for _, f := range r.formats {
		if f.Detect(m) {
			return f, true
		}
	}
	return nil, false
}

// DetectAll returns every format that detects the manifest, in priority order.
func (r *Registry) DetectAll(m *manifest.Manifest) []Format {
	var out []Format
	for _, f := range r.formats {
		if f.Detect(m) {
			out = append(out, f)
		}
	}
	return out
}

// Convert converts the manifest with its best format.
func (r *Registry) Convert(m *manifest.Manifest) (*descriptor.Config, Format, error) {
	f, ok := r.Best(m)
	if !ok {
		return nil, nil, ErrUnknownFormat
	}
	return ConvertWith(f, m), f, nil
}

// ConvertWith converts the manifest with f, which the caller has checked
// detects it.
func ConvertWith(f Format, m *manifest.Manifest) *descriptor.Config {
	log.Debug("converting manifest", "path", m.Path, "format", f.Name())

	cfg := &descriptor.Config{Groups: f.Parse(m)}
	if f.Name() == NameNative {
		if native, _ := m.Native(); native != nil {
			cfg.IncludeLifecycleScripts = native.IncludeLifecycleScripts
		}
	}
	normalized := cfg.Normalize()
	return &normalized
}
