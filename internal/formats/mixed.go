package formats

import (
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"github.com/tidwall/gjson"
)

// Shape is the JSON shape of one mixed-shape entry.
type Shape int

const (
	// ShapeString is a bare description string.
	ShapeString Shape = iota
	// ShapePair is a [command, description?] array.
	ShapePair
	// ShapeObject is a {command?, description?, alias?} object.
	ShapeObject
)

// MixedEntry is one `better-scripts` entry, resolved from its JSON shape.
type MixedEntry struct {
	Key         string
	Shape       Shape
	Command     string
	Description string
	Alias       string
}

// MixedEntries decodes the `better-scripts` object. Entries of any other
// shape are skipped.
func MixedEntries(m *manifest.Manifest) []MixedEntry {
	var out []MixedEntry
	for _, e := range betterScripts(m) {
		entry, ok := decodeMixed(e.Key, e.Value)
		if ok {
			out = append(out, entry)
		}
	}
	return out
}

func decodeMixed(key string, v gjson.Result) (MixedEntry, bool) {
	switch {
	case v.Type == gjson.String:
		return MixedEntry{Key: key, Shape: ShapeString, Description: v.Str}, true
	case v.IsArray():
		items := v.Array()
		e := MixedEntry{Key: key, Shape: ShapePair}
		if len(items) > 0 && items[0].Type == gjson.String {
			e.Command = items[0].Str
		}
		if len(items) > 1 && items[1].Type == gjson.String {
			e.Description = items[1].Str
		}
		return e, true
	case v.IsObject():
		return MixedEntry{
			Key:         key,
			Shape:       ShapeObject,
			Command:     v.Get("command").String(),
			Description: v.Get("description").String(),
			Alias:       v.Get("alias").String(),
		}, true
	default:
		return MixedEntry{}, false
	}
}

// Descriptor normalizes the entry. raw is the script's command from the
// scripts map, used when the entry carries neither description nor command.
func (e MixedEntry) Descriptor(raw string) descriptor.Descriptor {
	d := descriptor.NewDescriptor(e.Key, descriptor.Describe(e.Key, e.Description, e.Command, raw))
	if e.Alias != "" {
		emoji, title := descriptor.SplitAlias(e.Alias)
		if emoji != "" {
			d.Emoji = emoji
		}
		d.Title = title
	}
	return d
}

func detectBetterScripts(m *manifest.Manifest) bool {
	return len(MixedEntries(m)) > 0
}

// parseBetterScripts emits one "Available Scripts" group in entry order.
func parseBetterScripts(m *manifest.Manifest) []descriptor.Group {
	group := descriptor.Group{Name: GroupAvailable, Scripts: []descriptor.Descriptor{}}
	for _, e := range MixedEntries(m) {
		raw, _ := m.Command(e.Key)
		group.Scripts = append(group.Scripts, e.Descriptor(raw))
	}
	return []descriptor.Group{group}
}
