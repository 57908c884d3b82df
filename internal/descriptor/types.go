package descriptor

import "fmt"

// Command is one runnable entry of the raw package.json scripts map.
type Command struct {
	Key     string `json:"key"`
	Command string `json:"command"`
}

// Descriptor is the user-facing metadata for one script.
type Descriptor struct {
	Key         string `yaml:"key" json:"key"`
	Description string `yaml:"description" json:"description"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Emoji       string `yaml:"emoji,omitempty" json:"emoji,omitempty"`
}

// Group is a named, ordered list of descriptors.
type Group struct {
	Name    string       `yaml:"name" json:"name"`
	Scripts []Descriptor `yaml:"scripts" json:"scripts"`
}

// Config is the canonical script configuration. It is the shape of the
// sidecar file and of the embedded package.json field.
type Config struct {
	Groups                  []Group `yaml:"scriptGroups" json:"scriptGroups"`
	IncludeLifecycleScripts bool    `yaml:"includeLifecycleScripts,omitempty" json:"includeLifecycleScripts,omitempty"`
}

// Fallback returns the synthesized description used when a script has
// neither an explicit description nor a command.
func Fallback(key string) string {
	return fmt.Sprintf("Run %s script", key)
}

// Describe returns the first non-empty candidate, or the synthesized fallback.
func Describe(key string, candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return Fallback(key)
}

// NewDescriptor builds a descriptor and extracts a leading emoji run from the
// description into Emoji. The description itself is left untouched.
func NewDescriptor(key, description string) Descriptor {
	return Descriptor{
		Key:         key,
		Description: description,
		Emoji:       LeadingEmoji(description),
	}
}

// Normalize returns a copy of cfg with nil script slices replaced by empty
// ones, so encoders always emit `scripts: []`.
func (c Config) Normalize() Config {
	out := Config{IncludeLifecycleScripts: c.IncludeLifecycleScripts}
	out.Groups = make([]Group, 0, len(c.Groups))
	for _, g := range c.Groups {
		scripts := g.Scripts
		if scripts == nil {
			scripts = []Descriptor{}
		}
		out.Groups = append(out.Groups, Group{Name: g.Name, Scripts: scripts})
	}
	return out
}

// Keys returns every descriptor key in group order. Duplicates are kept.
func (c Config) Keys() []string {
	var keys []string
	for _, g := range c.Groups {
		for _, d := range g.Scripts {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// Lookup returns the first descriptor with the given key.
func (c Config) Lookup(key string) (Descriptor, bool) {
	for _, g := range c.Groups {
		for _, d := range g.Scripts {
			if d.Key == key {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}

// Empty reports whether the config has no groups.
func (c Config) Empty() bool {
	return len(c.Groups) == 0
}
