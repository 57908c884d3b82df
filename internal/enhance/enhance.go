// Package enhance asks a language model to group and describe scripts, and
// merges its suggestion into a converted config.
package enhance

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
)

// Provider suggests a grouped, described config for raw scripts.
type Provider interface {
	Name() string
	Enhance(ctx context.Context, commands []descriptor.Command) (*descriptor.Config, error)
}

// ProviderError wraps a failed provider call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s enhancement failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Apply runs p and merges its suggestion into base. On failure base is
// returned unchanged together with a *ProviderError.
func Apply(ctx context.Context, p Provider, base descriptor.Config, commands []descriptor.Command) (descriptor.Config, error) {
	suggested, err := p.Enhance(ctx, commands)
	if err != nil {
		return base, &ProviderError{Provider: p.Name(), Err: err}
	}
	if suggested == nil || suggested.Empty() {
		log.Debug("provider returned no groups", "provider", p.Name())
		return base, nil
	}
	return Merge(base, *suggested, commands), nil
}

// Merge overlays a suggested config on base.
//
// The suggestion's grouping wins for keys base knows about; keys it invents
// are dropped. Explicit base descriptions, titles and emoji are kept; only
// descriptions that merely repeat the command or the synthesized fallback are
// replaced. Base keys the suggestion omits are appended to a group of the same
// name as in base.
func Merge(base, suggested descriptor.Config, commands []descriptor.Command) descriptor.Config {
	known := make(map[string]descriptor.Descriptor)
	for _, g := range base.Groups {
		for _, d := range g.Scripts {
			if _, ok := known[d.Key]; !ok {
				known[d.Key] = d
			}
		}
	}
	raw := make(map[string]string, len(commands))
	for _, c := range commands {
		raw[c.Key] = c.Command
	}

	out := descriptor.Config{IncludeLifecycleScripts: base.IncludeLifecycleScripts}
	placed := make(map[string]bool)
	index := make(map[string]int)

	appendTo := func(name string, d descriptor.Descriptor) {
		i, ok := index[name]
		if !ok {
			i = len(out.Groups)
			index[name] = i
			out.Groups = append(out.Groups, descriptor.Group{Name: name, Scripts: []descriptor.Descriptor{}})
		}
		out.Groups[i].Scripts = append(out.Groups[i].Scripts, d)
		placed[d.Key] = true
	}

	for _, g := range suggested.Groups {
		if g.Name == "" {
			continue
		}
		for _, s := range g.Scripts {
			b, ok := known[s.Key]
			if !ok || placed[s.Key] {
				continue
			}
			appendTo(g.Name, overlay(b, s, raw[s.Key]))
		}
	}
	for _, g := range base.Groups {
		for _, d := range g.Scripts {
			if !placed[d.Key] {
				appendTo(g.Name, d)
			}
		}
	}

	return out.Normalize()
}

func overlay(base, suggested descriptor.Descriptor, command string) descriptor.Descriptor {
	out := base
	if generic(base, command) && suggested.Description != "" {
		out.Description = suggested.Description
		if out.Emoji == "" {
			out.Emoji = descriptor.LeadingEmoji(out.Description)
		}
	}
	if out.Title == "" {
		out.Title = suggested.Title
	}
	if out.Emoji == "" && descriptor.IsEmoji(suggested.Emoji) {
		out.Emoji = suggested.Emoji
	}
	return out
}

// generic reports whether d's description carries no information beyond the
// command itself.
func generic(d descriptor.Descriptor, command string) bool {
	return d.Description == "" || d.Description == command || d.Description == descriptor.Fallback(d.Key)
}
