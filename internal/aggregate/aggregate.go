package aggregate

import (
	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/formats"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

// Options controls menu construction.
type Options struct {
	// IncludeLifecycle lists npm lifecycle scripts in their own leading group.
	IncludeLifecycle bool
	// Preview appends each script's raw command to its label.
	Preview bool
}

// builder tracks which raw scripts and documented keys were emitted.
type builder struct {
	m       *manifest.Manifest
	opts    Options
	entries []MenuEntry
	emitted map[string]bool
}

// Build returns the script menu for m. Control entries are not included; see
// Controls.
func Build(m *manifest.Manifest, opts Options) []MenuEntry {
	b := &builder{m: m, opts: opts, emitted: make(map[string]bool)}

	if opts.IncludeLifecycle || lifecycleEnabled(m) {
		b.lifecycle()
	}

	structured := b.structure()

	// Unclaimed runnable scripts.
	group, status := GroupOther, StatusExtra
	if !structured {
		group, status = GroupAvailable, StatusPresent
	}
	chain := b.fallbackChain()
	for _, c := range m.Commands() {
		if b.emitted[c.Key] {
			continue
		}
		b.add(group, descriptor.NewDescriptor(c.Key, descriptor.Describe(c.Key, chain.Lookup(c.Key), c.Command)), status)
	}

	return b.entries
}

// lifecycleEnabled reports whether the canonical config asks for lifecycle
// scripts to be listed.
func lifecycleEnabled(m *manifest.Manifest) bool {
	cfg, _ := m.Native()
	return cfg != nil && cfg.IncludeLifecycleScripts
}

func (b *builder) lifecycle() {
	chain := formats.DescriptionChain(b.m)
	for _, c := range b.m.Commands() {
		if !IsLifecycle(c.Key) || b.emitted[c.Key] {
			continue
		}
		b.add(GroupLifecycle, descriptor.NewDescriptor(c.Key, descriptor.Describe(c.Key, chain.Lookup(c.Key), c.Command)), StatusPresent)
	}
}

// structure runs the source cascade and reports whether any source produced
// entries.
func (b *builder) structure() bool {
	before := len(b.entries)

	if cfg, path := b.m.Native(); cfg != nil {
		log.Debug("menu from canonical config", "path", path)
		b.documented(cfg.Groups)
	} else if mixed := formats.BetterScripts(); mixed.Detect(b.m) {
		log.Debug("menu from better-scripts")
		b.documented(mixed.Parse(b.m))
	} else if b.m.HasHeaders() {
		log.Debug("menu from header groups")
		chain := formats.DescriptionChain(b.m)
		groups := formats.HeaderGroups(b.m, func(key, command string) string {
			return descriptor.Describe(key, chain.Lookup(key), command)
		})
		b.runnable(groups)
	} else if ntl := formats.NtlDescriptions(b.m); len(ntl) > 0 {
		log.Debug("menu from ntl descriptions")
		b.flat(formats.DescriptionChain(b.m))
	} else if info := formats.ScriptsInfoDescriptions(b.m); len(info) > 0 {
		log.Debug("menu from scripts-info")
		b.flat(formats.Chain{info})
	}

	return len(b.entries) > before
}

// documented emits canonical descriptors, flagging keys with no runnable
// command as missing.
func (b *builder) documented(groups []descriptor.Group) {
	for _, g := range groups {
		for _, d := range g.Scripts {
			if b.emitted[d.Key] {
				continue
			}
			status := StatusPresent
			if _, ok := b.m.Command(d.Key); !ok {
				status = StatusMissing
			}
			b.add(g.Name, d, status)
		}
	}
}

// runnable emits groups whose descriptors all come from the scripts map.
func (b *builder) runnable(groups []descriptor.Group) {
	for _, g := range groups {
		for _, d := range g.Scripts {
			if !b.emitted[d.Key] {
				b.add(g.Name, d, StatusPresent)
			}
		}
	}
}

func (b *builder) flat(chain formats.Chain) {
	for _, c := range b.m.Commands() {
		if b.emitted[c.Key] {
			continue
		}
		b.add(GroupAvailable, descriptor.NewDescriptor(c.Key, descriptor.Describe(c.Key, chain.Lookup(c.Key), c.Command)), StatusPresent)
	}
}

// fallbackChain describes scripts no source claimed.
func (b *builder) fallbackChain() formats.Chain {
	return append(formats.DescriptionChain(b.m), formats.ScriptsDescriptionsMap(b.m))
}

func (b *builder) add(group string, d descriptor.Descriptor, status Status) {
	command, _ := b.m.Command(d.Key)
	e := MenuEntry{
		Key:         d.Key,
		Group:       group,
		Command:     command,
		Description: d.Description,
		Title:       d.Title,
		Emoji:       d.Emoji,
		Status:      status,
	}
	e.Label = label(e, b.opts.Preview)
	b.entries = append(b.entries, e)
	b.emitted[d.Key] = true
}
