package migrate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/enhance"
	"github.com/scriptdeck/scriptdeck/internal/formats"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

// Options configures Plan.
type Options struct {
	// Format, when set, names the format to convert from instead of the
	// highest-priority match. It must detect the manifest.
	Format string
	// Provider, when set, is asked to improve the converted config.
	Provider enhance.Provider
}

// Result is a converted config ready to be written.
type Result struct {
	Config descriptor.Config
	// Format is the name of the format the config was converted from.
	Format string
	// Matched lists every format that detected the manifest, best first.
	Matched []string
	// Enhanced reports whether the provider answered successfully.
	Enhanced bool
}

// Plan converts m with its best format and optionally enhances the result.
// A provider failure is logged and the unenhanced config is returned.
func Plan(ctx context.Context, reg *formats.Registry, m *manifest.Manifest, opts Options) (*Result, error) {
	matched := reg.DetectAll(m)
	if len(matched) == 0 {
		return nil, fmt.Errorf("converting %s: %w", m.Path, formats.ErrUnknownFormat)
	}

	f := matched[0]
	if opts.Format != "" {
		var ok bool
		if f, ok = pick(matched, opts.Format); !ok {
			return nil, fmt.Errorf("converting %s: format %q not found (found %s)", m.Path, opts.Format, names(matched))
		}
	}

	res := &Result{Config: *formats.ConvertWith(f, m), Format: f.Name()}
	for _, match := range matched {
		res.Matched = append(res.Matched, match.Name())
	}
	if len(res.Matched) > 1 && opts.Format == "" {
		log.Info("several annotation formats found; using the highest priority", "using", res.Format, "found", res.Matched)
	}

	if opts.Provider == nil {
		return res, nil
	}
	enhanced, err := enhance.Apply(ctx, opts.Provider, res.Config, m.Commands())
	if err != nil {
		var perr *enhance.ProviderError
		if !errors.As(err, &perr) {
			return nil, err
		}
		log.Warn("continuing without enhancement", "err", err)
		return res, nil
	}
	res.Config = enhanced
	res.Enhanced = true
	return res, nil
}

func pick(matched []formats.Format, name string) (formats.Format, bool) {
	for _, f := range matched {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

func names(fs []formats.Format) string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name()
	}
	return strings.Join(out, ", ")
}
