package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
)

// Supported package managers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
	Bun  = "bun"
)

// lockFiles maps lock files to their package manager, in precedence order.
var lockFiles = []struct {
	file    string
	manager string
}{
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// PackageManager identifies the tool that runs scripts.
type PackageManager struct {
	Name string
	// Version is set when the manifest pins one via the packageManager field.
	Version *semver.Version
	// Source describes how the manager was chosen.
	Source string
}

func (pm PackageManager) String() string {
	if pm.Version != nil {
		return pm.Name + "@" + pm.Version.String()
	}
	return pm.Name
}

// Known reports whether name is a supported package manager.
func Known(name string) bool {
	switch name {
	case NPM, Yarn, PNPM, Bun:
		return true
	}
	return false
}

// Detect picks the package manager for a project: an explicit override, then
// the manifest's packageManager field, then lock files, then npm.
func Detect(m *manifest.Manifest, override string) PackageManager {
	if override != "" {
		if Known(override) {
			return PackageManager{Name: override, Source: "config"}
		}
		log.Warn("ignoring unknown package manager", "name", override)
	}

	if field := m.StringField("packageManager"); field != "" {
		pm, err := ParseField(field)
		if err == nil {
			pm.Source = "packageManager field"
			return pm
		}
		log.Warn("ignoring packageManager field", "value", field, "err", err)
	}

	dir := m.Dir()
	for _, lf := range lockFiles {
		if _, err := os.Stat(filepath.Join(dir, lf.file)); err == nil {
			return PackageManager{Name: lf.manager, Source: lf.file}
		}
	}

	return PackageManager{Name: NPM, Source: "default"}
}

// ParseField parses a packageManager value such as "pnpm@9.1.0+sha512.abc".
func ParseField(value string) (PackageManager, error) {
	name, version, ok := strings.Cut(strings.TrimSpace(value), "@")
	if !ok || name == "" || version == "" {
		return PackageManager{}, fmt.Errorf("expected <name>@<version>, got %q", value)
	}
	if !Known(name) {
		return PackageManager{}, fmt.Errorf("unsupported package manager %q", name)
	}

	version, _, _ = strings.Cut(version, "+")
	v, err := semver.NewVersion(version)
	if err != nil {
		return PackageManager{}, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return PackageManager{Name: name, Version: v}, nil
}

// Args returns the arguments that run script with extra arguments.
func (pm PackageManager) Args(script string, extra []string) []string {
	args := []string{"run", script}
	if len(extra) == 0 {
		return args
	}
	if pm.Name == NPM {
		args = append(args, "--")
	}
	return append(args, extra...)
}

// CommandLine returns the shell command that runs script.
func (pm PackageManager) CommandLine(script string) string {
	quoted := script
	if strings.ContainsAny(script, " \t'\"$&|;<>()*?`\\") {
		quoted = "'" + strings.ReplaceAll(script, "'", `'\''`) + "'"
	}
	return pm.Name + " run " + quoted
}
