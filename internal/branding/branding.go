// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. They name the command, the user config directory,
// the environment prefix, and the on-disk names of the canonical config
// (the embedded package.json field and the sidecar file base name).
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	ManifestField string `yaml:"manifest_field"`
	SidecarBase   string `yaml:"sidecar_base"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "scriptdeck",
			DisplayName:   "ScriptDeck",
			Description:   "Interactive launcher, migrator and linter for package.json scripts",
			HomeDir:       ".scriptdeck",
			EnvPrefix:     "SCRIPTDECK",
			ManifestField: "scriptdeck",
			SidecarBase:   ".scriptdeck",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "scriptdeck").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "ScriptDeck").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".scriptdeck").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SCRIPTDECK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ManifestField returns the package.json field that embeds the canonical config.
func ManifestField() string { load(); return defaults.ManifestField }

// SidecarBase returns the sidecar file name without extension (e.g., ".scriptdeck").
func SidecarBase() string { load(); return defaults.SidecarBase }
