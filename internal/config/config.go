package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/lint"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys.
const (
	KeyLogLevel            = "log_level"
	KeyIncludeLifecycle    = "include_lifecycle"
	KeyPreview             = "preview"
	KeyPackageManager      = "package_manager"
	KeyMigrateTarget       = "migrate.target"
	KeyAIModel             = "ai.model"
	KeyAITimeout           = "ai.timeout"
	KeyRequireDescriptions = "lint.require_descriptions"
	KeyRequireEmoji        = "lint.require_emoji"
	KeyRequireTitle        = "lint.require_title"
	KeyMinDescription      = "lint.min_description"
	KeyMaxDescription      = "lint.max_description"
	KeySecurity            = "lint.security"
)

type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
	kindDuration
)

type setting struct {
	kind    kind
	def     any
	allowed []string
}

func settings() map[string]setting {
	policy := lint.DefaultPolicy()
	return map[string]setting{
		KeyLogLevel:            {kind: kindString, def: "info", allowed: []string{"debug", "info", "warn", "error"}},
		KeyIncludeLifecycle:    {kind: kindBool, def: false},
		KeyPreview:             {kind: kindBool, def: false},
		KeyPackageManager:      {kind: kindString, def: "", allowed: []string{"", "npm", "yarn", "pnpm", "bun"}},
		KeyMigrateTarget:       {kind: kindString, def: "yaml", allowed: []string{"yaml", "json", "manifest"}},
		KeyAIModel:             {kind: kindString, def: "gemini-2.5-flash"},
		KeyAITimeout:           {kind: kindDuration, def: 30 * time.Second},
		KeyRequireDescriptions: {kind: kindBool, def: policy.RequireDescriptions},
		KeyRequireEmoji:        {kind: kindBool, def: policy.RequireEmoji},
		KeyRequireTitle:        {kind: kindBool, def: policy.RequireTitle},
		KeyMinDescription:      {kind: kindInt, def: policy.MinDescription},
		KeyMaxDescription:      {kind: kindInt, def: policy.MaxDescription},
		KeySecurity:            {kind: kindBool, def: policy.Security},
	}
}

// Dir returns the path to the config directory (~/.scriptdeck/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for key, s := range settings() {
		viper.SetDefault(key, s.def)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Debug("config file not loaded", "path", FilePath(), "err", err)
	}
}

// LoadDotenv loads dir/.env into the process environment without overriding
// variables that are already set.
func LoadDotenv(dir string) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn("ignoring unreadable .env", "path", path, "err", err)
	}
}

// Known reports whether key is a recognized setting.
func Known(key string) bool {
	_, ok := settings()[key]
	return ok
}

// Keys returns every recognized key, sorted.
func Keys() []string {
	var keys []string
	for k := range settings() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// All returns every recognized key with its effective value.
func All() map[string]string {
	out := make(map[string]string)
	for _, k := range Keys() {
		out[k] = Get(k)
	}
	return out
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	s, ok := settings()[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	typed, err := s.parse(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, typed)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func (s setting) parse(value string) (any, error) {
	switch s.kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("must not be negative")
		}
		return n, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	}
	if len(s.allowed) > 0 {
		for _, a := range s.allowed {
			if value == a {
				return value, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %s", value, strings.Join(s.allowed, ", "))
	}
	return value, nil
}

// LintPolicy returns the configured linter policy.
func LintPolicy() lint.Policy {
	return lint.Policy{
		RequireDescriptions: viper.GetBool(KeyRequireDescriptions),
		RequireEmoji:        viper.GetBool(KeyRequireEmoji),
		RequireTitle:        viper.GetBool(KeyRequireTitle),
		MinDescription:      viper.GetInt(KeyMinDescription),
		MaxDescription:      viper.GetInt(KeyMaxDescription),
		Security:            viper.GetBool(KeySecurity),
	}
}

// AITimeout returns the provider call timeout.
func AITimeout() time.Duration {
	if d := viper.GetDuration(KeyAITimeout); d > 0 {
		return d
	}
	return 30 * time.Second
}

// Bool returns a boolean setting.
func Bool(key string) bool {
	return viper.GetBool(key)
}
