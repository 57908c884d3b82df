// Package config manages user-level settings stored at ~/.scriptdeck/config.yaml.
// Values can be overridden with SCRIPTDECK_* environment variables, e.g.
// SCRIPTDECK_LINT_SECURITY=false. A project's .env file is loaded for
// provider credentials such as GEMINI_API_KEY.
package config
