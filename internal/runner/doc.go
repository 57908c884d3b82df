// Package runner detects a project's package manager and runs its scripts.
package runner
