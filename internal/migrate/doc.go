// Package migrate converts a manifest's script annotations into the canonical
// config and writes it as a YAML sidecar, a JSON sidecar, or a field embedded
// in package.json.
package migrate
