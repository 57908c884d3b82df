// Package manifest loads a project's package.json and optional sidecar config.
//
// The manifest is decoded once, preserving key order, and every scripts entry
// is classified at ingestion time as a runnable command, a category header
// marker, or a `?key` pseudo-description. Sidecar files (YAML or JSON) are
// decoded into the canonical descriptor.Config and can be validated against
// the embedded JSON schema.
package manifest
