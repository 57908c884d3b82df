// Package formats detects which script-annotation convention a manifest uses
// and converts it into the canonical descriptor model.
//
// Each convention is a Format with a fixed priority. A Registry holds the
// formats sorted by priority and answers "which single format wins" for
// migration, or "which formats are present" for diagnostics. The helpers in
// sources.go read the individual conventions and are shared with the
// aggregator, which combines several sources at once.
package formats
