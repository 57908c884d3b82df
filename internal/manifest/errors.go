package manifest

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the project has no package.json.
var ErrNotFound = errors.New("manifest not found")

// SyntaxError reports a manifest or sidecar file that could not be decoded.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax in %s: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
