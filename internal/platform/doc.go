// Package platform writes files in place of earlier versions. Replacements go
// through a temporary file and a rename so a reader never sees a partial
// package.json or hook. Permission bits are left alone on Windows.
package platform
