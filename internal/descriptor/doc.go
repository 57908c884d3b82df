// Package descriptor defines the canonical script model that every supported
// annotation convention is converted into: script groups of descriptors plus
// the lifecycle-inclusion flag. It also owns the shared emoji rules used by
// converters and the linter.
package descriptor
