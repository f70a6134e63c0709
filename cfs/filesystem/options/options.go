// Package options defines the option structs accepted by the caching
// layer's filesystem operations.
package options

import (
	"github.com/cachefoundry/cachefs/cfs/filesystem/types"
)

// ErrorPolicy defines how a traversal reacts to unreadable entries
type ErrorPolicy string

const (
	// SkipUnreadable omits entries that cannot be read and continues.
	SkipUnreadable ErrorPolicy = "skip"
	// AbortOnError stops the traversal at the first failure.
	AbortOnError ErrorPolicy = "abort"
)

// WalkOptions configures recursive directory walks
type WalkOptions struct {
	Filter         types.Filter // Applied to file names only; directories always traverse
	OnError        ErrorPolicy  // Unreadable-subtree policy (SkipUnreadable when empty)
	IgnorePatterns []string     // Patterns to ignore (gitignore style)
}

// DefaultWalkOptions returns the walk configuration used when callers
// pass the zero value.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{OnError: SkipUnreadable}
}
