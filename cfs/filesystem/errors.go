package filesystem

import "errors"

// Common error types used across the caching layer's filesystem surface.
// Callers match with errors.Is; operational failures additionally wrap
// the underlying OS diagnostic.
var (
	ErrPathEmpty          = errors.New("path cannot be empty")
	ErrNotADirectory      = errors.New("path is not a directory")
	ErrExecutableNotFound = errors.New("executable not found")
	ErrWorkDirChange      = errors.New("failed to change working directory")
)
