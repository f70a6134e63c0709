package filesystem

import (
	"fmt"
	"log/slog"
	"os"
)

// WorkDirGuard captures the process-wide working directory so it can be
// restored after a temporary change. The working directory is global to
// the process: the guard is not synchronized against other goroutines
// changing it concurrently, and nested guards must restore in strict
// LIFO order.
type WorkDirGuard struct {
	prev   string
	active bool
}

// PushWorkDir records the current working directory and changes to dir.
// An empty dir makes both the change and the later Restore no-ops. A
// failed change is a hard error wrapping ErrWorkDirChange, and no guard
// is returned.
//
//	guard, err := filesystem.PushWorkDir(buildDir)
//	if err != nil { ... }
//	defer guard.Restore()
func PushWorkDir(dir string) (*WorkDirGuard, error) {
	if dir == "" {
		return &WorkDirGuard{}, nil
	}
	prev, err := Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkDirChange, err)
	}
	return &WorkDirGuard{prev: prev, active: true}, nil
}

// Restore returns to the directory captured at construction. It is
// idempotent, and a failure to change back is swallowed (logged at warn
// level) because Restore runs on unwind paths.
func (g *WorkDirGuard) Restore() {
	if g == nil || !g.active {
		return
	}
	g.active = false
	if err := os.Chdir(g.prev); err != nil {
		slog.Warn("failed to restore working directory", "dir", g.prev, "error", err)
	}
}

// Getwd returns the process-wide current working directory.
func Getwd() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

// Chdir changes the process-wide current working directory.
func Chdir(dir string) error {
	if dir == "" {
		return ErrPathEmpty
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrWorkDirChange, err)
	}
	return nil
}
