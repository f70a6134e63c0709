//go:build !windows

package filesystem

import "golang.org/x/sys/unix"

// executableCandidates returns the paths to probe for path. Unix has no
// implied extensions, so the path itself is the only candidate.
func executableCandidates(path string) []string {
	return []string{path}
}

// isExecutable reports whether the current process may execute path.
func isExecutable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
