// Package paths provides the pure lexical path helpers the caching layer
// is built on. Nothing here performs filesystem I/O; Canonicalize may
// read the process working directory to absolutize a relative path, and
// that is the only process state consulted.
//
// The semantics are deliberately fixed and differ from path/filepath in
// two places: Append never inserts a separator next to an empty side and
// never cleans, and Extension treats a leading-dot-only name (".bashrc")
// as having no extension.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Append joins base and part with the platform separator. If either side
// is empty no separator is inserted and the other side is returned as is.
// Unlike filepath.Join, the result is not cleaned.
func Append(base, part string) string {
	if base == "" {
		return part
	}
	if part == "" {
		return base
	}
	return base + string(os.PathSeparator) + part
}

// Canonicalize resolves "." and ".." segments lexically and absolutizes a
// relative path against the current working directory. The path does not
// need to exist and symlinks are never followed. Canonicalize is
// idempotent: applying it twice yields the same result as once.
func Canonicalize(path string) string {
	if !filepath.IsAbs(path) {
		if cwd, err := os.Getwd(); err == nil {
			path = filepath.Join(cwd, path)
		}
	}
	return filepath.Clean(path)
}

// Extension returns the final segment's extension including the leading
// dot, or "" when the segment has none. A name whose only dot is the
// first character is a hidden file, not an extension.
func Extension(path string) string {
	return extensionOf(FilePart(path, true))
}

// ChangeExtension swaps the extension of path for newExt (which includes
// its dot), appending newExt when path has no extension.
func ChangeExtension(path, newExt string) string {
	ext := Extension(path)
	return path[:len(path)-len(ext)] + newExt
}

// FilePart returns the path's final segment, the whole input when no
// separator is present. With includeExt false the extension is stripped.
func FilePart(path string, includeExt bool) string {
	name := path
	if idx := lastSeparator(path); idx >= 0 {
		name = path[idx+1:]
	}
	if !includeExt {
		name = name[:len(name)-len(extensionOf(name))]
	}
	return name
}

// DirPart returns everything before the final separator, or "" when the
// path contains no separator at all.
func DirPart(path string) string {
	idx := lastSeparator(path)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// lastSeparator returns the index of the final path separator, -1 when
// none is present. On Windows both slash directions count.
func lastSeparator(path string) int {
	return strings.LastIndexAny(path, separators)
}

// extensionOf implements Extension for a bare name without separators.
func extensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}
	return name[idx:]
}
