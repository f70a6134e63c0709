package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cachefoundry/cachefs/cfs/filesystem/types"
	"github.com/cachefoundry/cachefs/cfs/paths"
)

// FindExecutable resolves program to the executable file that would run
// when invoked. A program containing a path separator is probed as is;
// a bare name is searched for in each PATH directory in order. On
// Windows the PATHEXT extensions are tried when program carries none.
//
// The returned RealPath has all symlinks resolved while VirtualPath is
// the candidate as found on disk, so a symlink install of a wrapper can
// tell the two apart. When exclude is non-empty, any candidate whose
// resolved file name (sans extension) equals exclude is passed over;
// a wrapper symlinked over a real tool uses this to find the tool it
// shadows instead of itself.
//
// FindExecutable consults the real process environment and filesystem,
// not a FileSystem backend, since PATH lookup is only meaningful
// against the host.
func FindExecutable(program, exclude string) (types.ExePath, error) {
	if program == "" {
		return types.ExePath{}, ErrPathEmpty
	}

	if programHasPath(program) {
		for _, candidate := range executableCandidates(program) {
			if exe, ok := probeExecutable(candidate, program, exclude); ok {
				return exe, nil
			}
		}
		return types.ExePath{}, fmt.Errorf("%w: %s", ErrExecutableNotFound, program)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		for _, candidate := range executableCandidates(paths.Append(dir, program)) {
			if exe, ok := probeExecutable(candidate, program, exclude); ok {
				return exe, nil
			}
		}
	}
	return types.ExePath{}, fmt.Errorf("%w: %s", ErrExecutableNotFound, program)
}

// programHasPath reports whether program names a location rather than a
// bare command, i.e. it contains a path separator.
func programHasPath(program string) bool {
	return paths.FilePart(program, true) != program
}

// probeExecutable checks a single candidate path and, when it is a
// runnable file whose resolved name is not excluded, builds the ExePath
// for it.
func probeExecutable(candidate, invoked, exclude string) (types.ExePath, bool) {
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return types.ExePath{}, false
	}
	if !isExecutable(candidate) {
		return types.ExePath{}, false
	}
	real, err := filepath.EvalSymlinks(paths.Canonicalize(candidate))
	if err != nil {
		return types.ExePath{}, false
	}
	if exclude != "" && paths.FilePart(real, false) == exclude {
		return types.ExePath{}, false
	}
	return types.ExePath{
		RealPath:    real,
		VirtualPath: candidate,
		InvokedAs:   invoked,
	}, true
}
