//go:build windows

package filesystem

import (
	"os"
	"strings"

	"github.com/cachefoundry/cachefs/cfs/paths"
)

// defaultPathExt mirrors the cmd.exe default when PATHEXT is unset.
const defaultPathExt = ".com;.exe;.bat;.cmd"

// executableCandidates returns the paths to probe for path. A path that
// already carries an extension is probed as is; otherwise each PATHEXT
// extension is appended in order, matching shell lookup.
func executableCandidates(path string) []string {
	if paths.Extension(path) != "" {
		return []string{path}
	}
	pathExt := os.Getenv("PATHEXT")
	if pathExt == "" {
		pathExt = defaultPathExt
	}
	exts := strings.Split(pathExt, ";")
	candidates := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		candidates = append(candidates, path+strings.ToLower(ext))
	}
	return candidates
}

// isExecutable reports whether path may be executed. Windows encodes
// executability in the extension, which executableCandidates already
// constrains, so any existing candidate qualifies.
func isExecutable(path string) bool {
	return true
}
