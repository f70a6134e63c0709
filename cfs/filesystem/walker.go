package filesystem

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cachefoundry/cachefs/cfs/filesystem/options"
	"github.com/cachefoundry/cachefs/cfs/filesystem/types"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

// Walk enumerates root recursively into metadata snapshots in strict
// post-order: for any directory, everything it contains (recursively) is
// yielded before the directory's own entry, so bottom-up deletion and
// size aggregation over the result are always safe. The root itself is
// not yielded. Directory entries carry the directory's own stat, not an
// aggregate; aggregation is FileInfo's contract.
//
// opts.Filter applies to file names only; directories are always
// traversed and always yielded. opts.IgnorePatterns prunes matching
// files and whole subtrees before the filter runs. Entries of each
// directory are processed in lexical order.
//
// Unreadable subtrees are omitted and counted under the default
// SkipUnreadable policy, matching the best-effort way cache state is
// scanned; options.AbortOnError fails the whole walk on the first error
// instead. Fields left unset fall back to the manager's walk defaults.
func (f *FileSystem) Walk(root string, opts options.WalkOptions) ([]types.FileMetadata, error) {
	if root == "" {
		return nil, ErrPathEmpty
	}
	info, err := f.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read walk root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	if opts.Filter == (types.Filter{}) {
		opts.Filter = f.walkDefaults.Filter
	}
	if opts.OnError == "" {
		opts.OnError = f.walkDefaults.OnError
	}
	if opts.IgnorePatterns == nil {
		opts.IgnorePatterns = f.walkDefaults.IgnorePatterns
	}

	w := &walker{fs: f.fs, logger: f.logger, opts: opts}
	if len(opts.IgnorePatterns) > 0 {
		w.ignored = ignore.CompileIgnoreLines(opts.IgnorePatterns...)
	}

	results, err := w.walkDir(root)
	if err != nil {
		return nil, err
	}
	if w.skipped > 0 {
		f.logger.Warn("walk skipped unreadable entries", "root", root, "skipped", w.skipped)
	}
	return results, nil
}

// walker carries the per-walk state so Walk stays reentrant.
type walker struct {
	fs      afero.Fs
	logger  *slog.Logger
	opts    options.WalkOptions
	ignored *ignore.GitIgnore
	skipped int
}

func (w *walker) walkDir(dir string) ([]types.FileMetadata, error) {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		if w.opts.OnError == options.AbortOnError {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		w.skipped++
		w.logger.Debug("skipping unreadable directory", "path", dir, "error", err)
		return nil, nil
	}

	out := make([]types.FileMetadata, 0, len(entries))
	for _, entry := range entries {
		childPath := filepath.Join(dir, entry.Name())

		if w.ignored != nil && w.ignored.MatchesPath(childPath) {
			w.logger.Debug("ignoring entry", "path", childPath)
			continue
		}

		if entry.IsDir() {
			sub, err := w.walkDir(childPath)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			out = append(out, types.NewFileMetadata(childPath, entry))
			continue
		}

		if !w.opts.Filter.Keep(entry.Name()) {
			continue
		}
		out = append(out, types.NewFileMetadata(childPath, entry))
	}
	return out, nil
}
