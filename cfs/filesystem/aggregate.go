package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cachefoundry/cachefs/cfs/filesystem/types"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
)

// FileInfo returns the metadata snapshot for a single path. For a
// regular file this is its stat. For a directory the snapshot is an
// aggregate over every regular file beneath it: Size is the sum of
// their sizes and ModTime and AccessTime are the newest such times
// found, so an entire cache entry directory ranks by its freshest
// artifact during cleanup. An empty directory keeps its own stat times
// and has Size 0.
//
// Immediate subdirectories are aggregated concurrently, bounded by the
// manager's worker count. Unreadable subtrees are skipped the same way
// Walk skips them under its default policy.
func (f *FileSystem) FileInfo(path string) (types.FileMetadata, error) {
	if path == "" {
		return types.FileMetadata{}, ErrPathEmpty
	}
	info, err := f.fs.Stat(path)
	if err != nil {
		return types.FileMetadata{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	meta := types.NewFileMetadata(path, info)
	if !info.IsDir() {
		return meta, nil
	}

	agg, err := f.aggregateDirectory(path)
	if err != nil {
		return types.FileMetadata{}, err
	}
	meta.Size = agg.size
	if !agg.modTime.IsZero() {
		meta.ModTime = agg.modTime
	}
	if !agg.access.IsZero() {
		meta.AccessTime = agg.access
	}
	return meta, nil
}

// aggregate accumulates the directory rollup: total file size and the
// newest mod and access times seen so far.
type aggregate struct {
	size    int64
	modTime time.Time
	access  time.Time
}

func (a *aggregate) addFile(m types.FileMetadata) {
	a.size += m.Size
	if m.ModTime.After(a.modTime) {
		a.modTime = m.ModTime
	}
	if m.AccessTime.After(a.access) {
		a.access = m.AccessTime
	}
}

func (a *aggregate) merge(b aggregate) {
	a.size += b.size
	if b.modTime.After(a.modTime) {
		a.modTime = b.modTime
	}
	if b.access.After(a.access) {
		a.access = b.access
	}
}

// aggregateDirectory fans immediate subdirectories out over a worker
// pool and folds their subtree rollups together with the directory's
// own files. Only the top-level read can fail; deeper errors skip the
// affected subtree.
func (f *FileSystem) aggregateDirectory(dir string) (aggregate, error) {
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		return aggregate{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var (
		mu    sync.Mutex
		total aggregate
		local aggregate
	)
	p := pool.New().WithMaxGoroutines(f.workers)
	for _, entry := range entries {
		childPath := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			p.Go(func() {
				sub := f.aggregateSubtree(childPath)
				mu.Lock()
				total.merge(sub)
				mu.Unlock()
			})
			continue
		}
		local.addFile(types.NewFileMetadata(childPath, entry))
	}
	p.Wait()
	total.merge(local)
	return total, nil
}

// aggregateSubtree rolls up one subtree sequentially.
func (f *FileSystem) aggregateSubtree(dir string) aggregate {
	var agg aggregate
	_ = afero.Walk(f.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			f.logger.Debug("skipping unreadable entry during aggregation", "path", path, "error", err)
			return nil
		}
		if !info.IsDir() {
			agg.addFile(types.NewFileMetadata(path, info))
		}
		return nil
	})
	return agg
}
