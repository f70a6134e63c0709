// Package filesystem implements the filesystem primitives the caching
// layer is built on: existence and metadata queries, durable writers
// (atomic write, multi-process append, link-or-copy), scoped temporary
// resources, a scoped working-directory guard, a post-order directory
// walker and executable resolution.
//
// Two error policies apply across the surface. Queries that probe for an
// expected negative (FileExists, DirExists, ResolvePath) soft-fail with a
// zero value. Operations that mutate or commit state hard-fail with the
// OS diagnostic wrapped, unless an explicit best-effort flag is passed.
// Scope-exit cleanup (TempFile.Cleanup, WorkDirGuard.Restore) never
// surfaces errors.
package filesystem

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cachefoundry/cachefs/cfs"
	"github.com/cachefoundry/cachefs/cfs/config"
	"github.com/cachefoundry/cachefs/cfs/filesystem/options"

	"github.com/spf13/afero"
)

const (
	defaultFilePerm = 0o644
	defaultDirPerm  = 0o755
)

// FileSystem is the filesystem manager for the caching layer. Every
// path-addressed operation goes through its backing afero.Fs, so the
// whole surface runs against an in-memory filesystem in tests; the
// default backend is the real OS.
//
// Process-wide concerns (working directory, PATH search, platform
// directories) are package-level functions, not methods: no backend can
// virtualize them.
type FileSystem struct {
	fs     afero.Fs
	logger *slog.Logger
	now    func() time.Time

	walkDefaults options.WalkOptions
	workers      int

	homeDir string
	tempDir string
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithFs swaps the backing filesystem:
//
//	fsys := filesystem.New(filesystem.WithFs(afero.NewMemMapFs()))
func WithFs(fs afero.Fs) Option {
	return func(f *FileSystem) { f.fs = fs }
}

// WithLogger routes operational logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(f *FileSystem) { f.logger = l }
}

// WithWalkOptions sets the walk defaults applied where callers leave
// fields unset.
func WithWalkOptions(opts options.WalkOptions) Option {
	return func(f *FileSystem) { f.walkDefaults = opts }
}

// WithNowFunc overrides the clock, for tests pinning timestamps.
func WithNowFunc(now func() time.Time) Option {
	return func(f *FileSystem) {
		if now != nil {
			f.now = now
		}
	}
}

// WithWorkers bounds the pool used for directory aggregation.
func WithWorkers(n int) Option {
	return func(f *FileSystem) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithTempDir overrides the directory used for unanchored temp
// reservations.
func WithTempDir(dir string) Option {
	return func(f *FileSystem) {
		if dir != "" {
			f.tempDir = dir
		}
	}
}

// New creates a filesystem manager. Defaults are seeded from the loaded
// application config when one is present; explicit options always win.
func New(opts ...Option) *FileSystem {
	f := &FileSystem{
		fs:           afero.NewOsFs(),
		logger:       slog.Default(),
		now:          time.Now,
		walkDefaults: options.DefaultWalkOptions(),
		workers:      runtime.NumCPU(),
		homeDir:      UserHomeDir(),
		tempDir:      TempDir(),
	}

	cfg := config.AppConfig.CacheFS
	if cfg.Walk.OnError != "" {
		f.walkDefaults.OnError = options.ErrorPolicy(cfg.Walk.OnError)
	}
	if cfg.Walk.Workers > 0 {
		f.workers = cfg.Walk.Workers
	}
	if cfg.TempDir != "" {
		f.tempDir = cfg.TempDir
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetHomeDir returns the home directory captured at construction.
func (f *FileSystem) GetHomeDir() string {
	return f.homeDir
}

// GetTempDir returns the scratch directory captured at construction.
func (f *FileSystem) GetTempDir() string {
	return f.tempDir
}

// LoadIgnoreFile reads gitignore-style patterns from the layer's ignore
// file in dir, for feeding into WalkOptions.IgnorePatterns. A missing
// file yields nil patterns and no error.
func (f *FileSystem) LoadIgnoreFile(dir string) ([]string, error) {
	path := filepath.Join(dir, cfs.DefaultIgnoreFile)

	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading %s file: %w", cfs.DefaultIgnoreFile, err)
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// isOsBacked reports whether the backing store is the real OS, where
// inode and symlink semantics are meaningful.
func (f *FileSystem) isOsBacked() bool {
	_, ok := f.fs.(*afero.OsFs)
	return ok
}
