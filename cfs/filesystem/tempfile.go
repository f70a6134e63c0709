package filesystem

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// UniqueID returns a collision-resistant identifier for reserving file
// names, e.g. cache entry staging names.
func UniqueID() string {
	return uuid.NewString()
}

// TempFile owns exactly one reserved path inside a base directory.
// Construction only reserves the name; the caller creates the file or
// directory at Path() itself. The owning scope removes whatever ends up
// there by deferring Cleanup.
type TempFile struct {
	fs     afero.Fs
	logger *slog.Logger
	path   string
}

// NewTempFile reserves a unique path inside dir with the given extension
// (including its leading dot). An empty dir reserves inside the
// manager's scratch directory. Nothing is created; the name is verified
// to be free at reservation time.
func (f *FileSystem) NewTempFile(dir, ext string) *TempFile {
	if dir == "" {
		dir = f.tempDir
	}
	var path string
	for {
		path = filepath.Join(dir, UniqueID()+ext)
		if ok, _ := afero.Exists(f.fs, path); !ok {
			break
		}
	}
	return &TempFile{fs: f.fs, logger: f.logger, path: path}
}

// Path returns the reserved path.
func (t *TempFile) Path() string {
	return t.path
}

// Cleanup removes whatever now exists at the reserved path: a file is
// removed, a directory is removed recursively, an absent path is left
// alone. Failures are swallowed and logged at debug level only, because
// Cleanup runs on unwind paths where an error would mask the original
// failure.
func (t *TempFile) Cleanup() {
	info, err := t.fs.Stat(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			t.logger.Debug("temp cleanup stat failed", "path", t.path, "error", err)
		}
		return
	}
	if info.IsDir() {
		err = t.fs.RemoveAll(t.path)
	} else {
		err = t.fs.Remove(t.path)
	}
	if err != nil {
		t.logger.Debug("temp cleanup failed", "path", t.path, "error", err)
	}
}
