package filesystem

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cachefoundry/cachefs/cfs/paths"

	"github.com/spf13/afero"
)

// copyBufferSize is the chunk size for streaming copies.
const copyBufferSize = 32 * 1024

// bufferPool recycles copy buffers across concurrent file operations.
var bufferPool = sync.Pool{
	New: func() interface{} {
		buffer := make([]byte, copyBufferSize)
		return &buffer
	},
}

// FileExists reports whether path names an existing non-directory entry.
// It never errors; a failed stat counts as absent.
func (f *FileSystem) FileExists(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path names an existing directory.
func (f *FileSystem) DirExists(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && info.IsDir()
}

// ResolvePath resolves relativity and symlinks via the OS. The target
// must exist; "" is returned when resolution fails. Callers use this as
// an existence probe, so the negative outcome is a value, not an error.
func (f *FileSystem) ResolvePath(path string) string {
	if path == "" {
		return ""
	}
	canonical := paths.Canonicalize(path)
	if f.isOsBacked() {
		resolved, err := filepath.EvalSymlinks(canonical)
		if err != nil {
			return ""
		}
		return resolved
	}
	// Non-OS backends have no symlinks; existence is the only question.
	if ok, err := afero.Exists(f.fs, canonical); err != nil || !ok {
		return ""
	}
	return canonical
}

// ReadFile returns the full content of path.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, truncating previous content. Writers
// needing all-or-nothing visibility to concurrent readers use
// WriteAtomic instead.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	if path == "" {
		return ErrPathEmpty
	}
	if err := afero.WriteFile(f.fs, path, data, defaultFilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CreateDir creates a single directory. The parent must already exist;
// use CreateDirAll to build the whole chain.
func (f *FileSystem) CreateDir(path string) error {
	if path == "" {
		return ErrPathEmpty
	}
	if err := f.fs.Mkdir(path, defaultDirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// CreateDirAll creates a directory along with any missing parents. An
// already existing directory is not an error.
func (f *FileSystem) CreateDirAll(path string) error {
	if path == "" {
		return ErrPathEmpty
	}
	if err := f.fs.MkdirAll(path, defaultDirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// RemoveFile removes a single file. With ignoreErrors set any failure,
// including a missing file, is swallowed and logged at debug level; this
// is the cleanup-context flavor where failure is non-fatal to the
// caller.
func (f *FileSystem) RemoveFile(path string, ignoreErrors bool) error {
	err := f.fs.Remove(path)
	if err == nil {
		return nil
	}
	if ignoreErrors {
		f.logger.Debug("ignoring file removal failure", "path", path, "error", err)
		return nil
	}
	return fmt.Errorf("failed to remove file %s: %w", path, err)
}

// RemoveDir removes a directory and everything below it. With
// ignoreErrors set any failure is swallowed and logged at debug level.
func (f *FileSystem) RemoveDir(path string, ignoreErrors bool) error {
	err := f.removeDir(path)
	if err == nil {
		return nil
	}
	if ignoreErrors {
		f.logger.Debug("ignoring directory removal failure", "path", path, "error", err)
		return nil
	}
	return err
}

func (f *FileSystem) removeDir(path string) error {
	info, err := f.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to access directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	if err := f.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}
	return nil
}

// Move renames src to dst. When the rename fails because the two paths
// live on different filesystems it degrades to a copy followed by
// removal of the source.
func (f *FileSystem) Move(src, dst string) error {
	err := f.fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDeviceError(err) {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}

	f.logger.Debug("cross-device move, copying instead", "src", src, "dst", dst)
	if err := f.CopyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy during cross-device move: %w", err)
	}
	if err := f.fs.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source after cross-device move: %w", err)
	}
	return nil
}

// CopyFile streams a full copy of src to dst, truncating dst when it
// already exists. The destination directory must exist.
func (f *FileSystem) CopyFile(src, dst string) error {
	srcFile, err := f.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}
	defer srcFile.Close()

	dstFile, err := f.fs.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	bufPtr := bufferPool.Get().(*[]byte)
	_, copyErr := io.CopyBuffer(dstFile, srcFile, *bufPtr)
	bufferPool.Put(bufPtr)

	closeErr := dstFile.Close()
	if copyErr != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to finalize copy to %s: %w", dst, closeErr)
	}
	return nil
}

// Touch creates path as an empty file when absent, otherwise refreshes
// its modification and access times.
func (f *FileSystem) Touch(path string) error {
	if path == "" {
		return ErrPathEmpty
	}
	if ok, _ := afero.Exists(f.fs, path); !ok {
		if err := afero.WriteFile(f.fs, path, nil, defaultFilePerm); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		return nil
	}
	now := f.now()
	if err := f.fs.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("failed to touch %s: %w", path, err)
	}
	return nil
}

// isCrossDeviceError reports whether a rename failed because source and
// destination live on different filesystems.
func isCrossDeviceError(err error) bool {
	return strings.Contains(err.Error(), "cross-device link") ||
		strings.Contains(err.Error(), "invalid cross-device link")
}
