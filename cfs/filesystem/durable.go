package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteAtomic writes data to path so that a concurrent reader observes
// either the previous complete content or the new complete content,
// never a partial write. The content is staged in a uniquely named file
// in the same directory as path (rename is the atomicity boundary and is
// only atomic within one filesystem) and renamed into place. The staging
// file is removed on every failure path.
func (f *FileSystem) WriteAtomic(path string, data []byte) error {
	if path == "" {
		return ErrPathEmpty
	}
	tmp := f.NewTempFile(filepath.Dir(path), ".tmp")
	defer tmp.Cleanup()

	if err := afero.WriteFile(f.fs, tmp.Path(), data, defaultFilePerm); err != nil {
		return fmt.Errorf("failed to stage atomic write for %s: %w", path, err)
	}
	if err := f.fs.Rename(tmp.Path(), path); err != nil {
		return fmt.Errorf("failed to commit atomic write to %s: %w", path, err)
	}
	return nil
}

// AppendFile appends data to path, creating the file when absent. The
// data goes out as a single write on a descriptor opened with O_APPEND,
// so appends from independent processes each land intact and never
// interleave mid-record. No application-level locking is involved.
func (f *FileSystem) AppendFile(path string, data []byte) error {
	if path == "" {
		return ErrPathEmpty
	}
	fh, err := f.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, defaultFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", path, err)
	}
	_, writeErr := fh.Write(data)
	closeErr := fh.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to append to %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to finalize append to %s: %w", path, closeErr)
	}
	return nil
}

// LinkOrCopy makes dst a hard link to src when the backend supports it,
// degrading to a full byte copy on any link failure (cross-device,
// permissions, unsupported filesystem, non-OS backend). Either way dst
// ends up byte-identical to src. A linked dst shares storage with src,
// so callers must treat written entries as read-only; nothing in this
// layer mutates a file in place once written.
func (f *FileSystem) LinkOrCopy(src, dst string) error {
	// A leftover destination would make the link call fail spuriously.
	_ = f.RemoveFile(dst, true)

	if f.isOsBacked() {
		err := os.Link(src, dst)
		if err == nil {
			return nil
		}
		f.logger.Debug("hard link failed, falling back to copy", "src", src, "dst", dst, "error", err)
	}
	return f.CopyFile(src, dst)
}
