package types

import "os"

// NewFileMetadata builds a snapshot for path from an already obtained
// stat result. Access time and inode come from the platform stat payload
// when one is present; backends without one (in-memory filesystems) leave
// the inode at 0 and fall back to the mod time for access time.
func NewFileMetadata(path string, info os.FileInfo) FileMetadata {
	atime, ino := statExtra(info)
	if atime.IsZero() {
		atime = info.ModTime()
	}
	return FileMetadata{
		Path:       path,
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		AccessTime: atime,
		Inode:      ino,
		IsDir:      info.IsDir(),
	}
}
