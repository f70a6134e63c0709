//go:build windows

package types

import (
	"os"
	"syscall"
	"time"
)

// statExtra extracts the access time from a Windows stat payload. NTFS
// file IDs are not inode-stable across volumes, so the inode stays 0
// here.
func statExtra(info os.FileInfo) (time.Time, uint64) {
	if d, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, d.LastAccessTime.Nanoseconds()), 0
	}
	return time.Time{}, 0
}
