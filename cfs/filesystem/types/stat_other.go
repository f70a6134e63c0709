//go:build !linux && !darwin && !windows

package types

import (
	"os"
	"time"
)

// statExtra has no portable source for access time or inode here; the
// caller falls back to the mod time and an inode of 0.
func statExtra(_ os.FileInfo) (time.Time, uint64) {
	return time.Time{}, 0
}
