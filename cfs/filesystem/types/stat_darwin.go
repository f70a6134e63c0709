//go:build darwin

package types

import (
	"os"
	"syscall"
	"time"
)

// statExtra extracts access time and inode from a Darwin stat payload.
func statExtra(info os.FileInfo) (time.Time, uint64) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec), st.Ino
	}
	return time.Time{}, 0
}
