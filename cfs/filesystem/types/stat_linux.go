//go:build linux

package types

import (
	"os"
	"syscall"
	"time"
)

// statExtra extracts access time and inode from a Linux stat payload.
func statExtra(info os.FileInfo) (time.Time, uint64) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)), st.Ino
	}
	return time.Time{}, 0
}
