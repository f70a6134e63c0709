// Package types defines the value types exchanged across the caching
// layer's filesystem surface: metadata snapshots, traversal filters and
// resolved executable paths.
package types

import (
	"fmt"
	"time"
)

// FileMetadata represents an immutable snapshot of one filesystem entry.
// There is no live handle behind it; callers refresh by querying again.
//
// Inode is 0 on filesystems and backends without a stable inode
// equivalent (Windows volumes, in-memory backends).
type FileMetadata struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModTime    time.Time `json:"mod_time"`
	AccessTime time.Time `json:"access_time"`
	Inode      uint64    `json:"inode,omitempty"`
	IsDir      bool      `json:"is_dir"`
}

// HumanSize renders the snapshot's size for logs and reports.
func (m FileMetadata) HumanSize() string {
	return HumanReadableSize(m.Size)
}

// ExePath represents a resolved executable location. RealPath has every
// symlink followed; VirtualPath is the entry found on the search path and
// may itself be a symlink to RealPath; InvokedAs preserves the caller's
// original command text, which may be a bare name rather than a path.
type ExePath struct {
	RealPath    string `json:"real_path"`
	VirtualPath string `json:"virtual_path"`
	InvokedAs   string `json:"invoked_as"`
}

// HumanReadableSize renders a byte count using binary units with one
// decimal, e.g. "4.7 MiB". Values under one KiB render as plain bytes.
func HumanReadableSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
