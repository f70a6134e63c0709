package indexing

import (
	"time"
)

// PathID is a stable identifier for a path within a snapshot. IDs are
// dense and assigned in lexical path order, so an unchanged tree yields
// the same IDs on every rebuild and the columns pack tightly.
type PathID = uint64

// FileRecord is the row view of one snapshot entry, materialized on
// demand from the columns.
type FileRecord struct {
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
	ExtID   uint32 // index into the snapshot's extension dictionary
	Depth   uint16 // separator count of the canonical path
}

// SnapshotMeta captures summary information for a built snapshot.
type SnapshotMeta struct {
	NumFiles     int
	NumDirs      int
	BuildUnixSec int64
}
