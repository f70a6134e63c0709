// Package indexing turns walk results into queryable columnar snapshots
// for eviction sweeps: which entries carry an extension, what lives
// under a prefix, what went stale before a cutoff.
package indexing

import (
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cachefoundry/cachefs/cfs/filesystem/types"
	"github.com/cachefoundry/cachefs/cfs/paths"
)

// Snapshot is the columnar, scan-friendly form of one walk result. The
// column slices share length and are indexed by PathID. A snapshot is
// immutable after Build or Load; queries are safe for concurrent use.
type Snapshot struct {
	Meta SnapshotMeta

	// ExtDict maps extension ids back to the lowercased extension
	// including its dot. Index 0 is always "", shared by extensionless
	// files and all directories.
	ExtDict []string

	// Core columns, same length, indexed by PathID.
	Paths    []string
	Sizes    []int64
	ModTimes []int64 // unix seconds
	IsDirs   []bool
	ExtIDs   []uint32
	Depths   []uint16

	// Secondary structures, rebuilt by buildIndexes after Build or Load.
	extToID      map[string]uint32
	bitmaps      *AttributeBitmaps
	pathIdx      *pathIndex
	modSorted    []int64  // file mod times, ascending
	modSortedIDs []PathID // parallel to modSorted
	eytzMod      []int64
	eytzIdx      []PathID
}

// Build constructs a snapshot from walk metadata. Paths are normalized
// to canonical forward-slash form and lexically sorted before IDs are
// assigned, so rebuilding an unchanged tree yields identical IDs.
// Duplicate paths collapse to their last record.
func Build(records []types.FileMetadata) *Snapshot {
	rows := make([]types.FileMetadata, len(records))
	copy(rows, records)
	for i := range rows {
		rows[i].Path = normalizePath(rows[i].Path)
	}
	// Stable sort keeps duplicates in input order so the last one wins.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })

	dedup := rows[:0]
	for i, r := range rows {
		if i > 0 && dedup[len(dedup)-1].Path == r.Path {
			dedup[len(dedup)-1] = r
			continue
		}
		dedup = append(dedup, r)
	}
	rows = dedup

	n := len(rows)
	snap := &Snapshot{
		Meta:     SnapshotMeta{BuildUnixSec: time.Now().Unix()},
		ExtDict:  []string{""},
		Paths:    make([]string, n),
		Sizes:    make([]int64, n),
		ModTimes: make([]int64, n),
		IsDirs:   make([]bool, n),
		ExtIDs:   make([]uint32, n),
		Depths:   make([]uint16, n),
	}
	extToID := map[string]uint32{"": 0}
	for i, r := range rows {
		snap.Paths[i] = r.Path
		snap.Sizes[i] = r.Size
		snap.ModTimes[i] = r.ModTime.Unix()
		snap.IsDirs[i] = r.IsDir
		snap.Depths[i] = pathDepth(r.Path)
		if r.IsDir {
			snap.Meta.NumDirs++
			continue
		}
		snap.Meta.NumFiles++
		ext := strings.ToLower(paths.Extension(r.Path))
		id, ok := extToID[ext]
		if !ok {
			id = uint32(len(snap.ExtDict))
			extToID[ext] = id
			snap.ExtDict = append(snap.ExtDict, ext)
		}
		snap.ExtIDs[i] = id
	}
	snap.buildIndexes()
	return snap
}

// buildIndexes derives the query accelerators from the columns.
func (s *Snapshot) buildIndexes() {
	s.extToID = make(map[string]uint32, len(s.ExtDict))
	for i, ext := range s.ExtDict {
		s.extToID[ext] = uint32(i)
	}

	s.pathIdx = newPathIndex()
	s.bitmaps = NewAttributeBitmaps()
	var fileIdx []int
	for i := range s.Paths {
		s.pathIdx.insert(s.Paths[i], PathID(i))
		if s.IsDirs[i] {
			continue
		}
		s.bitmaps.AddExt(s.ExtIDs[i], PathID(i))
		fileIdx = append(fileIdx, i)
	}

	sort.Slice(fileIdx, func(a, b int) bool {
		ia, ib := fileIdx[a], fileIdx[b]
		if s.ModTimes[ia] != s.ModTimes[ib] {
			return s.ModTimes[ia] < s.ModTimes[ib]
		}
		return ia < ib
	})
	s.modSorted = make([]int64, len(fileIdx))
	s.modSortedIDs = make([]PathID, len(fileIdx))
	for k, i := range fileIdx {
		s.modSorted[k] = s.ModTimes[i]
		s.modSortedIDs[k] = PathID(i)
	}
	s.eytzMod, s.eytzIdx = BuildEytzinger(s.modSorted, s.modSortedIDs)
}

// Len returns the number of entries in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Paths)
}

// Lookup returns the PathID for path after normalization.
func (s *Snapshot) Lookup(path string) (PathID, bool) {
	return s.pathIdx.lookup(normalizePath(path))
}

// Record materializes the row for id. An id outside the snapshot yields
// the zero record.
func (s *Snapshot) Record(id PathID) FileRecord {
	if id >= PathID(len(s.Paths)) {
		return FileRecord{}
	}
	return FileRecord{
		Path:    s.Paths[id],
		Size:    s.Sizes[id],
		ModTime: time.Unix(s.ModTimes[id], 0),
		IsDir:   s.IsDirs[id],
		ExtID:   s.ExtIDs[id],
		Depth:   s.Depths[id],
	}
}

// ByExtension returns the files carrying ext (leading dot included,
// case insensitive) in ascending PathID order.
func (s *Snapshot) ByExtension(ext string) []PathID {
	id, ok := s.extToID[strings.ToLower(ext)]
	if !ok {
		return nil
	}
	bm := s.bitmaps.ExtBitmap(id)
	out := make([]PathID, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, PathID(it.Next()))
	}
	return out
}

// PathsUnder returns prefix itself, when indexed, plus every entry below
// it, in ascending PathID order.
func (s *Snapshot) PathsUnder(prefix string) []PathID {
	return s.pathIdx.under(normalizePath(prefix))
}

// StaleBefore returns every file whose mod time is strictly before
// cutoff, oldest first. Directories are not eviction targets and never
// appear.
func (s *Snapshot) StaleBefore(cutoff time.Time) []PathID {
	limit := cutoff.Unix()
	var out []PathID
	for k, mt := range s.modSorted {
		if mt >= limit {
			break
		}
		out = append(out, s.modSortedIDs[k])
	}
	return out
}

// NewestBefore returns a file bearing the newest mod time at or before
// cutoff. ok is false when the snapshot holds no file that old.
func (s *Snapshot) NewestBefore(cutoff time.Time) (PathID, bool) {
	pos := EytzingerSearch(s.eytzMod, cutoff.Unix())
	if pos < 0 {
		return 0, false
	}
	return s.eytzIdx[pos], true
}

// PruneCandidates returns files oldest first until their combined size
// reaches wantBytes. When the budget exceeds the total, every file is
// returned; a non-positive budget yields nil.
func (s *Snapshot) PruneCandidates(wantBytes int64) []PathID {
	if wantBytes <= 0 {
		return nil
	}
	var out []PathID
	var got int64
	for _, id := range s.modSortedIDs {
		out = append(out, id)
		got += s.Sizes[id]
		if got >= wantBytes {
			break
		}
	}
	return out
}

// TotalSize returns the byte total across files. Directory stat sizes
// do not count toward cache usage.
func (s *Snapshot) TotalSize() int64 {
	var total int64
	for i, sz := range s.Sizes {
		if !s.IsDirs[i] {
			total += sz
		}
	}
	return total
}

// normalizePath rewrites path to canonical forward-slash form: cleaned,
// backslashes converted, no trailing slash except on the root.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = filepath.ToSlash(filepath.Clean(p))
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// pathDepth counts separators in a canonical path, clamped to the
// column's range. The root "/" has depth 0.
func pathDepth(p string) uint16 {
	if p == "/" {
		return 0
	}
	d := strings.Count(p, "/")
	if d > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(d)
}
