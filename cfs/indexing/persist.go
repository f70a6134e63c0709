package indexing

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cachefoundry/cachefs/cfs/filesystem"
)

const (
	snapshotMagic   = "CFSN"
	snapshotVersion = 1
)

// ErrInvalidSnapshot reports a persisted snapshot that cannot be
// decoded: wrong magic, unsupported version, or truncated columns.
var ErrInvalidSnapshot = errors.New("invalid snapshot file")

// Save encodes the snapshot to its versioned little-endian form and
// commits it with the atomic writer, so a concurrent Load observes
// either the previous snapshot or this one, never a torn file.
func (s *Snapshot) Save(fsys *filesystem.FileSystem, path string) error {
	return fsys.WriteAtomic(path, s.encode())
}

// Load reads a snapshot persisted by Save and rebuilds its query
// accelerators.
func Load(fsys *filesystem.FileSystem, path string) (*Snapshot, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	snap.buildIndexes()
	return snap, nil
}

// encode lays the snapshot out as:
//
//	[magic "CFSN"] [u32 version] [u64 n] [s64 buildUnix]
//	[u32 numFiles] [u32 numDirs]
//	[u32 extCount] extCount x [u32 len | bytes]
//	n x [u32 len | bytes]            paths
//	n x s64                          sizes
//	n x s64                          mod times
//	n x u8                           isDir flags
//	n x u32                          extension ids
//	n x u16                          depths
//
// All integers little-endian. Buffer writes cannot fail, hence the
// discarded errors.
func (s *Snapshot) encode() []byte {
	var buf bytes.Buffer
	u32 := func(v uint32) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	str := func(v string) { u32(uint32(len(v))); buf.WriteString(v) }

	buf.WriteString(snapshotMagic)
	u32(snapshotVersion)
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(s.Paths)))
	_ = binary.Write(&buf, binary.LittleEndian, s.Meta.BuildUnixSec)
	u32(uint32(s.Meta.NumFiles))
	u32(uint32(s.Meta.NumDirs))

	u32(uint32(len(s.ExtDict)))
	for _, ext := range s.ExtDict {
		str(ext)
	}
	for _, p := range s.Paths {
		str(p)
	}
	_ = binary.Write(&buf, binary.LittleEndian, s.Sizes)
	_ = binary.Write(&buf, binary.LittleEndian, s.ModTimes)
	_ = binary.Write(&buf, binary.LittleEndian, s.IsDirs)
	_ = binary.Write(&buf, binary.LittleEndian, s.ExtIDs)
	_ = binary.Write(&buf, binary.LittleEndian, s.Depths)
	return buf.Bytes()
}

func decode(data []byte) (*Snapshot, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	var ver uint32
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	if ver != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, ver)
	}

	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	// Every entry occupies multiple bytes, so a count beyond the
	// remaining data is corruption, not a short file.
	if n > uint64(r.Len()) {
		return nil, fmt.Errorf("%w: implausible entry count %d", ErrInvalidSnapshot, n)
	}

	snap := &Snapshot{}
	var files, dirs uint32
	if err := binary.Read(r, binary.LittleEndian, &snap.Meta.BuildUnixSec); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	if err := binary.Read(r, binary.LittleEndian, &files); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	if err := binary.Read(r, binary.LittleEndian, &dirs); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	if uint64(files)+uint64(dirs) != n {
		return nil, fmt.Errorf("%w: entry counts disagree", ErrInvalidSnapshot)
	}
	snap.Meta.NumFiles = int(files)
	snap.Meta.NumDirs = int(dirs)

	readStr := func() (string, error) {
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return "", err
		}
		if uint64(l) > uint64(r.Len()) {
			return "", io.ErrUnexpectedEOF
		}
		b := make([]byte, l)
		if _, err := io.ReadFull(r, b); err != nil {
			return "", err
		}
		return string(b), nil
	}

	var extCount uint32
	if err := binary.Read(r, binary.LittleEndian, &extCount); err != nil {
		return nil, fmt.Errorf("%w: truncated dictionary", ErrInvalidSnapshot)
	}
	if uint64(extCount) > uint64(r.Len()) {
		return nil, fmt.Errorf("%w: implausible dictionary size %d", ErrInvalidSnapshot, extCount)
	}
	snap.ExtDict = make([]string, extCount)
	for i := range snap.ExtDict {
		s, err := readStr()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated dictionary", ErrInvalidSnapshot)
		}
		snap.ExtDict[i] = s
	}

	snap.Paths = make([]string, n)
	for i := range snap.Paths {
		p, err := readStr()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated paths column", ErrInvalidSnapshot)
		}
		snap.Paths[i] = p
	}

	snap.Sizes = make([]int64, n)
	snap.ModTimes = make([]int64, n)
	snap.IsDirs = make([]bool, n)
	snap.ExtIDs = make([]uint32, n)
	snap.Depths = make([]uint16, n)
	for _, column := range []interface{}{
		snap.Sizes, snap.ModTimes, snap.IsDirs, snap.ExtIDs, snap.Depths,
	} {
		if err := binary.Read(r, binary.LittleEndian, column); err != nil {
			return nil, fmt.Errorf("%w: truncated column", ErrInvalidSnapshot)
		}
	}
	return snap, nil
}
