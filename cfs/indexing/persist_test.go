package indexing

import (
	"encoding/binary"
	"testing"

	"github.com/cachefoundry/cachefs/cfs/filesystem"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshotFS(t *testing.T) *filesystem.FileSystem {
	t.Helper()
	fsys := filesystem.New(filesystem.WithFs(afero.NewMemMapFs()), filesystem.WithTempDir("/tmp"))
	require.NoError(t, fsys.CreateDirAll("/idx"))
	return fsys
}

func TestSnapshotSaveLoadRoundTrip(t *testing.T) {
	fsys := newSnapshotFS(t)
	snap := Build(cacheTree())
	require.NoError(t, snap.Save(fsys, "/idx/cache.cfsn"))

	loaded, err := Load(fsys, "/idx/cache.cfsn")
	require.NoError(t, err)

	assert.Equal(t, snap.Meta, loaded.Meta)
	assert.Equal(t, snap.ExtDict, loaded.ExtDict)
	assert.Equal(t, snap.Paths, loaded.Paths)
	assert.Equal(t, snap.Sizes, loaded.Sizes)
	assert.Equal(t, snap.ModTimes, loaded.ModTimes)
	assert.Equal(t, snap.IsDirs, loaded.IsDirs)
	assert.Equal(t, snap.ExtIDs, loaded.ExtIDs)
	assert.Equal(t, snap.Depths, loaded.Depths)

	// The query accelerators are rebuilt, not persisted.
	assert.Equal(t, snap.ByExtension(".o"), loaded.ByExtension(".o"))
	assert.Equal(t, snap.PathsUnder("/cache/aa"), loaded.PathsUnder("/cache/aa"))
	assert.Equal(t, snap.TotalSize(), loaded.TotalSize())

	id, ok := loaded.Lookup("/cache/bb/readme")
	require.True(t, ok)
	assert.Equal(t, "/cache/bb/readme", loaded.Record(id).Path)
}

func TestSnapshotSaveLoadEmpty(t *testing.T) {
	fsys := newSnapshotFS(t)
	require.NoError(t, Build(nil).Save(fsys, "/idx/empty.cfsn"))

	loaded, err := Load(fsys, "/idx/empty.cfsn")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
	assert.Zero(t, loaded.TotalSize())
}

func TestLoadMissingFile(t *testing.T) {
	fsys := newSnapshotFS(t)

	_, err := Load(fsys, "/idx/absent.cfsn")
	assert.Error(t, err)
}

func TestLoadRejectsCorruptData(t *testing.T) {
	fsys := newSnapshotFS(t)
	valid := Build(cacheTree()).encode()

	badMagic := append([]byte("XFSN"), valid[4:]...)
	require.NoError(t, fsys.WriteFile("/idx/magic.cfsn", badMagic))
	_, err := Load(fsys, "/idx/magic.cfsn")
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	badVersion := make([]byte, len(valid))
	copy(badVersion, valid)
	binary.LittleEndian.PutUint32(badVersion[4:8], 99)
	require.NoError(t, fsys.WriteFile("/idx/version.cfsn", badVersion))
	_, err = Load(fsys, "/idx/version.cfsn")
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	require.NoError(t, fsys.WriteFile("/idx/truncated.cfsn", valid[:len(valid)-9]))
	_, err = Load(fsys, "/idx/truncated.cfsn")
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	require.NoError(t, fsys.WriteFile("/idx/tiny.cfsn", []byte("CF")))
	_, err = Load(fsys, "/idx/tiny.cfsn")
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}
