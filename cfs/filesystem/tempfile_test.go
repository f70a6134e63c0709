package filesystem

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := UniqueID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "generated the same id twice: %s", id)
		seen[id] = true
	}
}

func TestNewTempFileReservesDistinctNames(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/stage"))

	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		tmp := fsys.NewTempFile("/stage", ".tmp")
		assert.False(t, seen[tmp.Path()], "reserved the same name twice: %s", tmp.Path())
		seen[tmp.Path()] = true

		assert.Equal(t, "/stage", filepath.Dir(tmp.Path()))
		assert.True(t, strings.HasSuffix(tmp.Path(), ".tmp"))
		assert.False(t, fsys.FileExists(tmp.Path()), "reservation must not create the file")
	}
}

func TestNewTempFileDefaultsToScratchDir(t *testing.T) {
	fsys := newMemFS(t, WithTempDir("/scratch"))
	require.NoError(t, fsys.CreateDirAll("/scratch"))

	tmp := fsys.NewTempFile("", ".bin")
	assert.Equal(t, "/scratch", filepath.Dir(tmp.Path()))
}

func TestTempFileCleanupRemovesFile(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/stage"))

	tmp := fsys.NewTempFile("/stage", ".tmp")
	require.NoError(t, fsys.WriteFile(tmp.Path(), []byte("staged")))

	tmp.Cleanup()
	assert.False(t, fsys.FileExists(tmp.Path()))
}

func TestTempFileCleanupRemovesDirectoryTree(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/stage"))

	tmp := fsys.NewTempFile("/stage", "")
	require.NoError(t, fsys.CreateDirAll(filepath.Join(tmp.Path(), "nested")))
	require.NoError(t, fsys.WriteFile(filepath.Join(tmp.Path(), "nested", "leaf.txt"), []byte("x")))

	tmp.Cleanup()
	assert.False(t, fsys.DirExists(tmp.Path()))
}

func TestTempFileCleanupToleratesAbsence(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/stage"))

	tmp := fsys.NewTempFile("/stage", ".tmp")
	tmp.Cleanup() // nothing was ever created
	tmp.Cleanup() // and cleanup stays idempotent
}
