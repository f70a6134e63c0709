package filesystem

import (
	"errors"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemFS(t *testing.T, opts ...Option) *FileSystem {
	t.Helper()
	opts = append([]Option{WithFs(afero.NewMemMapFs()), WithTempDir("/tmp")}, opts...)
	return New(opts...)
}

func TestFileExists(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/data"))
	require.NoError(t, fsys.WriteFile("/data/entry.bin", []byte("x")))

	assert.True(t, fsys.FileExists("/data/entry.bin"))
	assert.False(t, fsys.FileExists("/data/missing.bin"), "absent path is not an error, just false")
	assert.False(t, fsys.FileExists("/data"), "a directory is not a file")
}

func TestDirExists(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/data"))
	require.NoError(t, fsys.WriteFile("/data/entry.bin", []byte("x")))

	assert.True(t, fsys.DirExists("/data"))
	assert.False(t, fsys.DirExists("/data/entry.bin"), "a file is not a directory")
	assert.False(t, fsys.DirExists("/nope"))
}

func TestResolvePath(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/data"))
	require.NoError(t, fsys.WriteFile("/data/entry.bin", []byte("x")))

	assert.Equal(t, "/data/entry.bin", fsys.ResolvePath("/data/entry.bin"))
	assert.Equal(t, "/data/entry.bin", fsys.ResolvePath("/data/../data/entry.bin"))
	assert.Equal(t, "", fsys.ResolvePath("/data/missing.bin"), "unresolvable path soft-fails")
	assert.Equal(t, "", fsys.ResolvePath(""))
}

func TestResolvePathFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevation on windows")
	}
	fsys := New() // real OS backend
	dir := t.TempDir()

	target := dir + "/real.txt"
	require.NoError(t, fsys.WriteFile(target, []byte("x")))
	link := dir + "/alias.txt"
	require.NoError(t, os.Symlink(target, link))

	resolved := fsys.ResolvePath(link)
	require.NotEmpty(t, resolved)
	assert.Equal(t, fsys.ResolvePath(target), resolved)
}

func TestReadWriteFile(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.WriteFile("/note.txt", []byte("hello")))

	data, err := fsys.ReadFile("/note.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, fsys.WriteFile("/note.txt", []byte("v2")))
	data, err = fsys.ReadFile("/note.txt")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data), "rewrite truncates previous content")

	_, err = fsys.ReadFile("/missing.txt")
	assert.Error(t, err)

	assert.ErrorIs(t, fsys.WriteFile("", nil), ErrPathEmpty)
}

func TestCreateDir(t *testing.T) {
	fsys := newMemFS(t)

	require.NoError(t, fsys.CreateDir("/one"))
	assert.True(t, fsys.DirExists("/one"))

	assert.ErrorIs(t, fsys.CreateDir(""), ErrPathEmpty)

	require.NoError(t, fsys.CreateDirAll("/a/b/c"))
	assert.True(t, fsys.DirExists("/a/b/c"))
	assert.NoError(t, fsys.CreateDirAll("/a/b/c"), "existing chain is fine")
}

func TestRemoveFile(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.WriteFile("/gone.txt", []byte("x")))

	require.NoError(t, fsys.RemoveFile("/gone.txt", false))
	assert.False(t, fsys.FileExists("/gone.txt"))

	assert.Error(t, fsys.RemoveFile("/gone.txt", false), "double removal is a hard error")
	assert.NoError(t, fsys.RemoveFile("/gone.txt", true), "ignoreErrors swallows the failure")
}

func TestRemoveDir(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/tree/deep"))
	require.NoError(t, fsys.WriteFile("/tree/deep/leaf.txt", []byte("x")))
	require.NoError(t, fsys.WriteFile("/file.txt", []byte("x")))

	require.NoError(t, fsys.RemoveDir("/tree", false))
	assert.False(t, fsys.DirExists("/tree"), "removal is recursive")

	assert.ErrorIs(t, fsys.RemoveDir("/file.txt", false), ErrNotADirectory)
	assert.Error(t, fsys.RemoveDir("/tree", false), "missing directory is a hard error")
	assert.NoError(t, fsys.RemoveDir("/tree", true))
	assert.NoError(t, fsys.RemoveDir("/file.txt", true))
}

func TestMove(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.CreateDirAll("/src"))
	require.NoError(t, fsys.CreateDirAll("/dst"))
	require.NoError(t, fsys.WriteFile("/src/a.bin", []byte("payload")))

	require.NoError(t, fsys.Move("/src/a.bin", "/dst/a.bin"))
	assert.False(t, fsys.FileExists("/src/a.bin"))

	data, err := fsys.ReadFile("/dst/a.bin")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	assert.Error(t, fsys.Move("/src/a.bin", "/dst/b.bin"), "missing source is a hard error")
}

// crossDeviceFs fails every rename the way a mount-boundary rename does.
type crossDeviceFs struct {
	afero.Fs
}

func (c *crossDeviceFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: errors.New("invalid cross-device link")}
}

func TestMoveFallsBackAcrossDevices(t *testing.T) {
	fsys := New(WithFs(&crossDeviceFs{Fs: afero.NewMemMapFs()}), WithTempDir("/tmp"))
	require.NoError(t, fsys.CreateDirAll("/src"))
	require.NoError(t, fsys.CreateDirAll("/dst"))
	require.NoError(t, fsys.WriteFile("/src/a.bin", []byte("payload")))

	require.NoError(t, fsys.Move("/src/a.bin", "/dst/a.bin"))
	assert.False(t, fsys.FileExists("/src/a.bin"), "the source is removed after the copy")

	data, err := fsys.ReadFile("/dst/a.bin")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyFile(t *testing.T) {
	fsys := newMemFS(t)
	require.NoError(t, fsys.WriteFile("/orig.bin", []byte("content")))
	require.NoError(t, fsys.WriteFile("/stale.bin", []byte("this is longer than the copy")))

	require.NoError(t, fsys.CopyFile("/orig.bin", "/copy.bin"))
	data, err := fsys.ReadFile("/copy.bin")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	assert.True(t, fsys.FileExists("/orig.bin"), "source is untouched")

	require.NoError(t, fsys.CopyFile("/orig.bin", "/stale.bin"))
	data, err = fsys.ReadFile("/stale.bin")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data), "existing destination is truncated")

	assert.Error(t, fsys.CopyFile("/missing.bin", "/copy2.bin"))
}

func TestTouch(t *testing.T) {
	pinned := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	fsys := newMemFS(t, WithNowFunc(func() time.Time { return pinned }))

	require.NoError(t, fsys.Touch("/fresh.txt"))
	assert.True(t, fsys.FileExists("/fresh.txt"), "touch creates a missing file")
	data, err := fsys.ReadFile("/fresh.txt")
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, fsys.WriteFile("/aged.txt", []byte("x")))
	require.NoError(t, fsys.Touch("/aged.txt"))
	meta, err := fsys.FileInfo("/aged.txt")
	require.NoError(t, err)
	assert.True(t, meta.ModTime.Equal(pinned), "touch refreshes the mod time")
	data, err = fsys.ReadFile("/aged.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data), "touch leaves content alone")

	assert.ErrorIs(t, fsys.Touch(""), ErrPathEmpty)
}
