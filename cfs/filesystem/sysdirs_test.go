//go:build !windows

package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTempDirPrecedence(t *testing.T) {
	t.Setenv("CACHEFS_TMPDIR", "/layer-tmp")
	t.Setenv("TMPDIR", "/env-tmp")
	assert.Equal(t, "/layer-tmp", TempDir(), "the layer override wins")

	t.Setenv("CACHEFS_TMPDIR", "")
	assert.Equal(t, "/env-tmp", TempDir(), "then the platform environment")

	t.Setenv("TMPDIR", "")
	assert.NotEmpty(t, TempDir(), "the OS default is the last resort")
}

func TestUserHomeDirPrecedence(t *testing.T) {
	t.Setenv("CACHEFS_HOME", "/layer-home")
	t.Setenv("HOME", "/env-home")
	assert.Equal(t, "/layer-home", UserHomeDir(), "the layer override wins")

	t.Setenv("CACHEFS_HOME", "")
	assert.Equal(t, "/env-home", UserHomeDir(), "then the platform environment")

	t.Setenv("HOME", "")
	assert.NotEmpty(t, UserHomeDir(), "an unresolvable home still yields a directory")
}
