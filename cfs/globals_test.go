package cfs

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetLeveledLogger(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, GetLeveledLogger("debug").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, GetLeveledLogger("warn").GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, GetLeveledLogger("error").GetLevel())

	assert.Equal(t, zerolog.InfoLevel, GetLeveledLogger("nonsense").GetLevel(),
		"unknown names clamp to info")
	assert.Equal(t, zerolog.InfoLevel, GetLeveledLogger("").GetLevel())
}

func TestApplicationDefaults(t *testing.T) {
	assert.Equal(t, "cachefs", DefaultAppName)
	assert.Equal(t, ".cachefsignore", DefaultIgnoreFile)
	assert.NotEmpty(t, DefaultConfigPath)
	assert.NotEmpty(t, DefaultCacheDir)
}
