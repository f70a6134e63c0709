// Package cfs carries the application-wide defaults and the logger
// factory shared by the caching layer's packages.
package cfs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName is the canonical name used for config lookup and dot files
	DefaultAppName    = "cachefs"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultCacheDir   = filepath.Join(getHomeDir(), "."+DefaultAppName, ".cache")

	// DefaultIgnoreFile is the per-directory ignore file consulted by walks
	DefaultIgnoreFile = "." + DefaultAppName + "ignore"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			// Last resort - use the OS temp directory
			log.Printf("Unable to get home or working directory, using %s: %v", os.TempDir(), err)
			return os.TempDir()
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// GetLeveledLogger returns GetLogger clamped to the named level. Unknown
// or empty names fall back to info.
func GetLeveledLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return GetLogger().Level(lvl)
}
