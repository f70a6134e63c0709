// Package config loads the caching layer's configuration with viper.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cachefoundry/cachefs/cfs"

	"github.com/spf13/viper"
)

// Config stores all configuration of the caching layer.
// The values are read by viper from a config file or environment variables.
type Config struct {
	CacheFS CacheFSConfig `mapstructure:"cachefs"`
}

// CacheFSConfig stores layer-wide settings.
type CacheFSConfig struct {
	CacheDir string     `mapstructure:"cacheDir"`
	TempDir  string     `mapstructure:"tempDir"` // Empty means the platform temp directory
	Walk     WalkConfig `mapstructure:"walk"`
	Log      LogConfig  `mapstructure:"log"`
}

// WalkConfig stores traversal defaults.
type WalkConfig struct {
	OnError string `mapstructure:"onError"` // "skip" or "abort"
	Workers int    `mapstructure:"workers"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", cfs.DefaultAppName))
		viper.AddConfigPath(cfs.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("cachefs.cacheDir", cfs.DefaultCacheDir)
	viper.SetDefault("cachefs.tempDir", "")
	viper.SetDefault("cachefs.walk.onError", "skip")
	viper.SetDefault("cachefs.walk.workers", runtime.NumCPU())
	viper.SetDefault("cachefs.log.level", "info")

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // cachefs.walk.onError becomes CACHEFS_WALK_ONERROR

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults and environment values are used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
