package filesystem

import "os"

// TempDir returns the directory for scratch files. The layer override is
// consulted first, then the platform-conventional environment variables,
// then the OS default.
func TempDir() string {
	if dir := os.Getenv("CACHEFS_TMPDIR"); dir != "" {
		return dir
	}
	for _, key := range tempEnvKeys {
		if dir := os.Getenv(key); dir != "" {
			return dir
		}
	}
	return os.TempDir()
}

// UserHomeDir returns the user's home directory. The layer override is
// consulted first, then the platform environment, then the OS lookup. It
// never fails; an unresolvable home falls back to the working directory
// and finally the temp directory.
func UserHomeDir() string {
	if dir := os.Getenv("CACHEFS_HOME"); dir != "" {
		return dir
	}
	for _, key := range homeEnvKeys {
		if dir := os.Getenv(key); dir != "" {
			return dir
		}
	}
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		return dir
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return os.TempDir()
}
