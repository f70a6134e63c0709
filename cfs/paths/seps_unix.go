//go:build !windows

package paths

const separators = "/"
