//go:build !windows

package filesystem

var (
	tempEnvKeys = []string{"TMPDIR"}
	homeEnvKeys = []string{"HOME"}
)
