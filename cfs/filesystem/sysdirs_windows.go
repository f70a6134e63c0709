//go:build windows

package filesystem

var (
	tempEnvKeys = []string{"TMP", "TEMP"}
	homeEnvKeys = []string{"USERPROFILE"}
)
