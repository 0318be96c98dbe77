// Package constants contains the fixed names and paths used by spotless-apply.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "spotless-apply"

	// LogFilename is the default log file name.
	LogFilename = "spotless-apply.log"

	// DatabaseFilename is the run journal database file name.
	DatabaseFilename = "history.db"

	// GitDir is the repository metadata directory that marks a project root.
	GitDir = ".git"

	// HooksDir is the hooks directory inside GitDir.
	HooksDir = "hooks"

	// BackupSuffix is appended to a foreign hook script before it is replaced.
	BackupSuffix = ".bak"
)
