package constants

// PreCommitHook is the git hook name the tool installs itself as.
const PreCommitHook = "pre-commit"

// HookMarker is written into installed hook scripts so they can be told apart
// from hooks managed by other tools.
const HookMarker = "# managed by spotless-apply"

// Process exit codes. The two failure outcomes share ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)
