package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireGit skips the test when git is not installed.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// InitRepo creates an empty repository in a temp dir with a committer
// identity configured and returns its path.
func InitRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	Git(t, dir, "init", "--quiet")
	Git(t, dir, "config", "user.email", "dev@example.com")
	Git(t, dir, "config", "user.name", "Dev")
	Git(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

// Git runs git in dir and fails the test on error. Output is trimmed.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// WriteFile writes content to a path relative to dir, creating parents.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// StagedFiles lists paths staged in the index relative to HEAD, or all
// index entries when there is no commit yet.
func StagedFiles(t *testing.T, dir string) []string {
	t.Helper()

	out := Git(t, dir, "diff", "--cached", "--name-only")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}

// UnstagedFiles lists tracked paths with working tree changes not in the index.
func UnstagedFiles(t *testing.T, dir string) []string {
	t.Helper()

	out := Git(t, dir, "diff", "--name-only")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}
