// Package install writes the git pre-commit hook that runs spotless-apply.
package install

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stefanodallapalma/java-starter/internal/constants"
	"github.com/stefanodallapalma/java-starter/internal/process"
	"github.com/stefanodallapalma/java-starter/internal/prompt"
)

// ErrDeclined is returned when the user refuses to replace a foreign hook.
var ErrDeclined = errors.New("existing pre-commit hook left in place")

// Action says what Install did.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionReplaced Action = "replaced"
)

// Result describes a finished install.
type Result struct {
	Action     Action
	HookPath   string
	BackupPath string
}

// Status describes the hook currently on disk.
type Status struct {
	Path       string `yaml:"path"`
	Executable string `yaml:"executable,omitempty"`
	Installed  bool   `yaml:"installed"`
	Managed    bool   `yaml:"managed"`
}

// Manager installs and inspects the pre-commit hook in one hooks directory.
type Manager struct {
	fs         afero.Fs
	prompter   prompt.Prompter
	hooksDir   string
	executable string
}

// NewManager creates a manager writing hooks that exec executable. prompter
// is consulted before a foreign hook is replaced and may be nil when force
// is always used.
func NewManager(fs afero.Fs, prompter prompt.Prompter, hooksDir, executable string) *Manager {
	return &Manager{
		fs:         fs,
		prompter:   prompter,
		hooksDir:   hooksDir,
		executable: executable,
	}
}

// HooksDir asks git where hooks live for the repository at root. This
// honours core.hooksPath and linked worktrees.
func HooksDir(ctx context.Context, runner process.Runner, root string) (string, error) {
	result, err := runner.Run(ctx, root, constants.GitCommand, "rev-parse", "--git-path", constants.HooksDir)
	if err != nil {
		return "", fmt.Errorf("failed to locate hooks directory: %w", err)
	}

	dir := strings.TrimSpace(string(result.Stdout))
	if dir == "" {
		return "", errors.New("failed to locate hooks directory: empty git output")
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}

// HookPath is the path of the pre-commit script.
func (m *Manager) HookPath() string {
	return filepath.Join(m.hooksDir, constants.PreCommitHook)
}

// Script renders the hook script for the configured executable.
func (m *Manager) Script() []byte {
	var b bytes.Buffer
	b.WriteString("#!/bin/sh\n")
	b.WriteString(constants.HookMarker + "\n")
	fmt.Fprintf(&b, "exec %s \"$@\"\n", shellQuote(m.executable))
	return b.Bytes()
}

// Install writes the hook. Our own hook is rewritten silently. A foreign
// hook is backed up first, after confirmation unless force is set.
func (m *Manager) Install(ctx context.Context, force bool) (Result, error) {
	logger := zerolog.Ctx(ctx)
	hookPath := m.HookPath()
	result := Result{HookPath: hookPath, Action: ActionCreated}

	if err := m.fs.MkdirAll(m.hooksDir, 0o750); err != nil {
		return Result{}, fmt.Errorf("failed to create hooks directory %s: %w", m.hooksDir, err)
	}

	existing, err := afero.ReadFile(m.fs, hookPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Result{}, fmt.Errorf("failed to read existing hook %s: %w", hookPath, err)
	case isManaged(existing):
		result.Action = ActionUpdated
	default:
		if !force {
			if err := m.confirmReplace(); err != nil {
				return Result{}, err
			}
		}
		backupPath, err := m.backup(hookPath, existing)
		if err != nil {
			return Result{}, err
		}
		result.Action = ActionReplaced
		result.BackupPath = backupPath
	}

	if err := afero.WriteFile(m.fs, hookPath, m.Script(), 0o755); err != nil { //nolint:gosec // hooks must be executable
		return Result{}, fmt.Errorf("failed to write hook %s: %w", hookPath, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := m.fs.Chmod(hookPath, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to make hook executable: %w", err)
	}

	logger.Info().
		Str("hook_path", hookPath).
		Str("action", string(result.Action)).
		Str("backup_path", result.BackupPath).
		Msg("Installed pre-commit hook")

	return result, nil
}

// Status reports whether a hook exists and whether it is ours.
func (m *Manager) Status() (Status, error) {
	status := Status{Path: m.HookPath()}

	content, err := afero.ReadFile(m.fs, status.Path)
	if errors.Is(err, os.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to read hook %s: %w", status.Path, err)
	}

	status.Installed = true
	status.Managed = isManaged(content)
	if status.Managed {
		status.Executable = execTarget(content)
	}
	return status, nil
}

func (m *Manager) confirmReplace() error {
	if m.prompter == nil {
		return fmt.Errorf("%w: rerun with --force to replace it", ErrDeclined)
	}

	ok, err := prompt.Confirm(m.prompter, fmt.Sprintf("%s exists and is not managed by %s. Replace it?",
		m.HookPath(), constants.AppName))
	if err != nil {
		return fmt.Errorf("failed to confirm hook replacement: %w", err)
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

// backup copies a foreign hook next to itself. Earlier backups are kept:
// pre-commit.bak is taken first, then pre-commit.bak.1, pre-commit.bak.2 and so on.
func (m *Manager) backup(hookPath string, content []byte) (string, error) {
	backupPath, err := m.freeBackupPath(hookPath)
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(m.fs, backupPath, content, 0o755); err != nil { //nolint:gosec // keep backup runnable
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return backupPath, nil
}

func (m *Manager) freeBackupPath(hookPath string) (string, error) {
	base := hookPath + constants.BackupSuffix
	candidate := base
	for i := 1; ; i++ {
		exists, err := afero.Exists(m.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check backup file %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}
}

func isManaged(script []byte) bool {
	return bytes.Contains(script, []byte(constants.HookMarker))
}

func execTarget(script []byte) string {
	for _, line := range strings.Split(string(script), "\n") {
		rest, ok := strings.CutPrefix(line, "exec ")
		if !ok {
			continue
		}
		rest = strings.TrimSuffix(rest, ` "$@"`)
		return shellUnquote(rest)
	}
	return ""
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func shellUnquote(s string) string {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], `'\''`, "'")
}
