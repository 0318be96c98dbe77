package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInstallCommand(t *testing.T) {
	t.Parallel()

	cmd := createInstallCommand()

	assert.Equal(t, "install", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestInstallCommand_WritesHook(t *testing.T) {
	isolateDataHome(t)
	dir := setupProject(t, stripSpaces)

	out, err := execute(t, "install", "--force")
	require.NoError(t, err, out)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	assert.Contains(t, out, "Pre-commit hook created at")

	content, err := os.ReadFile(hookPath) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(content), "# managed by spotless-apply")

	info, err := os.Stat(hookPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100, "hook must be executable")

	out, err = execute(t, "install", "--force")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Pre-commit hook updated at")
}

func TestInstallCommand_BacksUpForeignHook(t *testing.T) {
	isolateDataHome(t)
	dir := setupProject(t, stripSpaces)

	hooksDir := filepath.Join(dir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o750))
	//nolint:gosec // hook must be executable
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte("#!/bin/sh\nmake lint\n"), 0o755))

	out, err := execute(t, "install", "--force")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Pre-commit hook replaced at")
	assert.Contains(t, out, "Previous hook saved to")
	backup, err := os.ReadFile(filepath.Join(hooksDir, "pre-commit.bak")) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\nmake lint\n", string(backup))
}
