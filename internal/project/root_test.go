package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRootFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		setup    func(fs afero.Fs)
		name     string
		startDir string
		want     string
		wantOK   bool
	}{
		{
			name: "git directory in start dir",
			setup: func(fs afero.Fs) {
				_ = fs.MkdirAll("/repo/.git", 0o750)
			},
			startDir: "/repo",
			want:     "/repo",
			wantOK:   true,
		},
		{
			name: "git directory in ancestor",
			setup: func(fs afero.Fs) {
				_ = fs.MkdirAll("/repo/.git", 0o750)
				_ = fs.MkdirAll("/repo/src/main/java", 0o750)
			},
			startDir: "/repo/src/main/java",
			want:     "/repo",
			wantOK:   true,
		},
		{
			name: "git file in linked worktree",
			setup: func(fs afero.Fs) {
				_ = afero.WriteFile(fs, "/wt/.git", []byte("gitdir: /repo/.git/worktrees/wt\n"), 0o600)
			},
			startDir: "/wt",
			want:     "/wt",
			wantOK:   true,
		},
		{
			name: "nearest marker wins",
			setup: func(fs afero.Fs) {
				_ = fs.MkdirAll("/outer/.git", 0o750)
				_ = fs.MkdirAll("/outer/inner/.git", 0o750)
			},
			startDir: "/outer/inner",
			want:     "/outer/inner",
			wantOK:   true,
		},
		{
			name: "no marker",
			setup: func(fs afero.Fs) {
				_ = fs.MkdirAll("/plain/dir", 0o750)
			},
			startDir: "/plain/dir",
			want:     "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			tt.setup(fs)

			got, ok := FindRootFrom(fs, tt.startDir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

//nolint:paralleltest // changes working directory
func TestFindRoot_FallbackToCwd(t *testing.T) {
	tempDir := t.TempDir()
	originalCwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalCwd) }()

	require.NoError(t, os.Chdir(tempDir))

	// An empty filesystem has no markers anywhere.
	root, err := FindRoot(afero.NewMemMapFs())
	require.NoError(t, err)

	expected, _ := filepath.EvalSymlinks(tempDir)
	actual, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, expected, actual)
}

//nolint:paralleltest // changes working directory
func TestFindRoot_WithGitDir(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, ".git"), 0o750))
	subDir := filepath.Join(tempDir, "src")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	originalCwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalCwd) }()

	require.NoError(t, os.Chdir(subDir))

	root, err := FindRoot(afero.NewOsFs())
	require.NoError(t, err)

	expected, _ := filepath.EvalSymlinks(tempDir)
	actual, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, expected, actual)
}
