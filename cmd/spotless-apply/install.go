package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stefanodallapalma/java-starter/internal/install"
	"github.com/stefanodallapalma/java-starter/internal/process"
	"github.com/stefanodallapalma/java-starter/internal/prompt"
)

// createInstallCommand creates the install command.
func createInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the git pre-commit hook",
		Long: "Writes a pre-commit hook into the repository's hooks directory that runs this binary. " +
			"An existing hook from another tool is backed up to pre-commit.bak (or the next free pre-commit.bak.N) after confirmation.",
		Args: cobra.NoArgs,
		RunE: runInstallCommand,
	}
	cmd.Flags().BoolP("force", "f", false, "Replace an existing hook without asking")
	return cmd
}

func runInstallCommand(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	fs := afero.NewOsFs()
	root, err := findProjectRoot(fs)
	if err != nil {
		return err
	}

	ctx := initLogging(cmd.Context(), fs, root, cmd.ErrOrStderr())

	hooksDir, err := install.HooksDir(ctx, process.NewExecRunner(), root)
	if err != nil {
		return err
	}

	executable, err := selfPath()
	if err != nil {
		return err
	}

	var prompter prompt.Prompter
	if !force {
		prompter = prompt.NewLinerPrompter()
		defer func() { _ = prompter.Close() }()
	}

	result, err := install.NewManager(fs, prompter, hooksDir, executable).Install(ctx, force)
	if err != nil {
		return fmt.Errorf("failed to install hook: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s Pre-commit hook %s at %s\n", color.GreenString("✓"), result.Action, result.HookPath)
	if result.BackupPath != "" {
		_, _ = fmt.Fprintf(out, "  Previous hook saved to %s\n", result.BackupPath)
	}
	return nil
}

// selfPath resolves the running binary so the hook keeps working when it is
// invoked through a symlink.
func selfPath() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(executable)
	if err != nil {
		return executable, nil //nolint:nilerr // unresolved path still works
	}
	return resolved, nil
}
