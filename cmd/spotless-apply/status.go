package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stefanodallapalma/java-starter/internal/history"
	"github.com/stefanodallapalma/java-starter/internal/install"
	"github.com/stefanodallapalma/java-starter/internal/process"
	"github.com/stefanodallapalma/java-starter/internal/storage"
	"gopkg.in/yaml.v3"
)

const defaultStatusLimit = 5

type statusReport struct {
	Hook install.Status `yaml:"hook"`
	Runs []history.Run  `yaml:"runs"`
}

// createStatusCommand creates the status command.
func createStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hook installation and recent runs",
		Long:  "Prints the pre-commit hook state and the most recent runs for this repository as YAML.",
		Args:  cobra.NoArgs,
		RunE:  runStatusCommand,
	}
	cmd.Flags().IntP("limit", "n", defaultStatusLimit, "Number of recent runs to show")
	return cmd
}

func runStatusCommand(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
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

	hookStatus, err := install.NewManager(fs, nil, hooksDir, "").Status()
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	dbPath, err := storage.New(fs).GetDatabasePath()
	if err != nil {
		return fmt.Errorf("failed to get journal path: %w", err)
	}
	journal, err := history.NewManager(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = journal.Close() }()

	runs, err := journal.Recent(ctx, root, limit)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	if err := encoder.Encode(statusReport{Hook: hookStatus, Runs: runs}); err != nil {
		return fmt.Errorf("failed to print status: %w", err)
	}
	return encoder.Close() //nolint:wrapcheck // encoder flush
}
