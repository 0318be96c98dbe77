package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stefanodallapalma/java-starter/internal/formatter"
	"github.com/stefanodallapalma/java-starter/internal/history"
	"github.com/stefanodallapalma/java-starter/internal/hooks"
	"github.com/stefanodallapalma/java-starter/internal/logging"
	"github.com/stefanodallapalma/java-starter/internal/process"
	"github.com/stefanodallapalma/java-starter/internal/restage"
	"github.com/stefanodallapalma/java-starter/internal/storage"
)

// ExitError carries the exit code of a failed hook run
type ExitError struct {
	Message string
	Code    int
}

func (e *ExitError) Error() string {
	return e.Message
}

// runHookCommand formats, re-stages and journals one pre-commit run.
func runHookCommand(cmd *cobra.Command, _ []string) error {
	fs := afero.NewOsFs()

	root, err := findProjectRoot(fs)
	if err != nil {
		return err
	}

	ctx := initLogging(cmd.Context(), fs, root, cmd.ErrOrStderr())

	runner := process.NewExecRunner()
	preCommit := hooks.New(
		formatter.New(fs, runner, root),
		restage.New(runner, root),
		cmd.OutOrStdout(),
	)

	report := preCommit.Run(ctx)
	recordRun(ctx, fs, root, report)

	if code := report.Outcome.ExitCode(); code != 0 {
		return &ExitError{Code: code, Message: fmt.Sprintf("pre-commit %s: %v", report.Outcome, report.Err)}
	}
	return nil
}

// recordRun appends the report to the journal. Journal problems are logged
// and never change the hook result.
func recordRun(ctx context.Context, fs afero.Fs, root string, report hooks.Report) {
	logger := logging.Get(ctx)

	dbPath, err := storage.New(fs).GetDatabasePath()
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping run journal")
		return
	}

	journal, err := history.NewManager(ctx, dbPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", dbPath).Msg("Skipping run journal")
		return
	}
	defer func() { _ = journal.Close() }()

	run := history.Run{
		ProjectRoot: root,
		StartedAt:   report.StartedAt,
		Duration:    report.Duration,
		Outcome:     string(report.Outcome),
		Formatter:   report.Formatter,
		Staged:      report.Staged,
	}
	if report.Err != nil {
		run.Error = report.Err.Error()
	}

	if err := journal.Record(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("Failed to record run")
	}
}
