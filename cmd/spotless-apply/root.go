package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stefanodallapalma/java-starter/internal/logging"
	"github.com/stefanodallapalma/java-starter/internal/project"
)

// createNewRootCommand creates the root command. Run without arguments it
// is the pre-commit hook itself.
func createNewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spotless-apply",
		Short: "Git pre-commit hook running Gradle spotlessApply",
		Long: "Runs Gradle spotlessApply (./gradlew when present, gradle otherwise) and " +
			"re-stages every tracked file it modified. Exits non-zero to abort the commit " +
			"when formatting or staging fails.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runHookCommand,
	}

	rootCmd.AddCommand(
		createInstallCommand(),
		createStatusCommand(),
	)

	return rootCmd
}

// findProjectRoot finds the repository the command operates on
func findProjectRoot(fs afero.Fs) (string, error) {
	root, err := project.FindRoot(fs)
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	return root, nil
}

// initLogging attaches the file logger for root to ctx. When the log file
// cannot be opened, warnings go to fallback instead and the command carries on.
func initLogging(ctx context.Context, fs afero.Fs, root string, fallback io.Writer) context.Context {
	fileCtx, err := logging.New(ctx, fs, logging.Config{
		ProjectRoot: root,
		Level:       logging.DebugLevel,
	})
	if err == nil {
		return fileCtx
	}

	stderrCtx, stderrErr := logging.New(ctx, nil, logging.Config{
		Writer:      zerolog.ConsoleWriter{Out: fallback, NoColor: true},
		ProjectRoot: root,
		Level:       logging.WarnLevel,
	})
	if stderrErr != nil {
		return zerolog.Nop().WithContext(ctx)
	}
	logging.Get(stderrCtx).Warn().Err(err).Msg("File logging unavailable")
	return stderrCtx
}
