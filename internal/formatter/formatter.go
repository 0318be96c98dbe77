// Package formatter runs the Gradle Spotless task that rewrites sources in place.
package formatter

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stefanodallapalma/java-starter/internal/constants"
	"github.com/stefanodallapalma/java-starter/internal/process"
)

// Formatter invokes spotlessApply through the project wrapper when present.
type Formatter struct {
	fs     afero.Fs
	runner process.Runner
	root   string
}

// New creates a formatter for the project at root.
func New(fs afero.Fs, runner process.Runner, root string) *Formatter {
	return &Formatter{fs: fs, runner: runner, root: root}
}

// Executable returns the wrapper script when root contains one and the
// globally installed gradle otherwise.
func (f *Formatter) Executable() string {
	wrapper := filepath.Join(f.root, constants.GradleWrapper)
	if info, err := f.fs.Stat(wrapper); err == nil && !info.IsDir() {
		return wrapper
	}
	return constants.GradleCommand
}

// CommandLine is the formatter invocation as shown to the user, with the
// wrapper spelled relative to the project root.
func (f *Formatter) CommandLine() string {
	executable := f.Executable()
	if executable != constants.GradleCommand {
		executable = "./" + constants.GradleWrapper
	}
	return process.CommandLine(executable, constants.SpotlessTask)
}

// Apply runs the formatter to completion. A non-zero exit is returned as a
// *process.CommandError holding the captured stdout and stderr.
func (f *Formatter) Apply(ctx context.Context) (process.Result, error) {
	executable := f.Executable()
	zerolog.Ctx(ctx).Info().
		Str("executable", executable).
		Str("task", constants.SpotlessTask).
		Msg("Running formatter")

	return f.runner.Run(ctx, f.root, executable, constants.SpotlessTask)
}
