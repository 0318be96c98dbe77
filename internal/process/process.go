// Package process runs external commands and captures their output.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs a command to completion in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// CommandError reports a command that could not be started or exited non-zero.
// ExitCode is -1 when the process never ran.
type CommandError struct {
	Err      error
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandLine joins name and args the way they are shown in messages and logs.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and waits for it. Stdout and stderr are
// captured separately.
func (*ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	logger := zerolog.Ctx(ctx)
	command := CommandLine(name, args...)

	// #nosec G204 -- callers pass fixed tool names; arguments are never shell interpolated
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().Str("command", command).Str("dir", dir).Msg("Executing command")

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if err == nil {
		logger.Debug().Str("command", command).Int("stdout_bytes", len(result.Stdout)).Msg("Command succeeded")
		return result, nil
	}

	cmdErr := &CommandError{
		Command:  command,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
		result.ExitCode = cmdErr.ExitCode
	} else {
		result.ExitCode = -1
	}

	logger.Error().
		Str("command", command).
		Str("dir", dir).
		Int("exit_code", cmdErr.ExitCode).
		Str("stderr", cmdErr.Stderr).
		Err(err).
		Msg("Command failed")

	return result, cmdErr
}
