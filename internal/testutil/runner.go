package testutil

import (
	"context"
	"sync"

	"github.com/stefanodallapalma/java-starter/internal/process"
)

// Call is one command recorded by FakeRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// CommandLine renders the call the same way process.CommandLine does.
func (c Call) CommandLine() string {
	return process.CommandLine(c.Name, c.Args...)
}

// FakeRunner is a process.Runner that records calls and answers them with
// Handler. A nil Handler succeeds with empty output.
type FakeRunner struct {
	Handler func(Call) (process.Result, error)

	mu    sync.Mutex
	calls []Call
}

// NewFakeRunner creates a FakeRunner answering with handler.
func NewFakeRunner(handler func(Call) (process.Result, error)) *FakeRunner {
	return &FakeRunner{Handler: handler}
}

// Run records the call and delegates to Handler.
func (f *FakeRunner) Run(_ context.Context, dir, name string, args ...string) (process.Result, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Handler == nil {
		return process.Result{}, nil
	}
	return f.Handler(call)
}

// Calls returns a copy of the recorded calls in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Failure builds the error ExecRunner returns for a non-zero exit.
func Failure(call Call, exitCode int, stdout, stderr string) (process.Result, error) {
	result := process.Result{Stdout: []byte(stdout), Stderr: []byte(stderr), ExitCode: exitCode}
	return result, &process.CommandError{
		Command:  call.CommandLine(),
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
	}
}

// Output builds a successful result with the given stdout.
func Output(stdout string) (process.Result, error) {
	return process.Result{Stdout: []byte(stdout)}, nil
}
