// Package hooks runs the pre-commit sequence: format, then re-stage.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stefanodallapalma/java-starter/internal/constants"
	"github.com/stefanodallapalma/java-starter/internal/process"
)

// Formatter rewrites sources in place.
type Formatter interface {
	Apply(ctx context.Context) (process.Result, error)
	CommandLine() string
}

// Restager stages the files the formatter changed.
type Restager interface {
	Restage(ctx context.Context) ([]string, error)
}

// Outcome is the terminal state of one pre-commit run.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeFormatFailed  Outcome = "format-failed"
	OutcomeRestageFailed Outcome = "restage-failed"
)

// ExitCode maps the outcome to the process exit status. Both failures exit 1.
func (o Outcome) ExitCode() int {
	if o == OutcomeSuccess {
		return constants.ExitSuccess
	}
	return constants.ExitFailure
}

// Report describes a finished run.
type Report struct {
	StartedAt time.Time
	Err       error
	Outcome   Outcome
	Formatter string
	Staged    []string
	Duration  time.Duration
}

// PreCommit prints progress for the two steps to out.
type PreCommit struct {
	formatter Formatter
	restager  Restager
	out       io.Writer
	ok        *color.Color
	fail      *color.Color
	now       func() time.Time
}

// New creates a pre-commit run writing status lines to out. Color is only
// used when out is a file; color.NoColor still applies to non-terminals.
func New(formatter Formatter, restager Restager, out io.Writer) *PreCommit {
	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	if _, isFile := out.(*os.File); !isFile {
		ok.DisableColor()
		fail.DisableColor()
	}

	return &PreCommit{
		formatter: formatter,
		restager:  restager,
		out:       out,
		ok:        ok,
		fail:      fail,
		now:       time.Now,
	}
}

// Run formats, then re-stages. The re-stager is never called when
// formatting fails. Report.Err holds the failing step's error.
func (p *PreCommit) Run(ctx context.Context) Report {
	logger := zerolog.Ctx(ctx)
	report := Report{
		StartedAt: p.now(),
		Formatter: p.formatter.CommandLine(),
	}
	finish := func(outcome Outcome, err error) Report {
		report.Outcome = outcome
		report.Err = err
		report.Duration = p.now().Sub(report.StartedAt)
		logger.Info().
			Str("outcome", string(outcome)).
			Int("staged", len(report.Staged)).
			Dur("duration", report.Duration).
			Msg("Pre-commit run finished")
		return report
	}

	p.printf("Running %s...\n", report.Formatter)
	if _, err := p.formatter.Apply(ctx); err != nil {
		p.formatFailed(err)
		return finish(OutcomeFormatFailed, err)
	}
	p.success("Spotless formatting completed successfully")

	staged, err := p.restager.Restage(ctx)
	if err != nil {
		p.failure(fmt.Sprintf("Failed to re-stage files: %v", err))
		p.printf("Failed to re-stage formatted files, aborting commit\n")
		return finish(OutcomeRestageFailed, err)
	}
	report.Staged = staged
	p.success(fmt.Sprintf("Re-staged %d formatted files", len(staged)))

	p.success("Files formatted and staged successfully")
	return finish(OutcomeSuccess, nil)
}

func (p *PreCommit) formatFailed(err error) {
	p.failure(fmt.Sprintf("Spotless formatting failed: %v", err))

	var cmdErr *process.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Stdout != "" {
			p.printf("STDOUT: %s\n", cmdErr.Stdout)
		}
		if cmdErr.Stderr != "" {
			p.printf("STDERR: %s\n", cmdErr.Stderr)
		}
	}
	p.printf("Spotless formatting failed, aborting commit\n")
}

func (p *PreCommit) success(msg string) {
	_, _ = p.ok.Fprint(p.out, "✓")
	p.printf(" %s\n", msg)
}

func (p *PreCommit) failure(msg string) {
	_, _ = p.fail.Fprint(p.out, "✗")
	p.printf(" %s\n", msg)
}

func (p *PreCommit) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
