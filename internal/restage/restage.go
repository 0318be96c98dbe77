// Package restage stages working tree changes left behind by the formatter.
package restage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stefanodallapalma/java-starter/internal/constants"
	"github.com/stefanodallapalma/java-starter/internal/process"
)

// Stager queries and updates the git index of one repository.
type Stager struct {
	runner process.Runner
	root   string
}

// New creates a stager for the repository at root.
func New(runner process.Runner, root string) *Stager {
	return &Stager{runner: runner, root: root}
}

// ModifiedFiles lists tracked paths whose working tree content differs from
// the index. Paths are relative to the repository root.
func (s *Stager) ModifiedFiles(ctx context.Context) ([]string, error) {
	result, err := s.runner.Run(ctx, s.root, constants.GitCommand, "diff", "--name-only", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list modified files: %w", err)
	}
	return splitNUL(result.Stdout), nil
}

// Stage adds paths to the index in a single git invocation. An empty list
// does nothing.
func (s *Stager) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	args := append([]string{"add", "--"}, paths...)
	if _, err := s.runner.Run(ctx, s.root, constants.GitCommand, args...); err != nil {
		return fmt.Errorf("failed to stage %d files: %w", len(paths), err)
	}
	return nil
}

// Restage stages every modified tracked file and returns the staged paths.
func (s *Stager) Restage(ctx context.Context) ([]string, error) {
	paths, err := s.ModifiedFiles(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Stage(ctx, paths); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Strs("paths", paths).Int("count", len(paths)).Msg("Re-staged files")
	return paths, nil
}

func splitNUL(out []byte) []string {
	out = bytes.TrimRight(out, "\x00")
	if len(out) == 0 {
		return []string{}
	}

	fields := bytes.Split(out, []byte{0})
	paths := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) > 0 {
			paths = append(paths, string(field))
		}
	}
	return paths
}
