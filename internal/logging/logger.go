// Package logging builds the context-scoped zerolog logger used by every run.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stefanodallapalma/java-starter/internal/storage"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Log levels - aliases for zerolog levels
const (
	WarnLevel  = zerolog.WarnLevel
	InfoLevel  = zerolog.InfoLevel
	DebugLevel = zerolog.DebugLevel
)

// Config defines the configuration for logger creation
type Config struct {
	Writer      io.Writer
	ProjectRoot string
	Level       zerolog.Level
}

// New returns a context carrying a logger. Tests set Config.Writer; production
// leaves it nil and gets a rotating file in the XDG data directory.
func New(ctx context.Context, fs afero.Fs, config Config) (context.Context, error) {
	writer, err := openWriter(fs, config)
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(writer).With().
		Timestamp().
		Str("project_root", config.ProjectRoot).
		Logger().
		Level(config.Level)

	return logger.WithContext(ctx), nil
}

func openWriter(fs afero.Fs, config Config) (io.Writer, error) {
	if config.Writer != nil {
		return config.Writer, nil
	}
	if fs == nil {
		return nil, errors.New("filesystem required when no writer provided")
	}

	logFile, err := storage.New(fs).GetLogPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get log path: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}, nil
}

// Get retrieves the logger from the provided context
// Returns the logger associated with the context, or a disabled logger if none exists
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
