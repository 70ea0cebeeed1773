package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger that writes JSON lines to path. The
// terminal belongs to the TUI, so nothing is written to stdout or stderr.
// An unknown level falls back to info and is reported in the log.
func New(path, level string, verbose bool) (*zap.Logger, zap.AtomicLevel, error) {
	atom := zap.NewAtomicLevel()
	levelErr := SetLevel(atom, level, verbose)
	if levelErr != nil {
		atom.SetLevel(zapcore.InfoLevel)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, atom, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, atom, fmt.Errorf("build logger: %w", err)
	}
	logger = logger.Named("lofi")
	if levelErr != nil {
		logger.Warn("ignoring log level from config", zap.Error(levelErr))
	}
	return logger, atom, nil
}

// SetLevel applies a textual level; verbose always wins with debug.
func SetLevel(atom zap.AtomicLevel, level string, verbose bool) error {
	if verbose {
		atom.SetLevel(zapcore.DebugLevel)
		return nil
	}
	if level == "" {
		level = "info"
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	atom.SetLevel(lvl)
	return nil
}
