// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// Level types
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// Format types
	FormatJSON = "json"
	FormatText = "text"
)

// Opts holds logging configuration options.
type Opts struct {
	Level  string
	Format string
}

// Init initializes the default slog logger, writing to w.
func Init(opts Opts, w io.Writer) error {
	logger, err := NewLogger(opts, w)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// NewLogger builds a logger for the given options.
func NewLogger(opts Opts, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(opts.Format) {
	case FormatText, "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unrecognized log format: %s", opts.Format)
	}
}

var levelToSlogLevel = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// ParseLevel maps a level name to its slog level. An empty name means warn.
func ParseLevel(level string) (slog.Level, error) {
	if level == "" {
		return slog.LevelWarn, nil
	}
	if l, ok := levelToSlogLevel[strings.ToLower(level)]; ok {
		return l, nil
	}
	return slog.LevelInfo, fmt.Errorf("unrecognized log level: %s", level)
}

// ValidLevel reports whether level is a known level name.
func ValidLevel(level string) bool {
	_, ok := levelToSlogLevel[strings.ToLower(level)]
	return ok
}

// ValidFormat reports whether format is a known format name.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON:
		return true
	}
	return false
}
