package daemon

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// levelStep is the distance between adjacent slog levels.
const levelStep = 4

// ParseLevel accepts debug, info, warn/warning and error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// AdjustLevel moves base one step quieter per quiet and one step louder per
// verbose, clamped to debug..error.
func AdjustLevel(base slog.Level, verbose, quiet int) slog.Level {
	l := base + slog.Level((quiet-verbose)*levelStep)
	if l < slog.LevelDebug {
		return slog.LevelDebug
	}
	if l > slog.LevelError {
		return slog.LevelError
	}
	return l
}

// OpenLogSink returns stderr for "" or "-", otherwise a rotating file.
func OpenLogSink(cfg LoggingConfig) io.WriteCloser {
	if cfg.File == "" || cfg.File == "-" {
		return nopCloser{os.Stderr}
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxFiles,
	}
}

// NewLogger builds the process logger. attrs are attached to every line.
func NewLogger(w io.Writer, level slog.Level, attrs ...any) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(attrs...)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
