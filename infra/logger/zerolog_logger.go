package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much the service logs.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// File additionally writes logs to a rotated file when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stdout
	level            = zerolog.InfoLevel
	closer io.Closer
)

// Configure sets the shared output and level for loggers created afterwards.
// It returns a function closing the log file, if any.
func Configure(o Options) (func() error, error) {
	lvl := zerolog.InfoLevel
	if o.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(o.Level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	var w io.Writer = consoleOrStdout()
	var c io.Closer
	if o.File != "" {
		if dir := filepath.Dir(o.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		lj := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
		}
		w = zerolog.MultiLevelWriter(w, lj)
		c = lj
	}
	mu.Lock()
	prev := closer
	out, level, closer = w, lvl, c
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	return func() error {
		if c == nil {
			return nil
		}
		return c.Close()
	}, nil
}

func consoleOrStdout() io.Writer {
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger writing to the configured output.
// All logs include the provided component field.
func NewZerologLogger(component string) Logger {
	mu.RLock()
	w, lvl := out, level
	mu.RUnlock()
	if w == io.Writer(os.Stdout) {
		w = consoleOrStdout()
	}
	return NewWithWriter(w, lvl, component)
}

// NewWithWriter creates a ZerologLogger writing to w.
func NewWithWriter(w io.Writer, lvl zerolog.Level, component string) *ZerologLogger {
	z := zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
