// File: internal/logger/logger.go
// Project: mstnet
// Description: Structured, leveled logging shared by every server component.

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the human-readable name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a case-insensitive level name into a Level,
// defaulting to LevelInfo for anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Logger is a component-scoped, leveled logger.
type Logger struct {
	level      Level
	logger     *log.Logger
	mu         sync.Mutex
	file       *os.File
	component  string
	withCaller bool
}

// Config controls how a Logger writes its output.
type Config struct {
	Level      string
	FilePath   string
	ToStdout   bool
	WithCaller bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init sets up the process-wide default logger. Safe to call once;
// subsequent calls are no-ops.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		defaultLogger, err = New(cfg)
	})
	return err
}

// New builds a standalone Logger from cfg.
func New(cfg Config) (*Logger, error) {
	level := ParseLevel(cfg.Level)

	var writers []io.Writer
	var file *os.File
	var err error

	if cfg.FilePath != "" {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
	}
	if cfg.ToStdout || cfg.FilePath == "" {
		writers = append(writers, os.Stdout)
	}

	return &Logger{
		level:      level,
		logger:     log.New(io.MultiWriter(writers...), "", 0),
		file:       file,
		withCaller: cfg.WithCaller,
	}, nil
}

// WithComponent returns a child logger tagging every line with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		level:      l.level,
		logger:     l.logger,
		file:       l.file,
		component:  component,
		withCaller: l.withCaller,
	}
}

// Close releases the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)

	var line string
	if l.component != "" {
		line = fmt.Sprintf("[%s] %s [%s] %s", timestamp, level, l.component, msg)
	} else {
		line = fmt.Sprintf("[%s] %s %s", timestamp, level, msg)
	}

	if l.withCaller && level >= LevelError {
		if _, file, ln, ok := runtime.Caller(2); ok {
			line = fmt.Sprintf("%s (at %s:%d)", line, filepath.Base(file), ln)
		}
	}

	l.logger.Println(line)
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(LevelError, format, args...) }

// Fatal logs at LevelFatal and terminates the process.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(LevelFatal, format, args...)
	os.Exit(1)
}

// SetLevel adjusts the minimum level this Logger emits.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// WithComponent returns a component-scoped logger built on the default logger,
// falling back to a bare stdout logger if Init was never called (useful in tests).
func WithComponent(component string) *Logger {
	if defaultLogger != nil {
		return defaultLogger.WithComponent(component)
	}
	l, _ := New(Config{Level: "info", ToStdout: true})
	return l.WithComponent(component)
}

// Close closes the default logger's file, if any.
func Close() error {
	if defaultLogger != nil {
		return defaultLogger.Close()
	}
	return nil
}
