// Package logging provides the leveled, file-backed application log.
//
// Messages go to stdout and to a size-rotated file in the configured
// directory. Until Init is called everything is written through the
// standard library's default logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level orders log severities; messages below the configured level are dropped.
// The zero value is LevelInfo.
type Level int

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var (
	mu        sync.RWMutex
	appLogger *log.Logger
	minLevel  = LevelInfo
	rotator   *lumberjack.Logger
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Init sets up logging to stdout and logDir/app.log with rotation.
func Init(logDir string, level Level) error {
	absLogDir, err := filepath.Abs(logDir)
	if err != nil {
		absLogDir = logDir
	}

	if err := os.MkdirAll(absLogDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", absLogDir, err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(absLogDir, "app.log"),
		MaxSize:    10, // MB
		MaxBackups: 30,
		MaxAge:     30, // days
		Compress:   true,
		LocalTime:  true,
	}

	out := io.MultiWriter(os.Stdout, file)

	mu.Lock()
	rotator = file
	appLogger = log.New(out, "", log.LstdFlags)
	minLevel = level
	mu.Unlock()

	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	Info("logger initialized, log file: %s", file.Filename)
	return nil
}

// SetOutput redirects logging to w. Used by tests and by Init. A nil w
// falls back to the standard library's default logger.
func SetOutput(w io.Writer, level Level) {
	mu.Lock()
	defer mu.Unlock()
	appLogger = nil
	if w != nil {
		appLogger = log.New(w, "", 0)
	}
	minLevel = level
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

func logf(level Level, tag, format string, v ...interface{}) {
	mu.RLock()
	l, threshold := appLogger, minLevel
	mu.RUnlock()

	if level < threshold {
		return
	}
	if l == nil {
		log.Printf("["+tag+"] "+format, v...)
		return
	}
	l.Printf("["+tag+"] "+format, v...)
}

// Debug logs debug level messages
func Debug(format string, v ...interface{}) { logf(LevelDebug, "DEBUG", format, v...) }

// Info logs info level messages
func Info(format string, v ...interface{}) { logf(LevelInfo, "INFO", format, v...) }

// Warn logs warning level messages
func Warn(format string, v ...interface{}) { logf(LevelWarn, "WARN", format, v...) }

// Error logs error level messages
func Error(format string, v ...interface{}) { logf(LevelError, "ERROR", format, v...) }

// Printer adapts the package to the Printf-style interfaces expected by
// gorm's logger.Writer and goose.SetLogger. Printf writes at Level, so
// a zero Printer logs at info.
type Printer struct {
	Tag   string
	Level Level
}

func (p Printer) Printf(format string, v ...interface{}) {
	logf(p.Level, p.tagOr(p.Level.String()), strings.TrimRight(format, "\n"), v...)
}

func (p Printer) Fatalf(format string, v ...interface{}) {
	logf(LevelError, p.tagOr("FATAL"), format, v...)
	os.Exit(1)
}

func (p Printer) tagOr(def string) string {
	if p.Tag == "" {
		return def
	}
	return p.Tag
}
