package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a level name (case-insensitive) to a Level.
// Unknown names fall back to fallback.
func ParseLevel(name string, fallback Level) Level {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "WARNING" {
		return LevelWarn
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l)
		}
	}
	return fallback
}

const (
	filePrefix = "gitz-"
	dateLayout = "2006-01-02"

	// keepDays is how many daily files survive Initialize, today included.
	keepDays = 7
)

// Logger appends timestamped lines to one daily file.
type Logger struct {
	mu    sync.Mutex
	out   io.WriteCloser
	level Level
	pid   int
	path  string
}

var defaultLogger *Logger

// Initialize opens gitz-YYYY-MM-DD.log under logDir, removes older daily
// files and makes it the default logger.
func Initialize(logDir string, level Level) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}
	now := time.Now()
	path := filepath.Join(logDir, filePrefix+now.Format(dateLayout)+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defaultLogger = &Logger{out: file, level: level, pid: os.Getpid(), path: path}

	for _, old := range expiredLogs(logDir, now) {
		if err := os.Remove(old); err != nil {
			Warn("removing old log %s: %v", old, err)
		}
	}
	return nil
}

// expiredLogs lists daily files in dir dated before the retention window.
// Files that are not named like daily logs are left alone.
func expiredLogs(dir string, now time.Time) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	cutoff := now.AddDate(0, 0, -(keepDays - 1)).Format(dateLayout)
	var out []string
	for _, e := range entries {
		date, ok := strings.CutPrefix(e.Name(), filePrefix)
		if !ok || e.IsDir() {
			continue
		}
		date, ok = strings.CutSuffix(date, ".log")
		if !ok {
			continue
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			continue
		}
		// ISO dates order lexically.
		if date < cutoff {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	// Several gitz instances can share one daily file.
	_, _ = fmt.Fprintf(l.out, "[%s] pid=%d %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"), l.pid, level, fmt.Sprintf(format, args...))
}

func log(level Level, format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.printf(level, format, args...)
	}
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	log(LevelDebug, format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	log(LevelInfo, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	log(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	log(LevelError, format, args...)
}

// WithError logs err with context when err is non-nil.
func WithError(err error, context string) {
	if err != nil {
		log(LevelError, "%s: %v", context, err)
	}
}

// Close closes the log file
func Close() error {
	if defaultLogger == nil {
		return nil
	}
	return defaultLogger.out.Close()
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	if defaultLogger != nil {
		return defaultLogger.path
	}
	return ""
}
