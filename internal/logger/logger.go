// Package logger holds the process-wide logrus logger used by every component.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu           sync.RWMutex
	globalLogger *logrus.Logger
)

// Config represents the configuration for the logger
type Config struct {
	Level        string
	File         string
	MaxSize      int
	MaxBackups   int
	MaxAge       int
	Compress     bool
	EnableStdout bool
}

// InitLogger replaces the global logger with one built from config.
// Unknown levels fall back to info.
func InitLogger(config Config) error {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	var writers []io.Writer
	if config.File != "" {
		if err := os.MkdirAll(filepath.Dir(config.File), 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    config.MaxSize,    // megabytes
			MaxBackups: config.MaxBackups, // number of backups
			MaxAge:     config.MaxAge,     // days
			Compress:   config.Compress,
		})
	}
	if config.EnableStdout {
		writers = append(writers, os.Stdout)
	}
	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}

	if level >= logrus.DebugLevel {
		l.SetFormatter(&logrus.TextFormatter{
			ForceColors:     true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z",
		})
	}

	mu.Lock()
	globalLogger = l
	mu.Unlock()
	return nil
}

// SetOutput redirects the global logger, mostly useful in tests.
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// GetLogger returns the global logger instance, creating a default one on first use
func GetLogger() *logrus.Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		globalLogger = logrus.New()
		globalLogger.SetLevel(logrus.InfoLevel)
		globalLogger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return globalLogger
}

// Component returns an entry tagged with the emitting component.
func Component(name string) *logrus.Entry {
	return GetLogger().WithField("component", name)
}

// Debug logs a message at debug level
func Debug(args ...interface{}) {
	GetLogger().Debug(args...)
}

// Info logs a message at info level
func Info(args ...interface{}) {
	GetLogger().Info(args...)
}

// WithFields returns a logger entry with structured fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// WithField returns a logger entry with a single field
func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}
