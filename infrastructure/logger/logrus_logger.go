// Package logger provides the logrus-backed implementation of the domain
// Logger interface.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"statement-ocr/domain/interfaces"
)

// logrusLogger implements the Logger interface using logrus
type logrusLogger struct {
	logger *logrus.Entry
}

// NewLogrusLogger creates a new logrus-based logger
func NewLogrusLogger(level string) interfaces.Logger {
	return NewLogrusLoggerWithOutput(level, os.Stdout)
}

// NewLogrusLoggerWithOutput creates a logger writing to the given sink.
// Tests use this to capture output.
func NewLogrusLoggerWithOutput(level string, out io.Writer) interfaces.Logger {
	log := logrus.New()
	log.SetOutput(out)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   false,
	})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	return &logrusLogger{
		logger: logrus.NewEntry(log),
	}
}

// Debug logs a debug message
func (l *logrusLogger) Debug(msg string, fields ...interface{}) {
	l.logger.WithFields(l.parseFields(fields...)).Debug(msg)
}

// Info logs an info message
func (l *logrusLogger) Info(msg string, fields ...interface{}) {
	l.logger.WithFields(l.parseFields(fields...)).Info(msg)
}

// Warn logs a warning message
func (l *logrusLogger) Warn(msg string, fields ...interface{}) {
	l.logger.WithFields(l.parseFields(fields...)).Warn(msg)
}

// Error logs an error message
func (l *logrusLogger) Error(msg string, fields ...interface{}) {
	l.logger.WithFields(l.parseFields(fields...)).Error(msg)
}

// Fatal logs a fatal message and exits
func (l *logrusLogger) Fatal(msg string, fields ...interface{}) {
	l.logger.WithFields(l.parseFields(fields...)).Fatal(msg)
}

// WithFields returns a logger with additional fields
func (l *logrusLogger) WithFields(fields map[string]interface{}) interfaces.Logger {
	return &logrusLogger{
		logger: l.logger.WithFields(fields),
	}
}

// WithError returns a logger with an error field
func (l *logrusLogger) WithError(err error) interfaces.Logger {
	return &logrusLogger{
		logger: l.logger.WithError(err),
	}
}

// parseFields converts variadic key-value pairs to logrus.Fields
func (l *logrusLogger) parseFields(fields ...interface{}) logrus.Fields {
	result := make(logrus.Fields)

	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			result[key] = fields[i+1]
		}
	}

	return result
}
