// Package helpers provides shared test utilities.
package helpers

import (
	"context"
	"testing"
	"time"

	"statement-ocr/domain/interfaces"
)

// TestContext returns a context with a sensible test timeout, cleaned up with
// the test.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// nopLogger discards everything; tests that assert on behavior rather than
// log output use it to satisfy logger parameters.
type nopLogger struct{}

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() interfaces.Logger {
	return &nopLogger{}
}

func (l *nopLogger) Debug(string, ...interface{}) {}
func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}
func (l *nopLogger) Fatal(string, ...interface{}) {}

func (l *nopLogger) WithFields(map[string]interface{}) interfaces.Logger { return l }
func (l *nopLogger) WithError(error) interfaces.Logger                   { return l }
