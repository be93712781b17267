// Package testutil holds shared helpers for package tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger builds a debug-level slog.Logger that routes through t.Log,
// so service and store output lands in the test log and only surfaces on
// failure or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	handler := slog.NewTextHandler(&tLogWriter{tb: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(handler)
}

// tLogWriter adapts testing.TB to the io.Writer a slog handler wants.
type tLogWriter struct {
	tb testing.TB
}

func (w *tLogWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	// slog text handlers terminate records with a newline; t.Log adds its own.
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
