// Package vmlog provides the VM's logging infrastructure: a slog.Handler
// that formats records as single, level-prefixed lines and a constructor
// that reads its verbosity from the SYNACOR_LOG_LEVEL environment
// variable (spec.md §6: "the verbosity of an optional log stream may be
// selected by a standard logging environment variable").
//
// Grounded on rcornwell-S370/util/logger/logger.go's LogHandler: a thin
// wrapper around an slog.Handler that collapses a record into one
// space-joined line. This version drops the dual stdout/stderr fan-out
// (S370 always tees to stderr in debug mode; the VM here has exactly one
// destination, supplied by the caller) since cmd/vm already separates its
// own diagnostics from the VM's stdout via flags.
package vmlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// EnvVar is the environment variable New reads to pick the log level.
const EnvVar = "SYNACOR_LOG_LEVEL"

// lineHandler formats each record as "<time> <LEVEL>: <message> <attrs...>"
// on a single line, guarded by a mutex the way LogHandler guards its
// shared writer.
type lineHandler struct {
	out   io.Writer
	mu    *sync.Mutex
	level slog.Leveler
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *lineHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *lineHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{
		r.Time.Format("2006/01/02 15:04:05"),
		r.Level.String() + ":",
		r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", a.Key, a.Value.String()))
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, strings.Join(parts, " ")+"\n")
	return err
}

// New returns a logger writing to w at the level named by SYNACOR_LOG_LEVEL
// ("debug", "info", "warn", "error"; unset or unrecognized defaults to
// "info").
func New(w io.Writer) *slog.Logger {
	return slog.New(&lineHandler{out: w, mu: &sync.Mutex{}, level: levelFromEnv()})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv(EnvVar)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
