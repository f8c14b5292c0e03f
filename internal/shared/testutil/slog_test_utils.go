package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log line with its attributes flattened
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// BufferedSlogHandler captures log records. Handlers derived with
// Logger.With share the store and add their attributes to each record.
type BufferedSlogHandler struct {
	store *recordStore
	attrs []slog.Attr
	t     *testing.T
}

// NewTestLogger returns a logger whose records are captured by the handler
// and echoed to t.Log.
func NewTestLogger(t *testing.T) (*slog.Logger, *BufferedSlogHandler) {
	h := &BufferedSlogHandler{store: &recordStore{}, t: t}
	return slog.New(h), h
}

func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	rec := LogRecord{Level: r.Level, Message: r.Message, Attrs: make(map[string]any, len(h.attrs)+r.NumAttrs())}
	for _, a := range h.attrs {
		rec.Attrs[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.store.mu.Lock()
	h.store.records = append(h.store.records, rec)
	h.store.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", rec.Level, rec.Message, rec.Attrs)
	}
	return nil
}

func (h *BufferedSlogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *BufferedSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &BufferedSlogHandler{store: h.store, attrs: merged, t: h.t}
}

// WithGroup flattens groups
func (h *BufferedSlogHandler) WithGroup(string) slog.Handler { return h }

func (h *BufferedSlogHandler) snapshot() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]LogRecord(nil), h.store.records...)
}

// FindMessage returns the first record whose message contains message
func (h *BufferedSlogHandler) FindMessage(message string) (LogRecord, bool) {
	for _, r := range h.snapshot() {
		if strings.Contains(r.Message, message) {
			return r, true
		}
	}
	return LogRecord{}, false
}

func (h *BufferedSlogHandler) ContainsMessage(message string) bool {
	_, ok := h.FindMessage(message)
	return ok
}

// ContainsAttr reports whether any record carries key with exactly value
func (h *BufferedSlogHandler) ContainsAttr(key string, value any) bool {
	for _, r := range h.snapshot() {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// AssertLogContains fails t unless a record at level contains message
func AssertLogContains(t *testing.T, h *BufferedSlogHandler, level slog.Level, message string) {
	t.Helper()
	for _, r := range h.snapshot() {
		if r.Level == level && strings.Contains(r.Message, message) {
			return
		}
	}
	t.Errorf("no %s log containing %q", level, message)
}

// AssertNoErrors fails t for every error-level record
func AssertNoErrors(t *testing.T, h *BufferedSlogHandler) {
	t.Helper()
	for _, r := range h.snapshot() {
		if r.Level >= slog.LevelError {
			t.Errorf("unexpected error log: %s: %v", r.Message, r.Attrs)
		}
	}
}
