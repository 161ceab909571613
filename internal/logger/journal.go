package logger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Entry is a captured WARN or ERROR record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   []slog.Attr // Bound and record attributes, groups flattened to dotted keys
}

// Format formats an entry for the debug panel, for example
// "15:04:05 ERROR document save failed file=a.txt".
func (e Entry) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", e.Time.Format("15:04:05"), e.Level.String(), e.Message)
	for _, a := range e.Attrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, formatValue(a.Value))
	}
	return b.String()
}

func formatValue(v slog.Value) string {
	s := v.Resolve().String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// journal keeps the newest warnings and errors plus running totals.
type journal struct {
	mu      sync.Mutex
	limit   int
	entries []Entry

	warnCount  int
	errorCount int
}

func newJournal(limit int) *journal {
	return &journal{limit: limit}
}

func (j *journal) add(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, e)
	if over := len(j.entries) - j.limit; over > 0 {
		j.entries = slices.Delete(j.entries, 0, over)
	}

	if e.Level >= slog.LevelError {
		j.errorCount++
	} else {
		j.warnCount++
	}
}

func (j *journal) all() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.entries)
}

func (j *journal) counts() (warn, err int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.warnCount, j.errorCount
}

func (j *journal) reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
	j.warnCount = 0
	j.errorCount = 0
}

// captureHandler wraps another handler and copies WARN and ERROR records,
// with their attributes, into a journal.
type captureHandler struct {
	inner   slog.Handler
	journal *journal
	attrs   []slog.Attr
	group   string
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		attrs := slices.Clone(h.attrs)
		r.Attrs(func(a slog.Attr) bool {
			attrs = appendAttr(attrs, h.group, a)
			return true
		})
		h.journal.add(Entry{
			Time:    r.Time,
			Level:   r.Level,
			Message: r.Message,
			Attrs:   attrs,
		})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := slices.Clone(h.attrs)
	for _, a := range attrs {
		bound = appendAttr(bound, h.group, a)
	}
	return &captureHandler{
		inner:   h.inner.WithAttrs(attrs),
		journal: h.journal,
		attrs:   bound,
		group:   h.group,
	}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &captureHandler{
		inner:   h.inner.WithGroup(name),
		journal: h.journal,
		attrs:   h.attrs,
		group:   joinKey(h.group, name),
	}
}

// appendAttr appends a, flattening group values into dotted keys.
func appendAttr(dst []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = joinKey(prefix, a.Key)
		}
		for _, ga := range v.Group() {
			dst = appendAttr(dst, p, ga)
		}
		return dst
	}
	if a.Key == "" {
		return dst
	}
	return append(dst, slog.Attr{Key: joinKey(prefix, a.Key), Value: v})
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
