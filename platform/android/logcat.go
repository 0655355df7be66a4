package android

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Log priorities, from android/log.h.
const (
	logDebug = 3
	logInfo  = 4
	logWarn  = 5
	logError = 6
)

func priority(l slog.Level) int {
	switch {
	case l >= slog.LevelError:
		return logError
	case l >= slog.LevelWarn:
		return logWarn
	case l >= slog.LevelInfo:
		return logInfo
	default:
		return logDebug
	}
}

// logcatHandler formats records as "msg key=value ..." lines. Logcat adds
// its own time and level columns.
type logcatHandler struct {
	tag    string
	level  slog.Leveler
	write  func(prio int, tag, msg string)
	prefix string
	attrs  []slog.Attr
	mu     *sync.Mutex
}

func newLogcatHandler(tag string, level slog.Leveler, write func(prio int, tag, msg string)) *logcatHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &logcatHandler{tag: tag, level: level, write: write, mu: &sync.Mutex{}}
}

func (h *logcatHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *logcatHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		appendAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	h.write(priority(r.Level), h.tag, b.String())
	return nil
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix + a.Key + "."
		if a.Key == "" {
			p = prefix
		}
		for _, g := range a.Value.Group() {
			appendAttr(b, p, g)
		}
		return
	}
	fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value.Any())
}

func (h *logcatHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *logcatHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}
