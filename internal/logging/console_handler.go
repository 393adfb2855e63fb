package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	consoleTimeLayout = "2006-01-02 15:04:05.000"
	requestIDWidth    = 8
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "\033[90m",
	slog.LevelInfo:  "\033[36m",
	slog.LevelWarn:  "\033[33m",
	slog.LevelError: "\033[31m",
}

// consoleHandler renders one human-readable line per record:
//
//	2026-01-02 15:04:05.000 INFO  fetcher dQw4w9WgXcQ | transcript fetched lines=12
//
// The component and video id are lifted out of the attributes into the
// prefix. Attributes bound with WithAttrs are formatted once.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     *slog.LevelVar
	addSource bool
	color     bool

	component string
	videoID   string
	bound     string
	prefix    string
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource, color bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: lvl, addSource: addSource, color: color}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	component, videoID := h.component, h.videoID
	var attrs strings.Builder
	record.Attrs(func(attr slog.Attr) bool {
		switch {
		case h.prefix == "" && attr.Key == FieldComponent && component == "":
			component = attr.Value.String()
		case h.prefix == "" && attr.Key == FieldVideoID && videoID == "":
			videoID = attr.Value.String()
		default:
			writeAttr(&attrs, h.prefix, attr)
		}
		return true
	})

	var b strings.Builder
	b.WriteString(ts.Local().Format(consoleTimeLayout))
	b.WriteByte(' ')
	b.WriteString(h.levelLabel(record.Level))
	if component != "" {
		b.WriteByte(' ')
		b.WriteString(component)
	}
	if videoID != "" {
		b.WriteByte(' ')
		b.WriteString(videoID)
	}
	if component != "" || videoID != "" {
		b.WriteString(" |")
	}
	b.WriteByte(' ')
	if msg := strings.TrimSpace(record.Message); msg != "" {
		b.WriteString(msg)
	} else {
		b.WriteString("(no message)")
	}
	b.WriteString(h.bound)
	b.WriteString(attrs.String())
	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	var bound strings.Builder
	bound.WriteString(h.bound)
	for _, attr := range attrs {
		switch {
		case h.prefix == "" && attr.Key == FieldComponent:
			next.component = attr.Value.String()
		case h.prefix == "" && attr.Key == FieldVideoID:
			next.videoID = attr.Value.String()
		default:
			writeAttr(&bound, h.prefix, attr)
		}
	}
	next.bound = bound.String()
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *consoleHandler) levelLabel(level slog.Level) string {
	var label string
	switch {
	case level >= slog.LevelError:
		label, level = "ERROR", slog.LevelError
	case level >= slog.LevelWarn:
		label, level = "WARN ", slog.LevelWarn
	case level >= slog.LevelInfo:
		label, level = "INFO ", slog.LevelInfo
	default:
		label, level = "DEBUG", slog.LevelDebug
	}
	if !h.color {
		return label
	}
	return levelColors[level] + label + "\033[0m"
}

// writeAttr appends " key=value", flattening groups into dotted keys.
func writeAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			writeAttr(b, prefix, member)
		}
		return
	}
	key := prefix + attr.Key
	if attr.Key == "" {
		key = strings.TrimSuffix(prefix, ".")
	}
	if key == "" {
		return
	}
	value := consoleValue(attr.Value)
	if key == FieldRequestID && len(value) > requestIDWidth {
		value = value[:requestIDWidth]
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
}

func consoleValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindBool, slog.KindInt64, slog.KindUint64, slog.KindDuration:
		return v.String()
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().Local().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
