package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/warpack/warpack/internal/ui/output"
	"github.com/warpack/warpack/internal/ui/style"
)

// PrettyHandler is a slog.Handler that renders human-friendly, colorized
// log lines. Warnings and errors get a level icon, attributes are appended
// as dimmed key=value pairs.
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	out    *termenv.Output
	attrs  []slog.Attr
	group  string
	writer io.Writer
}

// NewPrettyHandler creates a PrettyHandler writing to w.
// A nil writer defaults to os.Stderr.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts:   opts,
		out:    output.New(w),
		writer: w,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle renders a single record as one line.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message

	switch r.Level {
	case slog.LevelWarn:
		msg = h.out.String(style.Warning + " " + msg).Foreground(termenv.RGBColor(string(style.Yellow))).String()
	case slog.LevelError:
		msg = h.out.String(style.Cross + " " + msg).Foreground(termenv.RGBColor(string(style.Red))).String()
	}

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		parts = append(parts, h.formatAttr(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, h.formatAttr(attr))
		return true
	})

	line := msg
	if len(parts) > 0 {
		attrText := strings.Join(parts, " ")
		line += " " + h.out.String(attrText).Foreground(termenv.RGBColor(string(style.Ash))).String()
	}

	_, err := fmt.Fprintln(h.writer, line)
	return err
}

// formatAttr renders an attribute as key=value, prefixed with the
// handler's group path when one is set.
func (h *PrettyHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return key + "=" + attr.Value.String()
}

// WithAttrs returns a copy of the handler with the given attributes
// appended to its stored attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	newAttrs = append(newAttrs, attrs...)
	return &PrettyHandler{
		opts:   h.opts,
		out:    h.out,
		attrs:  newAttrs,
		group:  h.group,
		writer: h.writer,
	}
}

// WithGroup returns a copy of the handler with name appended to its
// group path. An empty name returns the handler unchanged.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{
		opts:   h.opts,
		out:    h.out,
		attrs:  h.attrs,
		group:  group,
		writer: h.writer,
	}
}
