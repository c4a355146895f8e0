// Package logging installs the process-wide slog logger.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorGreen  = "\x1b[32m"
	colorCyan   = "\x1b[36m"
)

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown verbosity %q", s)
	}
	return lvl, nil
}

// NewHandler returns a text handler writing to w. With color set, each
// record is wrapped in the ANSI colour of its level.
func NewHandler(w io.Writer, lvl slog.Leveler, color bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl}
	if !color {
		return slog.NewTextHandler(w, opts)
	}
	buf := new(bytes.Buffer)
	return &colorHandler{
		mu:    new(sync.Mutex),
		out:   w,
		buf:   buf,
		inner: slog.NewTextHandler(buf, opts),
	}
}

// colorHandler formats into a shared buffer with a text handler and copies
// the line to out between colour codes. Handlers derived through WithAttrs
// and WithGroup share the buffer and its lock.
type colorHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	buf   *bytes.Buffer
	inner slog.Handler
}

func (h *colorHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.inner.Enabled(ctx, lvl)
}

func (h *colorHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	line := bytes.TrimSuffix(h.buf.Bytes(), []byte("\n"))
	_, err := fmt.Fprintf(h.out, "%s%s%s\n", levelColor(r.Level), line, colorReset)
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.inner = h.inner.WithAttrs(attrs)
	return &c
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.inner = h.inner.WithGroup(name)
	return &c
}

func levelColor(lvl slog.Level) string {
	switch {
	case lvl >= slog.LevelError:
		return colorRed
	case lvl >= slog.LevelWarn:
		return colorYellow
	case lvl >= slog.LevelInfo:
		return colorGreen
	}
	return colorCyan
}

// Setup installs a stderr logger at the given verbosity as the slog default
// and returns it. Colour is used only on terminals that support it.
func Setup(verbosity string) (*slog.Logger, error) {
	lvl, err := ParseLevel(verbosity)
	if err != nil {
		return nil, err
	}
	output := io.Writer(os.Stderr)
	usecolor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	logger := slog.New(NewHandler(output, lvl, usecolor))
	slog.SetDefault(logger)
	return logger, nil
}
