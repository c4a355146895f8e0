package core

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"gl-bitstring/internal/config"
)

func init() {
	runtime.LockOSThread()
}

// EventHandler receives the window's resize and redraw events.
type EventHandler interface {
	Resize(width, height int) error
	Render() error
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

// NewWindow creates the window with an OpenGL core profile context and makes
// that context current on the calling thread.
func NewWindow(cfg config.WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, boolToInt(cfg.Debug))
	glfw.WindowHint(glfw.Resizable, boolToInt(cfg.Resizable))

	monitor := (*glfw.Monitor)(nil)
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &Window{
		Handle: handle,
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
	}, nil
}

// LogContext logs the attributes of the context the platform handed out.
func (w *Window) LogContext(logger *slog.Logger) {
	profile := "compat"
	if w.Handle.GetAttrib(glfw.OpenGLProfile) == glfw.OpenGLCoreProfile {
		profile = "core"
	}
	logger.Info("Window GL context",
		"version", fmt.Sprintf("%d.%d",
			w.Handle.GetAttrib(glfw.ContextVersionMajor),
			w.Handle.GetAttrib(glfw.ContextVersionMinor)),
		"profile", profile,
		"forward_compat", w.Handle.GetAttrib(glfw.OpenGLForwardCompatible) == glfw.True,
		"debug", w.Handle.GetAttrib(glfw.OpenGLDebugContext) == glfw.True,
	)
}

// Run drives the event loop until the window is asked to close. Resize
// events are forwarded from inside PollEvents; every iteration then renders
// one frame and swaps buffers.
func (w *Window) Run(h EventHandler) error {
	w.Handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width, w.Height = width, height
		if err := h.Resize(width, height); err != nil {
			slog.Error("resize", "err", err)
		}
	})
	w.Handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	// The framebuffer can be larger than the requested window size on
	// high density displays.
	if fw, fh := w.Handle.GetFramebufferSize(); fw != w.Width || fh != w.Height {
		w.Width, w.Height = fw, fh
		if err := h.Resize(fw, fh); err != nil {
			return err
		}
	}

	for !w.Handle.ShouldClose() {
		glfw.PollEvents()
		if w.Handle.ShouldClose() {
			break
		}
		if err := h.Render(); err != nil {
			return err
		}
		w.Handle.SwapBuffers()
	}
	return nil
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
