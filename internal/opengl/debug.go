package opengl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gl-bitstring/internal/gl"
)

// Tag returned for any code outside the known set.
const unknownTag = "unknown"

// SourceTag names a debug message source.
func SourceTag(source gl.Enum) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "api"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "shader_compiler"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "window_system"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "third_party"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "application"
	case gl.DEBUG_SOURCE_OTHER:
		return "other"
	}
	return unknownTag
}

// TypeTag names a debug message type.
func TypeTag(typ gl.Enum) string {
	switch typ {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecated_behavior"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefined_behavior"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_OTHER:
		return "other"
	case gl.DEBUG_TYPE_MARKER:
		return "marker"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "push_group"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "pop_group"
	}
	return unknownTag
}

// SeverityTag names a debug message severity.
func SeverityTag(severity gl.Enum) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "notification"
	}
	return unknownTag
}

// DebugMessage is a decoded driver debug message.
type DebugMessage struct {
	Source   string
	Type     string
	ID       uint
	Severity string
	Text     string
}

// DecodeDebugMessage maps the driver codes to tags and keeps at most length
// bytes of message. It never fails: unknown codes become "unknown" and
// invalid UTF-8 is replaced.
func DecodeDebugMessage(source, typ gl.Enum, id uint, severity gl.Enum, length int, message string) DebugMessage {
	if length >= 0 && length < len(message) {
		message = message[:length]
	}
	return DebugMessage{
		Source:   SourceTag(source),
		Type:     TypeTag(typ),
		ID:       id,
		Severity: SeverityTag(severity),
		Text:     strings.ToValidUTF8(message, "�"),
	}
}

func (m DebugMessage) String() string {
	return fmt.Sprintf("OpenGL: src=%s, type=%s, id=%d, sev=%s: %s", m.Source, m.Type, m.ID, m.Severity, m.Text)
}

// Level maps the message severity onto a log level. Notifications and
// unknown severities are informational.
func (m DebugMessage) Level() slog.Level {
	switch m.Severity {
	case "high":
		return slog.LevelError
	case "medium":
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// DebugRouter writes one log record per driver debug message, whatever the
// level of the logger it was built from.
type DebugRouter struct {
	logger *slog.Logger
}

func NewDebugRouter(logger *slog.Logger) *DebugRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugRouter{logger: slog.New(unfiltered{logger.Handler()})}
}

// unfiltered passes every record to the wrapped handler.
type unfiltered struct {
	slog.Handler
}

func (unfiltered) Enabled(context.Context, slog.Level) bool { return true }

func (h unfiltered) WithAttrs(attrs []slog.Attr) slog.Handler {
	return unfiltered{h.Handler.WithAttrs(attrs)}
}

func (h unfiltered) WithGroup(name string) slog.Handler {
	return unfiltered{h.Handler.WithGroup(name)}
}

// Handle has the gl.DebugProc signature. The driver may call it from any
// thread; slog handlers serialize their own output.
func (r *DebugRouter) Handle(source, typ gl.Enum, id uint, severity gl.Enum, length int, message string) {
	m := DecodeDebugMessage(source, typ, id, severity, length, message)
	r.logger.Log(context.Background(), m.Level(), m.String(), "severity", m.Severity)
}

// EnableDebugOutput registers the router with the driver when caps allow it
// and reports whether it did. With synchronous set, messages are delivered on
// the thread issuing the offending call.
func EnableDebugOutput(f gl.Functions, caps Capabilities, r *DebugRouter, synchronous bool) bool {
	if !caps.DebugOutput() {
		return false
	}
	if synchronous {
		f.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	}
	f.DebugMessageCallback(r.Handle)
	return true
}
