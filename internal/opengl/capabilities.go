package opengl

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"gl-bitstring/internal/gl"
)

// DebugExtension is the extension that provides driver debug output.
const DebugExtension = "GL_KHR_debug"

// ErrInvalidDriverText is returned when the driver hands back text that is
// not valid UTF-8.
var ErrInvalidDriverText = errors.New("driver returned text that is not valid UTF-8")

// Capabilities is the result of probing the current context.
type Capabilities struct {
	Version        string
	Renderer       string
	ShadingVersion string
	Extensions     []string

	SupportsDebugExtension bool
	DebugContextFlagSet    bool
}

// Probe queries the current context for its version strings, extensions and
// context flags.
func Probe(f gl.Functions) (Capabilities, error) {
	caps := Capabilities{
		Version:        f.GetString(gl.VERSION),
		Renderer:       f.GetString(gl.RENDERER),
		ShadingVersion: f.GetString(gl.SHADING_LANGUAGE_VERSION),
	}

	n := f.GetInteger(gl.NUM_EXTENSIONS)
	if n > 0 {
		caps.Extensions = make([]string, 0, n)
	}
	for i := 0; i < n; i++ {
		ext := f.GetStringi(gl.EXTENSIONS, i)
		if !utf8.ValidString(ext) {
			return Capabilities{}, fmt.Errorf("extension %d: %w", i, ErrInvalidDriverText)
		}
		if ext == DebugExtension {
			caps.SupportsDebugExtension = true
		}
		caps.Extensions = append(caps.Extensions, ext)
	}

	flags := f.GetInteger(gl.CONTEXT_FLAGS)
	caps.DebugContextFlagSet = flags&gl.CONTEXT_FLAG_DEBUG_BIT != 0
	return caps, nil
}

// DebugOutput reports whether debug messages can be routed: the extension
// must be present and the context must have been created with the debug flag.
func (c Capabilities) DebugOutput() bool {
	return c.SupportsDebugExtension && c.DebugContextFlagSet
}

func (c Capabilities) HasExtension(ext string) bool {
	return slices.Contains(c.Extensions, ext)
}
