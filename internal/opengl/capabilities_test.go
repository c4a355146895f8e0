package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gl-bitstring/internal/gl"
)

func TestProbeDebugCapable(t *testing.T) {
	f := newFakeGL()
	f.extensions = []string{"GL_ARB_buffer_storage", DebugExtension, "GL_EXT_texture_filter_anisotropic"}
	f.contextFlags = gl.CONTEXT_FLAG_DEBUG_BIT

	caps, err := Probe(f)
	require.NoError(t, err)
	assert.Equal(t, "4.3.0 Fake", caps.Version)
	assert.Equal(t, "fakeGL", caps.Renderer)
	assert.Equal(t, "4.30", caps.ShadingVersion)
	assert.Len(t, caps.Extensions, 3)
	assert.True(t, caps.SupportsDebugExtension)
	assert.True(t, caps.DebugContextFlagSet)
	assert.True(t, caps.DebugOutput())
	assert.True(t, caps.HasExtension("GL_ARB_buffer_storage"))
	assert.False(t, caps.HasExtension("GL_ARB_compute_shader"))
}

func TestProbeMissingPieces(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		flags      int
		ext, flag  bool
	}{
		{"nothing", nil, 0, false, false},
		{"extension only", []string{DebugExtension}, 0, true, false},
		{"flag only", []string{"GL_ARB_sync"}, gl.CONTEXT_FLAG_DEBUG_BIT, false, true},
		// Forward-compatible bit alone must not read as the debug bit.
		{"other flags", []string{DebugExtension}, 0x1 | 0x4, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeGL()
			f.extensions = tt.extensions
			f.contextFlags = tt.flags

			caps, err := Probe(f)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, caps.SupportsDebugExtension)
			assert.Equal(t, tt.flag, caps.DebugContextFlagSet)
			assert.False(t, caps.DebugOutput())
		})
	}
}

func TestProbeInvalidExtensionText(t *testing.T) {
	f := newFakeGL()
	f.extensions = []string{DebugExtension, "GL_\xff\xfe"}

	_, err := Probe(f)
	assert.ErrorIs(t, err, ErrInvalidDriverText)
}
