// Package gl is the typed OpenGL binding surface used by the renderer.
// Handles are small structs so a shader can never be passed where a program
// is expected, and every driver entry point the renderer needs is reached
// through the Functions interface.
package gl

type Enum uint32

const (
	FALSE = 0
	TRUE  = 1

	COLOR_BUFFER_BIT = 0x4000

	TRIANGLES      = 0x4
	TRIANGLE_STRIP = 0x5

	VERTEX_SHADER   = 0x8b31
	FRAGMENT_SHADER = 0x8b30

	COMPILE_STATUS  = 0x8b81
	LINK_STATUS     = 0x8b82
	INFO_LOG_LENGTH = 0x8b84

	UNIFORM_BUFFER = 0x8a11
	DYNAMIC_DRAW   = 0x88e8
	STATIC_DRAW    = 0x88e4

	INVALID_INDEX = ^uint(0)

	NO_ERROR = 0x0

	VENDOR                   = 0x1f00
	RENDERER                 = 0x1f01
	VERSION                  = 0x1f02
	EXTENSIONS               = 0x1f03
	SHADING_LANGUAGE_VERSION = 0x8b8c
	NUM_EXTENSIONS           = 0x821d

	CONTEXT_FLAGS          = 0x821e
	CONTEXT_FLAG_DEBUG_BIT = 0x00000002

	DEBUG_OUTPUT             = 0x92e0
	DEBUG_OUTPUT_SYNCHRONOUS = 0x8242

	DEBUG_SOURCE_API             = 0x8246
	DEBUG_SOURCE_WINDOW_SYSTEM   = 0x8247
	DEBUG_SOURCE_SHADER_COMPILER = 0x8248
	DEBUG_SOURCE_THIRD_PARTY     = 0x8249
	DEBUG_SOURCE_APPLICATION     = 0x824a
	DEBUG_SOURCE_OTHER           = 0x824b

	DEBUG_TYPE_ERROR               = 0x824c
	DEBUG_TYPE_DEPRECATED_BEHAVIOR = 0x824d
	DEBUG_TYPE_UNDEFINED_BEHAVIOR  = 0x824e
	DEBUG_TYPE_PORTABILITY         = 0x824f
	DEBUG_TYPE_PERFORMANCE         = 0x8250
	DEBUG_TYPE_OTHER               = 0x8251
	DEBUG_TYPE_MARKER              = 0x8268
	DEBUG_TYPE_PUSH_GROUP          = 0x8269
	DEBUG_TYPE_POP_GROUP           = 0x826a

	DEBUG_SEVERITY_HIGH         = 0x9146
	DEBUG_SEVERITY_MEDIUM       = 0x9147
	DEBUG_SEVERITY_LOW          = 0x9148
	DEBUG_SEVERITY_NOTIFICATION = 0x826b
)

// DebugProc receives driver debug messages. length is the byte length
// reported by the driver for message.
type DebugProc func(source, typ Enum, id uint, severity Enum, length int, message string)

// Functions is the subset of the OpenGL API the renderer uses.
type Functions interface {
	GetString(pname Enum) string
	GetStringi(pname Enum, index int) string
	GetInteger(pname Enum) int
	GetError() Enum
	Enable(cap Enum)

	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	// GetShaderInfoLog copies the shader log into buf and returns the number
	// of bytes written, excluding the terminator.
	GetShaderInfoLog(s Shader, buf []byte) int
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	// GetProgramInfoLog behaves like GetShaderInfoLog for programs.
	GetProgramInfoLog(p Program, buf []byte) int
	DeleteProgram(p Program)
	UseProgram(p Program)

	GetUniformLocation(p Program, name string) Uniform
	GetUniformBlockIndex(p Program, name string) uint
	UniformBlockBinding(p Program, uniformBlockIndex, uniformBlockBinding uint)
	Uniform2f(dst Uniform, v0, v1 float32)

	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, src []byte, usage Enum)
	GetBufferSubData(target Enum, offset int, dst []byte)
	BindBufferBase(target Enum, index int, b Buffer)
	DeleteBuffer(b Buffer)

	CreateVertexArray() VertexArray
	BindVertexArray(a VertexArray)
	DeleteVertexArray(a VertexArray)

	ClearColor(red, green, blue, alpha float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int)
	DrawArraysInstanced(mode Enum, first, count, instances int)

	DebugMessageCallback(cb DebugProc)
}
