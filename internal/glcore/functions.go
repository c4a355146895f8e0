// Package glcore implements gl.Functions on top of the go-gl all-core
// bindings. Loading does not require any entry point beyond what a 4.1 core
// context provides; debug output is only reached once the context reports
// GL_KHR_debug. It must only be used from the thread that owns the current
// context.
package glcore

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/all-core/gl"

	api "gl-bitstring/internal/gl"
)

// Functions forwards every call to the loaded driver entry points.
type Functions struct{}

var _ api.Functions = (*Functions)(nil)

// New loads the OpenGL function pointers for the current context.
// Must be called after the GLFW window context is made current.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &Functions{}, nil
}

func (f *Functions) GetString(pname api.Enum) string {
	return gl.GoStr(gl.GetString(uint32(pname)))
}

func (f *Functions) GetStringi(pname api.Enum, index int) string {
	return gl.GoStr(gl.GetStringi(uint32(pname), uint32(index)))
}

func (f *Functions) GetInteger(pname api.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetError() api.Enum {
	return api.Enum(gl.GetError())
}

func (f *Functions) Enable(cap api.Enum) {
	gl.Enable(uint32(cap))
}

func (f *Functions) CreateShader(ty api.Enum) api.Shader {
	return api.Shader{V: uint(gl.CreateShader(uint32(ty)))}
}

func (f *Functions) ShaderSource(s api.Shader, src string) {
	csrc, free := gl.Strs(src)
	defer free()
	// Pass the length explicitly so the driver never scans for a terminator.
	length := int32(len(src))
	gl.ShaderSource(uint32(s.V), 1, csrc, &length)
}

func (f *Functions) CompileShader(s api.Shader) {
	gl.CompileShader(uint32(s.V))
}

func (f *Functions) GetShaderi(s api.Shader, pname api.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s api.Shader, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetShaderInfoLog(uint32(s.V), int32(len(buf)), &n, &buf[0])
	return int(n)
}

func (f *Functions) DeleteShader(s api.Shader) {
	gl.DeleteShader(uint32(s.V))
}

func (f *Functions) CreateProgram() api.Program {
	return api.Program{V: uint(gl.CreateProgram())}
}

func (f *Functions) AttachShader(p api.Program, s api.Shader) {
	gl.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) LinkProgram(p api.Program) {
	gl.LinkProgram(uint32(p.V))
}

func (f *Functions) GetProgrami(p api.Program, pname api.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p api.Program, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetProgramInfoLog(uint32(p.V), int32(len(buf)), &n, &buf[0])
	return int(n)
}

func (f *Functions) DeleteProgram(p api.Program) {
	gl.DeleteProgram(uint32(p.V))
}

func (f *Functions) UseProgram(p api.Program) {
	gl.UseProgram(uint32(p.V))
}

func (f *Functions) GetUniformLocation(p api.Program, name string) api.Uniform {
	return api.Uniform{V: int(gl.GetUniformLocation(uint32(p.V), gl.Str(name+"\x00")))}
}

func (f *Functions) GetUniformBlockIndex(p api.Program, name string) uint {
	idx := gl.GetUniformBlockIndex(uint32(p.V), gl.Str(name+"\x00"))
	if idx == gl.INVALID_INDEX {
		return api.INVALID_INDEX
	}
	return uint(idx)
}

func (f *Functions) UniformBlockBinding(p api.Program, uniformBlockIndex, uniformBlockBinding uint) {
	gl.UniformBlockBinding(uint32(p.V), uint32(uniformBlockIndex), uint32(uniformBlockBinding))
}

func (f *Functions) Uniform2f(dst api.Uniform, v0, v1 float32) {
	gl.Uniform2f(int32(dst.V), v0, v1)
}

func (f *Functions) CreateBuffer() api.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return api.Buffer{V: uint(b)}
}

func (f *Functions) BindBuffer(target api.Enum, b api.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BufferData(target api.Enum, src []byte, usage api.Enum) {
	var p unsafe.Pointer
	if len(src) > 0 {
		p = gl.Ptr(src)
	}
	gl.BufferData(uint32(target), len(src), p, uint32(usage))
}

func (f *Functions) GetBufferSubData(target api.Enum, offset int, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.GetBufferSubData(uint32(target), offset, len(dst), gl.Ptr(dst))
}

func (f *Functions) BindBufferBase(target api.Enum, index int, b api.Buffer) {
	gl.BindBufferBase(uint32(target), uint32(index), uint32(b.V))
}

func (f *Functions) DeleteBuffer(b api.Buffer) {
	v := uint32(b.V)
	gl.DeleteBuffers(1, &v)
}

func (f *Functions) CreateVertexArray() api.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return api.VertexArray{V: uint(a)}
}

func (f *Functions) BindVertexArray(a api.VertexArray) {
	gl.BindVertexArray(uint32(a.V))
}

func (f *Functions) DeleteVertexArray(a api.VertexArray) {
	v := uint32(a.V)
	gl.DeleteVertexArrays(1, &v)
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *Functions) Clear(mask api.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) DrawArraysInstanced(mode api.Enum, first, count, instances int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

// DebugMessageCallback installs cb as the driver debug callback. The driver
// may deliver messages from any thread. The binding hands over message as a
// NUL terminated string, so text after an embedded NUL never reaches cb.
// Callers must check for GL_KHR_debug first.
func (f *Functions) DebugMessageCallback(cb api.DebugProc) {
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, _ unsafe.Pointer) {
		cb(api.Enum(source), api.Enum(gltype), uint(id), api.Enum(severity), int(length), message)
	}, nil)
}
