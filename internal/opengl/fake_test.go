package opengl

import (
	"fmt"
	"slices"
	"strings"

	"gl-bitstring/internal/gl"
)

type drawCall struct {
	mode                    gl.Enum
	first, count, instances int
}

// fakeGL is an in-memory driver. It records the calls it receives in order,
// emulates compile/link status and logs, and stores buffer contents.
type fakeGL struct {
	calls  []string
	nextID uint

	strings      map[gl.Enum]string
	extensions   []string
	contextFlags int
	errCode      gl.Enum

	zeroShader  bool
	zeroProgram bool
	zeroBuffer  bool
	zeroArray   bool

	failCompile map[gl.Enum]bool
	shaderLog   map[gl.Enum]string
	failLink    bool
	linkLog     string
	// logLength, when set, replaces the reported INFO_LOG_LENGTH.
	logLength *int

	uniforms map[string]int
	blocks   map[string]uint

	shaderKind map[uint]gl.Enum
	sources    map[uint]string
	buffers    map[uint][]byte
	bound      map[gl.Enum]gl.Buffer

	uniform2f     [][2]float32
	blockBindings map[uint]uint
	baseBindings  map[int]gl.Buffer
	usages        []gl.Enum
	viewport      [4]int
	draws         []drawCall
	enabled       []gl.Enum
	debugCB       gl.DebugProc
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		strings: map[gl.Enum]string{
			gl.VERSION:                  "4.3.0 Fake",
			gl.RENDERER:                 "fakeGL",
			gl.SHADING_LANGUAGE_VERSION: "4.30",
		},
		failCompile:   map[gl.Enum]bool{},
		shaderLog:     map[gl.Enum]string{},
		uniforms:      map[string]int{ScaleUniform: 0},
		blocks:        map[string]uint{BlockName: 0},
		shaderKind:    map[uint]gl.Enum{},
		sources:       map[uint]string{},
		buffers:       map[uint][]byte{},
		bound:         map[gl.Enum]gl.Buffer{},
		blockBindings: map[uint]uint{},
		baseBindings:  map[int]gl.Buffer{},
	}
}

func (f *fakeGL) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGL) id() uint {
	f.nextID++
	return f.nextID
}

// indexOf returns the position of the first recorded call with the given
// prefix, or -1.
func (f *fakeGL) indexOf(prefix string) int {
	return slices.IndexFunc(f.calls, func(c string) bool { return strings.HasPrefix(c, prefix) })
}

func (f *fakeGL) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeGL) reportedLogLength(log string) int {
	if f.logLength != nil {
		return *f.logLength
	}
	if log == "" {
		return 0
	}
	return len(log) + 1
}

func copyLog(log string, buf []byte) int {
	n := copy(buf, log+"\x00")
	if n > len(log) {
		n = len(log)
	}
	return n
}

func (f *fakeGL) GetString(pname gl.Enum) string { return f.strings[pname] }

func (f *fakeGL) GetStringi(pname gl.Enum, index int) string {
	if pname != gl.EXTENSIONS || index < 0 || index >= len(f.extensions) {
		return ""
	}
	return f.extensions[index]
}

func (f *fakeGL) GetInteger(pname gl.Enum) int {
	switch pname {
	case gl.NUM_EXTENSIONS:
		return len(f.extensions)
	case gl.CONTEXT_FLAGS:
		return f.contextFlags
	}
	return 0
}

func (f *fakeGL) GetError() gl.Enum {
	code := f.errCode
	f.errCode = gl.NO_ERROR
	return code
}

func (f *fakeGL) Enable(cap gl.Enum) {
	f.record("Enable:0x%x", uint32(cap))
	f.enabled = append(f.enabled, cap)
}

func (f *fakeGL) CreateShader(ty gl.Enum) gl.Shader {
	if f.zeroShader {
		return gl.Shader{}
	}
	s := gl.Shader{V: f.id()}
	f.shaderKind[s.V] = ty
	f.record("CreateShader:%d", s.V)
	return s
}

func (f *fakeGL) ShaderSource(s gl.Shader, src string) {
	f.sources[s.V] = src
	f.record("ShaderSource:%d", s.V)
}

func (f *fakeGL) CompileShader(s gl.Shader) { f.record("CompileShader:%d", s.V) }

func (f *fakeGL) GetShaderi(s gl.Shader, pname gl.Enum) int {
	kind := f.shaderKind[s.V]
	switch pname {
	case gl.COMPILE_STATUS:
		if f.failCompile[kind] {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.INFO_LOG_LENGTH:
		return f.reportedLogLength(f.shaderLog[kind])
	}
	return 0
}

func (f *fakeGL) GetShaderInfoLog(s gl.Shader, buf []byte) int {
	f.record("GetShaderInfoLog:%d", s.V)
	return copyLog(f.shaderLog[f.shaderKind[s.V]], buf)
}

func (f *fakeGL) DeleteShader(s gl.Shader) { f.record("DeleteShader:%d", s.V) }

func (f *fakeGL) CreateProgram() gl.Program {
	if f.zeroProgram {
		return gl.Program{}
	}
	p := gl.Program{V: f.id()}
	f.record("CreateProgram:%d", p.V)
	return p
}

func (f *fakeGL) AttachShader(p gl.Program, s gl.Shader) { f.record("AttachShader:%d", s.V) }

func (f *fakeGL) LinkProgram(p gl.Program) { f.record("LinkProgram:%d", p.V) }

func (f *fakeGL) GetProgrami(p gl.Program, pname gl.Enum) int {
	switch pname {
	case gl.LINK_STATUS:
		if f.failLink {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.INFO_LOG_LENGTH:
		return f.reportedLogLength(f.linkLog)
	}
	return 0
}

func (f *fakeGL) GetProgramInfoLog(p gl.Program, buf []byte) int {
	f.record("GetProgramInfoLog:%d", p.V)
	return copyLog(f.linkLog, buf)
}

func (f *fakeGL) DeleteProgram(p gl.Program) { f.record("DeleteProgram:%d", p.V) }

func (f *fakeGL) UseProgram(p gl.Program) { f.record("UseProgram:%d", p.V) }

func (f *fakeGL) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	if loc, ok := f.uniforms[name]; ok {
		return gl.Uniform{V: loc}
	}
	return gl.Uniform{V: -1}
}

func (f *fakeGL) GetUniformBlockIndex(p gl.Program, name string) uint {
	if idx, ok := f.blocks[name]; ok {
		return idx
	}
	return gl.INVALID_INDEX
}

func (f *fakeGL) UniformBlockBinding(p gl.Program, index, binding uint) {
	f.blockBindings[index] = binding
	f.record("UniformBlockBinding:%d:%d", index, binding)
}

func (f *fakeGL) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.uniform2f = append(f.uniform2f, [2]float32{v0, v1})
	f.record("Uniform2f:%d", dst.V)
}

func (f *fakeGL) CreateBuffer() gl.Buffer {
	if f.zeroBuffer {
		return gl.Buffer{}
	}
	b := gl.Buffer{V: f.id()}
	f.record("CreateBuffer:%d", b.V)
	return b
}

func (f *fakeGL) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.bound[target] = b
	f.record("BindBuffer:%d", b.V)
}

func (f *fakeGL) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	b := f.bound[target]
	f.buffers[b.V] = slices.Clone(src)
	f.usages = append(f.usages, usage)
	f.record("BufferData:%d", b.V)
}

func (f *fakeGL) GetBufferSubData(target gl.Enum, offset int, dst []byte) {
	data := f.buffers[f.bound[target].V]
	if offset < len(data) {
		copy(dst, data[offset:])
	}
}

func (f *fakeGL) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	f.baseBindings[index] = b
	f.record("BindBufferBase:%d:%d", index, b.V)
}

func (f *fakeGL) DeleteBuffer(b gl.Buffer) { f.record("DeleteBuffer:%d", b.V) }

func (f *fakeGL) CreateVertexArray() gl.VertexArray {
	if f.zeroArray {
		return gl.VertexArray{}
	}
	a := gl.VertexArray{V: f.id()}
	f.record("CreateVertexArray:%d", a.V)
	return a
}

func (f *fakeGL) BindVertexArray(a gl.VertexArray) { f.record("BindVertexArray:%d", a.V) }

func (f *fakeGL) DeleteVertexArray(a gl.VertexArray) { f.record("DeleteVertexArray:%d", a.V) }

func (f *fakeGL) ClearColor(red, green, blue, alpha float32) { f.record("ClearColor") }

func (f *fakeGL) Clear(mask gl.Enum) { f.record("Clear:0x%x", uint32(mask)) }

func (f *fakeGL) Viewport(x, y, width, height int) {
	f.viewport = [4]int{x, y, width, height}
	f.record("Viewport:%d:%d", width, height)
}

func (f *fakeGL) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.draws = append(f.draws, drawCall{mode: mode, first: first, count: count, instances: instances})
	f.record("DrawArraysInstanced")
}

func (f *fakeGL) DebugMessageCallback(cb gl.DebugProc) {
	f.debugCB = cb
	f.record("DebugMessageCallback")
}
