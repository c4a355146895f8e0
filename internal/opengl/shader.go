package opengl

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"gl-bitstring/internal/gl"
)

var (
	// ErrZeroHandle is returned when the driver fails to allocate an object.
	ErrZeroHandle = errors.New("driver returned a zero object handle")

	ErrUniformNotFound = errors.New("uniform not found in program")
	ErrBlockNotFound   = errors.New("uniform block not found in program")
)

// CompileError carries the compile log of a shader stage that failed.
type CompileError struct {
	Kind gl.Enum
	Log  string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s shader: compilation failed", stageName(e.Kind))
	}
	return fmt.Sprintf("%s shader: compilation failed: %s", stageName(e.Kind), e.Log)
}

// LinkError carries the link log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	if e.Log == "" {
		return "program: linking failed"
	}
	return "program: linking failed: " + e.Log
}

// Stage is a compiled shader stage. Its Shader handle is cleared once the
// stage has been attached to a program.
type Stage struct {
	Kind   gl.Enum
	Source string
	Shader gl.Shader
	Log    string
}

// Program is a successfully linked shader program.
type Program struct {
	f      gl.Functions
	Handle gl.Program
	Log    string
}

func stageName(kind gl.Enum) string {
	switch kind {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("0x%x", uint32(kind))
}

// fetchInfoLog extracts a driver diagnostic log. length is the driver
// reported size including the terminator; read fills buf and returns the
// number of bytes written.
func fetchInfoLog(length int, read func(buf []byte) int) (string, error) {
	if length <= 1 {
		return "", nil
	}
	buf := make([]byte, length)
	n := read(buf)
	n = max(0, min(n, len(buf)))
	buf = bytes.TrimRight(buf[:n], "\x00")
	if !utf8.Valid(buf) {
		return "", ErrInvalidDriverText
	}
	return string(buf), nil
}

// CompileStage compiles src as a shader of the given kind.
func CompileStage(f gl.Functions, kind gl.Enum, src string) (*Stage, error) {
	s := f.CreateShader(kind)
	if !s.Valid() {
		return nil, fmt.Errorf("%s shader: %w", stageName(kind), ErrZeroHandle)
	}
	f.ShaderSource(s, src)
	f.CompileShader(s)

	ok := f.GetShaderi(s, gl.COMPILE_STATUS) != gl.FALSE
	if !ok {
		slog.Error("Compilation failed", "stage", stageName(kind))
	}
	log, err := fetchInfoLog(f.GetShaderi(s, gl.INFO_LOG_LENGTH), func(buf []byte) int {
		return f.GetShaderInfoLog(s, buf)
	})
	if err != nil {
		f.DeleteShader(s)
		return nil, fmt.Errorf("%s shader log: %w", stageName(kind), err)
	}
	if log != "" {
		slog.Info("Log: "+log, "stage", stageName(kind))
	}
	if !ok {
		f.DeleteShader(s)
		return nil, &CompileError{Kind: kind, Log: log}
	}
	return &Stage{Kind: kind, Source: src, Shader: s, Log: log}, nil
}

// LinkProgram attaches the stages to a new program and links it. Each stage
// is deleted right after attachment; the program keeps the compiled code.
func LinkProgram(f gl.Functions, stages ...*Stage) (*Program, error) {
	p := f.CreateProgram()
	if !p.Valid() {
		releaseStages(f, stages)
		return nil, fmt.Errorf("program: %w", ErrZeroHandle)
	}
	for _, s := range stages {
		f.AttachShader(p, s.Shader)
		f.DeleteShader(s.Shader)
		s.Shader = gl.Shader{}
	}
	f.LinkProgram(p)

	ok := f.GetProgrami(p, gl.LINK_STATUS) != gl.FALSE
	if !ok {
		slog.Error("Linking failed")
	}
	log, err := fetchInfoLog(f.GetProgrami(p, gl.INFO_LOG_LENGTH), func(buf []byte) int {
		return f.GetProgramInfoLog(p, buf)
	})
	if err != nil {
		f.DeleteProgram(p)
		return nil, fmt.Errorf("program log: %w", err)
	}
	if log != "" {
		slog.Info("Log: " + log)
	}
	if !ok {
		f.DeleteProgram(p)
		return nil, &LinkError{Log: log}
	}
	return &Program{f: f, Handle: p, Log: log}, nil
}

// NewProgram compiles the vertex and fragment sources and links them.
func NewProgram(f gl.Functions, vertSrc, fragSrc string) (*Program, error) {
	vert, err := CompileStage(f, gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return nil, err
	}
	frag, err := CompileStage(f, gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		releaseStages(f, []*Stage{vert})
		return nil, err
	}
	return LinkProgram(f, vert, frag)
}

func releaseStages(f gl.Functions, stages []*Stage) {
	for _, s := range stages {
		if s.Shader.Valid() {
			f.DeleteShader(s.Shader)
			s.Shader = gl.Shader{}
		}
	}
}

// Uniform returns the location of the named uniform. A name the linked
// program does not declare, or that the linker optimized out, is an error.
func (p *Program) Uniform(name string) (gl.Uniform, error) {
	u := p.f.GetUniformLocation(p.Handle, name)
	if !u.Valid() {
		return u, fmt.Errorf("%q: %w", name, ErrUniformNotFound)
	}
	return u, nil
}

// UniformBlock returns the index of the named uniform block.
func (p *Program) UniformBlock(name string) (uint, error) {
	idx := p.f.GetUniformBlockIndex(p.Handle, name)
	if idx == gl.INVALID_INDEX {
		return idx, fmt.Errorf("%q: %w", name, ErrBlockNotFound)
	}
	return idx, nil
}

func (p *Program) Use() {
	p.f.UseProgram(p.Handle)
}

func (p *Program) Release() {
	p.f.DeleteProgram(p.Handle)
	p.Handle = gl.Program{}
}
