package opengl

import (
	"errors"
	"fmt"
	"log/slog"

	"gl-bitstring/internal/gl"
)

const (
	// ScaleUniform receives (2/width, 2/height) every frame.
	ScaleUniform = "Scale"
	// BlockName is the uniform block holding the bit pattern.
	BlockName = "bitstring"
	// BlockBinding is the binding point shared by the program and the buffer.
	BlockBinding = 2

	// Each instance draws one row: a triangle strip whose triangles each
	// cover one of the 32*4 bits of its group.
	bitsPerRow    = 32 * 4
	StripVertices = 2 + bitsPerRow
	InstanceCount = BlockGroups

	DefaultWidth  = 2200
	DefaultHeight = 512
)

// ErrNotReady is returned by frame operations on a destroyed renderer.
var ErrNotReady = errors.New("renderer is not ready")

// Color is an RGBA clear colour.
type Color struct {
	R, G, B, A float32
}

var Background = Color{0.2, 0.3, 0.3, 1.0}

// Dimensions is the drawable size of the window in pixels.
type Dimensions struct {
	Width, Height int
}

// Empty reports whether the area has no pixels, as with a minimized window.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Scale maps pixel coordinates onto the [0, 2] range the vertex shader
// shifts into clip space.
func (d Dimensions) Scale() (float32, float32) {
	return 2 / float32(d.Width), 2 / float32(d.Height)
}

// Options configures NewRenderer.
type Options struct {
	VertexSource   string
	FragmentSource string
	Size           Dimensions
	Background     Color
	// CheckErrors queries the driver error flag after every draw and logs
	// anything it finds.
	CheckErrors bool
	Logger      *slog.Logger
}

type rendererState int

const (
	stateUninitialized rendererState = iota
	stateReady
	stateDestroyed
)

// Renderer owns the program, vertex array and uniform block and issues the
// per-frame instanced draw.
type Renderer struct {
	f      gl.Functions
	logger *slog.Logger
	state  rendererState

	program  *Program
	array    gl.VertexArray
	block    *UniformBlock
	scaleLoc gl.Uniform
	payload  []byte

	size        Dimensions
	background  Color
	checkErrors bool
}

// NewRenderer builds the pipeline. Must be called with the context current.
func NewRenderer(f gl.Functions, opts Options) (*Renderer, error) {
	r := &Renderer{
		f:           f,
		logger:      opts.Logger,
		size:        opts.Size,
		background:  opts.Background,
		checkErrors: opts.CheckErrors,
		payload:     Bitstring.Encode(),
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.size == (Dimensions{}) {
		r.size = Dimensions{Width: DefaultWidth, Height: DefaultHeight}
	}
	if r.background == (Color{}) {
		r.background = Background
	}

	prog, err := NewProgram(f, opts.VertexSource, opts.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}
	r.program = prog

	r.scaleLoc, err = prog.Uniform(ScaleUniform)
	if err != nil {
		r.release()
		return nil, err
	}

	r.array = f.CreateVertexArray()
	if !r.array.Valid() {
		r.release()
		return nil, fmt.Errorf("vertex array: %w", ErrZeroHandle)
	}

	r.block, err = NewUniformBlock(f, prog, BlockName, BlockBinding)
	if err != nil {
		r.release()
		return nil, err
	}

	r.state = stateReady
	return r, nil
}

// Dimensions returns the size the next frame will be drawn at.
func (r *Renderer) Dimensions() Dimensions {
	return r.size
}

// Resize updates the viewport and stores the new size for the next frame.
// It does not redraw.
func (r *Renderer) Resize(width, height int) error {
	if r.state != stateReady {
		return ErrNotReady
	}
	r.f.Viewport(0, 0, width, height)
	r.size = Dimensions{Width: width, Height: height}
	r.logger.Info(fmt.Sprintf("sizes: %d, %d", width, height))
	return nil
}

// Render draws one frame at the current dimensions. Nothing is drawn while
// the dimensions are empty.
func (r *Renderer) Render() error {
	if r.state != stateReady {
		return ErrNotReady
	}
	if r.size.Empty() {
		return nil
	}
	f := r.f
	f.ClearColor(r.background.R, r.background.G, r.background.B, r.background.A)
	f.Clear(gl.COLOR_BUFFER_BIT)

	r.program.Use()
	sx, sy := r.size.Scale()
	f.Uniform2f(r.scaleLoc, sx, sy)

	r.block.Upload(f, r.program, r.payload)

	f.BindVertexArray(r.array)
	f.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, StripVertices, InstanceCount)

	if r.checkErrors {
		if code := f.GetError(); code != gl.NO_ERROR {
			r.logger.Warn("OpenGL error after draw", "code", fmt.Sprintf("0x%04x", uint32(code)))
		}
	}
	return nil
}

// Block returns the uniform block backing the bit pattern.
func (r *Renderer) Block() *UniformBlock {
	return r.block
}

// Destroy releases all GPU resources. The renderer cannot be used again.
func (r *Renderer) Destroy() {
	if r.state != stateReady {
		return
	}
	r.release()
	r.state = stateDestroyed
}

func (r *Renderer) release() {
	if r.block != nil {
		r.block.Release(r.f)
		r.block = nil
	}
	if r.array.Valid() {
		r.f.DeleteVertexArray(r.array)
		r.array = gl.VertexArray{}
	}
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
}
