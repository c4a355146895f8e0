package opengl

import (
	"encoding/binary"
	"fmt"

	"gl-bitstring/internal/gl"
)

const (
	// std140 places every element of a uvec4 array on a 16 byte boundary.
	std140GroupAlign = 16

	BlockGroups = 4
	BlockSize   = BlockGroups * std140GroupAlign
)

// Block is the host side of
//
//	layout(std140) uniform bitstring { uvec4 rows[4]; };
//
// The shader declaration and this type must change together; nothing checks
// them against each other at compile or link time.
type Block [BlockGroups][4]uint32

// Bitstring is the pattern drawn by the renderer, one group per instance row.
var Bitstring = Block{
	{0xAAAAAAAA, 0xAAAAAAAA, 0xAAAAAAAA, 0xAAAAAAAA},
	{0x55555555, 0x55555555, 0x55555555, 0x55555555},
	{0x0000FFFF, 0x0000FFFF, 0x0000FFFF, 0x0000FFFF},
	{0x1425e1fe, 0x1425e1fe, 0x1425e1fe, 0x1425e1fe},
}

func std140Offset(group int) int {
	return group * std140GroupAlign
}

// Encode lays the block out in host byte order, group i starting at byte
// std140Offset(i). The result is always BlockSize bytes.
func (b Block) Encode() []byte {
	buf := make([]byte, BlockSize)
	for i, group := range b {
		off := std140Offset(i)
		for j, word := range group {
			binary.NativeEndian.PutUint32(buf[off+4*j:], word)
		}
	}
	return buf
}

// UniformBlock ties a program's named block to a buffer through a binding
// point.
type UniformBlock struct {
	Name    string
	Binding int
	Index   uint
	Buffer  gl.Buffer
}

// NewUniformBlock resolves the block index in program and allocates the
// buffer that backs it.
func NewUniformBlock(f gl.Functions, program *Program, name string, binding int) (*UniformBlock, error) {
	idx, err := program.UniformBlock(name)
	if err != nil {
		return nil, err
	}
	buf := f.CreateBuffer()
	if !buf.Valid() {
		return nil, fmt.Errorf("uniform buffer %q: %w", name, ErrZeroHandle)
	}
	return &UniformBlock{Name: name, Binding: binding, Index: idx, Buffer: buf}, nil
}

// Upload overwrites the buffer with data and binds it for program. The buffer
// is bound to the uniform buffer target before the upload, and the same
// binding point is used on the program side and the buffer side.
func (u *UniformBlock) Upload(f gl.Functions, program *Program, data []byte) {
	f.BindBuffer(gl.UNIFORM_BUFFER, u.Buffer)
	f.BufferData(gl.UNIFORM_BUFFER, data, gl.DYNAMIC_DRAW)
	f.UniformBlockBinding(program.Handle, u.Index, uint(u.Binding))
	f.BindBufferBase(gl.UNIFORM_BUFFER, u.Binding, u.Buffer)
}

// ReadBack returns the first n bytes stored in the buffer.
func (u *UniformBlock) ReadBack(f gl.Functions, n int) []byte {
	data := make([]byte, n)
	f.BindBuffer(gl.UNIFORM_BUFFER, u.Buffer)
	f.GetBufferSubData(gl.UNIFORM_BUFFER, 0, data)
	return data
}

func (u *UniformBlock) Release(f gl.Functions) {
	f.DeleteBuffer(u.Buffer)
	u.Buffer = gl.Buffer{}
}
