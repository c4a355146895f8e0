// Package shaders holds the GLSL sources for the bitstring program.
//
// The sources form a contract with internal/opengl: the vertex stage
// declares the vec2 uniform "Scale" and the fragment stage declares the
// std140 block "bitstring" holding uvec4 rows[4]. Renaming either side
// alone does not fail compilation; it fails the lookup at startup.
package shaders

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

const (
	VertexFile   = "vertex_shader.glsl"
	FragmentFile = "fragment_shader.glsl"
)

//go:embed *.glsl
var embedded embed.FS

// Sources is a vertex/fragment pair.
type Sources struct {
	Vertex   string
	Fragment string
}

// Load reads the shader pair from dir, or from the embedded copies when dir
// is empty.
func Load(dir string) (Sources, error) {
	var fsys fs.FS = embedded
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return LoadFS(fsys)
}

func LoadFS(fsys fs.FS) (Sources, error) {
	vert, err := fs.ReadFile(fsys, VertexFile)
	if err != nil {
		return Sources{}, fmt.Errorf("failed to read vertex shader: %w", err)
	}
	frag, err := fs.ReadFile(fsys, FragmentFile)
	if err != nil {
		return Sources{}, fmt.Errorf("failed to read fragment shader: %w", err)
	}
	return Sources{Vertex: string(vert), Fragment: string(frag)}, nil
}
