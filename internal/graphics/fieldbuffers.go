package graphics

import (
	"cutfield/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// FieldStride is the number of floats per vertex: position, normal, color.
const FieldStride = 9

// PackGeneration interleaves every block of gen into one vertex stream.
func PackGeneration(gen *meshing.Generation) []float32 {
	out := make([]float32, 0, gen.TriangleCount()*3*FieldStride)
	for _, b := range gen.Blocks {
		r, g, bl := b.Color.RGB()
		col := [3]float32{float32(r) / 255, float32(g) / 255, float32(bl) / 255}
		for _, t := range b.Mesh.Triangles {
			for _, v := range t.Vertices {
				out = append(out,
					v.X(), v.Y(), v.Z(),
					t.Normal.X(), t.Normal.Y(), t.Normal.Z(),
					col[0], col[1], col[2],
				)
			}
		}
	}
	return out
}

// FieldBuffers holds the GPU copy of one generation.
type FieldBuffers struct {
	vao, vbo    uint32
	vertexCount int32
}

// UploadGeneration creates a VAO/VBO pair for gen. Must be called on the
// thread that owns the GL context.
func UploadGeneration(gen *meshing.Generation) *FieldBuffers {
	data := PackGeneration(gen)
	fb := &FieldBuffers{vertexCount: int32(len(data) / FieldStride)}

	gl.GenVertexArrays(1, &fb.vao)
	gl.GenBuffers(1, &fb.vbo)
	gl.BindVertexArray(fb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fb.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	stride := int32(FieldStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return fb
}

// Draw issues the draw call. The field shader must be in use.
func (fb *FieldBuffers) Draw() {
	if fb == nil || fb.vao == 0 || fb.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(fb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, fb.vertexCount)
	gl.BindVertexArray(0)
}

// Release deletes the GPU objects. Safe to call more than once.
func (fb *FieldBuffers) Release() {
	if fb == nil || fb.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &fb.vbo)
	gl.DeleteVertexArrays(1, &fb.vao)
	fb.vao, fb.vbo, fb.vertexCount = 0, 0, 0
}
