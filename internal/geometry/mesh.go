package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz)
const VertexStride = 6

// Triangle owns its three corners; nothing is shared with neighbours so
// every face keeps a hard edge.
type Triangle struct {
	Vertices [3]mgl32.Vec3
	Normal   mgl32.Vec3
}

// Area returns the triangle's surface area.
func (t Triangle) Area() float32 {
	return t.Vertices[1].Sub(t.Vertices[0]).Cross(t.Vertices[2].Sub(t.Vertices[0])).Len() / 2
}

// Mesh is a flat-shaded triangle soup.
type Mesh struct {
	Triangles []Triangle
}

// VertexCount is three per triangle.
func (m *Mesh) VertexCount() int {
	return len(m.Triangles) * 3
}

// Positions returns the vertex stream, three entries per triangle.
func (m *Mesh) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, m.VertexCount())
	for _, t := range m.Triangles {
		out = append(out, t.Vertices[0], t.Vertices[1], t.Vertices[2])
	}
	return out
}

// Normals returns one normal per vertex, aligned with Positions.
func (m *Mesh) Normals() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, m.VertexCount())
	for _, t := range m.Triangles {
		out = append(out, t.Normal, t.Normal, t.Normal)
	}
	return out
}

// Interleaved flattens the mesh to pos+normal per vertex, ready for a VBO.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, m.VertexCount()*VertexStride)
	for _, t := range m.Triangles {
		n := t.Normal
		for _, v := range t.Vertices {
			out = append(out, v.X(), v.Y(), v.Z(), n.X(), n.Y(), n.Z())
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box. An empty mesh yields zeros.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Triangles) == 0 {
		return lo, hi
	}
	inf := float32(math.Inf(1))
	lo = mgl32.Vec3{inf, inf, inf}
	hi = mgl32.Vec3{-inf, -inf, -inf}
	for _, t := range m.Triangles {
		for _, v := range t.Vertices {
			for i := range 3 {
				lo[i] = min(lo[i], v[i])
				hi[i] = max(hi[i], v[i])
			}
		}
	}
	return lo, hi
}

// Transform returns a copy moved by mat. Normals are recomputed from the
// moved corners so non-uniform scales stay correct.
func (m *Mesh) Transform(mat mgl32.Mat4) *Mesh {
	out := &Mesh{Triangles: make([]Triangle, 0, len(m.Triangles))}
	for _, t := range m.Triangles {
		var moved [3]mgl32.Vec3
		for i, v := range t.Vertices {
			moved[i] = mgl32.TransformCoordinate(v, mat)
		}
		if tri, ok := newTriangle(moved[0], moved[1], moved[2]); ok {
			out.Triangles = append(out.Triangles, tri)
		}
	}
	return out
}

// degenerateArea is the doubled area under which a triangle is treated as
// collapsed.
const degenerateArea = 1e-9

func newTriangle(a, b, c mgl32.Vec3) (Triangle, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < degenerateArea {
		return Triangle{}, false
	}
	return Triangle{Vertices: [3]mgl32.Vec3{a, b, c}, Normal: n.Normalize()}, true
}
