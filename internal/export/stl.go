// Package export writes block meshes out for fabrication tools.
package export

import (
	"io"
	"os"

	"cutfield/internal/geometry"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

// Triangles converts meshes to model3d triangles. Block geometry is Y-up;
// STL consumers expect Z-up, so Y and Z are swapped (with X mirrored to keep
// the winding outward).
func Triangles(meshes ...*geometry.Mesh) []*model3d.Triangle {
	var out []*model3d.Triangle
	for _, m := range meshes {
		for _, t := range m.Triangles {
			tri := &model3d.Triangle{}
			for i, v := range t.Vertices {
				tri[i] = model3d.XYZ(-float64(v.X()), float64(v.Z()), float64(v.Y()))
			}
			out = append(out, tri)
		}
	}
	return out
}

// WriteSTL writes meshes as one binary STL.
func WriteSTL(w io.Writer, meshes ...*geometry.Mesh) error {
	if err := model3d.WriteSTL(w, Triangles(meshes...)); err != nil {
		return essentials.AddCtx("write STL", err)
	}
	return nil
}

// SaveSTL writes meshes to path as binary STL.
func SaveSTL(path string, meshes ...*geometry.Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return essentials.AddCtx("save STL", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = essentials.AddCtx("save STL", cerr)
		}
	}()
	return WriteSTL(f, meshes...)
}
