package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func mustBuild(tb testing.TB, p Params) *Mesh {
	tb.Helper()
	m, err := Build(p)
	if err != nil {
		tb.Fatalf("Build(%+v): %v", p, err)
	}
	return m
}

func TestBuildTriangleCount(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		want int
	}{
		{"edge", Params{Width: 1, Depth: 1, BaseHeight: 0.1, CutAngle: 15, CutType: CutEdge}, 12},
		{"corner", Params{Width: 1, Depth: 1, BaseHeight: 0.1, CutAngle: 15, CutType: CutCorner}, 12},
		{"wide edge", Params{Width: 3, Depth: 0.5, BaseHeight: 2, CutAngle: 80, CutType: CutEdge}, 12},
		// front lip collapses: front face and one triangle of each side go away
		{"edge no lip", Params{Width: 1, Depth: 1, BaseHeight: 0, CutAngle: 30, CutType: CutEdge}, 8},
		// only the front-right vertical edge collapses
		{"corner no lip", Params{Width: 1, Depth: 1, BaseHeight: 0, CutAngle: 30, CutType: CutCorner}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Build(tc.p)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := len(m.Triangles); got != tc.want {
				t.Fatalf("got %d triangles, want %d", got, tc.want)
			}
			if got := len(m.Interleaved()); got != tc.want*3*VertexStride {
				t.Fatalf("got %d floats, want %d", got, tc.want*3*VertexStride)
			}
		})
	}
}

func TestBuildNormalsPointOutward(t *testing.T) {
	for _, ct := range []CutType{CutEdge, CutCorner} {
		p := Params{Width: 1.5, Depth: 1, BaseHeight: 0.3, CutAngle: 35, CutType: ct}
		m := mustBuild(t, p)

		// The solid is convex, so the centroid of its corners is inside it.
		var center mgl32.Vec3
		corners := cornerPositions(p)
		for _, c := range corners {
			center = center.Add(c)
		}
		center = center.Mul(1.0 / float32(len(corners)))

		for i, tri := range m.Triangles {
			if tri.Area() <= 0 {
				t.Errorf("%v: triangle %d is degenerate", ct, i)
			}
			if l := tri.Normal.Len(); math.Abs(float64(l)-1) > 1e-5 {
				t.Errorf("%v: triangle %d normal length %v", ct, i, l)
			}
			mid := tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Mul(1.0 / 3)
			if tri.Normal.Dot(mid.Sub(center)) <= 0 {
				t.Errorf("%v: triangle %d normal %v points inward", ct, i, tri.Normal)
			}
		}

		normals := m.Normals()
		for i := 0; i < len(normals); i += 3 {
			if normals[i] != normals[i+1] || normals[i] != normals[i+2] {
				t.Errorf("%v: vertex normals of triangle %d differ", ct, i/3)
			}
		}
	}
}

func TestBuildMaxHeight(t *testing.T) {
	cases := []Params{
		{Width: 1, Depth: 1, BaseHeight: 0.1, CutAngle: 15, CutType: CutEdge},
		{Width: 1, Depth: 2, BaseHeight: 0, CutAngle: 45, CutType: CutEdge},
		{Width: 2, Depth: 1, BaseHeight: 0.5, CutAngle: 30, CutType: CutCorner},
	}
	for _, p := range cases {
		back := BackHeight(p)
		if back <= 0 {
			t.Fatalf("%+v: back height %v not positive", p, back)
		}
		_, hi := mustBuild(t, p).Bounds()
		want := p.BaseHeight + back
		if math.Abs(float64(hi.Y())-want) > 1e-5 {
			t.Errorf("%+v: max Y %v, want %v", p, hi.Y(), want)
		}
	}

	if got, want := BackHeight(Params{Width: 1, Depth: 1, CutAngle: 45}), 1.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("edge back height at 45 degrees: got %v, want %v", got, want)
	}
	if got, want := BackHeight(Params{Width: 3, Depth: 4, CutAngle: 45, CutType: CutCorner}), 5.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("corner back height at 45 degrees: got %v, want %v", got, want)
	}
}

// signedVolume sums the tetrahedra spanned by the origin and each triangle.
// It equals the enclosed volume only for a closed, outward-wound surface.
func signedVolume(m *Mesh) float64 {
	var v float64
	for _, tri := range m.Triangles {
		a, b, c := tri.Vertices[0], tri.Vertices[1], tri.Vertices[2]
		v += float64(a.Dot(b.Cross(c))) / 6
	}
	return v
}

func TestBuildIsClosed(t *testing.T) {
	for _, p := range []Params{
		{Width: 1, Depth: 1, BaseHeight: 0.2, CutAngle: 20, CutType: CutEdge},
		{Width: 1, Depth: 1, BaseHeight: 0, CutAngle: 20, CutType: CutEdge},
		{Width: 2, Depth: 0.5, BaseHeight: 0.2, CutAngle: 60, CutType: CutCorner},
		{Width: 1, Depth: 1, BaseHeight: 0, CutAngle: 20, CutType: CutCorner},
	} {
		fl, fr, bl, br := topHeights(p)
		want := p.Width * p.Depth * (fl + fr + bl + br) / 4
		if got := signedVolume(mustBuild(t, p)); math.Abs(got-want) > 1e-4 {
			t.Errorf("%+v: volume %v, want %v", p, got, want)
		}
	}
}

func TestBuildRejectsInvalidParams(t *testing.T) {
	good := DefaultParams()
	cases := map[string]func(p *Params){
		"zero width":     func(p *Params) { p.Width = 0 },
		"negative depth": func(p *Params) { p.Depth = -1 },
		"negative base":  func(p *Params) { p.BaseHeight = -0.1 },
		"zero angle":     func(p *Params) { p.CutAngle = 0 },
		"right angle":    func(p *Params) { p.CutAngle = 90 },
		"nan angle":      func(p *Params) { p.CutAngle = math.NaN() },
		"unknown cut":    func(p *Params) { p.CutType = CutType(7) },
	}
	for name, mutate := range cases {
		p := good
		mutate(&p)
		m, err := Build(p)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: got err %v, want ErrInvalidParameter", name, err)
		}
		if m != nil {
			t.Errorf("%s: got partial mesh", name)
		}
	}
}

func TestParseCutType(t *testing.T) {
	for _, ct := range []CutType{CutEdge, CutCorner} {
		got, err := ParseCutType(ct.String())
		if err != nil || got != ct {
			t.Errorf("ParseCutType(%q) = %v, %v", ct.String(), got, err)
		}
	}
	if _, err := ParseCutType("diagonal"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestTransformQuarterTurn(t *testing.T) {
	p := Params{Width: 2, Depth: 1, BaseHeight: 0.1, CutAngle: 30}
	m := mustBuild(t, p)
	turned := m.Transform(mgl32.HomogRotate3DY(math.Pi / 2))

	if len(turned.Triangles) != len(m.Triangles) {
		t.Fatalf("got %d triangles after transform, want %d", len(turned.Triangles), len(m.Triangles))
	}
	lo, hi := turned.Bounds()
	// width and depth swap under a quarter turn
	if dx := hi.X() - lo.X(); math.Abs(float64(dx)-p.Depth) > 1e-5 {
		t.Errorf("x extent %v, want %v", dx, p.Depth)
	}
	if dz := hi.Z() - lo.Z(); math.Abs(float64(dz)-p.Width) > 1e-5 {
		t.Errorf("z extent %v, want %v", dz, p.Width)
	}
	if v0, v1 := signedVolume(m), signedVolume(turned); math.Abs(v0-v1) > 1e-4 {
		t.Errorf("volume changed under rotation: %v -> %v", v0, v1)
	}
}

func BenchmarkBuild(b *testing.B) {
	p := Params{Width: 1, Depth: 1, BaseHeight: 0.1, CutAngle: 22.5, CutType: CutCorner}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Build(p)
	}
}
