package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Corner slots of the block. The base sits on y=0, front is +Z.
const (
	baseBackLeft = iota
	baseBackRight
	baseFrontLeft
	baseFrontRight
	topFrontLeft
	topFrontRight
	topBackLeft
	topBackRight
)

// faces lists two triangles per face, wound counter-clockwise seen from
// outside: base, front, left, right, top, back.
var faces = [12][3]int{
	{baseBackLeft, baseBackRight, baseFrontLeft},
	{baseFrontLeft, baseBackRight, baseFrontRight},

	{baseFrontLeft, topFrontRight, topFrontLeft},
	{baseFrontRight, topFrontRight, baseFrontLeft},

	{baseBackLeft, topFrontLeft, topBackLeft},
	{baseFrontLeft, topFrontLeft, baseBackLeft},

	{baseBackRight, topFrontRight, baseFrontRight},
	{topBackRight, topFrontRight, baseBackRight},

	{topFrontLeft, topBackRight, topBackLeft},
	{topFrontRight, topBackRight, topFrontLeft},

	{baseBackRight, topBackLeft, topBackRight},
	{baseBackLeft, topBackLeft, baseBackRight},
}

// Build returns the flat-shaded mesh of a block described by p.
//
// Every face is emitted as two triangles whose corners are copied out of the
// corner table, so adjacent faces never share a vertex and each triangle
// carries its own normal. Triangles that collapse to zero area (the front
// lip when BaseHeight is 0) are left out.
func Build(p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	corners := cornerPositions(p)
	mesh := &Mesh{Triangles: make([]Triangle, 0, len(faces))}
	for _, f := range faces {
		if tri, ok := newTriangle(corners[f[0]], corners[f[1]], corners[f[2]]); ok {
			mesh.Triangles = append(mesh.Triangles, tri)
		}
	}
	return mesh, nil
}

func cornerPositions(p Params) [8]mgl32.Vec3 {
	hw := float32(p.Width / 2)
	hd := float32(p.Depth / 2)
	fl, fr, bl, br := topHeights(p)

	return [8]mgl32.Vec3{
		baseBackLeft:   {-hw, 0, -hd},
		baseBackRight:  {hw, 0, -hd},
		baseFrontLeft:  {-hw, 0, hd},
		baseFrontRight: {hw, 0, hd},
		topFrontLeft:   {-hw, float32(fl), hd},
		topFrontRight:  {hw, float32(fr), hd},
		topBackLeft:    {-hw, float32(bl), -hd},
		topBackRight:   {hw, float32(br), -hd},
	}
}

// topHeights returns the heights of the four top corners (front-left,
// front-right, back-left, back-right). All four lie on one plane.
func topHeights(p Params) (fl, fr, bl, br float64) {
	t := math.Tan(p.CutAngle * math.Pi / 180)
	bh := p.BaseHeight

	if p.CutType == CutCorner {
		// Rise measured along the diagonal from the front-right corner.
		diag := math.Hypot(p.Width, p.Depth)
		return bh + t*p.Width*p.Width/diag, bh, bh + t*diag, bh + t*p.Depth*p.Depth/diag
	}

	back := bh + t*p.Depth
	return bh, bh, back, back
}
