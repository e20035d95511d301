package layout

import (
	"cutfield/internal/geometry"

	"github.com/google/uuid"
)

// Cell is the resolved assignment for one grid position.
type Cell struct {
	BaseHeight     float64
	CutAngleBucket int // index into Grid.CutAngleBuckets
	ColorBucket    int // index into Grid.ColorBuckets
	Turns          int // quarter turns about +Y, 0..3
	CutType        geometry.CutType
}

// Grid is an immutable layout. Cells are row-major: Cells[z*Width+x].
type Grid struct {
	ID uuid.UUID

	Width     int
	Height    int
	BlockSize float64

	ColorBuckets    []Color
	CutAngleBuckets [NumBuckets]float64

	Cells []Cell
}

// Index returns the row-major slot of column x, row z.
func (g *Grid) Index(x, z int) int {
	return z*g.Width + x
}

// At returns the cell at column x, row z.
func (g *Grid) At(x, z int) Cell {
	return g.Cells[g.Index(x, z)]
}

// CutAngle resolves a cell's angle bucket to degrees.
func (g *Grid) CutAngle(c Cell) float64 {
	return g.CutAngleBuckets[c.CutAngleBucket]
}

// Color resolves a cell's color bucket.
func (g *Grid) Color(c Cell) Color {
	return g.ColorBuckets[c.ColorBucket]
}

// BlockParams returns the geometry parameters for the block at x, z.
func (g *Grid) BlockParams(x, z int) geometry.Params {
	c := g.At(x, z)
	return geometry.Params{
		Width:      g.BlockSize,
		Depth:      g.BlockSize,
		BaseHeight: c.BaseHeight,
		CutAngle:   g.CutAngle(c),
		CutType:    c.CutType,
	}
}
