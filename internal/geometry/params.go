package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned when block parameters are out of domain.
var ErrInvalidParameter = errors.New("geometry: invalid parameter")

// CutType selects how the inclined top plane is oriented on the block.
type CutType int

const (
	// CutEdge tilts the top plane from the front edge toward the back edge.
	CutEdge CutType = iota
	// CutCorner tilts the top plane along the footprint diagonal, from the
	// front-right corner toward the back-left corner.
	CutCorner
)

func (c CutType) String() string {
	switch c {
	case CutEdge:
		return "edge"
	case CutCorner:
		return "corner"
	default:
		return fmt.Sprintf("CutType(%d)", int(c))
	}
}

// ParseCutType maps "edge" / "corner" to a CutType.
func ParseCutType(s string) (CutType, error) {
	switch s {
	case "edge":
		return CutEdge, nil
	case "corner":
		return CutCorner, nil
	}
	return CutEdge, fmt.Errorf("%w: unknown cut type %q", ErrInvalidParameter, s)
}

// Params describes a single angle-cut block.
type Params struct {
	Width      float64 // along X
	Depth      float64 // along Z
	BaseHeight float64 // height of the low end of the cut
	CutAngle   float64 // degrees, in (0, 90)
	CutType    CutType
}

// DefaultParams matches a 1x1 block with a shallow lip and a 45 degree cut.
func DefaultParams() Params {
	return Params{
		Width:      1,
		Depth:      1,
		BaseHeight: 1,
		CutAngle:   45,
		CutType:    CutEdge,
	}
}

// Validate reports the first out-of-domain field.
func (p Params) Validate() error {
	for _, v := range []float64{p.Width, p.Depth, p.BaseHeight, p.CutAngle} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidParameter, p)
		}
	}
	switch {
	case p.Width <= 0:
		return fmt.Errorf("%w: width %v must be > 0", ErrInvalidParameter, p.Width)
	case p.Depth <= 0:
		return fmt.Errorf("%w: depth %v must be > 0", ErrInvalidParameter, p.Depth)
	case p.BaseHeight < 0:
		return fmt.Errorf("%w: base height %v must be >= 0", ErrInvalidParameter, p.BaseHeight)
	case p.CutAngle <= 0 || p.CutAngle >= 90:
		return fmt.Errorf("%w: cut angle %v must be in (0, 90)", ErrInvalidParameter, p.CutAngle)
	case p.CutType != CutEdge && p.CutType != CutCorner:
		return fmt.Errorf("%w: %v", ErrInvalidParameter, p.CutType)
	}
	return nil
}

// BackHeight returns how far the cut plane rises above BaseHeight at its
// highest corner.
func BackHeight(p Params) float64 {
	t := math.Tan(p.CutAngle * math.Pi / 180)
	if p.CutType == CutCorner {
		return math.Hypot(p.Width, p.Depth) * t
	}
	return p.Depth * t
}
