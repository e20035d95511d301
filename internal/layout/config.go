package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidParameter is returned when a Config cannot produce a grid.
var ErrInvalidParameter = errors.New("layout: invalid parameter")

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

func (r Range) finite() bool {
	return !math.IsNaN(r.Min) && !math.IsInf(r.Min, 0) && !math.IsNaN(r.Max) && !math.IsInf(r.Max, 0)
}

// Color is a 24-bit 0xRRGGBB value.
type Color uint32

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// RGB splits the color into channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// ParseColor accepts "#rrggbb", "rrggbb" or "0xrrggbb".
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(h) != 6 {
		return 0, fmt.Errorf("%w: color %q", ErrInvalidParameter, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: color %q", ErrInvalidParameter, s)
	}
	return Color(v), nil
}

// Config drives Generate.
type Config struct {
	Width  int // columns (x)
	Height int // rows (z)

	ColorStops         []Color
	BorderBlurDistance float64 // in color-stop units, [0, 1]
	CornerCutRatio     float64 // probability of a corner cut, [0, 1]

	BaseHeightRange Range
	CutAngleRange   Range // degrees

	// BlockSize is the footprint width and depth of every block; 0 means
	// DefaultBlockSize.
	BlockSize float64
}

// DefaultConfig returns a 10x20 field of shallow 15-30 degree cuts fading
// through three stops.
func DefaultConfig() Config {
	return Config{
		Width:              10,
		Height:             20,
		ColorStops:         []Color{0x2f4858, 0x86bbd8, 0xf6ae2d},
		BorderBlurDistance: 0.25,
		CornerCutRatio:     0,
		BaseHeightRange:    Range{Min: 0.1, Max: 0.1},
		CutAngleRange:      Range{Min: 15, Max: 30},
		BlockSize:          DefaultBlockSize,
	}
}

// DefaultBlockSize is used when Config.BlockSize is left at zero.
const DefaultBlockSize = 1.0

// Validate checks every field before any sampling happens.
//
// Beyond the grid checks it requires BaseHeightRange.Min >= 0 and
// CutAngleRange inside (0, 90) degrees, so every cell it can produce is a
// buildable block. BlockSize may be 0 (default) but not negative or
// non-finite.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalidParameter, c.Width, c.Height)
	case len(c.ColorStops) == 0:
		return fmt.Errorf("%w: no color stops", ErrInvalidParameter)
	case !(c.BorderBlurDistance >= 0 && c.BorderBlurDistance <= 1):
		return fmt.Errorf("%w: border blur distance %v not in [0, 1]", ErrInvalidParameter, c.BorderBlurDistance)
	case !(c.CornerCutRatio >= 0 && c.CornerCutRatio <= 1):
		return fmt.Errorf("%w: corner cut ratio %v not in [0, 1]", ErrInvalidParameter, c.CornerCutRatio)
	case !(c.BlockSize >= 0) || math.IsInf(c.BlockSize, 0):
		return fmt.Errorf("%w: block size %v", ErrInvalidParameter, c.BlockSize)
	}
	if err := checkRange("base height", c.BaseHeightRange); err != nil {
		return err
	}
	if c.BaseHeightRange.Min < 0 {
		return fmt.Errorf("%w: base height range %v below zero", ErrInvalidParameter, c.BaseHeightRange)
	}
	if err := checkRange("cut angle", c.CutAngleRange); err != nil {
		return err
	}
	if c.CutAngleRange.Min <= 0 || c.CutAngleRange.Max >= 90 {
		return fmt.Errorf("%w: cut angle range %v not inside (0, 90)", ErrInvalidParameter, c.CutAngleRange)
	}
	return nil
}

func checkRange(name string, r Range) error {
	if !r.finite() {
		return fmt.Errorf("%w: %s range %v not finite", ErrInvalidParameter, name, r)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s range min %v > max %v", ErrInvalidParameter, name, r.Min, r.Max)
	}
	return nil
}
