// Package instructions reduces a grid layout to what a fabricator needs:
// how many pieces of each angle and color to cut, and where each one goes.
package instructions

import (
	"errors"
	"fmt"
	"slices"

	"cutfield/internal/layout"
)

// ErrInvalidParameter is returned for grids that are not well formed.
var ErrInvalidParameter = errors.New("instructions: invalid parameter")

const (
	angleLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	turnLetters  = "NESW"
)

// AngleLetter names angle bucket i: A, B, C, ...
func AngleLetter(i int) string {
	return angleLetters[i : i+1]
}

// ColorOrdinal names color bucket j by its 1-based position.
func ColorOrdinal(j int) string {
	return fmt.Sprint(j + 1)
}

// TurnLetter names a quarter-turn count as a compass direction.
func TurnLetter(turns int) string {
	t := ((turns % 4) + 4) % 4
	return turnLetters[t : t+1]
}

// Label identifies one placed piece.
type Label struct {
	AngleBucket int
	ColorBucket int
	Turns       int
}

// Piece is the fabrication group, e.g. "B2".
func (l Label) Piece() string {
	return AngleLetter(l.AngleBucket) + ColorOrdinal(l.ColorBucket)
}

// Direction is the orientation letter, e.g. "E".
func (l Label) Direction() string {
	return TurnLetter(l.Turns)
}

func (l Label) String() string {
	return l.Piece() + " " + l.Direction()
}

// Summary is the build sheet for one grid.
type Summary struct {
	Width, Height int

	Angles []float64      // degrees per angle bucket
	Colors []layout.Color // per color bucket

	// AngleCounts[i] is the number of cells cut at angle bucket i.
	AngleCounts []int
	// AngleColorCounts[i][j] is the number of cells with angle bucket i and
	// color bucket j.
	AngleColorCounts [][]int

	// Labels[z][x] names the piece at column x, row z.
	Labels [][]Label
}

// Total is the number of pieces on the sheet.
func (s *Summary) Total() int {
	n := 0
	for _, c := range s.AngleCounts {
		n += c
	}
	return n
}

// Summarize counts pieces per bucket and labels every cell. Zero counts are
// kept so every angle and color appears on the sheet.
func Summarize(g *layout.Grid) (*Summary, error) {
	if err := check(g); err != nil {
		return nil, err
	}

	nAngles := len(g.CutAngleBuckets)
	nColors := len(g.ColorBuckets)
	s := &Summary{
		Width:            g.Width,
		Height:           g.Height,
		Angles:           slices.Clone(g.CutAngleBuckets[:]),
		Colors:           slices.Clone(g.ColorBuckets),
		AngleCounts:      make([]int, nAngles),
		AngleColorCounts: make([][]int, nAngles),
		Labels:           make([][]Label, g.Height),
	}
	for i := range s.AngleColorCounts {
		s.AngleColorCounts[i] = make([]int, nColors)
	}

	for z := range g.Height {
		row := make([]Label, g.Width)
		for x := range g.Width {
			c := g.At(x, z)
			s.AngleCounts[c.CutAngleBucket]++
			s.AngleColorCounts[c.CutAngleBucket][c.ColorBucket]++
			row[x] = Label{AngleBucket: c.CutAngleBucket, ColorBucket: c.ColorBucket, Turns: c.Turns}
		}
		s.Labels[z] = row
	}
	return s, nil
}

func check(g *layout.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidParameter)
	}
	if g.Width <= 0 || g.Height <= 0 || len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d grid with %d cells", ErrInvalidParameter, g.Width, g.Height, len(g.Cells))
	}
	if len(g.ColorBuckets) == 0 {
		return fmt.Errorf("%w: no color buckets", ErrInvalidParameter)
	}
	for i, c := range g.Cells {
		if c.CutAngleBucket < 0 || c.CutAngleBucket >= len(g.CutAngleBuckets) {
			return fmt.Errorf("%w: cell %d angle bucket %d", ErrInvalidParameter, i, c.CutAngleBucket)
		}
		if c.ColorBucket < 0 || c.ColorBucket >= len(g.ColorBuckets) {
			return fmt.Errorf("%w: cell %d color bucket %d", ErrInvalidParameter, i, c.ColorBucket)
		}
		if c.Turns < 0 || c.Turns > 3 {
			return fmt.Errorf("%w: cell %d turns %d", ErrInvalidParameter, i, c.Turns)
		}
	}
	return nil
}
