package layout

import (
	"math"
	"slices"

	"cutfield/internal/geometry"

	"github.com/google/uuid"
)

// Generate lays out a new grid.
//
// Per cell, draws are taken from src in a fixed order: height bucket, angle
// bucket, turns, cut type, and a blend draw only for rows inside a blur zone.
// A seeded src therefore reproduces the same cells.
func Generate(cfg Config, src Source) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = DefaultBlockSize
	}

	g := &Grid{
		ID:           uuid.New(),
		Width:        cfg.Width,
		Height:       cfg.Height,
		BlockSize:    cfg.BlockSize,
		ColorBuckets: slices.Clone(cfg.ColorStops),
		Cells:        make([]Cell, cfg.Width*cfg.Height),
	}
	for k := range NumBuckets {
		g.CutAngleBuckets[k] = BucketValue(cfg.CutAngleRange, k)
	}

	for z := range cfg.Height {
		for x := range cfg.Width {
			g.Cells[g.Index(x, z)] = sampleCell(cfg, src, z)
		}
	}
	return g, nil
}

func sampleCell(cfg Config, src Source, z int) Cell {
	var c Cell
	_, c.BaseHeight = sampleBucket(src, cfg.BaseHeightRange)
	c.CutAngleBucket = src.IntN(NumBuckets)
	c.Turns = src.IntN(4)
	c.CutType = geometry.CutEdge
	if src.Float64() < cfg.CornerCutRatio {
		c.CutType = geometry.CutCorner
	}
	c.ColorBucket = colorBucket(z, cfg.Height, len(cfg.ColorStops), cfg.BorderBlurDistance, src)
	return c
}

// colorBucket places row z into one of n color bands. Rows closer than blur
// (in band units) to a band boundary may be pushed across it; the closer the
// row is to the boundary, the more likely the push.
func colorBucket(z, height, n int, blur float64, src Source) int {
	f := float64(z) / float64(height) * float64(n)
	idx := int(math.Floor(f))

	if p := BlendProbability(f, blur); p > 0 && src.Float64() < p {
		if f-math.Floor(f+0.5) >= 0 {
			idx--
		} else {
			idx++
		}
	}
	return max(0, min(idx, n-1))
}

// BlendProbability is the chance that a row at fractional band position f
// is pushed into its neighbouring band. Zero outside the blur zone, so a
// blur of 0 never blends.
func BlendProbability(f, blur float64) float64 {
	// distance to the nearest boundary, rounding halves up
	d := math.Abs(f - math.Floor(f+0.5))
	if !(d < blur) {
		return 0
	}
	return math.Min(1, (blur-d)/blur+0.6) - 0.5
}
