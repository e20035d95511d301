package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"cutfield/internal/layout"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the design file used when no path is given.
const EnvConfigPath = "CUTFIELD_CONFIG"

// ErrInvalidConfig wraps every decode or conversion failure.
var ErrInvalidConfig = errors.New("config: invalid design")

// Design is the on-disk description of a field.
type Design struct {
	Grid   GridSection   `yaml:"grid"`
	Blocks BlockSection  `yaml:"blocks"`
	Output OutputSection `yaml:"output"`

	// Seed makes the layout reproducible; nil draws a fresh seed.
	Seed *uint64 `yaml:"seed,omitempty"`
	// Workers bounds parallel mesh building; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

type GridSection struct {
	Width              int      `yaml:"width"`
	Height             int      `yaml:"height"`
	ColorStops         []string `yaml:"color_stops"`
	BorderBlurDistance float64  `yaml:"border_blur_distance"`
}

type BlockSection struct {
	Size            float64      `yaml:"size"`
	BaseHeightRange layout.Range `yaml:"base_height"`
	CutAngleRange   layout.Range `yaml:"cut_angle"`
	CornerCutRatio  float64      `yaml:"corner_cut_ratio"`
}

type OutputSection struct {
	Text string `yaml:"text"`
	PNG  string `yaml:"png"`
	STL  string `yaml:"stl"`
}

// Default mirrors layout.DefaultConfig.
func Default() *Design {
	lc := layout.DefaultConfig()
	stops := make([]string, len(lc.ColorStops))
	for i, c := range lc.ColorStops {
		stops[i] = c.Hex()
	}
	return &Design{
		Grid: GridSection{
			Width:              lc.Width,
			Height:             lc.Height,
			ColorStops:         stops,
			BorderBlurDistance: lc.BorderBlurDistance,
		},
		Blocks: BlockSection{
			Size:            lc.BlockSize,
			BaseHeightRange: lc.BaseHeightRange,
			CutAngleRange:   lc.CutAngleRange,
			CornerCutRatio:  lc.CornerCutRatio,
		},
	}
}

// Load reads a YAML design on top of Default. An empty path falls back to
// $CUTFIELD_CONFIG; with neither set the defaults are returned.
func Load(path string) (*Design, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default. Fields missing from data keep their
// default value; unknown keys are rejected.
func Parse(data []byte) (*Design, error) {
	d := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return d, nil
}

// Layout converts the design into a validated layout.Config.
func (d *Design) Layout() (layout.Config, error) {
	stops := make([]layout.Color, 0, len(d.Grid.ColorStops))
	for _, s := range d.Grid.ColorStops {
		c, err := layout.ParseColor(s)
		if err != nil {
			return layout.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		stops = append(stops, c)
	}

	cfg := layout.Config{
		Width:              d.Grid.Width,
		Height:             d.Grid.Height,
		ColorStops:         stops,
		BorderBlurDistance: d.Grid.BorderBlurDistance,
		CornerCutRatio:     d.Blocks.CornerCutRatio,
		BaseHeightRange:    d.Blocks.BaseHeightRange,
		CutAngleRange:      d.Blocks.CutAngleRange,
		BlockSize:          d.Blocks.Size,
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ResolveSeed returns the configured seed, or a fresh random one when none
// is set.
func (d *Design) ResolveSeed() uint64 {
	if d.Seed != nil {
		return *d.Seed
	}
	return rand.Uint64()
}

// Marshal renders the design back to YAML, e.g. to print the effective
// settings.
func (d *Design) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
