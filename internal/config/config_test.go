package config

import (
	"os"
	"path/filepath"
	"testing"

	"cutfield/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesLayoutDefaults(t *testing.T) {
	cfg, err := Default().Layout()
	require.NoError(t, err)
	assert.Equal(t, layout.DefaultConfig(), cfg)
}

func TestParseOverridesDefaults(t *testing.T) {
	d, err := Parse([]byte(`
seed: 7
workers: 3
grid:
  width: 4
  color_stops: ["#000000", "#ff8800"]
blocks:
  cut_angle: {min: 20, max: 40}
  corner_cut_ratio: 0.5
output:
  png: sheet.png
`))
	require.NoError(t, err)

	require.NotNil(t, d.Seed)
	assert.Equal(t, uint64(7), *d.Seed)
	assert.Equal(t, 3, d.Workers)
	assert.Equal(t, "sheet.png", d.Output.PNG)

	cfg, err := d.Layout()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 20, cfg.Height, "height keeps its default")
	assert.Equal(t, []layout.Color{0x000000, 0xff8800}, cfg.ColorStops)
	assert.Equal(t, layout.Range{Min: 20, Max: 40}, cfg.CutAngleRange)
	assert.Equal(t, layout.Range{Min: 0.1, Max: 0.1}, cfg.BaseHeightRange)
	assert.Equal(t, 0.5, cfg.CornerCutRatio)
}

func TestLayoutRejectsBadValues(t *testing.T) {
	d, err := Parse([]byte("grid: {color_stops: [\"#12\"]}"))
	require.NoError(t, err)
	_, err = d.Layout()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, layout.ErrInvalidParameter)

	d, err = Parse([]byte("grid: {width: -1}"))
	require.NoError(t, err)
	_, err = d.Layout()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte("grid: [not, a, map]"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("grid: {border_blur: 0.5}\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte("sead: 3\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	d, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), d, "empty input keeps the defaults")
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: {height: 6}\n"), 0o644))

	t.Setenv(EnvConfigPath, path)
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, d.Grid.Height)

	t.Setenv(EnvConfigPath, "")
	d, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), d)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	seed := uint64(99)
	d := Default()
	d.Seed = &seed

	data, err := d.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestResolveSeed(t *testing.T) {
	d := Default()
	seed := uint64(42)
	d.Seed = &seed
	assert.Equal(t, uint64(42), d.ResolveSeed())

	d.Seed = nil
	a, b := d.ResolveSeed(), d.ResolveSeed()
	assert.NotEqual(t, a, b, "unset seeds are drawn fresh")
}
