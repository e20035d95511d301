package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cutfield/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	require.NoError(t, root.Execute(), errOut.String())
	return out.String()
}

func TestGenerateWritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	stl := filepath.Join(dir, "field.stl")
	sheet := filepath.Join(dir, "field.png")

	out := execute(t, "generate", "--seed", "3", "--workers", "2", "--stl", stl, "--png", sheet)
	assert.Contains(t, out, "Field 10x20, 200 pieces")

	info, err := os.Stat(stl)
	require.NoError(t, err)
	// default base height is positive, so every block keeps twelve triangles
	assert.Equal(t, int64(84+50*200*12), info.Size())

	f, err := os.Open(sheet)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestGenerateIsReproducible(t *testing.T) {
	a := execute(t, "generate", "--seed", "11")
	b := execute(t, "generate", "--seed", "11")
	assert.Equal(t, a, b)
}

func TestGenerateUsesDesignFile(t *testing.T) {
	dir := t.TempDir()
	design := filepath.Join(dir, "design.yaml")
	text := filepath.Join(dir, "field.txt")
	require.NoError(t, os.WriteFile(design, []byte("seed: 5\ngrid: {width: 4, height: 6}\n"), 0o644))

	out := execute(t, "--config", design, "generate", "--text", text)
	assert.Empty(t, out)

	data, err := os.ReadFile(text)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Field 4x6, 24 pieces")
}

func TestBlockExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.stl")
	execute(t, "block", "--cut", "corner", "--angle", "30", "--height", "0.5", "--stl", path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(84+50*12), info.Size())
}

func TestBlockRejectsBadParams(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"block", "--angle", "90", "--stl", filepath.Join(t.TempDir(), "x.stl")})
	assert.Error(t, root.Execute())

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"block", "--cut", "diagonal"})
	assert.Error(t, root.Execute())
}

func TestConfigPrintsEffectiveDesign(t *testing.T) {
	out := execute(t, "config")
	d, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), d)
}
