package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/stipple/ppm"
)

const testScene = `
width = 40
height = 20
background = "#000000"

[[layers]]
color = "#ffffff"
alpha = 0.25
points = 500

[[layers.shapes]]
type = "circle"
center = [0.0, 0.0]
radius = 1.0
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(testScene), 0o600))
	return path
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-o", "out.png", "-seed", "0", "-workers", "3", "-v"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "out.png", cfg.output)
	assert.True(t, cfg.seeded)
	assert.Equal(t, uint64(0), cfg.seed)
	assert.Equal(t, 3, cfg.workers)
	assert.True(t, cfg.verbose)

	cfg, err = parseFlags(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "-", cfg.output)
	assert.False(t, cfg.seeded)

	_, err = parseFlags([]string{"-points", "-5"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = parseFlags([]string{"extra"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoadScene_Overrides(t *testing.T) {
	s, err := loadScene(config{width: 30, height: 10, points: 7})
	require.NoError(t, err)
	assert.Equal(t, 30, s.Width)
	assert.Equal(t, 10, s.Height)
	for _, l := range s.Layers {
		assert.Equal(t, 7, l.Points)
	}
}

func TestRun_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-scene", writeScene(t), "-seed", "5"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout.String(), "P3\n40 20\n255\n"))
	img, err := ppm.Decode(&stdout)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())

	logs := stderr.String()
	assert.Contains(t, logs, "run=")
	assert.Contains(t, logs, "rasterized")
}

func TestRun_Seeded(t *testing.T) {
	path := writeScene(t)
	var a, b bytes.Buffer
	require.NoError(t, run([]string{"-scene", path, "-seed", "9", "-workers", "1"}, &a, &bytes.Buffer{}))
	require.NoError(t, run([]string{"-scene", path, "-seed", "9", "-workers", "4"}, &b, &bytes.Buffer{}))
	assert.Equal(t, a.String(), b.String())
}

func TestRun_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	var stdout bytes.Buffer
	require.NoError(t, run([]string{"-scene", writeScene(t), "-o", out}, &stdout, &bytes.Buffer{}))
	assert.Zero(t, stdout.Len())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestRun_Errors(t *testing.T) {
	err := run([]string{"-scene", "missing.toml"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)

	err = run([]string{"-scene", writeScene(t), "-o", "out.gif"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}
