package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/d3drot/render"
)

func parse(t *testing.T, args ...string) (options, error) {
	t.Helper()
	fs := flag.NewFlagSet("d3drot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return parseFlags(fs, args)
}

func TestParseFlagsDefaults(t *testing.T) {
	o, err := parse(t)
	require.NoError(t, err)
	assert.True(t, o.vsync)
	assert.Equal(t, 800, o.width)
	assert.Equal(t, 480, o.height)
	assert.Equal(t, render.Rotate0, o.rotation)
	assert.Equal(t, render.DefaultShaderPath, o.shader)
	assert.Equal(t, 1, o.frames)
	assert.Empty(t, o.preview)
}

func TestParseFlags(t *testing.T) {
	o, err := parse(t, "-rotation", "270", "-vsync=false", "-headless", "-frames", "10", "-rotate-every", "3", "-preview", ":8023")
	require.NoError(t, err)
	assert.Equal(t, render.Rotate270, o.rotation)
	assert.False(t, o.vsync)
	assert.True(t, o.headless)
	assert.Equal(t, 10, o.frames)
	assert.Equal(t, 3, o.rotateEvery)
	assert.Equal(t, ":8023", o.preview)

	cfg := o.renderConfig(nil)
	assert.False(t, cfg.VSync)
	assert.Equal(t, render.DefaultShaderPath, cfg.ShaderPath)
}

func TestParseFlagsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"-rotation", "45"},
		{"-width", "0"},
		{"-frames", "-1"},
		{"-nope"},
	} {
		_, err := parse(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunHeadlessSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	o, err := parse(t,
		"-headless",
		"-shader", filepath.Join("..", "..", "shaders", "shader.hlsl"),
		"-frames", "3",
		"-rotate-every", "2",
		"-fps", "0",
		"-snapshot", path,
	)
	require.NoError(t, err)
	require.NoError(t, runHeadless(context.Background(), o, discardLogger()))

	// One quarter turn after the second frame swaps the sides.
	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())

	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, [3]uint32{26, 46, 61}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestRunHeadlessMissingShader(t *testing.T) {
	o, err := parse(t, "-headless", "-shader", filepath.Join(t.TempDir(), "none.hlsl"))
	require.NoError(t, err)
	err = runHeadless(context.Background(), o, discardLogger())
	assert.ErrorIs(t, err, render.ErrShaderCompile)
}

func TestRunHeadlessCancelled(t *testing.T) {
	o, err := parse(t, "-headless", "-shader", filepath.Join("..", "..", "shaders", "shader.hlsl"), "-frames", "0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, runHeadless(ctx, o, discardLogger()))
}
