package render

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/shaders"
	"github.com/kirides/d3drot/soft"
)

func f32At(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func newTestRenderer(t *testing.T, drv *soft.Driver, w, h int, cfg Config) *Renderer {
	t.Helper()
	cfg.ShaderSource = shaders.Source
	r, err := NewRenderer(drv, soft.NewWindow(w, h), cfg)
	require.NoError(t, err)
	t.Cleanup(r.Shutdown)
	return r
}

func screen(r *Renderer) *image.RGBA {
	return r.Surface().SwapChain().(*soft.SwapChain).Screen()
}

var (
	background = color.RGBA{R: 26, G: 46, B: 61, A: 255}
	yellow     = color.RGBA{R: 255, G: 255, A: 255}
	blue       = color.RGBA{B: 255, A: 255}
)

func TestRenderFramePresents(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 800, 480, Config{VSync: false})

	require.NoError(t, r.Resize(800, 480, Rotate0))
	res, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, Presented, res)

	img := screen(r)
	assert.Equal(t, background, img.RGBAAt(10, 10))
	assert.Equal(t, background, img.RGBAAt(790, 470))
	assert.Equal(t, yellow, img.RGBAAt(320, 300))
	assert.Equal(t, blue, img.RGBAAt(620, 170))

	// Per-frame primitives are gone; the constant buffer stays.
	assert.Equal(t, 1, drv.Live()[soft.KindBuffer])
	assert.Empty(t, drv.Violations())

	r.Shutdown()
	assert.Zero(t, drv.LiveTotal(), "%v", drv.Live())
	assert.Empty(t, drv.Violations())
}

func TestRenderFrameCallOrder(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 320, 240, Config{})
	require.NoError(t, r.Resize(320, 240, Rotate0))

	drv.ResetCalls()
	_, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ClearRenderTargetView",
		"IASetInputLayout", "VSSetShader", "VSSetConstantBuffers", "RSSetState", "PSSetShader",
		"IASetPrimitiveTopology",
		"IASetVertexBuffers", "IASetIndexBuffer", "DrawIndexed",
		"IASetVertexBuffers", "IASetIndexBuffer", "DrawIndexed",
	}, drv.Calls())
}

func TestRenderFrameRotate180(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 800, 480, Config{})

	require.NoError(t, r.Resize(800, 480, Rotate0))
	_, err := r.RenderFrame()
	require.NoError(t, err)
	upright := screen(r)

	require.NoError(t, r.Resize(800, 480, Rotate180))
	_, err = r.RenderFrame()
	require.NoError(t, err)
	turned := screen(r)

	want := imaging.Rotate180(upright)
	b := turned.Bounds()
	require.Equal(t, b, want.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			got := turned.RGBAAt(x, y)
			exp := want.NRGBAAt(x, y)
			if !near(got.R, exp.R) || !near(got.G, exp.G) || !near(got.B, exp.B) {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, exp)
			}
		}
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -8 && d <= 8
}

func TestRenderFrameRotate90(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 800, 480, Config{})

	require.NoError(t, r.Resize(800, 480, Rotate0))
	require.NoError(t, r.Resize(480, 800, Rotate90))

	s := r.Surface()
	assert.Equal(t, gpu.Viewport{Width: 480, Height: 800, MaxDepth: 1}, s.Viewport())
	w, h, err := r.Size()
	require.NoError(t, err)
	assert.Equal(t, 480, w)
	assert.Equal(t, 800, h)

	cb := r.pipeline.constants.(*soft.Buffer).Bytes()
	assert.Equal(t, []float32{0, -1, 2}, []float32{f32At(cb, 0), f32At(cb, 1), f32At(cb, 2)})
	assert.Equal(t, []float32{1, 0, 0}, []float32{f32At(cb, 4), f32At(cb, 5), f32At(cb, 6)})

	res, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, Presented, res)
	assert.Equal(t, image.Rect(0, 0, 480, 800), screen(r).Bounds())
}

func TestRenderFramePresentDeviceRemoved(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 800, 480, Config{})
	require.NoError(t, r.Resize(800, 480, Rotate0))

	drv.Fault = soft.FailOn(soft.CallPresent, 1, gpu.DXGI_ERROR_DEVICE_REMOVED)
	res, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, DeviceLost, res)
	assert.True(t, r.Lost())

	// Sticky: no silent success and no GPU work until recreated.
	drv.ResetCalls()
	for i := 0; i < 3; i++ {
		res, err = r.RenderFrame()
		require.NoError(t, err)
		assert.Equal(t, DeviceLost, res)
	}
	assert.ErrorIs(t, r.Resize(800, 480, Rotate0), ErrDeviceLost)
	assert.Empty(t, drv.Calls())

	r.Shutdown()
	assert.Zero(t, drv.LiveTotal())
}

func TestRenderFrameDeviceRemovedMidFrame(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 200, 100, Config{})
	require.NoError(t, r.Resize(200, 100, Rotate0))

	drv.Remove(gpu.DXGI_ERROR_DEVICE_HUNG)
	res, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, DeviceLost, res)

	// A fresh renderer on a new device works again.
	r.Shutdown()
	r2 := newTestRenderer(t, drv, 200, 100, Config{})
	require.NoError(t, r2.Resize(200, 100, Rotate0))
	res, err = r2.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, Presented, res)
}

func TestRenderFrameOccluded(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 64, 64, Config{VSync: true})
	require.NoError(t, r.Resize(64, 64, Rotate0))

	drv.SetOccluded(true)
	res, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, Occluded, res)
	assert.False(t, r.Lost())

	drv.SetOccluded(false)
	res, err = r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, Presented, res)
}

func TestRenderFrameBeforeResize(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 64, 64, Config{})

	_, err := r.RenderFrame()
	assert.ErrorIs(t, err, ErrNoRenderTarget)
	assert.Empty(t, drv.Violations())
}

func TestRenderFrameBufferFailure(t *testing.T) {
	drv := soft.New()
	r := newTestRenderer(t, drv, 64, 64, Config{})
	require.NoError(t, r.Resize(64, 64, Rotate0))

	// The triangle's index buffer.
	drv.Fault = soft.FailOn(soft.CallCreateBuffer, 2, gpu.E_OUTOFMEMORY)
	_, err := r.RenderFrame()
	assert.ErrorIs(t, err, ErrResourceCreation)
	assert.False(t, r.Lost())
	assert.Equal(t, 1, drv.Live()[soft.KindBuffer])
}

func TestNewRendererShaderMissing(t *testing.T) {
	drv := soft.New()
	cfg := Config{ShaderPath: filepath.Join(t.TempDir(), "missing.hlsl")}
	r, err := NewRenderer(drv, soft.NewWindow(64, 64), cfg)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrShaderCompile)
	assert.Zero(t, drv.LiveTotal())
}

func TestNewRendererShaderBroken(t *testing.T) {
	drv := soft.New()
	cfg := Config{ShaderSource: []byte("float4 nothing() : SV_TARGET { return 0; }")}
	r, err := NewRenderer(drv, soft.NewWindow(64, 64), cfg)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrShaderCompile)
	var ce *gpu.CompileError
	assert.ErrorAs(t, err, &ce)
	assert.Zero(t, drv.LiveTotal())
}

func TestShutdownReportsLiveObjects(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	drv := soft.New()
	drv.Logger = log
	r := newTestRenderer(t, drv, 64, 64, Config{Debug: true, Logger: log})
	require.NoError(t, r.Resize(64, 64, Rotate0))
	_, err := r.RenderFrame()
	require.NoError(t, err)

	r.Shutdown()
	r.Shutdown()
	assert.Contains(t, buf.String(), "no live objects")
	assert.Zero(t, drv.LiveTotal())
	assert.Nil(t, r.Surface())
	assert.ErrorIs(t, r.Resize(64, 64, Rotate0), ErrNotInitialized)
}
