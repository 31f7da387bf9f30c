package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/shaders"
	"github.com/kirides/d3drot/soft"
)

// newTestSurface returns a surface and pipeline for a w×h window. Both are
// released when the test ends.
func newTestSurface(t *testing.T, drv *soft.Driver, w, h int, vsync bool) (*Surface, *Pipeline) {
	t.Helper()
	s, err := NewSurface(drv, soft.NewWindow(w, h), Config{VSync: vsync})
	require.NoError(t, err)
	p, err := NewPipeline(drv, s.device, shaders.Source, "shader.hlsl", false)
	require.NoError(t, err)
	t.Cleanup(func() {
		p.Release()
		s.Release()
	})
	return s, p
}

func TestSurfaceResize(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 800, 480, false)

	require.NoError(t, s.Resize(p, 800, 480, Rotate0))
	assert.Equal(t, image.Pt(800, 480), s.RenderTargetSize())
	assert.Equal(t, gpu.Viewport{Width: 800, Height: 480, MaxDepth: 1}, s.Viewport())
	w, h, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, [2]int{800, 480}, [2]int{w, h})

	require.NoError(t, s.Resize(p, 480, 800, Rotate90))
	assert.Equal(t, gpu.Viewport{Width: 480, Height: 800, MaxDepth: 1}, s.Viewport())
	assert.Equal(t, image.Pt(480, 800), s.RenderTargetSize())
	assert.Equal(t, Rotate90, s.Rotation())

	cb := p.constants.(*soft.Buffer).Bytes()
	var tr Transform
	for i := 0; i < TransformSize/4; i++ {
		tr[i/4][i%4] = f32At(cb, i)
	}
	assert.Equal(t, RotationTransform(Rotate90), tr)
	assert.Empty(t, drv.Violations())
}

func TestSurfaceResizeIdempotent(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 640, 360, false)

	require.NoError(t, s.Resize(p, 640, 360, Rotate180))
	vp, size := s.Viewport(), s.RenderTargetSize()
	live := drv.Live()

	require.NoError(t, s.Resize(p, 640, 360, Rotate180))
	assert.Equal(t, vp, s.Viewport())
	assert.Equal(t, size, s.RenderTargetSize())
	assert.Equal(t, live, drv.Live())
}

func TestSurfaceResizeOrder(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 320, 200, false)
	require.NoError(t, s.Resize(p, 320, 200, Rotate0))

	drv.ResetCalls()
	require.NoError(t, s.Resize(p, 400, 300, Rotate0))
	assert.Equal(t, []string{
		"Map", "Unmap", // transform
		"OMSetRenderTargets", // unbind
		"OMSetRenderTargets", // bind the new view
		"RSSetViewports",
	}, drv.Calls())
}

func TestSurfaceResizeMinimized(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 320, 200, false)
	require.NoError(t, s.Resize(p, 320, 200, Rotate0))

	drv.ResetCalls()
	require.NoError(t, s.Resize(p, 0, 0, Rotate180))
	assert.Equal(t, []string{"Map", "Unmap"}, drv.Calls())
	assert.Equal(t, image.Pt(320, 200), s.RenderTargetSize())
	assert.Equal(t, Rotate180, s.Rotation())
}

func TestSurfaceResizeTransientFailure(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 320, 200, false)
	require.NoError(t, s.Resize(p, 320, 200, Rotate0))

	drv.Fault = soft.FailOn(soft.CallResizeBuffers, 1, gpu.E_OUTOFMEMORY)
	err := s.Resize(p, 4000, 4000, Rotate0)
	assert.ErrorIs(t, err, ErrResizeTransient)
	assert.False(t, s.Lost())

	// Last known good: the old back buffer is bound again.
	assert.Equal(t, image.Pt(320, 200), s.RenderTargetSize())
	assert.True(t, drv.Live()[soft.KindRenderTargetView] == 1)

	// The next attempt succeeds.
	require.NoError(t, s.Resize(p, 400, 250, Rotate0))
	assert.Equal(t, image.Pt(400, 250), s.RenderTargetSize())
}

func TestSurfaceResizeRestoreDeviceLost(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 320, 200, false)
	require.NoError(t, s.Resize(p, 320, 200, Rotate0))

	drv.Fault = soft.Faults(
		soft.FailOn(soft.CallResizeBuffers, 1, gpu.E_OUTOFMEMORY),
		soft.FailOn(soft.CallGetBuffer, 1, gpu.DXGI_ERROR_DEVICE_REMOVED),
	)
	err := s.Resize(p, 640, 400, Rotate0)
	assert.ErrorIs(t, err, ErrDeviceLost)
	assert.NotErrorIs(t, err, ErrResizeTransient)
	assert.True(t, s.Lost())

	res, err := s.Present()
	require.NoError(t, err)
	assert.Equal(t, DeviceLost, res)
}

func TestSurfaceResizeRestoreFailure(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 320, 200, false)
	require.NoError(t, s.Resize(p, 320, 200, Rotate0))

	drv.Fault = soft.Faults(
		soft.FailOn(soft.CallResizeBuffers, 1, gpu.E_OUTOFMEMORY),
		soft.FailOn(soft.CallCreateRenderTargetView, 1, gpu.E_OUTOFMEMORY),
	)
	err := s.Resize(p, 640, 400, Rotate0)
	assert.ErrorIs(t, err, ErrResizeTransient)
	assert.False(t, s.Lost())
	assert.Equal(t, image.Point{}, s.RenderTargetSize())

	_, err = RenderFrame(s, p, Geometry{Device: s.device}, DefaultScene)
	assert.ErrorIs(t, err, ErrRenderTargetLost)
	assert.NotErrorIs(t, err, ErrNoRenderTarget)

	require.NoError(t, s.Resize(p, 640, 400, Rotate0))
	res, err := RenderFrame(s, p, Geometry{Device: s.device}, DefaultScene)
	require.NoError(t, err)
	assert.Equal(t, Presented, res)
}

func TestSurfaceResizeDeviceLost(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 320, 200, false)
	require.NoError(t, s.Resize(p, 320, 200, Rotate0))

	drv.Fault = soft.FailOn(soft.CallResizeBuffers, 1, gpu.DXGI_ERROR_DEVICE_RESET)
	err := s.Resize(p, 640, 400, Rotate0)
	assert.ErrorIs(t, err, ErrDeviceLost)
	assert.True(t, s.Lost())
	assert.Equal(t, image.Point{}, s.RenderTargetSize())

	drv.ResetCalls()
	assert.ErrorIs(t, s.Resize(p, 640, 400, Rotate0), ErrDeviceLost)
	res, err := s.Present()
	assert.NoError(t, err)
	assert.Equal(t, DeviceLost, res)
	assert.Empty(t, drv.Calls())
}

func TestSurfaceResizeInvalidRotation(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 32, 32, false)
	assert.Error(t, s.Resize(p, 32, 32, Rotation(7)))
}

func TestSurfacePresent(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 32, 32, true)
	require.NoError(t, s.Resize(p, 32, 32, Rotate0))

	res, err := s.Present()
	require.NoError(t, err)
	assert.Equal(t, Presented, res)

	drv.SetOccluded(true)
	res, err = s.Present()
	require.NoError(t, err)
	assert.Equal(t, Occluded, res)
	assert.False(t, s.Lost())
	drv.SetOccluded(false)

	// Success statuses other than occlusion still mean the frame was shown.
	for _, status := range []gpu.ErrorCode{gpu.DXGI_STATUS_MODE_CHANGED, gpu.DXGI_STATUS_MODE_CHANGE_IN_PROGRESS} {
		drv.Fault = soft.FailOn(soft.CallPresent, 1, status)
		res, err = s.Present()
		require.NoError(t, err, status.Error())
		assert.Equal(t, Presented, res)
	}

	drv.Fault = soft.FailOn(soft.CallPresent, 1, gpu.DXGI_ERROR_INVALID_CALL)
	_, err = s.Present()
	assert.ErrorIs(t, err, gpu.DXGI_ERROR_INVALID_CALL)
	assert.False(t, s.Lost())

	drv.Remove(gpu.DXGI_ERROR_DEVICE_REMOVED)
	res, err = s.Present()
	require.NoError(t, err)
	assert.Equal(t, DeviceLost, res)
	assert.True(t, s.Lost())
}

func TestSurfaceRefreshRate(t *testing.T) {
	var calls []soft.Call
	record := func(c soft.Call) error {
		calls = append(calls, c)
		return nil
	}

	drv := soft.New()
	drv.Fault = record
	s, err := NewSurface(drv, soft.NewWindow(64, 64), Config{VSync: false})
	require.NoError(t, err)
	assert.NotContains(t, calls, soft.CallEnumAdapters)
	assert.Equal(t, gpu.Rational{Numerator: 0, Denominator: 1}, s.SwapChain().(*soft.SwapChain).FullscreenDesc().RefreshRate)
	s.Release()

	calls = nil
	s, err = NewSurface(drv, soft.NewWindow(64, 64), Config{VSync: true})
	require.NoError(t, err)
	assert.Contains(t, calls, soft.CallEnumAdapters)
	assert.Contains(t, calls, soft.CallGetDisplayModeList)
	assert.Equal(t, gpu.Rational{Numerator: 60000, Denominator: 1000}, s.SwapChain().(*soft.SwapChain).FullscreenDesc().RefreshRate)
	s.Release()

	// A failing lookup only costs the native rate.
	drv.Fault = soft.FailOn(soft.CallGetDisplayModeList, 1, gpu.DXGI_ERROR_NOT_FOUND)
	s, err = NewSurface(drv, soft.NewWindow(64, 64), Config{VSync: true})
	require.NoError(t, err)
	assert.Equal(t, gpu.Rational{Numerator: 0, Denominator: 1}, s.SwapChain().(*soft.SwapChain).FullscreenDesc().RefreshRate)
	s.Release()

	assert.Zero(t, drv.LiveTotal())
}

func TestMatchRefreshRate(t *testing.T) {
	modes := []gpu.ModeDesc{
		{Width: 1280, Height: 720, RefreshRate: gpu.Rational{Numerator: 50, Denominator: 1}},
		{Width: 1920, Height: 1080, RefreshRate: gpu.Rational{Numerator: 59940, Denominator: 1000}},
		{Width: 1920, Height: 1080, RefreshRate: gpu.Rational{Numerator: 60, Denominator: 1}},
	}
	r, ok := matchRefreshRate(modes, image.Pt(1920, 1080))
	assert.True(t, ok)
	assert.Equal(t, gpu.Rational{Numerator: 59940, Denominator: 1000}, r)

	_, ok = matchRefreshRate(modes, image.Pt(800, 600))
	assert.False(t, ok)
}

func TestNewSurfaceUnwinds(t *testing.T) {
	for _, c := range []soft.Call{soft.CallCreateFactory, soft.CallCreateDevice, soft.CallCreateSwapChain} {
		t.Run(string(c), func(t *testing.T) {
			drv := soft.New()
			drv.Fault = soft.FailOn(c, 1, gpu.E_FAIL)

			s, err := NewSurface(drv, soft.NewWindow(64, 64), Config{VSync: true})
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrResourceCreation)
			assert.ErrorIs(t, err, gpu.E_FAIL)
			assert.Zero(t, drv.LiveTotal(), "%v", drv.Live())
			assert.Empty(t, drv.Violations())
		})
	}
}

func TestSurfaceReleaseOrder(t *testing.T) {
	drv := soft.New()
	s, p := newTestSurface(t, drv, 64, 64, false)
	require.NoError(t, s.Resize(p, 64, 64, Rotate0))
	p.Release()

	drv.ResetReleases()
	s.Release()
	assert.Equal(t, []soft.Kind{
		soft.KindRenderTargetView,
		soft.KindSwapChain,
		soft.KindContext,
		soft.KindDevice,
		soft.KindFactory,
	}, drv.Releases())
	assert.Zero(t, drv.LiveTotal())
	assert.Empty(t, drv.Violations())

	// Released handles are cleared.
	assert.NotPanics(t, s.Release)
	assert.Empty(t, drv.Violations())

	var nilSurface *Surface
	assert.NotPanics(t, nilSurface.Release)
}

func TestSurfaceNotInitialized(t *testing.T) {
	s := &Surface{}
	assert.ErrorIs(t, s.Resize(nil, 1, 1, Rotate0), ErrNotInitialized)
	_, err := s.Present()
	assert.ErrorIs(t, err, ErrNotInitialized)
}
