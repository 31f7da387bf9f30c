package render

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/internal/logging"
)

// Window is the native window a surface presents to.
type Window interface {
	Handle() uintptr
	ClientSize() (width, height int, err error)
}

// PresentResult is the outcome of presenting a frame.
type PresentResult int

const (
	// Presented: the frame reached the screen.
	Presented PresentResult = iota
	// Occluded: the window is not visible. Resources stay valid; the
	// caller should render less often.
	Occluded
	// DeviceLost: the device is gone. Rendering stops until the renderer
	// is shut down and created again.
	DeviceLost
)

func (r PresentResult) String() string {
	switch r {
	case Presented:
		return "presented"
	case Occluded:
		return "occluded"
	case DeviceLost:
		return "device lost"
	}
	return fmt.Sprintf("PresentResult(%d)", int(r))
}

var featureLevels = []gpu.FeatureLevel{
	gpu.FeatureLevel11_1,
	gpu.FeatureLevel11_0,
	gpu.FeatureLevel10_1,
	gpu.FeatureLevel10_0,
}

const (
	surfaceFormat      = gpu.FormatB8G8R8A8UNorm
	surfaceBufferCount = 2
)

// TransformWriter receives the rotation transform during Resize.
type TransformWriter interface {
	WriteRotation(ctx gpu.DeviceContext, t Transform) error
}

// Surface owns the device, its immediate context, the factory and the swap
// chain bound to one window, and the render target view over the current
// back buffer.
type Surface struct {
	log   *slog.Logger
	vsync bool

	factory   gpu.Factory
	device    gpu.Device
	ctx       gpu.DeviceContext
	swapChain gpu.SwapChain

	rtv      gpu.RenderTargetView
	rtvSize  image.Point
	viewport gpu.Viewport
	rotation Rotation
	lost     bool
	// restoreFailed is set when a failed resize left no render target
	// bound. The next successful resize clears it.
	restoreFailed bool
}

// NewSurface creates the factory, the device and a swap chain sized to the
// window's client area. On failure every object created so far is released
// in reverse order.
func NewSurface(drv gpu.Driver, win Window, cfg Config) (*Surface, error) {
	s := &Surface{log: logging.OrNop(cfg.Logger), vsync: cfg.VSync}

	var rel releaser
	if err := s.create(drv, win, cfg.Debug, &rel); err != nil {
		rel.unwind()
		return nil, err
	}
	rel.keep()
	return s, nil
}

func (s *Surface) create(drv gpu.Driver, win Window, debug bool, rel *releaser) error {
	factory, err := drv.CreateFactory(debug)
	if err != nil {
		return creationError("CreateDXGIFactory2", err)
	}
	s.factory = factory
	rel.push(func() { factory.Release(); s.factory = nil })

	// All calls come from the event loop thread.
	flags := gpu.DeviceFlagSingleThreaded | gpu.DeviceFlagBGRASupport
	if debug {
		flags |= gpu.DeviceFlagDebug
	}
	device, ctx, err := drv.CreateDevice(flags, featureLevels)
	if err != nil {
		return creationError("D3D11CreateDevice", err)
	}
	s.device, s.ctx = device, ctx
	rel.push(func() { device.Release(); s.device = nil })
	rel.push(func() { ctx.Release(); s.ctx = nil })

	width, height, err := win.ClientSize()
	if err != nil {
		return creationError("GetClientRect", err)
	}

	rate := s.refreshRate()
	desc := gpu.SwapChainDesc{
		Width:       uint32(width),
		Height:      uint32(height),
		Format:      surfaceFormat,
		SampleCount: 1,
		BufferUsage: gpu.UsageRenderTargetOutput,
		BufferCount: surfaceBufferCount,
		Scaling:     gpu.ScalingNone,
		SwapEffect:  gpu.SwapEffectFlipSequential,
		Flags:       gpu.SwapChainFlagAllowModeSwitch,
	}
	fs := gpu.FullscreenDesc{RefreshRate: rate, Windowed: true}
	swapChain, err := factory.CreateSwapChainForHwnd(device, win.Handle(), desc, fs)
	if err != nil {
		return creationError("CreateSwapChainForHwnd", err)
	}
	s.swapChain = swapChain
	rel.push(func() {
		swapChain.SetFullscreenState(false)
		swapChain.Release()
		s.swapChain = nil
	})

	s.log.Info("surface created",
		"width", width, "height", height,
		"vsync", s.vsync,
		"refresh", fmt.Sprintf("%d/%d", rate.Numerator, rate.Denominator))
	return nil
}

// refreshRate returns the refresh rate of the display mode matching the
// primary output's desktop size, or 0/1 when vsync is off or no mode
// matches. Failures here only cost the native rate.
func (s *Surface) refreshRate() gpu.Rational {
	rate := gpu.Rational{Numerator: 0, Denominator: 1}
	if !s.vsync {
		return rate
	}

	adapter, err := s.factory.EnumAdapters(0)
	if err != nil {
		s.log.Debug("EnumAdapters failed", "err", err)
		return rate
	}
	defer adapter.Release()

	output, err := adapter.EnumOutputs(0)
	if err != nil {
		s.log.Debug("EnumOutputs failed", "err", err)
		return rate
	}
	defer output.Release()

	modes, err := output.DisplayModes(surfaceFormat, gpu.EnumModesInterlaced)
	if err != nil {
		s.log.Debug("GetDisplayModeList failed", "err", err)
		return rate
	}
	s.log.Debug("display mode list", "modes", len(modes))

	desc, err := output.Desc()
	if err != nil {
		s.log.Debug("output GetDesc failed", "err", err)
		return rate
	}
	if r, ok := matchRefreshRate(modes, desc.DesktopCoordinates.Size()); ok {
		rate = r
	}

	if ad, err := adapter.Desc(); err == nil {
		s.log.Debug("adapter",
			"description", ad.Description,
			"video_mem_mb", ad.DedicatedVideoMemory/1024/1024)
	}
	return rate
}

// matchRefreshRate picks the first mode whose size equals the desktop size.
func matchRefreshRate(modes []gpu.ModeDesc, desktop image.Point) (gpu.Rational, bool) {
	for _, m := range modes {
		if int(m.Width) == desktop.X && int(m.Height) == desktop.Y {
			return m.RefreshRate, true
		}
	}
	return gpu.Rational{}, false
}

// Resize reconfigures the surface for a width×height client area at
// rotation rot. The transform is written first, then the render target is
// unbound and released, the back buffers resized, and a new render target
// view and viewport set. A device loss aborts the sequence; no further GPU
// calls are made until the surface is recreated.
//
// A zero width or height (a minimised window) only updates the transform.
func (s *Surface) Resize(tw TransformWriter, width, height int, rot Rotation) error {
	if s.swapChain == nil {
		return ErrNotInitialized
	}
	if s.lost {
		return newError(ErrDeviceLost, "Resize", nil)
	}
	if !rot.Valid() {
		return errors.Errorf("resize: invalid rotation %d", int(rot))
	}

	s.log.Debug("resize", "width", width, "height", height, "rotation", rot.String())

	if err := tw.WriteRotation(s.ctx, RotationTransform(rot)); err != nil {
		return s.fail("WriteRotation", err)
	}
	s.rotation = rot

	if width <= 0 || height <= 0 {
		return nil
	}

	s.ctx.OMSetRenderTargets(nil)
	s.releaseRenderTarget()

	err := s.swapChain.ResizeBuffers(0, uint32(width), uint32(height), gpu.FormatUnknown, 0)
	if err != nil {
		if gpu.IsDeviceLost(err) {
			return s.fail("ResizeBuffers", err)
		}
		s.log.Warn("ResizeBuffers failed", "width", width, "height", height, "err", err)
		if rerr := s.restoreRenderTarget(); rerr != nil {
			if s.lost {
				return rerr
			}
			s.restoreFailed = true
			s.log.Warn("restoring render target failed", "err", rerr)
		}
		return newError(ErrResizeTransient, "ResizeBuffers", err)
	}

	if err := s.bindBackBuffer(width, height); err != nil {
		s.restoreFailed = !s.lost
		return err
	}
	return nil
}

// restoreRenderTarget rebinds the back buffer the swap chain kept after a
// failed resize.
func (s *Surface) restoreRenderTarget() error {
	desc, err := s.swapChain.Desc()
	if err != nil {
		return s.fail("GetDesc1", err)
	}
	return s.bindBackBuffer(int(desc.Width), int(desc.Height))
}

func (s *Surface) bindBackBuffer(width, height int) error {
	tex, err := s.swapChain.Buffer(0)
	if err != nil {
		return s.fail("GetBuffer", err)
	}
	defer tex.Release()

	rtv, err := s.device.CreateRenderTargetView(tex, gpu.RenderTargetViewDesc{
		Format:        surfaceFormat,
		ViewDimension: gpu.RTVDimensionTexture2D,
	})
	if err != nil {
		return s.fail("CreateRenderTargetView", err)
	}
	d := tex.Desc()
	s.rtv = rtv
	s.rtvSize = image.Pt(int(d.Width), int(d.Height))
	s.ctx.OMSetRenderTargets(rtv)

	s.viewport = gpu.Viewport{
		Width:    float32(width),
		Height:   float32(height),
		MinDepth: 0,
		MaxDepth: 1,
	}
	s.ctx.RSSetViewports(s.viewport)
	s.restoreFailed = false
	return nil
}

func (s *Surface) releaseRenderTarget() {
	if s.rtv != nil {
		s.rtv.Release()
		s.rtv = nil
		s.rtvSize = image.Point{}
	}
}

// fail classifies err: device loss marks the surface lost, anything else is
// a transient resize failure.
func (s *Surface) fail(op string, err error) error {
	if gpu.IsDeviceLost(err) {
		s.lost = true
		s.log.Warn("device removed or lost, need to recreate everything", "op", op, "err", err)
		return newError(ErrDeviceLost, op, err)
	}
	return newError(ErrResizeTransient, op, err)
}

// Size returns the current back buffer size as reported by the swap chain.
func (s *Surface) Size() (width, height int, err error) {
	desc, err := s.swapChain.Desc()
	if err != nil {
		return 0, 0, err
	}
	return int(desc.Width), int(desc.Height), nil
}

// Present flips the back and front buffers, waiting for the vertical blank
// when vsync is on. Once DeviceLost was returned every later call returns
// it again without touching the device. When err is non-nil the result is
// meaningless.
func (s *Surface) Present() (PresentResult, error) {
	if s.swapChain == nil {
		return Presented, ErrNotInitialized
	}
	if s.lost {
		return DeviceLost, nil
	}

	var interval uint32
	if s.vsync {
		interval = 1
	}
	err := s.swapChain.Present(interval, 0)
	switch {
	case err == nil:
		return Presented, nil
	case gpu.IsOccluded(err):
		s.log.Debug("window is not visible, vsync is off until it is")
		return Occluded, nil
	case gpu.IsDeviceLost(err):
		s.lost = true
		s.log.Warn("device removed or lost, need to recreate everything", "err", err)
		return DeviceLost, nil
	case gpu.IsStatus(err):
		s.log.Debug("present status", "status", err)
		return Presented, nil
	}
	return Presented, errors.Wrap(err, "present")
}

// Lost reports whether the device was lost.
func (s *Surface) Lost() bool { return s.lost }

// Viewport returns the viewport set by the last completed resize.
func (s *Surface) Viewport() gpu.Viewport { return s.viewport }

// RenderTargetSize returns the size of the back buffer the render target
// view refers to, or the zero point when there is none.
func (s *Surface) RenderTargetSize() image.Point { return s.rtvSize }

// Rotation returns the rotation last written to the transform.
func (s *Surface) Rotation() Rotation { return s.rotation }

// SwapChain exposes the swap chain, for readback.
func (s *Surface) SwapChain() gpu.SwapChain { return s.swapChain }

// Release leaves fullscreen and releases the render target view, swap
// chain, context, device and factory in that order. Released handles are
// cleared, so Release is safe on a partial or already released surface.
func (s *Surface) Release() {
	if s == nil {
		return
	}
	if s.swapChain != nil {
		if err := s.swapChain.SetFullscreenState(false); err != nil {
			s.log.Debug("SetFullscreenState(false) failed", "err", err)
		}
	}
	s.releaseRenderTarget()
	if s.swapChain != nil {
		s.swapChain.Release()
		s.swapChain = nil
	}
	if s.ctx != nil {
		s.ctx.Release()
		s.ctx = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.factory != nil {
		s.factory.Release()
		s.factory = nil
	}
}
