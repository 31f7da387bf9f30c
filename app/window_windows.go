package app

import (
	"context"
	"image"
	"log/slog"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/kirides/d3drot/internal/logging"
	"github.com/kirides/d3drot/render"
	kwin "github.com/kirides/d3drot/win"
)

const (
	className = "D3DROT"
	idcArrow  = 32512

	windowedStyle   = win.WS_OVERLAPPEDWINDOW | win.WS_SIZEBOX
	fullscreenStyle = win.WS_VISIBLE | win.WS_POPUP

	// How long to wait before painting again while nothing is visible.
	occludedDelay = 100 * time.Millisecond
)

// Renderer is what the window drives from its message handlers.
type Renderer interface {
	Resize(width, height int, rot render.Rotation) error
	RenderFrame() (render.PresentResult, error)
}

type Config struct {
	Title string
	// Bounds is the client area in screen coordinates.
	Bounds   image.Rectangle
	Rotation render.Rotation
	Logger   *slog.Logger
}

// Window is a top-level Win32 window. All methods must be called from the
// thread that created it.
type Window struct {
	log      *slog.Logger
	hwnd     win.HWND
	instance win.HINSTANCE
	class    *uint16

	renderer   Renderer
	rotation   render.Rotation
	fullscreen bool
	saved      win.RECT // window rect before going fullscreen
	occluded   bool
	err        error
}

// NewWindow registers the window class and creates a hidden window whose
// client area covers cfg.Bounds. The window procedure is a method value
// bound to the returned Window.
func NewWindow(cfg Config) (*Window, error) {
	w := &Window{log: logging.OrNop(cfg.Logger), rotation: cfg.Rotation}

	// Remove scaling on HiDPI.
	if err := kwin.EnableDpiAwareness(kwin.DpiAwarenessContextSystemAware); err != nil {
		w.log.Debug("process DPI awareness unavailable", "err", err)
		if err := kwin.EnableThreadDpiAwareness(kwin.DpiAwarenessContextPerMonitorAwareV2); err != nil {
			w.log.Debug("thread DPI awareness unavailable", "err", err)
		}
	}

	w.instance = win.GetModuleHandle(nil)
	w.class = windows.StringToUTF16Ptr(className)
	wc := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   windows.NewCallback(w.wndProc),
		HInstance:     w.instance,
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(idcArrow)),
		LpszClassName: w.class,
	}
	if win.RegisterClassEx(&wc) == 0 {
		return nil, lastError("RegisterClassEx")
	}

	r := kwin.RECT{
		Left:   int32(cfg.Bounds.Min.X),
		Top:    int32(cfg.Bounds.Min.Y),
		Right:  int32(cfg.Bounds.Max.X),
		Bottom: int32(cfg.Bounds.Max.Y),
	}
	if err := kwin.AdjustWindowRectEx(&r, windowedStyle, false, 0); err != nil {
		w.unregister()
		return nil, errors.Wrap(err, "AdjustWindowRectEx")
	}

	title := cfg.Title
	if title == "" {
		title = "d3drot"
	}
	w.hwnd = win.CreateWindowEx(0,
		w.class,
		windows.StringToUTF16Ptr(title),
		windowedStyle,
		r.Left, r.Top, r.Right-r.Left, r.Bottom-r.Top,
		0, 0, w.instance, nil)
	if w.hwnd == 0 {
		err := lastError("CreateWindowEx")
		w.unregister()
		return nil, err
	}
	w.log.Debug("window created", "bounds", cfg.Bounds.String())
	return w, nil
}

// Handle returns the HWND.
func (w *Window) Handle() uintptr { return uintptr(w.hwnd) }

// ClientSize returns the size of the client area.
func (w *Window) ClientSize() (int, int, error) {
	var r win.RECT
	if !win.GetClientRect(w.hwnd, &r) {
		return 0, 0, lastError("GetClientRect")
	}
	return int(r.Right - r.Left), int(r.Bottom - r.Top), nil
}

// Rotation returns the current rotation.
func (w *Window) Rotation() render.Rotation { return w.rotation }

// SetRenderer attaches r, sizes it to the client area and schedules a
// paint. A nil r detaches the current renderer.
func (w *Window) SetRenderer(r Renderer) {
	w.renderer = r
	if r == nil {
		return
	}
	w.refresh()
}

// Show makes the window visible.
func (w *Window) Show() {
	win.ShowWindow(w.hwnd, win.SW_SHOWNORMAL)
}

// Run pumps messages until the window is closed, ctx is done or the device
// is lost. Only a lost device is reported, as an error matching
// render.ErrDeviceLost; the caller may attach a new renderer and call Run
// again.
func (w *Window) Run(ctx context.Context) error {
	w.err = nil
	stop := context.AfterFunc(ctx, func() {
		win.PostMessage(w.hwnd, win.WM_CLOSE, 0, 0)
	})
	defer stop()

	var msg win.MSG
	for {
		switch win.GetMessage(&msg, 0, 0, 0) {
		case 0: // WM_QUIT
			return w.err
		case -1:
			return lastError("GetMessage")
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)

		if w.occluded {
			w.occluded = false
			time.Sleep(occludedDelay)
			win.InvalidateRect(w.hwnd, nil, false)
		}
	}
}

// Close destroys the window and unregisters its class.
func (w *Window) Close() {
	if w.hwnd != 0 {
		win.DestroyWindow(w.hwnd)
		w.hwnd = 0
	}
	w.unregister()
}

func (w *Window) unregister() {
	if w.class != nil {
		kwin.UnregisterClass(w.class, syscall.Handle(w.instance))
		w.class = nil
	}
}

func (w *Window) wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_CLOSE:
		win.PostQuitMessage(0)
		return 0
	case win.WM_KEYUP:
		w.handle(KeyAction(wParam))
		return 0
	case win.WM_ERASEBKGND:
		// The whole client area is drawn by the swap chain.
		return 1
	case win.WM_SIZE:
		w.resize(int(win.LOWORD(uint32(lParam))), int(win.HIWORD(uint32(lParam))))
		return 0
	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		win.BeginPaint(hwnd, &ps)
		w.paint()
		win.EndPaint(hwnd, &ps)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (w *Window) handle(a Action) {
	if a == ActionNone {
		return
	}
	w.log.Debug("key", "action", a.String())
	switch a {
	case ActionQuit:
		win.PostQuitMessage(0)
	case ActionToggleFullscreen:
		if err := w.setFullscreen(!w.fullscreen); err != nil {
			w.log.Warn("fullscreen toggle failed", "err", err)
		}
	case ActionRotate:
		if err := w.setRotation(w.rotation.Next()); err != nil {
			w.log.Warn("rotation failed", "err", err)
		}
	case ActionRefresh:
		w.refresh()
		w.paint()
	}
}

func (w *Window) refresh() {
	width, height, err := w.ClientSize()
	if err != nil {
		w.log.Warn("client size unavailable", "err", err)
		return
	}
	w.resize(width, height)
	win.InvalidateRect(w.hwnd, nil, false)
}

func (w *Window) resize(width, height int) {
	if w.renderer == nil {
		return
	}
	err := w.renderer.Resize(width, height, w.rotation)
	switch {
	case err == nil:
	case errors.Is(err, render.ErrDeviceLost):
		w.lost(err)
	case errors.Is(err, render.ErrResizeTransient):
		w.log.Warn("resize failed, keeping the previous size", "err", err)
	default:
		w.log.Error("resize failed", "err", err)
	}
}

func (w *Window) paint() {
	if w.renderer == nil {
		return
	}
	res, err := w.renderer.RenderFrame()
	if err != nil {
		switch {
		case errors.Is(err, render.ErrNoRenderTarget):
			w.log.Debug("paint before the first resize")
			return
		case errors.Is(err, render.ErrRenderTargetLost):
			w.log.Warn("no render target after a failed resize, waiting for the next one", "err", err)
			return
		}
		w.log.Error("render failed", "err", err)
		return
	}
	switch res {
	case render.Occluded:
		w.occluded = true
	case render.DeviceLost:
		w.lost(render.ErrDeviceLost)
	}
}

// lost detaches the renderer and ends Run with err.
func (w *Window) lost(err error) {
	if w.err == nil {
		w.err = err
	}
	w.renderer = nil
	win.PostQuitMessage(0)
}

// setRotation stores rot and, for a quarter turn of a windowed window,
// resizes the window so the client area swaps its sides. The resulting
// WM_SIZE resizes the renderer; otherwise it is resized here.
func (w *Window) setRotation(rot render.Rotation) error {
	prev := w.rotation
	w.rotation = rot

	width, height, err := w.ClientSize()
	if err != nil {
		return err
	}
	nw, nh := RotatedClientSize(width, height, prev, rot)
	if w.fullscreen || (nw == width && nh == height) {
		w.refresh()
		return nil
	}

	var wr win.RECT
	if !win.GetWindowRect(w.hwnd, &wr) {
		return lastError("GetWindowRect")
	}
	r := kwin.RECT{Right: int32(nw), Bottom: int32(nh)}
	if err := kwin.AdjustWindowRectEx(&r, windowedStyle, false, 0); err != nil {
		return errors.Wrap(err, "AdjustWindowRectEx")
	}
	if !win.SetWindowPos(w.hwnd, 0, wr.Left, wr.Top, r.Right-r.Left, r.Bottom-r.Top, win.SWP_NOZORDER|win.SWP_NOACTIVATE) {
		return lastError("SetWindowPos")
	}
	return nil
}

// setFullscreen switches between a topmost popup covering the nearest
// monitor and the saved windowed placement.
func (w *Window) setFullscreen(on bool) error {
	if on == w.fullscreen {
		return nil
	}

	var (
		style, exStyle uint32
		after          win.HWND
		r              win.RECT
	)
	if on {
		if !win.GetWindowRect(w.hwnd, &w.saved) {
			return lastError("GetWindowRect")
		}
		mi := win.MONITORINFO{CbSize: uint32(unsafe.Sizeof(win.MONITORINFO{}))}
		if !win.GetMonitorInfo(win.MonitorFromWindow(w.hwnd, win.MONITOR_DEFAULTTONEAREST), &mi) {
			return lastError("GetMonitorInfo")
		}
		style, exStyle, after, r = fullscreenStyle, win.WS_EX_TOPMOST, win.HWND_TOPMOST, mi.RcMonitor
	} else {
		style, exStyle, after, r = windowedStyle|win.WS_VISIBLE, 0, win.HWND_NOTOPMOST, w.saved
	}

	win.SetWindowLong(w.hwnd, win.GWL_STYLE, int32(style))
	win.SetWindowLong(w.hwnd, win.GWL_EXSTYLE, int32(exStyle))
	flags := uint32(win.SWP_NOCOPYBITS | win.SWP_SHOWWINDOW | win.SWP_FRAMECHANGED)
	if !win.SetWindowPos(w.hwnd, after, r.Left, r.Top, r.Right-r.Left, r.Bottom-r.Top, flags) {
		return lastError("SetWindowPos")
	}
	w.fullscreen = on
	w.log.Info("fullscreen", "on", on)
	return nil
}

// lastError wraps the calling thread's last error, which lxn/win drops.
func lastError(op string) error {
	if err := windows.GetLastError(); err != nil {
		return errors.Wrap(err, op)
	}
	return errors.New(op + " failed")
}
