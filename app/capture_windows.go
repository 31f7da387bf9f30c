package app

import (
	"image"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"github.com/pkg/errors"

	"github.com/kirides/d3drot/internal/swizzle"
	kwin "github.com/kirides/d3drot/win"
)

// Capture copies what the desktop shows over the window's client area into
// img, which is reallocated when its size differs. Unlike a swap chain
// readback this includes whatever covers the window.
func (w *Window) Capture(img **image.RGBA) error {
	width, height, err := w.ClientSize()
	if err != nil {
		return err
	}
	var origin win.POINT
	if !win.ClientToScreen(w.hwnd, &origin) {
		return errors.New("ClientToScreen failed")
	}
	if *img == nil || (*img).Rect.Dx() != width || (*img).Rect.Dy() != height {
		*img = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	return CaptureScreen(*img, int(origin.X), int(origin.Y))
}

// CaptureScreen copies the screen rectangle at (x, y) with img's size into
// img through GDI.
func CaptureScreen(img *image.RGBA, x, y int) error {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	hWnd := win.HWND(kwin.GetDesktopWindow())
	hdc := win.GetDC(hWnd)
	if hdc == 0 {
		return errors.New("GetDC failed")
	}
	defer win.ReleaseDC(hWnd, hdc)

	memDC := win.CreateCompatibleDC(hdc)
	if memDC == 0 {
		return errors.New("CreateCompatibleDC failed")
	}
	defer win.DeleteDC(memDC)

	bitmap := win.CreateCompatibleBitmap(hdc, int32(width), int32(height))
	if bitmap == 0 {
		return errors.New("CreateCompatibleBitmap failed")
	}
	defer win.DeleteObject(win.HGDIOBJ(bitmap))

	old := win.SelectObject(memDC, win.HGDIOBJ(bitmap))
	if old == 0 {
		return errors.New("SelectObject failed")
	}
	defer win.SelectObject(memDC, old)

	if !win.BitBlt(memDC, 0, 0, int32(width), int32(height), hdc, int32(x), int32(y), win.SRCCOPY) {
		return errors.New("BitBlt failed")
	}

	var header kwin.BITMAPINFOHEADER
	header.BiSize = uint32(unsafe.Sizeof(header))
	header.BiPlanes = 1
	header.BiBitCount = 32
	header.BiWidth = int32(width)
	header.BiHeight = -int32(height) // top-down
	header.BiCompression = win.BI_RGB

	// GetDIBits balks at using Go memory on some systems.
	size := width * 4 * height
	heap, err := kwin.GetProcessHeap()
	if err != nil {
		return errors.Wrap(err, "GetProcessHeap")
	}
	mem, err := kwin.HeapAlloc(heap, 0, uintptr(size))
	if err != nil {
		return errors.Wrap(err, "HeapAlloc")
	}
	defer kwin.HeapFree(heap, 0, mem)

	bits := (*byte)(unsafe.Pointer(mem))
	if _, err := kwin.GetDIBits(syscall.Handle(hdc), syscall.Handle(bitmap), 0, uint32(height), bits, (*kwin.BITMAPINFO)(unsafe.Pointer(&header)), win.DIB_RGB_COLORS); err != nil {
		return errors.Wrap(err, "GetDIBits")
	}

	bgra := unsafe.Slice(bits, size)
	for row := 0; row < height; row++ {
		copy(img.Pix[row*img.Stride:row*img.Stride+width*4], bgra[row*width*4:(row+1)*width*4])
	}
	swizzle.BGRARows(img.Pix, width, img.Stride)
	// GDI leaves alpha undefined.
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return nil
}
