// Package win declares the Win32 entry points the program needs that
// github.com/lxn/win does not provide.
package win

//go:generate mkwinsyscall -output zsyscall_windows.go syscall_windows.go

type (
	BOOL  uint32
	DWORD uint32
	HWND  uintptr
)

type RECT struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type BITMAPINFOHEADER struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type RGBQUAD struct {
	RgbBlue     byte
	RgbGreen    byte
	RgbRed      byte
	RgbReserved byte
}

type BITMAPINFO struct {
	BmiHeader BITMAPINFOHEADER
	BmiColors *RGBQUAD
}

//sys	GetDesktopWindow() (h HWND) = User32.GetDesktopWindow
//sys	GetDIBits(hdc syscall.Handle, hbmp syscall.Handle, uStartScan uint32, cScanLines uint32, lpvBits *byte, lpbi *BITMAPINFO, uUsage uint32) (v int32, err error) = Gdi32.GetDIBits
//sys	AdjustWindowRectEx(rect *RECT, style uint32, menu bool, exStyle uint32) (err error) = User32.AdjustWindowRectEx
//sys	UnregisterClass(className *uint16, instance syscall.Handle) (err error) = User32.UnregisterClassW

//sys	GetProcessHeap() (hHeap syscall.Handle, err error) = Kernel32.GetProcessHeap
//sys	HeapAlloc(hHeap syscall.Handle, dwFlags uint32, dwSize uintptr) (lpMem uintptr, err error) = Kernel32.HeapAlloc
//sys	HeapFree(hHeap syscall.Handle, dwFlags uint32, lpMem uintptr) (err error) = Kernel32.HeapFree

const (
	DpiAwarenessContextUndefined         = 0
	DpiAwarenessContextUnaware           = -1
	DpiAwarenessContextSystemAware       = -2
	DpiAwarenessContextPerMonitorAware   = -3
	DpiAwarenessContextPerMonitorAwareV2 = -4
	DpiAwarenessContextUnawareGdiScaled  = -5
)

//sys	SetProcessDpiAwarenessContext(value int32) (err error) = User32.SetProcessDpiAwarenessContext
//sys	SetThreadDpiAwarenessContext(value int32) (n int, err error) = User32.SetThreadDpiAwarenessContext
//sys	IsValidDpiAwarenessContext(value int32) (n bool) = User32.IsValidDpiAwarenessContext
