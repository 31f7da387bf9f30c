package d3d

import "unsafe"

type _DXGI_RATIONAL struct {
	Numerator   uint32
	Denominator uint32
}

type _DXGI_MODE_DESC struct {
	Width            uint32
	Height           uint32
	Rational         _DXGI_RATIONAL
	Format           uint32 // DXGI_FORMAT
	ScanlineOrdering uint32 // DXGI_MODE_SCANLINE_ORDER
	Scaling          uint32 // DXGI_MODE_SCALING
}

type _DXGI_SAMPLE_DESC struct {
	Count   uint32
	Quality uint32
}

type _DXGI_SWAP_CHAIN_DESC1 struct {
	Width       uint32
	Height      uint32
	Format      uint32 // DXGI_FORMAT
	Stereo      uint32 // BOOL
	SampleDesc  _DXGI_SAMPLE_DESC
	BufferUsage uint32
	BufferCount uint32
	Scaling     uint32 // DXGI_SCALING
	SwapEffect  uint32 // DXGI_SWAP_EFFECT
	AlphaMode   uint32 // DXGI_ALPHA_MODE
	Flags       uint32
}

type _DXGI_SWAP_CHAIN_FULLSCREEN_DESC struct {
	RefreshRate      _DXGI_RATIONAL
	ScanlineOrdering uint32
	Scaling          uint32
	Windowed         uint32 // BOOL
}

type _DXGI_PRESENT_PARAMETERS struct {
	DirtyRectsCount uint32
	pDirtyRects     *RECT
	pScrollRect     *RECT
	pScrollOffset   *POINT
}

type LUID struct {
	LowPart  uint32
	HighPart int32
}

type _DXGI_ADAPTER_DESC struct {
	Description           [128]uint16
	VendorId              uint32
	DeviceId              uint32
	SubSysId              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLuid           LUID
}

type _DXGI_OUTPUT_DESC struct {
	DeviceName         [32]uint16
	DesktopCoordinates RECT
	AttachedToDesktop  uint32 // BOOL
	Rotation           uint32 // DXGI_MODE_ROTATION
	Monitor            uintptr
}

type POINT struct {
	X int32
	Y int32
}

type RECT struct {
	Left, Top, Right, Bottom int32
}

type DXGI_MAPPED_RECT struct {
	Pitch int32
	PBits unsafe.Pointer
}

const (
	DXGI_CREATE_FACTORY_DEBUG = 0x1
	DXGI_MAP_READ             = 0x1
)
