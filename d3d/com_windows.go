package d3d

import (
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/kirides/d3drot/gpu"
)

type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

// IUnknown is the layout every COM object starts with. Objects whose own
// methods are never called are kept as *IUnknown.
type IUnknown struct {
	vtbl *iUnknownVtbl
}

func (obj *IUnknown) QueryInterface(iid *windows.GUID, pp unsafe.Pointer) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.QueryInterface, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(iid)), uintptr(pp))
	return int32(ret)
}

func (obj *IUnknown) Release() int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.Release, uintptr(unsafe.Pointer(obj)))
	return int32(ret)
}

// unknown reinterprets any COM object pointer as its IUnknown.
func unknown[T any](obj *T) *IUnknown {
	return (*IUnknown)(unsafe.Pointer(obj))
}

func release[T any](obj *T) {
	if obj != nil {
		unknown(obj).Release()
	}
}

func failed(hr int32) bool {
	return hr < 0
}

// check wraps a failing HRESULT with the name of the call.
func check(op string, hr int32) error {
	if !failed(hr) {
		return nil
	}
	return errors.Wrap(gpu.ErrorCode(uint32(hr)), op)
}

func boolToBOOL(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

var (
	iid_IDXGIFactory2   = windows.GUID{Data1: 0x50c83a1c, Data2: 0xe072, Data3: 0x4c48, Data4: [8]byte{0x87, 0xb0, 0x36, 0x30, 0xfa, 0x36, 0xa6, 0xd0}}
	iid_IDXGISurface    = windows.GUID{Data1: 0xcafcb56c, Data2: 0x6ac3, Data3: 0x4889, Data4: [8]byte{0xbf, 0x47, 0x9e, 0x23, 0xbb, 0xd2, 0x60, 0xec}}
	iid_ID3D11Texture2D = windows.GUID{Data1: 0x6f15aaf2, Data2: 0xd208, Data3: 0x4e89, Data4: [8]byte{0x9a, 0xb4, 0x48, 0x95, 0x35, 0xd3, 0x4f, 0x9c}}
	iid_ID3D11Debug     = windows.GUID{Data1: 0x79cf2233, Data2: 0x7536, Data3: 0x4948, Data4: [8]byte{0x9d, 0x36, 0x1e, 0x46, 0x92, 0xdc, 0x57, 0x60}}
)
