package gpu

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ErrorCode is an HRESULT returned by the runtime.
type ErrorCode uint32

const (
	E_INVALIDARG                        ErrorCode = 0x80070057
	E_OUTOFMEMORY                       ErrorCode = 0x8007000E
	E_FAIL                              ErrorCode = 0x80004005
	E_NOINTERFACE                       ErrorCode = 0x80004002
	DXGI_STATUS_OCCLUDED                ErrorCode = 0x087A0001
	DXGI_STATUS_MODE_CHANGED            ErrorCode = 0x087A0007
	DXGI_STATUS_MODE_CHANGE_IN_PROGRESS ErrorCode = 0x087A0008
	DXGI_ERROR_INVALID_CALL             ErrorCode = 0x887A0001
	DXGI_ERROR_NOT_FOUND                ErrorCode = 0x887A0002
	DXGI_ERROR_UNSUPPORTED              ErrorCode = 0x887A0004
	DXGI_ERROR_DEVICE_REMOVED           ErrorCode = 0x887A0005
	DXGI_ERROR_DEVICE_HUNG              ErrorCode = 0x887A0006
	DXGI_ERROR_DEVICE_RESET             ErrorCode = 0x887A0007
	DXGI_ERROR_WAS_STILL_DRAWING        ErrorCode = 0x887A000A
	DXGI_ERROR_DRIVER_INTERNAL_ERROR    ErrorCode = 0x887A0020
	DXGI_ERROR_ACCESS_LOST              ErrorCode = 0x887A0026
	DXGI_ERROR_WAIT_TIMEOUT             ErrorCode = 0x887A0027
	D3DDDIERR_DEVICEREMOVED             ErrorCode = 0x88760870
)

func (e ErrorCode) Error() string {
	switch e {
	case E_INVALIDARG:
		return "E_INVALIDARG"
	case E_OUTOFMEMORY:
		return "E_OUTOFMEMORY"
	case E_FAIL:
		return "E_FAIL"
	case E_NOINTERFACE:
		return "E_NOINTERFACE"
	case DXGI_STATUS_OCCLUDED:
		return "DXGI_STATUS_OCCLUDED"
	case DXGI_STATUS_MODE_CHANGED:
		return "DXGI_STATUS_MODE_CHANGED"
	case DXGI_STATUS_MODE_CHANGE_IN_PROGRESS:
		return "DXGI_STATUS_MODE_CHANGE_IN_PROGRESS"
	case DXGI_ERROR_INVALID_CALL:
		return "DXGI_ERROR_INVALID_CALL"
	case DXGI_ERROR_NOT_FOUND:
		return "DXGI_ERROR_NOT_FOUND"
	case DXGI_ERROR_UNSUPPORTED:
		return "DXGI_ERROR_UNSUPPORTED"
	case DXGI_ERROR_DEVICE_REMOVED:
		return "DXGI_ERROR_DEVICE_REMOVED"
	case DXGI_ERROR_DEVICE_HUNG:
		return "DXGI_ERROR_DEVICE_HUNG"
	case DXGI_ERROR_DEVICE_RESET:
		return "DXGI_ERROR_DEVICE_RESET"
	case DXGI_ERROR_WAS_STILL_DRAWING:
		return "DXGI_ERROR_WAS_STILL_DRAWING"
	case DXGI_ERROR_DRIVER_INTERNAL_ERROR:
		return "DXGI_ERROR_DRIVER_INTERNAL_ERROR"
	case DXGI_ERROR_ACCESS_LOST:
		return "DXGI_ERROR_ACCESS_LOST"
	case DXGI_ERROR_WAIT_TIMEOUT:
		return "DXGI_ERROR_WAIT_TIMEOUT"
	case D3DDDIERR_DEVICEREMOVED:
		return "D3DDDIERR_DEVICEREMOVED"
	}

	return "0x" + strconv.FormatUint(uint64(e), 16)
}

// Failed reports whether the code is a failure HRESULT.
func (e ErrorCode) Failed() bool {
	return int32(e) < 0
}

// IsDeviceLost reports whether err carries one of the codes after which the
// device and every object created from it must be recreated.
func IsDeviceLost(err error) bool {
	var code ErrorCode
	if !errors.As(err, &code) {
		return false
	}
	switch code {
	case DXGI_ERROR_DEVICE_REMOVED, DXGI_ERROR_DEVICE_RESET,
		DXGI_ERROR_DRIVER_INTERNAL_ERROR, D3DDDIERR_DEVICEREMOVED:
		return true
	}
	return false
}

// IsStatus reports whether err carries a success HRESULT other than S_OK,
// such as a DXGI status code.
func IsStatus(err error) bool {
	var code ErrorCode
	return errors.As(err, &code) && code != 0 && !code.Failed()
}

// IsOccluded reports whether err is the occlusion status of Present.
func IsOccluded(err error) bool {
	var code ErrorCode
	return errors.As(err, &code) && code == DXGI_STATUS_OCCLUDED
}

// CompileError carries the diagnostics of a failed shader compilation.
type CompileError struct {
	Entry       string
	Target      string
	Diagnostics string
	Err         error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s (%s): %v: %s", e.Entry, e.Target, e.Err, e.Diagnostics)
}

func (e *CompileError) Unwrap() error { return e.Err }
