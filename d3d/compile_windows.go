package d3d

import (
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/kirides/d3drot/gpu"
)

// CompileShader runs D3DCompile on src. name shows up in diagnostics and
// resolves #include directives relative to it.
func (d *Driver) CompileShader(src []byte, name, entryPoint, target string, flags gpu.CompileFlag) ([]byte, error) {
	if len(src) == 0 {
		return nil, &gpu.CompileError{Entry: entryPoint, Target: target, Diagnostics: "empty source", Err: gpu.E_INVALIDARG}
	}
	cname, err := windows.BytePtrFromString(name)
	if err != nil {
		return nil, errors.Wrap(err, "D3DCompile")
	}
	centry, err := windows.BytePtrFromString(entryPoint)
	if err != nil {
		return nil, errors.Wrap(err, "D3DCompile")
	}
	ctarget, err := windows.BytePtrFromString(target)
	if err != nil {
		return nil, errors.Wrap(err, "D3DCompile")
	}

	var code, diag *ID3DBlob
	hr, _, _ := _D3DCompile.Call(
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(len(src)),
		uintptr(unsafe.Pointer(cname)),
		0, // no defines
		D3D_COMPILE_STANDARD_FILE_INCLUDE,
		uintptr(unsafe.Pointer(centry)),
		uintptr(unsafe.Pointer(ctarget)),
		uintptr(flags),
		0,
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&diag)),
	)
	var msg string
	if diag != nil {
		msg = strings.TrimRight(string(diag.Bytes()), "\x00\r\n")
		release(diag)
	}
	if failed(int32(hr)) {
		release(code)
		return nil, &gpu.CompileError{Entry: entryPoint, Target: target, Diagnostics: msg, Err: gpu.ErrorCode(uint32(hr))}
	}
	if msg != "" {
		d.log.Debug("shader compiled with warnings", "entry", entryPoint, "target", target, "output", msg)
	}
	bytecode := code.Bytes()
	release(code)
	return bytecode, nil
}
