package d3d

import (
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/internal/logging"
)

// Driver creates DXGI factories, D3D11 hardware devices and compiles HLSL
// with d3dcompiler_47.dll.
type Driver struct {
	log *slog.Logger
}

// New returns a Driver that logs to log, which may be nil.
func New(log *slog.Logger) *Driver {
	return &Driver{log: logging.OrNop(log)}
}

// Load reports whether the runtime DLLs are present.
func Load() error {
	for _, p := range []interface{ Find() error }{_D3D11CreateDevice, _CreateDXGIFactory2, _D3DCompile} {
		if err := p.Find(); err != nil {
			return errors.Wrap(err, "load d3d runtime")
		}
	}
	return nil
}

func (d *Driver) CreateFactory(debug bool) (gpu.Factory, error) {
	var flags uint32
	if debug {
		flags = DXGI_CREATE_FACTORY_DEBUG
	}
	var factory *IDXGIFactory2
	hr, _, _ := _CreateDXGIFactory2.Call(
		uintptr(flags),
		uintptr(unsafe.Pointer(&iid_IDXGIFactory2)),
		uintptr(unsafe.Pointer(&factory)),
	)
	if err := check("CreateDXGIFactory2", int32(hr)); err != nil {
		return nil, err
	}
	return &Factory{com: factory, log: d.log}, nil
}

func (d *Driver) CreateDevice(flags gpu.DeviceFlag, levels []gpu.FeatureLevel) (gpu.Device, gpu.DeviceContext, error) {
	var (
		dev   *ID3D11Device
		ctx   *ID3D11DeviceContext
		level gpu.FeatureLevel
	)
	var pLevels uintptr
	if len(levels) > 0 {
		pLevels = uintptr(unsafe.Pointer(&levels[0]))
	}
	hr, _, _ := _D3D11CreateDevice.Call(
		0, // default adapter
		D3D_DRIVER_TYPE_HARDWARE,
		0, // no software rasterizer module
		uintptr(flags),
		pLevels,
		uintptr(len(levels)),
		D3D11_SDK_VERSION,
		uintptr(unsafe.Pointer(&dev)),
		uintptr(unsafe.Pointer(&level)),
		uintptr(unsafe.Pointer(&ctx)),
	)
	if err := check("D3D11CreateDevice", int32(hr)); err != nil {
		return nil, nil, err
	}
	d.log.Info("d3d11 device created", "feature_level", level.String(), "flags", uint32(flags))

	c := &Context{com: ctx}
	return &Device{com: dev, ctx: c, log: d.log}, c, nil
}

var (
	_ gpu.Driver        = (*Driver)(nil)
	_ gpu.Factory       = (*Factory)(nil)
	_ gpu.Adapter       = (*Adapter)(nil)
	_ gpu.Output        = (*Output)(nil)
	_ gpu.Device        = (*Device)(nil)
	_ gpu.DeviceContext = (*Context)(nil)
	_ gpu.SwapChain     = (*SwapChain)(nil)
	_ gpu.Readback      = (*SwapChain)(nil)
	_ gpu.Debug         = (*Debug)(nil)
)
