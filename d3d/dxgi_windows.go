package d3d

import (
	"image"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/kirides/d3drot/gpu"
)

type Factory struct {
	com *IDXGIFactory2
	log *slog.Logger
}

func (f *Factory) EnumAdapters(i uint32) (gpu.Adapter, error) {
	var adapter *IDXGIAdapter
	if err := check("EnumAdapters", f.com.EnumAdapters(i, &adapter)); err != nil {
		return nil, err
	}
	return &Adapter{com: adapter}, nil
}

func (f *Factory) CreateSwapChainForHwnd(dev gpu.Device, hwnd uintptr, desc gpu.SwapChainDesc, fs gpu.FullscreenDesc) (gpu.SwapChain, error) {
	d, ok := dev.(*Device)
	if !ok || d.com == nil {
		return nil, errors.Wrap(gpu.E_INVALIDARG, "CreateSwapChainForHwnd: not a d3d device")
	}
	cdesc := _DXGI_SWAP_CHAIN_DESC1{
		Width:       desc.Width,
		Height:      desc.Height,
		Format:      uint32(desc.Format),
		Stereo:      boolToBOOL(desc.Stereo),
		SampleDesc:  _DXGI_SAMPLE_DESC{Count: desc.SampleCount, Quality: desc.SampleQuality},
		BufferUsage: desc.BufferUsage,
		BufferCount: desc.BufferCount,
		Scaling:     uint32(desc.Scaling),
		SwapEffect:  uint32(desc.SwapEffect),
		AlphaMode:   desc.AlphaMode,
		Flags:       uint32(desc.Flags),
	}
	cfs := _DXGI_SWAP_CHAIN_FULLSCREEN_DESC{
		RefreshRate:      _DXGI_RATIONAL{Numerator: fs.RefreshRate.Numerator, Denominator: fs.RefreshRate.Denominator},
		ScanlineOrdering: fs.ScanlineOrdering,
		Scaling:          fs.Scaling,
		Windowed:         boolToBOOL(fs.Windowed),
	}
	var sc *IDXGISwapChain1
	hr := f.com.CreateSwapChainForHwnd(unknown(d.com), hwnd, &cdesc, &cfs, &sc)
	if err := check("CreateSwapChainForHwnd", hr); err != nil {
		return nil, err
	}
	return &SwapChain{com: sc, dev: d, log: f.log}, nil
}

func (f *Factory) Release() {
	release(f.com)
	f.com = nil
}

type Adapter struct {
	com *IDXGIAdapter
}

func (a *Adapter) Desc() (gpu.AdapterDesc, error) {
	var desc _DXGI_ADAPTER_DESC
	if err := check("IDXGIAdapter.GetDesc", a.com.GetDesc(&desc)); err != nil {
		return gpu.AdapterDesc{}, err
	}
	return gpu.AdapterDesc{
		Description:          windows.UTF16ToString(desc.Description[:]),
		VendorID:             desc.VendorId,
		DeviceID:             desc.DeviceId,
		DedicatedVideoMemory: uint64(desc.DedicatedVideoMemory),
	}, nil
}

func (a *Adapter) EnumOutputs(i uint32) (gpu.Output, error) {
	var output *IDXGIOutput
	if err := check("EnumOutputs", a.com.EnumOutputs(i, &output)); err != nil {
		return nil, err
	}
	return &Output{com: output}, nil
}

func (a *Adapter) Release() {
	release(a.com)
	a.com = nil
}

type Output struct {
	com *IDXGIOutput
}

func (o *Output) Desc() (gpu.OutputDesc, error) {
	var desc _DXGI_OUTPUT_DESC
	if err := check("IDXGIOutput.GetDesc", o.com.GetDesc(&desc)); err != nil {
		return gpu.OutputDesc{}, err
	}
	r := desc.DesktopCoordinates
	return gpu.OutputDesc{
		DeviceName:         windows.UTF16ToString(desc.DeviceName[:]),
		DesktopCoordinates: image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)),
		AttachedToDesktop:  desc.AttachedToDesktop != 0,
	}, nil
}

// DisplayModes asks for the mode count first, then for the modes.
func (o *Output) DisplayModes(format gpu.Format, flags gpu.EnumModeFlag) ([]gpu.ModeDesc, error) {
	var num uint32
	hr := o.com.GetDisplayModeList(uint32(format), uint32(flags), &num, nil)
	if err := check("GetDisplayModeList", hr); err != nil {
		return nil, err
	}
	if num == 0 {
		return nil, errors.Wrap(gpu.DXGI_ERROR_NOT_FOUND, "GetDisplayModeList")
	}
	modes := make([]_DXGI_MODE_DESC, num)
	hr = o.com.GetDisplayModeList(uint32(format), uint32(flags), &num, &modes[0])
	if err := check("GetDisplayModeList", hr); err != nil {
		return nil, err
	}

	out := make([]gpu.ModeDesc, 0, num)
	for _, m := range modes[:num] {
		out = append(out, gpu.ModeDesc{
			Width:            m.Width,
			Height:           m.Height,
			RefreshRate:      gpu.Rational{Numerator: m.Rational.Numerator, Denominator: m.Rational.Denominator},
			Format:           gpu.Format(m.Format),
			ScanlineOrdering: m.ScanlineOrdering,
			Scaling:          m.Scaling,
		})
	}
	return out, nil
}

func (o *Output) Release() {
	release(o.com)
	o.com = nil
}
