// Package gpu declares the slice of a Direct3D 11 / DXGI 1.2 device that the
// renderer drives. Package d3d implements it on top of the real runtime and
// package soft implements it in pure Go.
//
// All objects follow the single-threaded device model: a Device and its
// DeviceContext must only be used from the goroutine that created them.
package gpu

import "image"

// Driver creates the root objects of the pipeline.
type Driver interface {
	// CreateFactory creates the object that enumerates adapters and
	// creates swap chains.
	CreateFactory(debug bool) (Factory, error)
	// CreateDevice creates a device on the default hardware adapter and its
	// immediate context.
	CreateDevice(flags DeviceFlag, levels []FeatureLevel) (Device, DeviceContext, error)
	// CompileShader compiles HLSL source for entryPoint with the given
	// target profile. Failures are returned as *CompileError.
	CompileShader(src []byte, name, entryPoint, target string, flags CompileFlag) ([]byte, error)
}

type Factory interface {
	EnumAdapters(i uint32) (Adapter, error)
	CreateSwapChainForHwnd(dev Device, hwnd uintptr, desc SwapChainDesc, fs FullscreenDesc) (SwapChain, error)
	Release()
}

type Adapter interface {
	Desc() (AdapterDesc, error)
	EnumOutputs(i uint32) (Output, error)
	Release()
}

type Output interface {
	Desc() (OutputDesc, error)
	DisplayModes(format Format, flags EnumModeFlag) ([]ModeDesc, error)
	Release()
}

type Device interface {
	CreateBuffer(desc BufferDesc, data []byte) (Buffer, error)
	CreateRasterizerState(desc RasterizerDesc) (RasterizerState, error)
	CreateVertexShader(bytecode []byte) (VertexShader, error)
	CreatePixelShader(bytecode []byte) (PixelShader, error)
	CreateInputLayout(elems []InputElementDesc, bytecode []byte) (InputLayout, error)
	CreateRenderTargetView(tex Texture2D, desc RenderTargetViewDesc) (RenderTargetView, error)
	// Debug returns the debug interface of a device created with
	// DeviceFlagDebug. The returned object holds a reference on the device.
	Debug() (Debug, error)
	Release()
}

// DeviceContext is the immediate context. A nil view passed to
// OMSetRenderTargets unbinds the current render target.
type DeviceContext interface {
	Map(buf Buffer, typ MapType) ([]byte, error)
	Unmap(buf Buffer)
	OMSetRenderTargets(rtv RenderTargetView)
	RSSetViewports(vp Viewport)
	RSSetState(rs RasterizerState)
	ClearRenderTargetView(rtv RenderTargetView, color [4]float32)
	IASetPrimitiveTopology(t PrimitiveTopology)
	IASetInputLayout(l InputLayout)
	IASetVertexBuffers(buf Buffer, stride, offset uint32)
	IASetIndexBuffer(buf Buffer, format Format, offset uint32)
	VSSetShader(vs VertexShader)
	VSSetConstantBuffers(slot uint32, buf Buffer)
	PSSetShader(ps PixelShader)
	DrawIndexed(indexCount, startIndex uint32, baseVertex int32)
	Release()
}

type SwapChain interface {
	Desc() (SwapChainDesc, error)
	// ResizeBuffers keeps the buffer count when count is 0 and the format
	// when format is FormatUnknown.
	ResizeBuffers(count, width, height uint32, format Format, flags SwapChainFlag) error
	// Buffer returns back buffer i.
	Buffer(i uint32) (Texture2D, error)
	// Present returns nil, or an ErrorCode. DXGI_STATUS_OCCLUDED is a
	// status, not a failure.
	Present(syncInterval uint32, flags uint32) error
	SetFullscreenState(fullscreen bool) error
	Release()
}

// Readback is implemented by swap chains that can copy the most recently
// presented frame into system memory.
type Readback interface {
	ReadBackBuffer(dst *image.RGBA) error
}

type Debug interface {
	ReportLiveObjects(flags ReportFlag) error
	Release()
}

type Buffer interface {
	Desc() BufferDesc
	Release()
}

type Texture2D interface {
	Desc() Texture2DDesc
	Release()
}

type RenderTargetView interface{ Release() }

type RasterizerState interface{ Release() }

type VertexShader interface{ Release() }

type PixelShader interface{ Release() }

type InputLayout interface{ Release() }
