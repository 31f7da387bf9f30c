package d3d

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type IDXGIFactory2 struct {
	vtbl *iDXGIFactory2Vtbl
}

func (obj *IDXGIFactory2) EnumAdapters(i uint32, adapter **IDXGIAdapter) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.EnumAdapters, uintptr(unsafe.Pointer(obj)), uintptr(i), uintptr(unsafe.Pointer(adapter)))
	return int32(ret)
}

func (obj *IDXGIFactory2) CreateSwapChainForHwnd(device *IUnknown, hwnd uintptr, desc *_DXGI_SWAP_CHAIN_DESC1, fs *_DXGI_SWAP_CHAIN_FULLSCREEN_DESC, swapChain **IDXGISwapChain1) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreateSwapChainForHwnd,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(device)),
		hwnd,
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(fs)),
		0, // pRestrictToOutput
		uintptr(unsafe.Pointer(swapChain)),
	)
	return int32(ret)
}

type IDXGIAdapter struct {
	vtbl *iDXGIAdapterVtbl
}

func (obj *IDXGIAdapter) EnumOutputs(i uint32, output **IDXGIOutput) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.EnumOutputs, uintptr(unsafe.Pointer(obj)), uintptr(i), uintptr(unsafe.Pointer(output)))
	return int32(ret)
}

func (obj *IDXGIAdapter) GetDesc(desc *_DXGI_ADAPTER_DESC) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetDesc, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(desc)))
	return int32(ret)
}

type IDXGIOutput struct {
	vtbl *iDXGIOutputVtbl
}

func (obj *IDXGIOutput) GetDesc(desc *_DXGI_OUTPUT_DESC) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetDesc, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(desc)))
	return int32(ret)
}

// GetDisplayModeList reports the number of modes in num when modes is nil.
func (obj *IDXGIOutput) GetDisplayModeList(format, flags uint32, num *uint32, modes *_DXGI_MODE_DESC) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetDisplayModeList,
		uintptr(unsafe.Pointer(obj)),
		uintptr(format),
		uintptr(flags),
		uintptr(unsafe.Pointer(num)),
		uintptr(unsafe.Pointer(modes)),
	)
	return int32(ret)
}

type IDXGISurface struct {
	vtbl *iDXGISurfaceVtbl
}

func (obj *IDXGISurface) Map(rect *DXGI_MAPPED_RECT, flags uint32) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.Map, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(rect)), uintptr(flags))
	return int32(ret)
}

func (obj *IDXGISurface) Unmap() int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.Unmap, uintptr(unsafe.Pointer(obj)))
	return int32(ret)
}

type IDXGISwapChain1 struct {
	vtbl *iDXGISwapChain1Vtbl
}

func (obj *IDXGISwapChain1) GetBuffer(i uint32, iid *windows.GUID, surface unsafe.Pointer) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetBuffer, uintptr(unsafe.Pointer(obj)), uintptr(i), uintptr(unsafe.Pointer(iid)), uintptr(surface))
	return int32(ret)
}

func (obj *IDXGISwapChain1) SetFullscreenState(fullscreen uint32, target *IDXGIOutput) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.SetFullscreenState, uintptr(unsafe.Pointer(obj)), uintptr(fullscreen), uintptr(unsafe.Pointer(target)))
	return int32(ret)
}

func (obj *IDXGISwapChain1) ResizeBuffers(count, width, height, format, flags uint32) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.ResizeBuffers,
		uintptr(unsafe.Pointer(obj)),
		uintptr(count),
		uintptr(width),
		uintptr(height),
		uintptr(format),
		uintptr(flags),
	)
	return int32(ret)
}

func (obj *IDXGISwapChain1) GetDesc1(desc *_DXGI_SWAP_CHAIN_DESC1) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetDesc1, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(desc)))
	return int32(ret)
}

func (obj *IDXGISwapChain1) Present1(syncInterval, flags uint32, params *_DXGI_PRESENT_PARAMETERS) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.Present1, uintptr(unsafe.Pointer(obj)), uintptr(syncInterval), uintptr(flags), uintptr(unsafe.Pointer(params)))
	return int32(ret)
}

type ID3D11Device struct {
	vtbl *iD3D11DeviceVtbl
}

func (obj *ID3D11Device) CreateBuffer(desc *_D3D11_BUFFER_DESC, data *_D3D11_SUBRESOURCE_DATA, buffer **ID3D11Buffer) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreateBuffer, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(desc)), uintptr(unsafe.Pointer(data)), uintptr(unsafe.Pointer(buffer)))
	return int32(ret)
}

func (obj *ID3D11Device) CreateTexture2D(desc *_D3D11_TEXTURE2D_DESC, texture **ID3D11Texture2D) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreateTexture2D, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(desc)), 0, uintptr(unsafe.Pointer(texture)))
	return int32(ret)
}

func (obj *ID3D11Device) CreateRenderTargetView(resource *IUnknown, desc *_D3D11_RENDER_TARGET_VIEW_DESC, view **ID3D11RenderTargetView) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreateRenderTargetView, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(resource)), uintptr(unsafe.Pointer(desc)), uintptr(unsafe.Pointer(view)))
	return int32(ret)
}

func (obj *ID3D11Device) CreateInputLayout(elems []_D3D11_INPUT_ELEMENT_DESC, bytecode []byte, layout **ID3D11InputLayout) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreateInputLayout,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&elems[0])),
		uintptr(len(elems)),
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		uintptr(unsafe.Pointer(layout)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateVertexShader(bytecode []byte, shader **ID3D11VertexShader) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreateVertexShader, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(&bytecode[0])), uintptr(len(bytecode)), 0, uintptr(unsafe.Pointer(shader)))
	return int32(ret)
}

func (obj *ID3D11Device) CreatePixelShader(bytecode []byte, shader **ID3D11PixelShader) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreatePixelShader, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(&bytecode[0])), uintptr(len(bytecode)), 0, uintptr(unsafe.Pointer(shader)))
	return int32(ret)
}

func (obj *ID3D11Device) CreateRasterizerState(desc *_D3D11_RASTERIZER_DESC, state **ID3D11RasterizerState) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.CreateRasterizerState, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(desc)), uintptr(unsafe.Pointer(state)))
	return int32(ret)
}

func (obj *ID3D11Device) GetDeviceRemovedReason() int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetDeviceRemovedReason, uintptr(unsafe.Pointer(obj)))
	return int32(ret)
}

type ID3D11DeviceContext struct {
	vtbl *iD3D11DeviceContextVtbl
}

func (obj *ID3D11DeviceContext) Map(resource *IUnknown, subresource, mapType, flags uint32, mapped *_D3D11_MAPPED_SUBRESOURCE) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.Map,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(resource)),
		uintptr(subresource),
		uintptr(mapType),
		uintptr(flags),
		uintptr(unsafe.Pointer(mapped)),
	)
	return int32(ret)
}

func (obj *ID3D11DeviceContext) Unmap(resource *IUnknown, subresource uint32) {
	syscall.SyscallN(obj.vtbl.Unmap, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(resource)), uintptr(subresource))
}

// OMSetRenderTargets binds view, or unbinds every render target when view
// is nil.
func (obj *ID3D11DeviceContext) OMSetRenderTargets(view *ID3D11RenderTargetView) {
	if view == nil {
		syscall.SyscallN(obj.vtbl.OMSetRenderTargets, uintptr(unsafe.Pointer(obj)), 0, 0, 0)
		return
	}
	syscall.SyscallN(obj.vtbl.OMSetRenderTargets, uintptr(unsafe.Pointer(obj)), 1, uintptr(unsafe.Pointer(&view)), 0)
}

func (obj *ID3D11DeviceContext) RSSetViewports(vp *_D3D11_VIEWPORT) {
	syscall.SyscallN(obj.vtbl.RSSetViewports, uintptr(unsafe.Pointer(obj)), 1, uintptr(unsafe.Pointer(vp)))
}

func (obj *ID3D11DeviceContext) RSSetState(state *ID3D11RasterizerState) {
	syscall.SyscallN(obj.vtbl.RSSetState, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(state)))
}

func (obj *ID3D11DeviceContext) ClearRenderTargetView(view *ID3D11RenderTargetView, color *[4]float32) {
	syscall.SyscallN(obj.vtbl.ClearRenderTargetView, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(view)), uintptr(unsafe.Pointer(color)))
}

func (obj *ID3D11DeviceContext) IASetPrimitiveTopology(topology uint32) {
	syscall.SyscallN(obj.vtbl.IASetPrimitiveTopology, uintptr(unsafe.Pointer(obj)), uintptr(topology))
}

func (obj *ID3D11DeviceContext) IASetInputLayout(layout *ID3D11InputLayout) {
	syscall.SyscallN(obj.vtbl.IASetInputLayout, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(layout)))
}

func (obj *ID3D11DeviceContext) IASetVertexBuffers(buf *ID3D11Buffer, stride, offset uint32) {
	syscall.SyscallN(obj.vtbl.IASetVertexBuffers,
		uintptr(unsafe.Pointer(obj)),
		0, // StartSlot
		1,
		uintptr(unsafe.Pointer(&buf)),
		uintptr(unsafe.Pointer(&stride)),
		uintptr(unsafe.Pointer(&offset)),
	)
}

func (obj *ID3D11DeviceContext) IASetIndexBuffer(buf *ID3D11Buffer, format, offset uint32) {
	syscall.SyscallN(obj.vtbl.IASetIndexBuffer, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(buf)), uintptr(format), uintptr(offset))
}

func (obj *ID3D11DeviceContext) VSSetShader(shader *ID3D11VertexShader) {
	syscall.SyscallN(obj.vtbl.VSSetShader, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(shader)), 0, 0)
}

func (obj *ID3D11DeviceContext) VSSetConstantBuffers(slot uint32, buf *ID3D11Buffer) {
	syscall.SyscallN(obj.vtbl.VSSetConstantBuffers, uintptr(unsafe.Pointer(obj)), uintptr(slot), 1, uintptr(unsafe.Pointer(&buf)))
}

func (obj *ID3D11DeviceContext) PSSetShader(shader *ID3D11PixelShader) {
	syscall.SyscallN(obj.vtbl.PSSetShader, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(shader)), 0, 0)
}

func (obj *ID3D11DeviceContext) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	syscall.SyscallN(obj.vtbl.DrawIndexed, uintptr(unsafe.Pointer(obj)), uintptr(indexCount), uintptr(startIndex), uintptr(baseVertex))
}

func (obj *ID3D11DeviceContext) CopyResource(dst, src *IUnknown) {
	syscall.SyscallN(obj.vtbl.CopyResource, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(dst)), uintptr(unsafe.Pointer(src)))
}

type ID3D11Texture2D struct {
	vtbl *iD3D11Texture2DVtbl
}

func (obj *ID3D11Texture2D) GetDesc(desc *_D3D11_TEXTURE2D_DESC) {
	syscall.SyscallN(obj.vtbl.GetDesc, uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(desc)))
}

type ID3D11Debug struct {
	vtbl *iD3D11DebugVtbl
}

func (obj *ID3D11Debug) ReportLiveDeviceObjects(flags uint32) int32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.ReportLiveDeviceObjects, uintptr(unsafe.Pointer(obj)), uintptr(flags))
	return int32(ret)
}

type ID3DBlob struct {
	vtbl *iD3DBlobVtbl
}

// Bytes copies the blob's contents.
func (obj *ID3DBlob) Bytes() []byte {
	ptr, _, _ := syscall.SyscallN(obj.vtbl.GetBufferPointer, uintptr(unsafe.Pointer(obj)))
	size, _, _ := syscall.SyscallN(obj.vtbl.GetBufferSize, uintptr(unsafe.Pointer(obj)))
	if ptr == 0 || size == 0 {
		return nil
	}
	b := make([]byte, size)
	copy(b, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size))
	return b
}

// Child objects whose methods are never called beyond IUnknown.
type (
	ID3D11Buffer           struct{ vtbl *iD3D11DeviceChildVtbl }
	ID3D11RenderTargetView struct{ vtbl *iD3D11DeviceChildVtbl }
	ID3D11RasterizerState  struct{ vtbl *iD3D11DeviceChildVtbl }
	ID3D11VertexShader     struct{ vtbl *iD3D11DeviceChildVtbl }
	ID3D11PixelShader      struct{ vtbl *iD3D11DeviceChildVtbl }
	ID3D11InputLayout      struct{ vtbl *iD3D11DeviceChildVtbl }
)
