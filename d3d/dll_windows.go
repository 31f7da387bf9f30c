package d3d

import "golang.org/x/sys/windows"

var (
	d3d11Dll = windows.NewLazySystemDLL("d3d11.dll")
	dxgiDll  = windows.NewLazySystemDLL("dxgi.dll")
	// d3dcompiler_47.dll ships with Windows 10 and later.
	d3dcompilerDll = windows.NewLazySystemDLL("d3dcompiler_47.dll")

	_D3D11CreateDevice  = d3d11Dll.NewProc("D3D11CreateDevice")
	_CreateDXGIFactory2 = dxgiDll.NewProc("CreateDXGIFactory2")
	_D3DCompile         = d3dcompilerDll.NewProc("D3DCompile")
)
