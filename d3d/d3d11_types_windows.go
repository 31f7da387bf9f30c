package d3d

import "unsafe"

const (
	D3D_DRIVER_TYPE_HARDWARE = 1
	D3D11_SDK_VERSION        = 7

	D3D11_USAGE_STAGING   = 3
	D3D11_CPU_ACCESS_READ = 0x20000

	D3D_COMPILE_STANDARD_FILE_INCLUDE = 1
)

type _D3D11_BUFFER_DESC struct {
	ByteWidth           uint32
	Usage               uint32
	BindFlags           uint32
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

type _D3D11_SUBRESOURCE_DATA struct {
	pSysMem          *byte
	SysMemPitch      uint32
	SysMemSlicePitch uint32
}

type _D3D11_TEXTURE2D_DESC struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleDesc     _DXGI_SAMPLE_DESC
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type _D3D11_RASTERIZER_DESC struct {
	FillMode              uint32
	CullMode              uint32
	FrontCounterClockwise uint32 // BOOL
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       uint32
	ScissorEnable         uint32
	MultisampleEnable     uint32
	AntialiasedLineEnable uint32
}

type _D3D11_INPUT_ELEMENT_DESC struct {
	SemanticName         *byte
	SemanticIndex        uint32
	Format               uint32
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       uint32
	InstanceDataStepRate uint32
}

type _D3D11_RENDER_TARGET_VIEW_DESC struct {
	Format        uint32
	ViewDimension uint32
	// Union of the per-dimension descriptions. For TEXTURE2D the first
	// word is MipSlice.
	union [3]uint32
}

type _D3D11_VIEWPORT struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type _D3D11_MAPPED_SUBRESOURCE struct {
	PData      unsafe.Pointer
	RowPitch   uint32
	DepthPitch uint32
}
