package gpu

import (
	"fmt"
	"image"
)

// Format is a DXGI_FORMAT.
type Format uint32

const (
	FormatUnknown       Format = 0
	FormatR32G32Float   Format = 16
	FormatR8G8B8A8UNorm Format = 28
	FormatR32UInt       Format = 42
	FormatB8G8R8A8UNorm Format = 87
)

type DeviceFlag uint32

const (
	DeviceFlagSingleThreaded DeviceFlag = 0x1
	DeviceFlagDebug          DeviceFlag = 0x2
	DeviceFlagBGRASupport    DeviceFlag = 0x20
)

type FeatureLevel uint32

const (
	FeatureLevel10_0 FeatureLevel = 0xa000
	FeatureLevel10_1 FeatureLevel = 0xa100
	FeatureLevel11_0 FeatureLevel = 0xb000
	FeatureLevel11_1 FeatureLevel = 0xb100
)

func (l FeatureLevel) String() string {
	return fmt.Sprintf("%d_%d", uint32(l)>>12, (uint32(l)>>8)&0xf)
}

type CompileFlag uint32

const (
	CompileDebug            CompileFlag = 1 << 0
	CompileEnableStrictness CompileFlag = 1 << 11
)

type Usage uint32

const (
	UsageDefault   Usage = 0
	UsageImmutable Usage = 1
	UsageDynamic   Usage = 2
	UsageStaging   Usage = 3
)

type BindFlag uint32

const (
	BindVertexBuffer   BindFlag = 0x1
	BindIndexBuffer    BindFlag = 0x2
	BindConstantBuffer BindFlag = 0x4
	BindRenderTarget   BindFlag = 0x20
)

type CPUAccessFlag uint32

const (
	CPUAccessWrite CPUAccessFlag = 0x10000
	CPUAccessRead  CPUAccessFlag = 0x20000
)

type MapType uint32

const (
	MapRead             MapType = 1
	MapWrite            MapType = 2
	MapReadWrite        MapType = 3
	MapWriteDiscard     MapType = 4
	MapWriteNoOverwrite MapType = 5
)

type PrimitiveTopology uint32

const (
	TopologyUndefined     PrimitiveTopology = 0
	TopologyTriangleList  PrimitiveTopology = 4
	TopologyTriangleStrip PrimitiveTopology = 5
)

type FillMode uint32

const (
	FillWireframe FillMode = 2
	FillSolid     FillMode = 3
)

type CullMode uint32

const (
	CullNone  CullMode = 1
	CullFront CullMode = 2
	CullBack  CullMode = 3
)

type InputClassification uint32

const (
	InputPerVertexData   InputClassification = 0
	InputPerInstanceData InputClassification = 1
)

type RTVDimension uint32

const RTVDimensionTexture2D RTVDimension = 4

type SwapEffect uint32

const (
	SwapEffectDiscard        SwapEffect = 0
	SwapEffectSequential     SwapEffect = 1
	SwapEffectFlipSequential SwapEffect = 3
	SwapEffectFlipDiscard    SwapEffect = 4
)

type Scaling uint32

const (
	ScalingStretch Scaling = 0
	ScalingNone    Scaling = 1
)

type SwapChainFlag uint32

const SwapChainFlagAllowModeSwitch SwapChainFlag = 0x2

const UsageRenderTargetOutput uint32 = 0x20

type EnumModeFlag uint32

const EnumModesInterlaced EnumModeFlag = 0x1

type ReportFlag uint32

const (
	ReportSummary ReportFlag = 0x1
	ReportDetail  ReportFlag = 0x2
)

type BufferDesc struct {
	ByteWidth           uint32
	Usage               Usage
	BindFlags           BindFlag
	CPUAccessFlags      CPUAccessFlag
	MiscFlags           uint32
	StructureByteStride uint32
}

type RasterizerDesc struct {
	FillMode              FillMode
	CullMode              CullMode
	FrontCounterClockwise bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
	ScissorEnable         bool
	MultisampleEnable     bool
	AntialiasedLineEnable bool
}

type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

type RenderTargetViewDesc struct {
	Format        Format
	ViewDimension RTVDimension
}

type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type Texture2DDesc struct {
	Width  uint32
	Height uint32
	Format Format
}

type Rational struct {
	Numerator   uint32
	Denominator uint32
}

type ModeDesc struct {
	Width            uint32
	Height           uint32
	RefreshRate      Rational
	Format           Format
	ScanlineOrdering uint32
	Scaling          uint32
}

type AdapterDesc struct {
	Description          string
	VendorID             uint32
	DeviceID             uint32
	DedicatedVideoMemory uint64
}

type OutputDesc struct {
	DeviceName         string
	DesktopCoordinates image.Rectangle
	AttachedToDesktop  bool
}

type SwapChainDesc struct {
	Width         uint32
	Height        uint32
	Format        Format
	Stereo        bool
	SampleCount   uint32
	SampleQuality uint32
	BufferUsage   uint32
	BufferCount   uint32
	Scaling       Scaling
	SwapEffect    SwapEffect
	AlphaMode     uint32
	Flags         SwapChainFlag
}

type FullscreenDesc struct {
	RefreshRate      Rational
	ScanlineOrdering uint32
	Scaling          uint32
	Windowed         bool
}
