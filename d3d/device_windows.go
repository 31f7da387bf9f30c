package d3d

import (
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/kirides/d3drot/gpu"
)

type Device struct {
	com *ID3D11Device
	ctx *Context
	log *slog.Logger
}

// RemovedReason returns why the device was removed, or nil while it works.
func (d *Device) RemovedReason() error {
	return check("GetDeviceRemovedReason", d.com.GetDeviceRemovedReason())
}

func (d *Device) CreateBuffer(desc gpu.BufferDesc, data []byte) (gpu.Buffer, error) {
	cdesc := _D3D11_BUFFER_DESC{
		ByteWidth:           desc.ByteWidth,
		Usage:               uint32(desc.Usage),
		BindFlags:           uint32(desc.BindFlags),
		CPUAccessFlags:      uint32(desc.CPUAccessFlags),
		MiscFlags:           desc.MiscFlags,
		StructureByteStride: desc.StructureByteStride,
	}
	var init *_D3D11_SUBRESOURCE_DATA
	if len(data) > 0 {
		init = &_D3D11_SUBRESOURCE_DATA{pSysMem: &data[0]}
	}
	var buf *ID3D11Buffer
	if err := check("CreateBuffer", d.com.CreateBuffer(&cdesc, init, &buf)); err != nil {
		return nil, err
	}
	return &Buffer{com: buf, desc: desc}, nil
}

func (d *Device) CreateRasterizerState(desc gpu.RasterizerDesc) (gpu.RasterizerState, error) {
	cdesc := _D3D11_RASTERIZER_DESC{
		FillMode:              uint32(desc.FillMode),
		CullMode:              uint32(desc.CullMode),
		FrontCounterClockwise: boolToBOOL(desc.FrontCounterClockwise),
		DepthBias:             desc.DepthBias,
		DepthBiasClamp:        desc.DepthBiasClamp,
		SlopeScaledDepthBias:  desc.SlopeScaledDepthBias,
		DepthClipEnable:       boolToBOOL(desc.DepthClipEnable),
		ScissorEnable:         boolToBOOL(desc.ScissorEnable),
		MultisampleEnable:     boolToBOOL(desc.MultisampleEnable),
		AntialiasedLineEnable: boolToBOOL(desc.AntialiasedLineEnable),
	}
	var rs *ID3D11RasterizerState
	if err := check("CreateRasterizerState", d.com.CreateRasterizerState(&cdesc, &rs)); err != nil {
		return nil, err
	}
	return &RasterizerState{com: rs}, nil
}

func (d *Device) CreateVertexShader(bytecode []byte) (gpu.VertexShader, error) {
	if len(bytecode) == 0 {
		return nil, errors.Wrap(gpu.E_INVALIDARG, "CreateVertexShader: empty bytecode")
	}
	var vs *ID3D11VertexShader
	if err := check("CreateVertexShader", d.com.CreateVertexShader(bytecode, &vs)); err != nil {
		return nil, err
	}
	return &VertexShader{com: vs}, nil
}

func (d *Device) CreatePixelShader(bytecode []byte) (gpu.PixelShader, error) {
	if len(bytecode) == 0 {
		return nil, errors.Wrap(gpu.E_INVALIDARG, "CreatePixelShader: empty bytecode")
	}
	var ps *ID3D11PixelShader
	if err := check("CreatePixelShader", d.com.CreatePixelShader(bytecode, &ps)); err != nil {
		return nil, err
	}
	return &PixelShader{com: ps}, nil
}

func (d *Device) CreateInputLayout(elems []gpu.InputElementDesc, bytecode []byte) (gpu.InputLayout, error) {
	if len(elems) == 0 || len(bytecode) == 0 {
		return nil, errors.Wrap(gpu.E_INVALIDARG, "CreateInputLayout")
	}
	celems := make([]_D3D11_INPUT_ELEMENT_DESC, len(elems))
	for i, e := range elems {
		name, err := windows.BytePtrFromString(e.SemanticName)
		if err != nil {
			return nil, errors.Wrap(err, "CreateInputLayout")
		}
		celems[i] = _D3D11_INPUT_ELEMENT_DESC{
			SemanticName:         name,
			SemanticIndex:        e.SemanticIndex,
			Format:               uint32(e.Format),
			InputSlot:            e.InputSlot,
			AlignedByteOffset:    e.AlignedByteOffset,
			InputSlotClass:       uint32(e.InputSlotClass),
			InstanceDataStepRate: e.InstanceDataStepRate,
		}
	}
	var layout *ID3D11InputLayout
	if err := check("CreateInputLayout", d.com.CreateInputLayout(celems, bytecode, &layout)); err != nil {
		return nil, err
	}
	return &InputLayout{com: layout}, nil
}

func (d *Device) CreateRenderTargetView(tex gpu.Texture2D, desc gpu.RenderTargetViewDesc) (gpu.RenderTargetView, error) {
	t, ok := tex.(*Texture2D)
	if !ok || t.com == nil {
		return nil, errors.Wrap(gpu.E_INVALIDARG, "CreateRenderTargetView: not a d3d texture")
	}
	cdesc := _D3D11_RENDER_TARGET_VIEW_DESC{
		Format:        uint32(desc.Format),
		ViewDimension: uint32(desc.ViewDimension),
	}
	var rtv *ID3D11RenderTargetView
	if err := check("CreateRenderTargetView", d.com.CreateRenderTargetView(unknown(t.com), &cdesc, &rtv)); err != nil {
		return nil, err
	}
	return &RenderTargetView{com: rtv}, nil
}

// Debug fails with E_NOINTERFACE unless the device was created with the
// debug layer.
func (d *Device) Debug() (gpu.Debug, error) {
	var dbg *ID3D11Debug
	if err := check("QueryInterface(ID3D11Debug)", unknown(d.com).QueryInterface(&iid_ID3D11Debug, unsafe.Pointer(&dbg))); err != nil {
		return nil, err
	}
	return &Debug{com: dbg}, nil
}

func (d *Device) Release() {
	release(d.com)
	d.com = nil
}

type Debug struct {
	com *ID3D11Debug
}

// ReportLiveObjects writes the report to the debugger output.
func (d *Debug) ReportLiveObjects(flags gpu.ReportFlag) error {
	return check("ReportLiveDeviceObjects", d.com.ReportLiveDeviceObjects(uint32(flags)))
}

func (d *Debug) Release() {
	release(d.com)
	d.com = nil
}

type Buffer struct {
	com  *ID3D11Buffer
	desc gpu.BufferDesc
}

func (b *Buffer) Desc() gpu.BufferDesc { return b.desc }

func (b *Buffer) Release() {
	release(b.com)
	b.com = nil
}

type Texture2D struct {
	com *ID3D11Texture2D
}

func (t *Texture2D) Desc() gpu.Texture2DDesc {
	var desc _D3D11_TEXTURE2D_DESC
	t.com.GetDesc(&desc)
	return gpu.Texture2DDesc{Width: desc.Width, Height: desc.Height, Format: gpu.Format(desc.Format)}
}

func (t *Texture2D) Release() {
	release(t.com)
	t.com = nil
}

type RenderTargetView struct{ com *ID3D11RenderTargetView }

func (v *RenderTargetView) Release() {
	release(v.com)
	v.com = nil
}

type RasterizerState struct{ com *ID3D11RasterizerState }

func (s *RasterizerState) Release() {
	release(s.com)
	s.com = nil
}

type VertexShader struct{ com *ID3D11VertexShader }

func (s *VertexShader) Release() {
	release(s.com)
	s.com = nil
}

type PixelShader struct{ com *ID3D11PixelShader }

func (s *PixelShader) Release() {
	release(s.com)
	s.com = nil
}

type InputLayout struct{ com *ID3D11InputLayout }

func (l *InputLayout) Release() {
	release(l.com)
	l.com = nil
}
