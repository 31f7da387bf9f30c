package soft

import (
	"fmt"

	"github.com/kirides/d3drot/gpu"
)

type Device struct {
	*object
	flags   gpu.DeviceFlag
	level   gpu.FeatureLevel
	// removed is what calls return once the device is gone; reason is
	// what GetDeviceRemovedReason would report.
	removed error
	reason  error
}

// RemovedReason returns the removal reason, or nil while the device works.
func (dev *Device) RemovedReason() error { return dev.reason }

func (dev *Device) FeatureLevel() gpu.FeatureLevel { return dev.level }

func (dev *Device) check(c Call) error {
	if err := dev.drv.fault(c); err != nil {
		return err
	}
	if !dev.alive() {
		dev.drv.violate("%s on a released device", c)
		return gpu.E_INVALIDARG
	}
	return dev.removed
}

func (dev *Device) CreateBuffer(desc gpu.BufferDesc, data []byte) (gpu.Buffer, error) {
	if err := dev.check(CallCreateBuffer); err != nil {
		return nil, err
	}
	if desc.ByteWidth == 0 {
		return nil, gpu.E_INVALIDARG
	}
	if desc.BindFlags&gpu.BindConstantBuffer != 0 && desc.ByteWidth%16 != 0 {
		return nil, gpu.E_INVALIDARG
	}
	if desc.Usage == gpu.UsageDynamic && desc.CPUAccessFlags&gpu.CPUAccessWrite == 0 {
		return nil, gpu.E_INVALIDARG
	}
	if desc.Usage == gpu.UsageImmutable && data == nil {
		return nil, gpu.E_INVALIDARG
	}
	if data != nil && uint32(len(data)) < desc.ByteWidth {
		return nil, gpu.E_INVALIDARG
	}
	b := &Buffer{object: dev.drv.track(KindBuffer), desc: desc, data: make([]byte, desc.ByteWidth)}
	copy(b.data, data)
	return b, nil
}

func (dev *Device) CreateRasterizerState(desc gpu.RasterizerDesc) (gpu.RasterizerState, error) {
	if err := dev.check(CallCreateRasterizerState); err != nil {
		return nil, err
	}
	if desc.FillMode != gpu.FillSolid && desc.FillMode != gpu.FillWireframe {
		return nil, gpu.E_INVALIDARG
	}
	if desc.CullMode < gpu.CullNone || desc.CullMode > gpu.CullBack {
		return nil, gpu.E_INVALIDARG
	}
	return &RasterizerState{object: dev.drv.track(KindRasterizerState), desc: desc}, nil
}

func (dev *Device) CreateVertexShader(bytecode []byte) (gpu.VertexShader, error) {
	if err := dev.check(CallCreateVertexShader); err != nil {
		return nil, err
	}
	if bytecodeStage(bytecode) != "vs" {
		return nil, gpu.E_INVALIDARG
	}
	return &VertexShader{object: dev.drv.track(KindVertexShader)}, nil
}

func (dev *Device) CreatePixelShader(bytecode []byte) (gpu.PixelShader, error) {
	if err := dev.check(CallCreatePixelShader); err != nil {
		return nil, err
	}
	if bytecodeStage(bytecode) != "ps" {
		return nil, gpu.E_INVALIDARG
	}
	return &PixelShader{object: dev.drv.track(KindPixelShader)}, nil
}

// CreateInputLayout accepts the layouts the vertex stage can fetch: a
// POSITION of two floats and an optional COLOR of four unorm bytes.
func (dev *Device) CreateInputLayout(elems []gpu.InputElementDesc, bytecode []byte) (gpu.InputLayout, error) {
	if err := dev.check(CallCreateInputLayout); err != nil {
		return nil, err
	}
	if bytecodeStage(bytecode) != "vs" {
		return nil, gpu.E_INVALIDARG
	}
	l := &InputLayout{position: -1, color: -1}
	for _, e := range elems {
		switch {
		case e.SemanticName == "POSITION" && e.Format == gpu.FormatR32G32Float:
			l.position = int(e.AlignedByteOffset)
		case e.SemanticName == "COLOR" && e.Format == gpu.FormatR8G8B8A8UNorm:
			l.color = int(e.AlignedByteOffset)
		default:
			return nil, gpu.E_INVALIDARG
		}
	}
	if l.position < 0 {
		return nil, gpu.E_INVALIDARG
	}
	l.object = dev.drv.track(KindInputLayout)
	return l, nil
}

func (dev *Device) CreateRenderTargetView(tex gpu.Texture2D, desc gpu.RenderTargetViewDesc) (gpu.RenderTargetView, error) {
	if err := dev.check(CallCreateRenderTargetView); err != nil {
		return nil, err
	}
	t, ok := tex.(*Texture)
	// Only buffer 0 of a flip-model swap chain is writable.
	if !ok || !t.alive() || t.index != 0 {
		return nil, gpu.E_INVALIDARG
	}
	if desc.ViewDimension != gpu.RTVDimensionTexture2D {
		return nil, gpu.E_INVALIDARG
	}
	if desc.Format != gpu.FormatUnknown && desc.Format != t.desc.Format {
		return nil, gpu.E_INVALIDARG
	}
	t.sc.refs++
	return &RenderTargetView{object: dev.drv.track(KindRenderTargetView), sc: t.sc}, nil
}

func (dev *Device) Debug() (gpu.Debug, error) {
	if dev.flags&gpu.DeviceFlagDebug == 0 {
		return nil, gpu.E_NOINTERFACE
	}
	return &Debug{object: dev.drv.track(KindDebug)}, nil
}

func (dev *Device) Release() { dev.release() }

type Buffer struct {
	*object
	desc   gpu.BufferDesc
	data   []byte
	mapped bool
}

func (b *Buffer) Desc() gpu.BufferDesc { return b.desc }

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) Release() {
	if b.mapped {
		b.drv.violate("buffer released while mapped")
	}
	b.release()
}

// Texture is a reference to a swap chain buffer.
type Texture struct {
	*object
	sc    *SwapChain
	index uint32
	desc  gpu.Texture2DDesc
}

func (t *Texture) Desc() gpu.Texture2DDesc { return t.desc }

func (t *Texture) Release() {
	if t.alive() {
		t.sc.refs--
	}
	t.release()
}

// RenderTargetView targets back buffer 0 of its swap chain, which under the
// flip model follows the buffer rotation on Present.
type RenderTargetView struct {
	*object
	sc *SwapChain
}

func (v *RenderTargetView) Release() {
	if v.alive() {
		v.sc.refs--
	}
	v.release()
}

type RasterizerState struct {
	*object
	desc gpu.RasterizerDesc
}

func (r *RasterizerState) Release() { r.release() }

type VertexShader struct{ *object }

func (s *VertexShader) Release() { s.release() }

type PixelShader struct{ *object }

func (s *PixelShader) Release() { s.release() }

// InputLayout holds the byte offsets of POSITION and COLOR; -1 when absent.
type InputLayout struct {
	*object
	position int
	color    int
}

func (l *InputLayout) Release() { l.release() }

// Debug reports live objects through the driver's logger.
type Debug struct{ *object }

func (d *Debug) ReportLiveObjects(flags gpu.ReportFlag) error {
	drv := d.drv
	// The debug object itself is not reported.
	drv.live[KindDebug]--
	defer func() { drv.live[KindDebug]++ }()

	total := drv.LiveTotal()
	if total == 0 {
		drv.log().Info("soft: no live objects")
		return nil
	}
	if flags&gpu.ReportDetail != 0 {
		drv.log().Warn("soft: live objects", "count", total, "objects", drv.report())
	} else {
		drv.log().Warn(fmt.Sprintf("soft: %d live objects", total))
	}
	return nil
}

func (d *Debug) Release() { d.release() }
