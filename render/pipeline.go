package render

import (
	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
)

const (
	vertexEntry  = "main_vs"
	vertexTarget = "vs_5_0"
	pixelEntry   = "main_ps"
	pixelTarget  = "ps_5_0"
)

var inputElements = []gpu.InputElementDesc{
	{SemanticName: "POSITION", Format: gpu.FormatR32G32Float, AlignedByteOffset: 0, InputSlotClass: gpu.InputPerVertexData},
	{SemanticName: "COLOR", Format: gpu.FormatR8G8B8A8UNorm, AlignedByteOffset: 2 * 4, InputSlotClass: gpu.InputPerVertexData},
}

var rasterizerDesc = gpu.RasterizerDesc{
	FillMode:        gpu.FillSolid,
	CullMode:        gpu.CullNone,
	DepthClipEnable: true,
}

// Compiler turns HLSL into shader bytecode. gpu.Driver implements it.
type Compiler interface {
	CompileShader(src []byte, name, entryPoint, target string, flags gpu.CompileFlag) ([]byte, error)
}

// Pipeline holds the pipeline objects that do not change per frame and the
// constant buffer carrying the rotation transform.
type Pipeline struct {
	rasterizer gpu.RasterizerState
	vertex     gpu.VertexShader
	layout     gpu.InputLayout
	pixel      gpu.PixelShader
	constants  gpu.Buffer
}

// NewPipeline compiles src and creates the pipeline objects on dev. On
// failure everything created so far is released.
func NewPipeline(c Compiler, dev gpu.Device, src []byte, name string, debug bool) (*Pipeline, error) {
	p := &Pipeline{}
	if err := p.create(c, dev, src, name, debug); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) create(c Compiler, dev gpu.Device, src []byte, name string, debug bool) (err error) {
	if p.rasterizer, err = dev.CreateRasterizerState(rasterizerDesc); err != nil {
		return creationError("CreateRasterizerState", err)
	}

	flags := gpu.CompileEnableStrictness
	if debug {
		flags |= gpu.CompileDebug
	}

	vsCode, err := c.CompileShader(src, name, vertexEntry, vertexTarget, flags)
	if err != nil {
		return newError(ErrShaderCompile, "D3DCompile("+vertexEntry+")", err)
	}
	if p.vertex, err = dev.CreateVertexShader(vsCode); err != nil {
		return creationError("CreateVertexShader", err)
	}
	if p.layout, err = dev.CreateInputLayout(inputElements, vsCode); err != nil {
		return creationError("CreateInputLayout", err)
	}

	psCode, err := c.CompileShader(src, name, pixelEntry, pixelTarget, flags)
	if err != nil {
		return newError(ErrShaderCompile, "D3DCompile("+pixelEntry+")", err)
	}
	if p.pixel, err = dev.CreatePixelShader(psCode); err != nil {
		return creationError("CreatePixelShader", err)
	}

	// Dynamic: rewritten on every resize.
	p.constants, err = dev.CreateBuffer(gpu.BufferDesc{
		ByteWidth:      TransformSize,
		Usage:          gpu.UsageDynamic,
		BindFlags:      gpu.BindConstantBuffer,
		CPUAccessFlags: gpu.CPUAccessWrite,
	}, nil)
	if err != nil {
		return creationError("CreateBuffer(constant)", err)
	}
	return nil
}

// WriteRotation replaces the constant buffer contents with t.
func (p *Pipeline) WriteRotation(ctx gpu.DeviceContext, t Transform) error {
	b, err := ctx.Map(p.constants, gpu.MapWriteDiscard)
	if err != nil {
		return errors.Wrap(err, "Map(constant)")
	}
	t.Put(b)
	ctx.Unmap(p.constants)
	return nil
}

// Bind sets the shaders, input layout, rasterizer state and the transform
// as vertex constant buffer 0.
func (p *Pipeline) Bind(ctx gpu.DeviceContext) {
	ctx.IASetInputLayout(p.layout)
	ctx.VSSetShader(p.vertex)
	ctx.VSSetConstantBuffers(0, p.constants)
	ctx.RSSetState(p.rasterizer)
	ctx.PSSetShader(p.pixel)
}

// Release releases the pipeline objects in reverse creation order. It is
// safe on a partially created or nil Pipeline.
func (p *Pipeline) Release() {
	if p == nil {
		return
	}
	if p.constants != nil {
		p.constants.Release()
		p.constants = nil
	}
	if p.pixel != nil {
		p.pixel.Release()
		p.pixel = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.vertex != nil {
		p.vertex.Release()
		p.vertex = nil
	}
	if p.rasterizer != nil {
		p.rasterizer.Release()
		p.rasterizer = nil
	}
}
