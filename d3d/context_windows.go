package d3d

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
)

// Context is the immediate context of a Device.
type Context struct {
	com *ID3D11DeviceContext
}

func bufferOf(b gpu.Buffer) *ID3D11Buffer {
	if b, ok := b.(*Buffer); ok {
		return b.com
	}
	return nil
}

// Map maps subresource 0 of buf and returns its bytes. They stay valid
// until Unmap.
func (c *Context) Map(buf gpu.Buffer, typ gpu.MapType) ([]byte, error) {
	b := bufferOf(buf)
	if b == nil {
		return nil, errors.Wrap(gpu.E_INVALIDARG, "Map: not a d3d buffer")
	}
	var mapped _D3D11_MAPPED_SUBRESOURCE
	if err := check("Map", c.com.Map(unknown(b), 0, uint32(typ), 0, &mapped)); err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(mapped.PData), buf.Desc().ByteWidth), nil
}

func (c *Context) Unmap(buf gpu.Buffer) {
	if b := bufferOf(buf); b != nil {
		c.com.Unmap(unknown(b), 0)
	}
}

func (c *Context) OMSetRenderTargets(rtv gpu.RenderTargetView) {
	var view *ID3D11RenderTargetView
	if v, ok := rtv.(*RenderTargetView); ok {
		view = v.com
	}
	c.com.OMSetRenderTargets(view)
}

func (c *Context) RSSetViewports(vp gpu.Viewport) {
	cvp := _D3D11_VIEWPORT(vp)
	c.com.RSSetViewports(&cvp)
}

func (c *Context) RSSetState(rs gpu.RasterizerState) {
	var state *ID3D11RasterizerState
	if s, ok := rs.(*RasterizerState); ok {
		state = s.com
	}
	c.com.RSSetState(state)
}

func (c *Context) ClearRenderTargetView(rtv gpu.RenderTargetView, color [4]float32) {
	if v, ok := rtv.(*RenderTargetView); ok && v.com != nil {
		c.com.ClearRenderTargetView(v.com, &color)
	}
}

func (c *Context) IASetPrimitiveTopology(t gpu.PrimitiveTopology) {
	c.com.IASetPrimitiveTopology(uint32(t))
}

func (c *Context) IASetInputLayout(l gpu.InputLayout) {
	var layout *ID3D11InputLayout
	if il, ok := l.(*InputLayout); ok {
		layout = il.com
	}
	c.com.IASetInputLayout(layout)
}

func (c *Context) IASetVertexBuffers(buf gpu.Buffer, stride, offset uint32) {
	c.com.IASetVertexBuffers(bufferOf(buf), stride, offset)
}

func (c *Context) IASetIndexBuffer(buf gpu.Buffer, format gpu.Format, offset uint32) {
	c.com.IASetIndexBuffer(bufferOf(buf), uint32(format), offset)
}

func (c *Context) VSSetShader(vs gpu.VertexShader) {
	var shader *ID3D11VertexShader
	if s, ok := vs.(*VertexShader); ok {
		shader = s.com
	}
	c.com.VSSetShader(shader)
}

func (c *Context) VSSetConstantBuffers(slot uint32, buf gpu.Buffer) {
	c.com.VSSetConstantBuffers(slot, bufferOf(buf))
}

func (c *Context) PSSetShader(ps gpu.PixelShader) {
	var shader *ID3D11PixelShader
	if s, ok := ps.(*PixelShader); ok {
		shader = s.com
	}
	c.com.PSSetShader(shader)
}

func (c *Context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	c.com.DrawIndexed(indexCount, startIndex, baseVertex)
}

func (c *Context) Release() {
	release(c.com)
	c.com = nil
}
