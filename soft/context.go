package soft

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/kirides/d3drot/gpu"
)

// Context is the immediate context. It records every call in the driver's
// call log and draws into the bound render target on DrawIndexed.
type Context struct {
	*object
	dev *Device

	rtv       *RenderTargetView
	viewport  gpu.Viewport
	rs        *RasterizerState
	topology  gpu.PrimitiveTopology
	layout    *InputLayout
	vb        *Buffer
	vbStride  uint32
	vbOffset  uint32
	ib        *Buffer
	ibFormat  gpu.Format
	ibOffset  uint32
	vs        *VertexShader
	ps        *PixelShader
	constants [14]*Buffer

	raster rasterizer
}

func (c *Context) Map(buf gpu.Buffer, typ gpu.MapType) ([]byte, error) {
	c.drv.record("Map")
	if err := c.drv.fault(CallMap); err != nil {
		return nil, err
	}
	if c.dev.removed != nil {
		return nil, c.dev.removed
	}
	b, ok := buf.(*Buffer)
	if !ok || !b.alive() {
		return nil, gpu.E_INVALIDARG
	}
	if b.mapped {
		c.drv.violate("Map of a mapped buffer")
		return nil, gpu.E_INVALIDARG
	}
	switch typ {
	case gpu.MapWriteDiscard, gpu.MapWriteNoOverwrite:
		if b.desc.Usage != gpu.UsageDynamic {
			return nil, gpu.E_INVALIDARG
		}
		if typ == gpu.MapWriteDiscard {
			b.data = make([]byte, len(b.data))
		}
	case gpu.MapRead, gpu.MapWrite, gpu.MapReadWrite:
		if b.desc.Usage != gpu.UsageStaging {
			return nil, gpu.E_INVALIDARG
		}
	default:
		return nil, gpu.E_INVALIDARG
	}
	b.mapped = true
	return b.data, nil
}

func (c *Context) Unmap(buf gpu.Buffer) {
	c.drv.record("Unmap")
	b, ok := buf.(*Buffer)
	if !ok || !b.mapped {
		c.drv.violate("Unmap of a buffer that is not mapped")
		return
	}
	b.mapped = false
}

func (c *Context) OMSetRenderTargets(rtv gpu.RenderTargetView) {
	c.drv.record("OMSetRenderTargets")
	if rtv == nil {
		c.rtv = nil
		return
	}
	c.rtv, _ = rtv.(*RenderTargetView)
}

// BoundRenderTarget reports whether a render target view is bound.
func (c *Context) BoundRenderTarget() bool { return c.rtv != nil }

func (c *Context) RSSetViewports(vp gpu.Viewport) {
	c.drv.record("RSSetViewports")
	c.viewport = vp
}

func (c *Context) RSSetState(rs gpu.RasterizerState) {
	c.drv.record("RSSetState")
	c.rs, _ = rs.(*RasterizerState)
}

func (c *Context) ClearRenderTargetView(rtv gpu.RenderTargetView, rgba [4]float32) {
	c.drv.record("ClearRenderTargetView")
	v, ok := rtv.(*RenderTargetView)
	if !ok || !v.alive() {
		c.drv.violate("ClearRenderTargetView with an invalid view")
		return
	}
	dst := v.sc.backBuffer()
	px := color.RGBA{R: unorm(rgba[0]), G: unorm(rgba[1]), B: unorm(rgba[2]), A: unorm(rgba[3])}
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i+0] = px.R
		dst.Pix[i+1] = px.G
		dst.Pix[i+2] = px.B
		dst.Pix[i+3] = px.A
	}
}

func unorm(f float32) uint8 {
	switch {
	case f <= 0 || f != f:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

func (c *Context) IASetPrimitiveTopology(t gpu.PrimitiveTopology) {
	c.drv.record("IASetPrimitiveTopology")
	c.topology = t
}

func (c *Context) IASetInputLayout(l gpu.InputLayout) {
	c.drv.record("IASetInputLayout")
	c.layout, _ = l.(*InputLayout)
}

func (c *Context) IASetVertexBuffers(buf gpu.Buffer, stride, offset uint32) {
	c.drv.record("IASetVertexBuffers")
	c.vb, _ = buf.(*Buffer)
	c.vbStride, c.vbOffset = stride, offset
}

func (c *Context) IASetIndexBuffer(buf gpu.Buffer, format gpu.Format, offset uint32) {
	c.drv.record("IASetIndexBuffer")
	c.ib, _ = buf.(*Buffer)
	c.ibFormat, c.ibOffset = format, offset
}

func (c *Context) VSSetShader(vs gpu.VertexShader) {
	c.drv.record("VSSetShader")
	c.vs, _ = vs.(*VertexShader)
}

func (c *Context) VSSetConstantBuffers(slot uint32, buf gpu.Buffer) {
	c.drv.record("VSSetConstantBuffers")
	if int(slot) >= len(c.constants) {
		c.drv.violate("constant buffer slot %d out of range", slot)
		return
	}
	c.constants[slot], _ = buf.(*Buffer)
}

func (c *Context) PSSetShader(ps gpu.PixelShader) {
	c.drv.record("PSSetShader")
	c.ps, _ = ps.(*PixelShader)
}

// vertex is a vertex after the vertex stage, in render target pixels.
type vertex struct {
	x, y float32
	c    color.RGBA
}

func (c *Context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	c.drv.record("DrawIndexed")
	if !c.ready() {
		return
	}
	if c.dev.removed != nil {
		return
	}

	indices, ok := c.indices(indexCount, startIndex)
	if !ok {
		return
	}
	xf := c.transform()
	verts := make([]vertex, len(indices))
	for i, idx := range indices {
		v, ok := c.fetch(int64(idx) + int64(baseVertex))
		if !ok {
			return
		}
		verts[i] = c.project(xf, v)
	}

	dst := c.rtv.sc.backBuffer()
	clip := c.clipRect().Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	cull := c.rs.desc.CullMode
	ccw := c.rs.desc.FrontCounterClockwise
	wire := c.rs.desc.FillMode == gpu.FillWireframe

	emit := func(a, b, d vertex) {
		area := (b.x-a.x)*(d.y-a.y) - (b.y-a.y)*(d.x-a.x)
		if area == 0 {
			return
		}
		// Pixel Y grows downward, so a positive area is clockwise on screen.
		front := (area > 0) != ccw
		if (cull == gpu.CullBack && !front) || (cull == gpu.CullFront && front) {
			return
		}
		c.raster.triangle(dst, clip, [3]vertex{a, b, d}, wire)
	}

	switch c.topology {
	case gpu.TopologyTriangleList:
		for i := 0; i+2 < len(verts); i += 3 {
			emit(verts[i], verts[i+1], verts[i+2])
		}
	case gpu.TopologyTriangleStrip:
		for i := 0; i+2 < len(verts); i++ {
			if i%2 == 0 {
				emit(verts[i], verts[i+1], verts[i+2])
			} else {
				emit(verts[i+1], verts[i], verts[i+2])
			}
		}
	default:
		c.drv.violate("DrawIndexed with unsupported topology %d", c.topology)
	}
}

func (c *Context) ready() bool {
	switch {
	case c.rtv == nil || !c.rtv.alive():
		c.drv.violate("DrawIndexed without a render target")
	case c.vs == nil || c.ps == nil:
		c.drv.violate("DrawIndexed without shaders")
	case c.layout == nil:
		c.drv.violate("DrawIndexed without an input layout")
	case c.rs == nil:
		c.drv.violate("DrawIndexed without a rasterizer state")
	case c.vb == nil || !c.vb.alive() || c.ib == nil || !c.ib.alive():
		c.drv.violate("DrawIndexed without vertex or index buffer")
	case c.vb.mapped || c.ib.mapped:
		c.drv.violate("DrawIndexed with a mapped buffer bound")
	case c.constants[0] == nil || !c.constants[0].alive():
		c.drv.violate("DrawIndexed without constant buffer 0")
	case c.constants[0].mapped:
		c.drv.violate("DrawIndexed with constant buffer 0 mapped")
	default:
		return true
	}
	return false
}

func (c *Context) indices(count, start uint32) ([]uint32, bool) {
	if c.ibFormat != gpu.FormatR32UInt {
		c.drv.violate("index format %d not supported", c.ibFormat)
		return nil, false
	}
	data := c.ib.data
	first := int(c.ibOffset) + int(start)*4
	end := first + int(count)*4
	if end > len(data) {
		c.drv.violate("index buffer overrun: need %d bytes, have %d", end, len(data))
		return nil, false
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[first+i*4:])
	}
	return out, true
}

// fetch reads vertex i through the input layout.
func (c *Context) fetch(i int64) (vertex, bool) {
	base := int64(c.vbOffset) + i*int64(c.vbStride)
	data := c.vb.data
	pos := base + int64(c.layout.position)
	if i < 0 || pos+8 > int64(len(data)) {
		c.drv.violate("vertex %d outside the vertex buffer", i)
		return vertex{}, false
	}
	v := vertex{
		x: math.Float32frombits(binary.LittleEndian.Uint32(data[pos:])),
		y: math.Float32frombits(binary.LittleEndian.Uint32(data[pos+4:])),
		c: color.RGBA{A: 255},
	}
	if c.layout.color >= 0 {
		col := base + int64(c.layout.color)
		if col+4 > int64(len(data)) {
			c.drv.violate("vertex %d color outside the vertex buffer", i)
			return vertex{}, false
		}
		v.c = color.RGBA{R: data[col], G: data[col+1], B: data[col+2], A: data[col+3]}
	}
	return v, true
}

// transform decodes the two float4 rows of constant buffer 0.
func (c *Context) transform() f32.Aff3 {
	var m f32.Aff3
	data := c.constants[0].data
	if len(data) < 32 {
		return f32.Aff3{1, 0, 0, 0, 1, 0}
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			off := (row*4 + col) * 4
			m[row*3+col] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return m
}

// project applies the vertex stage and the viewport transform.
func (c *Context) project(m f32.Aff3, v vertex) vertex {
	x := m[0]*v.x + m[1]*v.y + m[2]
	y := m[3]*v.x + m[4]*v.y + m[5]
	vp := c.viewport
	return vertex{
		x: vp.TopLeftX + (x+1)*0.5*vp.Width,
		y: vp.TopLeftY + (1-y)*0.5*vp.Height,
		c: v.c,
	}
}

func (c *Context) clipRect() image.Rectangle {
	vp := c.viewport
	return image.Rect(
		int(vp.TopLeftX), int(vp.TopLeftY),
		int(vp.TopLeftX+vp.Width), int(vp.TopLeftY+vp.Height),
	)
}

func (c *Context) Release() {
	c.rtv = nil
	c.vb, c.ib = nil, nil
	c.constants = [14]*Buffer{}
	c.release()
}
