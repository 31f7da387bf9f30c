package render

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"github.com/kirides/d3drot/gpu"
)

// Vertex matches the input layout: POSITION as two float32, COLOR as four
// unorm bytes.
type Vertex struct {
	X, Y       float32
	R, G, B, A uint8
}

// VertexSize is the stride of a Vertex in a vertex buffer.
const VertexSize = 12

var (
	triangleIndices  = [3]uint32{0, 1, 2}
	rectangleIndices = [6]uint32{
		0, 1, 3, // upper left
		1, 2, 3, // bottom right
	}
)

// NDC maps pixel p of a w×h surface to normalized device coordinates. Pixel
// Y grows downward, NDC Y grows upward.
func NDC(w, h int, p image.Point) (x, y float32) {
	return float32(2*p.X-w) / float32(w), float32(h-2*p.Y) / float32(h)
}

func vertexAt(w, h int, p image.Point, c color.RGBA) Vertex {
	x, y := NDC(w, h, p)
	return Vertex{X: x, Y: y, R: c.R, G: c.G, B: c.B, A: c.A}
}

// TriangleVertices returns the three vertices of a triangle in NDC.
func TriangleVertices(w, h int, p1, p2, p3 image.Point, c color.RGBA) [3]Vertex {
	return [3]Vertex{
		vertexAt(w, h, p1, c),
		vertexAt(w, h, p2, c),
		vertexAt(w, h, p3, c),
	}
}

// RectangleCorners returns the corners of r: upper left, upper right,
// bottom right, bottom left.
func RectangleCorners(r image.Rectangle) [4]image.Point {
	return [4]image.Point{
		r.Min,
		{r.Max.X, r.Min.Y},
		r.Max,
		{r.Min.X, r.Max.Y},
	}
}

// RectangleVertices returns the four corner vertices of r in NDC, in the
// order of RectangleCorners.
func RectangleVertices(w, h int, r image.Rectangle, c color.RGBA) [4]Vertex {
	var v [4]Vertex
	for i, p := range RectangleCorners(r) {
		v[i] = vertexAt(w, h, p, c)
	}
	return v
}

// Primitive is a vertex and index buffer pair built for one draw.
type Primitive struct {
	VertexBuffer gpu.Buffer
	IndexBuffer  gpu.Buffer
	Stride       uint32
	Offset       uint32
	IndexCount   uint32
}

// Release releases both buffers. It is safe on a nil Primitive.
func (p *Primitive) Release() {
	if p == nil {
		return
	}
	if p.IndexBuffer != nil {
		p.IndexBuffer.Release()
		p.IndexBuffer = nil
	}
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
		p.VertexBuffer = nil
	}
}

// Geometry uploads primitives into CPU-writable buffers. Primitives are
// built for a single draw and are never cached; every Triangle or Rectangle
// call must be paired with one Primitive.Release.
type Geometry struct {
	Device gpu.Device
}

func (g Geometry) Triangle(w, h int, p1, p2, p3 image.Point, c color.RGBA) (*Primitive, error) {
	v := TriangleVertices(w, h, p1, p2, p3, c)
	return g.build(v[:], triangleIndices[:])
}

func (g Geometry) Rectangle(w, h int, r image.Rectangle, c color.RGBA) (*Primitive, error) {
	v := RectangleVertices(w, h, r, c)
	return g.build(v[:], rectangleIndices[:])
}

func (g Geometry) build(vertices []Vertex, indices []uint32) (*Primitive, error) {
	vb, err := g.Device.CreateBuffer(gpu.BufferDesc{
		ByteWidth:      uint32(len(vertices) * VertexSize),
		Usage:          gpu.UsageDynamic,
		BindFlags:      gpu.BindVertexBuffer,
		CPUAccessFlags: gpu.CPUAccessWrite,
	}, encodeVertices(vertices))
	if err != nil {
		return nil, creationError("CreateBuffer(vertex)", err)
	}
	ib, err := g.Device.CreateBuffer(gpu.BufferDesc{
		ByteWidth:      uint32(len(indices) * 4),
		Usage:          gpu.UsageDynamic,
		BindFlags:      gpu.BindIndexBuffer,
		CPUAccessFlags: gpu.CPUAccessWrite,
	}, encodeIndices(indices))
	if err != nil {
		vb.Release()
		return nil, creationError("CreateBuffer(index)", err)
	}
	return &Primitive{
		VertexBuffer: vb,
		IndexBuffer:  ib,
		Stride:       VertexSize,
		IndexCount:   uint32(len(indices)),
	}, nil
}

func encodeVertices(vertices []Vertex) []byte {
	b := make([]byte, len(vertices)*VertexSize)
	for i, v := range vertices {
		o := b[i*VertexSize:]
		binary.LittleEndian.PutUint32(o[0:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(o[4:], math.Float32bits(v.Y))
		o[8], o[9], o[10], o[11] = v.R, v.G, v.B, v.A
	}
	return b
}

func encodeIndices(indices []uint32) []byte {
	b := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(b[i*4:], idx)
	}
	return b
}
