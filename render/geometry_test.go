package render

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/soft"
)

func TestNDC(t *testing.T) {
	tests := []struct {
		p    image.Point
		x, y float32
	}{
		{image.Pt(0, 0), -1, 1},
		{image.Pt(800, 480), 1, -1},
		{image.Pt(400, 240), 0, 0},
		{image.Pt(800, 0), 1, 1},
		{image.Pt(0, 480), -1, -1},
		{image.Pt(200, 120), -0.5, 0.5},
	}
	for _, tt := range tests {
		x, y := NDC(800, 480, tt.p)
		assert.Equal(t, tt.x, x, "%v", tt.p)
		assert.Equal(t, tt.y, y, "%v", tt.p)
	}
}

// signedArea is positive for clockwise triangles in pixel space, where Y
// grows downward.
func signedArea(a, b, c image.Point) int {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func TestRectangleWinding(t *testing.T) {
	corners := RectangleCorners(image.Rect(520, 120, 720, 220))
	assert.Equal(t, [4]image.Point{{520, 120}, {720, 120}, {720, 220}, {520, 220}}, corners)

	for i := 0; i < len(rectangleIndices); i += 3 {
		a := corners[rectangleIndices[i]]
		b := corners[rectangleIndices[i+1]]
		c := corners[rectangleIndices[i+2]]
		assert.Positive(t, signedArea(a, b, c), "triangle %d", i/3)
	}
}

func TestTriangleVertices(t *testing.T) {
	c := color.RGBA{R: 255, G: 255, A: 255}
	v := TriangleVertices(800, 480, image.Pt(0, 0), image.Pt(800, 480), image.Pt(400, 240), c)
	assert.Equal(t, Vertex{X: -1, Y: 1, R: 255, G: 255, A: 255}, v[0])
	assert.Equal(t, Vertex{X: 1, Y: -1, R: 255, G: 255, A: 255}, v[1])
	assert.Equal(t, Vertex{X: 0, Y: 0, R: 255, G: 255, A: 255}, v[2])
}

func TestEncodeVertices(t *testing.T) {
	b := encodeVertices([]Vertex{{X: 0.5, Y: -0.25, R: 1, G: 2, B: 3, A: 4}})
	require.Len(t, b, VertexSize)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(b[0:])))
	assert.Equal(t, float32(-0.25), math.Float32frombits(binary.LittleEndian.Uint32(b[4:])))
	assert.Equal(t, []byte{1, 2, 3, 4}, b[8:12])
}

func newTestDevice(t *testing.T, drv *soft.Driver) (gpu.Device, gpu.DeviceContext) {
	t.Helper()
	dev, ctx, err := drv.CreateDevice(0, featureLevels)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx.Release()
		dev.Release()
	})
	return dev, ctx
}

func TestGeometryBuildRelease(t *testing.T) {
	drv := soft.New()
	dev, _ := newTestDevice(t, drv)
	g := Geometry{Device: dev}

	tri, err := g.Triangle(800, 480, image.Pt(320, 120), image.Pt(480, 360), image.Pt(160, 360), color.RGBA{A: 255})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), tri.IndexCount)
	assert.Equal(t, uint32(VertexSize), tri.Stride)
	assert.Equal(t, uint32(3*VertexSize), tri.VertexBuffer.Desc().ByteWidth)
	assert.Equal(t, gpu.CPUAccessWrite, tri.VertexBuffer.Desc().CPUAccessFlags)
	assert.Equal(t, gpu.BindIndexBuffer, tri.IndexBuffer.Desc().BindFlags)

	rect, err := g.Rectangle(800, 480, image.Rect(520, 120, 720, 220), color.RGBA{B: 255, A: 255})
	require.NoError(t, err)
	assert.Equal(t, uint32(6), rect.IndexCount)
	assert.Equal(t, encodeIndices([]uint32{0, 1, 3, 1, 2, 3}), rect.IndexBuffer.(*soft.Buffer).Bytes())
	assert.Equal(t, 4, drv.Live()[soft.KindBuffer])

	tri.Release()
	rect.Release()
	assert.Zero(t, drv.Live()[soft.KindBuffer])

	// Repeated pairs do not accumulate buffers.
	for i := 0; i < 10; i++ {
		p, err := g.Rectangle(800, 480, image.Rect(0, 0, 10, 10), color.RGBA{})
		require.NoError(t, err)
		p.Release()
	}
	assert.Zero(t, drv.Live()[soft.KindBuffer])
	assert.Empty(t, drv.Violations())
}

func TestGeometryIndexBufferFailure(t *testing.T) {
	drv := soft.New()
	dev, _ := newTestDevice(t, drv)
	drv.Fault = soft.FailOn(soft.CallCreateBuffer, 2, gpu.E_OUTOFMEMORY)

	p, err := Geometry{Device: dev}.Triangle(10, 10, image.Pt(0, 0), image.Pt(5, 5), image.Pt(0, 5), color.RGBA{})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrResourceCreation)
	assert.ErrorIs(t, err, gpu.E_OUTOFMEMORY)
	assert.Zero(t, drv.Live()[soft.KindBuffer])
}

func TestPrimitiveReleaseNil(t *testing.T) {
	var p *Primitive
	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, (&Primitive{}).Release)
}
