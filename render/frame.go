package render

import (
	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
)

// RenderFrame draws scene into the surface and presents it: clear, bind
// the pipeline, select indexed triangle strips, draw the triangle, draw the
// rectangle, present. Primitives are rebuilt for the current back buffer
// size and released right after their draw. The present result is returned
// as is.
func RenderFrame(s *Surface, p *Pipeline, g Geometry, scene Scene) (PresentResult, error) {
	if s == nil || s.swapChain == nil || p == nil {
		return Presented, ErrNotInitialized
	}
	if s.lost {
		return DeviceLost, nil
	}
	if s.rtv == nil {
		if s.restoreFailed {
			return Presented, ErrRenderTargetLost
		}
		return Presented, ErrNoRenderTarget
	}

	w, h, err := s.Size()
	if err != nil {
		return s.frameError("GetDesc1", err)
	}
	s.log.Debug("swapchain size", "width", w, "height", h)

	ctx := s.ctx
	ctx.ClearRenderTargetView(s.rtv, scene.Background)
	p.Bind(ctx)
	ctx.IASetPrimitiveTopology(gpu.TopologyTriangleStrip)

	t := scene.Triangle
	tri, err := g.Triangle(w, h, t[0], t[1], t[2], scene.TriangleColor)
	if err != nil {
		return s.frameError("triangle", err)
	}
	draw(ctx, tri)
	tri.Release()

	rect, err := g.Rectangle(w, h, scene.Rectangle, scene.RectColor)
	if err != nil {
		return s.frameError("rectangle", err)
	}
	draw(ctx, rect)
	rect.Release()

	return s.Present()
}

func draw(ctx gpu.DeviceContext, p *Primitive) {
	ctx.IASetVertexBuffers(p.VertexBuffer, p.Stride, p.Offset)
	ctx.IASetIndexBuffer(p.IndexBuffer, gpu.FormatR32UInt, 0)
	ctx.DrawIndexed(p.IndexCount, 0, 0)
}

// frameError ends a frame that failed before present.
func (s *Surface) frameError(op string, err error) (PresentResult, error) {
	if gpu.IsDeviceLost(err) {
		s.lost = true
		s.log.Warn("device removed or lost, need to recreate everything", "op", op, "err", err)
		return DeviceLost, nil
	}
	var re *Error
	if errors.As(err, &re) {
		return Presented, err
	}
	return Presented, newError(ErrResourceCreation, op, err)
}
