package soft

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// rasterizer fills triangles with golang.org/x/image/vector. Each triangle
// is shaded with the color of its first vertex.
type rasterizer struct {
	z *vector.Rasterizer
}

type point struct{ x, y float32 }

func (r *rasterizer) reset(size image.Point) *vector.Rasterizer {
	if r.z == nil {
		r.z = vector.NewRasterizer(size.X, size.Y)
	} else {
		r.z.Reset(size.X, size.Y)
	}
	r.z.DrawOp = draw.Over
	return r.z
}

func (r *rasterizer) triangle(dst *image.RGBA, clip image.Rectangle, t [3]vertex, wire bool) {
	src := image.NewUniform(t[0].c)
	if wire {
		for i := range t {
			a, b := t[i], t[(i+1)%3]
			r.fill(dst, clip, edgeQuad(point{a.x, a.y}, point{b.x, b.y}), src)
		}
		return
	}
	r.fill(dst, clip, []point{{t[0].x, t[0].y}, {t[1].x, t[1].y}, {t[2].x, t[2].y}}, src)
}

func (r *rasterizer) fill(dst *image.RGBA, clip image.Rectangle, poly []point, src image.Image) {
	poly = clipPolygon(poly, clip)
	if len(poly) < 3 {
		return
	}
	b := dst.Bounds()
	z := r.reset(b.Size())
	z.MoveTo(poly[0].x-float32(b.Min.X), poly[0].y-float32(b.Min.Y))
	for _, p := range poly[1:] {
		z.LineTo(p.x-float32(b.Min.X), p.y-float32(b.Min.Y))
	}
	z.ClosePath()
	z.Draw(dst, b, src, image.Point{})
}

// edgeQuad returns a one pixel wide quad along a→b.
func edgeQuad(a, b point) []point {
	dx, dy := b.x-a.x, b.y-a.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*0.5, dx/l*0.5
	return []point{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}
}

// clipPolygon clips a convex polygon against r (Sutherland-Hodgman).
func clipPolygon(poly []point, r image.Rectangle) []point {
	minX, minY := float32(r.Min.X), float32(r.Min.Y)
	maxX, maxY := float32(r.Max.X), float32(r.Max.Y)
	poly = clipEdge(poly, func(p point) float32 { return p.x - minX })
	poly = clipEdge(poly, func(p point) float32 { return maxX - p.x })
	poly = clipEdge(poly, func(p point) float32 { return p.y - minY })
	poly = clipEdge(poly, func(p point) float32 { return maxY - p.y })
	return poly
}

// clipEdge keeps the part of poly where dist is not negative.
func clipEdge(poly []point, dist func(point) float32) []point {
	if len(poly) == 0 {
		return nil
	}
	out := make([]point, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	dPrev := dist(prev)
	for _, cur := range poly {
		dCur := dist(cur)
		if (dCur >= 0) != (dPrev >= 0) {
			t := dPrev / (dPrev - dCur)
			out = append(out, point{prev.x + t*(cur.x-prev.x), prev.y + t*(cur.y-prev.y)})
		}
		if dCur >= 0 {
			out = append(out, cur)
		}
		prev, dPrev = cur, dCur
	}
	return out
}
