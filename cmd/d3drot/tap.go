package main

import (
	"log/slog"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/preview"
	"github.com/kirides/d3drot/render"
)

type frameSink interface {
	Capture(rb gpu.Readback, width, height int) error
}

// tap forwards every presented frame of a renderer to the preview and the
// recorder.
type tap struct {
	*render.Renderer
	log   *slog.Logger
	sinks []frameSink
}

func newTap(r *render.Renderer, log *slog.Logger, pub *preview.Publisher, rec *preview.Recorder) *tap {
	t := &tap{Renderer: r, log: log}
	if pub != nil {
		t.sinks = append(t.sinks, pub)
	}
	if rec != nil {
		t.sinks = append(t.sinks, rec)
	}
	return t
}

func (t *tap) RenderFrame() (render.PresentResult, error) {
	res, err := t.Renderer.RenderFrame()
	if err != nil || res != render.Presented || len(t.sinks) == 0 {
		return res, err
	}
	s := t.Surface()
	if s == nil {
		return res, nil
	}
	rb, ok := s.SwapChain().(gpu.Readback)
	if !ok {
		return res, nil
	}
	size := s.RenderTargetSize()
	for _, sink := range t.sinks {
		if err := sink.Capture(rb, size.X, size.Y); err != nil {
			t.log.Warn("frame capture failed", "err", err)
		}
	}
	return res, nil
}
