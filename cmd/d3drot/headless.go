package main

import (
	"context"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/kirides/d3drot/app"
	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/preview"
	"github.com/kirides/d3drot/render"
	"github.com/kirides/d3drot/soft"
)

func startRecorder(ctx context.Context, o options, width, height int, wallclock bool, log *slog.Logger) (*preview.Recorder, error) {
	if o.record == "" {
		return nil, nil
	}
	return preview.NewRecorder(ctx, preview.RecordConfig{
		Path:      o.record,
		Width:     width,
		Height:    height,
		FPS:       o.fps,
		WallClock: wallclock,
		Logger:    log,
	})
}

// runHeadless renders o.frames frames with the software driver into a
// virtual window, rotating every o.rotateEvery frames.
func runHeadless(ctx context.Context, o options, log *slog.Logger) error {
	drv := soft.New()
	drv.Logger = log
	drv.NoCallLog = true

	rot := o.rotation
	width, height := app.RotatedClientSize(o.width, o.height, render.Rotate0, rot)
	window := soft.NewWindow(width, height)

	r, err := render.NewRenderer(drv, window, o.renderConfig(log))
	if err != nil {
		return err
	}
	defer r.Shutdown()

	rec, err := startRecorder(ctx, o, width, height, false, log)
	if err != nil {
		return err
	}
	if rec != nil {
		defer rec.Close()
	}
	t := newTap(r, log, startPreview(ctx, o, log), rec)

	if err := t.Resize(width, height, rot); err != nil {
		return err
	}
	limiter := preview.NewFrameLimiter(o.fps)
	presented := 0
	for i := 0; o.frames == 0 || i < o.frames; i++ {
		if ctx.Err() != nil {
			break
		}
		if o.rotateEvery > 0 && i > 0 && i%o.rotateEvery == 0 {
			next := rot.Next()
			width, height = app.RotatedClientSize(width, height, rot, next)
			window.SetClientSize(width, height)
			rot = next
			log.Debug("rotate", "rotation", rot.String(), "width", width, "height", height)
			if err := t.Resize(width, height, rot); err != nil {
				return err
			}
		}
		res, err := t.RenderFrame()
		if err != nil {
			return err
		}
		switch res {
		case render.DeviceLost:
			return render.ErrDeviceLost
		case render.Presented:
			presented++
		}
		limiter.Wait()
	}
	log.Info("headless run done", "presented", presented, "rotation", rot.String())

	if o.snapshot != "" {
		return saveSnapshot(r, o.snapshot)
	}
	return nil
}

// saveSnapshot writes the last presented frame of r to path. The format
// follows the file extension.
func saveSnapshot(r *render.Renderer, path string) error {
	s := r.Surface()
	rb, ok := s.SwapChain().(gpu.Readback)
	if !ok {
		return errors.New("swap chain does not support readback")
	}
	img := image.NewRGBA(image.Rectangle{Max: s.RenderTargetSize()})
	if err := rb.ReadBackBuffer(img); err != nil {
		return errors.Wrap(err, "read back frame")
	}
	return errors.Wrap(imaging.Save(img, path), "save snapshot")
}
