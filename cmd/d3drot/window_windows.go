package main

import (
	"context"
	"image"
	"log/slog"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"

	"github.com/kirides/d3drot/app"
	"github.com/kirides/d3drot/d3d"
	"github.com/kirides/d3drot/render"
)

// runWindow renders into a native window through Direct3D 11 until the
// window is closed. A lost device is replaced by a new renderer.
func runWindow(ctx context.Context, o options, log *slog.Logger) error {
	// D3D11 and the window must stay on the thread that created them.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	n := screenshot.NumActiveDisplays()
	if o.display < 0 || o.display >= n {
		return errors.Errorf("display %d not found, %d active", o.display, n)
	}
	screen := screenshot.GetDisplayBounds(o.display)
	width, height := app.RotatedClientSize(o.width, o.height, render.Rotate0, o.rotation)
	origin := screen.Min.Add(image.Pt(max(0, (screen.Dx()-width)/2), max(0, (screen.Dy()-height)/2)))

	if err := d3d.Load(); err != nil {
		return err
	}
	drv := d3d.New(log)

	window, err := app.NewWindow(app.Config{
		Title:    "d3drot",
		Bounds:   image.Rectangle{Min: origin, Max: origin.Add(image.Pt(width, height))},
		Rotation: o.rotation,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	// Frames are painted on demand, so ffmpeg timestamps them on arrival.
	rec, err := startRecorder(ctx, o, width, height, true, log)
	if err != nil {
		return err
	}
	if rec != nil {
		defer rec.Close()
	}
	pub := startPreview(ctx, o, log)

	window.Show()
	for {
		r, err := render.NewRenderer(drv, window, o.renderConfig(log))
		if err != nil {
			return err
		}
		window.SetRenderer(newTap(r, log, pub, rec))
		err = window.Run(ctx)
		window.SetRenderer(nil)

		if err == nil && o.snapshot != "" {
			err = captureSnapshot(window, o.snapshot)
		}
		r.Shutdown()
		if !errors.Is(err, render.ErrDeviceLost) || ctx.Err() != nil {
			return err
		}
		log.Warn("device lost, recreating the renderer", "err", err)
	}
}

// captureSnapshot saves what the screen shows over the window's client area.
func captureSnapshot(window *app.Window, path string) error {
	var img *image.RGBA
	if err := window.Capture(&img); err != nil {
		return errors.Wrap(err, "capture window")
	}
	return errors.Wrap(imaging.Save(img, path), "save snapshot")
}
