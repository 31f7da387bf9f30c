// Command d3drot draws a triangle and a rectangle into a window through
// Direct3D 11 and rotates the picture in quarter turns.
//
// Keys: R rotates, F toggles fullscreen, U redraws, Q quits. With -headless
// the software driver renders a fixed number of frames without a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/kirides/d3drot/preview"
	"github.com/kirides/d3drot/render"
)

type options struct {
	vsync    bool
	debug    bool
	shader   string
	width    int
	height   int
	rotation render.Rotation
	display  int
	verbose  bool

	headless    bool
	frames      int
	fps         int
	rotateEvery int
	snapshot    string
	record      string

	preview       string
	previewFPS    int
	previewWidth  uint
	previewHeight uint
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.BoolVar(&o.vsync, "vsync", true, "present on the vertical blank")
	fs.BoolVar(&o.debug, "debug", false, "enable the D3D11 debug layer and report live objects on exit")
	fs.StringVar(&o.shader, "shader", render.DefaultShaderPath, "HLSL source with main_vs and main_ps")
	fs.IntVar(&o.width, "width", 800, "client width before rotation")
	fs.IntVar(&o.height, "height", 480, "client height before rotation")
	rotation := fs.String("rotation", "0", "initial rotation: 0-3 quarter turns or 0/90/180/270 degrees")
	fs.IntVar(&o.display, "display", 0, "display the window opens on")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	fs.BoolVar(&o.headless, "headless", false, "render with the software driver, without a window")
	fs.IntVar(&o.frames, "frames", 1, "headless: frames to render, 0 renders until interrupted")
	fs.IntVar(&o.fps, "fps", 60, "headless: frames per second, 0 renders as fast as possible; also caps -record")
	fs.IntVar(&o.rotateEvery, "rotate-every", 0, "headless: rotate a quarter turn every n frames")
	fs.StringVar(&o.snapshot, "snapshot", "", "save the last frame to this image file on exit")
	fs.StringVar(&o.record, "record", "", "record the frames to this video file through ffmpeg")

	fs.StringVar(&o.preview, "preview", "", "serve an MJPEG preview on this address, e.g. 127.0.0.1:8023")
	fs.IntVar(&o.previewFPS, "preview-fps", 15, "preview frames per second")
	fs.UintVar(&o.previewWidth, "preview-width", 1920, "maximum preview width")
	fs.UintVar(&o.previewHeight, "preview-height", 1080, "maximum preview height")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	rot, err := render.ParseRotation(*rotation)
	if err != nil {
		return o, err
	}
	o.rotation = rot
	if o.width <= 0 || o.height <= 0 {
		return o, errors.Errorf("invalid size %dx%d", o.width, o.height)
	}
	if o.frames < 0 || o.rotateEvery < 0 {
		return o, errors.New("-frames and -rotate-every must not be negative")
	}
	return o, nil
}

func (o options) renderConfig(log *slog.Logger) render.Config {
	return render.Config{
		VSync:      o.vsync,
		Debug:      o.debug,
		ShaderPath: o.shader,
		Logger:     log,
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	o, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := newLogger(o.verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if o.headless {
		err = runHeadless(ctx, o, log)
	} else {
		err = runWindow(ctx, o, log)
	}
	if err != nil {
		log.Error("d3drot failed", "err", err)
		os.Exit(1)
	}
}

// startPreview serves a publisher on o.preview until ctx is done. It returns
// nil when no preview was requested.
func startPreview(ctx context.Context, o options, log *slog.Logger) *preview.Publisher {
	if o.preview == "" {
		return nil
	}
	pub := preview.NewPublisher(preview.Config{
		FPS:    o.previewFPS,
		Width:  o.previewWidth,
		Height: o.previewHeight,
		Logger: log,
	})
	srv := &http.Server{Addr: o.preview, Handler: pub.Handler()}

	go pub.Run(ctx)
	go func() {
		log.Info("preview listening", "url", "http://"+o.preview+"/watch")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("preview server", "err", err)
		}
	}()
	context.AfterFunc(ctx, func() {
		pub.Close()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(sctx)
	})
	return pub
}
