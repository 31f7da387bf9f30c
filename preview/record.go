package preview

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/internal/logging"
)

// Recorder pipes raw RGBA frames into an ffmpeg process that encodes them
// to a video file. The frame size is fixed when the recorder starts.
type Recorder struct {
	log     *slog.Logger
	cmd     *exec.Cmd
	in      io.WriteCloser
	size    image.Point
	img     *image.RGBA
	limiter *FrameLimiter
	n       int
}

// RecordConfig configures a Recorder.
type RecordConfig struct {
	Path          string
	Width, Height int
	// FPS is the frame rate of the input. With WallClock it only caps how
	// many frames are written.
	FPS int
	// WallClock timestamps every frame when ffmpeg receives it, for input
	// that arrives at an irregular rate, such as frames painted on demand.
	WallClock bool
	Logger    *slog.Logger
}

func ffmpegArgs(cfg RecordConfig) []string {
	args := []string{
		"-y",
		"-vsync", "0",
		"-f", "rawvideo",
		"-video_size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-pixel_format", "rgba",
	}
	if cfg.WallClock {
		args = append(args, "-use_wallclock_as_timestamps", "1")
	} else {
		args = append(args, "-framerate", fmt.Sprintf("%f", float32(cfg.FPS)))
	}
	return append(args,
		"-i", "-",
		"-c:v", "libx264", "-preset", "ultrafast",
		"-crf", "26",
		"-tune", "zerolatency",
		cfg.Path,
	)
}

// NewRecorder starts ffmpeg writing a cfg.Width×cfg.Height video to
// cfg.Path.
func NewRecorder(ctx context.Context, cfg RecordConfig) (*Recorder, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", ffmpegArgs(cfg)...)
	wc, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "ffmpeg stdin")
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "start ffmpeg")
	}
	r := newRecorder(wc, cfg)
	r.cmd = cmd
	r.log.Info("recording", "path", cfg.Path, "width", cfg.Width, "height", cfg.Height,
		"fps", cfg.FPS, "wallclock", cfg.WallClock)
	return r, nil
}

func newRecorder(wc io.WriteCloser, cfg RecordConfig) *Recorder {
	r := &Recorder{
		log:  logging.OrNop(cfg.Logger),
		in:   wc,
		size: image.Pt(cfg.Width, cfg.Height),
	}
	if cfg.WallClock {
		r.limiter = NewFrameLimiter(cfg.FPS)
	}
	return r
}

// Write appends one frame. Frames of a different size are rejected.
func (r *Recorder) Write(img *image.RGBA) error {
	if img.Rect.Size() != r.size {
		return errors.Wrapf(gpu.E_INVALIDARG, "frame %v, recording %v", img.Rect.Size(), r.size)
	}
	pix := img.Pix
	if img.Stride != 4*r.size.X {
		pix = make([]byte, 0, 4*r.size.X*r.size.Y)
		for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
			off := img.PixOffset(img.Rect.Min.X, y)
			pix = append(pix, img.Pix[off:off+4*r.size.X]...)
		}
	}
	n, err := r.in.Write(pix)
	if err != nil {
		return errors.Wrap(err, "write frame")
	}
	if n != len(pix) {
		return errors.Wrap(io.ErrShortWrite, "write frame")
	}
	r.n++
	return nil
}

// Capture reads back the last presented frame of rb and writes it. A swap
// chain whose size no longer matches the recording is skipped.
func (r *Recorder) Capture(rb gpu.Readback, width, height int) error {
	if width != r.size.X || height != r.size.Y {
		r.log.Debug("recording frame skipped", "width", width, "height", height)
		return nil
	}
	if r.limiter != nil && !r.limiter.Allow() {
		return nil
	}
	if r.img == nil {
		r.img = image.NewRGBA(image.Rectangle{Max: r.size})
	}
	if err := rb.ReadBackBuffer(r.img); err != nil {
		return errors.Wrap(err, "read back frame")
	}
	return r.Write(r.img)
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int { return r.n }

// Close ends the input stream and waits for ffmpeg to finish the file.
func (r *Recorder) Close() error {
	err := r.in.Close()
	if r.cmd != nil {
		if werr := r.cmd.Wait(); werr != nil && err == nil {
			err = errors.Wrap(werr, "ffmpeg")
		}
	}
	r.log.Info("recording closed", "frames", r.n)
	return err
}
