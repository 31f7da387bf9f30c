// Package preview publishes presented frames as an MJPEG stream and can
// record them through ffmpeg.
package preview

import (
	"context"
	"image"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mattn/go-mjpeg"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/internal/logging"
)

// Config configures a Publisher.
type Config struct {
	// FPS caps how many frames per second are read back. Zero publishes
	// every frame.
	FPS int
	// Width and Height bound the published frame; larger frames are scaled
	// down keeping their aspect ratio. Zero leaves that axis unbounded.
	Width, Height uint
	// Quality is the JPEG quality, 1 to 100. Zero means 75.
	Quality int
	Logger  *slog.Logger
}

type sink interface {
	Update(b []byte) error
}

// Publisher turns swap chain frames into JPEG stream updates. Capture is
// called on the render thread; encoding happens in Run.
type Publisher struct {
	log     *slog.Logger
	cfg     Config
	limiter *FrameLimiter
	out     sink
	stream  *mjpeg.Stream

	frames chan *image.RGBA
	free   chan *image.RGBA
}

// NewPublisher returns a publisher backed by a new mjpeg.Stream.
func NewPublisher(cfg Config) *Publisher {
	stream := mjpeg.NewStream()
	p := newPublisher(cfg, stream)
	p.stream = stream
	return p
}

func newPublisher(cfg Config, out sink) *Publisher {
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = 75
	}
	return &Publisher{
		log:     logging.OrNop(cfg.Logger),
		cfg:     cfg,
		limiter: NewFrameLimiter(cfg.FPS),
		out:     out,
		frames:  make(chan *image.RGBA, 1),
		free:    make(chan *image.RGBA, 2),
	}
}

// Capture reads back the last presented frame of rb when the frame limiter
// allows it and queues it for encoding. A frame is dropped when the encoder
// is still busy with the previous one.
func (p *Publisher) Capture(rb gpu.Readback, width, height int) error {
	if width <= 0 || height <= 0 || !p.limiter.Allow() {
		return nil
	}
	img := p.buffer(width, height)
	if err := rb.ReadBackBuffer(img); err != nil {
		p.recycle(img)
		return errors.Wrap(err, "read back frame")
	}
	p.Offer(img)
	return nil
}

// Offer queues img for encoding. The publisher takes ownership of img.
func (p *Publisher) Offer(img *image.RGBA) {
	select {
	case p.frames <- img:
	default:
		p.log.Debug("preview frame dropped")
		p.recycle(img)
	}
}

func (p *Publisher) buffer(width, height int) *image.RGBA {
	select {
	case img := <-p.free:
		if img.Rect.Dx() == width && img.Rect.Dy() == height {
			return img
		}
	default:
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (p *Publisher) recycle(img *image.RGBA) {
	select {
	case p.free <- img:
	default:
	}
}

// Run encodes queued frames until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	buf := &bufferFlusher{}
	opts := jpegQuality(p.cfg.Quality)
	for {
		select {
		case <-ctx.Done():
			return
		case img := <-p.frames:
			if err := p.publish(buf, img, opts); err != nil {
				p.log.Warn("publish preview frame", "err", err)
			}
			p.recycle(img)
		}
	}
}

func (p *Publisher) publish(buf *bufferFlusher, img *image.RGBA, opts *jpegOptions) error {
	buf.Reset()
	if err := encodeJpeg(buf, p.scale(img), opts); err != nil {
		return errors.Wrap(err, "encode jpeg")
	}
	return p.out.Update(buf.Bytes())
}

func (p *Publisher) scale(img *image.RGBA) image.Image {
	w, h := p.cfg.Width, p.cfg.Height
	if w == 0 && h == 0 {
		return img
	}
	b := img.Bounds()
	if (w == 0 || uint(b.Dx()) <= w) && (h == 0 || uint(b.Dy()) <= h) {
		return img
	}
	if w == 0 {
		w = uint(b.Dx())
	}
	if h == 0 {
		h = uint(b.Dy())
	}
	return resize.Thumbnail(w, h, img, resize.Bilinear)
}

// Handler serves the watch page at /watch and the stream at /mjpeg.
func (p *Publisher) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", p.serveWatch)
	if p.stream != nil {
		mux.Handle("/mjpeg", p.stream)
	}
	return mux
}

func (p *Publisher) serveWatch(w http.ResponseWriter, r *http.Request) {
	title := "d3drot"
	if fps := p.cfg.FPS; fps > 0 {
		title += " @ " + strconv.Itoa(fps) + " fps"
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(`<head>
		<meta charset="UTF-8">
		<meta http-equiv="X-UA-Compatible" content="IE=edge">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>` + title + `</title>
	</head>
		<body style="margin:0">
	<img src="/mjpeg" style="max-width: 100vw; max-height: 100vh;object-fit: contain;display: block;margin: 0 auto;" />
</body>`))
}

// Close stops the stream. Clients blocked on it are released.
func (p *Publisher) Close() error {
	if p.stream == nil {
		return nil
	}
	return p.stream.Close()
}
