package render

import (
	"log/slog"
	"os"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/internal/logging"
)

// Renderer is what the window talks to: it owns a Surface and a Pipeline
// and draws the scene. It is not safe for concurrent use; the window's
// event loop must call Resize, RenderFrame and Shutdown from one goroutine,
// and must call Resize at least once before the first RenderFrame.
type Renderer struct {
	log      *slog.Logger
	debug    bool
	scene    Scene
	surface  *Surface
	pipeline *Pipeline
}

// NewRenderer creates the surface for win and the pipeline from the shader
// at cfg.ShaderPath. Nothing is left allocated when it fails.
func NewRenderer(drv gpu.Driver, win Window, cfg Config) (*Renderer, error) {
	log := logging.OrNop(cfg.Logger)

	surface, err := NewSurface(drv, win, cfg)
	if err != nil {
		return nil, err
	}

	path := cfg.shaderPath()
	src := cfg.ShaderSource
	if src == nil {
		if src, err = os.ReadFile(path); err != nil {
			surface.Release()
			return nil, newError(ErrShaderCompile, "read "+path, err)
		}
	}
	pipeline, err := NewPipeline(drv, surface.device, src, path, cfg.Debug)
	if err != nil {
		surface.Release()
		return nil, err
	}

	log.Info("renderer ready", "shader", path, "debug", cfg.Debug)
	return &Renderer{
		log:      log,
		debug:    cfg.Debug,
		scene:    cfg.scene(),
		surface:  surface,
		pipeline: pipeline,
	}, nil
}

// Resize handles a change of client size or rotation.
func (r *Renderer) Resize(width, height int, rot Rotation) error {
	if r.surface == nil {
		return ErrNotInitialized
	}
	return r.surface.Resize(r.pipeline, width, height, rot)
}

// RenderFrame draws and presents one frame.
func (r *Renderer) RenderFrame() (PresentResult, error) {
	if r.surface == nil {
		return Presented, ErrNotInitialized
	}
	return RenderFrame(r.surface, r.pipeline, Geometry{Device: r.surface.device}, r.scene)
}

// Size returns the current back buffer size.
func (r *Renderer) Size() (width, height int, err error) {
	if r.surface == nil {
		return 0, 0, ErrNotInitialized
	}
	return r.surface.Size()
}

// Lost reports whether the device was lost. A lost renderer must be shut
// down and created again.
func (r *Renderer) Lost() bool {
	return r.surface != nil && r.surface.Lost()
}

// Surface returns the surface, nil after Shutdown.
func (r *Renderer) Surface() *Surface { return r.surface }

// Shutdown releases the pipeline and then the surface. With the debug layer
// on, the objects still alive afterwards are reported. Calling it twice is
// harmless.
func (r *Renderer) Shutdown() {
	var dbg gpu.Debug
	if r.debug && r.surface != nil && r.surface.device != nil {
		d, err := r.surface.device.Debug()
		if err != nil {
			r.log.Debug("debug interface unavailable", "err", err)
		} else {
			dbg = d
		}
	}

	r.pipeline.Release()
	r.pipeline = nil
	r.surface.Release()
	r.surface = nil

	if dbg != nil {
		if err := dbg.ReportLiveObjects(gpu.ReportDetail); err != nil {
			r.log.Debug("ReportLiveDeviceObjects failed", "err", err)
		}
		dbg.Release()
	}
	r.log.Info("renderer shut down")
}
