package render

import (
	"github.com/pkg/errors"
)

// Failure kinds. Every error returned by this package that stems from a GPU
// call is an *Error whose Kind is one of these, so errors.Is(err,
// ErrDeviceLost) holds through any wrapping.
var (
	// ErrResourceCreation: creating the device, factory, swap chain or a
	// pipeline object failed. Fatal at startup.
	ErrResourceCreation = errors.New("resource creation failed")
	// ErrShaderCompile: the shader source is missing or does not compile.
	// The cause is a *gpu.CompileError with the compiler output.
	ErrShaderCompile = errors.New("shader compile failed")
	// ErrResizeTransient: resizing the swap chain failed for a reason that
	// does not invalidate the device. The next resize may succeed.
	ErrResizeTransient = errors.New("resize failed")
	// ErrDeviceLost: the device was removed or reset. The renderer must be
	// shut down and created again.
	ErrDeviceLost = errors.New("device lost")
)

var (
	ErrNotInitialized = errors.New("renderer not initialized")
	ErrNoRenderTarget = errors.New("no render target: resize has not completed")
	// ErrRenderTargetLost: a resize failed and the previous back buffer
	// could not be bound again. The next successful resize recovers.
	ErrRenderTargetLost = errors.New("no render target: last resize failed")
)

// Error records the operation that failed and why.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

func newError(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func creationError(op string, err error) error {
	return newError(ErrResourceCreation, op, err)
}
