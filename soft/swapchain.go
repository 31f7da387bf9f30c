package soft

import (
	"image"
	"image/draw"

	"github.com/kirides/d3drot/gpu"
)

// SwapChain is a flip-model swap chain. Buffer 0 is always the current back
// buffer; Present hands it to the screen and rotates the next buffer in.
type SwapChain struct {
	*object
	dev  *Device
	desc gpu.SwapChainDesc
	fs   gpu.FullscreenDesc

	buffers    []*image.RGBA
	back       int
	front      *image.RGBA
	refs       int
	fullscreen bool
	presents   int
}

func (sc *SwapChain) allocate() {
	r := image.Rect(0, 0, int(sc.desc.Width), int(sc.desc.Height))
	sc.buffers = make([]*image.RGBA, sc.desc.BufferCount)
	for i := range sc.buffers {
		sc.buffers[i] = image.NewRGBA(r)
	}
	sc.back = 0
	sc.front = image.NewRGBA(r)
}

func (sc *SwapChain) backBuffer() *image.RGBA { return sc.buffers[sc.back] }

func (sc *SwapChain) Desc() (gpu.SwapChainDesc, error) {
	if err := sc.drv.fault(CallGetDesc); err != nil {
		return gpu.SwapChainDesc{}, err
	}
	return sc.desc, nil
}

// ResizeBuffers fails with DXGI_ERROR_INVALID_CALL while any reference to a
// back buffer, including a render target view, is alive.
func (sc *SwapChain) ResizeBuffers(count, width, height uint32, format gpu.Format, flags gpu.SwapChainFlag) error {
	if err := sc.drv.fault(CallResizeBuffers); err != nil {
		return err
	}
	if sc.dev.removed != nil {
		return sc.dev.removed
	}
	if sc.refs > 0 {
		sc.drv.violate("ResizeBuffers with %d outstanding back buffer references", sc.refs)
		return gpu.DXGI_ERROR_INVALID_CALL
	}
	if count != 0 {
		if count < 2 {
			return gpu.DXGI_ERROR_INVALID_CALL
		}
		sc.desc.BufferCount = count
	}
	if format != gpu.FormatUnknown {
		sc.desc.Format = format
	}
	if width != 0 {
		sc.desc.Width = width
	}
	if height != 0 {
		sc.desc.Height = height
	}
	sc.desc.Flags = flags
	sc.allocate()
	return nil
}

func (sc *SwapChain) Buffer(i uint32) (gpu.Texture2D, error) {
	if err := sc.drv.fault(CallGetBuffer); err != nil {
		return nil, err
	}
	if i >= sc.desc.BufferCount {
		return nil, gpu.DXGI_ERROR_INVALID_CALL
	}
	sc.refs++
	return &Texture{
		object: sc.drv.track(KindTexture),
		sc:     sc,
		index:  i,
		desc:   gpu.Texture2DDesc{Width: sc.desc.Width, Height: sc.desc.Height, Format: sc.desc.Format},
	}, nil
}

func (sc *SwapChain) Present(syncInterval uint32, flags uint32) error {
	if err := sc.drv.fault(CallPresent); err != nil {
		return err
	}
	if sc.dev.removed != nil {
		return sc.dev.removed
	}
	if syncInterval > 4 {
		return gpu.DXGI_ERROR_INVALID_CALL
	}
	if sc.drv.occluded {
		return gpu.DXGI_STATUS_OCCLUDED
	}
	back := sc.backBuffer()
	draw.Draw(sc.front, sc.front.Bounds(), back, image.Point{}, draw.Src)
	sc.back = (sc.back + 1) % len(sc.buffers)
	sc.presents++
	return nil
}

func (sc *SwapChain) SetFullscreenState(fullscreen bool) error {
	if err := sc.drv.fault(CallSetFullscreenState); err != nil {
		return err
	}
	if sc.dev.removed != nil {
		return sc.dev.removed
	}
	sc.fullscreen = fullscreen
	return nil
}

// FullscreenDesc returns the fullscreen description the swap chain was
// created with.
func (sc *SwapChain) FullscreenDesc() gpu.FullscreenDesc { return sc.fs }

// Fullscreen reports the state last set by SetFullscreenState.
func (sc *SwapChain) Fullscreen() bool { return sc.fullscreen }

// Presents returns the number of frames that reached the screen.
func (sc *SwapChain) Presents() int { return sc.presents }

// Screen returns a copy of the last presented frame.
func (sc *SwapChain) Screen() *image.RGBA {
	img := image.NewRGBA(sc.front.Bounds())
	copy(img.Pix, sc.front.Pix)
	return img
}

// ReadBackBuffer copies the most recently presented frame into dst, which
// must have the swap chain's size.
func (sc *SwapChain) ReadBackBuffer(dst *image.RGBA) error {
	if sc.dev.removed != nil {
		return sc.dev.removed
	}
	if dst.Bounds().Size() != sc.front.Bounds().Size() {
		return gpu.E_INVALIDARG
	}
	draw.Draw(dst, dst.Bounds(), sc.front, sc.front.Bounds().Min, draw.Src)
	return nil
}

func (sc *SwapChain) Release() {
	if sc.refs > 0 && sc.alive() {
		sc.drv.violate("swap chain released with %d outstanding back buffer references", sc.refs)
	}
	sc.release()
}
