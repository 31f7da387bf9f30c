package d3d

import (
	"image"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/internal/swizzle"
)

// readbackStage is a CPU-readable copy of a swap chain buffer.
type readbackStage struct {
	tex     *ID3D11Texture2D
	surface *IDXGISurface
	size    POINT
}

func (st *readbackStage) initialize(dev *ID3D11Device, src *ID3D11Texture2D) int32 {
	desc := _D3D11_TEXTURE2D_DESC{}
	src.GetDesc(&desc)
	if st.tex != nil && st.size == (POINT{X: int32(desc.Width), Y: int32(desc.Height)}) {
		return 0
	}
	st.Release()

	desc.Usage = D3D11_USAGE_STAGING
	desc.CPUAccessFlags = D3D11_CPU_ACCESS_READ
	desc.BindFlags = 0
	desc.MipLevels = 1
	desc.ArraySize = 1
	desc.MiscFlags = 0
	desc.SampleDesc.Count = 1

	hr := dev.CreateTexture2D(&desc, &st.tex)
	if failed(hr) {
		return hr
	}

	hr = unknown(st.tex).QueryInterface(&iid_IDXGISurface, unsafe.Pointer(&st.surface))
	if failed(hr) {
		st.Release()
		return hr
	}
	st.size = POINT{X: int32(desc.Width), Y: int32(desc.Height)}
	return 0
}

func (st *readbackStage) Release() {
	if st.surface != nil {
		release(st.surface)
		st.surface = nil
	}
	if st.tex != nil {
		release(st.tex)
		st.tex = nil
	}
}

// ReadBackBuffer copies the most recently presented buffer into dst, which
// must have the swap chain's size. Flip model swap chains keep it at the
// highest buffer index.
func (sc *SwapChain) ReadBackBuffer(dst *image.RGBA) error {
	desc, err := sc.Desc()
	if err != nil {
		return err
	}
	if dst.Rect.Dx() != int(desc.Width) || dst.Rect.Dy() != int(desc.Height) {
		return errors.Wrapf(gpu.E_INVALIDARG, "readback into %v, swap chain is %dx%d", dst.Rect, desc.Width, desc.Height)
	}

	var front *ID3D11Texture2D
	hr := sc.com.GetBuffer(desc.BufferCount-1, &iid_ID3D11Texture2D, unsafe.Pointer(&front))
	if err := check("GetBuffer", hr); err != nil {
		return err
	}
	defer release(front)

	if err := check("CreateTexture2D(staging)", sc.stage.initialize(sc.dev.com, front)); err != nil {
		return err
	}
	sc.dev.ctx.com.CopyResource(unknown(sc.stage.tex), unknown(front))

	var rect DXGI_MAPPED_RECT
	if err := check("IDXGISurface.Map", sc.stage.surface.Map(&rect, DXGI_MAP_READ)); err != nil {
		return err
	}
	defer sc.stage.surface.Unmap()

	w, h := int(sc.stage.size.X), int(sc.stage.size.Y)
	pitch := int(rect.Pitch)
	bgra := unsafe.Slice((*byte)(rect.PBits), pitch*h)
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		copy(row, bgra[y*pitch:y*pitch+w*4])
	}
	swizzle.BGRARows(dst.Pix, w, dst.Stride)
	return nil
}
