package d3d

import (
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/kirides/d3drot/gpu"
)

type SwapChain struct {
	com *IDXGISwapChain1
	dev *Device
	log *slog.Logger

	stage readbackStage
}

func (sc *SwapChain) Desc() (gpu.SwapChainDesc, error) {
	var desc _DXGI_SWAP_CHAIN_DESC1
	if err := check("GetDesc1", sc.com.GetDesc1(&desc)); err != nil {
		return gpu.SwapChainDesc{}, err
	}
	return gpu.SwapChainDesc{
		Width:         desc.Width,
		Height:        desc.Height,
		Format:        gpu.Format(desc.Format),
		Stereo:        desc.Stereo != 0,
		SampleCount:   desc.SampleDesc.Count,
		SampleQuality: desc.SampleDesc.Quality,
		BufferUsage:   desc.BufferUsage,
		BufferCount:   desc.BufferCount,
		Scaling:       gpu.Scaling(desc.Scaling),
		SwapEffect:    gpu.SwapEffect(desc.SwapEffect),
		AlphaMode:     desc.AlphaMode,
		Flags:         gpu.SwapChainFlag(desc.Flags),
	}, nil
}

func (sc *SwapChain) ResizeBuffers(count, width, height uint32, format gpu.Format, flags gpu.SwapChainFlag) error {
	return sc.deviceError("ResizeBuffers", sc.com.ResizeBuffers(count, width, height, uint32(format), uint32(flags)))
}

func (sc *SwapChain) Buffer(i uint32) (gpu.Texture2D, error) {
	var tex *ID3D11Texture2D
	if err := check("GetBuffer", sc.com.GetBuffer(i, &iid_ID3D11Texture2D, unsafe.Pointer(&tex))); err != nil {
		return nil, err
	}
	return &Texture2D{com: tex}, nil
}

// Present goes through Present1 with no dirty rectangles. Success codes
// other than S_OK, such as DXGI_STATUS_OCCLUDED, are returned as errors so
// callers can tell them apart.
func (sc *SwapChain) Present(syncInterval, flags uint32) error {
	var params _DXGI_PRESENT_PARAMETERS
	hr := sc.com.Present1(syncInterval, flags, &params)
	if hr == 0 {
		return nil
	}
	return sc.deviceError("Present1", hr)
}

// deviceError wraps a failing hr. When the device is gone the removal
// reason is logged, since the returned code only says that it is gone.
func (sc *SwapChain) deviceError(op string, hr int32) error {
	if hr == 0 {
		return nil
	}
	err := errors.Wrap(gpu.ErrorCode(uint32(hr)), op)
	if gpu.IsDeviceLost(err) && sc.dev.com != nil {
		sc.log.Warn("device removed", "op", op, "reason", sc.dev.RemovedReason())
	}
	return err
}

func (sc *SwapChain) SetFullscreenState(fullscreen bool) error {
	return check("SetFullscreenState", sc.com.SetFullscreenState(boolToBOOL(fullscreen), nil))
}

func (sc *SwapChain) Release() {
	sc.stage.Release()
	release(sc.com)
	sc.com = nil
}
