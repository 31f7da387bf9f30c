package preview

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/d3drot/gpu"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestFFmpegArgs(t *testing.T) {
	args := ffmpegArgs(RecordConfig{Path: "out.mp4", Width: 640, Height: 480, FPS: 30})
	assert.Equal(t, "out.mp4", args[len(args)-1])
	assert.Contains(t, args, "640x480")
	assert.Contains(t, args, "rgba")
	assert.Contains(t, args, "30.000000")
	assert.NotContains(t, args, "-use_wallclock_as_timestamps")
}

func TestFFmpegArgsWallClock(t *testing.T) {
	args := ffmpegArgs(RecordConfig{Path: "out.mp4", Width: 640, Height: 480, FPS: 30, WallClock: true})
	assert.Contains(t, args, "-use_wallclock_as_timestamps")
	assert.NotContains(t, args, "-framerate")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestRecorderWallClockLimited(t *testing.T) {
	var out bufferCloser
	r := newRecorder(&out, RecordConfig{Width: 2, Height: 2, FPS: 1, WallClock: true})
	rb := &solidReadback{c: color.RGBA{A: 255}}

	require.NoError(t, r.Capture(rb, 2, 2))
	require.NoError(t, r.Capture(rb, 2, 2))
	assert.Equal(t, 1, r.Frames())
	assert.Equal(t, 1, rb.calls)
}

func TestRecorderWrite(t *testing.T) {
	var out bufferCloser
	r := newRecorder(&out, RecordConfig{Width: 4, Height: 2})

	rb := &solidReadback{c: color.RGBA{R: 1, G: 2, B: 3, A: 255}}
	require.NoError(t, r.Capture(rb, 4, 2))
	require.NoError(t, r.Capture(rb, 4, 2))
	assert.Equal(t, 2*4*2*4, out.Len())
	assert.Equal(t, []byte{1, 2, 3, 255}, out.Bytes()[:4])

	// Resized swap chains are skipped, not written.
	require.NoError(t, r.Capture(rb, 2, 4))
	assert.Equal(t, 2, r.Frames())
	assert.Equal(t, 2, rb.calls)

	require.NoError(t, r.Close())
	assert.True(t, out.closed)
}

func TestRecorderWriteSubImage(t *testing.T) {
	var out bufferCloser
	r := newRecorder(&out, RecordConfig{Width: 2, Height: 2})

	big := image.NewRGBA(image.Rect(0, 0, 4, 4))
	big.SetRGBA(1, 1, color.RGBA{R: 9, A: 255})
	sub := big.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	require.NoError(t, r.Write(sub))
	assert.Equal(t, 16, out.Len())
	assert.Equal(t, []byte{9, 0, 0, 255}, out.Bytes()[:4])

	err := r.Write(big)
	assert.ErrorIs(t, err, gpu.E_INVALIDARG)
}
