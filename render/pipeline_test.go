package render

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/shaders"
	"github.com/kirides/d3drot/soft"
)

func TestNewPipeline(t *testing.T) {
	drv := soft.New()
	dev, ctx := newTestDevice(t, drv)

	p, err := NewPipeline(drv, dev, shaders.Source, "shader.hlsl", false)
	require.NoError(t, err)
	assert.Equal(t, map[soft.Kind]int{
		soft.KindDevice:          1,
		soft.KindContext:         1,
		soft.KindRasterizerState: 1,
		soft.KindVertexShader:    1,
		soft.KindInputLayout:     1,
		soft.KindPixelShader:     1,
		soft.KindBuffer:          1,
	}, drv.Live())

	cb := p.constants.(*soft.Buffer)
	assert.Equal(t, uint32(TransformSize), cb.Desc().ByteWidth)
	assert.Equal(t, gpu.UsageDynamic, cb.Desc().Usage)
	assert.Equal(t, gpu.BindConstantBuffer, cb.Desc().BindFlags)

	require.NoError(t, p.WriteRotation(ctx, RotationTransform(Rotate270)))
	var got [8]float32
	for i := range got {
		got[i] = math.Float32frombits(binary.LittleEndian.Uint32(cb.Bytes()[i*4:]))
	}
	assert.Equal(t, [8]float32{0, 1, 0, 0, -1, 0, 2, 0}, got)

	drv.ResetCalls()
	p.Bind(ctx)
	assert.Equal(t, []string{
		"IASetInputLayout", "VSSetShader", "VSSetConstantBuffers", "RSSetState", "PSSetShader",
	}, drv.Calls())

	drv.ResetReleases()
	p.Release()
	assert.Equal(t, []soft.Kind{
		soft.KindBuffer,
		soft.KindPixelShader,
		soft.KindInputLayout,
		soft.KindVertexShader,
		soft.KindRasterizerState,
	}, drv.Releases())
	assert.Equal(t, 2, drv.LiveTotal())
	assert.NotPanics(t, p.Release)
	assert.Empty(t, drv.Violations())
}

func TestNewPipelineCompileError(t *testing.T) {
	drv := soft.New()
	dev, _ := newTestDevice(t, drv)

	src := []byte("float4 main_vs(float2 pos : POSITION) : SV_POSITION { return float4(pos, 0, 1); }")
	p, err := NewPipeline(drv, dev, src, "broken.hlsl", false)
	assert.Nil(t, p)
	require.ErrorIs(t, err, ErrShaderCompile)

	var ce *gpu.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "main_ps", ce.Entry)
	assert.Contains(t, ce.Diagnostics, "broken.hlsl")
	assert.Contains(t, err.Error(), "entrypoint not found")

	// Only the device and its context remain.
	assert.Equal(t, 2, drv.LiveTotal())
}

func TestNewPipelineUnwindsEachStep(t *testing.T) {
	steps := []struct {
		call soft.Call
		kind error
	}{
		{soft.CallCreateRasterizerState, ErrResourceCreation},
		{soft.CallCreateVertexShader, ErrResourceCreation},
		{soft.CallCreateInputLayout, ErrResourceCreation},
		{soft.CallCreatePixelShader, ErrResourceCreation},
		{soft.CallCreateBuffer, ErrResourceCreation},
		{soft.CallCompileShader, ErrShaderCompile},
	}
	for _, s := range steps {
		t.Run(string(s.call), func(t *testing.T) {
			drv := soft.New()
			dev, _ := newTestDevice(t, drv)
			drv.Fault = soft.FailOn(s.call, 1, gpu.E_OUTOFMEMORY)

			_, err := NewPipeline(drv, dev, shaders.Source, "shader.hlsl", true)
			assert.ErrorIs(t, err, s.kind)
			assert.ErrorIs(t, err, gpu.E_OUTOFMEMORY)
			assert.Equal(t, 2, drv.LiveTotal(), "%v", drv.Live())
		})
	}
}
