package d3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/shaders"
)

func TestCompileShader(t *testing.T) {
	if err := Load(); err != nil {
		t.Skip(err)
	}
	drv := New(nil)

	vs, err := drv.CompileShader(shaders.Source, "shader.hlsl", "main_vs", "vs_5_0", gpu.CompileEnableStrictness)
	require.NoError(t, err)
	assert.NotEmpty(t, vs)

	_, err = drv.CompileShader(shaders.Source, "shader.hlsl", "nope", "ps_5_0", 0)
	var ce *gpu.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "nope", ce.Entry)
	assert.Contains(t, ce.Diagnostics, "shader.hlsl")
}
