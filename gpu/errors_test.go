package gpu

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "DXGI_ERROR_DEVICE_REMOVED", DXGI_ERROR_DEVICE_REMOVED.Error())
	assert.Equal(t, "0x887a1234", ErrorCode(0x887A1234).Error())
}

func TestErrorCodeFailed(t *testing.T) {
	assert.True(t, DXGI_ERROR_DEVICE_RESET.Failed())
	assert.True(t, E_INVALIDARG.Failed())
	assert.False(t, DXGI_STATUS_OCCLUDED.Failed())
}

func TestIsDeviceLost(t *testing.T) {
	cases := []struct {
		err  error
		lost bool
	}{
		{DXGI_ERROR_DEVICE_REMOVED, true},
		{DXGI_ERROR_DEVICE_RESET, true},
		{DXGI_ERROR_DRIVER_INTERNAL_ERROR, true},
		{errors.Wrap(D3DDDIERR_DEVICEREMOVED, "Present1"), true},
		{fmt.Errorf("resize: %w", DXGI_ERROR_DEVICE_REMOVED), true},
		{DXGI_ERROR_INVALID_CALL, false},
		{DXGI_STATUS_OCCLUDED, false},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.lost, IsDeviceLost(c.err), "%v", c.err)
	}
}

func TestIsOccluded(t *testing.T) {
	assert.True(t, IsOccluded(errors.Wrap(DXGI_STATUS_OCCLUDED, "Present1")))
	assert.False(t, IsOccluded(DXGI_ERROR_DEVICE_REMOVED))
}

func TestIsStatus(t *testing.T) {
	assert.True(t, IsStatus(errors.Wrap(DXGI_STATUS_MODE_CHANGED, "Present1")))
	assert.True(t, IsStatus(DXGI_STATUS_OCCLUDED))
	assert.False(t, IsStatus(DXGI_ERROR_DEVICE_RESET))
	assert.False(t, IsStatus(ErrorCode(0)))
	assert.False(t, IsStatus(errors.New("other")))
}

func TestCompileErrorUnwrap(t *testing.T) {
	err := &CompileError{Entry: "main_vs", Target: "vs_5_0", Diagnostics: "error X3000", Err: E_FAIL}
	assert.True(t, errors.Is(err, E_FAIL))
	assert.Contains(t, err.Error(), "error X3000")
	assert.Contains(t, err.Error(), "main_vs")
}

func TestFeatureLevelString(t *testing.T) {
	assert.Equal(t, "11_1", FeatureLevel11_1.String())
	assert.Equal(t, "10_0", FeatureLevel10_0.String())
}
