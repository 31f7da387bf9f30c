package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirides/d3drot/render"
)

func TestKeyAction(t *testing.T) {
	tests := []struct {
		vk   uintptr
		want Action
	}{
		{'Q', ActionQuit},
		{'F', ActionToggleFullscreen},
		{'R', ActionRotate},
		{'U', ActionRefresh},
		{'D', ActionNone},
		{'q', ActionNone},
		{0x1B, ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyAction(tt.vk), "vk %#x", tt.vk)
	}
	assert.Equal(t, "rotate", ActionRotate.String())
}

func TestRotatedClientSize(t *testing.T) {
	tests := []struct {
		from, to render.Rotation
		w, h     int
	}{
		{render.Rotate0, render.Rotate0, 800, 480},
		{render.Rotate0, render.Rotate90, 480, 800},
		{render.Rotate0, render.Rotate180, 800, 480},
		{render.Rotate0, render.Rotate270, 480, 800},
		{render.Rotate90, render.Rotate180, 480, 800},
		{render.Rotate270, render.Rotate0, 480, 800},
		{render.Rotate90, render.Rotate270, 800, 480},
	}
	for _, tt := range tests {
		w, h := RotatedClientSize(800, 480, tt.from, tt.to)
		assert.Equal(t, [2]int{tt.w, tt.h}, [2]int{w, h}, "%v -> %v", tt.from, tt.to)
	}

	// Cycling through every rotation with R comes back to the start.
	w, h := 800, 480
	r := render.Rotate0
	for i := 0; i < 4; i++ {
		w, h = RotatedClientSize(w, h, r, r.Next())
		r = r.Next()
	}
	assert.Equal(t, [2]int{800, 480}, [2]int{w, h})
}
