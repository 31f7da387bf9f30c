package render

import (
	"image"
	"image/color"
	"log/slog"
)

// DefaultShaderPath is where the HLSL source with main_vs and main_ps is
// looked up when Config.ShaderPath is empty.
const DefaultShaderPath = "shaders/shader.hlsl"

type Config struct {
	// VSync presents on the vertical blank and selects the display's native
	// refresh rate for the swap chain.
	VSync bool
	// Debug enables the runtime debug layer, debug shader compilation and a
	// live object report at shutdown.
	Debug bool
	// ShaderPath is the HLSL source compiled at startup.
	ShaderPath string
	// ShaderSource, when non-nil, is compiled instead of reading
	// ShaderPath. ShaderPath still names it in diagnostics.
	ShaderSource []byte
	// Scene is drawn by every frame. The zero value selects DefaultScene.
	Scene  Scene
	Logger *slog.Logger
}

func (c Config) shaderPath() string {
	if c.ShaderPath == "" {
		return DefaultShaderPath
	}
	return c.ShaderPath
}

func (c Config) scene() Scene {
	if c.Scene == (Scene{}) {
		return DefaultScene
	}
	return c.Scene
}

// Scene is the content of a frame: one triangle and one rectangle in pixel
// coordinates over a solid background.
type Scene struct {
	Background    [4]float32
	Triangle      [3]image.Point
	TriangleColor color.RGBA
	Rectangle     image.Rectangle
	RectColor     color.RGBA
}

var DefaultScene = Scene{
	Background:    [4]float32{0.10, 0.18, 0.24, 1.0},
	Triangle:      [3]image.Point{{320, 120}, {480, 360}, {160, 360}},
	TriangleColor: color.RGBA{R: 255, G: 255, B: 0, A: 255},
	Rectangle:     image.Rect(520, 120, 520+200, 120+100),
	RectColor:     color.RGBA{R: 0, G: 0, B: 255, A: 255},
}
