// Package shaders carries the HLSL source of the renderer.
package shaders

import _ "embed"

// Source is shader.hlsl: main_vs applies the rotation rows of constant
// buffer 0 to the vertex position, main_ps returns the vertex color.
//
//go:embed shader.hlsl
var Source []byte
