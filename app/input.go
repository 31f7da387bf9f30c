// Package app hosts the renderer in a native window: it owns the message
// loop, maps keys to actions and keeps the client size in step with the
// rotation.
package app

import "github.com/kirides/d3drot/render"

// Action is what a key press asks the window to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleFullscreen
	ActionRotate
	ActionRefresh
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionToggleFullscreen:
		return "toggle fullscreen"
	case ActionRotate:
		return "rotate"
	case ActionRefresh:
		return "refresh"
	}
	return "none"
}

// KeyAction maps a released virtual key to its action. Letter keys use
// their upper case ASCII code.
func KeyAction(vk uintptr) Action {
	switch vk {
	case 'Q':
		return ActionQuit
	case 'F':
		return ActionToggleFullscreen
	case 'R':
		return ActionRotate
	case 'U':
		return ActionRefresh
	}
	return ActionNone
}

// RotatedClientSize returns the client size a window of width×height at
// rotation from needs at rotation to. Quarter turns swap the sides; a half
// turn or no turn keeps them.
func RotatedClientSize(width, height int, from, to render.Rotation) (int, int) {
	d := int(to) - int(from)
	if d < 0 {
		d = -d
	}
	if d%2 == 1 {
		return height, width
	}
	return width, height
}
