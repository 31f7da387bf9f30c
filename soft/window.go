package soft

import "sync/atomic"

var nextHandle atomic.Uintptr

// Window is a window without a screen: a handle and a client size.
type Window struct {
	handle uintptr
	w, h   int
}

func NewWindow(width, height int) *Window {
	return &Window{handle: nextHandle.Add(1), w: width, h: height}
}

func (w *Window) Handle() uintptr { return w.handle }

func (w *Window) ClientSize() (width, height int, err error) { return w.w, w.h, nil }

// SetClientSize changes what ClientSize reports.
func (w *Window) SetClientSize(width, height int) { w.w, w.h = width, height }
