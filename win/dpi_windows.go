package win

import "github.com/pkg/errors"

// EnableDpiAwareness sets the DPI awareness of the whole process. It must
// run before the first window is created. Systems older than Windows 10
// 1703 lack the API and get an error.
func EnableDpiAwareness(value int32) error {
	if err := procSetProcessDpiAwarenessContext.Find(); err != nil {
		return errors.Wrap(err, "SetProcessDpiAwarenessContext")
	}
	if !IsValidDpiAwarenessContext(value) {
		return errors.Errorf("DPI awareness context %d is not valid", value)
	}
	return errors.Wrap(SetProcessDpiAwarenessContext(value), "SetProcessDpiAwarenessContext")
}

// EnableThreadDpiAwareness is the per-thread variant, for when the process
// awareness was already fixed by a manifest.
func EnableThreadDpiAwareness(value int32) error {
	if err := procSetThreadDpiAwarenessContext.Find(); err != nil {
		return errors.Wrap(err, "SetThreadDpiAwarenessContext")
	}
	if !IsValidDpiAwarenessContext(value) {
		return errors.Errorf("DPI awareness context %d is not valid", value)
	}
	_, err := SetThreadDpiAwarenessContext(value)
	return errors.Wrap(err, "SetThreadDpiAwarenessContext")
}
