// Package soft is a pure Go implementation of the gpu interfaces. It keeps
// back buffers as *image.RGBA, rasterizes with golang.org/x/image/vector and
// tracks every object it hands out, so the renderer can run headless and
// tests can check pixels and leaks.
//
// Like the runtime it stands in for, soft is not safe for concurrent use.
package soft

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/kirides/d3drot/gpu"
	"github.com/kirides/d3drot/internal/logging"
)

// Call names an entry point that can be made to fail through Driver.Fault.
type Call string

const (
	CallCreateFactory          Call = "CreateDXGIFactory2"
	CallCreateDevice           Call = "D3D11CreateDevice"
	CallCompileShader          Call = "D3DCompile"
	CallEnumAdapters           Call = "EnumAdapters"
	CallEnumOutputs            Call = "EnumOutputs"
	CallGetDisplayModeList     Call = "GetDisplayModeList"
	CallCreateSwapChain        Call = "CreateSwapChainForHwnd"
	CallCreateBuffer           Call = "CreateBuffer"
	CallCreateRasterizerState  Call = "CreateRasterizerState"
	CallCreateVertexShader     Call = "CreateVertexShader"
	CallCreatePixelShader      Call = "CreatePixelShader"
	CallCreateInputLayout      Call = "CreateInputLayout"
	CallCreateRenderTargetView Call = "CreateRenderTargetView"
	CallMap                    Call = "Map"
	CallGetBuffer              Call = "GetBuffer"
	CallGetDesc                Call = "GetDesc1"
	CallResizeBuffers          Call = "ResizeBuffers"
	CallPresent                Call = "Present"
	CallSetFullscreenState     Call = "SetFullscreenState"
)

// Kind is the type of a tracked object.
type Kind string

const (
	KindFactory          Kind = "factory"
	KindAdapter          Kind = "adapter"
	KindOutput           Kind = "output"
	KindDevice           Kind = "device"
	KindContext          Kind = "context"
	KindSwapChain        Kind = "swapchain"
	KindTexture          Kind = "texture"
	KindBuffer           Kind = "buffer"
	KindRenderTargetView Kind = "rtv"
	KindRasterizerState  Kind = "rasterizer"
	KindVertexShader     Kind = "vs"
	KindPixelShader      Kind = "ps"
	KindInputLayout      Kind = "layout"
	KindDebug            Kind = "debug"
)

// Driver implements gpu.Driver. The zero value is not usable; use New.
type Driver struct {
	// Fault is consulted on entry of every Call. A non-nil result fails the
	// call with that error.
	Fault func(Call) error
	// Desktop is the desktop rectangle of the single output.
	Desktop image.Rectangle
	// Modes is the display mode list of the output.
	Modes []gpu.ModeDesc
	// NoCallLog stops recording context calls and releases. Long runs
	// set it.
	NoCallLog bool
	Logger    *slog.Logger

	live       map[Kind]int
	devices    []*Device
	occluded   bool
	violations []string
	calls      []string
	releases   []Kind
	created    int
}

// New returns a driver with a 1920×1080 desktop at 60 Hz.
func New() *Driver {
	return &Driver{
		Desktop: image.Rect(0, 0, 1920, 1080),
		Modes: []gpu.ModeDesc{
			{Width: 1280, Height: 720, RefreshRate: gpu.Rational{Numerator: 60000, Denominator: 1000}, Format: gpu.FormatB8G8R8A8UNorm},
			{Width: 1920, Height: 1080, RefreshRate: gpu.Rational{Numerator: 60000, Denominator: 1000}, Format: gpu.FormatB8G8R8A8UNorm},
			{Width: 2560, Height: 1440, RefreshRate: gpu.Rational{Numerator: 144000, Denominator: 1000}, Format: gpu.FormatB8G8R8A8UNorm},
		},
		live: make(map[Kind]int),
	}
}

func (d *Driver) log() *slog.Logger {
	return logging.OrNop(d.Logger)
}

func (d *Driver) fault(c Call) error {
	if d.Fault == nil {
		return nil
	}
	return d.Fault(c)
}

// FailOn returns a Fault func failing the n-th (1-based) occurrence of c with
// err. Later occurrences succeed again.
func FailOn(c Call, n int, err error) func(Call) error {
	seen := 0
	return func(got Call) error {
		if got != c {
			return nil
		}
		seen++
		if seen == n {
			return err
		}
		return nil
	}
}

// Faults combines fault hooks. Every hook sees every call; the first error
// wins.
func Faults(hooks ...func(Call) error) func(Call) error {
	return func(c Call) error {
		var first error
		for _, h := range hooks {
			if err := h(c); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}

// Remove simulates the removal of every live device with the given reason.
// Each operation that can report removal returns DXGI_ERROR_DEVICE_REMOVED
// from now on, and RemovedReason returns reason. Devices created afterwards
// are not affected.
func (d *Driver) Remove(reason gpu.ErrorCode) {
	for _, dev := range d.devices {
		if dev.alive() {
			dev.removed = gpu.DXGI_ERROR_DEVICE_REMOVED
			dev.reason = reason
		}
	}
	d.log().Warn("soft: device removed", "reason", reason)
}

// SetOccluded makes Present report DXGI_STATUS_OCCLUDED while on.
func (d *Driver) SetOccluded(on bool) { d.occluded = on }

// Live returns the number of live objects per kind.
func (d *Driver) Live() map[Kind]int {
	m := make(map[Kind]int, len(d.live))
	for k, n := range d.live {
		if n != 0 {
			m[k] = n
		}
	}
	return m
}

// LiveTotal returns the number of live objects of all kinds.
func (d *Driver) LiveTotal() int {
	total := 0
	for _, n := range d.live {
		total += n
	}
	return total
}

// Created returns the number of objects created so far.
func (d *Driver) Created() int { return d.created }

// Violations lists misuse the driver detected, the way the debug layer
// reports it.
func (d *Driver) Violations() []string { return append([]string(nil), d.violations...) }

// Calls returns the immediate context calls recorded since the last
// ResetCalls.
func (d *Driver) Calls() []string { return append([]string(nil), d.calls...) }

func (d *Driver) ResetCalls() { d.calls = d.calls[:0] }

// Releases returns the kinds of the objects released so far, oldest first.
func (d *Driver) Releases() []Kind { return append([]Kind(nil), d.releases...) }

func (d *Driver) ResetReleases() { d.releases = d.releases[:0] }

func (d *Driver) record(call string) {
	if !d.NoCallLog {
		d.calls = append(d.calls, call)
	}
}

func (d *Driver) violate(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	d.violations = append(d.violations, msg)
	d.log().Warn("soft: " + msg)
}

func (d *Driver) track(k Kind) *object {
	d.live[k]++
	d.created++
	return &object{drv: d, kind: k}
}

func (d *Driver) report() string {
	kinds := make([]string, 0, len(d.live))
	for k, n := range d.live {
		if n != 0 {
			kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
		}
	}
	sort.Strings(kinds)
	return strings.Join(kinds, " ")
}

// object is the tracking part of every soft object.
type object struct {
	drv      *Driver
	kind     Kind
	released bool
}

func (o *object) release() {
	if o.released {
		o.drv.violate("%s released twice", o.kind)
		return
	}
	o.released = true
	o.drv.live[o.kind]--
	if !o.drv.NoCallLog {
		o.drv.releases = append(o.drv.releases, o.kind)
	}
}

func (o *object) alive() bool { return !o.released }

func (d *Driver) CreateFactory(debug bool) (gpu.Factory, error) {
	if err := d.fault(CallCreateFactory); err != nil {
		return nil, err
	}
	return &Factory{object: d.track(KindFactory), debug: debug}, nil
}

func (d *Driver) CreateDevice(flags gpu.DeviceFlag, levels []gpu.FeatureLevel) (gpu.Device, gpu.DeviceContext, error) {
	if err := d.fault(CallCreateDevice); err != nil {
		return nil, nil, err
	}
	level := gpu.FeatureLevel(0)
	for _, l := range levels {
		if l <= gpu.FeatureLevel11_0 && l > level {
			level = l
		}
	}
	if level == 0 {
		return nil, nil, gpu.DXGI_ERROR_UNSUPPORTED
	}
	dev := &Device{object: d.track(KindDevice), flags: flags, level: level}
	ctx := &Context{object: d.track(KindContext), dev: dev}
	d.devices = append(d.devices, dev)
	d.log().Debug("soft: device created", "flags", fmt.Sprintf("%#x", uint32(flags)), "level", fmt.Sprintf("%#x", uint32(level)))
	return dev, ctx, nil
}

// Bytecode produced by CompileShader is the target followed by the entry
// point.
const bytecodePrefix = "soft:"

func (d *Driver) CompileShader(src []byte, name, entryPoint, target string, flags gpu.CompileFlag) ([]byte, error) {
	if err := d.fault(CallCompileShader); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(target, "vs_") && !strings.HasPrefix(target, "ps_") {
		return nil, &gpu.CompileError{
			Entry:       entryPoint,
			Target:      target,
			Diagnostics: fmt.Sprintf("error X3504: invalid target '%s'", target),
			Err:         gpu.E_FAIL,
		}
	}
	entry := regexp.MustCompile(`\b` + regexp.QuoteMeta(entryPoint) + `\s*\(`)
	if !entry.Match(src) {
		return nil, &gpu.CompileError{
			Entry:       entryPoint,
			Target:      target,
			Diagnostics: fmt.Sprintf("%s(1,1): error X3501: '%s': entrypoint not found", name, entryPoint),
			Err:         gpu.E_FAIL,
		}
	}
	return []byte(bytecodePrefix + target + ":" + entryPoint), nil
}

func bytecodeStage(code []byte) string {
	s := string(code)
	if !strings.HasPrefix(s, bytecodePrefix) || len(s) < len(bytecodePrefix)+2 {
		return ""
	}
	return s[len(bytecodePrefix) : len(bytecodePrefix)+2]
}

type Factory struct {
	*object
	debug bool
}

func (f *Factory) EnumAdapters(i uint32) (gpu.Adapter, error) {
	if err := f.drv.fault(CallEnumAdapters); err != nil {
		return nil, err
	}
	if i > 0 {
		return nil, gpu.DXGI_ERROR_NOT_FOUND
	}
	return &Adapter{object: f.drv.track(KindAdapter)}, nil
}

func (f *Factory) CreateSwapChainForHwnd(dev gpu.Device, hwnd uintptr, desc gpu.SwapChainDesc, fs gpu.FullscreenDesc) (gpu.SwapChain, error) {
	if err := f.drv.fault(CallCreateSwapChain); err != nil {
		return nil, err
	}
	sdev, ok := dev.(*Device)
	if !ok || !sdev.alive() {
		return nil, gpu.E_INVALIDARG
	}
	if sdev.removed != nil {
		return nil, sdev.removed
	}
	if hwnd == 0 || desc.SampleCount != 1 || desc.BufferCount < 2 || desc.Format != gpu.FormatB8G8R8A8UNorm {
		return nil, gpu.DXGI_ERROR_INVALID_CALL
	}
	if desc.SwapEffect != gpu.SwapEffectFlipSequential && desc.SwapEffect != gpu.SwapEffectFlipDiscard {
		return nil, gpu.DXGI_ERROR_INVALID_CALL
	}
	// No window to take the size from.
	if desc.Width == 0 {
		desc.Width = 1
	}
	if desc.Height == 0 {
		desc.Height = 1
	}
	sc := &SwapChain{object: f.drv.track(KindSwapChain), dev: sdev, desc: desc, fs: fs}
	sc.allocate()
	f.drv.log().Debug("soft: swap chain created", "width", desc.Width, "height", desc.Height, "buffers", desc.BufferCount)
	return sc, nil
}

func (f *Factory) Release() { f.release() }

type Adapter struct{ *object }

func (a *Adapter) Desc() (gpu.AdapterDesc, error) {
	return gpu.AdapterDesc{Description: "Soft Rasterizer", VendorID: 0x1414, DeviceID: 0x8c}, nil
}

func (a *Adapter) EnumOutputs(i uint32) (gpu.Output, error) {
	if err := a.drv.fault(CallEnumOutputs); err != nil {
		return nil, err
	}
	if i > 0 {
		return nil, gpu.DXGI_ERROR_NOT_FOUND
	}
	return &Output{object: a.drv.track(KindOutput)}, nil
}

func (a *Adapter) Release() { a.release() }

type Output struct{ *object }

func (o *Output) Desc() (gpu.OutputDesc, error) {
	return gpu.OutputDesc{DeviceName: `\\.\DISPLAY1`, DesktopCoordinates: o.drv.Desktop, AttachedToDesktop: true}, nil
}

func (o *Output) DisplayModes(format gpu.Format, flags gpu.EnumModeFlag) ([]gpu.ModeDesc, error) {
	if err := o.drv.fault(CallGetDisplayModeList); err != nil {
		return nil, err
	}
	var modes []gpu.ModeDesc
	for _, m := range o.drv.Modes {
		if m.Format == format {
			modes = append(modes, m)
		}
	}
	if len(modes) == 0 {
		return nil, gpu.DXGI_ERROR_NOT_FOUND
	}
	return modes, nil
}

func (o *Output) Release() { o.release() }
