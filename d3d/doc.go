// Package d3d implements the gpu interfaces on Direct3D 11 and DXGI 1.2
// through hand-written COM bindings. It is only functional on Windows.
package d3d
