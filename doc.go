// Package dxbind provides typed Go bindings for the Direct3D 11 device
// context binding path and the Direct2D effect property table.
//
// # Overview
//
// The native APIs take fixed-arity, count-prefixed raw-pointer arguments
// and hand out reference-counted COM interface pointers. dxbind lets Go
// callers work with slices, plain structs and typed wrappers instead:
//
//	dev, err := d3d11.CreateDevice(d3d11.DriverHardware, 0)
//	if err != nil {
//	    return err
//	}
//	defer dev.Release()
//
//	dc, err := dev.CreateDeferredContext()
//	if err != nil {
//	    return err
//	}
//	defer dc.Release()
//
//	_ = dc.RSSetViewport(d3d11.Viewport{Width: 640, Height: 480, MaxDepth: 1})
//	list, err := dc.FinishCommandList(false)
//
// # Packages
//
//   - com: reference-counted proxies for native interface pointers
//   - d3d11: device context state binding and command list capture
//   - d2d1: effect creation and typed property access
//
// # Errors
//
// Local precondition failures are reported before any native call and
// match [ErrInvalidArgument] together with one of [ErrNullArgument],
// [ErrEmptyArgument] or [ErrLengthMismatch]. Native failures are
// [*NativeError] values carrying the HRESULT as a [Result].
//
// # Threading
//
// A device context must not be used from more than one goroutine at a
// time. dxbind performs no locking on the binding path.
package dxbind

// Version is the current version of the library.
const Version = "0.1.0"
