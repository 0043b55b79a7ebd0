package d3d11

import (
	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/com"
)

// Device wraps ID3D11Device. Only the calls that produce device
// contexts are bound.
type Device struct {
	obj   *com.Object
	abi   ABI
	table *com.Table
}

// WrapDevice adds a reference to the device at addr.
func WrapDevice(addr uintptr, opts ...Option) (*Device, error) {
	o := buildOptions(opts)
	obj, err := o.table.Wrap(addr)
	if err != nil {
		return nil, err
	}
	return &Device{obj: obj, abi: o.abi, table: o.table}, nil
}

func attachDevice(addr uintptr, o options) (*Device, error) {
	obj, err := o.table.Attach(addr)
	if err != nil {
		return nil, err
	}
	return &Device{obj: obj, abi: o.abi, table: o.table}, nil
}

// Object returns the underlying proxy.
func (d *Device) Object() *com.Object {
	if d == nil {
		return nil
	}
	return d.obj
}

// Address returns the native interface pointer.
func (d *Device) Address() uintptr { return d.Object().Address() }

// Release drops this wrapper's reference.
func (d *Device) Release() error { return d.Object().Release() }

func (d *Device) live(op string) (uintptr, error) {
	if d == nil {
		return 0, dxbind.NewArgumentError(op, "device", dxbind.ErrNullArgument)
	}
	addr, err := d.obj.Live()
	if err != nil {
		return 0, dxbind.NewArgumentError(op, "device", dxbind.ErrUseAfterRelease)
	}
	return addr, nil
}

// CreateDeferredContext creates a deferred context that starts out
// recording.
func (d *Device) CreateDeferredContext() (*DeviceContext, error) {
	const op = "CreateDeferredContext"
	this, err := d.live(op)
	if err != nil {
		return nil, err
	}
	var out uintptr
	if r := d.abi.CreateDeferredContext(this, 0, &out); r.Failed() {
		return nil, r.Err(op)
	}
	obj, err := d.table.Attach(out)
	if err != nil {
		return nil, err
	}
	return newDeviceContext(obj, ContextDeferred, d.abi, d.table), nil
}

// ImmediateContext returns the device's immediate context. Each call
// returns a wrapper the caller must release.
func (d *Device) ImmediateContext() (*DeviceContext, error) {
	const op = "GetImmediateContext"
	this, err := d.live(op)
	if err != nil {
		return nil, err
	}
	var out uintptr
	d.abi.GetImmediateContext(this, &out)
	obj, err := d.table.Attach(out)
	if err != nil {
		return nil, err
	}
	return newDeviceContext(obj, ContextImmediate, d.abi, d.table), nil
}
