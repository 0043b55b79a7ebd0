package d3d11

import (
	"github.com/gogpu/dxbind/com"
)

// RenderTargetView wraps ID3D11RenderTargetView.
type RenderTargetView struct {
	obj *com.Object
}

// DepthStencilView wraps ID3D11DepthStencilView.
type DepthStencilView struct {
	obj *com.Object
}

// UnorderedAccessView wraps ID3D11UnorderedAccessView.
type UnorderedAccessView struct {
	obj *com.Object
}

// WrapRenderTargetView adds a reference to the view at addr.
// The caller releases the returned wrapper.
func WrapRenderTargetView(addr uintptr, opts ...Option) (*RenderTargetView, error) {
	obj, err := buildOptions(opts).table.Wrap(addr)
	if err != nil {
		return nil, err
	}
	return &RenderTargetView{obj: obj}, nil
}

// WrapDepthStencilView adds a reference to the view at addr.
func WrapDepthStencilView(addr uintptr, opts ...Option) (*DepthStencilView, error) {
	obj, err := buildOptions(opts).table.Wrap(addr)
	if err != nil {
		return nil, err
	}
	return &DepthStencilView{obj: obj}, nil
}

// WrapUnorderedAccessView adds a reference to the view at addr.
func WrapUnorderedAccessView(addr uintptr, opts ...Option) (*UnorderedAccessView, error) {
	obj, err := buildOptions(opts).table.Wrap(addr)
	if err != nil {
		return nil, err
	}
	return &UnorderedAccessView{obj: obj}, nil
}

// Object returns the underlying proxy, or nil.
func (v *RenderTargetView) Object() *com.Object {
	if v == nil {
		return nil
	}
	return v.obj
}

// Address returns the native interface pointer.
func (v *RenderTargetView) Address() uintptr { return v.Object().Address() }

// Release drops this wrapper's reference.
func (v *RenderTargetView) Release() error { return v.Object().Release() }

// Object returns the underlying proxy, or nil.
func (v *DepthStencilView) Object() *com.Object {
	if v == nil {
		return nil
	}
	return v.obj
}

// Address returns the native interface pointer.
func (v *DepthStencilView) Address() uintptr { return v.Object().Address() }

// Release drops this wrapper's reference.
func (v *DepthStencilView) Release() error { return v.Object().Release() }

// Object returns the underlying proxy, or nil.
func (v *UnorderedAccessView) Object() *com.Object {
	if v == nil {
		return nil
	}
	return v.obj
}

// Address returns the native interface pointer.
func (v *UnorderedAccessView) Address() uintptr { return v.Object().Address() }

// Release drops this wrapper's reference.
func (v *UnorderedAccessView) Release() error { return v.Object().Release() }

// CommandList wraps ID3D11CommandList. The zero value holds nothing and
// can be passed to [DeviceContext.FinishCommandListInto].
type CommandList struct {
	obj *com.Object
}

// Object returns the underlying proxy, or nil for an empty list.
func (l *CommandList) Object() *com.Object {
	if l == nil {
		return nil
	}
	return l.obj
}

// Address returns the native interface pointer, or 0 for an empty list.
func (l *CommandList) Address() uintptr { return l.Object().Address() }

// Empty reports whether l holds no live command list.
func (l *CommandList) Empty() bool {
	return l.Object() == nil || l.obj.Released()
}

// Release drops the reference held by l. Releasing an empty list
// returns dxbind.ErrNullArgument.
func (l *CommandList) Release() error { return l.Object().Release() }

// set replaces the held object, releasing the previous one.
func (l *CommandList) set(obj *com.Object) {
	if prev := l.obj; prev != nil && !prev.Released() {
		_ = prev.Release()
	}
	l.obj = obj
}
