package d3d11

import (
	"unsafe"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/com"
	"github.com/gogpu/dxbind/internal/marshal"
)

// DeviceContext wraps ID3D11DeviceContext.
type DeviceContext struct {
	obj   *com.Object
	abi   ABI
	table *com.Table

	typ   ContextType
	state RecordingState
}

// WrapDeviceContext adds a reference to the context at addr and asks the
// native side whether it is immediate or deferred. A deferred context
// is assumed to be recording.
func WrapDeviceContext(addr uintptr, opts ...Option) (*DeviceContext, error) {
	o := buildOptions(opts)
	obj, err := o.table.Wrap(addr)
	if err != nil {
		return nil, err
	}
	typ := ContextType(o.abi.GetType(addr))
	return newDeviceContext(obj, typ, o.abi, o.table), nil
}

func newDeviceContext(obj *com.Object, typ ContextType, abi ABI, table *com.Table) *DeviceContext {
	c := &DeviceContext{obj: obj, abi: abi, table: table, typ: typ, state: StateImmediate}
	if typ == ContextDeferred {
		c.state = StateRecording
	}
	return c
}

// Object returns the underlying proxy.
func (c *DeviceContext) Object() *com.Object {
	if c == nil {
		return nil
	}
	return c.obj
}

// Address returns the native interface pointer.
func (c *DeviceContext) Address() uintptr { return c.Object().Address() }

// Release drops this wrapper's reference.
func (c *DeviceContext) Release() error { return c.Object().Release() }

// Type reports whether the context is immediate or deferred.
func (c *DeviceContext) Type() ContextType { return c.typ }

// State returns the capture state. Immediate contexts always report
// StateImmediate.
func (c *DeviceContext) State() RecordingState { return c.state }

func (c *DeviceContext) live(op string) (uintptr, error) {
	if c == nil {
		return 0, dxbind.NewArgumentError(op, "context", dxbind.ErrNullArgument)
	}
	addr, err := c.obj.Live()
	if err != nil {
		return 0, dxbind.NewArgumentError(op, "context", dxbind.ErrUseAfterRelease)
	}
	return addr, nil
}

// recorded notes that a command went to the context. An idle deferred
// context starts recording again.
func (c *DeviceContext) recorded() {
	if c.state == StateIdle {
		c.state = StateRecording
	}
}

// RSSetViewport binds a single viewport.
func (c *DeviceContext) RSSetViewport(v Viewport) error {
	a := marshal.Acquire()
	defer a.Release()
	return c.setViewports("RSSetViewport", 1, marshal.One(a, v))
}

// RSSetViewports binds vs to viewport slots 0..len(vs)-1. Calling it with
// no viewports unbinds all of them.
func (c *DeviceContext) RSSetViewports(vs ...Viewport) error {
	return c.setViewports("RSSetViewports", len(vs), marshal.Slice(vs))
}

func (c *DeviceContext) setViewports(op string, n int, p unsafe.Pointer) error {
	this, err := c.live(op)
	if err != nil {
		return err
	}
	c.abi.RSSetViewports(this, uint32(n), p)
	c.recorded()
	return nil
}

// RSSetScissorRect binds a single scissor rectangle.
func (c *DeviceContext) RSSetScissorRect(r Rect) error {
	a := marshal.Acquire()
	defer a.Release()
	return c.setScissorRects("RSSetScissorRect", 1, marshal.One(a, r))
}

// RSSetScissorRects binds rs to scissor slots 0..len(rs)-1. Calling it
// with no rectangles unbinds all of them.
func (c *DeviceContext) RSSetScissorRects(rs ...Rect) error {
	return c.setScissorRects("RSSetScissorRects", len(rs), marshal.Slice(rs))
}

func (c *DeviceContext) setScissorRects(op string, n int, p unsafe.Pointer) error {
	this, err := c.live(op)
	if err != nil {
		return err
	}
	c.abi.RSSetScissorRects(this, uint32(n), p)
	c.recorded()
	return nil
}

// OMSetRenderTarget binds rtv to slot 0. dsv may be nil.
func (c *DeviceContext) OMSetRenderTarget(rtv *RenderTargetView, dsv *DepthStencilView) error {
	if rtv == nil {
		return dxbind.NewArgumentError("OMSetRenderTarget", "renderTargetView", dxbind.ErrNullArgument)
	}
	return c.omSetRenderTargets("OMSetRenderTarget", []*RenderTargetView{rtv}, dsv)
}

// OMSetRenderTargets binds rtvs to slots 0..len(rtvs)-1 and dsv as the
// depth-stencil view (nil leaves no depth-stencil bound). rtvs must be
// non-empty and contain no nil entries; use OMUnbindRenderTargets to
// bind nothing.
func (c *DeviceContext) OMSetRenderTargets(rtvs []*RenderTargetView, dsv *DepthStencilView) error {
	return c.omSetRenderTargets("OMSetRenderTargets", rtvs, dsv)
}

func (c *DeviceContext) omSetRenderTargets(op string, rtvs []*RenderTargetView, dsv *DepthStencilView) error {
	this, err := c.live(op)
	if err != nil {
		return err
	}
	if err := marshal.RequireNonEmpty(op, "renderTargetViews", len(rtvs), rtvs == nil); err != nil {
		return err
	}

	a := marshal.Acquire()
	defer a.Release()

	ptrs, err := marshal.Addresses(a, op, "renderTargetViews", rtvs)
	if err != nil {
		return err
	}
	d, err := marshal.Address(op, "depthStencilView", dsv)
	if err != nil {
		return err
	}
	c.abi.OMSetRenderTargets(this, uint32(len(ptrs)), marshal.Slice(ptrs), d)
	c.recorded()
	return nil
}

// OMUnbindRenderTargets unbinds every render target and the
// depth-stencil view.
func (c *DeviceContext) OMUnbindRenderTargets() error {
	this, err := c.live("OMUnbindRenderTargets")
	if err != nil {
		return err
	}
	c.abi.OMSetRenderTargets(this, 0, nil, 0)
	c.recorded()
	return nil
}

// OMSetRenderTargetsAndUnorderedAccessViews binds render targets, a
// depth-stencil view and UAVs in one call. UAVs occupy slots starting
// at uavStartSlot. counts holds one initial counter per UAV; nil keeps
// every counter (KeepCounter). rtvs and uavs must be non-empty.
func (c *DeviceContext) OMSetRenderTargetsAndUnorderedAccessViews(
	rtvs []*RenderTargetView,
	dsv *DepthStencilView,
	uavStartSlot uint32,
	uavs []*UnorderedAccessView,
	counts []int32,
) error {
	return c.omSetRTVsAndUAVs("OMSetRenderTargetsAndUnorderedAccessViews", false, rtvs, dsv, uavStartSlot, uavs, counts)
}

// OMSetRenderTargetAndUnorderedAccessViews binds one render target plus
// uavs, keeping every UAV counter.
func (c *DeviceContext) OMSetRenderTargetAndUnorderedAccessViews(
	rtv *RenderTargetView,
	dsv *DepthStencilView,
	uavStartSlot uint32,
	uavs ...*UnorderedAccessView,
) error {
	const op = "OMSetRenderTargetAndUnorderedAccessViews"
	if rtv == nil {
		return dxbind.NewArgumentError(op, "renderTargetView", dxbind.ErrNullArgument)
	}
	if uavs == nil {
		uavs = []*UnorderedAccessView{}
	}
	return c.omSetRTVsAndUAVs(op, false, []*RenderTargetView{rtv}, dsv, uavStartSlot, uavs, nil)
}

// OMSetUnorderedAccessViews binds uavs starting at uavStartSlot and
// leaves the bound render targets and depth-stencil view untouched.
func (c *DeviceContext) OMSetUnorderedAccessViews(uavStartSlot uint32, uavs []*UnorderedAccessView, counts []int32) error {
	return c.omSetRTVsAndUAVs("OMSetUnorderedAccessViews", true, nil, nil, uavStartSlot, uavs, counts)
}

// omSetRTVsAndUAVs is the shared implementation. With keepRTVs set the
// render-target count is KeepRenderTargetsAndDepthStencil and rtvs and
// dsv are ignored.
func (c *DeviceContext) omSetRTVsAndUAVs(
	op string,
	keepRTVs bool,
	rtvs []*RenderTargetView,
	dsv *DepthStencilView,
	uavStartSlot uint32,
	uavs []*UnorderedAccessView,
	counts []int32,
) error {
	this, err := c.live(op)
	if err != nil {
		return err
	}
	if !keepRTVs {
		if err := marshal.RequireNonEmpty(op, "renderTargetViews", len(rtvs), rtvs == nil); err != nil {
			return err
		}
	}
	if err := marshal.RequireNonEmpty(op, "unorderedAccessViews", len(uavs), uavs == nil); err != nil {
		return err
	}

	a := marshal.Acquire()
	defer a.Release()

	numRTVs := KeepRenderTargetsAndDepthStencil
	var rtvPtrs []uintptr
	var d uintptr
	if !keepRTVs {
		if rtvPtrs, err = marshal.Addresses(a, op, "renderTargetViews", rtvs); err != nil {
			return err
		}
		if d, err = marshal.Address(op, "depthStencilView", dsv); err != nil {
			return err
		}
		numRTVs = uint32(len(rtvPtrs))
	}
	uavPtrs, err := marshal.Addresses(a, op, "unorderedAccessViews", uavs)
	if err != nil {
		return err
	}
	initial, err := marshal.Counters(a, op, "initialCounts", counts, len(uavPtrs))
	if err != nil {
		return err
	}

	c.abi.OMSetRenderTargetsAndUnorderedAccessViews(this,
		numRTVs, marshal.Slice(rtvPtrs), d,
		uavStartSlot, uint32(len(uavPtrs)), marshal.Slice(uavPtrs), marshal.Slice(initial))
	c.recorded()
	return nil
}
