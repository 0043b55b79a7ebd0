package d3d11

import (
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/internal/marshal"
)

// ClearRenderTargetView fills rtv with rgba (red, green, blue, alpha in
// [0, 1]).
func (c *DeviceContext) ClearRenderTargetView(rtv *RenderTargetView, rgba [4]float32) error {
	const op = "ClearRenderTargetView"
	this, err := c.live(op)
	if err != nil {
		return err
	}
	addr, err := marshal.Required(op, "renderTargetView", rtv)
	if err != nil {
		return err
	}
	a := marshal.Acquire()
	defer a.Release()
	c.abi.ClearRenderTargetView(this, addr, (*[4]float32)(marshal.One(a, rgba)))
	c.recorded()
	return nil
}

// ClearRenderTargetViewColor fills rtv with col. The color is converted
// to non-premultiplied 8-bit components and scaled by 1/255.
func (c *DeviceContext) ClearRenderTargetViewColor(rtv *RenderTargetView, col color.Color) error {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return c.ClearRenderTargetView(rtv, [4]float32{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	})
}

// ClearRenderTargetViewGPU fills rtv with a WebGPU clear value.
func (c *DeviceContext) ClearRenderTargetViewGPU(rtv *RenderTargetView, col gputypes.Color) error {
	return c.ClearRenderTargetView(rtv, [4]float32{
		float32(col.R),
		float32(col.G),
		float32(col.B),
		float32(col.A),
	})
}

// OMGetRenderTargets returns the views bound to the first n render-target
// slots and the bound depth-stencil view. Empty slots are nil. Every
// returned non-nil view must be released by the caller.
func (c *DeviceContext) OMGetRenderTargets(n int) ([]*RenderTargetView, *DepthStencilView, error) {
	const op = "OMGetRenderTargets"
	this, err := c.live(op)
	if err != nil {
		return nil, nil, err
	}
	if n < 0 {
		return nil, nil, dxbind.NewArgumentError(op, "count", dxbind.ErrInvalidArgument)
	}

	a := marshal.Acquire()
	defer a.Release()

	ptrs := a.Pointers(n)
	var dsvAddr uintptr
	c.abi.OMGetRenderTargets(this, uint32(n), marshal.Slice(ptrs), &dsvAddr)

	// The native call added a reference to every view it wrote, so they
	// are attached rather than wrapped.
	rtvs := make([]*RenderTargetView, n)
	for i, p := range ptrs {
		if p == 0 {
			continue
		}
		obj, err := c.table.Attach(p)
		if err != nil {
			return nil, nil, err
		}
		rtvs[i] = &RenderTargetView{obj: obj}
	}
	var dsv *DepthStencilView
	if dsvAddr != 0 {
		obj, err := c.table.Attach(dsvAddr)
		if err != nil {
			return nil, nil, err
		}
		dsv = &DepthStencilView{obj: obj}
	}
	return rtvs, dsv, nil
}

// RSGetViewports returns the bound viewports.
func (c *DeviceContext) RSGetViewports() ([]Viewport, error) {
	this, err := c.live("RSGetViewports")
	if err != nil {
		return nil, err
	}
	var n uint32
	c.abi.RSGetViewports(this, &n, nil)
	if n == 0 {
		return nil, nil
	}
	vs := make([]Viewport, n)
	c.abi.RSGetViewports(this, &n, marshal.Slice(vs))
	return vs[:n], nil
}

// RSGetScissorRects returns the bound scissor rectangles.
func (c *DeviceContext) RSGetScissorRects() ([]Rect, error) {
	this, err := c.live("RSGetScissorRects")
	if err != nil {
		return nil, err
	}
	var n uint32
	c.abi.RSGetScissorRects(this, &n, nil)
	if n == 0 {
		return nil, nil
	}
	rs := make([]Rect, n)
	c.abi.RSGetScissorRects(this, &n, marshal.Slice(rs))
	return rs[:n], nil
}

// ClearState resets all bound pipeline state to defaults.
func (c *DeviceContext) ClearState() error {
	this, err := c.live("ClearState")
	if err != nil {
		return err
	}
	c.abi.ClearState(this)
	c.recorded()
	return nil
}

// Flush submits queued commands to the GPU. It has no effect on a
// deferred context.
func (c *DeviceContext) Flush() error {
	this, err := c.live("Flush")
	if err != nil {
		return err
	}
	c.abi.Flush(this)
	return nil
}
