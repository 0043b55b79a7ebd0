// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fakenative

import (
	"bytes"
	"unsafe"

	"github.com/gogpu/dxbind"
)

// Native layouts, mirrored here so the fake does not depend on the
// packages under test.
type (
	// Viewport mirrors D3D11_VIEWPORT.
	Viewport struct {
		TopLeftX, TopLeftY float32
		Width, Height      float32
		MinDepth, MaxDepth float32
	}

	// Rect mirrors D3D11_RECT.
	Rect struct {
		Left, Top, Right, Bottom int32
	}
)

const (
	viewportSize = int(unsafe.Sizeof(Viewport{}))
	rectSize     = int(unsafe.Sizeof(Rect{}))
	ptrSize      = int(unsafe.Sizeof(uintptr(0)))

	keepAll = 0xFFFFFFFF

	contextTypeImmediate = 0
	contextTypeDeferred  = 1
)

// Bound is a snapshot of the state bound on a fake device context.
type Bound struct {
	Viewports     []Viewport
	ScissorRects  []Rect
	RenderTargets []uintptr
	DepthStencil  uintptr
	UAVStartSlot  uint32
	UAVs          []uintptr
	UAVCounts     []int32
}

type contextState struct {
	deferred bool
	bound    Bound
	recorded int
	executed []uintptr
}

type deviceState struct {
	immediate uintptr
}

type commandListState struct {
	commands int
}

func copyBytes(p unsafe.Pointer, size int) []byte {
	if p == nil || size == 0 {
		return nil
	}
	return bytes.Clone(unsafe.Slice((*byte)(p), size))
}

func nonNull(p unsafe.Pointer) uint64 {
	if p == nil {
		return 0
	}
	return 1
}

func flag(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// NewDevice creates a fake ID3D11Device together with its immediate
// context. The device holds one reference on the immediate context.
func (n *Native) NewDevice() uintptr {
	n.mu.Lock()
	defer n.mu.Unlock()
	dev := n.newObjectLocked(KindDevice)
	ctx := n.newObjectLocked(KindDeviceContext)
	ctx.ctx = &contextState{}
	dev.dev = &deviceState{immediate: ctx.Addr}
	return dev.Addr
}

// NewContext creates a standalone fake device context.
func (n *Native) NewContext(deferred bool) uintptr {
	n.mu.Lock()
	defer n.mu.Unlock()
	obj := n.newObjectLocked(KindDeviceContext)
	obj.ctx = &contextState{deferred: deferred}
	return obj.Addr
}

// ImmediateContext returns the immediate context of a fake device
// without adding a reference.
func (n *Native) ImmediateContext(dev uintptr) uintptr {
	n.mu.Lock()
	defer n.mu.Unlock()
	if obj, ok := n.objects[dev]; ok && obj.dev != nil {
		return obj.dev.immediate
	}
	return 0
}

// Bound returns a snapshot of the state bound on ctx.
func (n *Native) Bound(ctx uintptr) Bound {
	n.mu.Lock()
	defer n.mu.Unlock()
	obj, ok := n.objects[ctx]
	if !ok || obj.ctx == nil {
		return Bound{}
	}
	b := obj.ctx.bound
	b.Viewports = append([]Viewport(nil), b.Viewports...)
	b.ScissorRects = append([]Rect(nil), b.ScissorRects...)
	b.RenderTargets = append([]uintptr(nil), b.RenderTargets...)
	b.UAVs = append([]uintptr(nil), b.UAVs...)
	b.UAVCounts = append([]int32(nil), b.UAVCounts...)
	return b
}

// Executed returns the command lists executed on ctx, in order.
func (n *Native) Executed(ctx uintptr) []uintptr {
	n.mu.Lock()
	defer n.mu.Unlock()
	if obj, ok := n.objects[ctx]; ok && obj.ctx != nil {
		return append([]uintptr(nil), obj.ctx.executed...)
	}
	return nil
}

// Commands returns the number of state commands captured in list.
func (n *Native) Commands(list uintptr) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if obj, ok := n.objects[list]; ok && obj.list != nil {
		return obj.list.commands
	}
	return 0
}

func (n *Native) contextLocked(this uintptr) *contextState {
	obj := n.objectLocked(this, KindDeviceContext)
	if obj == nil || obj.ctx == nil {
		return &contextState{}
	}
	return obj.ctx
}

func (n *Native) recordCommandLocked(c *contextState) {
	if c.deferred {
		c.recorded++
	}
}

// CreateDeferredContext implements ID3D11Device::CreateDeferredContext.
func (n *Native) CreateDeferredContext(this uintptr, flags uint32, out *uintptr) dxbind.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.objectLocked(this, KindDevice)
	n.recordLocked("CreateDeferredContext", this, []uint64{uint64(flags)})
	if r, ok := n.failureLocked("CreateDeferredContext"); ok {
		*out = 0
		return r
	}
	obj := n.newObjectLocked(KindDeviceContext)
	obj.ctx = &contextState{deferred: true}
	*out = obj.Addr
	return dxbind.SOK
}

// GetImmediateContext implements ID3D11Device::GetImmediateContext.
// The returned context carries a new reference.
func (n *Native) GetImmediateContext(this uintptr, out *uintptr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	dev := n.objectLocked(this, KindDevice)
	n.recordLocked("GetImmediateContext", this, nil)
	if dev == nil || dev.dev == nil {
		*out = 0
		return
	}
	ctx := n.objects[dev.dev.immediate]
	ctx.refs++
	ctx.addRefs++
	*out = ctx.Addr
}

// GetType implements ID3D11DeviceContext::GetType.
func (n *Native) GetType(this uintptr) uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.recordLocked("GetType", this, nil)
	if c.deferred {
		return contextTypeDeferred
	}
	return contextTypeImmediate
}

// RSSetViewports implements ID3D11DeviceContext::RSSetViewports.
func (n *Native) RSSetViewports(this uintptr, num uint32, viewports unsafe.Pointer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	data := copyBytes(viewports, int(num)*viewportSize)
	n.recordLocked("RSSetViewports", this, []uint64{uint64(num), nonNull(viewports)}, data)
	c.bound.Viewports = nil
	if num > 0 {
		c.bound.Viewports = append(c.bound.Viewports, unsafe.Slice((*Viewport)(viewports), num)...)
	}
	n.recordCommandLocked(c)
}

// RSSetScissorRects implements ID3D11DeviceContext::RSSetScissorRects.
func (n *Native) RSSetScissorRects(this uintptr, num uint32, rects unsafe.Pointer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	data := copyBytes(rects, int(num)*rectSize)
	n.recordLocked("RSSetScissorRects", this, []uint64{uint64(num), nonNull(rects)}, data)
	c.bound.ScissorRects = nil
	if num > 0 {
		c.bound.ScissorRects = append(c.bound.ScissorRects, unsafe.Slice((*Rect)(rects), num)...)
	}
	n.recordCommandLocked(c)
}

// RSGetViewports implements ID3D11DeviceContext::RSGetViewports.
// With a nil buffer only the count is written.
func (n *Native) RSGetViewports(this uintptr, num *uint32, viewports unsafe.Pointer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.recordLocked("RSGetViewports", this, []uint64{uint64(*num), nonNull(viewports)})
	if viewports == nil {
		*num = uint32(len(c.bound.Viewports))
		return
	}
	dst := unsafe.Slice((*Viewport)(viewports), *num)
	*num = uint32(copy(dst, c.bound.Viewports))
}

// RSGetScissorRects implements ID3D11DeviceContext::RSGetScissorRects.
func (n *Native) RSGetScissorRects(this uintptr, num *uint32, rects unsafe.Pointer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.recordLocked("RSGetScissorRects", this, []uint64{uint64(*num), nonNull(rects)})
	if rects == nil {
		*num = uint32(len(c.bound.ScissorRects))
		return
	}
	dst := unsafe.Slice((*Rect)(rects), *num)
	*num = uint32(copy(dst, c.bound.ScissorRects))
}

func (n *Native) readViewsLocked(num uint32, p unsafe.Pointer) []uintptr {
	if num == 0 || p == nil {
		return nil
	}
	return append([]uintptr(nil), unsafe.Slice((*uintptr)(p), num)...)
}

// OMSetRenderTargets implements ID3D11DeviceContext::OMSetRenderTargets.
func (n *Native) OMSetRenderTargets(this uintptr, num uint32, views unsafe.Pointer, dsv uintptr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	data := copyBytes(views, int(num)*ptrSize)
	n.recordLocked("OMSetRenderTargets", this, []uint64{uint64(num), nonNull(views), uint64(dsv)}, data)
	rtvs := n.readViewsLocked(num, views)
	for _, v := range rtvs {
		if v != 0 {
			n.objectLocked(v, KindRenderTargetView)
		}
	}
	if dsv != 0 {
		n.objectLocked(dsv, KindDepthStencilView)
	}
	c.bound.RenderTargets = rtvs
	c.bound.DepthStencil = dsv
	n.recordCommandLocked(c)
}

// OMSetRenderTargetsAndUnorderedAccessViews implements the combined
// output-merger binding call. A count of 0xFFFFFFFF keeps the current
// bindings of that kind.
func (n *Native) OMSetRenderTargetsAndUnorderedAccessViews(this uintptr, numRTVs uint32, rtvs unsafe.Pointer, dsv uintptr, uavStart, numUAVs uint32, uavs unsafe.Pointer, counts unsafe.Pointer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)

	var rtvData, uavData, countData []byte
	if numRTVs != keepAll {
		rtvData = copyBytes(rtvs, int(numRTVs)*ptrSize)
	}
	if numUAVs != keepAll {
		uavData = copyBytes(uavs, int(numUAVs)*ptrSize)
		countData = copyBytes(counts, int(numUAVs)*4)
	}
	n.recordLocked("OMSetRenderTargetsAndUnorderedAccessViews", this,
		[]uint64{uint64(numRTVs), nonNull(rtvs), uint64(dsv), uint64(uavStart), uint64(numUAVs), nonNull(uavs), nonNull(counts)},
		rtvData, uavData, countData)

	if numRTVs != keepAll {
		c.bound.RenderTargets = n.readViewsLocked(numRTVs, rtvs)
		c.bound.DepthStencil = dsv
	}
	if numUAVs != keepAll {
		c.bound.UAVStartSlot = uavStart
		c.bound.UAVs = n.readViewsLocked(numUAVs, uavs)
		for _, v := range c.bound.UAVs {
			if v != 0 {
				n.objectLocked(v, KindUnorderedAccessView)
			}
		}
		c.bound.UAVCounts = nil
		if numUAVs > 0 && counts != nil {
			c.bound.UAVCounts = append(c.bound.UAVCounts, unsafe.Slice((*int32)(counts), numUAVs)...)
		}
	}
	n.recordCommandLocked(c)
}

// OMGetRenderTargets implements ID3D11DeviceContext::OMGetRenderTargets.
// Every non-null view written carries a new reference.
func (n *Native) OMGetRenderTargets(this uintptr, num uint32, views unsafe.Pointer, dsv *uintptr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.recordLocked("OMGetRenderTargets", this, []uint64{uint64(num), nonNull(views), flag(dsv != nil)})
	if views != nil {
		dst := unsafe.Slice((*uintptr)(views), num)
		for i := range dst {
			dst[i] = 0
			if i < len(c.bound.RenderTargets) && c.bound.RenderTargets[i] != 0 {
				dst[i] = c.bound.RenderTargets[i]
				n.addRefLocked(dst[i])
			}
		}
	}
	if dsv != nil {
		*dsv = c.bound.DepthStencil
		if *dsv != 0 {
			n.addRefLocked(*dsv)
		}
	}
}

func (n *Native) addRefLocked(addr uintptr) {
	if obj, ok := n.objects[addr]; ok {
		obj.refs++
		obj.addRefs++
	}
}

// ClearRenderTargetView implements ID3D11DeviceContext::ClearRenderTargetView.
func (n *Native) ClearRenderTargetView(this uintptr, rtv uintptr, rgba *[4]float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.objectLocked(rtv, KindRenderTargetView)
	n.recordLocked("ClearRenderTargetView", this, []uint64{uint64(rtv)}, copyBytes(unsafe.Pointer(rgba), 16))
	n.recordCommandLocked(c)
}

// ClearState implements ID3D11DeviceContext::ClearState.
func (n *Native) ClearState(this uintptr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.recordLocked("ClearState", this, nil)
	c.bound = Bound{}
	n.recordCommandLocked(c)
}

// Flush implements ID3D11DeviceContext::Flush.
func (n *Native) Flush(this uintptr) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contextLocked(this)
	n.recordLocked("Flush", this, nil)
}

// ExecuteCommandList implements ID3D11DeviceContext::ExecuteCommandList.
func (n *Native) ExecuteCommandList(this uintptr, list uintptr, restoreState bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.objectLocked(list, KindCommandList)
	n.recordLocked("ExecuteCommandList", this, []uint64{uint64(list), flag(restoreState)})
	c.executed = append(c.executed, list)
	if !restoreState {
		c.bound = Bound{}
	}
}

// FinishCommandList implements ID3D11DeviceContext::FinishCommandList.
// Immediate contexts fail with DXGI_ERROR_INVALID_CALL.
func (n *Native) FinishCommandList(this uintptr, restoreState bool, out *uintptr) dxbind.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.contextLocked(this)
	n.recordLocked("FinishCommandList", this, []uint64{flag(restoreState), flag(out != nil)})
	if out == nil {
		return dxbind.EPointer
	}
	if r, ok := n.failureLocked("FinishCommandList"); ok {
		*out = 0
		return r
	}
	if !c.deferred {
		*out = 0
		return dxbind.DXGIErrorInvalidCall
	}
	list := n.newObjectLocked(KindCommandList)
	list.list = &commandListState{commands: c.recorded}
	c.recorded = 0
	if !restoreState {
		c.bound = Bound{}
	}
	*out = list.Addr
	return dxbind.SOK
}
