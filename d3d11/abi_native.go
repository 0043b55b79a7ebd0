package d3d11

import (
	"runtime"
	"unsafe"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/internal/vtbl"
)

// ID3D11Device vtable slots.
const (
	slotCreateDeferredContext = 27
	slotGetImmediateContext   = 40
)

// ID3D11DeviceContext vtable slots.
const (
	slotOMSetRenderTargets                        = 33
	slotOMSetRenderTargetsAndUnorderedAccessViews = 34
	slotRSSetViewports                            = 44
	slotRSSetScissorRects                         = 45
	slotClearRenderTargetView                     = 50
	slotExecuteCommandList                        = 58
	slotOMGetRenderTargets                        = 89
	slotRSGetViewports                            = 95
	slotRSGetScissorRects                         = 96
	slotClearState                                = 110
	slotFlush                                     = 111
	slotGetType                                   = 112
	slotFinishCommandList                         = 114
)

// nativeABI dispatches through the COM vtable.
type nativeABI struct{}

// NativeABI returns the ABI that calls the loaded Direct3D 11 runtime.
func NativeABI() ABI { return nativeABI{} }

func (nativeABI) CreateDeferredContext(this uintptr, flags uint32, out *uintptr) dxbind.Result {
	r := vtbl.Call(this, slotCreateDeferredContext, uintptr(flags), uintptr(unsafe.Pointer(out)))
	runtime.KeepAlive(out)
	return dxbind.Result(int32(r))
}

func (nativeABI) GetImmediateContext(this uintptr, out *uintptr) {
	vtbl.Call(this, slotGetImmediateContext, uintptr(unsafe.Pointer(out)))
	runtime.KeepAlive(out)
}

func (nativeABI) GetType(this uintptr) uint32 {
	return uint32(vtbl.Call(this, slotGetType))
}

func (nativeABI) RSSetViewports(this uintptr, num uint32, viewports unsafe.Pointer) {
	vtbl.Call(this, slotRSSetViewports, uintptr(num), uintptr(viewports))
	runtime.KeepAlive(viewports)
}

func (nativeABI) RSSetScissorRects(this uintptr, num uint32, rects unsafe.Pointer) {
	vtbl.Call(this, slotRSSetScissorRects, uintptr(num), uintptr(rects))
	runtime.KeepAlive(rects)
}

func (nativeABI) RSGetViewports(this uintptr, num *uint32, viewports unsafe.Pointer) {
	vtbl.Call(this, slotRSGetViewports, uintptr(unsafe.Pointer(num)), uintptr(viewports))
	runtime.KeepAlive(num)
	runtime.KeepAlive(viewports)
}

func (nativeABI) RSGetScissorRects(this uintptr, num *uint32, rects unsafe.Pointer) {
	vtbl.Call(this, slotRSGetScissorRects, uintptr(unsafe.Pointer(num)), uintptr(rects))
	runtime.KeepAlive(num)
	runtime.KeepAlive(rects)
}

func (nativeABI) OMSetRenderTargets(this uintptr, num uint32, views unsafe.Pointer, dsv uintptr) {
	vtbl.Call(this, slotOMSetRenderTargets, uintptr(num), uintptr(views), dsv)
	runtime.KeepAlive(views)
}

func (nativeABI) OMSetRenderTargetsAndUnorderedAccessViews(this uintptr, numRTVs uint32, rtvs unsafe.Pointer, dsv uintptr,
	uavStart, numUAVs uint32, uavs unsafe.Pointer, counts unsafe.Pointer) {
	vtbl.Call(this, slotOMSetRenderTargetsAndUnorderedAccessViews,
		uintptr(numRTVs), uintptr(rtvs), dsv,
		uintptr(uavStart), uintptr(numUAVs), uintptr(uavs), uintptr(counts))
	runtime.KeepAlive(rtvs)
	runtime.KeepAlive(uavs)
	runtime.KeepAlive(counts)
}

func (nativeABI) OMGetRenderTargets(this uintptr, num uint32, views unsafe.Pointer, dsv *uintptr) {
	vtbl.Call(this, slotOMGetRenderTargets, uintptr(num), uintptr(views), uintptr(unsafe.Pointer(dsv)))
	runtime.KeepAlive(views)
	runtime.KeepAlive(dsv)
}

func (nativeABI) ClearRenderTargetView(this uintptr, rtv uintptr, rgba *[4]float32) {
	vtbl.Call(this, slotClearRenderTargetView, rtv, uintptr(unsafe.Pointer(rgba)))
	runtime.KeepAlive(rgba)
}

func (nativeABI) ClearState(this uintptr) {
	vtbl.Call(this, slotClearState)
}

func (nativeABI) Flush(this uintptr) {
	vtbl.Call(this, slotFlush)
}

func (nativeABI) ExecuteCommandList(this uintptr, list uintptr, restoreState bool) {
	vtbl.Call(this, slotExecuteCommandList, list, vtbl.Bool(restoreState))
}

func (nativeABI) FinishCommandList(this uintptr, restoreState bool, out *uintptr) dxbind.Result {
	r := vtbl.Call(this, slotFinishCommandList, vtbl.Bool(restoreState), uintptr(unsafe.Pointer(out)))
	runtime.KeepAlive(out)
	return dxbind.Result(int32(r))
}
