package d3d11

import (
	"unsafe"

	"github.com/gogpu/dxbind"
)

// ABI is the native call boundary for ID3D11Device and
// ID3D11DeviceContext. Every method takes the interface pointer first,
// followed by the native arguments in declaration order.
//
// Out-of-process or test implementations must copy any buffer they need
// to keep; buffers are only valid for the duration of the call.
type ABI interface {
	// ID3D11Device
	CreateDeferredContext(this uintptr, flags uint32, out *uintptr) dxbind.Result
	GetImmediateContext(this uintptr, out *uintptr)

	// ID3D11DeviceContext
	GetType(this uintptr) uint32
	RSSetViewports(this uintptr, num uint32, viewports unsafe.Pointer)
	RSSetScissorRects(this uintptr, num uint32, rects unsafe.Pointer)
	RSGetViewports(this uintptr, num *uint32, viewports unsafe.Pointer)
	RSGetScissorRects(this uintptr, num *uint32, rects unsafe.Pointer)
	OMSetRenderTargets(this uintptr, num uint32, views unsafe.Pointer, dsv uintptr)
	OMSetRenderTargetsAndUnorderedAccessViews(this uintptr, numRTVs uint32, rtvs unsafe.Pointer, dsv uintptr,
		uavStart, numUAVs uint32, uavs unsafe.Pointer, counts unsafe.Pointer)
	OMGetRenderTargets(this uintptr, num uint32, views unsafe.Pointer, dsv *uintptr)
	ClearRenderTargetView(this uintptr, rtv uintptr, rgba *[4]float32)
	ClearState(this uintptr)
	Flush(this uintptr)
	ExecuteCommandList(this uintptr, list uintptr, restoreState bool)
	FinishCommandList(this uintptr, restoreState bool, out *uintptr) dxbind.Result
}
