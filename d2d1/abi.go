package d2d1

import (
	"runtime"
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/internal/vtbl"
)

// ABI is the native call boundary for ID2D1DeviceContext effect
// creation and ID2D1Properties. Every method takes the interface
// pointer first.
type ABI interface {
	CreateEffect(this uintptr, clsid *ole.GUID, out *uintptr) dxbind.Result
	GetPropertyCount(this uintptr) uint32
	SetValue(this uintptr, index, typ uint32, data unsafe.Pointer, size uint32) dxbind.Result
	GetValue(this uintptr, index, typ uint32, data unsafe.Pointer, size uint32) dxbind.Result
}

const (
	slotCreateEffect = 63 // ID2D1DeviceContext

	// ID2D1Properties
	slotGetPropertyCount = 3
	slotSetValue         = 9
	slotGetValue         = 11
)

type nativeABI struct{}

// NativeABI returns the ABI that calls the loaded Direct2D runtime.
func NativeABI() ABI { return nativeABI{} }

func (nativeABI) CreateEffect(this uintptr, clsid *ole.GUID, out *uintptr) dxbind.Result {
	r := vtbl.Call(this, slotCreateEffect, uintptr(unsafe.Pointer(clsid)), uintptr(unsafe.Pointer(out)))
	runtime.KeepAlive(clsid)
	runtime.KeepAlive(out)
	return dxbind.Result(int32(r))
}

func (nativeABI) GetPropertyCount(this uintptr) uint32 {
	return uint32(vtbl.Call(this, slotGetPropertyCount))
}

func (nativeABI) SetValue(this uintptr, index, typ uint32, data unsafe.Pointer, size uint32) dxbind.Result {
	r := vtbl.Call(this, slotSetValue, uintptr(index), uintptr(typ), uintptr(data), uintptr(size))
	runtime.KeepAlive(data)
	return dxbind.Result(int32(r))
}

func (nativeABI) GetValue(this uintptr, index, typ uint32, data unsafe.Pointer, size uint32) dxbind.Result {
	r := vtbl.Call(this, slotGetValue, uintptr(index), uintptr(typ), uintptr(data), uintptr(size))
	runtime.KeepAlive(data)
	return dxbind.Result(int32(r))
}
