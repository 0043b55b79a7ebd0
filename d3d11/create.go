package d3d11

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/internal/vtbl"
)

// DriverType is D3D_DRIVER_TYPE.
type DriverType uint32

const (
	DriverUnknown   DriverType = 0
	DriverHardware  DriverType = 1
	DriverReference DriverType = 2
	DriverNull      DriverType = 3
	DriverSoftware  DriverType = 4
	DriverWARP      DriverType = 5
)

// CreateFlags is D3D11_CREATE_DEVICE_FLAG.
type CreateFlags uint32

const (
	CreateSingleThreaded CreateFlags = 0x1
	CreateDebug          CreateFlags = 0x2
	CreateBGRASupport    CreateFlags = 0x20
)

// FeatureLevel is D3D_FEATURE_LEVEL.
type FeatureLevel uint32

func (l FeatureLevel) String() string {
	return fmt.Sprintf("%d_%d", l>>12, (l>>8)&0xF)
}

const sdkVersion = 7

// CreateDevice loads the Direct3D 11 runtime and creates a device on the
// default adapter. On Windows the system d3d11.dll is used; on Unix a
// DXVK native build is looked up instead. ErrUnsupported is returned
// when neither is available.
//
// The returned device uses the native ABI. Options may still choose the
// proxy table.
func CreateDevice(driver DriverType, flags CreateFlags, opts ...Option) (*Device, FeatureLevel, error) {
	const op = "D3D11CreateDevice"
	fn, err := loadCreateDevice()
	if err != nil {
		return nil, 0, err
	}

	var dev uintptr
	var level uint32
	r := dxbind.Result(int32(vtbl.Proc(fn,
		0,                               // pAdapter
		uintptr(driver),                 // DriverType
		0,                               // Software
		uintptr(flags),                  // Flags
		0,                               // pFeatureLevels
		0,                               // FeatureLevels
		sdkVersion,                      // SDKVersion
		uintptr(unsafe.Pointer(&dev)),   // ppDevice
		uintptr(unsafe.Pointer(&level)), // pFeatureLevel
		0,                               // ppImmediateContext
	)))
	runtime.KeepAlive(&dev)
	runtime.KeepAlive(&level)
	if r.Failed() {
		return nil, 0, r.Err(op)
	}

	o := buildOptions(opts)
	o.abi = NativeABI()
	d, err := attachDevice(dev, o)
	if err != nil {
		return nil, 0, err
	}
	dxbind.Logger().Debug("d3d11: device created",
		"driver", uint32(driver), "feature_level", FeatureLevel(level).String())
	return d, FeatureLevel(level), nil
}
