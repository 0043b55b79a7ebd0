package dxbind

import "fmt"

// Result is a native HRESULT. Negative values are failures.
type Result int32

// Well-known results. Failure codes are written as negative int32
// values; the comment gives the usual unsigned spelling.
const (
	SOK    Result = 0
	SFalse Result = 1

	ENotImpl     Result = -0x7fffbfff // 0x80004001
	EPointer     Result = -0x7fffbffd // 0x80004003
	EFail        Result = -0x7fffbffb // 0x80004005
	EOutOfMemory Result = -0x7ff8fff2 // 0x8007000E
	EInvalidArg  Result = -0x7ff8ffa9 // 0x80070057

	DXGIErrorInvalidCall   Result = -0x7785ffff // 0x887A0001
	DXGIErrorUnsupported   Result = -0x7785fffc // 0x887A0004
	DXGIErrorDeviceRemoved Result = -0x7785fffb // 0x887A0005
	DXGIErrorDeviceReset   Result = -0x7785fff9 // 0x887A0007
)

// Succeeded reports whether r is a success code.
func (r Result) Succeeded() bool { return r >= 0 }

// Failed reports whether r is a failure code.
func (r Result) Failed() bool { return r < 0 }

// Err returns nil for success codes and a *NativeError for failures.
func (r Result) Err(op string) error {
	if r.Succeeded() {
		return nil
	}
	return &NativeError{Op: op, Code: r}
}

var resultNames = map[Result]string{
	SOK:                    "S_OK",
	SFalse:                 "S_FALSE",
	ENotImpl:               "E_NOTIMPL",
	EPointer:               "E_POINTER",
	EFail:                  "E_FAIL",
	EOutOfMemory:           "E_OUTOFMEMORY",
	EInvalidArg:            "E_INVALIDARG",
	DXGIErrorInvalidCall:   "DXGI_ERROR_INVALID_CALL",
	DXGIErrorDeviceRemoved: "DXGI_ERROR_DEVICE_REMOVED",
	DXGIErrorDeviceReset:   "DXGI_ERROR_DEVICE_RESET",
	DXGIErrorUnsupported:   "DXGI_ERROR_UNSUPPORTED",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("HRESULT(0x%08X)", uint32(r))
}
