//go:build darwin || freebsd || linux || netbsd || windows

// Package vtbl calls COM methods through an object's vtable and plain C
// entry points by address.
package vtbl

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Supported reports whether native calls can be made on this platform.
const Supported = true

const ptrSize = unsafe.Sizeof(uintptr(0))

// Method returns the function pointer stored at slot in the vtable of
// the interface pointer this.
func Method(this uintptr, slot int) uintptr {
	vt := *(*uintptr)(unsafe.Pointer(this))
	return *(*uintptr)(unsafe.Pointer(vt + uintptr(slot)*ptrSize))
}

// Call invokes vtable slot of this with this as the implicit first
// argument and returns the raw return register.
// Small arities avoid building an argument slice.
func Call(this uintptr, slot int, args ...uintptr) uintptr {
	fn := Method(this, slot)
	var r uintptr
	switch len(args) {
	case 0:
		r, _, _ = purego.SyscallN(fn, this)
	case 1:
		r, _, _ = purego.SyscallN(fn, this, args[0])
	case 2:
		r, _, _ = purego.SyscallN(fn, this, args[0], args[1])
	case 3:
		r, _, _ = purego.SyscallN(fn, this, args[0], args[1], args[2])
	default:
		all := make([]uintptr, 0, 1+len(args))
		all = append(all, this)
		all = append(all, args...)
		r, _, _ = purego.SyscallN(fn, all...)
	}
	return r
}

// Proc invokes the C function at fn.
func Proc(fn uintptr, args ...uintptr) uintptr {
	r, _, _ := purego.SyscallN(fn, args...)
	return r
}

// Bool converts b to a Win32 BOOL argument.
func Bool(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}
