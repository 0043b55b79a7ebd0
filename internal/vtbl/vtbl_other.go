//go:build !(darwin || freebsd || linux || netbsd || windows)

package vtbl

// Supported reports whether native calls can be made on this platform.
const Supported = false

func Method(this uintptr, slot int) uintptr {
	panic("vtbl: native calls are not supported on this platform")
}

func Call(this uintptr, slot int, args ...uintptr) uintptr {
	panic("vtbl: native calls are not supported on this platform")
}

func Proc(fn uintptr, args ...uintptr) uintptr {
	panic("vtbl: native calls are not supported on this platform")
}

// Bool converts b to a Win32 BOOL argument.
func Bool(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}
