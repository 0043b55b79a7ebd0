package marshal

import "unsafe"

// Value is a pointer-free scalar or vector that can be staged as a raw
// property value.
type Value interface {
	~uint32 | ~int32 | ~float32 | ~[2]float32 | ~[3]float32 | ~[4]float32
}

// Stage copies v into arena scratch memory and returns its address and
// size in bytes.
func Stage[T Value](a Arena, v T) (unsafe.Pointer, uint32) {
	p, size := Scratch[T](a)
	*(*T)(p) = v
	return p, size
}

// Scratch returns zeroed, 8-byte aligned scratch memory sized for one T
// for a native call to write into.
func Scratch[T Value](a Arena) (unsafe.Pointer, uint32) {
	var zero T
	size := unsafe.Sizeof(zero)
	w := a.words(int((size + 7) / 8))
	return unsafe.Pointer(&w[0]), uint32(size)
}

// Load reads a T back from memory returned by Scratch.
func Load[T Value](p unsafe.Pointer) T {
	return *(*T)(p)
}
