// Package marshal stages Go arguments into the contiguous buffers native
// calls read.
//
// Buffers come from an [Arena] that lives for one native call:
//
//	a := marshal.Acquire()
//	defer a.Release()
//	ptrs, err := marshal.Addresses(a, "OMSetRenderTargets", "renderTargetViews", rtvs)
//	...
//
// Nothing handed out by an Arena may be retained after Release.
package marshal

import (
	"sync"
	"unsafe"
)

const (
	minSlab = 16

	// Arenas that grew past this many elements in any slab are not pooled.
	maxPooledSlab = 4096
)

// Arena hands out bump-allocated slabs for one native call. It is a
// small value: copies share the slabs, and every copy stops working once
// any of them is released, even after the slabs are reused by a later
// Acquire. Slices returned by one Arena never overlap.
type Arena struct {
	s   *slabs
	gen uint64
}

type slabs struct {
	ptrs []uintptr
	i32  []int32
	raw  []uint64

	// gen is bumped by every Release.
	gen uint64
}

var slabPool = sync.Pool{
	New: func() any { return new(slabs) },
}

// Acquire returns an empty arena backed by pooled slabs.
func Acquire() Arena {
	s := slabPool.Get().(*slabs)
	return Arena{s: s, gen: s.gen}
}

// Release returns the slabs to the pool. The arena and everything it
// handed out must not be used afterwards.
func (a Arena) Release() {
	s := a.checked()
	s.gen++
	if cap(s.ptrs) > maxPooledSlab || cap(s.i32) > maxPooledSlab || cap(s.raw) > maxPooledSlab {
		return
	}
	s.ptrs = s.ptrs[:0]
	s.i32 = s.i32[:0]
	s.raw = s.raw[:0]
	slabPool.Put(s)
}

func (a Arena) checked() *slabs {
	if a.s == nil || a.s.gen != a.gen {
		panic("marshal: arena used after Release")
	}
	return a.s
}

// Pointers returns n zeroed pointer-sized slots.
func (a Arena) Pointers(n int) []uintptr {
	return bump(&a.checked().ptrs, n)
}

// Int32s returns n zeroed int32 slots.
func (a Arena) Int32s(n int) []int32 {
	return bump(&a.checked().i32, n)
}

// words returns n zeroed 8-byte words of untyped scratch memory.
func (a Arena) words(n int) []uint64 {
	return bump(&a.checked().raw, n)
}

// bump carves n elements off the end of *buf. When the slab is full a
// new one is started; slices already handed out keep the old one alive.
func bump[T any](buf *[]T, n int) []T {
	l := len(*buf)
	if l+n > cap(*buf) {
		*buf = make([]T, 0, max(2*cap(*buf), n, minSlab))
		l = 0
	}
	s := (*buf)[l : l+n : l+n]
	*buf = (*buf)[:l+n]
	clear(s)
	return s
}

// Slice returns the address of the first element of vs, or nil when vs
// is empty. No copy is made; T must match the native layout.
func Slice[T any](vs []T) unsafe.Pointer {
	if len(vs) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(vs))
}

// One copies v into arena scratch memory and returns its address, the
// N=1 form of Slice. T must be pointer-free and match the native layout.
func One[T any](a Arena, v T) unsafe.Pointer {
	var zero T
	w := a.words(int((unsafe.Sizeof(zero) + 7) / 8))
	p := unsafe.Pointer(unsafe.SliceData(w))
	*(*T)(p) = v
	return p
}
