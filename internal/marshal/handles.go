package marshal

import (
	"fmt"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/com"
)

// KeepCounter is the UAV initial count that preserves the hidden counter.
const KeepCounter int32 = -1

// Handle is implemented by every typed wrapper around a com.Object.
type Handle interface {
	Object() *com.Object
}

// Address converts one optional handle. A nil handle yields 0; a
// released one is rejected.
func Address[H Handle](op, param string, h H) (uintptr, error) {
	if any(h) == nil {
		return 0, nil
	}
	obj := h.Object()
	if obj == nil {
		return 0, nil
	}
	addr, err := obj.Live()
	if err != nil {
		return 0, dxbind.NewArgumentError(op, param, dxbind.ErrUseAfterRelease)
	}
	return addr, nil
}

// Required converts one handle that must be present.
func Required[H Handle](op, param string, h H) (uintptr, error) {
	addr, err := Address(op, param, h)
	if err != nil {
		return 0, err
	}
	if addr == 0 {
		return 0, dxbind.NewArgumentError(op, param, dxbind.ErrNullArgument)
	}
	return addr, nil
}

// Addresses converts hs into a buffer of raw interface pointers in slot
// order. A nil slice or a nil element is a null argument; a released
// element is a use after release. An empty non-nil slice gives an empty
// buffer.
func Addresses[H Handle](a Arena, op, param string, hs []H) ([]uintptr, error) {
	if hs == nil {
		return nil, dxbind.NewArgumentError(op, param, dxbind.ErrNullArgument)
	}
	out := a.Pointers(len(hs))
	for i, h := range hs {
		addr, cause := live(h)
		if cause != nil {
			return nil, dxbind.NewArgumentError(op, fmt.Sprintf("%s[%d]", param, i), cause)
		}
		out[i] = addr
	}
	return out, nil
}

// live returns the address of a required handle, or the sentinel that
// rejects it.
func live[H Handle](h H) (uintptr, error) {
	if any(h) == nil {
		return 0, dxbind.ErrNullArgument
	}
	obj := h.Object()
	if obj == nil {
		return 0, dxbind.ErrNullArgument
	}
	addr, err := obj.Live()
	if err != nil {
		return 0, dxbind.ErrUseAfterRelease
	}
	return addr, nil
}

// RequireNonEmpty checks a sequence that must be present and non-empty.
func RequireNonEmpty(op, param string, n int, isNil bool) error {
	switch {
	case isNil:
		return dxbind.NewArgumentError(op, param, dxbind.ErrNullArgument)
	case n == 0:
		return dxbind.NewArgumentError(op, param, dxbind.ErrEmptyArgument)
	}
	return nil
}

// Counters returns the initial-count buffer paired with n views. A nil
// counts slice fills every slot with KeepCounter; otherwise counts must
// have exactly n elements.
func Counters(a Arena, op, param string, counts []int32, n int) ([]int32, error) {
	if counts == nil {
		out := a.Int32s(n)
		for i := range out {
			out[i] = KeepCounter
		}
		return out, nil
	}
	if len(counts) != n {
		return nil, &dxbind.ArgumentError{
			Op:    op,
			Param: fmt.Sprintf("%s (have %d, want %d)", param, len(counts), n),
			Err:   dxbind.ErrLengthMismatch,
		}
	}
	out := a.Int32s(n)
	copy(out, counts)
	return out, nil
}
