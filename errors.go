package dxbind

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrInvalidArgument is matched by every local precondition failure.
	// No native call is made when it is returned.
	ErrInvalidArgument = errors.New("dxbind: invalid argument")

	// ErrNullArgument is returned when a required handle or sequence is nil.
	ErrNullArgument = errors.New("dxbind: null argument")

	// ErrEmptyArgument is returned when a sequence must not be empty.
	ErrEmptyArgument = errors.New("dxbind: empty argument")

	// ErrLengthMismatch is returned when paired sequences differ in length.
	ErrLengthMismatch = errors.New("dxbind: length mismatch")

	// ErrUseAfterRelease is returned when a released handle is passed on
	// or released again.
	ErrUseAfterRelease = errors.New("dxbind: use after release")

	// ErrNativeCall is matched by every *NativeError.
	ErrNativeCall = errors.New("dxbind: native call failed")

	// ErrUnsupported is returned when the native runtime is not available
	// on this platform.
	ErrUnsupported = errors.New("dxbind: native runtime not available")
)

// ArgumentError describes a precondition violation detected before a
// native call.
type ArgumentError struct {
	// Op is the operation that rejected the argument, e.g. "OMSetRenderTargets".
	Op string

	// Param names the offending parameter.
	Param string

	// Err is one of ErrNullArgument, ErrEmptyArgument, ErrLengthMismatch
	// or ErrUseAfterRelease.
	Err error
}

// NewArgumentError returns an *ArgumentError for op and param.
func NewArgumentError(op, param string, err error) *ArgumentError {
	return &ArgumentError{Op: op, Param: param, Err: err}
}

func (e *ArgumentError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Param)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Param)
}

// Unwrap reports both the specific cause and ErrInvalidArgument.
func (e *ArgumentError) Unwrap() []error {
	return []error{e.Err, ErrInvalidArgument}
}

// NativeError is a failed HRESULT returned by a native call.
type NativeError struct {
	Op   string
	Code Result
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: %#x", e.Op, uint32(e.Code))
}

// Unwrap returns ErrNativeCall.
func (e *NativeError) Unwrap() error {
	return ErrNativeCall
}

// Is reports whether target is a *NativeError with the same code.
func (e *NativeError) Is(target error) bool {
	t, ok := target.(*NativeError)
	return ok && t.Code == e.Code
}
