// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fakenative is an in-memory stand-in for the native Direct3D 11
// and Direct2D runtime, used by tests.
//
// Objects are plain integers handed out from a private address range and
// are never dereferenced. Every reference-count change, every call and a
// byte copy of every buffer passed to a call are recorded so tests can
// check balancing, call counts and exact argument bytes.
package fakenative

import (
	"fmt"
	"sync"

	"github.com/gogpu/dxbind"
)

// Kind names the native interface a fake object implements.
type Kind string

// Object kinds.
const (
	KindDevice              Kind = "ID3D11Device"
	KindDeviceContext       Kind = "ID3D11DeviceContext"
	KindRenderTargetView    Kind = "ID3D11RenderTargetView"
	KindDepthStencilView    Kind = "ID3D11DepthStencilView"
	KindUnorderedAccessView Kind = "ID3D11UnorderedAccessView"
	KindCommandList         Kind = "ID3D11CommandList"
	KindD2DDeviceContext    Kind = "ID2D1DeviceContext"
	KindEffect              Kind = "ID2D1Effect"
)

// Object is one fake native object.
type Object struct {
	Addr uintptr
	Kind Kind

	refs     int32
	addRefs  int
	releases int

	ctx    *contextState
	dev    *deviceState
	effect *effectState
	list   *commandListState
}

// Call is one recorded native call.
type Call struct {
	Method string
	This   uintptr

	// Args holds the scalar arguments in declaration order. Pointer
	// arguments appear as 0 or 1 (null or non-null).
	Args []uint64

	// Data holds a copy of every buffer argument, taken during the call.
	Data [][]byte
}

// Native is a fake native runtime. It implements com.Runtime, d3d11.ABI
// and d2d1.ABI. The zero value is not usable; call New.
type Native struct {
	mu      sync.Mutex
	next    uintptr
	objects map[uintptr]*Object
	calls   []Call
	fail    map[string]dxbind.Result

	effects map[string]EffectSchema

	violations []string
}

// New returns an empty fake runtime.
func New() *Native {
	return &Native{
		next:    0x10000,
		objects: make(map[uintptr]*Object),
		fail:    make(map[string]dxbind.Result),
		effects: make(map[string]EffectSchema),
	}
}

// NewObject creates an object of kind holding one reference.
func (n *Native) NewObject(kind Kind) uintptr {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.newObjectLocked(kind).Addr
}

func (n *Native) newObjectLocked(kind Kind) *Object {
	addr := n.next
	n.next += 0x40
	obj := &Object{Addr: addr, Kind: kind, refs: 1}
	n.objects[addr] = obj
	return obj
}

func (n *Native) objectLocked(addr uintptr, kind Kind) *Object {
	obj, ok := n.objects[addr]
	if !ok {
		n.violations = append(n.violations, fmt.Sprintf("unknown object %#x", addr))
		return nil
	}
	if obj.refs <= 0 {
		n.violations = append(n.violations, fmt.Sprintf("%s %#x used after final release", obj.Kind, addr))
	}
	if kind != "" && obj.Kind != kind {
		n.violations = append(n.violations, fmt.Sprintf("%#x is %s, want %s", addr, obj.Kind, kind))
	}
	return obj
}

// AddRef implements IUnknown::AddRef.
func (n *Native) AddRef(this uintptr) uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	obj := n.objectLocked(this, "")
	if obj == nil {
		return 0
	}
	obj.refs++
	obj.addRefs++
	return uint32(obj.refs)
}

// Release implements IUnknown::Release.
func (n *Native) Release(this uintptr) uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	obj := n.objectLocked(this, "")
	if obj == nil {
		return 0
	}
	obj.refs--
	obj.releases++
	if obj.refs < 0 {
		n.violations = append(n.violations, fmt.Sprintf("%s %#x over-released", obj.Kind, this))
		return 0
	}
	return uint32(obj.refs)
}

// Refs returns the current reference count of addr.
func (n *Native) Refs(addr uintptr) int32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if obj, ok := n.objects[addr]; ok {
		return obj.refs
	}
	return 0
}

// RefCalls returns how many times AddRef and Release were called on addr.
func (n *Native) RefCalls(addr uintptr) (addRefs, releases int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if obj, ok := n.objects[addr]; ok {
		return obj.addRefs, obj.releases
	}
	return 0, 0
}

// Kind returns the kind of addr, or "" if unknown.
func (n *Native) Kind(addr uintptr) Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	if obj, ok := n.objects[addr]; ok {
		return obj.Kind
	}
	return ""
}

// Objects returns the addresses of all objects of kind, in creation order.
func (n *Native) Objects(kind Kind) []uintptr {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []uintptr
	for addr := uintptr(0x10000); addr < n.next; addr += 0x40 {
		if obj, ok := n.objects[addr]; ok && obj.Kind == kind {
			out = append(out, addr)
		}
	}
	return out
}

// Violations returns protocol errors observed so far: unknown objects,
// over-release, use after final release, kind mismatches.
func (n *Native) Violations() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.violations...)
}

// Fail makes every later call to method return r until cleared with
// Fail(method, dxbind.SOK).
func (n *Native) Fail(method string, r dxbind.Result) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if r.Succeeded() {
		delete(n.fail, method)
		return
	}
	n.fail[method] = r
}

func (n *Native) failureLocked(method string) (dxbind.Result, bool) {
	r, ok := n.fail[method]
	return r, ok
}

// Calls returns a copy of the call log.
func (n *Native) Calls() []Call {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Call(nil), n.calls...)
}

// CallCount returns how many times method was called.
func (n *Native) CallCount(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, call := range n.calls {
		if call.Method == method {
			c++
		}
	}
	return c
}

// LastCall returns the most recent call to method.
func (n *Native) LastCall(method string) (Call, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.calls) - 1; i >= 0; i-- {
		if n.calls[i].Method == method {
			return n.calls[i], true
		}
	}
	return Call{}, false
}

// ResetCalls clears the call log.
func (n *Native) ResetCalls() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = n.calls[:0]
}

func (n *Native) recordLocked(method string, this uintptr, args []uint64, data ...[]byte) {
	n.calls = append(n.calls, Call{Method: method, This: this, Args: args, Data: data})
}
