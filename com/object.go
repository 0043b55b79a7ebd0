// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"fmt"
	"sync"

	"github.com/gogpu/dxbind"
)

// Object is a proxy for one native interface pointer.
//
// Proxies are shared: wrapping an address that already has a live proxy
// in the same Table returns that proxy and records one more holder. Each
// holder calls Release exactly once. The last Release drops the native
// reference; after that the Object keeps its address for identity but
// refuses to hand it to native code.
type Object struct {
	st *state
}

// state is kept apart from Object so the GC cleanup can run without
// resurrecting the proxy.
type state struct {
	table *Table
	addr  uintptr

	mu       sync.Mutex
	holders  int
	released bool
}

// Address returns the raw interface pointer. It is valid after Release
// for comparison only. A nil Object has address 0.
func (o *Object) Address() uintptr {
	if o == nil {
		return 0
	}
	return o.st.addr
}

// Live returns the address if the object may still be passed to native
// code.
func (o *Object) Live() (uintptr, error) {
	if o == nil {
		return 0, dxbind.ErrNullArgument
	}
	o.st.mu.Lock()
	defer o.st.mu.Unlock()
	if o.st.released {
		return 0, fmt.Errorf("%w: %#x", dxbind.ErrUseAfterRelease, o.st.addr)
	}
	return o.st.addr, nil
}

// Released reports whether the native reference has been dropped.
func (o *Object) Released() bool {
	if o == nil {
		return true
	}
	o.st.mu.Lock()
	defer o.st.mu.Unlock()
	return o.st.released
}

// Table returns the table the object belongs to.
func (o *Object) Table() *Table {
	if o == nil {
		return nil
	}
	return o.st.table
}

// Holders returns the number of outstanding Release calls owed.
func (o *Object) Holders() int {
	if o == nil {
		return 0
	}
	o.st.mu.Lock()
	defer o.st.mu.Unlock()
	return o.st.holders
}

// Release drops one holder. The last holder releases the native
// reference. Releasing an already released object returns an error
// wrapping dxbind.ErrUseAfterRelease and has no native effect.
func (o *Object) Release() error {
	if o == nil {
		return dxbind.ErrNullArgument
	}
	st := o.st
	st.mu.Lock()
	if st.released {
		st.mu.Unlock()
		return fmt.Errorf("com: release %#x: %w", st.addr, dxbind.ErrUseAfterRelease)
	}
	st.holders--
	if st.holders > 0 {
		st.mu.Unlock()
		return nil
	}
	st.released = true
	st.mu.Unlock()

	st.table.forget(st)
	n := st.table.rt.Release(st.addr)
	dxbind.Logger().Debug("com: released", "addr", fmt.Sprintf("%#x", st.addr), "native_refs", n)
	return nil
}

// String formats the object as its address.
func (o *Object) String() string {
	return fmt.Sprintf("com.Object(%#x)", o.Address())
}

// Equal reports whether a and b refer to the same native object.
// Two nil objects are equal.
func Equal(a, b *Object) bool {
	return a.Address() == b.Address()
}
