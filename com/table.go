// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"fmt"
	"runtime"
	"sync"
	"weak"

	"github.com/gogpu/dxbind"
)

// Runtime is the IUnknown reference-counting boundary.
// Both methods return the new native reference count.
type Runtime interface {
	AddRef(this uintptr) uint32
	Release(this uintptr) uint32
}

// Table maps native addresses to their live proxies.
//
// A Table never keeps a proxy alive on its own: entries hold weak
// pointers, and a proxy dropped without Release is released by a
// cleanup hook when the GC reclaims it.
type Table struct {
	rt Runtime

	mu   sync.Mutex
	live map[uintptr]entry
}

type entry struct {
	obj weak.Pointer[Object]
	st  *state
}

// NewTable creates a table over rt.
func NewTable(rt Runtime) *Table {
	if rt == nil {
		panic("com: NewTable runtime is nil")
	}
	return &Table{
		rt:   rt,
		live: make(map[uintptr]entry),
	}
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide table over the native runtime.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable(NativeRuntime())
	})
	return defaultTable
}

// Runtime returns the reference-counting runtime of the table.
func (t *Table) Runtime() Runtime {
	return t.rt
}

// Wrap returns a proxy for addr, adding one native reference if no live
// proxy exists yet. The caller owns one Release.
func (t *Table) Wrap(addr uintptr) (*Object, error) {
	return t.acquire(addr, false)
}

// Attach takes ownership of a reference produced by a native creation
// or query call. No native reference is added. If a live proxy already
// exists the surplus reference is released at once, so the native
// count stays at one per live proxy. The caller owns one Release.
func (t *Table) Attach(addr uintptr) (*Object, error) {
	return t.acquire(addr, true)
}

func (t *Table) acquire(addr uintptr, owned bool) (*Object, error) {
	if addr == 0 {
		return nil, dxbind.NewArgumentError("", "addr", dxbind.ErrNullArgument)
	}

	t.mu.Lock()
	if e, ok := t.live[addr]; ok {
		if obj := e.obj.Value(); obj != nil && obj.join() {
			t.mu.Unlock()
			if owned {
				t.rt.Release(addr)
			}
			return obj, nil
		}
	}

	st := &state{table: t, addr: addr, holders: 1}
	obj := &Object{st: st}
	t.live[addr] = entry{obj: weak.Make(obj), st: st}
	t.mu.Unlock()

	if !owned {
		t.rt.AddRef(addr)
	}
	runtime.AddCleanup(obj, reclaim, st)
	dxbind.Logger().Debug("com: attached", "addr", fmt.Sprintf("%#x", addr), "owned", owned)
	return obj, nil
}

// join adds a holder unless the object has already been released.
func (o *Object) join() bool {
	o.st.mu.Lock()
	defer o.st.mu.Unlock()
	if o.st.released {
		return false
	}
	o.st.holders++
	return true
}

// forget removes st from the table if it is still the current entry.
func (t *Table) forget(st *state) {
	t.mu.Lock()
	if e, ok := t.live[st.addr]; ok && e.st == st {
		delete(t.live, st.addr)
	}
	t.mu.Unlock()
}

// reclaim runs when a proxy is collected. Holders that never called
// Release are settled with a single native Release.
func reclaim(st *state) {
	st.mu.Lock()
	if st.released {
		st.mu.Unlock()
		return
	}
	st.released = true
	holders := st.holders
	st.mu.Unlock()

	st.table.forget(st)
	st.table.rt.Release(st.addr)
	dxbind.Logger().Warn("com: object collected without Release",
		"addr", fmt.Sprintf("%#x", st.addr), "holders", holders)
}

// Len returns the number of live proxies.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Lookup returns the live proxy for addr without adding a holder.
func (t *Table) Lookup(addr uintptr) (*Object, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.live[addr]
	if !ok {
		return nil, false
	}
	obj := e.obj.Value()
	return obj, obj != nil
}
