// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package com

import "github.com/gogpu/dxbind/internal/vtbl"

// IUnknown vtable slots.
const (
	slotAddRef  = 1
	slotRelease = 2
)

// nativeRuntime calls IUnknown::AddRef and IUnknown::Release through the
// object's vtable.
type nativeRuntime struct{}

// NativeRuntime returns the Runtime that talks to real COM objects.
func NativeRuntime() Runtime { return nativeRuntime{} }

func (nativeRuntime) AddRef(this uintptr) uint32 {
	return uint32(vtbl.Call(this, slotAddRef))
}

func (nativeRuntime) Release(this uintptr) uint32 {
	return uint32(vtbl.Call(this, slotRelease))
}
