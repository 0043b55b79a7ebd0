// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d3d11 binds the Direct3D 11 device-context state-setting and
// command-list capture path.
//
// A [DeviceContext] accepts Go slices and typed view wrappers and turns
// them into the count-prefixed pointer arrays the native calls expect.
// Every binding operation has one canonical N-ary form; the single-item
// forms are thin wrappers over it:
//
//	ctx.RSSetViewport(d3d11.Viewport{Width: 800, Height: 600, MaxDepth: 1})
//	ctx.OMSetRenderTargets([]*d3d11.RenderTargetView{rtv0, rtv1}, dsv)
//	ctx.OMSetRenderTargetsAndUnorderedAccessViews(rtvs, nil, 1, uavs, nil)
//
// Arguments are validated before the native call. A rejected call makes
// no native call and returns an error matching dxbind.ErrInvalidArgument.
//
// # Command lists
//
// A deferred context records commands until [DeviceContext.FinishCommandList]
// captures them. FinishCommandList returns a new [CommandList] or an
// error; [DeviceContext.FinishCommandListInto] writes into a caller-held
// CommandList and returns the raw [dxbind.Result] instead.
//
// # Threading
//
// A context is single-threaded. Nothing in this package locks; callers
// serialize access to each context.
package d3d11
