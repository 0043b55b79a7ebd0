// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package com wraps native COM interface pointers in reference-counted
// Go proxies.
//
// A [Table] owns the mapping from native address to proxy. [Table.Wrap]
// adds a native reference for an address obtained elsewhere;
// [Table.Attach] adopts a reference returned by a native creation call.
// Every successful Wrap or Attach is balanced by exactly one
// [Object.Release]. Proxies compare equal by address ([Equal]), so two
// wrappers for the same native object are interchangeable.
//
// The native reference counts are the only state shared between calls.
// A Table serializes access to its own map; releasing the same proxy
// from several goroutines at once is the caller's bug.
package com
