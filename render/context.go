// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "sync"

// Context tracks which target is current on one native graphics
// context. Targets sharing a window or device share one Context; a
// target activating itself records its ID here, so the next operation
// on a sibling target knows the GPU state must be re-synchronized.
//
// The current-target field is owned by the context rather than by a
// process-wide registry, so there is no hidden global state. Activation
// itself is not safe against simultaneous callers; the mutex only keeps
// the field's reads and writes coherent.
type Context struct {
	mu      sync.Mutex
	id      uint64
	current uint64 // ID of the current target, 0 = none
}

// NewContext creates a context with the given native context ID.
func NewContext(id uint64) *Context {
	return &Context{id: id}
}

// ID returns the native context ID.
func (c *Context) ID() uint64 {
	return c.id
}

// Current returns the ID of the target currently active on the
// context, or 0 when none is.
func (c *Context) Current() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// MakeCurrent records the given target as the context's current one.
// Passing 0 deactivates the current target.
func (c *Context) MakeCurrent(targetID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = targetID
}
