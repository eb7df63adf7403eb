// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gfx"
)

// stepCache holds the ordered draw steps of previous frames and a
// cursor marking the next slot to validate. The cursor rewinds to zero
// at every flush; the steps themselves survive, which is what makes
// frame-to-frame reuse possible.
//
// The invariant: once a frame's emission is complete, the entries in
// [0, cursor) are exactly the batches that frame requires, in order.
// A positional mismatch invalidates every entry from the cursor onward,
// since later entries can no longer be assumed to correspond to the
// same logical batches.
type stepCache struct {
	entries []cacheEntry
	cursor  int

	// skipped holds the positions of overruled entries the cursor has
	// advanced over after a cache hit but that no buffer draw of the
	// current frame has claimed yet. Buffer draws claim them oldest
	// first, refreshing the slot in place.
	skipped []int
}

// rewind resets the cursor for a new frame without clearing the cache.
func (c *stepCache) rewind() {
	c.cursor = 0
	c.skipped = c.skipped[:0]
}

// commit closes a batched pending step. Either the entry at the cursor
// already holds identical state and geometry (cache hit: the pending
// CPU buffers are discarded and the uploaded GPU buffers reused), or
// the tail of the cache is invalidated and the step is uploaded and
// appended. An empty pending step commits as a no-op.
func (c *stepCache) commit(dev Device, p *pendingStep) error {
	if p.empty() {
		return nil
	}
	defer p.reset()

	if c.cursor < len(c.entries) {
		if resident, ok := c.entries[c.cursor].(*residentStep); ok && resident.matches(p) {
			// Hit: keep the resident entry and its GPU buffers.
			c.cursor++

			// Overruled entries do not participate in diffing and
			// retain their position; move the cursor past them.
			for c.cursor < len(c.entries) {
				if _, over := c.entries[c.cursor].(*overruledStep); !over {
					break
				}
				c.skipped = append(c.skipped, c.cursor)
				c.cursor++
			}

			gfx.Logger().Debug("draw step cache hit", "position", c.cursor-1)
			return nil
		}

		// Miss: positional alignment is gone from here on.
		c.truncate(dev, c.cursor)
	}

	batch, err := dev.CreateBatch(p.verts, p.elems)
	if err != nil {
		return fmt.Errorf("upload draw step: %w", err)
	}

	c.entries = append(c.entries, &residentStep{
		state: p.state,
		verts: p.verts,
		elems: p.elems,
		batch: batch,
	})
	c.cursor = len(c.entries)

	gfx.Logger().Debug("draw step uploaded",
		"position", c.cursor-1,
		"vertices", len(p.verts)/vertexScalars,
		"indices", len(p.elems))
	return nil
}

// insertOverruled places an externally sourced step at the next
// position. No upload and no content comparison happen: the slot is
// refreshed unconditionally.
func (c *stepCache) insertOverruled(dev Device, s *overruledStep) {
	// A preceding cache hit may already have moved the cursor past this
	// step's slot; claim the oldest such slot and refresh it in place.
	if len(c.skipped) > 0 {
		c.entries[c.skipped[0]] = s
		c.skipped = c.skipped[1:]
		return
	}

	if c.cursor < len(c.entries) {
		if _, over := c.entries[c.cursor].(*overruledStep); over {
			c.entries[c.cursor] = s
			c.cursor++
			return
		}
		c.truncate(dev, c.cursor)
	}

	c.entries = append(c.entries, s)
	c.cursor = len(c.entries)
}

// truncate removes the entries in [from, len), releasing the GPU
// buffers they own.
func (c *stepCache) truncate(dev Device, from int) {
	for _, e := range c.entries[from:] {
		e.release(dev)
	}
	c.entries = c.entries[:from]

	gfx.Logger().Debug("draw step cache truncated", "length", from)
}

// replay issues one draw invocation per cached entry, in order.
func (c *stepCache) replay(dev Device) {
	for _, e := range c.entries {
		e.draw(dev)
	}
}

// releaseAll drops every entry and the GPU buffers they own.
func (c *stepCache) releaseAll(dev Device) {
	c.truncate(dev, 0)
	c.rewind()
}
