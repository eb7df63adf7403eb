// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "testing"

func TestContextMakeCurrent(t *testing.T) {
	ctx := NewContext(42)
	if got := ctx.ID(); got != 42 {
		t.Errorf("ID() = %d, want 42", got)
	}
	if got := ctx.Current(); got != 0 {
		t.Errorf("Current() on fresh context = %d, want 0", got)
	}

	ctx.MakeCurrent(7)
	if got := ctx.Current(); got != 7 {
		t.Errorf("Current() = %d, want 7", got)
	}

	ctx.MakeCurrent(0)
	if got := ctx.Current(); got != 0 {
		t.Errorf("Current() after deactivation = %d, want 0", got)
	}
}

func TestContextsAreIndependent(t *testing.T) {
	a := NewContext(1)
	b := NewContext(2)

	a.MakeCurrent(10)
	if got := b.Current(); got != 0 {
		t.Errorf("sibling context Current() = %d, want 0", got)
	}
}
