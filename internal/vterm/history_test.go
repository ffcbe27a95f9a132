package vterm

import (
	"path/filepath"
	"testing"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	return NewHistory(filepath.Join(t.TempDir(), "history.min"))
}

func TestHistoryAddThenUpReturnsLastEntry(t *testing.T) {
	h := newTestHistory(t)
	h.Add("one")
	if got := h.Up(""); got != "one" {
		t.Fatalf("Up() = %q, want %q", got, "one")
	}
}

func TestHistoryAddDuplicateDoesNotGrow(t *testing.T) {
	h := newTestHistory(t)
	h.Add("x")
	h.Add("x")
	if len(h.Entries()) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(h.Entries()))
	}
}

func TestHistoryAddDuplicateOfLastLeavesNavigationUntouched(t *testing.T) {
	h := newTestHistory(t)
	h.Add("one")
	h.Add("two")
	if got := h.Up("draft"); got != "two" {
		t.Fatalf("Up() = %q, want two", got)
	}

	h.Add("two") // re-submitting the entry currently navigated to

	if got := h.Up("ignored"); got != "one" {
		t.Fatalf("Up() after duplicate Add() = %q, want one (navigation continues instead of restarting)", got)
	}
	if got := h.Down(); got != "two" {
		t.Fatalf("Down() = %q, want two", got)
	}
	if got := h.Down(); got != "draft" {
		t.Fatalf("Down() = %q, want the original stash %q, not the overwritten input", got, "draft")
	}
}

func TestHistoryUpDownPreservesStashedInput(t *testing.T) {
	h := newTestHistory(t)
	h.Add("one")
	h.Add("two")

	if got := h.Up("draft"); got != "two" {
		t.Fatalf("first Up() = %q, want two", got)
	}
	if got := h.Up(""); got != "one" {
		t.Fatalf("second Up() = %q, want one", got)
	}
	if got := h.Down(); got != "two" {
		t.Fatalf("first Down() = %q, want two", got)
	}
	if got := h.Down(); got != "draft" {
		t.Fatalf("second Down() = %q, want draft (stashed input)", got)
	}
}

func TestHistoryResetThenDownReturnsEmpty(t *testing.T) {
	h := newTestHistory(t)
	h.Add("x")
	h.Reset()
	if got := h.Down(); got != "" {
		t.Fatalf("Down() after Reset() = %q, want empty", got)
	}
}

func TestHistoryUpOnEmptyHistoryReturnsEmpty(t *testing.T) {
	h := newTestHistory(t)
	if got := h.Up("draft"); got != "" {
		t.Fatalf("Up() on empty history = %q, want empty", got)
	}
}

func TestHistoryPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.min")

	h1 := NewHistory(path)
	h1.Add("first")
	h1.Add("second")

	h2 := NewHistory(path)
	entries := h2.Entries()
	if len(entries) != 2 || entries[0] != "first" || entries[1] != "second" {
		t.Fatalf("reloaded entries = %v, want [first second]", entries)
	}
}
