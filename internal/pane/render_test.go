package pane

import (
	"testing"

	"github.com/abdullathedruid/minsh/internal/grid"
)

func TestRenderCompositesLeafIntoFrame(t *testing.T) {
	p := New(10, 3, "/tmp", nil, nil)
	for _, b := range []byte("hi") {
		p.Emulator.PutChar(b)
	}
	tree := NewTree(p)
	tree.Root.Rect = Rect{0, 0, 10, 3}
	tree.Recompute(tree.Root.Rect)

	frame := NewFrame(10, 3)
	Render(frame, tree)

	if frame.Cells[0].Codepoint != 'h' || frame.Cells[1].Codepoint != 'i' {
		t.Fatalf("frame top-left = %q%q, want hi", frame.Cells[0].Codepoint, frame.Cells[1].Codepoint)
	}
}

func TestRenderCursorPositionTracksActivePane(t *testing.T) {
	p := New(10, 3, "/tmp", nil, nil)
	for _, b := range []byte("ab") {
		p.Emulator.PutChar(b)
	}
	tree := NewTree(p)
	tree.Root.Rect = Rect{5, 2, 10, 3}
	tree.Recompute(tree.Root.Rect)

	frame := NewFrame(20, 10)
	Render(frame, tree)

	if frame.CursorX != 7 || frame.CursorY != 2 {
		t.Fatalf("cursor = (%d,%d), want (7,2)", frame.CursorX, frame.CursorY)
	}
}

func TestViewportCorrectnessAtBottomMatchesLastRows(t *testing.T) {
	p := New(10, 3, "/tmp", nil, nil)
	for i := 0; i < 10; i++ {
		p.Grid.ScrollUp()
	}
	// Write a marker into the very last line.
	last := len(p.Grid.Lines) - 1
	p.Grid.WriteCell(0, last, grid.Cell{Codepoint: 'Z', Attr: grid.DefaultAttr})

	tree := NewTree(p)
	tree.Root.Rect = Rect{0, 0, 10, 3}
	tree.Recompute(tree.Root.Rect)

	frame := NewFrame(10, 3)
	Render(frame, tree)

	if frame.Cells[2*10].Codepoint != 'Z' {
		t.Fatalf("bottom row of frame = %q, want Z at the last written line", frame.Cells[2*10].Codepoint)
	}
}

func TestScrollbarDrawnWhenScrollbackExceedsHeight(t *testing.T) {
	p := New(10, 3, "/tmp", nil, nil)
	for i := 0; i < 10; i++ {
		p.Grid.ScrollUp()
	}
	tree := NewTree(p)
	tree.Root.Rect = Rect{0, 0, 10, 3}
	tree.Recompute(tree.Root.Rect)

	frame := NewFrame(10, 3)
	Render(frame, tree)

	col := 9 // r.X + r.W - 1
	sawTrackOrThumb := false
	for y := 0; y < 3; y++ {
		c := frame.Cells[y*10+col]
		if c.Codepoint == scrollbarTrack || c.Codepoint == scrollbarThumb {
			sawTrackOrThumb = true
		}
	}
	if !sawTrackOrThumb {
		t.Fatalf("no scrollbar drawn despite scrollback exceeding rect height")
	}
}
