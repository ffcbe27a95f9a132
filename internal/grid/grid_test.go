package grid

import "testing"

func TestNewDimensions(t *testing.T) {
	g := New(80, 24)
	if g.Cols != 80 || g.Rows != 24 {
		t.Fatalf("New(80,24) = %dx%d, want 80x24", g.Cols, g.Rows)
	}
	if len(g.Lines) != 24 {
		t.Fatalf("len(Lines) = %d, want 24", len(g.Lines))
	}
	for _, line := range g.Lines {
		if len(line.Cells) != 80 {
			t.Fatalf("line has %d cells, want 80", len(line.Cells))
		}
	}
}

func TestScrollbackCap(t *testing.T) {
	g := New(10, 5)
	for i := 0; i < 3000; i++ {
		g.ScrollUp()
		g.WriteCell(0, len(g.Lines)-1, Cell{Codepoint: rune('a' + i%26), Attr: DefaultAttr})
	}
	if len(g.Lines) != MaxScrollback {
		t.Fatalf("len(Lines) = %d, want %d", len(g.Lines), MaxScrollback)
	}
	if len(g.Lines) < g.Rows {
		t.Fatalf("len(Lines) = %d < Rows %d", len(g.Lines), g.Rows)
	}
	// 3005 lines were ever produced (5 initial + 3000 scrolled); the oldest
	// 1005 are dropped, so the oldest survivor is scroll iteration 1000.
	first := g.Lines[0]
	want := rune('a' + 1000%26)
	if first.Cells[0].Codepoint != want {
		t.Fatalf("first surviving line = %q, want %q", first.Cells[0].Codepoint, want)
	}
}

func TestSetScrollbackCapTrimsExistingLinesAndFutureScroll(t *testing.T) {
	g := New(10, 5)
	for i := 0; i < 50; i++ {
		g.ScrollUp()
	}
	g.SetScrollbackCap(10)
	if len(g.Lines) != 10 {
		t.Fatalf("len(Lines) = %d after SetScrollbackCap(10), want 10", len(g.Lines))
	}
	for i := 0; i < 50; i++ {
		g.ScrollUp()
	}
	if len(g.Lines) != 10 {
		t.Fatalf("len(Lines) = %d after further scrolling, want capped at 10", len(g.Lines))
	}
}

func TestSetScrollbackCapOutOfRangeFallsBackToMax(t *testing.T) {
	g := New(10, 5)
	g.SetScrollbackCap(0)
	if g.ScrollbackCap != MaxScrollback {
		t.Fatalf("ScrollbackCap = %d, want MaxScrollback for a non-positive override", g.ScrollbackCap)
	}
	g.SetScrollbackCap(MaxScrollback + 500)
	if g.ScrollbackCap != MaxScrollback {
		t.Fatalf("ScrollbackCap = %d, want clamped to MaxScrollback", g.ScrollbackCap)
	}
}

func TestResizeGrowsColumnsWithoutTruncatingScrollback(t *testing.T) {
	g := New(10, 5)
	for i := 0; i < 20; i++ {
		g.ScrollUp()
	}
	linesBefore := len(g.Lines)
	g.Resize(20, 5)
	if g.Cols != 20 {
		t.Fatalf("Cols = %d, want 20", g.Cols)
	}
	if len(g.Lines) != linesBefore {
		t.Fatalf("resize truncated scrollback: %d -> %d", linesBefore, len(g.Lines))
	}
	for _, line := range g.Lines {
		if len(line.Cells) != 20 {
			t.Fatalf("line has %d cells after grow, want 20", len(line.Cells))
		}
	}
}

func TestResizeShrinkColumnsTruncates(t *testing.T) {
	g := New(10, 5)
	g.Resize(4, 5)
	for _, line := range g.Lines {
		if len(line.Cells) != 4 {
			t.Fatalf("line has %d cells after shrink, want 4", len(line.Cells))
		}
	}
}

func TestResizeGrowsRows(t *testing.T) {
	g := New(10, 5)
	g.Resize(10, 8)
	if len(g.Lines) != 8 {
		t.Fatalf("len(Lines) = %d, want 8", len(g.Lines))
	}
	if g.Rows != 8 {
		t.Fatalf("Rows = %d, want 8", g.Rows)
	}
}

func TestWriteAndGetCellOutOfRangeIsNoop(t *testing.T) {
	g := New(10, 5)
	g.WriteCell(-1, 0, Cell{Codepoint: 'x'})
	g.WriteCell(100, 0, Cell{Codepoint: 'x'})
	g.WriteCell(0, 100, Cell{Codepoint: 'x'})
	for _, line := range g.Lines {
		for _, c := range line.Cells {
			if c.Codepoint != ' ' {
				t.Fatalf("out-of-range write mutated a cell: %+v", c)
			}
		}
	}
	if got := g.GetCell(-1, 0); got.Codepoint != ' ' {
		t.Fatalf("GetCell out of range = %+v, want empty cell", got)
	}
}

func TestViewportPinnedToBottom(t *testing.T) {
	g := New(10, 3)
	for i := 0; i < 10; i++ {
		g.ScrollUp()
	}
	vp := g.Viewport(0)
	if len(vp) != g.Rows {
		t.Fatalf("viewport has %d lines, want %d", len(vp), g.Rows)
	}
	wantStart := len(g.Lines) - g.Rows
	if g.ViewportStart(0) != wantStart {
		t.Fatalf("ViewportStart(0) = %d, want %d", g.ViewportStart(0), wantStart)
	}
}

func TestAbsRow(t *testing.T) {
	g := New(10, 5)
	for i := 0; i < 7; i++ {
		g.ScrollUp()
	}
	// len(Lines) = 12, Rows = 5, base = 7
	if got := g.AbsRow(0); got != 7 {
		t.Fatalf("AbsRow(0) = %d, want 7", got)
	}
	if got := g.AbsRow(4); got != 11 {
		t.Fatalf("AbsRow(4) = %d, want 11", got)
	}
}
