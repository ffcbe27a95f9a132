package pane

import "github.com/abdullathedruid/minsh/internal/grid"

// FrameCell is one cell of the composited output framebuffer.
type FrameCell struct {
	Codepoint rune
	Attr      uint16
	Dim       bool // scrollbar track/thumb drawn dim, independent of Attr
}

// Frame is the single off-screen buffer the Renderer draws into each
// tick, avoiding tearing by writing it to the console in one call. The
// console driver is what actually flushes a Frame to the screen.
type Frame struct {
	Cols, Rows int
	Cells      []FrameCell

	CursorX, CursorY int
}

// NewFrame allocates a Cols x Rows frame cleared to {' ', 0x07}.
func NewFrame(cols, rows int) *Frame {
	f := &Frame{Cols: cols, Rows: rows, Cells: make([]FrameCell, cols*rows)}
	f.Clear()
	return f
}

// Clear resets every cell to {' ', 0x07}.
func (f *Frame) Clear() {
	for i := range f.Cells {
		f.Cells[i] = FrameCell{Codepoint: ' ', Attr: grid.DefaultAttr}
	}
}

func (f *Frame) set(x, y int, c FrameCell) {
	if x < 0 || x >= f.Cols || y < 0 || y >= f.Rows {
		return
	}
	f.Cells[y*f.Cols+x] = c
}

const (
	scrollbarTrack = '│'
	scrollbarThumb = '█'
	dividerVert    = '│'
	dividerHoriz   = '─'
)

// Render walks tree, compositing every Leaf's grid viewport into frame,
// drawing dividers between Splits and a scrollbar where a Leaf's
// scrollback exceeds its rect height, then positions frame's hardware
// cursor at the active pane's prompt location.
func Render(frame *Frame, tree *Tree) {
	frame.Clear()
	renderNode(frame, tree.Root)
	positionCursor(frame, tree.Active)
}

func renderNode(frame *Frame, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindLeaf:
		renderLeaf(frame, n)
	case KindSplit:
		renderNode(frame, n.ChildA)
		renderNode(frame, n.ChildB)
		drawDivider(frame, n)
	}
}

func renderLeaf(frame *Frame, n *Node) {
	p := n.Pane
	r := n.Rect
	g := p.Grid

	start := g.ViewportStart(p.ScrollOffset)
	rows := r.H
	if rows > g.Rows {
		rows = g.Rows
	}
	for y := 0; y < rows; y++ {
		lineIdx := start + y
		if lineIdx >= len(g.Lines) {
			break
		}
		line := g.Lines[lineIdx]
		cols := r.W
		if cols > len(line.Cells) {
			cols = len(line.Cells)
		}
		for x := 0; x < cols; x++ {
			c := line.Cells[x]
			frame.set(r.X+x, r.Y+y, FrameCell{Codepoint: c.Codepoint, Attr: c.Attr})
		}
	}

	if len(g.Lines) > r.H {
		drawScrollbar(frame, r, g, start)
	}
}

func drawScrollbar(frame *Frame, r Rect, g *grid.Grid, start int) {
	col := r.X + r.W - 1
	total := len(g.Lines)

	thumbSize := r.H * r.H / total
	if thumbSize < 1 {
		thumbSize = 1
	}
	thumbPos := start * r.H / total

	maxPos := r.H - thumbSize
	if thumbPos > maxPos {
		thumbPos = maxPos
	}
	if thumbPos < 0 {
		thumbPos = 0
	}

	for y := 0; y < r.H; y++ {
		ch := rune(scrollbarTrack)
		if y >= thumbPos && y < thumbPos+thumbSize {
			ch = scrollbarThumb
		}
		frame.set(col, r.Y+y, FrameCell{Codepoint: ch, Attr: grid.DefaultAttr, Dim: true})
	}
}

func drawDivider(frame *Frame, split *Node) {
	r := split.Rect
	if split.Orientation == Vertical {
		col := split.ChildA.Rect.X + split.ChildA.Rect.W
		for y := 0; y < r.H; y++ {
			frame.set(col, r.Y+y, FrameCell{Codepoint: dividerVert, Attr: grid.DefaultAttr})
		}
	} else {
		row := split.ChildA.Rect.Y + split.ChildA.Rect.H
		for x := 0; x < r.W; x++ {
			frame.set(r.X+x, row, FrameCell{Codepoint: dividerHoriz, Attr: grid.DefaultAttr})
		}
	}
}

func positionCursor(frame *Frame, active *Node) {
	if active == nil || active.Kind != KindLeaf {
		return
	}
	cx, cy := active.Pane.Emulator.Cursor()
	x := active.Rect.X + cx
	y := active.Rect.Y + cy
	if x > frame.Cols-1 {
		x = frame.Cols - 1
	}
	if y > frame.Rows-1 {
		y = frame.Rows - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	frame.CursorX, frame.CursorY = x, y
}

// ScrollOffsetFromClick inverts the scrollbar geometry: given a click
// at row y within a Leaf's rect, returns the scrollOffset that puts
// the viewport at that position.
func ScrollOffsetFromClick(r Rect, g *grid.Grid, y int) int {
	total := len(g.Lines)
	if total <= r.H {
		return 0
	}
	frac := float64(y) / float64(r.H)
	start := int(frac * float64(total))
	maxOff := g.MaxScrollOffset()
	off := total - r.H - start
	if off < 0 {
		off = 0
	}
	if off > maxOff {
		off = maxOff
	}
	return off
}
