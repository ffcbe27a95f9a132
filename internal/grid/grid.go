// Package grid implements the fixed-width cell buffer and scrollback ring
// that backs every pane's virtual terminal.
package grid

// DefaultAttr is light grey on black, the legacy console default.
const DefaultAttr uint16 = 0x07

// MaxScrollback is the hard cap on retained lines per pane.
const MaxScrollback = 2000

// Cell is a single terminal character cell.
type Cell struct {
	Codepoint rune
	Attr      uint16
	Flags     uint8
}

// EmptyCell returns the cell used to fill newly created or cleared space.
func EmptyCell() Cell {
	return Cell{Codepoint: ' ', Attr: DefaultAttr}
}

// Line is an ordered row of cells, always exactly the grid's current column
// count in length.
type Line struct {
	Cells   []Cell
	Wrapped bool // reserved: set when the line soft-wrapped; not yet consumed
}

func newLine(cols int) Line {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i] = EmptyCell()
	}
	return Line{Cells: cells}
}

// Grid is the per-pane cell matrix plus unbounded-then-capped scrollback.
// len(Lines) is always >= Rows; the viewport is the last Rows lines unless
// the caller is scrolled back.
type Grid struct {
	Cols  int
	Rows  int
	Lines []Line

	// ScrollbackCap is this grid's retained-line ceiling, defaulting to
	// MaxScrollback; SetScrollbackCap overrides it per-pane from config.
	ScrollbackCap int
}

// New creates a grid with Rows empty lines of Cols cells each.
func New(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	lines := make([]Line, rows)
	for i := range lines {
		lines[i] = newLine(cols)
	}
	return &Grid{Cols: cols, Rows: rows, Lines: lines, ScrollbackCap: MaxScrollback}
}

// SetScrollbackCap overrides the grid's retained-line ceiling; a value
// <= 0 or above MaxScrollback falls back to MaxScrollback. Called once at
// pane creation from config.
func (g *Grid) SetScrollbackCap(n int) {
	if n <= 0 || n > MaxScrollback {
		n = MaxScrollback
	}
	g.ScrollbackCap = n
	if len(g.Lines) > g.ScrollbackCap {
		g.Lines = g.Lines[len(g.Lines)-g.ScrollbackCap:]
	}
}

// Resize grows or shrinks every line to cols' columns, and appends empty
// lines if the current line count is below rows'. Scrollback is never
// truncated on shrink.
func (g *Grid) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols != g.Cols {
		for i := range g.Lines {
			g.Lines[i].Cells = resizeCells(g.Lines[i].Cells, cols)
		}
		g.Cols = cols
	}
	if len(g.Lines) < rows {
		for len(g.Lines) < rows {
			g.Lines = append(g.Lines, newLine(g.Cols))
		}
	}
	g.Rows = rows
}

func resizeCells(cells []Cell, cols int) []Cell {
	if len(cells) == cols {
		return cells
	}
	if len(cells) > cols {
		return cells[:cols]
	}
	grown := make([]Cell, cols)
	copy(grown, cells)
	for i := len(cells); i < cols; i++ {
		grown[i] = EmptyCell()
	}
	return grown
}

// baseIndex returns the absolute index of viewport row 0.
func (g *Grid) baseIndex() int {
	base := len(g.Lines) - g.Rows
	if base < 0 {
		return 0
	}
	return base
}

// AbsRow converts a viewport-relative row (cursor cy) to an absolute index
// into Lines.
func (g *Grid) AbsRow(cy int) int {
	return g.baseIndex() + cy
}

// WriteCell performs a bounded write; out-of-range coordinates are a silent
// no-op.
func (g *Grid) WriteCell(x, yAbs int, c Cell) {
	if yAbs < 0 || yAbs >= len(g.Lines) {
		return
	}
	if x < 0 || x >= g.Cols {
		return
	}
	g.Lines[yAbs].Cells[x] = c
}

// GetCell returns the cell at the given coordinates, or an empty cell for
// out-of-range reads. The returned value is always a copy.
func (g *Grid) GetCell(x, yAbs int) Cell {
	if yAbs < 0 || yAbs >= len(g.Lines) || x < 0 || x >= g.Cols {
		return EmptyCell()
	}
	return g.Lines[yAbs].Cells[x]
}

// ScrollUp appends a new empty line, evicting the oldest line once the
// scrollback cap is exceeded.
func (g *Grid) ScrollUp() {
	g.Lines = append(g.Lines, newLine(g.Cols))
	if len(g.Lines) > g.ScrollbackCap {
		g.Lines = g.Lines[len(g.Lines)-g.ScrollbackCap:]
	}
}

// Viewport returns the slice of lines visible when scrolled back by
// scrollOffset lines from the bottom (0 = pinned to bottom).
func (g *Grid) Viewport(scrollOffset int) []Line {
	start := len(g.Lines) - g.Rows - scrollOffset
	if start < 0 {
		start = 0
	}
	if start >= len(g.Lines) {
		start = len(g.Lines) - 1
		if start < 0 {
			start = 0
		}
	}
	end := start + g.Rows
	if end > len(g.Lines) {
		end = len(g.Lines)
	}
	return g.Lines[start:end]
}

// ViewportStart returns the absolute index of the first line shown for the
// given scrollOffset, clamped to [0, len(Lines)).
func (g *Grid) ViewportStart(scrollOffset int) int {
	start := len(g.Lines) - g.Rows - scrollOffset
	if start < 0 {
		start = 0
	}
	if start >= len(g.Lines) {
		start = len(g.Lines) - 1
	}
	if start < 0 {
		start = 0
	}
	return start
}

// MaxScrollOffset is the largest scrollOffset that still shows a full
// viewport's worth of scrollback.
func (g *Grid) MaxScrollOffset() int {
	off := len(g.Lines) - g.Rows
	if off < 0 {
		return 0
	}
	return off
}
