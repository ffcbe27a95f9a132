// Package vterm implements the byte-stream-to-grid ANSI decoder and the
// line editor that together make up a pane's virtual terminal.
package vterm

import "github.com/abdullathedruid/minsh/internal/grid"

// state is the emulator's small state machine.
type state int

const (
	stateNormal state = iota
	stateEsc
	stateCsi
)

// Emulator decodes a child process's output byte stream into Grid
// mutations, interpreting a subset of ANSI SGR colour codes.
type Emulator struct {
	Grid *grid.Grid

	state       state
	paramBuffer []byte
	currentAttr uint16
	cx, cy      int
}

// NewEmulator creates an emulator bound to g, cursor at the origin.
func NewEmulator(g *grid.Grid) *Emulator {
	return &Emulator{Grid: g, currentAttr: grid.DefaultAttr}
}

// Cursor returns the current cursor position in viewport coordinates.
func (e *Emulator) Cursor() (cx, cy int) {
	return e.cx, e.cy
}

// SetCursor forcibly repositions the cursor, clamped to the grid.
func (e *Emulator) SetCursor(cx, cy int) {
	e.cx = clamp(cx, 0, e.Grid.Cols-1)
	e.cy = clamp(cy, 0, e.Grid.Rows-1)
}

// CurrentAttr returns the attribute that would be applied to the next
// written cell.
func (e *Emulator) CurrentAttr() uint16 {
	return e.currentAttr
}

// Write feeds bytes through PutChar, satisfying io.Writer so a Session's
// pumped output can be written directly into the emulator.
func (e *Emulator) Write(p []byte) (int, error) {
	for _, b := range p {
		e.PutChar(b)
	}
	return len(p), nil
}

// PutChar processes a single byte of child output.
func (e *Emulator) PutChar(c byte) {
	switch e.state {
	case stateEsc:
		e.handleEsc(c)
	case stateCsi:
		e.handleCsi(c)
	default:
		e.handleNormal(c)
	}
}

func (e *Emulator) handleNormal(c byte) {
	switch {
	case c == 0x1B:
		e.state = stateEsc
	case c == '\n':
		e.newLine()
		e.cx = 0
	case c == '\r':
		e.cx = 0
	case c == '\b':
		if e.cx > 0 {
			e.cx--
			e.writeCurrent(' ')
		}
	case c >= 0x20:
		if e.cx >= e.Grid.Cols {
			e.newLine()
			e.cx = 0
		}
		e.writeCurrent(rune(c))
		e.cx++
	default:
		// other control bytes discarded
	}
}

func (e *Emulator) handleEsc(c byte) {
	if c == '[' {
		e.state = stateCsi
		e.paramBuffer = e.paramBuffer[:0]
		return
	}
	e.state = stateNormal
}

func (e *Emulator) handleCsi(c byte) {
	switch {
	case c >= '0' && c <= '9', c == ';':
		e.paramBuffer = append(e.paramBuffer, c)
	case c == 'm':
		e.applySGR()
		e.state = stateNormal
	default:
		e.state = stateNormal
	}
}

// writeCurrent writes r at the absolute row for cy, column cx, using the
// active attribute.
func (e *Emulator) writeCurrent(r rune) {
	abs := e.Grid.AbsRow(e.cy)
	e.Grid.WriteCell(e.cx, abs, grid.Cell{Codepoint: r, Attr: e.currentAttr})
}

// newLine advances cy, scrolling the grid when the viewport is full.
func (e *Emulator) newLine() {
	e.cy++
	if e.cy >= e.Grid.Rows {
		e.Grid.ScrollUp()
		e.cy = e.Grid.Rows - 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
