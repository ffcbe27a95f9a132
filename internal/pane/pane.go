// Package pane owns a single terminal pane: its screen buffer, emulator,
// line editor, and child-process session, plus the split-tree layout
// that arranges panes on screen.
package pane

import (
	"sync/atomic"

	"github.com/abdullathedruid/minsh/internal/grid"
	"github.com/abdullathedruid/minsh/internal/session"
	"github.com/abdullathedruid/minsh/internal/vterm"
)

// ID uniquely identifies a pane for the lifetime of the process, used
// in the prompt template.
type ID int

var nextID atomic.Int64

func allocID() ID {
	return ID(nextID.Add(1))
}

// Pane is one leaf's worth of state: a screen grid and ANSI emulator, a
// line editor for composing commands, and the child-process session those
// commands spawn into.
type Pane struct {
	ID ID

	Cwd      string
	Grid     *grid.Grid
	Emulator *vterm.Emulator
	Editor   *vterm.LineEditor
	Session  *session.Session

	ScrollOffset      int
	WaitingForProcess bool
}

// New builds a pane sized cols x rows, rooted at cwd, with its own Grid,
// Emulator, and LineEditor. clip may be nil in tests; hist may be nil for
// a pane with no persisted history.
func New(cols, rows int, cwd string, clip vterm.Clipboard, hist *vterm.History) *Pane {
	g := grid.New(cols, rows)
	emu := vterm.NewEmulator(g)
	sess := session.New()
	sess.SetCwd(cwd)

	return &Pane{
		ID:       allocID(),
		Cwd:      cwd,
		Grid:     g,
		Emulator: emu,
		Editor:   vterm.NewLineEditor(emu, clip, hist),
		Session:  sess,
	}
}

// SetScrollbackCap overrides the pane's grid scrollback ceiling; see
// grid.Grid.SetScrollbackCap. Panes default to grid.MaxScrollback until a
// coordinator applies a configured override.
func (p *Pane) SetScrollbackCap(n int) {
	p.Grid.SetScrollbackCap(n)
}

// Resize grows or shrinks the pane's grid to match its Leaf's rect,
// clamping the scroll offset so it never points past the new
// scrollback bound.
func (p *Pane) Resize(cols, rows int) {
	p.Grid.Resize(cols, rows)
	if maxOff := p.Grid.MaxScrollOffset(); p.ScrollOffset > maxOff {
		p.ScrollOffset = maxOff
	}
}

// Close terminates the pane's child process, if any, and releases its
// handles. Safe to call on an already-idle pane.
func (p *Pane) Close() {
	p.Session.Close()
}
