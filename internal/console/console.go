// Package console drives the single full-screen gocui view MinSh renders
// into, translating a composited pane.Frame into the ANSI sequences
// gocui's view content already understands, writing the entire cell
// buffer to the console in one call to avoid tearing.
package console

import (
	"fmt"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/minsh/internal/pane"
)

// RootView is the name of MinSh's single full-screen view. There is
// exactly one: the renderer composites every pane into one Frame before
// any console write happens, so there is nothing for gocui's own view
// tiling to do.
const RootView = "root"

// intensityBit and fgMask mirror vterm's legacy-attribute encoding; kept
// here rather than imported so console stays a pure consumer of the
// attribute word, not a second place that mutates it.
const (
	intensityBit uint16 = 0x08
	fgMask       uint16 = 0x07
)

// Console owns the gocui.Gui and the root view MinSh draws into.
type Console struct {
	Gui *gocui.Gui
}

// New initializes gocui in true-colour output mode with mouse and cursor
// reporting enabled: Mouse drives the scrollbar/divider click dispatch,
// Cursor lets us place the hardware cursor at the active pane's prompt.
func New() (*Console, error) {
	g, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputTrue})
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	g.Cursor = true
	g.Mouse = true
	return &Console{Gui: g}, nil
}

// Close tears down the gocui instance, restoring the terminal.
func (c *Console) Close() {
	c.Gui.Close()
}

// Size returns the current terminal dimensions in cells.
func (c *Console) Size() (cols, rows int) {
	return c.Gui.Size()
}

// EnsureRootView creates (or resizes, on the next layout pass) the single
// full-screen view every pane is composited into.
func (c *Console) EnsureRootView() (*gocui.View, error) {
	maxX, maxY := c.Gui.Size()
	v, err := c.Gui.SetView(RootView, 0, 0, maxX-1, maxY-1, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return nil, err
	}
	if v != nil {
		v.Frame = false
		v.Wrap = false
		v.Autoscroll = false
	}
	return c.Gui.View(RootView)
}

// Blit writes frame into v as one ANSI-annotated string, grouping runs of
// cells that share an attribute into a single SGR sequence rather than
// emitting one per cell, then positions the view's cursor.
func Blit(v *gocui.View, frame *pane.Frame) {
	v.Clear()

	var sb strings.Builder
	lastAttr := uint16(0xFFFF) // sentinel: no real attribute has this value
	lastDim := false

	for y := 0; y < frame.Rows; y++ {
		for x := 0; x < frame.Cols; x++ {
			cell := frame.Cells[y*frame.Cols+x]
			if cell.Attr != lastAttr || cell.Dim != lastDim {
				writeSGR(&sb, cell.Attr, cell.Dim)
				lastAttr, lastDim = cell.Attr, cell.Dim
			}
			sb.WriteRune(cell.Codepoint)
		}
		if y < frame.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("\x1b[0m")

	fmt.Fprint(v, sb.String())
	_ = v.SetCursor(frame.CursorX, frame.CursorY)
}

// writeSGR translates a legacy-console attribute word back into the
// ANSI foreground code it was decoded from (vterm/sgr.go's inverse),
// plus a dim modifier for the scrollbar track/thumb.
func writeSGR(sb *strings.Builder, attr uint16, dim bool) {
	sb.WriteString("\x1b[0m")
	code := 30 + int(attr&fgMask)
	if attr&intensityBit != 0 {
		code = 90 + int(attr&fgMask)
	}
	fmt.Fprintf(sb, "\x1b[%dm", code)
	if dim {
		sb.WriteString("\x1b[2m")
	}
}

// ApplyResize propagates the console's current size to tree, resizing
// every pane's grid via the layout cascade.
func ApplyResize(tree *pane.Tree, cols, rows int) {
	tree.Recompute(pane.Rect{X: 0, Y: 0, W: cols, H: rows})
}
