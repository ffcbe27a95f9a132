package coordinator

import (
	"fmt"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/minsh/internal/command"
	"github.com/abdullathedruid/minsh/internal/crashlog"
	"github.com/abdullathedruid/minsh/internal/lexer"
	"github.com/abdullathedruid/minsh/internal/pane"
	"github.com/abdullathedruid/minsh/internal/session"
)

// setupKeybindings wires every input rule plus the chorded overrides
// from config (detach/retach/switch/add-pane/copy).
func (co *Coordinator) setupKeybindings(g *gocui.Gui) error {
	binds := []struct {
		key gocui.Key
		mod gocui.Modifier
		fn  func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyEnter, gocui.ModNone, co.onEnter},
		{gocui.KeyBackspace, gocui.ModNone, co.onBackspace},
		{gocui.KeyBackspace2, gocui.ModNone, co.onBackspace},
		{gocui.KeyDelete, gocui.ModNone, co.onDeleteForward},
		{gocui.KeyArrowLeft, gocui.ModNone, co.onArrowLeft},
		{gocui.KeyArrowRight, gocui.ModNone, co.onArrowRight},
		{gocui.KeyArrowUp, gocui.ModNone, co.onHistoryUp},
		{gocui.KeyArrowDown, gocui.ModNone, co.onHistoryDown},
		{gocui.KeyHome, gocui.ModNone, co.onHome},
		{gocui.KeyEnd, gocui.ModNone, co.onEnd},
		{gocui.KeyCtrlC, gocui.ModNone, co.onCtrlC},
		{gocui.KeyCtrlA, gocui.ModNone, co.onSelectAll},
		{gocui.KeyCtrlV, gocui.ModNone, co.onPaste},
		{gocui.KeyCtrlL, gocui.ModNone, co.onRepaint},
	}
	for _, b := range binds {
		if err := g.SetKeybinding("", b.key, b.mod, b.fn); err != nil {
			return err
		}
	}

	if err := g.SetKeybinding("", gocui.KeySpace, gocui.ModNone, co.onSpace); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.MouseWheelUp, gocui.ModNone, co.onMouseWheelUp); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.MouseWheelDown, gocui.ModNone, co.onMouseWheelDown); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.MouseLeft, gocui.ModNone, co.onMouseLeft); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.MouseRelease, gocui.ModNone, co.onMouseRelease); err != nil {
		return err
	}

	keys := co.config().Keys
	chords := []struct {
		key string
		fn  func(*gocui.Gui, *gocui.View) error
	}{
		{keys.Detach, co.onDetach},
		{keys.Retach, co.onRetach},
		{keys.Switch, co.onSwitch},
		{keys.AddPane, co.onAddPane},
		{keys.Copy, co.onCopy},
	}
	for _, c := range chords {
		if err := parseChord(c.key).Bind(g, c.fn); err != nil {
			return err
		}
	}

	// Printable runes: bind every ASCII graphical character individually,
	// since gocui dispatches keybindings by exact rune rather than a
	// catch-all "any printable" wildcard.
	for ch := rune(0x21); ch <= 0x7E; ch++ {
		r := ch
		if err := g.SetKeybinding("", r, gocui.ModNone, co.runeHandler(r)); err != nil {
			return err
		}
	}

	return nil
}

func (co *Coordinator) runeHandler(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		co.insertByte(byte(r))
		return nil
	}
}

func (co *Coordinator) onSpace(g *gocui.Gui, v *gocui.View) error {
	co.insertByte(' ')
	return nil
}

// insertByte is the shared entry point for every printable keystroke:
// forwarded raw to a Running child (with local echo), or routed through
// the line editor when the pane is Idle.
func (co *Coordinator) insertByte(b byte) {
	p := co.activePane()
	if p.Session.State() == session.Running {
		p.Session.WriteInput([]byte{b})
		_, _ = p.Emulator.Write([]byte{b})
		return
	}
	p.Editor.Insert(rune(b))
}

func (co *Coordinator) onEnter(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() == session.Running {
		p.Session.WriteInput([]byte{'\n'})
		_, _ = p.Emulator.Write([]byte{'\n'})
		return nil
	}

	line := p.Editor.CurrentInput
	_, _ = p.Emulator.Write([]byte{'\n'})

	tokens := lexer.Tokenize(line)
	if len(tokens) > 0 {
		p.Editor.HistoryAdd(line)
	}
	p.Editor.HistoryReset()
	p.Editor.Reset()

	ctx := &command.Context{
		Pane:         p,
		Tree:         co.tree,
		NewPane:      co.newPane,
		Quit:         &co.quit,
		DefaultShell: co.config().DefaultShell,
	}
	defer crashlog.Recover(func(msg string) {
		fmt.Fprintf(p.Emulator, "\n\x1b[31m%s\x1b[0m\n", msg)
		co.emitPrompt(p)
	})
	spawned := command.Dispatch(tokens, ctx)
	if !spawned && !co.quit {
		co.emitPrompt(p)
	}
	return nil
}

func (co *Coordinator) onBackspace(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() == session.Running {
		return nil
	}
	p.Editor.DeleteBack()
	return nil
}

func (co *Coordinator) onDeleteForward(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.DeleteForward()
	}
	return nil
}

func (co *Coordinator) onArrowLeft(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.MoveCursor(-1)
	}
	return nil
}

func (co *Coordinator) onArrowRight(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.MoveCursor(1)
	}
	return nil
}

func (co *Coordinator) onHistoryUp(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.HistoryUp()
	}
	return nil
}

func (co *Coordinator) onHistoryDown(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.HistoryDown()
	}
	return nil
}

func (co *Coordinator) onHome(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.Home()
	}
	return nil
}

func (co *Coordinator) onEnd(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.End()
	}
	return nil
}

// onCtrlC has two branches: interrupt a Running child, or print "^C"
// and reset an Idle pane's input line.
func (co *Coordinator) onCtrlC(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() == session.Running {
		co.logDebug(p.Session.Interrupt())
		return nil
	}
	fmt.Fprint(p.Emulator, "^C")
	p.Editor.Reset()
	co.emitPrompt(p)
	return nil
}

// onCopy is Ctrl+Shift+C's practical terminal-safe substitute (see
// config.KeyBindings.Copy): clipboard-copy always, even mid-command.
func (co *Coordinator) onCopy(g *gocui.Gui, v *gocui.View) error {
	co.activePane().Editor.CopySelection()
	return nil
}

// onRepaint is Ctrl+L's force-repaint: it runs regardless of the
// session's Running state, unlike every other editor keybinding.
func (co *Coordinator) onRepaint(g *gocui.Gui, v *gocui.View) error {
	co.activePane().Editor.Repaint()
	return nil
}

func (co *Coordinator) onPaste(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.Paste()
	}
	return nil
}

func (co *Coordinator) onSelectAll(g *gocui.Gui, v *gocui.View) error {
	p := co.activePane()
	if p.Session.State() != session.Running {
		p.Editor.SelectAll()
	}
	return nil
}

func (co *Coordinator) onDetach(g *gocui.Gui, v *gocui.View) error {
	co.logDebug(co.tree.Detach())
	return nil
}

func (co *Coordinator) onRetach(g *gocui.Gui, v *gocui.View) error {
	if co.tree.StashLen() > 0 {
		co.logDebug(co.tree.Reattach(0))
	}
	return nil
}

func (co *Coordinator) onSwitch(g *gocui.Gui, v *gocui.View) error {
	co.tree.Switch()
	return nil
}

func (co *Coordinator) onAddPane(g *gocui.Gui, v *gocui.View) error {
	co.tree.Add(co.newPane)
	return nil
}

// onMouseWheelUp/Down adjust the scrollOffset of the pane under the
// mouse cursor, not necessarily the active pane.
func (co *Coordinator) onMouseWheelUp(g *gocui.Gui, v *gocui.View) error {
	co.scroll(g, 3)
	return nil
}

func (co *Coordinator) onMouseWheelDown(g *gocui.Gui, v *gocui.View) error {
	co.scroll(g, -3)
	return nil
}

func (co *Coordinator) scroll(g *gocui.Gui, delta int) {
	x, y, err := g.MousePosition()
	if err != nil {
		return
	}
	leaf := co.leafAt(x, y)
	if leaf == nil {
		return
	}
	p := leaf.Pane
	off := p.ScrollOffset + delta
	if off < 0 {
		off = 0
	}
	if maxOff := p.Grid.MaxScrollOffset(); off > maxOff {
		off = maxOff
	}
	p.ScrollOffset = off
}

// onMouseLeft has three jobs, tried in order: continue a divider drag
// already in progress, begin one if the click lands on a divider, or
// fall back to the scrollbar-click handling (inverting the scrollbar
// geometry: a click on a leaf's last rect column jumps the viewport to
// the corresponding position).
func (co *Coordinator) onMouseLeft(g *gocui.Gui, v *gocui.View) error {
	x, y, err := g.MousePosition()
	if err != nil {
		return nil
	}

	if co.dragSplit != nil {
		co.updateDragRatio(x, y)
		return nil
	}

	if split := co.tree.SplitAt(x, y); split != nil {
		co.dragSplit = split
		return nil
	}

	leaf := co.leafAt(x, y)
	if leaf == nil {
		return nil
	}
	r := leaf.Rect
	if x != r.X+r.W-1 {
		return nil
	}
	leaf.Pane.ScrollOffset = pane.ScrollOffsetFromClick(r, leaf.Pane.Grid, y-r.Y)
	return nil
}

// updateDragRatio recomputes the dragged split's ratio from the mouse's
// current position along the split's axis.
func (co *Coordinator) updateDragRatio(x, y int) {
	split := co.dragSplit
	r := split.Rect
	var ratio float32
	if split.Orientation == pane.Vertical {
		ratio = float32(x-r.X) / float32(r.W)
	} else {
		ratio = float32(y-r.Y) / float32(r.H)
	}
	co.tree.SetRatio(split, ratio)
}

// onMouseRelease ends any divider drag in progress.
func (co *Coordinator) onMouseRelease(g *gocui.Gui, v *gocui.View) error {
	co.dragSplit = nil
	return nil
}

func (co *Coordinator) leafAt(x, y int) *pane.Node {
	for _, leaf := range co.tree.Leaves() {
		r := leaf.Rect
		if x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H {
			return leaf
		}
	}
	return nil
}
