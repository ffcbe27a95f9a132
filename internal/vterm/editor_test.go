package vterm

import (
	"testing"

	"github.com/abdullathedruid/minsh/internal/grid"
)

// These tests use an empty prompt: the editor starts writing at column 0
// for simplicity.
func newTestEditor() (*vtermFixture, *LineEditor) {
	g := grid.New(20, 5)
	e := NewEmulator(g)
	ed := NewLineEditor(e, nil, nil)
	return &vtermFixture{grid: g, emu: e}, ed
}

type vtermFixture struct {
	grid *grid.Grid
	emu  *Emulator
}

func (f *vtermFixture) visibleLine() string {
	abs := f.grid.AbsRow(0)
	cols := f.grid.Cols
	buf := make([]rune, 0, cols)
	for x := 0; x < cols; x++ {
		buf = append(buf, f.grid.GetCell(x, abs).Codepoint)
	}
	return trimTrailingSpaces(string(buf))
}

func trimTrailingSpaces(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == ' ' {
		i--
	}
	return s[:i]
}

func TestEditorInsertMatchesCurrentInput(t *testing.T) {
	_, ed := newTestEditor()
	for _, r := range "hello" {
		ed.Insert(r)
	}
	if ed.CurrentInput != "hello" {
		t.Fatalf("CurrentInput = %q, want hello", ed.CurrentInput)
	}
	if ed.InputCursor != 5 {
		t.Fatalf("InputCursor = %d, want 5", ed.InputCursor)
	}
	cx, _ := ed.Emulator.Cursor()
	if cx != 5 {
		t.Fatalf("visual cursor x = %d, want 5", cx)
	}
}

func TestEditorInsertMidlineKeepsSuffixVisible(t *testing.T) {
	f, ed := newTestEditor()
	for _, r := range "helo" {
		ed.Insert(r)
	}
	ed.MoveCursor(-1) // between 'l' and 'o'
	ed.Insert('l')    // hello
	if ed.CurrentInput != "hello" {
		t.Fatalf("CurrentInput = %q, want hello", ed.CurrentInput)
	}
	if got := f.visibleLine(); got != "hello" {
		t.Fatalf("visible line = %q, want hello", got)
	}
	if ed.InputCursor != 4 {
		t.Fatalf("InputCursor = %d, want 4", ed.InputCursor)
	}
	cx, _ := ed.Emulator.Cursor()
	if cx != ed.InputCursor {
		t.Fatalf("visual cursor x = %d, want %d (== InputCursor)", cx, ed.InputCursor)
	}
}

func TestEditorDeleteBackMidline(t *testing.T) {
	f, ed := newTestEditor()
	for _, r := range "hxllo" {
		ed.Insert(r)
	}
	ed.MoveCursor(-3) // cursor at index 2, between 'x' and 'l'
	ed.MoveCursor(-10)
	ed.MoveCursor(2) // cursor at index 2, right after 'x'
	ed.DeleteBack()  // removes 'x'
	if ed.CurrentInput != "hllo" {
		t.Fatalf("CurrentInput = %q, want hllo", ed.CurrentInput)
	}
	if got := f.visibleLine(); got != "hllo" {
		t.Fatalf("visible line = %q, want hllo", got)
	}
	if ed.InputCursor != 1 {
		t.Fatalf("InputCursor = %d, want 1", ed.InputCursor)
	}
}

func TestEditorDeleteForward(t *testing.T) {
	f, ed := newTestEditor()
	for _, r := range "hello" {
		ed.Insert(r)
	}
	ed.Home()
	ed.DeleteForward() // removes 'h'
	if ed.CurrentInput != "ello" {
		t.Fatalf("CurrentInput = %q, want ello", ed.CurrentInput)
	}
	if got := f.visibleLine(); got != "ello" {
		t.Fatalf("visible line = %q, want ello", got)
	}
	if ed.InputCursor != 0 {
		t.Fatalf("InputCursor = %d, want 0", ed.InputCursor)
	}
}

func TestEditorHomeEndClampCursor(t *testing.T) {
	_, ed := newTestEditor()
	for _, r := range "abc" {
		ed.Insert(r)
	}
	ed.Home()
	if ed.InputCursor != 0 {
		t.Fatalf("Home(): InputCursor = %d, want 0", ed.InputCursor)
	}
	ed.End()
	if ed.InputCursor != 3 {
		t.Fatalf("End(): InputCursor = %d, want 3", ed.InputCursor)
	}
}

func TestEditorTypingClearsSelection(t *testing.T) {
	_, ed := newTestEditor()
	for _, r := range "abc" {
		ed.Insert(r)
	}
	ed.SelectAll()
	if !ed.HasSelection {
		t.Fatalf("SelectAll() did not set HasSelection")
	}
	ed.Insert('d')
	if ed.HasSelection {
		t.Fatalf("typing did not clear selection")
	}
}

func TestEditorRepaintWalksCursorToInputCursor(t *testing.T) {
	_, ed := newTestEditor()
	for _, r := range "hello" {
		ed.Insert(r)
	}
	ed.MoveCursor(-2) // between 'l' and 'l'
	ed.Repaint()
	cx, _ := ed.Emulator.Cursor()
	if cx != ed.InputCursor {
		t.Fatalf("visual cursor x = %d, want %d (== InputCursor)", cx, ed.InputCursor)
	}
}

func TestEditorRepaintAtOriginIsNoop(t *testing.T) {
	_, ed := newTestEditor()
	ed.Repaint()
	cx, cy := ed.Emulator.Cursor()
	if cx != 0 || cy != 0 {
		t.Fatalf("cursor = (%d,%d), want (0,0)", cx, cy)
	}
}

func TestEditorBackspaceBoundaryIsNoop(t *testing.T) {
	_, ed := newTestEditor()
	ed.DeleteBack() // nothing to delete
	if ed.CurrentInput != "" || ed.InputCursor != 0 {
		t.Fatalf("DeleteBack on empty buffer mutated state: input=%q cursor=%d", ed.CurrentInput, ed.InputCursor)
	}
}
