package vterm

import "github.com/mattn/go-runewidth"

// Clipboard is the minimal surface the line editor needs; implemented by
// internal/clipboard so vterm stays free of platform dependencies.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// LineEditor owns the current input buffer, its cursor, and selection state
// for one pane's prompt line. It emits edits into an Emulator so the
// visible prompt and currentInput never drift apart.
type LineEditor struct {
	Emulator *Emulator
	Clip     Clipboard

	CurrentInput string
	InputCursor  int

	HasSelection   bool
	SelectionStart int
	SelectionEnd   int

	history *History
}

// NewLineEditor creates an editor bound to e, using h for history
// navigation (h may be nil if the pane has no persisted history).
func NewLineEditor(e *Emulator, clip Clipboard, h *History) *LineEditor {
	return &LineEditor{Emulator: e, Clip: clip, history: h}
}

func (ed *LineEditor) clearSelection() {
	ed.HasSelection = false
	ed.SelectionStart = 0
	ed.SelectionEnd = 0
}

// Insert inserts c at InputCursor, emits it to the emulator, and re-emits
// any suffix so the visible line matches CurrentInput, then walks the
// visual cursor back over the suffix.
func (ed *LineEditor) Insert(c rune) {
	ed.clearSelection()
	suffix := ed.CurrentInput[ed.InputCursor:]
	ed.CurrentInput = ed.CurrentInput[:ed.InputCursor] + string(c) + suffix
	ed.InputCursor++

	ed.Emulator.PutChar(byte(c))
	if suffix != "" {
		for i := 0; i < len(suffix); i++ {
			ed.Emulator.PutChar(suffix[i])
		}
		ed.walkCursorBack(runewidth.StringWidth(suffix))
	}
}

// DeleteBack removes the character before InputCursor (backspace).
func (ed *LineEditor) DeleteBack() {
	if ed.InputCursor == 0 {
		return
	}
	ed.clearSelection()
	ed.InputCursor--
	suffix := ed.CurrentInput[ed.InputCursor+1:]
	ed.CurrentInput = ed.CurrentInput[:ed.InputCursor] + suffix

	ed.Emulator.PutChar('\b')
	if suffix != "" {
		for i := 0; i < len(suffix); i++ {
			ed.Emulator.PutChar(suffix[i])
		}
		ed.Emulator.PutChar(' ')
		ed.walkCursorBack(runewidth.StringWidth(suffix) + 1)
	}
}

// DeleteForward removes the character at InputCursor (delete key).
func (ed *LineEditor) DeleteForward() {
	if ed.InputCursor >= len(ed.CurrentInput) {
		return
	}
	ed.clearSelection()
	suffix := ed.CurrentInput[ed.InputCursor+1:]
	ed.CurrentInput = ed.CurrentInput[:ed.InputCursor] + suffix

	if suffix != "" {
		for i := 0; i < len(suffix); i++ {
			ed.Emulator.PutChar(suffix[i])
		}
	}
	ed.Emulator.PutChar(' ')
	ed.walkCursorBack(runewidth.StringWidth(suffix) + 1)
}

// MoveCursor shifts InputCursor by delta (±1), clamped to the buffer, and
// walks the visual cursor the same distance.
func (ed *LineEditor) MoveCursor(delta int) {
	ed.clearSelection()
	next := ed.InputCursor + delta
	if next < 0 {
		next = 0
	}
	if next > len(ed.CurrentInput) {
		next = len(ed.CurrentInput)
	}
	if next == ed.InputCursor {
		return
	}
	if next > ed.InputCursor {
		ed.walkCursorForward(next - ed.InputCursor)
	} else {
		ed.walkCursorBack(ed.InputCursor - next)
	}
	ed.InputCursor = next
}

// Home moves the cursor to the start of the buffer.
func (ed *LineEditor) Home() {
	ed.MoveCursor(-ed.InputCursor)
}

// End moves the cursor to the end of the buffer.
func (ed *LineEditor) End() {
	ed.MoveCursor(len(ed.CurrentInput) - ed.InputCursor)
}

// SelectAll marks the whole buffer as selected.
func (ed *LineEditor) SelectAll() {
	ed.HasSelection = true
	ed.SelectionStart = 0
	ed.SelectionEnd = len(ed.CurrentInput)
}

// CopySelection copies the selected text, or the whole buffer when
// nothing is selected, to the clipboard. ClipboardError is a silent no-op.
func (ed *LineEditor) CopySelection() {
	text := ed.CurrentInput
	if ed.HasSelection {
		text = ed.CurrentInput[ed.SelectionStart:ed.SelectionEnd]
	}
	if ed.Clip != nil {
		_ = ed.Clip.Copy(text)
	}
}

// Paste inserts every byte >= 0x20 of clipboard content via Insert.
func (ed *LineEditor) Paste() {
	if ed.Clip == nil {
		return
	}
	text, err := ed.Clip.Paste()
	if err != nil {
		return
	}
	for _, r := range text {
		if r >= 0x20 {
			ed.Insert(r)
		}
	}
}

// Repaint re-emits the part of CurrentInput after InputCursor and walks
// the visual cursor back over it, the same way Insert does, so the
// cursor ends at InputCursor. Unlike every other LineEditor operation it
// is not a no-op while the session is Running; it never changes
// CurrentInput or InputCursor.
func (ed *LineEditor) Repaint() {
	suffix := ed.CurrentInput[ed.InputCursor:]
	for i := 0; i < len(suffix); i++ {
		ed.Emulator.PutChar(suffix[i])
	}
	ed.walkCursorBack(runewidth.StringWidth(suffix))
}

// Reset clears the input buffer and cursor, for a fresh prompt.
func (ed *LineEditor) Reset() {
	ed.CurrentInput = ""
	ed.InputCursor = 0
	ed.clearSelection()
}

// HistoryAdd records cmd in the bound History on Enter. A no-op if the
// pane has no persisted history.
func (ed *LineEditor) HistoryAdd(cmd string) {
	if ed.history != nil {
		ed.history.Add(cmd)
	}
}

// HistoryReset clears the history navigation index, also done on Enter.
func (ed *LineEditor) HistoryReset() {
	if ed.history != nil {
		ed.history.Reset()
	}
}

// HistoryUp replaces CurrentInput with the previous history entry.
func (ed *LineEditor) HistoryUp() {
	if ed.history == nil {
		return
	}
	ed.setFromHistory(ed.history.Up(ed.CurrentInput))
}

// HistoryDown replaces CurrentInput with the next history entry.
func (ed *LineEditor) HistoryDown() {
	if ed.history == nil {
		return
	}
	ed.setFromHistory(ed.history.Down())
}

// setFromHistory clears the visible input line and writes result in
// its place.
func (ed *LineEditor) setFromHistory(result string) {
	ed.End() // walk the visual cursor to the end of the old line first
	for range ed.CurrentInput {
		ed.Emulator.PutChar('\b')
	}
	for i := 0; i < len(result); i++ {
		ed.Emulator.PutChar(result[i])
	}
	ed.CurrentInput = result
	ed.InputCursor = len(result)
	ed.clearSelection()
}

// walkCursorForward/Back move the emulator's visual cursor without
// mutating the grid, wrapping across row boundaries the way a real
// terminal cursor move would. Distances are measured in display columns.
func (ed *LineEditor) walkCursorForward(cells int) {
	cx, cy := ed.Emulator.Cursor()
	cols := ed.Emulator.Grid.Cols
	for i := 0; i < cells; i++ {
		cx++
		if cx >= cols {
			cx = 0
			cy++
			if cy >= ed.Emulator.Grid.Rows {
				cy = ed.Emulator.Grid.Rows - 1
			}
		}
	}
	ed.Emulator.SetCursor(cx, cy)
}

func (ed *LineEditor) walkCursorBack(cells int) {
	cx, cy := ed.Emulator.Cursor()
	cols := ed.Emulator.Grid.Cols
	for i := 0; i < cells; i++ {
		if cx == 0 && cy == 0 {
			break // already at the top-left cell
		}
		cx--
		if cx < 0 {
			cx = cols - 1
			cy--
			if cy < 0 {
				cy = 0
			}
		}
	}
	ed.Emulator.SetCursor(cx, cy)
}
