// Package clipboard adapts the system clipboard to the vterm.Clipboard
// interface used by the line editor. A platform clipboard unavailable
// (e.g. headless CI) is a silent no-op, not a surfaced error.
package clipboard

import "github.com/atotto/clipboard"

// System is the default vterm.Clipboard backed by the OS clipboard.
type System struct{}

// Copy writes text to the system clipboard. A platform error is
// swallowed rather than returned.
func (System) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return nil
	}
	return nil
}

// Paste reads the system clipboard. A platform error yields an empty
// string rather than propagating.
func (System) Paste() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", nil
	}
	return text, nil
}
