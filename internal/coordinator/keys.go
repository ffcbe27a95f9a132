package coordinator

import (
	"strings"

	"github.com/jesseduffield/gocui"
)

// namedKeys maps the keyword after the last '+' in a chord string to a
// gocui.Key. Single-letter chords (e.g. "ctrl+n") are handled separately
// since gocui represents Ctrl+<letter> as its own KeyCtrl* constant
// rather than a modifier-plus-rune pair.
var namedKeys = map[string]gocui.Key{
	"tab":   gocui.KeyTab,
	"enter": gocui.KeyEnter,
	"esc":   gocui.KeyEsc,
	"space": gocui.KeySpace,
}

var ctrlLetterKeys = map[rune]gocui.Key{
	'a': gocui.KeyCtrlA, 'b': gocui.KeyCtrlB, 'c': gocui.KeyCtrlC,
	'd': gocui.KeyCtrlD, 'e': gocui.KeyCtrlE, 'f': gocui.KeyCtrlF,
	'g': gocui.KeyCtrlG, 'h': gocui.KeyCtrlH, 'j': gocui.KeyCtrlJ,
	'k': gocui.KeyCtrlK, 'l': gocui.KeyCtrlL, 'n': gocui.KeyCtrlN,
	'o': gocui.KeyCtrlO, 'p': gocui.KeyCtrlP, 'q': gocui.KeyCtrlQ,
	'r': gocui.KeyCtrlR, 's': gocui.KeyCtrlS, 't': gocui.KeyCtrlT,
	'u': gocui.KeyCtrlU, 'v': gocui.KeyCtrlV, 'w': gocui.KeyCtrlW,
	'x': gocui.KeyCtrlX, 'y': gocui.KeyCtrlY, 'z': gocui.KeyCtrlZ,
}

// chord is a resolved keybinding: either a named/control Key, or a plain
// rune with a modifier (gocui's only reliable non-Ctrl modifier is Alt).
type chord struct {
	key  gocui.Key
	ch   rune
	mod  gocui.Modifier
	rune bool
}

// parseChord resolves a config string like "ctrl+n", "tab", or "alt+c"
// into a bindable chord. Unrecognised chords fall back to a harmless
// no-op key (KeyF12) rather than failing config load over a typo.
func parseChord(s string) chord {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	last := parts[len(parts)-1]
	hasCtrl := containsPart(parts, "ctrl")
	hasAlt := containsPart(parts, "alt")

	if hasCtrl && len(last) == 1 {
		if k, ok := ctrlLetterKeys[rune(last[0])]; ok {
			return chord{key: k}
		}
	}
	if k, ok := namedKeys[last]; ok {
		mod := gocui.ModNone
		if hasAlt {
			mod = gocui.ModAlt
		}
		return chord{key: k, mod: mod}
	}
	if len(last) == 1 {
		mod := gocui.ModNone
		if hasAlt {
			mod = gocui.ModAlt
		}
		return chord{ch: rune(last[0]), mod: mod, rune: true}
	}
	return chord{key: gocui.KeyF12}
}

func containsPart(parts []string, want string) bool {
	for _, p := range parts {
		if p == want {
			return true
		}
	}
	return false
}

// Bind registers handler on g for every view (global chord) at the
// resolved key/rune+modifier.
func (c chord) Bind(g *gocui.Gui, handler func(*gocui.Gui, *gocui.View) error) error {
	if c.rune {
		return g.SetKeybinding("", c.ch, c.mod, handler)
	}
	return g.SetKeybinding("", c.key, c.mod, handler)
}
