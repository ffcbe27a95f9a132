package vterm

import (
	"bufio"
	"os"

	"github.com/go-errors/errors"
)

// History is a per-session command history, persisted to history.min
// next to the executable.
type History struct {
	path             string
	entries          []string
	historyIndex     int // -1 means "not navigating"
	tempHistoryInput string
}

// NewHistory creates a history backed by path, loading any existing
// entries. A load failure is tolerated; history starts empty.
func NewHistory(path string) *History {
	h := &History{path: path, historyIndex: -1}
	h.load()
	return h
}

func (h *History) load() {
	f, err := os.Open(h.path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}
}

func (h *History) flush() error {
	if h.path == "" {
		return nil
	}
	f, err := os.Create(h.path)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range h.entries {
		if _, err := w.WriteString(e + "\n"); err != nil {
			return errors.Wrap(err, 0)
		}
	}
	return w.Flush()
}

// Add appends cmd unless it's empty or equal to the last entry, resets
// navigation state, and flushes to disk.
func (h *History) Add(cmd string) {
	if cmd == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	h.historyIndex = -1
	_ = h.flush() // best-effort; a failed flush must not block the shell
}

// Up navigates one entry back in history, stashing currentInput the first
// time it's called for this navigation run.
func (h *History) Up(currentInput string) string {
	if len(h.entries) == 0 {
		return ""
	}
	if h.historyIndex == -1 {
		h.tempHistoryInput = currentInput
		h.historyIndex = len(h.entries) - 1
	} else if h.historyIndex > 0 {
		h.historyIndex--
	}
	return h.entries[h.historyIndex]
}

// Down navigates one entry forward, or restores the stashed input once
// navigation runs off the newest entry.
func (h *History) Down() string {
	if h.historyIndex == -1 {
		return ""
	}
	if h.historyIndex < len(h.entries)-1 {
		h.historyIndex++
		return h.entries[h.historyIndex]
	}
	h.historyIndex = -1
	return h.tempHistoryInput
}

// Reset clears navigation state without touching the entry list.
func (h *History) Reset() {
	h.historyIndex = -1
	h.tempHistoryInput = ""
}

// Entries returns a copy of the stored history, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
