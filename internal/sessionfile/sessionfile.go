// Package sessionfile implements the on-disk .sesh format: line 1 is the
// working directory, the remainder is raw grid text streamed back through
// the emulator on load.
package sessionfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"

	"github.com/abdullathedruid/minsh/internal/grid"
	"github.com/abdullathedruid/minsh/internal/vterm"
)

// Dir resolves the sessions directory relative to the running
// executable: `./sessions/` next to it, or a sibling `sessions/` if the
// executable lives in a `bin/` directory.
func Dir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, 0)
	}
	exeDir := filepath.Dir(exe)
	if filepath.Base(exeDir) == "bin" {
		exeDir = filepath.Dir(exeDir)
	}
	return filepath.Join(exeDir, "sessions"), nil
}

// Path returns the full path for a named session file.
func Path(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".sesh"), nil
}

// Save writes cwd and the non-empty lines of g (trailing spaces stripped)
// to the named session file, creating the sessions directory if needed.
func Save(name, cwd string, g *grid.Grid) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, 0)
	}
	path, err := Path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(cwd + "\n"); err != nil {
		return errors.Wrap(err, 0)
	}
	for _, line := range g.Lines {
		text := cellsToText(line.Cells)
		if strings.TrimRight(text, " ") == "" {
			continue
		}
		if _, err := w.WriteString(strings.TrimRight(text, " ") + "\n"); err != nil {
			return errors.Wrap(err, 0)
		}
	}
	return w.Flush()
}

func cellsToText(cells []grid.Cell) string {
	r := make([]rune, len(cells))
	for i, c := range cells {
		r[i] = c.Codepoint
	}
	return string(r)
}

// Load reads the named session file, returning the stored cwd and the raw
// grid text (each line, as saved). The caller streams the text through a
// fresh emulator so any embedded ANSI codes are re-interpreted.
func Load(name string) (cwd string, body []byte, err error) {
	path, perr := Path(name)
	if perr != nil {
		return "", nil, perr
	}
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return "", nil, errors.Wrap(rerr, 0)
	}

	content := string(data)
	nl := strings.IndexByte(content, '\n')
	if nl == -1 {
		return strings.TrimSuffix(content, "\r"), nil, nil
	}
	firstLine := strings.TrimSuffix(content[:nl], "\r")
	rest := content[nl+1:]
	return firstLine, []byte(rest), nil
}

// Replay streams body through emu, re-interpreting any stored ANSI codes.
func Replay(emu *vterm.Emulator, body []byte) {
	for _, b := range body {
		emu.PutChar(b)
	}
}

// List returns the base names (without .sesh) of every saved session.
func List() ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, 0)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".sesh") {
			names = append(names, strings.TrimSuffix(e.Name(), ".sesh"))
		}
	}
	return names, nil
}

// Remove deletes the named session file.
func Remove(name string) error {
	path, err := Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, 0)
	}
	return nil
}
