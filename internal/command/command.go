// Package command implements the command surface dispatched from an
// idle pane's Enter key: the builtins (say, goto, make, remove, list,
// read, help, cwd, exit), the sesh session-management subcommands, and
// the fallback that spawns ./cmds/ scripts or a bare external command.
package command

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdullathedruid/minsh/internal/pane"
)

// Context is everything a command needs beyond its own arguments: the
// pane it runs against, the layout tree (for sesh add/detach/switch/
// retach), a constructor for fresh panes, and the quit flag the
// coordinator checks after every dispatch.
type Context struct {
	Pane    *pane.Pane
	Tree    *pane.Tree
	NewPane func() *pane.Pane
	Quit    *bool

	// DefaultShell is the configured cooked-mode shell executable,
	// used by spawnExternal as a fallback interpreter for a command
	// line that isn't a builtin and can't be resolved directly.
	DefaultShell string
}

// emuWriter adapts a Pane's Emulator to the writer interface command
// output and error rendering use.
type emuWriter struct{ p *pane.Pane }

func (w emuWriter) WriteString(s string) {
	_, _ = w.p.Emulator.Write([]byte(s))
}

// Dispatch tokenizes and runs one command line against ctx. Errors never
// propagate past Dispatch: they are rendered into the active pane's grid
// instead. The boolean result reports whether the command put the
// pane's session into Running (so the coordinator knows whether to emit
// a fresh prompt immediately).
func Dispatch(tokens []string, ctx *Context) (spawnedChild bool) {
	if len(tokens) == 0 {
		return false
	}
	w := emuWriter{ctx.Pane}

	spawned, err := dispatch(tokens, ctx, w)
	if err != nil {
		Render(w, err)
	}
	return spawned
}

func dispatch(tokens []string, ctx *Context, w writer) (bool, error) {
	cmd := tokens[0]
	args := tokens[1:]

	switch cmd {
	case "exit":
		*ctx.Quit = true
		return false, nil
	case "help":
		return false, cmdHelp(w)
	case "say":
		return false, cmdSay(w, args)
	case "cwd":
		w.WriteString(ctx.Pane.Cwd + "\n")
		return false, nil
	case "goto":
		return false, cmdGoto(ctx, args)
	case "make":
		return false, cmdMake(ctx, cmd, args)
	case "remove":
		return false, cmdRemove(ctx, cmd, args)
	case "list":
		return false, cmdList(w, ctx, cmd, args)
	case "read":
		return false, cmdRead(w, ctx, cmd, args)
	case "sesh":
		return false, dispatchSesh(ctx, w, args)
	default:
		return spawnExternal(ctx, cmd, args)
	}
}

func cmdHelp(w writer) error {
	w.WriteString(strings.Join([]string{
		"exit", "help", "say <text...>", "cwd", "goto <path>",
		"make -f|-d <name>", "remove -f|-d <name>",
		"list [-all|-hidden] [<path>]",
		"read <file> [-h(<word>)] [-f(<n>)] [-l(<n>)]",
		"sesh save|load|update|remove|list|add|switch|detach|retach ...",
	}, "\n") + "\n")
	return nil
}

func cmdSay(w writer, args []string) error {
	w.WriteString(strings.Join(args, " ") + "\n")
	return nil
}

func cmdGoto(ctx *Context, args []string) error {
	if len(args) != 1 {
		return userErr("goto", "expected exactly one path argument")
	}
	target := resolvePath(ctx.Pane.Cwd, args[0])
	info, err := os.Stat(target)
	if err != nil {
		return fsErr("goto", "%s: not found", args[0])
	}
	if !info.IsDir() {
		return fsErr("goto", "%s: not a directory", args[0])
	}
	canon, err := filepath.Abs(target)
	if err != nil {
		canon = target
	}
	ctx.Pane.Cwd = canon
	ctx.Pane.Session.SetCwd(canon)
	return nil
}

func cmdMake(ctx *Context, cmd string, args []string) error {
	if len(args) != 2 {
		return userErr(cmd, "usage: make -f|-d <name>")
	}
	flag, name := args[0], args[1]
	target := resolvePath(ctx.Pane.Cwd, name)

	switch flag {
	case "-f":
		f, err := os.Create(target)
		if err != nil {
			return fsErr(cmd, "%s: %v", name, err)
		}
		return f.Close()
	case "-d":
		if err := os.Mkdir(target, 0o755); err != nil {
			return fsErr(cmd, "%s: %v", name, err)
		}
		return nil
	default:
		return userErr(cmd, "unknown flag %q, expected -f or -d", flag)
	}
}

func cmdRemove(ctx *Context, cmd string, args []string) error {
	if len(args) != 2 {
		return userErr(cmd, "usage: remove -f|-d <name>")
	}
	flag, name := args[0], args[1]
	target := resolvePath(ctx.Pane.Cwd, name)

	switch flag {
	case "-f":
		if err := os.Remove(target); err != nil {
			return fsErr(cmd, "%s: %v", name, err)
		}
		return nil
	case "-d":
		if err := os.RemoveAll(target); err != nil {
			return fsErr(cmd, "%s: %v", name, err)
		}
		return nil
	default:
		return userErr(cmd, "unknown flag %q, expected -f or -d", flag)
	}
}

func cmdList(w writer, ctx *Context, cmd string, args []string) error {
	showAll := false
	showHidden := false
	path := ctx.Pane.Cwd

	for _, a := range args {
		switch a {
		case "-all":
			showAll = true
		case "-hidden":
			showHidden = true
		default:
			path = resolvePath(ctx.Pane.Cwd, a)
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fsErr(cmd, "%s: %v", path, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		hidden := strings.HasPrefix(e.Name(), ".")
		if hidden && !showAll && !showHidden {
			continue
		}
		if showHidden && !hidden {
			continue
		}
		suffix := ""
		if e.IsDir() {
			suffix = "/"
		}
		w.WriteString(e.Name() + suffix + "\n")
	}
	return nil
}

func cmdRead(w writer, ctx *Context, cmd string, args []string) error {
	if len(args) == 0 {
		return userErr(cmd, "usage: read <file> [-h(<word>)] [-f(<n>)] [-l(<n>)]")
	}
	target := resolvePath(ctx.Pane.Cwd, args[0])
	data, err := os.ReadFile(target)
	if err != nil {
		return fsErr(cmd, "%s: %v", args[0], err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	var highlight string
	headN, tailN := -1, -1
	for _, flag := range args[1:] {
		switch {
		case strings.HasPrefix(flag, "-h(") && strings.HasSuffix(flag, ")"):
			highlight = flag[3 : len(flag)-1]
		case strings.HasPrefix(flag, "-f(") && strings.HasSuffix(flag, ")"):
			headN = parseIntFlag(flag, "-f(")
		case strings.HasPrefix(flag, "-l(") && strings.HasSuffix(flag, ")"):
			tailN = parseIntFlag(flag, "-l(")
		default:
			return userErr(cmd, "unrecognised flag %q", flag)
		}
	}

	if headN >= 0 && headN < len(lines) {
		lines = lines[:headN]
	}
	if tailN >= 0 && tailN < len(lines) {
		lines = lines[len(lines)-tailN:]
	}

	for _, line := range lines {
		if highlight != "" {
			line = strings.ReplaceAll(line, highlight, "\x1b[31m"+highlight+"\x1b[0m")
		}
		w.WriteString(line + "\n")
	}
	return nil
}

func parseIntFlag(flag, prefix string) int {
	s := flag[len(prefix) : len(flag)-1]
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// spawnExternal looks in ./cmds/ with the platform's executable
// suffixes before falling back to a bare command lookup on PATH. If
// neither resolves, it hands the whole line to the configured default
// shell as a cooked-mode interpreter (cmd.exe /c ... or sh -c ...)
// instead of failing outright.
func spawnExternal(ctx *Context, cmd string, args []string) (bool, error) {
	resolved := resolveCmdsDir(ctx.Pane.Cwd, cmd)
	if err := ctx.Pane.Session.Execute(resolved, args, ctx.Pane.Cwd); err == nil {
		ctx.Pane.WaitingForProcess = true
		return true, nil
	}

	shell, shellArgs := defaultShellInvocation(ctx.DefaultShell, cmd, args)
	if shell == "" {
		return false, spawnErr(cmd, "command not found")
	}
	if err := ctx.Pane.Session.Execute(shell, shellArgs, ctx.Pane.Cwd); err != nil {
		return false, spawnErr(cmd, "%v", err)
	}
	ctx.Pane.WaitingForProcess = true
	return true, nil
}

// defaultShellInvocation builds the argv for running cmd+args through
// shell as a single cooked-mode line, cmd.exe's /c convention for
// cmd.exe and the POSIX -c convention otherwise. Returns "" if no
// default shell is configured.
func defaultShellInvocation(shell, cmd string, args []string) (string, []string) {
	if shell == "" {
		return "", nil
	}
	line := cmd
	for _, a := range args {
		line += " " + a
	}
	if strings.EqualFold(filepath.Base(shell), "cmd.exe") {
		return shell, []string{"/c", line}
	}
	return shell, []string{"-c", line}
}

var cmdsSuffixes = []string{"", ".exe", ".bat", ".cmd", ".com"}

func resolveCmdsDir(cwd, cmd string) string {
	for _, suffix := range cmdsSuffixes {
		candidate := filepath.Join(cwd, "cmds", cmd+suffix)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return cmd
}

func resolvePath(cwd, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cwd, p)
}
