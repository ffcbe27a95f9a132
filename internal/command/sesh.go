package command

import (
	"fmt"
	"strconv"

	"github.com/abdullathedruid/minsh/internal/sessionfile"
)

// dispatchSesh implements the `sesh` subcommands: save/load/update/
// remove/list persist to the .sesh format (internal/sessionfile);
// add/switch/detach/retach mutate the layout tree.
func dispatchSesh(ctx *Context, w writer, args []string) error {
	if len(args) == 0 {
		return userErr("sesh", "usage: sesh save|load|update|remove|list|add|switch|detach|retach ...")
	}
	sub := args[0]
	rest := args[1:]

	switch sub {
	case "save", "update":
		return seshSave(ctx, sub, rest)
	case "load":
		return seshLoad(ctx, sub, rest)
	case "remove":
		return seshRemove(sub, rest)
	case "list":
		return seshList(ctx, w, sub)
	case "add":
		ctx.Tree.Add(ctx.NewPane)
		return nil
	case "switch":
		return seshSwitch(ctx, sub, rest)
	case "detach":
		if err := ctx.Tree.Detach(); err != nil {
			return userErr(sub, "%v", err)
		}
		return nil
	case "retach":
		return seshRetach(ctx, sub, rest)
	default:
		return userErr("sesh", "unknown subcommand %q", sub)
	}
}

func seshSave(ctx *Context, sub string, args []string) error {
	if len(args) != 1 {
		return userErr("sesh "+sub, "usage: sesh %s <name>", sub)
	}
	p := ctx.Pane
	if err := sessionfile.Save(args[0], p.Cwd, p.Grid); err != nil {
		return fsErr("sesh "+sub, "%v", err)
	}
	return nil
}

func seshLoad(ctx *Context, sub string, args []string) error {
	if len(args) != 1 {
		return userErr("sesh "+sub, "usage: sesh load <name>")
	}
	cwd, body, err := sessionfile.Load(args[0])
	if err != nil {
		return fsErr("sesh "+sub, "%v", err)
	}
	p := ctx.Pane
	p.Cwd = cwd
	p.Session.SetCwd(cwd)
	if body != nil {
		sessionfile.Replay(p.Emulator, body)
	}
	return nil
}

func seshRemove(sub string, args []string) error {
	if len(args) != 1 {
		return userErr("sesh "+sub, "usage: sesh remove <name>")
	}
	if err := sessionfile.Remove(args[0]); err != nil {
		return fsErr("sesh "+sub, "%v", err)
	}
	return nil
}

// seshList reports both the on-disk .sesh names and the background
// stash, numbered the same way `sesh retach <i>` expects, so there's
// always something to target a retach against.
func seshList(ctx *Context, w writer, sub string) error {
	names, err := sessionfile.List()
	if err != nil {
		return fsErr("sesh "+sub, "%v", err)
	}
	if len(names) > 0 {
		w.WriteString("Saved Sessions:\n")
		for _, n := range names {
			w.WriteString("  " + n + "\n")
		}
	}

	stash := ctx.Tree.Stash()
	if len(stash) > 0 {
		w.WriteString("Background Panes:\n")
		for i, p := range stash {
			w.WriteString(fmt.Sprintf("  [%d] CWD: %s\n", i, p.Cwd))
		}
	}

	if len(names) == 0 && len(stash) == 0 {
		w.WriteString("No sessions found.\n")
	}
	return nil
}

// seshSwitch implements the 1-based "switch to specific pane" form,
// chosen as the user-facing surface; cycling is reserved for a
// keybinding, not this command.
func seshSwitch(ctx *Context, sub string, args []string) error {
	if len(args) != 1 {
		return userErr("sesh "+sub, "usage: sesh switch <pane-number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return userErr("sesh "+sub, "%q is not a number", args[0])
	}
	if err := ctx.Tree.SwitchTo(n); err != nil {
		return userErr(sub, "%v", err)
	}
	return nil
}

func seshRetach(ctx *Context, sub string, args []string) error {
	if len(args) != 1 {
		return userErr("sesh "+sub, "usage: sesh retach <stash-index>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return userErr("sesh "+sub, "%q is not a number", args[0])
	}
	if err := ctx.Tree.Reattach(i); err != nil {
		return userErr(sub, "%v", err)
	}
	return nil
}
