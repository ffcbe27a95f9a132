// Package coordinator implements MinSh's main loop: pumping every
// pane's child-process output into its emulator, detecting
// idle-transitions and re-emitting a fresh prompt, syncing the working
// directory, rendering, and dispatching keyboard/mouse input to the
// active pane's line editor, session, or command parser.
package coordinator

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/minsh/internal/clipboard"
	"github.com/abdullathedruid/minsh/internal/config"
	"github.com/abdullathedruid/minsh/internal/console"
	"github.com/abdullathedruid/minsh/internal/crashlog"
	"github.com/abdullathedruid/minsh/internal/pane"
	"github.com/abdullathedruid/minsh/internal/vterm"
)

// Coordinator owns the layout tree and the gocui-driven console, and
// runs the single cooperative loop.
type Coordinator struct {
	cfg         atomic.Pointer[config.Config] // swapped whole by SetConfig on reload
	console     *console.Console
	tree        *pane.Tree
	clip        vterm.Clipboard
	historyPath string
	quit        bool

	dragSplit *pane.Node // non-nil while a divider drag is in progress
}

// New builds the initial single-pane tree rooted at cwd and opens the
// console. The first prompt is emitted immediately, so the very first
// frame already shows one.
func New(cfg *config.Config, cwd, historyPath string) (*Coordinator, error) {
	con, err := console.New()
	if err != nil {
		return nil, err
	}

	co := &Coordinator{
		console:     con,
		clip:        clipboard.System{},
		historyPath: historyPath,
	}
	co.cfg.Store(cfg)

	cols, rows := con.Size()
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}
	hist := vterm.NewHistory(historyPath)
	p := pane.New(cols, rows, cwd, co.clip, hist)
	p.SetScrollbackCap(cfg.ScrollbackCap)
	co.tree = pane.NewTree(p)
	co.emitPrompt(p)

	return co, nil
}

// SetConfig atomically replaces the coordinator's configuration,
// passed to config.Watch as the reload callback. Already-running panes
// keep the scrollback cap they were created with, and key bindings stay
// as bound at startup; prompt colors, idle sleep, debug and the default
// shell take effect on the next read.
func (co *Coordinator) SetConfig(cfg *config.Config) {
	co.cfg.Store(cfg)
}

// config returns the current configuration snapshot. Call once per use
// rather than re-reading co.cfg field-by-field, so a concurrent reload
// can't be observed as a mix of old and new values.
func (co *Coordinator) config() *config.Config {
	return co.cfg.Load()
}

// newPane is passed to Tree.Add as the fresh-pane constructor for
// `sesh add`: a 1x1 placeholder immediately resized by the tree's
// resize cascade, inheriting the active pane's cwd. Its History is a
// separate in-memory instance but still backed by the same shared
// history.min file, which each Add rewrites with that pane's own
// entries, so the pane that last added a command wins.
func (co *Coordinator) newPane() *pane.Pane {
	cwd := co.activePane().Cwd
	hist := vterm.NewHistory(co.historyPath)
	p := pane.New(1, 1, cwd, co.clip, hist)
	p.SetScrollbackCap(co.config().ScrollbackCap)
	co.emitPrompt(p)
	return p
}

// emitPrompt writes the prompt template: folder is the last path
// component of cwd, falling back to the full cwd if empty.
func (co *Coordinator) emitPrompt(p *pane.Pane) {
	folder := filepath.Base(p.Cwd)
	if folder == "" || folder == "." || folder == string(filepath.Separator) {
		folder = p.Cwd
	}
	prompt := co.config().Prompt
	fmt.Fprintf(p.Emulator, "\n\x1b[%smMinSh[%d]\x1b[0m@\x1b[%sm%s\x1b[0m: ",
		prompt.IDColor, p.ID, prompt.FolderColor, folder)
}

// Run starts the console's gocui main loop and a ticker goroutine that
// pumps session output and re-renders on the configured idle interval
// (a 10ms default CPU guard), injecting work into the gocui loop via
// Gui.Update rather than touching state directly from another thread.
func (co *Coordinator) Run() error {
	defer co.console.Close()

	g := co.console.Gui
	g.SetManagerFunc(co.layout)
	if err := co.setupKeybindings(g); err != nil {
		return err
	}

	stop := make(chan struct{})
	go co.pumpLoop(g, stop)

	err := g.MainLoop()
	close(stop)

	co.shutdown()

	if err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// shutdown broadcasts an interrupt and then a forced close to every pane
// this coordinator owns, including background-stashed ones.
func (co *Coordinator) shutdown() {
	for _, p := range co.tree.AllPanes() {
		co.logDebug(p.Session.Interrupt())
		p.Close()
	}
}

// logDebug appends err to debug.log when the Debug config flag is set.
// It's for non-fatal errors that are otherwise swallowed — a failed
// detach, a dead child's interrupt — useful when diagnosing a report
// but noise otherwise.
func (co *Coordinator) logDebug(err error) {
	if err != nil && co.config().Debug {
		crashlog.Record(err)
	}
}

func (co *Coordinator) pumpLoop(g *gocui.Gui, stop <-chan struct{}) {
	interval := time.Duration(co.config().IdleSleepMillis) * time.Millisecond
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_ = g.Update(func(g *gocui.Gui) error {
				co.tick()
				if co.quit {
					return gocui.ErrQuit
				}
				return nil
			})
			next := time.Duration(co.config().IdleSleepMillis) * time.Millisecond
			if next <= 0 {
				next = 10 * time.Millisecond
			}
			if next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// tick pumps every pane's session, detects Running->Idle transitions,
// and best-effort syncs the process's OS working directory to the
// active pane's cwd. Rendering and input draining happen via gocui's
// own view/keybinding machinery rather than an explicit poll, since
// gocui already owns the terminal's raw input loop.
func (co *Coordinator) tick() {
	defer crashlog.Recover(func(msg string) {
		if active := co.tree.Active; active != nil && active.Kind == pane.KindLeaf {
			fmt.Fprintf(active.Pane.Emulator, "\n\x1b[31m%s\x1b[0m\n", msg)
		}
	})

	for _, leaf := range co.tree.Leaves() {
		p := leaf.Pane
		if data := p.Session.PollOutput(); data != nil {
			_, _ = p.Emulator.Write(data)
		}
		busy := p.Session.IsBusy()
		if p.WaitingForProcess && !busy {
			p.WaitingForProcess = false
			p.Editor.Reset()
			co.emitPrompt(p)
		}
	}

	if active := co.tree.Active; active != nil && active.Kind == pane.KindLeaf {
		_ = os.Chdir(active.Pane.Cwd)
	}
}

// layout is gocui's manager function: it keeps the single root view
// sized to the terminal, cascades that size into the layout tree, and
// composites + blits the current frame.
func (co *Coordinator) layout(g *gocui.Gui) error {
	v, err := co.console.EnsureRootView()
	if err != nil {
		return err
	}
	if _, err := g.SetCurrentView(console.RootView); err != nil {
		return err
	}

	cols, rows := co.console.Size()
	console.ApplyResize(co.tree, cols, rows)

	frame := pane.NewFrame(cols, rows)
	pane.Render(frame, co.tree)
	console.Blit(v, frame)
	return nil
}

// activePane is a convenience accessor; it is never nil once the tree
// has been constructed since every Tree always has a root Leaf.
func (co *Coordinator) activePane() *pane.Pane {
	return co.tree.Active.Pane
}
