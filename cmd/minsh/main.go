// Command minsh is MinSh's entry point: resolve the initial working
// directory, load configuration, wire up the coordinator, and run the
// main loop until the user exits or the console closes.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdullathedruid/minsh/internal/config"
	"github.com/abdullathedruid/minsh/internal/coordinator"
	"github.com/abdullathedruid/minsh/internal/crashlog"
	"github.com/abdullathedruid/minsh/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version.Short())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "minsh: loading config: %v\n", err)
		os.Exit(1)
	}

	historyPath, err := historyFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "minsh: resolving history path: %v\n", err)
		os.Exit(1)
	}

	co, err := coordinator.New(cfg, initialCwd(), historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minsh: %v\n", err)
		os.Exit(1)
	}

	// SetConfig does an atomic pointer swap, so the reload goroutine and
	// the coordinator's own goroutines (pumpLoop's ticker, gocui's input
	// loop) never race over the same *config.Config.
	stop := config.Watch(co.SetConfig)
	defer stop()

	defer crashlog.Recover(nil)
	if err := co.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "minsh: %v\n", err)
		os.Exit(1)
	}
}

// initialCwd resolves the pane's starting directory:
// USERPROFILE, else HOME, else the process's own current directory.
func initialCwd() string {
	if v := os.Getenv("USERPROFILE"); v != "" {
		return v
	}
	if v := os.Getenv("HOME"); v != "" {
		return v
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// historyFilePath resolves history.min next to the running executable.
func historyFilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "history.min", nil
	}
	return filepath.Join(filepath.Dir(exe), "history.min"), nil
}
