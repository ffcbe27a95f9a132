// Package crashlog handles unexpected main-loop failures: they are
// appended to debug.log next to the executable and surfaced as a short
// message, but never crash the process.
package crashlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	goerrors "github.com/go-errors/errors"
)

// path resolves debug.log next to the running executable, falling back
// to the current directory if the executable path can't be determined.
func path() string {
	exe, err := os.Executable()
	if err != nil {
		return "debug.log"
	}
	return filepath.Join(filepath.Dir(exe), "debug.log")
}

// Record appends a timestamped stack trace for err to debug.log. Failure
// to write the log itself is swallowed — logging a crash must never
// become a second crash.
func Record(err error) {
	f, openErr := os.OpenFile(path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if openErr != nil {
		return
	}
	defer f.Close()

	trace := err.Error()
	if ge, ok := err.(*goerrors.Error); ok {
		trace = ge.ErrorStack()
	}
	fmt.Fprintf(f, "[%s] %s\n", time.Now().Format(time.RFC3339), trace)
}

// Recover is deferred at the top of the main loop and any command
// dispatch boundary. On panic it records the crash and invokes onCrash
// with a short message to render into the active pane, instead of
// letting the panic propagate.
func Recover(onCrash func(msg string)) {
	if r := recover(); r != nil {
		var err error
		switch v := r.(type) {
		case error:
			err = goerrors.Wrap(v, 0)
		default:
			err = goerrors.Errorf("%v", v)
		}
		Record(err)
		if onCrash != nil {
			onCrash("Internal Crash Avoided")
		}
	}
}
