package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch watches minsh.yaml for changes and invokes onChange with the
// freshly reloaded Config whenever it's modified. A scrollback cap
// change from a reload only takes effect for panes created afterward,
// and key bindings are bound once at startup and are not re-bound; the
// coordinator applies prompt colors, idle sleep, debug and the default
// shell immediately.
//
// Watch returns a stop function. A watcher that fails to start (e.g. the
// config file doesn't exist yet) degrades to a no-op rather than an
// error: hot-reload is a convenience, not a requirement.
func Watch(onChange func(*Config)) (stop func()) {
	path, err := FilePath()
	if err != nil {
		return func() {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return func() {}
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					if cfg, err := Load(); err == nil {
						onChange(cfg)
					}
				}
			case <-watcher.Errors:
				// ignore; hot-reload is best-effort
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		_ = watcher.Close()
	}
}
