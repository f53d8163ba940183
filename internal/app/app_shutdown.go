package app

import (
	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/perf"
)

// Shutdown releases resources that may outlive the Bubble Tea program.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.stopWatcher != nil {
			a.stopWatcher()
		}
		if a.watcher != nil {
			logging.WithError(a.watcher.Close(), "closing repo watcher")
		}
		if a.zone != nil {
			a.zone.Close()
		}
		perf.Flush("shutdown")
	})
}
