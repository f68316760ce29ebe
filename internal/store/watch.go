package store

import (
	"os"
	"time"
)

// Watcher detects writes to the store made by another process (a second
// TUI, a CLI invocation, the sync poller in another terminal). It is a
// mod-time check, polled by the caller; when it fires, the caller
// reloads the snapshot and treats the result as an externally sourced
// replacement.
//
// Note: the undo history is process-local and is cleared on external
// replacement rather than reconciled; undoing across someone else's
// write would restore data they already replaced.
type Watcher struct {
	store Store
	last  time.Time
}

func NewWatcher(s Store) *Watcher {
	return &Watcher{store: s, last: fileModTime(s.sqlitePath())}
}

// Changed reports whether the store file was written since the last
// Mark. It never errors: a missing file just reads as the zero time.
func (w *Watcher) Changed() bool {
	return fileModTime(w.store.sqlitePath()).After(w.last)
}

// Mark records the current mod-time; call after any load or save so our
// own writes are not reported back as external changes.
func (w *Watcher) Mark() {
	w.last = fileModTime(w.store.sqlitePath())
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
