package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/safego"
)

// DefaultWatchDebounce coalesces the burst of ref writes a single git
// command produces.
const DefaultWatchDebounce = 300 * time.Millisecond

// RepoWatcher watches a git directory for ref changes (commits, checkouts,
// fetches, tags) and calls onChanged once per burst.
type RepoWatcher struct {
	watcher *fsnotify.Watcher
	gitDir  string

	onChanged func()
	debounce  time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
	dirs      map[string]struct{}
}

// NewRepoWatcher watches gitDir, and every directory below gitDir/refs.
func NewRepoWatcher(gitDir string, debounce time.Duration, onChanged func()) (*RepoWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	rw := &RepoWatcher{
		watcher:   watcher,
		gitDir:    filepath.Clean(gitDir),
		onChanged: onChanged,
		debounce:  debounce,
		dirs:      make(map[string]struct{}),
	}
	if err := rw.addDir(rw.gitDir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	rw.watchRefs(filepath.Join(rw.gitDir, "refs"))
	return rw, nil
}

// watchRefs recursively adds ref directories. Missing directories are fine.
func (rw *RepoWatcher) watchRefs(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := rw.addDir(path); err != nil {
			logging.Debug("watch %s: %v", path, err)
		}
		return nil
	})
}

func (rw *RepoWatcher) addDir(dir string) error {
	if rw.Watching(dir) {
		return nil
	}

	// Release lock around slow fsnotify.Add
	if err := rw.watcher.Add(dir); err != nil {
		return err
	}

	rw.mu.Lock()
	rw.dirs[dir] = struct{}{}
	rw.mu.Unlock()
	return nil
}

// Watching reports whether dir is registered.
func (rw *RepoWatcher) Watching(dir string) bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	_, ok := rw.dirs[filepath.Clean(dir)]
	return ok
}

// Run processes file system events until ctx is canceled or the watcher
// closes.
func (rw *RepoWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-rw.watcher.Events:
			if !ok {
				return nil
			}
			rw.handle(event)
		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("repo watcher: %v", err)
		}
	}
}

func (rw *RepoWatcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if event.Has(fsnotify.Create) && IsRefPath(rw.gitDir, name) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			rw.watchRefs(name)
		}
	}
	if !IsRefPath(rw.gitDir, name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	rw.scheduleNotify()
}

// IsRefPath reports whether path names something that changes the history
// listing: HEAD, packed-refs or anything under refs/. Lock files are
// ignored; their rename onto the real name is what counts.
func IsRefPath(gitDir, path string) bool {
	rel, err := filepath.Rel(gitDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	if strings.HasSuffix(rel, ".lock") {
		return false
	}
	rel = filepath.ToSlash(rel)
	switch {
	case rel == "HEAD", rel == "packed-refs":
		return true
	case rel == "refs", strings.HasPrefix(rel, "refs/"):
		return true
	}
	return false
}

func (rw *RepoWatcher) scheduleNotify() {
	if rw.onChanged == nil {
		return
	}
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.closed {
		return
	}
	if rw.timer == nil {
		rw.timer = time.AfterFunc(rw.debounce, rw.fire)
	} else {
		rw.timer.Reset(rw.debounce)
	}
}

func (rw *RepoWatcher) fire() {
	rw.mu.Lock()
	if rw.closed {
		rw.mu.Unlock()
		return
	}
	rw.timer = nil
	rw.mu.Unlock()

	safego.Run("git.repo-watcher", rw.onChanged)
}

// Close stops the watcher and any pending notification.
func (rw *RepoWatcher) Close() error {
	var err error
	rw.closeOnce.Do(func() {
		rw.mu.Lock()
		rw.closed = true
		if rw.timer != nil {
			rw.timer.Stop()
			rw.timer = nil
		}
		rw.mu.Unlock()
		err = rw.watcher.Close()
	})
	return err
}
