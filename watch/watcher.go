// Package watch re-runs a callback when project sources change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before the callback runs
const DefaultDebounce = 300 * time.Millisecond

// ErrNoRoot indicates the watcher was created without a root directory
var ErrNoRoot = errors.New("watch root was empty")

// Watcher watches a directory tree for source and project file changes
type Watcher struct {
	root        string
	debounce    time.Duration
	excludeDirs map[string]bool
	extensions  map[string]bool
	logger      *slog.Logger
	watcher     *fsnotify.Watcher
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the debounce interval
func WithDebounce(debounce time.Duration) Option {
	return func(w *Watcher) {
		if debounce > 0 {
			w.debounce = debounce
		}
	}
}

// WithExcludeDirs sets directory names that are not watched
func WithExcludeDirs(dirs ...string) Option {
	return func(w *Watcher) {
		w.excludeDirs = make(map[string]bool, len(dirs))
		for _, dir := range dirs {
			w.excludeDirs[dir] = true
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a watcher over root and its subdirectories
func New(root string, options ...Option) (*Watcher, error) {
	if root == "" {
		return nil, ErrNoRoot
	}
	ret := &Watcher{
		root:        root,
		debounce:    DefaultDebounce,
		excludeDirs: map[string]bool{"bin": true, "obj": true},
		extensions:  map[string]bool{".cs": true, ".csproj": true},
		logger:      slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	var err error
	if ret.watcher, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}
	if err = ret.addRecursive(root); err != nil {
		_ = ret.watcher.Close()
		return nil, err
	}
	return ret, nil
}

// Run calls onChange once per debounced burst of relevant changes until ctx is done or onChange fails.
// Callbacks never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context) error) error {
	defer w.watcher.Close()
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-timer.C:
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

// handle returns true if event should trigger the callback
func (w *Watcher) handle(event fsnotify.Event) bool {
	if w.isExcluded(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if err := w.addRecursive(event.Name); err == nil && w.isDir(event.Name) {
			return false
		}
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	relevant := w.extensions[strings.ToLower(filepath.Ext(event.Name))]
	if relevant {
		w.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
	}
	return relevant
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.isExcluded(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) isDir(path string) bool {
	for _, watched := range w.watcher.WatchList() {
		if watched == path {
			return true
		}
	}
	return false
}

// isExcluded returns true if any directory between root and path is excluded or hidden
func (w *Watcher) isExcluded(path string) bool {
	relative, err := filepath.Rel(w.root, path)
	if err != nil || relative == "." {
		return false
	}
	for _, segment := range strings.Split(filepath.ToSlash(relative), "/") {
		if w.excludeDirs[segment] || strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
