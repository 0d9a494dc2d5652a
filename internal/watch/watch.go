// Package watch re-runs the site check when the configuration or site
// content changes on disk.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Rafailong/clojure-journal/internal/config"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/logfields"
)

// DefaultDebounce is the quiet window applied to bursts of file events.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc is invoked once at start and after every debounced change.
// Its error is logged; watching continues.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// ConfigPath is the configuration document; its directory is watched
	// for the document and its .env files.
	ConfigPath string
	// Dirs are content directories watched recursively. Missing ones are skipped.
	Dirs []string
	// RefreshDirs, when set, is called after every run. Directories it returns
	// that are not watched yet are added, so configuration edits that move
	// content take effect without a restart.
	RefreshDirs func() []string
	Debounce    time.Duration
}

// Watcher monitors the site and triggers debounced re-runs.
type Watcher struct {
	configPath  string
	dirs        []string
	refreshDirs func() []string
	debounce    time.Duration
	run         RunFunc
	watcher     *fsnotify.Watcher

	readyOnce sync.Once
	ready     chan struct{}
}

// New creates a Watcher. Call Run to start it.
func New(opts Options, run RunFunc) (*Watcher, error) {
	if run == nil {
		return nil, ferrors.ValidationError("run function is required").Build()
	}
	absConfig, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to resolve config path").WithCause(err).Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.FileSystemError("failed to create file watcher").WithCause(err).Build()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		configPath:  absConfig,
		dirs:        append([]string(nil), opts.Dirs...),
		refreshDirs: opts.RefreshDirs,
		debounce:    debounce,
		run:         run,
		watcher:     fw,
		ready:       make(chan struct{}),
	}, nil
}

// Ready is closed once the initial run finished and all directories are watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Dirs returns the content directories of a site that affect a check.
func Dirs(root string, cfg *config.Config) []string {
	var dirs []string
	if d, ok := cfg.Docs(); ok {
		dirs = append(dirs, filepath.Join(root, filepath.FromSlash(d.Path)))
	}
	if b, ok := cfg.Blog(); ok {
		dirs = append(dirs, filepath.Join(root, filepath.FromSlash(b.Path)))
	}
	for _, s := range cfg.StaticDirectories {
		dirs = append(dirs, filepath.Join(root, filepath.FromSlash(s)))
	}
	return append(dirs, filepath.Join(root, "src"))
}

// Run performs the initial run, then watches until ctx is canceled. It
// returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return ferrors.FileSystemError("failed to watch config directory").
			WithCause(err).
			WithContext("path", filepath.Dir(w.configPath)).
			Build()
	}
	for _, dir := range w.dirs {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}

	w.invoke(ctx)
	w.readyOnce.Do(func() { close(w.ready) })
	slog.Info("Watching for changes", logfields.Path(w.configPath), slog.Int("dirs", len(w.dirs)))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			slog.Info("Stopping watcher")
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.invoke(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) invoke(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.run(ctx); err != nil {
		slog.Error("Check failed", logfields.Error(err))
	}
	w.refresh()
}

// refresh starts watching directories reported by RefreshDirs that are not
// watched yet. Directories that disappear from the list stay watched.
func (w *Watcher) refresh() {
	if w.refreshDirs == nil {
		return
	}
	for _, dir := range w.refreshDirs() {
		dir = filepath.Clean(dir)
		if w.watching(dir) {
			continue
		}
		if err := w.addTree(dir); err != nil {
			slog.Warn("Failed to watch content directory", logfields.Path(dir), logfields.Error(err))
			continue
		}
		w.dirs = append(w.dirs, dir)
		slog.Info("Watching new content directory", logfields.Path(dir))
	}
}

func (w *Watcher) watching(dir string) bool {
	for _, d := range w.dirs {
		if filepath.Clean(d) == dir {
			return true
		}
	}
	return false
}

// relevant filters events of the config directory down to the configuration
// document and its .env files. Events below content directories always count,
// except for hidden files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(event.Name)
	if filepath.Dir(event.Name) == filepath.Dir(w.configPath) {
		if filepath.Clean(event.Name) == w.configPath || name == ".env" || name == ".env.local" {
			return true
		}
		if !w.underContentDir(event.Name) {
			return false
		}
	}
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, "~")
}

func (w *Watcher) underContentDir(p string) bool {
	for _, dir := range w.dirs {
		if rel, err := filepath.Rel(dir, p); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// addTree watches dir and every directory below it. fsnotify is not recursive.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ferrors.FileSystemError("failed to watch directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}
	return nil
}
