package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rafailong/clojure-journal/internal/site"
	"github.com/Rafailong/clojure-journal/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before re-running the check" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	dir, cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	_, cfgPath, err := site.ResolvePaths(root.SiteOptions())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	checker := site.NewChecker()
	watcher, err := watch.New(watch.Options{
		ConfigPath:  cfgPath,
		Dirs:        watch.Dirs(dir, cfg),
		RefreshDirs: func() []string { return contentDirs(root) },
		Debounce:    w.Debounce,
	}, func(ctx context.Context) error {
		s, err := checker.Check(ctx, root.SiteOptions())
		if s != nil {
			PrintSummary(g.Stdout, s)
		}
		return err
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

// contentDirs reloads the configuration and lists its content directories.
// An invalid document yields nothing; the directories already watched stay.
func contentDirs(root *CLI) []string {
	dir, cfg, err := root.LoadConfig()
	if err != nil {
		return nil
	}
	return watch.Dirs(dir, cfg)
}
