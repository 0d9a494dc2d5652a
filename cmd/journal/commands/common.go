package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/observability"
	"github.com/Rafailong/clojure-journal/internal/site"
)

// Global is shared state bound into every command.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Site configuration file" default:"journal.config.yaml"`
	Root      string           `help:"Site root directory (defaults to the directory of --config)"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format" enum:"text,json" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check  CheckCmd  `cmd:"" help:"Load the configuration and check every link, asset and route of the site"`
	Init   InitCmd   `cmd:"" help:"Write the example site configuration"`
	Show   ShowCmd   `cmd:"" help:"Print the configuration after defaults are applied"`
	Links  LinksCmd  `cmd:"" help:"Print the resolved navbar and footer"`
	Deploy DeployCmd `cmd:"" help:"Resolve the GitHub Pages deployment target"`
	Watch  WatchCmd  `cmd:"" help:"Re-run the check whenever the site changes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	w := g.Stderr
	if w == nil {
		w = os.Stderr
	}
	g.Logger = observability.NewLogger(w, level, c.LogFormat)
	slog.SetDefault(g.Logger)
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	return nil
}

// SiteOptions translates the global flags into check options.
func (c *CLI) SiteOptions() site.Options {
	return site.Options{ConfigPath: c.Config, Root: c.Root}
}

// LoadConfig loads the configuration selected by the global flags.
func (c *CLI) LoadConfig() (root string, cfg *config.Config, err error) {
	root, path, err := site.ResolvePaths(c.SiteOptions())
	if err != nil {
		return "", nil, err
	}
	cfg, err = config.Load(path, nil)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}
