package commands

import (
	"fmt"

	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	_, path, err := site.ResolvePaths(root.SiteOptions())
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}
