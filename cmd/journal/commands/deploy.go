package commands

import (
	"github.com/Rafailong/clojure-journal/internal/deploy"
)

// DeployCmd implements the 'deploy' command. It only resolves and prints the
// target; pushing the build output is left to the Docusaurus deploy script.
type DeployCmd struct {
	Format string `short:"f" default:"yaml" help:"Output format (yaml or json)" enum:"yaml,json"`
}

func (d *DeployCmd) Run(g *Global, root *CLI) error {
	dir, cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	target, err := deploy.Plan(dir, cfg, deploy.EnvFromOS())
	if err != nil {
		return err
	}
	return encode(g.Stdout, d.Format, target)
}
