package commands

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Format string `short:"f" default:"yaml" help:"Output format (yaml or json)" enum:"yaml,json"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	_, cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return encode(g.Stdout, s.Format, cfg)
}
