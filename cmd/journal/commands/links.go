package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Rafailong/clojure-journal/internal/links"
	"github.com/Rafailong/clojure-journal/internal/site"
)

// LinksCmd implements the 'links' command.
type LinksCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text, yaml or json)" enum:"text,yaml,json"`
}

func (l *LinksCmd) Run(g *Global, root *CLI) error {
	s, err := site.Check(context.Background(), root.SiteOptions())
	if s == nil {
		return err
	}
	if l.Format == "text" {
		printNavigation(g.Stdout, s.Navigation)
	} else if eerr := encode(g.Stdout, l.Format, s.Navigation); eerr != nil {
		return eerr
	}
	return err
}

func printNavigation(w io.Writer, nav *links.Navigation) {
	fmt.Fprintln(w, "navbar:")
	for _, item := range nav.Navbar {
		printLink(w, item, 1)
	}
	fmt.Fprintln(w, "footer:")
	for _, group := range nav.Footer {
		fmt.Fprintf(w, "  %s\n", group.Title)
		for _, item := range group.Items {
			printLink(w, item, 2)
		}
	}
}

func printLink(w io.Writer, l links.ResolvedLink, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case l.URL != "":
		fmt.Fprintf(w, "%s%s -> %s (%s)\n", indent, l.Label, l.URL, l.Kind)
	case l.Label != "":
		fmt.Fprintf(w, "%s%s (%s)\n", indent, l.Label, l.Type)
	default:
		fmt.Fprintf(w, "%s(%s)\n", indent, l.Type)
	}
	for _, child := range l.Items {
		printLink(w, child, depth+1)
	}
}
