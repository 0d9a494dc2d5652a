package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Rafailong/clojure-journal/internal/metrics"
	"github.com/Rafailong/clojure-journal/internal/site"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics of the run to this file"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	checker := site.NewChecker()
	var reg *prom.Registry
	if c.MetricsTextfile != "" {
		reg = prom.NewRegistry()
		checker.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	s, err := checker.Check(ctx, root.SiteOptions())
	if s != nil {
		PrintSummary(g.Stdout, s)
	}
	if reg != nil {
		if werr := metrics.WriteTextfile(c.MetricsTextfile, reg); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// PrintSummary writes the problems of a check followed by a one-line total.
func PrintSummary(w io.Writer, s *site.Site) {
	for _, p := range s.Report.Sorted() {
		fmt.Fprintf(w, "%-7s %-13s %s -> %s: %s\n", p.Policy, p.Class, p.Source, p.Target, p.Err.Message())
	}
	fmt.Fprintf(w, "%s: %d docs, %d routes, %d problems\n", s.Config.Title, s.Tree.Len(), s.Routes.Len(), s.Report.Len())
}
