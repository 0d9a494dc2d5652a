// Package site runs the check pipeline over a Docusaurus site: it loads the
// configuration, scans the docs tree and verifies every reference the site
// makes. The resulting Site is immutable and passed explicitly to callers.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Rafailong/clojure-journal/internal/assets"
	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/docs"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/links"
	"github.com/Rafailong/clojure-journal/internal/logfields"
	"github.com/Rafailong/clojure-journal/internal/metrics"
	"github.com/Rafailong/clojure-journal/internal/observability"
	"github.com/Rafailong/clojure-journal/internal/problems"
	"github.com/Rafailong/clojure-journal/internal/registry"
	"github.com/Rafailong/clojure-journal/internal/routes"
)

// Stage names, also used as metric labels.
const (
	StageLoad               = "load"
	StageScanDocs           = "scan_docs"
	StageCheckRoutes        = "check_routes"
	StageResolveLinks       = "resolve_links"
	StageCheckAssets        = "check_assets"
	StageCheckMarkdownLinks = "check_markdown_links"
)

// Options selects the site to check.
type Options struct {
	// ConfigPath is the configuration document. Relative paths are taken
	// from Root; empty means config.DefaultFileName.
	ConfigPath string

	// Root is the site directory. Empty means the directory of ConfigPath.
	Root string
}

// Site is the outcome of a check run.
type Site struct {
	Root       string
	ConfigPath string
	RunID      string
	Config     *config.Config
	Tree       *docs.Tree
	Routes     *routes.Set
	Navigation *links.Navigation
	Report     *problems.Report
	Duration   time.Duration
}

// Checker executes the check pipeline.
type Checker struct {
	registry *registry.Registry
	recorder metrics.Recorder
}

// NewChecker creates a Checker with the built-in extension registry and no metrics.
func NewChecker() *Checker {
	return &Checker{registry: registry.Default(), recorder: metrics.NoopRecorder{}}
}

// WithRegistry replaces the installed extension set.
func (c *Checker) WithRegistry(reg *registry.Registry) *Checker {
	if reg != nil {
		c.registry = reg
	}
	return c
}

// WithRecorder sets the metrics recorder.
func (c *Checker) WithRecorder(rec metrics.Recorder) *Checker {
	if rec != nil {
		c.recorder = rec
	}
	return c
}

// Check runs the pipeline with a default Checker.
func Check(ctx context.Context, opts Options) (*Site, error) {
	return NewChecker().Check(ctx, opts)
}

// ResolvePaths returns the absolute site root and configuration path for opts.
func ResolvePaths(opts Options) (root, configPath string, err error) {
	configPath = opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	root = opts.Root
	if root == "" {
		root = filepath.Dir(configPath)
	} else if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(root, configPath)
	}
	if root, err = filepath.Abs(root); err != nil {
		return "", "", ferrors.FileSystemError("failed to resolve site root").WithCause(err).Build()
	}
	if configPath, err = filepath.Abs(configPath); err != nil {
		return "", "", ferrors.FileSystemError("failed to resolve configuration path").WithCause(err).Build()
	}
	return root, configPath, nil
}

// Check loads and checks the site selected by opts. Broken references are
// collected in Site.Report; when any of them falls under the throw policy the
// Site is returned together with the report's fatal error. Failures of a stage
// return a nil Site.
func (c *Checker) Check(ctx context.Context, opts Options) (*Site, error) {
	start := time.Now()
	root, configPath, err := ResolvePaths(opts)
	if err != nil {
		c.recorder.IncCheckOutcome(metrics.OutcomeFailed)
		return nil, err
	}

	ctx, runID := observability.WithNewRunID(ctx)
	ctx = observability.WithConfigPath(ctx, configPath)
	s := &Site{Root: root, ConfigPath: configPath, RunID: runID, Report: problems.NewReport()}

	stages := []struct {
		name string
		run  func(context.Context, *Site) (*problems.Report, error)
	}{
		{StageLoad, c.load},
		{StageScanDocs, c.scanDocs},
		{StageCheckRoutes, c.checkRoutes},
		{StageResolveLinks, c.resolveLinks},
		{StageCheckAssets, c.checkAssets},
		{StageCheckMarkdownLinks, c.checkMarkdownLinks},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			c.recorder.IncStageResult(stage.name, metrics.ResultCanceled)
			c.recorder.IncCheckOutcome(metrics.OutcomeCanceled)
			return nil, ferrors.NewError(ferrors.CategoryRuntime, "check canceled").
				WithCause(err).
				WithContext("stage", stage.name).
				Build()
		}
		stageCtx := observability.WithStage(ctx, stage.name)
		stageStart := time.Now()
		report, err := stage.run(stageCtx, s)
		elapsed := time.Since(stageStart)
		c.recorder.ObserveStageDuration(stage.name, elapsed)
		if err != nil {
			c.recorder.IncStageResult(stage.name, metrics.ResultFatal)
			c.recorder.IncCheckOutcome(metrics.OutcomeFailed)
			observability.ErrorContext(stageCtx, "Stage failed", logfields.Error(err))
			return nil, err
		}
		c.recorder.IncStageResult(stage.name, stageResult(report))
		observability.DebugContext(stageCtx, "Stage complete",
			logfields.DurationMS(float64(elapsed.Microseconds())/1000),
			slog.Int("problems", report.Len()))
		report.Log(stageCtx)
		s.Report.Merge(report)
	}

	for class, n := range s.Report.Counts() {
		c.recorder.AddProblems(string(class), string(policyFor(s.Config, class)), n)
	}
	s.Duration = time.Since(start)
	c.recorder.ObserveCheckDuration(s.Duration)

	err = s.Report.Err()
	switch {
	case err != nil:
		c.recorder.IncCheckOutcome(metrics.OutcomeFailed)
	case s.Report.Len() > 0:
		c.recorder.IncCheckOutcome(metrics.OutcomeWarning)
	default:
		c.recorder.IncCheckOutcome(metrics.OutcomeSuccess)
	}
	observability.InfoContext(ctx, "Check complete",
		slog.Int("docs", s.Tree.Len()),
		slog.Int("routes", s.Routes.Len()),
		slog.Int("problems", s.Report.Len()),
		logfields.DurationMS(float64(s.Duration.Microseconds())/1000))
	return s, err
}

func stageResult(report *problems.Report) metrics.ResultLabel {
	switch {
	case report.Err() != nil:
		return metrics.ResultFatal
	case report.Len() > 0:
		return metrics.ResultWarning
	default:
		return metrics.ResultSuccess
	}
}

func policyFor(cfg *config.Config, class problems.Class) config.BrokenLinkPolicy {
	switch class {
	case problems.ClassMarkdownLink:
		return cfg.OnBrokenMarkdownLinks
	case problems.ClassRoute:
		return cfg.OnDuplicateRoutes
	default:
		return cfg.OnBrokenLinks
	}
}

func (c *Checker) load(ctx context.Context, s *Site) (*problems.Report, error) {
	observability.InfoContext(ctx, "Loading site configuration")
	cfg, err := config.Load(s.ConfigPath, c.registry)
	if err != nil {
		return nil, err
	}
	s.Config = cfg
	return problems.NewReport(), nil
}

func (c *Checker) scanDocs(ctx context.Context, s *Site) (*problems.Report, error) {
	tree, err := docs.Scan(ctx, s.Root, s.Config)
	if err != nil {
		return nil, err
	}
	s.Tree = tree
	c.recorder.SetDocs(tree.Len())
	observability.InfoContext(ctx, "Scanned documentation", slog.Int("docs", tree.Len()))
	return problems.NewReport(), nil
}

func (c *Checker) checkRoutes(_ context.Context, s *Site) (*problems.Report, error) {
	set, err := links.BuildRouteSet(s.Root, s.Config, s.Tree)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to collect site routes").WithCause(err).Build()
	}
	s.Routes = set
	report := problems.NewReport()
	for _, c := range set.Collisions() {
		report.Add(s.Config.OnDuplicateRoutes, problems.ClassRoute, c.Source, c.Path,
			fmt.Sprintf("route %s is also produced by %s", c.Path, c.Previous))
	}
	return report, nil
}

func (c *Checker) resolveLinks(_ context.Context, s *Site) (*problems.Report, error) {
	nav, report := links.NewResolver(s.Config, s.Tree, s.Routes).ResolveNavigation()
	s.Navigation = nav
	return report, nil
}

func (c *Checker) checkAssets(_ context.Context, s *Site) (*problems.Report, error) {
	return assets.Check(s.Root, s.Config), nil
}

func (c *Checker) checkMarkdownLinks(_ context.Context, s *Site) (*problems.Report, error) {
	return links.NewResolver(s.Config, s.Tree, s.Routes).CheckMarkdownLinks(s.Root), nil
}
