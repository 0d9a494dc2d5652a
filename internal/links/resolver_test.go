package links

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/docs"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/problems"
)

type site struct {
	root string
	cfg  *config.Config
	tree *docs.Tree
}

func newSite(t *testing.T, doc string, files map[string]string) *site {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	cfg, err := config.Parse([]byte(doc), nil)
	require.NoError(t, err)
	tree, err := docs.Scan(context.Background(), root, cfg)
	require.NoError(t, err)
	return &site{root: root, cfg: cfg, tree: tree}
}

func (s *site) resolver(t *testing.T) *Resolver {
	t.Helper()
	set, err := BuildRouteSet(s.root, s.cfg, s.tree)
	require.NoError(t, err)
	return NewResolver(s.cfg, s.tree, set)
}

var projectsItem = config.NavbarItem{
	Type:     config.NavbarItemDoc,
	DocID:    "intro",
	Position: config.PositionLeft,
	Label:    "Projects",
}

func TestResolveDocLinkToIntro(t *testing.T) {
	s := newSite(t, config.ExampleDocument, map[string]string{"docs/intro.md": "# Tutorial Intro\n"})

	link, err := s.resolver(t).ResolveNavbarItem(projectsItem)
	require.NoError(t, err)
	assert.Equal(t, KindDoc, link.Kind)
	assert.Equal(t, "Projects", link.Label)
	assert.Equal(t, "intro", link.DocID)
	assert.Equal(t, "/clojure-journal/docs/intro/", link.URL)
	assert.Equal(t, config.PositionLeft, link.Position)
}

func TestResolveDocLinkMissingIntro(t *testing.T) {
	s := newSite(t, config.ExampleDocument, map[string]string{"docs/other.md": "# Other\n"})

	_, err := s.resolver(t).ResolveNavbarItem(projectsItem)
	require.Error(t, err)
	assert.True(t, ferrors.IsReferenceError(err))
	assert.Equal(t, ferrors.SeverityFatal, ferrors.GetSeverity(err))
}

func TestResolveDocLinkPolicySeverity(t *testing.T) {
	tests := []struct {
		policy   string
		wantErr  bool
		severity ferrors.ErrorSeverity
	}{
		{"throw", true, ferrors.SeverityFatal},
		{"warn", true, ferrors.SeverityWarning},
		{"log", true, ferrors.SeverityInfo},
		{"ignore", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			doc := "title: t\ntagline: t\nurl: https://example.com\nbaseUrl: /\npresets: [classic]\nonBrokenLinks: " + tt.policy + "\n"
			s := newSite(t, doc, map[string]string{"docs/other.md": "# Other\n"})

			link, err := s.resolver(t).ResolveNavbarItem(projectsItem)
			assert.Equal(t, "", link.URL)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.severity, ferrors.GetSeverity(err))
		})
	}
}

func TestResolveNavigationExample(t *testing.T) {
	s := newSite(t, config.ExampleDocument, map[string]string{
		"docs/intro.md":            "# Tutorial Intro\n",
		"blog/2021-08-01-hello.md": "# Hello\n",
	})

	nav, report := s.resolver(t).ResolveNavigation()
	assert.Equal(t, 0, report.Len())
	require.Len(t, nav.Navbar, 2)
	assert.Equal(t, "/clojure-journal/docs/intro/", nav.Navbar[0].URL)
	assert.Equal(t, ResolvedLink{
		Label:    "Blog",
		Position: config.PositionLeft,
		Type:     config.NavbarItemDefault,
		Kind:     KindInternal,
		URL:      "/clojure-journal/blog/",
	}, nav.Navbar[1])

	require.Len(t, nav.Footer, 3)
	assert.Equal(t, "Projects", nav.Footer[0].Title)
	assert.Empty(t, nav.Footer[0].Items)
	assert.Equal(t, ResolvedLink{Label: "Twitter", Kind: KindExternal, URL: "https://twitter.com/docusaurus"}, nav.Footer[1].Items[0])
	assert.Equal(t, "https://github.com/Rafailong/clojure-journal", nav.Footer[2].Items[0].URL)
}

func TestResolveNavigationBrokenInternalRoute(t *testing.T) {
	doc := `
title: t
tagline: t
url: https://example.com
baseUrl: /site/
presets:
  - [classic, {blog: false}]
themeConfig:
  navbar:
    items:
      - to: /blog
        label: Blog
      - to: /about
        label: About
      - type: dropdown
        label: More
        items:
          - type: doc
            docId: missing
          - href: https://example.org
            label: Org
      - type: search
        position: right
  footer:
    links:
      - title: Docs
        items:
          - label: Intro
            to: /docs/intro
          - label: Gone
            to: /docs/gone
`
	s := newSite(t, doc, map[string]string{
		"docs/intro.md":        "# Intro\n",
		"src/pages/about.md":   "# About\n",
		"src/pages/index.js":   "export default () => null;\n",
		"src/pages/_hidden.js": "",
		"static/img/logo.svg":  "<svg/>",
	})

	nav, report := s.resolver(t).ResolveNavigation()
	require.Len(t, nav.Navbar, 4)
	assert.Equal(t, "/site/about", nav.Navbar[1].URL)
	assert.Equal(t, KindNone, nav.Navbar[2].Kind)
	require.Len(t, nav.Navbar[2].Items, 2)
	assert.Equal(t, KindExternal, nav.Navbar[2].Items[1].Kind)
	assert.Equal(t, KindNone, nav.Navbar[3].Kind)
	assert.Equal(t, config.PositionRight, nav.Navbar[3].Position)

	targets := []string{}
	for _, p := range report.Problems() {
		assert.Equal(t, problems.ClassLink, p.Class)
		targets = append(targets, p.Target)
	}
	assert.Equal(t, []string{"/site/blog", "missing", "/site/docs/gone"}, targets)
	assert.NoError(t, report.Err())
}

func TestWithBaseURL(t *testing.T) {
	s := newSite(t, config.ExampleDocument, map[string]string{"docs/intro.md": "# Intro\n"})
	r := s.resolver(t)

	assert.Equal(t, "/clojure-journal/blog/", r.WithBaseURL("/blog"))
	assert.Equal(t, "/clojure-journal/blog/", r.WithBaseURL("/clojure-journal/blog"))
	assert.Equal(t, "/clojure-journal/docs/intro/#setup", r.WithBaseURL("/docs/intro#setup"))
	assert.Equal(t, "/clojure-journal/img/logo.svg", r.WithBaseURL("/img/logo.svg"))
	assert.Equal(t, "#top", r.WithBaseURL("#top"))
	assert.Equal(t, "/clojure-journal/", r.WithBaseURL("/clojure-journal"))
	assert.Equal(t, "/clojure-journal/", r.WithBaseURL("/"))
}

func TestResolveFooterItemToSiteRoot(t *testing.T) {
	s := newSite(t, config.ExampleDocument, map[string]string{"docs/intro.md": "# Intro\n"})
	r := s.resolver(t)

	for _, to := range []string{"/", "/clojure-journal", "/clojure-journal/"} {
		link, err := r.ResolveFooterItem(config.FooterLinkItem{Label: "Home", To: to})
		require.NoError(t, err, to)
		assert.Equal(t, "/clojure-journal/", link.URL, to)
	}
}

func TestResolverWithoutRouteSetSkipsRouteChecks(t *testing.T) {
	s := newSite(t, config.ExampleDocument, map[string]string{"docs/intro.md": "# Intro\n"})
	r := NewResolver(s.cfg, s.tree, nil)
	link, err := r.ResolveFooterItem(config.FooterLinkItem{Label: "Nowhere", To: "/nowhere"})
	require.NoError(t, err)
	assert.Equal(t, "/clojure-journal/nowhere/", link.URL)
}
