package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/problems"
)

func touch(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
}

func exampleConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(config.ExampleDocument), nil)
	require.NoError(t, err)
	return cfg
}

func TestRefs(t *testing.T) {
	refs := Refs(exampleConfig(t))
	assert.Equal(t, []Ref{
		{Field: "favicon", Path: "img/clojure-ico.ico", Static: true},
		{Field: "themeConfig.navbar.logo.src", Path: "img/clojure-logo.svg", Static: true},
		{Field: "presets.classic.docs.sidebarPath", Path: "./sidebars.js"},
		{Field: "presets.classic.theme.customCss[0]", Path: "./src/css/custom.css"},
	}, refs)
}

func TestCheckAllPresent(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "static/img/clojure-ico.ico", "static/img/clojure-logo.svg", "sidebars.js", "src/css/custom.css")

	report := Check(root, exampleConfig(t))
	assert.Equal(t, 0, report.Len())
}

func TestCheckMissingFavicon(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "static/img/clojure-logo.svg", "sidebars.js", "src/css/custom.css", "img/clojure-ico.ico")

	report := Check(root, exampleConfig(t))
	require.Equal(t, 1, report.Len())
	p := report.Problems()[0]
	assert.Equal(t, problems.ClassAsset, p.Class)
	assert.Equal(t, "favicon", p.Source)
	assert.Equal(t, "img/clojure-ico.ico", p.Target)
	// The example site throws on broken links.
	assert.Error(t, report.Err())
}

func TestCheckSkipsExternalAndHonorsStaticDirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "public/favicon.ico")

	doc := `
title: t
tagline: t
url: https://example.com
baseUrl: /site/
favicon: /site/favicon.ico
staticDirectories: [static, public]
themeConfig:
  navbar:
    logo:
      src: https://cdn.example.com/logo.svg
`
	cfg, err := config.Parse([]byte(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, Check(root, cfg).Len())
}
