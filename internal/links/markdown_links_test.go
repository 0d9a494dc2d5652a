package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafailong/clojure-journal/internal/problems"
)

const markdownSite = `
title: t
tagline: t
url: https://example.com
baseUrl: /site/
onBrokenLinks: warn
onBrokenMarkdownLinks: throw
presets: [classic]
`

func TestCheckMarkdownLinks(t *testing.T) {
	s := newSite(t, markdownSite, map[string]string{
		"docs/intro.md": "---\ntitle: Intro\n---\n" +
			"See [page](./guides/01-setup.md) and [missing](./nope.md).\n\n" +
			"Go to [setup](guides/setup#step-1), [page](/missing-page) and [external](https://clojure.org).\n\n" +
			"![logo](/img/logo.svg) ![local](./img/diagram.png) ![gone](./img/gone.png)\n\n" +
			"[anchor](#top)\n",
		"docs/guides/01-setup.md": "# Setup\n\nBack to [intro](../intro.md).\n",
		"docs/img/diagram.png":    "png",
		"static/img/logo.svg":     "<svg/>",
	})

	report := s.resolver(t).CheckMarkdownLinks(s.root)

	byClass := map[problems.Class][]string{}
	for _, p := range report.Problems() {
		byClass[p.Class] = append(byClass[p.Class], p.Target)
	}
	assert.Equal(t, []string{"./nope.md"}, byClass[problems.ClassMarkdownLink])
	assert.Equal(t, []string{"/missing-page"}, byClass[problems.ClassLink])
	assert.Equal(t, []string{"./img/gone.png"}, byClass[problems.ClassAsset])

	require.Error(t, report.Err())
	assert.Len(t, report.Fatal(), 1)

	for _, p := range report.Problems() {
		if p.Class == problems.ClassMarkdownLink {
			assert.Equal(t, "docs/intro.md:4", p.Source)
		}
	}
}
