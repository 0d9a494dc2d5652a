package registry

import (
	"fmt"
	"strings"
)

// ClassicOptions are the options of the classic preset: docs, blog and theme CSS
// wired together under one block.
type ClassicOptions struct {
	Docs  DocsOptions  `yaml:"docs" json:"docs"`
	Blog  BlogOptions  `yaml:"blog" json:"blog"`
	Theme ThemeOptions `yaml:"theme" json:"theme"`
}

// DocsOptions configures the documentation plugin of the classic preset.
type DocsOptions struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	Path          string `yaml:"path" json:"path"`
	RouteBasePath string `yaml:"routeBasePath" json:"routeBasePath"`
	SidebarPath   string `yaml:"sidebarPath" json:"sidebarPath"`
	EditURL       string `yaml:"editUrl" json:"editUrl"`
}

// BlogOptions configures the blog plugin of the classic preset.
type BlogOptions struct {
	Enabled         bool   `yaml:"enabled" json:"enabled"`
	Path            string `yaml:"path" json:"path"`
	RouteBasePath   string `yaml:"routeBasePath" json:"routeBasePath"`
	ShowReadingTime bool   `yaml:"showReadingTime" json:"showReadingTime"`
	PostsPerPage    int    `yaml:"postsPerPage" json:"postsPerPage"`
}

// ThemeOptions configures the classic theme.
type ThemeOptions struct {
	CustomCSS []string `yaml:"customCss" json:"customCss"`
}

type classicRaw struct {
	Docs  Toggle `yaml:"docs"`
	Blog  Toggle `yaml:"blog"`
	Theme struct {
		CustomCSS StringList `yaml:"customCss"`
	} `yaml:"theme"`
}

type docsRaw struct {
	Path          string  `yaml:"path"`
	RouteBasePath *string `yaml:"routeBasePath"`
	SidebarPath   string  `yaml:"sidebarPath"`
	EditURL       string  `yaml:"editUrl"`
}

type blogRaw struct {
	Path            string  `yaml:"path"`
	RouteBasePath   *string `yaml:"routeBasePath"`
	ShowReadingTime bool    `yaml:"showReadingTime"`
	PostsPerPage    int     `yaml:"postsPerPage"`
}

func decodeClassic(opts *Options) (any, error) {
	var raw classicRaw
	if err := DecodeStrict(opts.Node, &raw); err != nil {
		return nil, err
	}

	out := &ClassicOptions{
		Docs: DocsOptions{Enabled: !raw.Docs.Disabled, Path: "docs", RouteBasePath: "docs"},
		Blog: BlogOptions{Enabled: !raw.Blog.Disabled, Path: "blog", RouteBasePath: "blog", PostsPerPage: 10},
	}

	var d docsRaw
	if err := DecodeStrict(raw.Docs.Node, &d); err != nil {
		return nil, fmt.Errorf("docs: %w", err)
	}
	if d.Path != "" {
		out.Docs.Path = d.Path
	}
	if d.RouteBasePath != nil {
		out.Docs.RouteBasePath = strings.Trim(*d.RouteBasePath, "/")
	}
	out.Docs.SidebarPath = d.SidebarPath
	out.Docs.EditURL = d.EditURL

	var b blogRaw
	if err := DecodeStrict(raw.Blog.Node, &b); err != nil {
		return nil, fmt.Errorf("blog: %w", err)
	}
	if b.Path != "" {
		out.Blog.Path = b.Path
	}
	if b.RouteBasePath != nil {
		out.Blog.RouteBasePath = strings.Trim(*b.RouteBasePath, "/")
	}
	out.Blog.ShowReadingTime = b.ShowReadingTime
	if b.PostsPerPage < 0 {
		return nil, fmt.Errorf("blog: postsPerPage must not be negative")
	}
	if b.PostsPerPage > 0 {
		out.Blog.PostsPerPage = b.PostsPerPage
	}

	out.Theme.CustomCSS = []string(raw.Theme.CustomCSS)
	if out.Theme.CustomCSS == nil {
		out.Theme.CustomCSS = []string{}
	}
	return out, nil
}
