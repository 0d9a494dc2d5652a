package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"

	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
)

// ExampleDocument is the Clojure Journal site configuration written by Init.
const ExampleDocument = `# Site configuration for Clojure Journal.
title: Clojure Journal
tagline: My personal journal to Clojure
url: https://rafailong.github.io
baseUrl: /clojure-journal/
onBrokenLinks: throw
onBrokenMarkdownLinks: warn
favicon: img/clojure-ico.ico

# GitHub pages deployment target.
organizationName: Rafailong
projectName: clojure-journal
deploymentBranch: deployment
trailingSlash: true

i18n:
  defaultLocale: en
  locales: [en]

presets:
  - - classic
    - docs:
        sidebarPath: ./sidebars.js
      blog:
        showReadingTime: true
      theme:
        customCss: ./src/css/custom.css

themeConfig:
  navbar:
    title: Clojure Journal
    logo:
      alt: clj journal
      src: img/clojure-logo.svg
    items:
      - type: doc
        docId: intro
        position: left
        label: Projects
      - to: /blog
        label: Blog
        position: left
  footer:
    style: dark
    links:
      - title: Projects
        items: []
      - title: Community
        items:
          - label: Twitter
            href: https://twitter.com/docusaurus
      - title: More
        items:
          - label: GitHub
            href: https://github.com/Rafailong/clojure-journal
    copyright: Copyright © {{year}} My Project, Inc. Built with Docusaurus.
  prism:
    theme: github
    darkTheme: dracula
    additionalLanguages: [java, clojure, scala]

themes:
  - - "@easyops-cn/docusaurus-search-local"
    - hashed: true
`

// Init writes the example configuration document to path. An existing file is
// only replaced when force is set; the write is atomic.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.FileSystemError("failed to inspect configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	if err := renameio.WriteFile(path, []byte(ExampleDocument), 0o644); err != nil {
		return ferrors.FileSystemError("failed to write configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
