package links

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/docs"
	"github.com/Rafailong/clojure-journal/internal/routes"
)

// PagesDir holds standalone pages, each file becoming a route.
const PagesDir = "src/pages"

// SiteRootSource owns the site root route when no page or doc claims it.
const SiteRootSource = "baseUrl"

var pageExtensions = map[string]struct{}{
	".md": {}, ".mdx": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
}

// BuildRouteSet collects every route the site will serve: doc permalinks, pages
// under src/pages, the blog route tree and files of the static directories.
// The site root is always a route. Clashing sources are left in the set's
// Collisions.
func BuildRouteSet(root string, cfg *config.Config, tree *docs.Tree) (*routes.Set, error) {
	set := routes.NewSet()
	for _, d := range tree.Docs() {
		set.Add(d.Permalink, d.Source)
	}
	if blog, ok := cfg.Blog(); ok {
		set.AddPrefix(routes.Join(cfg.BaseURL, blog.RouteBasePath), blog.Path)
	}
	if err := addPages(set, root, cfg); err != nil {
		return nil, err
	}
	for _, dir := range cfg.StaticDirectories {
		if err := addStatic(set, root, dir, cfg.BaseURL); err != nil {
			return nil, err
		}
	}
	if home := routes.Join(cfg.BaseURL); !matches(set, home) {
		set.Add(home, SiteRootSource)
	}
	return set, nil
}

func matches(set *routes.Set, p string) bool {
	_, ok := set.Match(p)
	return ok
}

func addPages(set *routes.Set, root string, cfg *config.Config) error {
	dir := filepath.Join(root, filepath.FromSlash(PagesDir))
	return walkIfExists(dir, func(rel string) {
		if _, ok := pageExtensions[strings.ToLower(path.Ext(rel))]; !ok {
			return
		}
		for _, seg := range strings.Split(rel, "/") {
			if strings.HasPrefix(seg, "_") {
				return
			}
		}
		name := strings.TrimSuffix(rel, path.Ext(rel))
		if strings.Contains(path.Base(name), ".test") {
			return
		}
		if path.Base(name) == "index" {
			name = path.Dir(name)
			if name == "." {
				name = ""
			}
		}
		set.Add(routes.Join(cfg.BaseURL, name), path.Join(PagesDir, rel))
	})
}

func addStatic(set *routes.Set, root, dir, baseURL string) error {
	abs := filepath.Join(root, filepath.FromSlash(dir))
	return walkIfExists(abs, func(rel string) {
		set.Add(routes.Join(baseURL, rel), path.Join(dir, rel))
	})
}

// walkIfExists calls fn with the slash separated relative path of every file
// below dir. A missing dir is not an error.
func walkIfExists(dir string, fn func(rel string)) error {
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		fn(filepath.ToSlash(rel))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
