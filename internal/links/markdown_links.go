package links

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Rafailong/clojure-journal/internal/docs"
	"github.com/Rafailong/clojure-journal/internal/markdown"
	"github.com/Rafailong/clojure-journal/internal/problems"
	"github.com/Rafailong/clojure-journal/internal/routes"
)

// CheckMarkdownLinks checks the links written inside documents.
//
// Links to .md/.mdx files are resolved relative to the linking file and must
// name a document of the tree (onBrokenMarkdownLinks). Other internal links are
// resolved against the document's URL and must be a route of the site, and
// images must exist on disk (both onBrokenLinks).
func (r *Resolver) CheckMarkdownLinks(root string) *problems.Report {
	report := problems.NewReport()
	for _, doc := range r.tree.Docs() {
		for _, l := range doc.Links {
			r.checkDocLink(root, doc, l, report)
		}
	}
	return report
}

func (r *Resolver) checkDocLink(root string, doc *docs.Doc, l markdown.Link, report *problems.Report) {
	dest := strings.TrimSpace(l.Destination)
	if dest == "" || strings.HasPrefix(dest, "#") || routes.IsExternal(dest) {
		return
	}
	source := fmt.Sprintf("%s:%d", doc.Source, doc.BodyLine+l.Line-1)
	target := routes.StripFragment(dest)
	if dec, err := url.PathUnescape(target); err == nil {
		target = dec
	}

	if l.Kind == markdown.LinkKindImage {
		if !r.imageExists(root, doc, target) {
			report.Add(r.cfg.OnBrokenLinks, problems.ClassAsset, source, dest,
				fmt.Sprintf("image %s referenced from %s does not exist", dest, doc.Source))
		}
		return
	}

	if ext := strings.ToLower(path.Ext(target)); ext == ".md" || ext == ".mdx" {
		rel := target
		if !strings.HasPrefix(target, "/") {
			rel = path.Join(path.Dir(doc.RelPath), target)
		} else {
			rel = strings.TrimPrefix(path.Clean(target), "/"+strings.Trim(r.tree.Dir(), "/")+"/")
		}
		if _, ok := r.tree.DocByPath(rel); !ok {
			report.Add(r.cfg.OnBrokenMarkdownLinks, problems.ClassMarkdownLink, source, dest,
				fmt.Sprintf("markdown link %s in %s does not point to a document", dest, doc.Source))
		}
		return
	}

	if r.routes == nil {
		return
	}
	resolved := resolveAgainst(doc.Permalink, target)
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, r.cfg.BaseURL) {
		resolved = r.WithBaseURL(target)
	}
	if _, ok := r.routes.Match(resolved); !ok {
		report.Add(r.cfg.OnBrokenLinks, problems.ClassLink, source, dest,
			fmt.Sprintf("link %s in %s is not a route of the site", dest, doc.Source))
	}
}

// resolveAgainst resolves a relative reference the way a browser would from page.
func resolveAgainst(page, ref string) string {
	base, err := url.Parse(page)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).Path
}

func (r *Resolver) imageExists(root string, doc *docs.Doc, target string) bool {
	if strings.HasPrefix(target, "/") {
		rel := strings.TrimPrefix(target, r.cfg.BaseURL)
		rel = strings.TrimPrefix(rel, "/")
		for _, dir := range r.cfg.StaticDirectories {
			if fileExists(filepath.Join(root, filepath.FromSlash(dir), filepath.FromSlash(rel))) {
				return true
			}
		}
		return false
	}
	return fileExists(filepath.Join(root, filepath.FromSlash(path.Dir(doc.Source)), filepath.FromSlash(target)))
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
