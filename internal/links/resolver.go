// Package links resolves navigation entries of the site configuration against
// the docs tree and the site's routes, and checks links written in documents.
package links

import (
	"fmt"
	"strings"

	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/docs"
	"github.com/Rafailong/clojure-journal/internal/problems"
	"github.com/Rafailong/clojure-journal/internal/routes"
)

// Kind is what a resolved link points at.
type Kind string

const (
	KindDoc      Kind = "doc"
	KindInternal Kind = "internal"
	KindExternal Kind = "external"
	// KindNone marks entries without a target of their own: dropdowns, search
	// boxes and locale switchers.
	KindNone Kind = "none"
)

// ResolvedLink is a navigation entry with its final URL.
type ResolvedLink struct {
	Label    string                `json:"label" yaml:"label"`
	Position config.NavbarPosition `json:"position,omitempty" yaml:"position,omitempty"`
	Type     config.NavbarItemType `json:"type,omitempty" yaml:"type,omitempty"`
	Kind     Kind                  `json:"kind" yaml:"kind"`
	URL      string                `json:"url,omitempty" yaml:"url,omitempty"`
	DocID    string                `json:"docId,omitempty" yaml:"docId,omitempty"`
	Items    []ResolvedLink        `json:"items,omitempty" yaml:"items,omitempty"`
}

// ResolvedFooterGroup is a footer column with resolved links.
type ResolvedFooterGroup struct {
	Title string         `json:"title" yaml:"title"`
	Items []ResolvedLink `json:"items" yaml:"items"`
}

// Navigation is the resolved navbar and footer.
type Navigation struct {
	Navbar []ResolvedLink        `json:"navbar" yaml:"navbar"`
	Footer []ResolvedFooterGroup `json:"footer" yaml:"footer"`
}

// Resolver resolves link targets for one configuration and docs tree.
type Resolver struct {
	cfg    *config.Config
	tree   *docs.Tree
	routes *routes.Set
}

// NewResolver creates a resolver. A nil route set disables route checks of
// internal links; doc links are always checked against the tree.
func NewResolver(cfg *config.Config, tree *docs.Tree, set *routes.Set) *Resolver {
	if tree == nil {
		tree = docs.Empty()
	}
	return &Resolver{cfg: cfg, tree: tree, routes: set}
}

// ResolveNavigation resolves every navbar and footer entry. Unresolvable
// entries are recorded in the returned report under onBrokenLinks; the entry
// is still part of the navigation.
func (r *Resolver) ResolveNavigation() (*Navigation, *problems.Report) {
	report := problems.NewReport()
	nav := &Navigation{
		Navbar: make([]ResolvedLink, 0, len(r.cfg.ThemeConfig.Navbar.Items)),
		Footer: make([]ResolvedFooterGroup, 0, len(r.cfg.ThemeConfig.Footer.Links)),
	}
	for i, item := range r.cfg.ThemeConfig.Navbar.Items {
		nav.Navbar = append(nav.Navbar, r.navbarItem(item, fmt.Sprintf("themeConfig.navbar.items[%d]", i), report))
	}
	for g, group := range r.cfg.ThemeConfig.Footer.Links {
		resolved := ResolvedFooterGroup{Title: group.Title, Items: make([]ResolvedLink, 0, len(group.Items))}
		for i, item := range group.Items {
			source := fmt.Sprintf("themeConfig.footer.links[%d].items[%d]", g, i)
			resolved.Items = append(resolved.Items, r.target(item.Label, item.To, item.Href, source, report))
		}
		nav.Footer = append(nav.Footer, resolved)
	}
	return nav, report
}

// ResolveNavbarItem resolves a single navbar entry. The error is the
// ReferenceError of the first unresolvable target, with the severity of the
// onBrokenLinks policy; it is nil when the policy ignores broken links.
func (r *Resolver) ResolveNavbarItem(item config.NavbarItem) (ResolvedLink, error) {
	report := problems.NewReport()
	link := r.navbarItem(item, "navbar item", report)
	return link, firstError(report)
}

// ResolveFooterItem resolves a single footer link.
func (r *Resolver) ResolveFooterItem(item config.FooterLinkItem) (ResolvedLink, error) {
	report := problems.NewReport()
	link := r.target(item.Label, item.To, item.Href, "footer item", report)
	return link, firstError(report)
}

func firstError(report *problems.Report) error {
	if ps := report.Problems(); len(ps) > 0 {
		return ps[0].Err
	}
	return nil
}

func (r *Resolver) navbarItem(item config.NavbarItem, source string, report *problems.Report) ResolvedLink {
	var link ResolvedLink
	switch item.Type {
	case config.NavbarItemDoc:
		link = r.docLink(item, source, report)
	case config.NavbarItemDropdown:
		link = ResolvedLink{Label: item.Label, Kind: KindNone}
		if item.To != "" {
			link = r.target(item.Label, item.To, "", source, report)
		}
		link.Items = make([]ResolvedLink, 0, len(item.Items))
		for i, child := range item.Items {
			link.Items = append(link.Items, r.navbarItem(child, fmt.Sprintf("%s.items[%d]", source, i), report))
		}
	case config.NavbarItemSearch, config.NavbarItemLocaleDropdown:
		link = ResolvedLink{Label: item.Label, Kind: KindNone}
	default:
		link = r.target(item.Label, item.To, item.Href, source, report)
	}
	link.Type = item.Type
	link.Position = item.Position
	return link
}

func (r *Resolver) docLink(item config.NavbarItem, source string, report *problems.Report) ResolvedLink {
	link := ResolvedLink{Label: item.Label, Kind: KindDoc, DocID: item.DocID}
	doc, ok := r.tree.Doc(item.DocID)
	if !ok {
		report.Add(r.cfg.OnBrokenLinks, problems.ClassLink, source, item.DocID,
			fmt.Sprintf("%s references doc id %q which does not exist", source, item.DocID))
		return link
	}
	link.URL = doc.Permalink
	if link.Label == "" {
		link.Label = doc.SidebarLabel
	}
	if link.Label == "" {
		link.Label = doc.Title
	}
	return link
}

// target resolves a plain to/href link. External targets pass through
// unchanged; internal ones get baseUrl and the trailing slash policy applied
// and are checked against the route set.
func (r *Resolver) target(label, to, href, source string, report *problems.Report) ResolvedLink {
	if href != "" {
		if routes.IsExternal(href) {
			return ResolvedLink{Label: label, Kind: KindExternal, URL: href}
		}
		// An href without scheme is a site path used verbatim.
		return r.internal(label, href, false, source, report)
	}
	if routes.IsExternal(to) {
		return ResolvedLink{Label: label, Kind: KindExternal, URL: to}
	}
	return r.internal(label, to, true, source, report)
}

func (r *Resolver) internal(label, target string, withBase bool, source string, report *problems.Report) ResolvedLink {
	u := target
	if withBase {
		u = r.WithBaseURL(target)
	}
	link := ResolvedLink{Label: label, Kind: KindInternal, URL: u}
	if r.routes == nil {
		return link
	}
	if _, ok := r.routes.Match(u); !ok {
		report.Add(r.cfg.OnBrokenLinks, problems.ClassLink, source, u,
			fmt.Sprintf("%s links to %s which is not a route of the site", source, u))
	}
	return link
}

// WithBaseURL prefixes an internal path with baseUrl, unless it already
// carries it, and applies the trailing slash policy. Query and fragment are kept.
func (r *Resolver) WithBaseURL(target string) string {
	pathPart, suffix := target, ""
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		pathPart, suffix = target[:i], target[i:]
	}
	if pathPart == "" {
		return target
	}
	full := pathPart
	if !strings.HasPrefix(pathPart, r.cfg.BaseURL) && pathPart != strings.TrimSuffix(r.cfg.BaseURL, "/") {
		full = routes.Join(r.cfg.BaseURL, pathPart)
	}
	if !strings.HasPrefix(full, "/") {
		full = "/" + full
	}
	if !looksLikeFile(full) {
		full = routes.ApplyTrailingSlash(full, r.cfg.UsesTrailingSlash())
	}
	return full + suffix
}

func looksLikeFile(p string) bool {
	last := p[strings.LastIndex(p, "/")+1:]
	return strings.Contains(last, ".")
}
