// Package assets checks that files referenced by the site configuration exist.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rafailong/clojure-journal/internal/config"
	"github.com/Rafailong/clojure-journal/internal/problems"
	"github.com/Rafailong/clojure-journal/internal/routes"
)

// Ref is a file referenced from the configuration.
type Ref struct {
	Field string
	Path  string
	// Static refs are looked up in the static directories, others relative to
	// the site root.
	Static bool
}

// Refs lists the asset references of cfg in a stable order.
func Refs(cfg *config.Config) []Ref {
	var refs []Ref
	if cfg.Favicon != "" {
		refs = append(refs, Ref{Field: "favicon", Path: cfg.Favicon, Static: true})
	}
	refs = append(refs, logoRefs("themeConfig.navbar.logo", cfg.ThemeConfig.Navbar.Logo)...)
	refs = append(refs, logoRefs("themeConfig.footer.logo", cfg.ThemeConfig.Footer.Logo)...)
	if d, ok := cfg.Docs(); ok && d.SidebarPath != "" {
		refs = append(refs, Ref{Field: "presets.classic.docs.sidebarPath", Path: d.SidebarPath})
	}
	for i, css := range cfg.CustomCSS() {
		refs = append(refs, Ref{Field: fmt.Sprintf("presets.classic.theme.customCss[%d]", i), Path: css})
	}
	return refs
}

func logoRefs(field string, logo *config.LogoConfig) []Ref {
	if logo == nil {
		return nil
	}
	refs := []Ref{{Field: field + ".src", Path: logo.Src, Static: true}}
	if logo.SrcDark != "" {
		refs = append(refs, Ref{Field: field + ".srcDark", Path: logo.SrcDark, Static: true})
	}
	return refs
}

// Check verifies every asset reference below root. Missing files are recorded
// as ReferenceErrors under onBrokenLinks.
func Check(root string, cfg *config.Config) *problems.Report {
	report := problems.NewReport()
	for _, ref := range Refs(cfg) {
		if routes.IsExternal(ref.Path) {
			continue
		}
		if !Exists(root, cfg, ref) {
			report.Add(cfg.OnBrokenLinks, problems.ClassAsset, ref.Field, ref.Path,
				fmt.Sprintf("%s references %s which does not exist", ref.Field, ref.Path))
		}
	}
	return report
}

// Exists reports whether the referenced file is present.
func Exists(root string, cfg *config.Config, ref Ref) bool {
	if !ref.Static {
		return isFile(filepath.Join(root, filepath.FromSlash(ref.Path)))
	}
	rel := strings.TrimPrefix(ref.Path, cfg.BaseURL)
	rel = strings.TrimPrefix(rel, "/")
	for _, dir := range cfg.StaticDirectories {
		if isFile(filepath.Join(root, filepath.FromSlash(dir), filepath.FromSlash(rel))) {
			return true
		}
	}
	return false
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
