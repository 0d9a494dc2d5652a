// Package registry describes the extension set installed for the site: presets,
// theme plugins, prism themes and highlighter grammars. Configuration documents
// may only reference names known here.
package registry

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// Options is the raw option sub-record of a preset or plugin entry together with
// the site-level values its defaults depend on.
type Options struct {
	Node              *yaml.Node
	DefaultLocale     string
	DocsRouteBasePath string
	BlogRouteBasePath string
}

// DecodeFunc decodes and defaults an options sub-record into a typed value.
type DecodeFunc func(opts *Options) (any, error)

// Extension is an installed preset or plugin.
type Extension struct {
	Name    string
	Aliases []string
	Decode  DecodeFunc
}

// Registry is the installed extension set. It is read-only once built.
type Registry struct {
	presets     map[string]*Extension
	themes      map[string]*Extension
	prismThemes map[string]struct{}
	languages   map[string]struct{}
	bundled     map[string]struct{}
}

const (
	PresetClassic    = "classic"
	ThemeSearchLocal = "@easyops-cn/docusaurus-search-local"
)

var prismThemeNames = []string{
	"dracula", "duotoneDark", "duotoneLight", "github", "nightOwl", "nightOwlLight",
	"oceanicNext", "okaidia", "palenight", "shadesOfPurple", "synthwave84", "ultramin",
	"vsDark", "vsLight",
}

// Grammars shipped with the highlighter; listing them as additional languages is redundant.
var bundledLanguages = []string{
	"markup", "bash", "clike", "c", "cpp", "css", "javascript", "jsx", "coffeescript",
	"actionscript", "css-extr", "diff", "git", "go", "graphql", "handlebars", "json", "less",
	"makefile", "markdown", "objectivec", "ocaml", "python", "reason", "sass", "scss", "sql",
	"stylus", "tsx", "typescript", "wasm", "yaml",
}

var additionalLanguages = []string{
	"clojure", "commonlisp", "csharp", "dart", "docker", "elixir", "elm", "erlang", "fsharp",
	"groovy", "haskell", "hcl", "ini", "java", "julia", "kotlin", "latex", "lisp", "lua",
	"nginx", "nix", "perl", "php", "powershell", "protobuf", "r", "racket", "ruby", "rust",
	"scala", "scheme", "swift", "toml", "zig",
}

// Default returns the extension set this site is built with.
func Default() *Registry {
	r := &Registry{
		presets:     map[string]*Extension{},
		themes:      map[string]*Extension{},
		prismThemes: toSet(prismThemeNames),
		languages:   toSet(append(append([]string{}, bundledLanguages...), additionalLanguages...)),
		bundled:     toSet(bundledLanguages),
	}
	r.addPreset(&Extension{
		Name:    PresetClassic,
		Aliases: []string{"@docusaurus/preset-classic", "docusaurus-preset-classic"},
		Decode:  decodeClassic,
	})
	r.addTheme(&Extension{
		Name:    ThemeSearchLocal,
		Aliases: []string{"docusaurus-search-local"},
		Decode:  decodeSearchLocal,
	})
	return r
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (r *Registry) addPreset(ext *Extension) {
	r.presets[ext.Name] = ext
	for _, a := range ext.Aliases {
		r.presets[a] = ext
	}
}

func (r *Registry) addTheme(ext *Extension) {
	r.themes[ext.Name] = ext
	for _, a := range ext.Aliases {
		r.themes[a] = ext
	}
}

// Preset looks up a preset by name or alias.
func (r *Registry) Preset(name string) (*Extension, bool) {
	ext, ok := r.presets[name]
	return ext, ok
}

// Theme looks up a theme plugin by name or alias.
func (r *Registry) Theme(name string) (*Extension, bool) {
	ext, ok := r.themes[name]
	return ext, ok
}

// HasPrismTheme reports whether a prism theme definition with this name exists.
func (r *Registry) HasPrismTheme(name string) bool {
	_, ok := r.prismThemes[name]
	return ok
}

// HasLanguage reports whether name is a supported highlighter grammar.
func (r *Registry) HasLanguage(name string) bool {
	_, ok := r.languages[name]
	return ok
}

// IsBundledLanguage reports whether the grammar ships with the highlighter.
func (r *Registry) IsBundledLanguage(name string) bool {
	_, ok := r.bundled[name]
	return ok
}

// PrismThemes lists the known prism themes in sorted order.
func (r *Registry) PrismThemes() []string {
	return sortedKeys(r.prismThemes)
}

// PresetNames lists canonical preset names.
func (r *Registry) PresetNames() []string {
	return canonicalNames(r.presets)
}

// ThemeNames lists canonical theme plugin names.
func (r *Registry) ThemeNames() []string {
	return canonicalNames(r.themes)
}

func canonicalNames(m map[string]*Extension) []string {
	seen := map[string]struct{}{}
	for _, ext := range m {
		seen[ext.Name] = struct{}{}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
