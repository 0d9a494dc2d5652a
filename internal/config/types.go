package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/Rafailong/clojure-journal/internal/registry"
)

// Config is the site configuration record. It is built once by Load and is
// read-only afterwards; components receive it as an explicit parameter.
type Config struct {
	Title   string `yaml:"title" json:"title"`
	Tagline string `yaml:"tagline" json:"tagline"`
	URL     string `yaml:"url" json:"url"`
	BaseURL string `yaml:"baseUrl" json:"baseUrl"`
	Favicon string `yaml:"favicon,omitempty" json:"favicon,omitempty"`

	// GitHub pages deployment target.
	OrganizationName string `yaml:"organizationName,omitempty" json:"organizationName,omitempty"`
	ProjectName      string `yaml:"projectName,omitempty" json:"projectName,omitempty"`
	DeploymentBranch string `yaml:"deploymentBranch,omitempty" json:"deploymentBranch,omitempty"`

	// TrailingSlash is nil only between decoding and default application.
	TrailingSlash *bool `yaml:"trailingSlash" json:"trailingSlash"`

	OnBrokenLinks         BrokenLinkPolicy `yaml:"onBrokenLinks" json:"onBrokenLinks"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `yaml:"onBrokenMarkdownLinks" json:"onBrokenMarkdownLinks"`
	OnDuplicateRoutes     BrokenLinkPolicy `yaml:"onDuplicateRoutes" json:"onDuplicateRoutes"`

	StaticDirectories []string `yaml:"staticDirectories" json:"staticDirectories"`

	I18n        I18nConfig    `yaml:"i18n" json:"i18n"`
	Presets     []PluginEntry `yaml:"presets" json:"presets"`
	Themes      []PluginEntry `yaml:"themes" json:"themes"`
	ThemeConfig ThemeConfig   `yaml:"themeConfig" json:"themeConfig"`
}

// I18nConfig holds locale settings.
type I18nConfig struct {
	DefaultLocale string                  `yaml:"defaultLocale" json:"defaultLocale"`
	Locales       []string                `yaml:"locales" json:"locales"`
	Path          string                  `yaml:"path" json:"path"`
	LocaleConfigs map[string]LocaleConfig `yaml:"localeConfigs" json:"localeConfigs"`
}

// LocaleConfig carries per-locale rendering metadata.
type LocaleConfig struct {
	Label     string `yaml:"label" json:"label"`
	Direction string `yaml:"direction" json:"direction"`
	HTMLLang  string `yaml:"htmlLang" json:"htmlLang"`
}

// ThemeConfig controls navigation and presentation.
type ThemeConfig struct {
	Navbar    NavbarConfig    `yaml:"navbar" json:"navbar"`
	Footer    FooterConfig    `yaml:"footer" json:"footer"`
	Prism     PrismConfig     `yaml:"prism" json:"prism"`
	ColorMode ColorModeConfig `yaml:"colorMode" json:"colorMode"`
}

// NavbarConfig describes the top navigation bar.
type NavbarConfig struct {
	Title        string       `yaml:"title,omitempty" json:"title,omitempty"`
	Logo         *LogoConfig  `yaml:"logo,omitempty" json:"logo,omitempty"`
	HideOnScroll bool         `yaml:"hideOnScroll" json:"hideOnScroll"`
	Items        []NavbarItem `yaml:"items" json:"items"`
}

// LogoConfig is an image shown in the navbar or footer.
type LogoConfig struct {
	Alt     string `yaml:"alt,omitempty" json:"alt,omitempty"`
	Src     string `yaml:"src" json:"src"`
	SrcDark string `yaml:"srcDark,omitempty" json:"srcDark,omitempty"`
	Href    string `yaml:"href,omitempty" json:"href,omitempty"`
}

// NavbarItem is a navigation entry. A doc item references a document by id; a
// default item carries a literal internal (to) or external (href) target.
type NavbarItem struct {
	Type     NavbarItemType `yaml:"type" json:"type"`
	Label    string         `yaml:"label,omitempty" json:"label,omitempty"`
	DocID    string         `yaml:"docId,omitempty" json:"docId,omitempty"`
	To       string         `yaml:"to,omitempty" json:"to,omitempty"`
	Href     string         `yaml:"href,omitempty" json:"href,omitempty"`
	Position NavbarPosition `yaml:"position" json:"position"`
	Items    []NavbarItem   `yaml:"items,omitempty" json:"items,omitempty"`
}

// FooterConfig describes the page footer.
type FooterConfig struct {
	Style     FooterStyle       `yaml:"style" json:"style"`
	Logo      *LogoConfig       `yaml:"logo,omitempty" json:"logo,omitempty"`
	Links     []FooterLinkGroup `yaml:"links" json:"links"`
	Copyright string            `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// FooterLinkGroup is a titled column of footer links. An empty item list is valid.
type FooterLinkGroup struct {
	Title string           `yaml:"title" json:"title"`
	Items []FooterLinkItem `yaml:"items" json:"items"`
}

// FooterLinkItem is a single footer link.
type FooterLinkItem struct {
	Label string `yaml:"label" json:"label"`
	To    string `yaml:"to,omitempty" json:"to,omitempty"`
	Href  string `yaml:"href,omitempty" json:"href,omitempty"`
}

// PrismConfig selects code highlighting themes and grammars.
type PrismConfig struct {
	Theme               string   `yaml:"theme" json:"theme"`
	DarkTheme           string   `yaml:"darkTheme" json:"darkTheme"`
	DefaultLanguage     string   `yaml:"defaultLanguage,omitempty" json:"defaultLanguage,omitempty"`
	AdditionalLanguages []string `yaml:"additionalLanguages" json:"additionalLanguages"`
}

// ColorModeConfig controls the light/dark switch.
type ColorModeConfig struct {
	DefaultMode               ColorMode `yaml:"defaultMode" json:"defaultMode"`
	DisableSwitch             bool      `yaml:"disableSwitch" json:"disableSwitch"`
	RespectPrefersColorScheme bool      `yaml:"respectPrefersColorScheme" json:"respectPrefersColorScheme"`
}

// UsesTrailingSlash reports the trailing slash policy for generated URLs.
func (c *Config) UsesTrailingSlash() bool {
	return c.TrailingSlash != nil && *c.TrailingSlash
}

// Docs returns the docs options of the classic preset.
func (c *Config) Docs() (registry.DocsOptions, bool) {
	opts := c.classic()
	if opts == nil || !opts.Docs.Enabled {
		return registry.DocsOptions{}, false
	}
	return opts.Docs, true
}

// Blog returns the blog options of the classic preset.
func (c *Config) Blog() (registry.BlogOptions, bool) {
	opts := c.classic()
	if opts == nil || !opts.Blog.Enabled {
		return registry.BlogOptions{}, false
	}
	return opts.Blog, true
}

// CustomCSS returns the stylesheets registered by the classic preset.
func (c *Config) CustomCSS() []string {
	if opts := c.classic(); opts != nil {
		return opts.Theme.CustomCSS
	}
	return nil
}

// SearchLocal returns the options of the local search theme when installed.
func (c *Config) SearchLocal() (*registry.SearchLocalOptions, bool) {
	for _, t := range c.Themes {
		if opts, ok := t.Options.(*registry.SearchLocalOptions); ok {
			return opts, true
		}
	}
	return nil, false
}

func (c *Config) classic() *registry.ClassicOptions {
	for _, p := range c.Presets {
		if opts, ok := p.Options.(*registry.ClassicOptions); ok {
			return opts
		}
	}
	return nil
}

// SiteURL is the absolute URL of the site root including baseUrl.
func (c *Config) SiteURL() string {
	return strings.TrimSuffix(c.URL, "/") + c.BaseURL
}

// RenderCopyright expands the {{year}} placeholder of the footer copyright.
func (f FooterConfig) RenderCopyright(now time.Time) string {
	return strings.ReplaceAll(f.Copyright, "{{year}}", strconv.Itoa(now.Year()))
}
