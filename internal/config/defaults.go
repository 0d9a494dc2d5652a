package config

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			&SiteDefaultApplier{},
			&I18nDefaultApplier{},
			&NavbarDefaultApplier{},
			&FooterDefaultApplier{},
			&PrismDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// GetApplierByDomain returns a specific domain applier.
func (c *CompositeDefaultApplier) GetApplierByDomain(domain string) DefaultApplier {
	for _, applier := range c.appliers {
		if applier.Domain() == domain {
			return applier
		}
	}
	return nil
}

// SiteDefaultApplier handles top-level site fields.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.TrailingSlash == nil {
		v := false
		cfg.TrailingSlash = &v
	}
	if cfg.OnBrokenLinks == "" {
		cfg.OnBrokenLinks = PolicyWarn
	}
	if cfg.OnBrokenMarkdownLinks == "" {
		cfg.OnBrokenMarkdownLinks = PolicyWarn
	}
	if cfg.OnDuplicateRoutes == "" {
		cfg.OnDuplicateRoutes = PolicyWarn
	}
	if len(cfg.StaticDirectories) == 0 {
		cfg.StaticDirectories = []string{"static"}
	}
	if cfg.Presets == nil {
		cfg.Presets = []PluginEntry{}
	}
	if cfg.Themes == nil {
		cfg.Themes = []PluginEntry{}
	}
	return nil
}

var rtlLanguages = map[string]struct{}{
	"ar": {}, "he": {}, "fa": {}, "ur": {}, "yi": {}, "ps": {}, "sd": {}, "ug": {}, "dv": {},
}

// I18nDefaultApplier fills locale defaults and per-locale metadata.
type I18nDefaultApplier struct{}

func (i *I18nDefaultApplier) Domain() string { return "i18n" }

func (i *I18nDefaultApplier) ApplyDefaults(cfg *Config) error {
	in := &cfg.I18n
	if in.DefaultLocale == "" && len(in.Locales) == 0 {
		in.DefaultLocale = "en"
		in.Locales = []string{"en"}
	}
	if in.Path == "" {
		in.Path = "i18n"
	}
	if in.LocaleConfigs == nil {
		in.LocaleConfigs = map[string]LocaleConfig{}
	}
	for _, loc := range in.Locales {
		tag, err := language.Parse(loc)
		if err != nil {
			// Rejected by validation.
			continue
		}
		lc := in.LocaleConfigs[loc]
		if lc.Label == "" {
			lc.Label = localeLabel(tag)
		}
		if lc.Direction == "" {
			lc.Direction = localeDirection(tag)
		}
		if lc.HTMLLang == "" {
			lc.HTMLLang = tag.String()
		}
		in.LocaleConfigs[loc] = lc
	}
	return nil
}

func localeLabel(tag language.Tag) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

func localeDirection(tag language.Tag) string {
	base, _ := tag.Base()
	if _, ok := rtlLanguages[base.String()]; ok {
		return "rtl"
	}
	return "ltr"
}

// NavbarDefaultApplier fills navbar item defaults.
type NavbarDefaultApplier struct{}

func (n *NavbarDefaultApplier) Domain() string { return "navbar" }

func (n *NavbarDefaultApplier) ApplyDefaults(cfg *Config) error {
	nav := &cfg.ThemeConfig.Navbar
	if nav.Items == nil {
		nav.Items = []NavbarItem{}
	}
	applyNavbarItemDefaults(nav.Items, "")
	return nil
}

func applyNavbarItemDefaults(items []NavbarItem, parentPosition NavbarPosition) {
	for idx := range items {
		item := &items[idx]
		if item.Type == "" {
			item.Type = NavbarItemDefault
		}
		if item.Position == "" {
			item.Position = PositionLeft
			if parentPosition != "" {
				item.Position = parentPosition
			}
		}
		applyNavbarItemDefaults(item.Items, item.Position)
	}
}

// FooterDefaultApplier fills footer defaults. Every link group ends up with a
// non-nil item list.
type FooterDefaultApplier struct{}

func (f *FooterDefaultApplier) Domain() string { return "footer" }

func (f *FooterDefaultApplier) ApplyDefaults(cfg *Config) error {
	footer := &cfg.ThemeConfig.Footer
	if footer.Style == "" {
		footer.Style = FooterLight
	}
	if footer.Links == nil {
		footer.Links = []FooterLinkGroup{}
	}
	for idx := range footer.Links {
		if footer.Links[idx].Items == nil {
			footer.Links[idx].Items = []FooterLinkItem{}
		}
	}
	return nil
}

// DefaultPrismTheme is used when themeConfig.prism.theme is omitted.
const DefaultPrismTheme = "palenight"

// PrismDefaultApplier fills highlighter and color mode defaults.
type PrismDefaultApplier struct{}

func (p *PrismDefaultApplier) Domain() string { return "prism" }

func (p *PrismDefaultApplier) ApplyDefaults(cfg *Config) error {
	prism := &cfg.ThemeConfig.Prism
	if prism.Theme == "" {
		prism.Theme = DefaultPrismTheme
	}
	if prism.DarkTheme == "" {
		prism.DarkTheme = prism.Theme
	}
	if prism.AdditionalLanguages == nil {
		prism.AdditionalLanguages = []string{}
	}
	if cfg.ThemeConfig.ColorMode.DefaultMode == "" {
		cfg.ThemeConfig.ColorMode.DefaultMode = ColorModeLight
	}
	return nil
}
