package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/registry"
)

// ValidateConfig checks a defaulted configuration against the schema and the
// installed extension set. The first violation is returned as a SchemaViolation
// whose "field" context names the offending field.
func ValidateConfig(cfg *Config, reg *registry.Registry) error {
	if reg == nil {
		reg = registry.Default()
	}
	validator := newConfigurationValidator(cfg, reg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config   *Config
	registry *registry.Registry
}

func newConfigurationValidator(cfg *Config, reg *registry.Registry) *configurationValidator {
	return &configurationValidator{config: cfg, registry: reg}
}

func (cv *configurationValidator) validate() error {
	steps := []func() error{
		cv.validateIdentity,
		cv.validateURLs,
		cv.validatePolicies,
		cv.validateI18n,
		cv.validateNavbar,
		cv.validateFooter,
		cv.validatePrism,
		cv.validateColorMode,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func violation(field, format string, args ...any) error {
	return ferrors.SchemaViolation(fmt.Sprintf(format, args...)).
		WithContext("field", field).
		Build()
}

func (cv *configurationValidator) validateIdentity() error {
	if strings.TrimSpace(cv.config.Title) == "" {
		return violation("title", "title is required")
	}
	if strings.TrimSpace(cv.config.Tagline) == "" {
		return violation("tagline", "tagline is required")
	}
	if cv.config.TrailingSlash == nil {
		return violation("trailingSlash", "trailingSlash has no value after defaults")
	}
	for i, dir := range cv.config.StaticDirectories {
		if strings.TrimSpace(dir) == "" {
			return violation(fmt.Sprintf("staticDirectories[%d]", i), "static directory must not be empty")
		}
	}
	return nil
}

func (cv *configurationValidator) validateURLs() error {
	raw := cv.config.URL
	if raw == "" {
		return violation("url", "url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return violation("url", "url %q is not a valid URL: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return violation("url", "url %q must use http or https", raw)
	}
	if u.Host == "" {
		return violation("url", "url %q has no host", raw)
	}
	if u.Path != "" && u.Path != "/" {
		return violation("url", "url %q must be an origin without a path; put the path in baseUrl", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return violation("url", "url %q must be a bare origin", raw)
	}

	base := cv.config.BaseURL
	if base == "" {
		return violation("baseUrl", "baseUrl is required")
	}
	if !strings.HasPrefix(base, "/") || !strings.HasSuffix(base, "/") {
		return violation("baseUrl", "baseUrl %q must start and end with /", base)
	}
	if strings.Contains(base, "//") {
		return violation("baseUrl", "baseUrl %q contains an empty path segment", base)
	}
	return nil
}

func (cv *configurationValidator) validatePolicies() error {
	policies := []struct {
		field string
		value BrokenLinkPolicy
	}{
		{"onBrokenLinks", cv.config.OnBrokenLinks},
		{"onBrokenMarkdownLinks", cv.config.OnBrokenMarkdownLinks},
		{"onDuplicateRoutes", cv.config.OnDuplicateRoutes},
	}
	for _, p := range policies {
		if NormalizeBrokenLinkPolicy(string(p.value)) != p.value {
			return violation(p.field, "unknown policy %q, valid options: %v", p.value, policyNormalizer.ValidKeys())
		}
	}
	return nil
}

func (cv *configurationValidator) validateI18n() error {
	in := cv.config.I18n
	if in.DefaultLocale == "" {
		return violation("i18n.defaultLocale", "i18n.defaultLocale is required")
	}
	if len(in.Locales) == 0 {
		return violation("i18n.locales", "i18n.locales must not be empty")
	}
	seen := make(map[string]struct{}, len(in.Locales))
	for i, loc := range in.Locales {
		field := fmt.Sprintf("i18n.locales[%d]", i)
		if _, err := language.Parse(loc); err != nil {
			return violation(field, "locale %q is not a valid BCP 47 tag", loc)
		}
		if _, dup := seen[loc]; dup {
			return violation(field, "locale %q is listed more than once", loc)
		}
		seen[loc] = struct{}{}
	}
	if _, ok := seen[in.DefaultLocale]; !ok {
		return violation("i18n.defaultLocale", "defaultLocale %q is not one of i18n.locales %v", in.DefaultLocale, in.Locales)
	}
	for loc, lc := range in.LocaleConfigs {
		field := "i18n.localeConfigs." + loc
		if _, ok := seen[loc]; !ok {
			return violation(field, "localeConfigs entry %q is not one of i18n.locales", loc)
		}
		if lc.Direction != "ltr" && lc.Direction != "rtl" {
			return violation(field+".direction", "direction %q must be ltr or rtl", lc.Direction)
		}
	}
	return nil
}

func (cv *configurationValidator) validateNavbar() error {
	nav := cv.config.ThemeConfig.Navbar
	if nav.Logo != nil && strings.TrimSpace(nav.Logo.Src) == "" {
		return violation("themeConfig.navbar.logo.src", "navbar logo requires src")
	}
	return validateNavbarItems(nav.Items, "themeConfig.navbar.items", false)
}

func validateNavbarItems(items []NavbarItem, path string, nested bool) error {
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", path, i)
		if NormalizeNavbarPosition(string(item.Position)) != item.Position {
			return violation(field+".position", "position %q must be left or right", item.Position)
		}
		switch item.Type {
		case NavbarItemDefault:
			if item.Label == "" {
				return violation(field+".label", "navbar link requires a label")
			}
			if err := exactlyOneTarget(field, item.To, item.Href); err != nil {
				return err
			}
			if item.DocID != "" || len(item.Items) > 0 {
				return violation(field, "plain navbar link must not set docId or items")
			}
		case NavbarItemDoc:
			if item.DocID == "" {
				return violation(field+".docId", "doc navbar item requires docId")
			}
			if item.To != "" || item.Href != "" || len(item.Items) > 0 {
				return violation(field, "doc navbar item must not set to, href or items")
			}
		case NavbarItemDropdown:
			if nested {
				return violation(field+".type", "dropdowns cannot be nested")
			}
			if item.Label == "" {
				return violation(field+".label", "dropdown requires a label")
			}
			if len(item.Items) == 0 {
				return violation(field+".items", "dropdown requires at least one item")
			}
			if item.Href != "" || item.DocID != "" {
				return violation(field, "dropdown must not set href or docId")
			}
			if err := validateNavbarItems(item.Items, field+".items", true); err != nil {
				return err
			}
		case NavbarItemSearch, NavbarItemLocaleDropdown:
			if nested {
				return violation(field+".type", "%s items are only allowed at the top level", item.Type)
			}
		default:
			return violation(field+".type", "unknown navbar item type %q, valid options: %v", item.Type, navbarItemTypeNormalizer.ValidKeys())
		}
	}
	return nil
}

func exactlyOneTarget(field, to, href string) error {
	switch {
	case to == "" && href == "":
		return violation(field, "link requires either to or href")
	case to != "" && href != "":
		return violation(field, "link must set only one of to or href")
	}
	return nil
}

func (cv *configurationValidator) validateFooter() error {
	footer := cv.config.ThemeConfig.Footer
	if NormalizeFooterStyle(string(footer.Style)) != footer.Style {
		return violation("themeConfig.footer.style", "footer style %q must be light or dark", footer.Style)
	}
	if footer.Logo != nil && strings.TrimSpace(footer.Logo.Src) == "" {
		return violation("themeConfig.footer.logo.src", "footer logo requires src")
	}
	for g, group := range footer.Links {
		gfield := fmt.Sprintf("themeConfig.footer.links[%d]", g)
		if strings.TrimSpace(group.Title) == "" {
			return violation(gfield+".title", "footer link group requires a title")
		}
		for i, item := range group.Items {
			field := fmt.Sprintf("%s.items[%d]", gfield, i)
			if item.Label == "" {
				return violation(field+".label", "footer link requires a label")
			}
			if err := exactlyOneTarget(field, item.To, item.Href); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validatePrism() error {
	prism := cv.config.ThemeConfig.Prism
	if !cv.registry.HasPrismTheme(prism.Theme) {
		return violation("themeConfig.prism.theme", "unknown prism theme %q, known: %v", prism.Theme, cv.registry.PrismThemes())
	}
	if !cv.registry.HasPrismTheme(prism.DarkTheme) {
		return violation("themeConfig.prism.darkTheme", "unknown prism theme %q, known: %v", prism.DarkTheme, cv.registry.PrismThemes())
	}
	if prism.DefaultLanguage != "" && !cv.registry.HasLanguage(prism.DefaultLanguage) {
		return violation("themeConfig.prism.defaultLanguage", "unsupported language %q", prism.DefaultLanguage)
	}
	for i, lang := range prism.AdditionalLanguages {
		if !cv.registry.HasLanguage(lang) {
			return violation(fmt.Sprintf("themeConfig.prism.additionalLanguages[%d]", i), "unsupported language %q", lang)
		}
	}
	return nil
}

func (cv *configurationValidator) validateColorMode() error {
	mode := cv.config.ThemeConfig.ColorMode.DefaultMode
	if NormalizeColorMode(string(mode)) != mode {
		return violation("themeConfig.colorMode.defaultMode", "color mode %q must be light or dark", mode)
	}
	return nil
}
