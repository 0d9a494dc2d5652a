package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated fields and locale codes prior to
// default application. Unknown enum values are left untouched so validation can
// reject them with the offending field.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizePolicies(c, res)
	normalizeSiteURL(c, res)
	normalizeI18n(&c.I18n, res)
	normalizeNavbar(c.ThemeConfig.Navbar.Items, "themeConfig.navbar.items", res)
	normalizeFooter(&c.ThemeConfig.Footer, res)
	normalizeColorMode(&c.ThemeConfig.ColorMode, res)
	normalizeLanguages(&c.ThemeConfig.Prism, res)
	return res, nil
}

func normalizePolicies(c *Config, res *NormalizationResult) {
	fields := []struct {
		name string
		p    *BrokenLinkPolicy
	}{
		{"onBrokenLinks", &c.OnBrokenLinks},
		{"onBrokenMarkdownLinks", &c.OnBrokenMarkdownLinks},
		{"onDuplicateRoutes", &c.OnDuplicateRoutes},
	}
	for _, f := range fields {
		if n := NormalizeBrokenLinkPolicy(string(*f.p)); n != "" && n != *f.p {
			res.Warnings = append(res.Warnings, warnChanged(f.name, *f.p, n))
			*f.p = n
		}
	}
}

func normalizeSiteURL(c *Config, res *NormalizationResult) {
	trimmed := strings.TrimSpace(c.URL)
	if strings.HasSuffix(trimmed, "/") && strings.Count(trimmed, "/") == 3 {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	if trimmed != c.URL {
		res.Warnings = append(res.Warnings, warnChanged("url", c.URL, trimmed))
		c.URL = trimmed
	}
}

func normalizeI18n(i *I18nConfig, res *NormalizationResult) {
	if tag, ok := canonicalLocale(i.DefaultLocale); ok && tag != i.DefaultLocale {
		res.Warnings = append(res.Warnings, warnChanged("i18n.defaultLocale", i.DefaultLocale, tag))
		i.DefaultLocale = tag
	}
	for idx, loc := range i.Locales {
		if tag, ok := canonicalLocale(loc); ok && tag != loc {
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("i18n.locales[%d]", idx), loc, tag))
			i.Locales[idx] = tag
		}
	}
	if len(i.LocaleConfigs) == 0 {
		return
	}
	rekeyed := make(map[string]LocaleConfig, len(i.LocaleConfigs))
	for loc, lc := range i.LocaleConfigs {
		key := loc
		if tag, ok := canonicalLocale(loc); ok && tag != loc {
			res.Warnings = append(res.Warnings, warnChanged("i18n.localeConfigs key", loc, tag))
			key = tag
		}
		rekeyed[key] = lc
	}
	i.LocaleConfigs = rekeyed
}

// canonicalLocale returns the BCP 47 canonical form of code when it parses.
func canonicalLocale(code string) (string, bool) {
	if strings.TrimSpace(code) == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	return tag.String(), true
}

func normalizeNavbar(items []NavbarItem, path string, res *NormalizationResult) {
	for idx := range items {
		item := &items[idx]
		field := fmt.Sprintf("%s[%d]", path, idx)
		if t := NormalizeNavbarItemType(string(item.Type)); t != "" && t != item.Type {
			res.Warnings = append(res.Warnings, warnChanged(field+".type", item.Type, t))
			item.Type = t
		}
		if p := NormalizeNavbarPosition(string(item.Position)); p != "" && p != item.Position {
			res.Warnings = append(res.Warnings, warnChanged(field+".position", item.Position, p))
			item.Position = p
		}
		normalizeNavbar(item.Items, field+".items", res)
	}
}

func normalizeFooter(f *FooterConfig, res *NormalizationResult) {
	if s := NormalizeFooterStyle(string(f.Style)); s != "" && s != f.Style {
		res.Warnings = append(res.Warnings, warnChanged("themeConfig.footer.style", f.Style, s))
		f.Style = s
	}
}

func normalizeColorMode(m *ColorModeConfig, res *NormalizationResult) {
	if n := NormalizeColorMode(string(m.DefaultMode)); n != "" && n != m.DefaultMode {
		res.Warnings = append(res.Warnings, warnChanged("themeConfig.colorMode.defaultMode", m.DefaultMode, n))
		m.DefaultMode = n
	}
}

func normalizeLanguages(p *PrismConfig, res *NormalizationResult) {
	for idx, lang := range p.AdditionalLanguages {
		if n := strings.ToLower(strings.TrimSpace(lang)); n != lang {
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("themeConfig.prism.additionalLanguages[%d]", idx), lang, n))
			p.AdditionalLanguages[idx] = n
		}
	}
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}
