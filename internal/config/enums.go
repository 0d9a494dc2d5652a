package config

import (
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/foundation/normalization"
)

// BrokenLinkPolicy decides what happens when a reference cannot be resolved.
type BrokenLinkPolicy string

const (
	PolicyIgnore BrokenLinkPolicy = "ignore"
	PolicyLog    BrokenLinkPolicy = "log"
	PolicyWarn   BrokenLinkPolicy = "warn"
	PolicyThrow  BrokenLinkPolicy = "throw"
)

var policyNormalizer = normalization.NewNormalizer(map[string]BrokenLinkPolicy{
	"ignore": PolicyIgnore,
	"log":    PolicyLog,
	"warn":   PolicyWarn,
	"throw":  PolicyThrow,
}, PolicyWarn)

// NormalizeBrokenLinkPolicy canonicalizes a policy name, returning "" when unknown.
func NormalizeBrokenLinkPolicy(raw string) BrokenLinkPolicy {
	p, _ := policyNormalizer.Lookup(raw)
	return p
}

// Severity maps the policy onto the severity of the ReferenceError it produces.
// Ignored references produce no error; Silent reports that case.
func (p BrokenLinkPolicy) Severity() ferrors.ErrorSeverity {
	switch p {
	case PolicyThrow:
		return ferrors.SeverityFatal
	case PolicyLog, PolicyIgnore:
		return ferrors.SeverityInfo
	default:
		return ferrors.SeverityWarning
	}
}

// Silent reports whether problems under this policy are dropped.
func (p BrokenLinkPolicy) Silent() bool { return p == PolicyIgnore }

// NavbarItemType discriminates navbar entries.
type NavbarItemType string

const (
	NavbarItemDefault        NavbarItemType = "default"
	NavbarItemDoc            NavbarItemType = "doc"
	NavbarItemDropdown       NavbarItemType = "dropdown"
	NavbarItemSearch         NavbarItemType = "search"
	NavbarItemLocaleDropdown NavbarItemType = "localeDropdown"
)

var navbarItemTypeNormalizer = normalization.NewNormalizer(map[string]NavbarItemType{
	"default":        NavbarItemDefault,
	"doc":            NavbarItemDoc,
	"dropdown":       NavbarItemDropdown,
	"search":         NavbarItemSearch,
	"localedropdown": NavbarItemLocaleDropdown,
}, NavbarItemDefault)

// NormalizeNavbarItemType canonicalizes an item type, returning "" when unknown.
func NormalizeNavbarItemType(raw string) NavbarItemType {
	t, _ := navbarItemTypeNormalizer.Lookup(raw)
	return t
}

// NavbarPosition places an item on the navbar.
type NavbarPosition string

const (
	PositionLeft  NavbarPosition = "left"
	PositionRight NavbarPosition = "right"
)

var positionNormalizer = normalization.NewNormalizer(map[string]NavbarPosition{
	"left":  PositionLeft,
	"right": PositionRight,
}, PositionLeft)

// NormalizeNavbarPosition canonicalizes a position, returning "" when unknown.
func NormalizeNavbarPosition(raw string) NavbarPosition {
	p, _ := positionNormalizer.Lookup(raw)
	return p
}

// FooterStyle is the footer color scheme.
type FooterStyle string

const (
	FooterLight FooterStyle = "light"
	FooterDark  FooterStyle = "dark"
)

var footerStyleNormalizer = normalization.NewNormalizer(map[string]FooterStyle{
	"light": FooterLight,
	"dark":  FooterDark,
}, FooterLight)

// NormalizeFooterStyle canonicalizes a footer style, returning "" when unknown.
func NormalizeFooterStyle(raw string) FooterStyle {
	s, _ := footerStyleNormalizer.Lookup(raw)
	return s
}

// ColorMode is the initial color mode.
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

var colorModeNormalizer = normalization.NewNormalizer(map[string]ColorMode{
	"light": ColorModeLight,
	"dark":  ColorModeDark,
}, ColorModeLight)

// NormalizeColorMode canonicalizes a color mode, returning "" when unknown.
func NormalizeColorMode(raw string) ColorMode {
	m, _ := colorModeNormalizer.Lookup(raw)
	return m
}
