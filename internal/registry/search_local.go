package registry

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// HashMode controls how the local search index file name is hashed.
type HashMode string

const (
	HashNone     HashMode = "none"
	HashFilename HashMode = "filename"
	HashQuery    HashMode = "query"
)

// UnmarshalYAML accepts a boolean (true => filename) or one of the mode names.
func (h *HashMode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: hashed must be a boolean or string", node.Line)
	}
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		if b {
			*h = HashFilename
		} else {
			*h = HashNone
		}
		return nil
	}
	switch HashMode(node.Value) {
	case HashFilename, HashQuery, HashNone:
		*h = HashMode(node.Value)
		return nil
	}
	return fmt.Errorf("line %d: unknown hashed mode %q", node.Line, node.Value)
}

// SearchLocalOptions are the options of the local search theme.
type SearchLocalOptions struct {
	Hashed                           HashMode `yaml:"hashed" json:"hashed"`
	Language                         []string `yaml:"language" json:"language"`
	IndexDocs                        bool     `yaml:"indexDocs" json:"indexDocs"`
	IndexBlog                        bool     `yaml:"indexBlog" json:"indexBlog"`
	IndexPages                       bool     `yaml:"indexPages" json:"indexPages"`
	DocsRouteBasePath                []string `yaml:"docsRouteBasePath" json:"docsRouteBasePath"`
	BlogRouteBasePath                []string `yaml:"blogRouteBasePath" json:"blogRouteBasePath"`
	SearchResultLimits               int      `yaml:"searchResultLimits" json:"searchResultLimits"`
	SearchResultContextMaxLength     int      `yaml:"searchResultContextMaxLength" json:"searchResultContextMaxLength"`
	HighlightSearchTermsOnTargetPage bool     `yaml:"highlightSearchTermsOnTargetPage" json:"highlightSearchTermsOnTargetPage"`
}

type searchLocalRaw struct {
	Hashed                           HashMode   `yaml:"hashed"`
	Language                         StringList `yaml:"language"`
	IndexDocs                        *bool      `yaml:"indexDocs"`
	IndexBlog                        *bool      `yaml:"indexBlog"`
	IndexPages                       *bool      `yaml:"indexPages"`
	DocsRouteBasePath                StringList `yaml:"docsRouteBasePath"`
	BlogRouteBasePath                StringList `yaml:"blogRouteBasePath"`
	SearchResultLimits               int        `yaml:"searchResultLimits"`
	SearchResultContextMaxLength     int        `yaml:"searchResultContextMaxLength"`
	HighlightSearchTermsOnTargetPage bool       `yaml:"highlightSearchTermsOnTargetPage"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func decodeSearchLocal(opts *Options) (any, error) {
	var raw searchLocalRaw
	if err := DecodeStrict(opts.Node, &raw); err != nil {
		return nil, err
	}
	if raw.SearchResultLimits < 0 || raw.SearchResultContextMaxLength < 0 {
		return nil, fmt.Errorf("search result limits must not be negative")
	}

	out := &SearchLocalOptions{
		Hashed:                           raw.Hashed,
		Language:                         []string(raw.Language),
		IndexDocs:                        boolOr(raw.IndexDocs, true),
		IndexBlog:                        boolOr(raw.IndexBlog, true),
		IndexPages:                       boolOr(raw.IndexPages, false),
		DocsRouteBasePath:                []string(raw.DocsRouteBasePath),
		BlogRouteBasePath:                []string(raw.BlogRouteBasePath),
		SearchResultLimits:               raw.SearchResultLimits,
		SearchResultContextMaxLength:     raw.SearchResultContextMaxLength,
		HighlightSearchTermsOnTargetPage: raw.HighlightSearchTermsOnTargetPage,
	}
	if out.Hashed == "" {
		out.Hashed = HashNone
	}
	if len(out.Language) == 0 {
		out.Language = []string{opts.DefaultLocale}
	}
	if len(out.DocsRouteBasePath) == 0 {
		out.DocsRouteBasePath = []string{opts.DocsRouteBasePath}
	}
	if len(out.BlogRouteBasePath) == 0 {
		out.BlogRouteBasePath = []string{opts.BlogRouteBasePath}
	}
	if out.SearchResultLimits == 0 {
		out.SearchResultLimits = 8
	}
	if out.SearchResultContextMaxLength == 0 {
		out.SearchResultContextMaxLength = 50
	}
	return out, nil
}
