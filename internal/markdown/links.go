package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
)

// LinkKind is the syntactic form of a link.
type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
)

// Link is a link found in a Markdown body. Reference style links are reported
// as inline links carrying the resolved destination.
type Link struct {
	Kind        LinkKind
	Destination string
	// Line is the 1-based line of the enclosing block within the body.
	Line int
}

// ExtractLinks parses a Markdown body and returns its links in document order.
// Links inside code spans and code blocks are not links and are not reported.
func ExtractLinks(body []byte) []Link {
	return collectLinks(ParseBody(body), body)
}

func collectLinks(root gmast.Node, source []byte) []Link {
	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(source)), Line: lineOf(n, source)})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Line: lineOf(n, source)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Line: lineOf(n, source)})
		}
		return gmast.WalkContinue, nil
	})
	return links
}
