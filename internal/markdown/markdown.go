// Package markdown analyzes Markdown bodies with goldmark: the document title
// and the links it contains. It never renders.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Analysis is what the docs tree needs to know about a Markdown body.
type Analysis struct {
	// Title is the text of the first level 1 heading, empty when there is none.
	Title string
	Links []Link
}

// ParseBody parses a Markdown body (front matter already removed) into a goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Analyze parses body once and returns its title and links.
func Analyze(body []byte) Analysis {
	root := ParseBody(body)
	return Analysis{
		Title: firstHeading(root, body),
		Links: collectLinks(root, body),
	}
}

// FirstHeading returns the text of the first level 1 heading in body.
func FirstHeading(body []byte) string {
	return firstHeading(ParseBody(body), body)
}

func firstHeading(root gmast.Node, source []byte) string {
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			if h.Level == 1 {
				title = strings.TrimSpace(plainText(h, source))
				return gmast.WalkStop, nil
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(node.Value)
		default:
			buf.WriteString(plainText(c, source))
		}
	}
	return buf.String()
}

// lineOf returns the 1-based line of the block that contains n.
func lineOf(n gmast.Node, source []byte) int {
	for p := n; p != nil; p = p.Parent() {
		if p.Type() != gmast.TypeBlock {
			continue
		}
		if lines := p.Lines(); lines != nil && lines.Len() > 0 {
			return 1 + bytes.Count(source[:lines.At(0).Start], []byte("\n"))
		}
	}
	return 0
}
