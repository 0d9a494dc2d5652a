// Package frontmatter separates the YAML header of a Markdown document from its
// body and decodes the fields the docs tree cares about.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opens a front matter block
// that is never closed.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Fields are the front matter keys that affect a document's identity and route.
// Unknown keys are allowed and ignored.
type Fields struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Slug            *string  `yaml:"slug"`
	SidebarLabel    string   `yaml:"sidebar_label"`
	SidebarPosition *float64 `yaml:"sidebar_position"`
	Draft           bool     `yaml:"draft"`
	Unlisted        bool     `yaml:"unlisted"`
	Tags            []string `yaml:"tags"`
}

// Document is a Markdown file split into front matter and body.
type Document struct {
	Fields Fields
	Body   []byte
	// BodyLine is the 1-based line on which the body starts in the source file.
	BodyLine int
}

// Parse splits content and decodes its front matter.
func Parse(content []byte) (Document, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Document{}, err
	}
	doc := Document{Body: body, BodyLine: 1}
	if !had {
		return doc, nil
	}
	doc.BodyLine = 1 + bytes.Count(content[:len(content)-len(body)], []byte("\n"))
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(raw, &doc.Fields); err != nil {
		return Document{}, fmt.Errorf("decode front matter: %w", err)
	}
	return doc, nil
}

// Split separates a `---` delimited front matter block from the body.
// When content does not open with a delimiter, had is false and body is content.
func Split(content []byte) (raw []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content[start:], tail) {
			return content[start : len(content)-len(tail)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
