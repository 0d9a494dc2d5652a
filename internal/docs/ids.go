package docs

import (
	"path"
	"regexp"
	"strings"
)

var (
	numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*`)
	// Dates and versions keep their leading digits.
	datedOrVersioned = regexp.MustCompile(`^\d+[-_.]\d+([-_.]|$)`)
)

// StripNumberPrefix removes an ordering prefix such as "01-" from a file or
// directory name.
func StripNumberPrefix(name string) string {
	if datedOrVersioned.MatchString(name) {
		return name
	}
	loc := numberPrefix.FindStringIndex(name)
	if loc == nil || loc[1] == len(name) {
		return name
	}
	return name[loc[1]:]
}

// splitSource breaks a slash separated path relative to the docs directory into
// its prefix-stripped directory and the file name without extension.
func splitSource(rel string) (dir, base string) {
	d, file := path.Split(rel)
	base = strings.TrimSuffix(file, path.Ext(file))
	segs := strings.Split(strings.Trim(d, "/"), "/")
	out := segs[:0]
	for _, s := range segs {
		if s != "" {
			out = append(out, StripNumberPrefix(s))
		}
	}
	return strings.Join(out, "/"), base
}

// DocID computes a document id from its docs-relative path and front matter id.
func DocID(rel, frontMatterID string) string {
	dir, base := splitSource(rel)
	name := frontMatterID
	if name == "" {
		name = StripNumberPrefix(base)
	}
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// isCategoryIndex reports whether the file is the landing page of its directory.
func isCategoryIndex(dir, base string) bool {
	b := strings.ToLower(StripNumberPrefix(base))
	if b == "index" || b == "readme" {
		return true
	}
	return dir != "" && strings.EqualFold(b, path.Base(dir))
}

// DocSlug computes the route of a document relative to the docs route base.
// An absolute front matter slug is used as is; a relative one is resolved
// against the document's directory.
func DocSlug(rel, frontMatterID string, frontMatterSlug *string) string {
	dir, base := splitSource(rel)
	if frontMatterSlug != nil {
		s := strings.TrimSpace(*frontMatterSlug)
		if strings.HasPrefix(s, "/") {
			return s
		}
		return "/" + path.Join(dir, s)
	}
	if frontMatterID == "" && isCategoryIndex(dir, base) {
		return "/" + dir
	}
	return "/" + DocID(rel, frontMatterID)
}
