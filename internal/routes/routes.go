// Package routes builds and matches site URL paths.
package routes

import (
	"net/url"
	"sort"
	"strings"
)

// Join concatenates path segments with single slashes. The result always
// starts with "/" and keeps a trailing slash only when the last non-empty
// segment had one.
func Join(parts ...string) string {
	segs := make([]string, 0, len(parts))
	trailing := false
	for _, p := range parts {
		if p == "" {
			continue
		}
		trailing = strings.HasSuffix(p, "/")
		for _, s := range strings.Split(p, "/") {
			if s != "" {
				segs = append(segs, s)
			}
		}
	}
	if len(segs) == 0 {
		return "/"
	}
	out := "/" + strings.Join(segs, "/")
	if trailing {
		out += "/"
	}
	return out
}

// ApplyTrailingSlash adds or removes the trailing slash of path. The root path
// is left alone.
func ApplyTrailingSlash(path string, trailing bool) string {
	if path == "" || path == "/" {
		return "/"
	}
	if trailing {
		if strings.HasSuffix(path, "/") {
			return path
		}
		return path + "/"
	}
	return strings.TrimRight(path, "/")
}

// IsExternal reports whether target leaves the site: it carries a scheme
// (https:, mailto:) or is protocol relative.
func IsExternal(target string) bool {
	if strings.HasPrefix(target, "//") {
		return true
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme != ""
}

// StripFragment removes query string and fragment from target.
func StripFragment(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		return target[:i]
	}
	return target
}

// Canonical is the form used to compare paths: no query or fragment, no
// trailing slash (except root), and lower-case percent encoding decoded.
func Canonical(path string) string {
	path = StripFragment(path)
	if dec, err := url.PathUnescape(path); err == nil {
		path = dec
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return ApplyTrailingSlash(path, false)
}

// Set is a collection of known routes. Exact routes match one path, prefix
// routes match the path and everything below it.
type Set struct {
	exact      map[string]string
	prefixes   map[string]string
	collisions []Collision
}

// Collision is an exact route claimed by a second source.
type Collision struct {
	Path     string
	Source   string
	Previous string
}

// NewSet creates an empty route set.
func NewSet() *Set {
	return &Set{exact: map[string]string{}, prefixes: map[string]string{}}
}

// Add registers an exact route and the source that produced it. It returns the
// previous source when the route was already registered; the first source keeps
// the route and the clash is kept for Collisions.
func (s *Set) Add(path, source string) (previous string, duplicate bool) {
	key := Canonical(path)
	if prev, ok := s.exact[key]; ok {
		s.collisions = append(s.collisions, Collision{Path: path, Source: source, Previous: prev})
		return prev, true
	}
	s.exact[key] = source
	return "", false
}

// AddPrefix registers a route tree rooted at path.
func (s *Set) AddPrefix(path, source string) {
	s.prefixes[Canonical(path)] = source
}

// Match reports whether path is a known route and which source owns it.
func (s *Set) Match(path string) (string, bool) {
	key := Canonical(path)
	if src, ok := s.exact[key]; ok {
		return src, true
	}
	for prefix, src := range s.prefixes {
		if key == prefix || prefix == "/" || strings.HasPrefix(key, prefix+"/") {
			return src, true
		}
	}
	return "", false
}

// Collisions lists every rejected Add in registration order.
func (s *Set) Collisions() []Collision {
	return append([]Collision(nil), s.collisions...)
}

// Len is the number of exact routes.
func (s *Set) Len() int { return len(s.exact) }

// Paths returns the exact routes in sorted order.
func (s *Set) Paths() []string {
	out := make([]string, 0, len(s.exact))
	for p := range s.exact {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
