// Package docs builds the documentation tree: every Markdown file under the
// docs directory with its id, route and title.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rafailong/clojure-journal/internal/config"
	derrors "github.com/Rafailong/clojure-journal/internal/docs/errors"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
	"github.com/Rafailong/clojure-journal/internal/frontmatter"
	"github.com/Rafailong/clojure-journal/internal/logfields"
	"github.com/Rafailong/clojure-journal/internal/markdown"
	"github.com/Rafailong/clojure-journal/internal/routes"
)

// Doc is a document of the docs tree.
type Doc struct {
	ID      string // e.g. "tutorial-basics/create-a-page"
	Title   string
	Source  string // slash separated path relative to the site root
	RelPath string // slash separated path relative to the docs directory
	Slug    string // route below the docs route base, starts with "/"
	// Permalink is the generated URL path including baseUrl and route base.
	Permalink string

	SidebarLabel    string
	SidebarPosition *float64
	Unlisted        bool
	Tags            []string

	Links    []markdown.Link
	BodyLine int
}

// Tree is an immutable index of documents.
type Tree struct {
	docs      []*Doc
	byID      map[string]*Doc
	byRelPath map[string]*Doc
	dir       string
}

// NewTree indexes docs. Duplicate ids are rejected with a SchemaViolation.
func NewTree(dir string, docs []*Doc) (*Tree, error) {
	t := &Tree{
		byID:      make(map[string]*Doc, len(docs)),
		byRelPath: make(map[string]*Doc, len(docs)),
		dir:       dir,
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].RelPath < docs[j].RelPath })

	for _, d := range docs {
		if prev, ok := t.byID[d.ID]; ok {
			return nil, ferrors.SchemaViolation(fmt.Sprintf("document id %q is produced by %s and %s", d.ID, prev.Source, d.Source)).
				WithCause(derrors.ErrDuplicateDocID).
				WithContext("doc_id", d.ID).
				Build()
		}
		t.byID[d.ID] = d
		t.byRelPath[d.RelPath] = d
		t.docs = append(t.docs, d)
	}
	return t, nil
}

// Empty returns a tree without documents, used when docs are disabled.
func Empty() *Tree {
	t, _ := NewTree("", nil)
	return t
}

// Doc looks up a document by id.
func (t *Tree) Doc(id string) (*Doc, bool) {
	d, ok := t.byID[id]
	return d, ok
}

// DocByPath looks up a document by its slash separated path relative to the docs directory.
func (t *Tree) DocByPath(rel string) (*Doc, bool) {
	d, ok := t.byRelPath[path.Clean(rel)]
	return d, ok
}

// Docs returns all documents ordered by path.
func (t *Tree) Docs() []*Doc {
	out := make([]*Doc, len(t.docs))
	copy(out, t.docs)
	return out
}

// Len is the number of documents.
func (t *Tree) Len() int { return len(t.docs) }

// Dir is the docs directory relative to the site root.
func (t *Tree) Dir() string { return t.dir }

// IDs returns the sorted document ids.
func (t *Tree) IDs() []string {
	ids := make([]string, 0, len(t.byID))
	for id := range t.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isDocFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

// Scan walks the docs directory of the classic preset below root and builds
// the tree. Files and directories starting with "_" are partials and skipped,
// drafts are excluded.
func Scan(ctx context.Context, root string, cfg *config.Config) (*Tree, error) {
	opts, ok := cfg.Docs()
	if !ok {
		return Empty(), nil
	}
	docsDir := filepath.Join(root, filepath.FromSlash(opts.Path))
	if info, err := os.Stat(docsDir); err != nil || !info.IsDir() {
		return nil, ferrors.DocsError("documentation directory not found").
			WithCause(derrors.ErrDocsPathNotFound).
			WithContext("path", opts.Path).
			Build()
	}

	var docs []*Doc
	err := filepath.WalkDir(docsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := d.Name()
		if p != docsDir && strings.HasPrefix(name, "_") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isDocFile(name) {
			return nil
		}

		rel, err := filepath.Rel(docsDir, p)
		if err != nil {
			return err
		}
		doc, err := loadDoc(p, filepath.ToSlash(rel), cfg, opts.Path, opts.RouteBasePath)
		if err != nil {
			return err
		}
		if doc == nil {
			slog.Debug("Skipping draft document", logfields.Path(rel))
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if ferrors.IsClassified(err) {
			return nil, err
		}
		return nil, ferrors.DocsError("failed to scan documentation directory").
			WithCause(fmt.Errorf("%w: %w", derrors.ErrDocsDirWalkFailed, err)).
			WithContext("path", opts.Path).
			Build()
	}

	tree, err := NewTree(opts.Path, docs)
	if err != nil {
		return nil, err
	}
	slog.Debug("Documentation tree built", slog.Int("docs", tree.Len()))
	return tree, nil
}

func loadDoc(abs, rel string, cfg *config.Config, docsPath, routeBase string) (*Doc, error) {
	source := path.Join(filepath.ToSlash(docsPath), rel)
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, ferrors.DocsError("failed to read document").
			WithCause(fmt.Errorf("%w: %w", derrors.ErrFileReadFailed, err)).
			WithContext("path", source).
			Build()
	}
	parsed, err := frontmatter.Parse(content)
	if err != nil {
		return nil, ferrors.DocsError("failed to parse front matter").
			WithCause(fmt.Errorf("%w: %w", derrors.ErrInvalidFrontMatter, err)).
			WithContext("path", source).
			Build()
	}
	fm := parsed.Fields
	if fm.Draft {
		return nil, nil
	}
	if strings.Contains(fm.ID, "/") {
		return nil, ferrors.SchemaViolation("front matter id must not contain /").
			WithContext("path", source).
			WithContext("field", "id").
			Build()
	}

	analysis := markdown.Analyze(parsed.Body)
	id := DocID(rel, fm.ID)
	slug := DocSlug(rel, fm.ID, fm.Slug)

	title := fm.Title
	if title == "" {
		title = analysis.Title
	}
	if title == "" {
		title = path.Base(id)
	}

	permalink := routes.ApplyTrailingSlash(routes.Join(cfg.BaseURL, routeBase, slug), cfg.UsesTrailingSlash())
	return &Doc{
		ID:              id,
		Title:           title,
		Source:          source,
		RelPath:         rel,
		Slug:            slug,
		Permalink:       permalink,
		SidebarLabel:    fm.SidebarLabel,
		SidebarPosition: fm.SidebarPosition,
		Unlisted:        fm.Unlisted,
		Tags:            fm.Tags,
		Links:           analysis.Links,
		BodyLine:        parsed.BodyLine,
	}, nil
}
