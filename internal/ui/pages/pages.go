// Package pages renders the data dictionary pages shared by the web viewer
// and the static site generator.
//
// Pages are html/template files embedded in the binary. A templates
// directory may override any of them by file name. Rendered pages are
// exposed as templ components so handlers render them the same way as any
// other component. Fragments that datastar patches into a live page, such
// as ListingTable, are plain templ components.
package pages

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/pgddui/pgddui/internal/ui/resources"
	"github.com/pgddui/pgddui/pkg/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var embedded embed.FS

// Page names.
const (
	PageIndex   = "index"
	PageListing = "listing"
	PageTree    = "tree"
	PageError   = "error"
)

var pageNames = []string{PageIndex, PageListing, PageTree, PageError}

// ErrorInfo describes an error page.
type ErrorInfo struct {
	Status    int
	Title     string
	Message   string
	Installed string
	Required  string
}

// PageData is the input of every page.
type PageData struct {
	Title      string
	Active     string
	Stats      core.DatabaseStats
	ShowSystem bool

	// Static renders links between .html files instead of viewer routes.
	Static bool
	// LiveReload subscribes the page to the docs dev server reload stream.
	LiveReload bool

	// Query is the filter applied to Listing.
	Query string

	Listing  *dictionary.Listing
	Tree     dictionary.Tree
	ViewTree dictionary.Tree
	Error    *ErrorInfo
}

// Link returns the href of a page: "" is the home page, otherwise a kind
// plural or "tree".
func (p PageData) Link(page string) string {
	if p.Static {
		if page == "" {
			return "index.html"
		}
		return page + ".html"
	}
	return "/" + page
}

// Asset returns the href of a static asset.
func (p PageData) Asset(name string) string {
	if p.Static {
		return "static/" + name
	}
	return resources.StaticPath(name)
}

// Interactive reports whether the page needs the datastar runtime.
func (p PageData) Interactive() bool {
	return !p.Static || p.LiveReload
}

// ListingHTML renders Listing with the ListingTable component.
func (p PageData) ListingHTML() (template.HTML, error) {
	if p.Listing == nil {
		return "", nil
	}
	return templ.ToGoHTML(context.Background(), ListingTable(p.Listing))
}

// Kinds returns the listing page names in navigation order.
func (p PageData) Kinds() []string {
	kinds := make([]string, 0, len(core.AllKinds))
	for _, k := range core.AllKinds {
		kinds = append(kinds, k.Plural())
	}
	return kinds
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates. When overlayDir is set, files
// found there replace the embedded ones of the same name.
func NewRenderer(overlayDir string) (*Renderer, error) {
	var fsys fs.FS = mustSub(embedded, "templates")
	if overlayDir != "" {
		if info, err := os.Stat(overlayDir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("templates directory %s is not a directory", overlayDir)
		}
		fsys = overlayFS{top: os.DirFS(overlayDir), base: fsys}
	}

	title := cases.Title(language.English)
	funcs := template.FuncMap{"title": title.String}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		file := name + ".html"
		t, err := template.New(file).Funcs(funcs).ParseFS(fsys, "layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Page returns the named page as a component.
func (r *Renderer) Page(name string, data PageData) (templ.Component, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	return templ.FromGoHTML(t, data), nil
}

// Render writes the named page to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, name string, data PageData) error {
	c, err := r.Page(name, data)
	if err != nil {
		return err
	}
	return c.Render(ctx, w)
}

// overlayFS serves files from top, falling back to base.
type overlayFS struct {
	top  fs.FS
	base fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.top.Open(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.base.Open(name)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, filepath.ToSlash(dir))
	if err != nil {
		panic(err)
	}
	return sub
}
