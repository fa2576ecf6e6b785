// Package docs generates the static data dictionary site.
//
// A build checks the extension version, reads every catalog kind under a
// single visibility setting, and writes:
//
//   - one script artifact (<name>.js) per row set, the stats and both trees,
//     so pages opened from disk can load the data;
//   - the same artifacts as plain JSON under data/;
//   - the rendered HTML pages and their static assets;
//   - optionally DATA_DICTIONARY.md and a pgdd.db SQLite snapshot.
package docs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/pgddui/pgddui/internal/catalog"
	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/internal/ui/resources"
	"github.com/pgddui/pgddui/pkg/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Artifact and output file names.
const (
	ArtifactStats     = "db_stats"
	ArtifactTableTree = "table_tree"
	ArtifactViewTree  = "view_tree"

	DataDir      = "data"
	StaticDir    = "static"
	MarkdownFile = "DATA_DICTIONARY.md"
	SQLiteFile   = "pgdd.db"
)

// Options controls a build.
type Options struct {
	OutputDir  string
	ShowSystem bool
	Minify     bool
	Markdown   bool
	SQLite     bool
	LiveReload bool
}

// Result summarizes a finished build.
type Result struct {
	OutputDir string
	Stats     core.DatabaseStats
	Counts    map[core.ObjectKind]int
	Files     []string
}

// Generator builds the static site.
type Generator struct {
	reader   *catalog.Reader
	stats    *catalog.StatsSource
	gate     *extension.Gate
	renderer *pages.Renderer
	logger   *slog.Logger
}

// NewGenerator creates a site generator.
func NewGenerator(reader *catalog.Reader, stats *catalog.StatsSource, gate *extension.Gate, renderer *pages.Renderer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		reader:   reader,
		stats:    stats,
		gate:     gate,
		renderer: renderer,
		logger:   logger,
	}
}

// WithRenderer returns a copy of g rendering pages with r.
func (g *Generator) WithRenderer(r *pages.Renderer) *Generator {
	c := *g
	c.renderer = r
	return &c
}

// Build generates the site into opts.OutputDir.
func (g *Generator) Build(ctx context.Context, opts Options) (*Result, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	if _, err := g.gate.Check(ctx); err != nil {
		return nil, err
	}

	stats, err := g.stats.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load database stats: %w", err)
	}
	g.logger.Info("connected",
		slog.String("host", stats.Host),
		slog.String("database", stats.Database),
		slog.String("postgres", stats.PgVersionShort),
		slog.String("pgdd", stats.PgDDVersion))

	snap, err := g.reader.Snapshot(ctx, opts.ShowSystem)
	if err != nil {
		return nil, err
	}

	b := &siteBuilder{
		opts:   opts,
		stats:  stats,
		snap:   snap,
		tree:   dictionary.BuildTree(snap.Schemas, snap.Tables, snap.Columns),
		views:  dictionary.BuildViewTree(snap.Schemas, snap.Views, snap.Columns),
		render: g.renderer,
	}

	if err := b.writeArtifacts(); err != nil {
		return nil, err
	}
	rendered, err := b.writePages(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.writeAssets(); err != nil {
		return nil, err
	}
	if opts.Markdown {
		if err := b.writeMarkdown(rendered); err != nil {
			return nil, err
		}
	}
	if opts.SQLite {
		path := filepath.Join(opts.OutputDir, SQLiteFile)
		if err := WriteSnapshotDB(ctx, path, snap, stats); err != nil {
			return nil, err
		}
		b.files = append(b.files, path)
	}

	sort.Strings(b.files)
	g.logger.Debug("site built", slog.String("dir", opts.OutputDir), slog.Int("files", len(b.files)))

	return &Result{
		OutputDir: opts.OutputDir,
		Stats:     stats,
		Counts: map[core.ObjectKind]int{
			core.KindSchema:   len(snap.Schemas),
			core.KindTable:    len(snap.Tables),
			core.KindView:     len(snap.Views),
			core.KindColumn:   len(snap.Columns),
			core.KindFunction: len(snap.Functions),
		},
		Files: b.files,
	}, nil
}

// siteBuilder carries the state of one build.
type siteBuilder struct {
	opts   Options
	stats  core.DatabaseStats
	snap   *core.Snapshot
	tree   dictionary.Tree
	views  dictionary.Tree
	render *pages.Renderer
	files  []string
}

func (b *siteBuilder) artifacts() []struct {
	name string
	data any
} {
	return []struct {
		name string
		data any
	}{
		{ArtifactStats, b.stats},
		{core.KindSchema.Plural(), nonNil(b.snap.Schemas)},
		{core.KindTable.Plural(), nonNil(b.snap.Tables)},
		{core.KindView.Plural(), nonNil(b.snap.Views)},
		{core.KindColumn.Plural(), nonNil(b.snap.Columns)},
		{core.KindFunction.Plural(), nonNil(b.snap.Functions)},
		{ArtifactTableTree, b.tree},
		{ArtifactViewTree, b.views},
	}
}

func (b *siteBuilder) writeArtifacts() error {
	scripts := NewExporter(b.opts.OutputDir)
	data := NewExporter(filepath.Join(b.opts.OutputDir, DataDir))

	for _, a := range b.artifacts() {
		path, err := scripts.Export(a.name, a.data, ModeScript)
		if err != nil {
			return err
		}
		b.files = append(b.files, path)

		path, err = data.Export(a.name, a.data, ModeJSON)
		if err != nil {
			return err
		}
		b.files = append(b.files, path)
	}
	return nil
}

func (b *siteBuilder) pageData(title, active string) pages.PageData {
	return pages.PageData{
		Title:      title,
		Active:     active,
		Stats:      b.stats,
		ShowSystem: b.snap.ShowSystem,
		Static:     true,
		LiveReload: b.opts.LiveReload,
	}
}

// writePages renders every page and returns their HTML in site order.
func (b *siteBuilder) writePages(ctx context.Context) ([]string, error) {
	type page struct {
		file string
		name string
		data pages.PageData
	}

	index := b.pageData("Home", "index")
	tree := b.pageData("Tree", "tree")
	tree.Tree = b.tree
	tree.ViewTree = b.views

	all := []page{{file: "index.html", name: pages.PageIndex, data: index}}
	for _, kind := range core.AllKinds {
		listing, err := dictionary.NewListing(kind, b.snap)
		if err != nil {
			return nil, err
		}
		data := b.pageData(titleCase(kind.Plural()), kind.Plural())
		data.Listing = &listing
		all = append(all, page{file: kind.Plural() + ".html", name: pages.PageListing, data: data})
	}
	all = append(all, page{file: "tree.html", name: pages.PageTree, data: tree})

	rendered := make([]string, 0, len(all))
	for _, p := range all {
		var buf bytes.Buffer
		if err := b.render.Render(ctx, &buf, p.name, p.data); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", p.file, err)
		}
		path := filepath.Join(b.opts.OutputDir, p.file)
		if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", p.file, err)
		}
		b.files = append(b.files, path)
		rendered = append(rendered, buf.String())
	}
	return rendered, nil
}

func (b *siteBuilder) writeAssets() error {
	assets, err := resources.Assets()
	if err != nil {
		return fmt.Errorf("failed to read static assets: %w", err)
	}

	dir := filepath.Join(b.opts.OutputDir, StaticDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create static directory: %w", err)
	}

	for _, name := range resources.AssetNames() {
		content := assets[name]
		if b.opts.Minify {
			content, err = Minify(name, content)
			if err != nil {
				return err
			}
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.WriteFile(path, content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		b.files = append(b.files, path)
	}
	return nil
}

func (b *siteBuilder) writeMarkdown(rendered []string) error {
	title := fmt.Sprintf("Data dictionary: %s", b.stats.Database)
	md, err := PagesToMarkdown(title, rendered)
	if err != nil {
		return err
	}
	path := filepath.Join(b.opts.OutputDir, MarkdownFile)
	if err := os.WriteFile(path, []byte(md), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", MarkdownFile, err)
	}
	b.files = append(b.files, path)
	return nil
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// nonNil keeps empty row sets encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
