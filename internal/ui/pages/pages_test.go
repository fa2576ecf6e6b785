package pages

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r *Renderer, name string, data PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), &buf, name, data))
	return buf.String()
}

func TestRenderer_Index(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	html := render(t, r, PageIndex, PageData{
		Title:  "Home",
		Active: "index",
		Stats: core.DatabaseStats{
			PgDDVersion:    "0.5",
			PgVersionShort: "16.2",
			Host:           "localhost",
			Port:           5432,
			Database:       "pgdd_test",
			GeneratedAt:    "03/09/2024 14:05:07",
		},
	})

	for _, want := range []string{
		"<!doctype html>",
		"<title>Home - PgDD</title>",
		"pgdd_test",
		"PgDD 0.5",
		`href="/static/style.css"`,
		`href="/tables"`,
		"datastar",
		"_toggle_system_objects",
	} {
		assert.Contains(t, html, want)
	}
}

func TestRenderer_StaticLinks(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	html := render(t, r, PageIndex, PageData{Title: "Home", Static: true})

	assert.Contains(t, html, `href="tables.html"`)
	assert.Contains(t, html, `href="static/style.css"`)
	assert.Contains(t, html, "System objects hidden")
	assert.NotContains(t, html, "_toggle_system_objects")
	assert.NotContains(t, html, "datastar.js")
}

func TestRenderer_LiveReload(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	html := render(t, r, PageIndex, PageData{Title: "Home", Static: true, LiveReload: true})
	assert.Contains(t, html, "data-init")
	assert.Contains(t, html, "/__reload")
	assert.Contains(t, html, "datastar.js")
}

func TestRenderer_Listing(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	listing, err := dictionary.NewListing(core.KindTable, &core.Snapshot{
		Tables: []core.TableRecord{{Schema: "public", Name: "users", Description: "<b>accounts</b>"}},
	})
	require.NoError(t, err)

	html := render(t, r, PageListing, PageData{Title: "Tables", Active: "tables", Listing: &listing})

	assert.Contains(t, html, "Tables <small>(1)</small>")
	assert.Contains(t, html, "<td>users</td>")
	assert.Contains(t, html, "&lt;b&gt;accounts&lt;/b&gt;", "descriptions are escaped")
	assert.Contains(t, html, `class="active">Tables</a>`)
	assert.Contains(t, html, `<div id="listing">`)
	assert.Contains(t, html, `type="search"`, "viewer pages filter in place")

	static := render(t, r, PageListing, PageData{Title: "Tables", Static: true, Listing: &listing})
	assert.Contains(t, static, "<td>users</td>")
	assert.NotContains(t, static, `type="search"`)
}

func TestListingTable(t *testing.T) {
	tables, err := dictionary.NewListing(core.KindTable, &core.Snapshot{
		Tables: []core.TableRecord{
			{Schema: "app", Name: "users", Description: "a & b", Rows: 100},
			{Schema: "app", Name: "orders"},
		},
	})
	require.NoError(t, err)
	empty, err := dictionary.NewListing(core.KindFunction, &core.Snapshot{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		listing dictionary.Listing
		want    []string
		notWant []string
	}{
		{
			name:    "rows",
			listing: tables,
			want: []string{
				`<div id="listing">`,
				"<h1>Tables <small>(2)</small></h1>",
				"<th>Bytes/Row</th>",
				"<td>users</td><td>a &amp; b</td>",
				"<td>orders</td>",
			},
			notWant: []string{"class=\"empty\""},
		},
		{
			name:    "empty",
			listing: empty,
			want:    []string{"<h1>Functions <small>(0)</small></h1>", `<p class="empty">No functions found.</p>`},
			notWant: []string{"<table"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ListingTable(&tt.listing).Render(context.Background(), &buf))

			html := buf.String()
			assert.True(t, strings.HasPrefix(html, `<div id="`+ListingID+`">`))
			for _, want := range tt.want {
				assert.Contains(t, html, want)
			}
			for _, not := range tt.notWant {
				assert.NotContains(t, html, not)
			}
		})
	}
}

func TestRenderer_EmptyListing(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	listing, err := dictionary.NewListing(core.KindView, &core.Snapshot{})
	require.NoError(t, err)

	html := render(t, r, PageListing, PageData{Title: "Views", Listing: &listing})
	assert.Contains(t, html, "No views found.")
}

func TestRenderer_Tree(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	tree := dictionary.BuildTree(
		[]core.SchemaRecord{{Name: "public", SizePlusIndexes: "10MB"}},
		[]core.TableRecord{{Schema: "public", Name: "users", SizePlusIndexes: "2MB", Rows: 100}},
		[]core.ColumnRecord{{Schema: "public", Table: "users", Name: "id", DataType: "integer"}},
	)

	html := render(t, r, PageTree, PageData{Title: "Tree", Tree: tree})

	assert.Contains(t, html, "public (10MB)")
	assert.Contains(t, html, "users (2MB, 100 rows)")
	assert.Contains(t, html, `<li class="column">id (integer)</li>`)
	assert.Contains(t, html, "Nothing to show.", "empty view tree")
}

func TestRenderer_Error(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	html := render(t, r, PageError, PageData{Title: "Not Implemented", Error: &ErrorInfo{
		Status:    501,
		Title:     "Not Implemented",
		Message:   "PgDD extension version 0.2 outdated. Requires at least 0.3",
		Installed: "0.2",
		Required:  "0.3",
	}})

	assert.Contains(t, html, "501 Not Implemented")
	assert.Contains(t, html, "Requires at least 0.3")
	assert.Contains(t, html, "Installed PgDD")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	_, err = r.Page("nope", PageData{})
	assert.Error(t, err)
}

func TestRenderer_Overlay(t *testing.T) {
	dir := t.TempDir()
	custom := `{{template "layout" .}}{{define "content"}}<p>custom home for {{.Stats.Database}}</p>{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(custom), 0600))

	r, err := NewRenderer(dir)
	require.NoError(t, err)

	html := render(t, r, PageIndex, PageData{Title: "Home", Stats: core.DatabaseStats{Database: "app"}})
	assert.Contains(t, html, "custom home for app")
	assert.Contains(t, html, "<title>Home - PgDD</title>", "layout still comes from the embedded set")
}

func TestNewRenderer_MissingOverlay(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
