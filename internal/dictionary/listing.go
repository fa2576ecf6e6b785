package dictionary

import (
	"fmt"
	"strconv"

	"github.com/pgddui/pgddui/pkg/core"
	"github.com/sahilm/fuzzy"
)

// Listing is a flat, display-ready table of one object kind.
type Listing struct {
	Kind    core.ObjectKind
	Headers []string
	Rows    []ListingRow
}

// ListingRow is one record rendered as cells, with the qualified name used
// for filtering and linking.
type ListingRow struct {
	Key   string
	Cells []string
}

// NewListing renders the snapshot rows of kind as a Listing.
func NewListing(kind core.ObjectKind, snap *core.Snapshot) (Listing, error) {
	l := Listing{Kind: kind, Rows: []ListingRow{}}

	switch kind {
	case core.KindSchema:
		l.Headers = []string{"Schema", "Description", "Tables", "Views", "Functions", "Size", "Data Source", "Sensitive"}
		for _, s := range snap.Schemas {
			l.add(s.Name, s.Name, s.Description, itoa(s.TableCount), itoa(s.ViewCount), itoa(s.FunctionCount),
				s.SizePlusIndexes, s.DataSource, yesNo(s.Sensitive))
		}
	case core.KindTable:
		l.Headers = []string{"Schema", "Table", "Description", "Size", "Rows", "Bytes/Row", "Data Source", "Sensitive"}
		for _, t := range snap.Tables {
			l.add(qualify(t.Schema, t.Name), t.Schema, t.Name, t.Description, t.SizePlusIndexes, itoa(t.Rows),
				itoa(t.BytesPerRow), t.DataSource, yesNo(t.Sensitive))
		}
	case core.KindView:
		l.Headers = []string{"Schema", "View", "Type", "Description", "Size", "Rows"}
		for _, v := range snap.Views {
			l.add(qualify(v.Schema, v.Name), v.Schema, v.Name, v.ViewType, v.Description, v.SizePlusIndexes, itoa(v.Rows))
		}
	case core.KindColumn:
		l.Headers = []string{"Schema", "Source", "Table", "Column", "Position", "Data Type", "Description", "Data Source", "Sensitive"}
		for _, c := range snap.Columns {
			l.add(qualify(c.Schema, c.Table)+"."+c.Name, c.Schema, c.SourceType, c.Table, c.Name, itoa(c.Position),
				c.DataType, c.Description, c.DataSource, yesNo(c.Sensitive))
		}
	case core.KindFunction:
		l.Headers = []string{"Schema", "Function", "Result Types", "Argument Types", "Description"}
		for _, f := range snap.Functions {
			l.add(qualify(f.Schema, f.Name), f.Schema, f.Name, f.ResultDataTypes, f.ArgumentDataTypes, f.Description)
		}
	default:
		return Listing{}, fmt.Errorf("%w: %s", core.ErrUnknownKind, kind)
	}
	return l, nil
}

func (l *Listing) add(key string, cells ...string) {
	l.Rows = append(l.Rows, ListingRow{Key: key, Cells: cells})
}

// Len returns the number of rows.
func (l Listing) Len() int {
	return len(l.Rows)
}

// Filter returns the rows whose key fuzzily matches pattern, best match
// first. An empty pattern returns the listing unchanged.
func (l Listing) Filter(pattern string) Listing {
	if pattern == "" {
		return l
	}

	keys := make([]string, len(l.Rows))
	for i, r := range l.Rows {
		keys[i] = r.Key
	}

	out := Listing{Kind: l.Kind, Headers: l.Headers, Rows: []ListingRow{}}
	for _, m := range fuzzy.Find(pattern, keys) {
		out.Rows = append(out.Rows, l.Rows[m.Index])
	}
	return out
}

func qualify(schema, name string) string {
	return schema + "." + name
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
