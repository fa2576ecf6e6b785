package dictionary

import (
	"fmt"
	"strings"

	"github.com/pgddui/pgddui/pkg/core"
)

// withDescription appends ": desc" when desc is non-blank.
func withDescription(name, desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return name
	}
	return name + ": " + desc
}

// withDetail appends " (detail)" when detail is non-blank.
func withDetail(label, detail string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, detail)
}

// SchemaLabel renders "sales: Sales data (120 MB)", or "sales (120 MB)"
// without a description.
func SchemaLabel(s core.SchemaRecord) string {
	return withDetail(withDescription(s.Name, s.Description), s.SizePlusIndexes)
}

// ViewSchemaLabel renders a schema label for the view tree, without size.
func ViewSchemaLabel(s core.SchemaRecord) string {
	return withDescription(s.Name, s.Description)
}

// TableLabel renders "users (2MB, 100 rows): user accounts".
func TableLabel(t core.TableRecord) string {
	detail := fmt.Sprintf("%d rows", t.Rows)
	if size := strings.TrimSpace(t.SizePlusIndexes); size != "" {
		detail = size + ", " + detail
	}
	return withDescription(fmt.Sprintf("%s (%s)", t.Name, detail), t.Description)
}

// ViewLabel renders "active_users: users seen this week".
func ViewLabel(v core.ViewRecord) string {
	return withDescription(v.Name, v.Description)
}

// ColumnLabel renders "id: primary key (integer)".
func ColumnLabel(c core.ColumnRecord) string {
	return withDetail(withDescription(c.Name, c.Description), c.DataType)
}
