// Package dictionary assembles fetched catalog records into the nested
// schema > table > column tree and the flat per-kind listings.
package dictionary

import (
	"encoding/json"

	"github.com/pgddui/pgddui/pkg/core"
)

// Tree is the ordered list of schema nodes.
type Tree []SchemaNode

// SchemaNode is one schema and its tables (or views).
type SchemaNode struct {
	Name   string
	Label  string
	Tables []TableNode
}

// TableNode is one table or view and its column labels.
type TableNode struct {
	Name    string
	Label   string
	Columns []string
}

// MarshalJSON encodes the node as a single-key object {label: tables}.
func (n SchemaNode) MarshalJSON() ([]byte, error) {
	tables := n.Tables
	if tables == nil {
		tables = []TableNode{}
	}
	return json.Marshal(map[string][]TableNode{n.Label: tables})
}

// MarshalJSON encodes the node as a single-key object {label: columns}.
func (n TableNode) MarshalJSON() ([]byte, error) {
	columns := n.Columns
	if columns == nil {
		columns = []string{}
	}
	return json.Marshal(map[string][]string{n.Label: columns})
}

type ownerKey struct {
	schema string
	name   string
}

// groupColumns indexes column labels by (schema, owner) preserving fetch order.
func groupColumns(columns []core.ColumnRecord) map[ownerKey][]string {
	byOwner := make(map[ownerKey][]string)
	for _, c := range columns {
		key := ownerKey{schema: c.Schema, name: c.Table}
		byOwner[key] = append(byOwner[key], ColumnLabel(c))
	}
	return byOwner
}

// BuildTree nests tables under their schema and columns under their table.
//
// Tables whose schema was not fetched are dropped. Columns are matched on
// both schema and table name. Fetch order is preserved at every level.
func BuildTree(schemas []core.SchemaRecord, tables []core.TableRecord, columns []core.ColumnRecord) Tree {
	cols := groupColumns(columns)

	bySchema := make(map[string][]TableNode)
	for _, t := range tables {
		bySchema[t.Schema] = append(bySchema[t.Schema], TableNode{
			Name:    t.Name,
			Label:   TableLabel(t),
			Columns: nonNil(cols[ownerKey{schema: t.Schema, name: t.Name}]),
		})
	}

	tree := make(Tree, 0, len(schemas))
	for _, s := range schemas {
		tree = append(tree, SchemaNode{
			Name:   s.Name,
			Label:  SchemaLabel(s),
			Tables: nonNilTables(bySchema[s.Name]),
		})
	}
	return tree
}

// BuildViewTree is BuildTree for views. Schema labels carry no size.
func BuildViewTree(schemas []core.SchemaRecord, views []core.ViewRecord, columns []core.ColumnRecord) Tree {
	cols := groupColumns(columns)

	bySchema := make(map[string][]TableNode)
	for _, v := range views {
		bySchema[v.Schema] = append(bySchema[v.Schema], TableNode{
			Name:    v.Name,
			Label:   ViewLabel(v),
			Columns: nonNil(cols[ownerKey{schema: v.Schema, name: v.Name}]),
		})
	}

	tree := make(Tree, 0, len(schemas))
	for _, s := range schemas {
		tree = append(tree, SchemaNode{
			Name:   s.Name,
			Label:  ViewSchemaLabel(s),
			Tables: nonNilTables(bySchema[s.Name]),
		})
	}
	return tree
}

// TableCount returns the number of table (or view) nodes in the tree.
func (t Tree) TableCount() int {
	n := 0
	for _, s := range t {
		n += len(s.Tables)
	}
	return n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilTables(s []TableNode) []TableNode {
	if s == nil {
		return []TableNode{}
	}
	return s
}
