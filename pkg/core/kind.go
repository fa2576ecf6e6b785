package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when an object kind cannot be parsed.
var ErrUnknownKind = errors.New("unknown object kind")

// ObjectKind identifies one of the catalog object kinds.
type ObjectKind int

// Object kinds, in display order.
const (
	KindSchema ObjectKind = iota + 1
	KindTable
	KindView
	KindColumn
	KindFunction
)

// AllKinds lists every object kind in display order.
var AllKinds = []ObjectKind{KindSchema, KindTable, KindView, KindColumn, KindFunction}

// ParseKind converts user input ("tables", "Table", "views") into an ObjectKind.
// Singular and plural forms are accepted.
func ParseKind(s string) (ObjectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "schema", "schemas":
		return KindSchema, nil
	case "table", "tables":
		return KindTable, nil
	case "view", "views":
		return KindView, nil
	case "column", "columns":
		return KindColumn, nil
	case "function", "functions":
		return KindFunction, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// String returns the singular name of the kind.
func (k ObjectKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindColumn:
		return "column"
	case KindFunction:
		return "function"
	}
	return fmt.Sprintf("ObjectKind(%d)", int(k))
}

// Plural returns the plural name of the kind. It doubles as the URL segment,
// the artifact name, and the catalog function suffix (get_<plural>).
func (k ObjectKind) Plural() string {
	return k.String() + "s"
}
