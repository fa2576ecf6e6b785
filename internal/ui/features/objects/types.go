// Package objects serves the per-kind listing pages (/schemas, /tables, ...).
package objects

const (
	// kindParam is the URL parameter holding the kind plural.
	kindParam = "kind"
	// queryParam holds the fuzzy filter.
	queryParam = "q"

	datastarHeader = "Datastar-Request"
)
