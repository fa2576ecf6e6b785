// Package adapter provides the query-execution contract that the catalog
// reader and version gate run on, plus a database/sql base implementation.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves with the registry in this package.
package adapter

import (
	"context"

	"github.com/pgddui/pgddui/pkg/core"
)

// Querier executes read-only parameterized queries.
//
// Parameters are referenced in the query text as @name and supplied in the
// params map. A failure to execute is reported as an error wrapping
// core.ErrDataSourceUnavailable; a query matching no rows is not an error.
type Querier interface {
	// Select returns all rows, in the order produced by the query.
	Select(ctx context.Context, query string, params map[string]any) ([]core.Row, error)

	// SelectOne returns the first row, or nil when the query matched nothing.
	SelectOne(ctx context.Context, query string, params map[string]any) (core.Row, error)
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	Querier

	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg core.AdapterConfig) error

	// Close closes the database connection and releases resources.
	Close() error

	// DialectName returns the database flavour served by this adapter.
	DialectName() string
}
