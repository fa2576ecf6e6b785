// Package postgres provides the PostgreSQL adapter used to read the PgDD catalog.
//
// This file registers the PostgreSQL adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/pgddui/pgddui/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/pgddui/pgddui/pkg/adapter"
)

func init() {
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
