package core

import "errors"

// ErrDataSourceUnavailable marks a failure of the query-execution layer:
// the database could not be reached, or a query could not be executed.
// It is never returned for a query that simply matched zero rows.
var ErrDataSourceUnavailable = errors.New("data source unavailable")

// Row is a single result row keyed by column name.
type Row map[string]any

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Options  map[string]string
}
