// Package core defines the shared language of the pgddui system.
//
// This package contains:
//   - Catalog records (SchemaRecord, TableRecord, ViewRecord, ColumnRecord, FunctionRecord)
//   - The closed ObjectKind enumeration
//   - Database-level statistics (DatabaseStats)
//   - Configuration types (TargetConfig, AdapterConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
