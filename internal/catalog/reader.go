// Package catalog reads the PgDD catalog functions into typed records.
//
// Every query is parameterized by the visibility flag. When the flag is true
// both user and system objects are returned; when false, system objects are
// filtered out. Ordering is applied in SQL so callers can rely on it.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/pgddui/pgddui/pkg/adapter"
	"github.com/pgddui/pgddui/pkg/core"
)

// DefaultSchema is the schema holding the catalog functions.
const DefaultSchema = "dd_ui"

// Reader queries the catalog functions of one database.
type Reader struct {
	querier adapter.Querier
	schema  string
	logger  *slog.Logger
}

// NewReader creates a Reader over q. An empty catalogSchema means DefaultSchema.
func NewReader(q adapter.Querier, catalogSchema string, logger *slog.Logger) *Reader {
	if catalogSchema == "" {
		catalogSchema = DefaultSchema
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{querier: q, schema: catalogSchema, logger: logger}
}

// CatalogSchema returns the schema the catalog functions are read from.
func (r *Reader) CatalogSchema() string {
	return r.schema
}

// objectQuery builds the SELECT for one catalog function.
func (r *Reader) objectQuery(function, orderBy string) string {
	fn := pgx.Identifier{r.schema, function}.Sanitize()
	return fmt.Sprintf("SELECT * FROM %s() WHERE (@show_system OR NOT system_object) ORDER BY %s", fn, orderBy)
}

func (r *Reader) selectRows(ctx context.Context, kind core.ObjectKind, query string, showSystem bool) ([]core.Row, error) {
	r.logger.Debug("fetching catalog rows",
		slog.String("kind", kind.Plural()),
		slog.Bool("show_system", showSystem))

	rows, err := r.querier.Select(ctx, query, map[string]any{"show_system": showSystem})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", kind.Plural(), err)
	}
	return rows, nil
}

// Schemas returns schema records ordered by name.
func (r *Reader) Schemas(ctx context.Context, showSystem bool) ([]core.SchemaRecord, error) {
	rows, err := r.selectRows(ctx, core.KindSchema, r.objectQuery("get_schemas", "s_name"), showSystem)
	if err != nil {
		return nil, err
	}
	return decodeRows[core.SchemaRecord](core.KindSchema, rows, "s_name")
}

// Tables returns table records ordered by schema then table name.
func (r *Reader) Tables(ctx context.Context, showSystem bool) ([]core.TableRecord, error) {
	rows, err := r.selectRows(ctx, core.KindTable, r.objectQuery("get_tables", "s_name, t_name"), showSystem)
	if err != nil {
		return nil, err
	}
	return decodeRows[core.TableRecord](core.KindTable, rows, "s_name", "t_name")
}

// Views returns view records ordered by schema then view name.
func (r *Reader) Views(ctx context.Context, showSystem bool) ([]core.ViewRecord, error) {
	rows, err := r.selectRows(ctx, core.KindView, r.objectQuery("get_views", "s_name, v_name"), showSystem)
	if err != nil {
		return nil, err
	}
	return decodeRows[core.ViewRecord](core.KindView, rows, "s_name", "v_name")
}

// Columns returns column records for tables and views, ordered by schema,
// owner name, then ordinal position.
func (r *Reader) Columns(ctx context.Context, showSystem bool) ([]core.ColumnRecord, error) {
	rows, err := r.selectRows(ctx, core.KindColumn, r.objectQuery("get_columns", "s_name, t_name, position"), showSystem)
	if err != nil {
		return nil, err
	}
	return decodeRows[core.ColumnRecord](core.KindColumn, rows, "s_name", "t_name", "column_name")
}

// Functions returns function records ordered by schema then function name.
func (r *Reader) Functions(ctx context.Context, showSystem bool) ([]core.FunctionRecord, error) {
	rows, err := r.selectRows(ctx, core.KindFunction, r.objectQuery("get_functions", "s_name, f_name"), showSystem)
	if err != nil {
		return nil, err
	}
	return decodeRows[core.FunctionRecord](core.KindFunction, rows, "s_name", "f_name")
}

// Fetch reads the row set for a single kind into a Snapshot. Only the field
// matching kind is populated.
func (r *Reader) Fetch(ctx context.Context, kind core.ObjectKind, showSystem bool) (*core.Snapshot, error) {
	snap := &core.Snapshot{ShowSystem: showSystem}
	var err error

	switch kind {
	case core.KindSchema:
		snap.Schemas, err = r.Schemas(ctx, showSystem)
	case core.KindTable:
		snap.Tables, err = r.Tables(ctx, showSystem)
	case core.KindView:
		snap.Views, err = r.Views(ctx, showSystem)
	case core.KindColumn:
		snap.Columns, err = r.Columns(ctx, showSystem)
	case core.KindFunction:
		snap.Functions, err = r.Functions(ctx, showSystem)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Snapshot reads every kind under a single visibility setting.
// Queries run sequentially and the first failure aborts the snapshot.
func (r *Reader) Snapshot(ctx context.Context, showSystem bool) (*core.Snapshot, error) {
	snap := &core.Snapshot{ShowSystem: showSystem}
	var err error

	if snap.Schemas, err = r.Schemas(ctx, showSystem); err != nil {
		return nil, err
	}
	if snap.Tables, err = r.Tables(ctx, showSystem); err != nil {
		return nil, err
	}
	if snap.Views, err = r.Views(ctx, showSystem); err != nil {
		return nil, err
	}
	if snap.Columns, err = r.Columns(ctx, showSystem); err != nil {
		return nil, err
	}
	if snap.Functions, err = r.Functions(ctx, showSystem); err != nil {
		return nil, err
	}
	return snap, nil
}
