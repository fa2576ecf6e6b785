package docs

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/pgddui/pgddui/pkg/core"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed migrations/*.sql
var migrations embed.FS

// WriteSnapshotDB writes the snapshot and stats to a fresh SQLite file at
// path, replacing any existing file. The file is vacuumed so it can be
// served over HTTP range requests.
func WriteSnapshotDB(ctx context.Context, path string, snap *core.Snapshot, stats core.DatabaseStats) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove old snapshot database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := migrate(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertSnapshot(ctx, tx, snap, stats); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func insertSnapshot(ctx context.Context, tx *sql.Tx, snap *core.Snapshot, stats core.DatabaseStats) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO db_stats (pgdd_version, pg_version_full, pg_version_short, pg_host, pg_port, pg_db, generated_at, build_id, show_system)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.PgDDVersion, stats.PgVersionFull, stats.PgVersionShort, stats.Host, stats.Port,
		stats.Database, stats.GeneratedAt, nullString(stats.BuildID), snap.ShowSystem,
	); err != nil {
		return fmt.Errorf("failed to insert db_stats: %w", err)
	}

	for _, s := range snap.Schemas {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schemas (s_name, description, data_source, sensitive, system_object, table_count, view_count,
			 function_count, size_pretty, size_plus_indexes, size_plus_indexes_bytes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.Name, nullString(s.Description), nullString(s.DataSource), s.Sensitive, s.SystemObject, s.TableCount,
			s.ViewCount, s.FunctionCount, s.SizePretty, s.SizePlusIndexes, s.SizePlusIndexesBytes,
		); err != nil {
			return fmt.Errorf("failed to insert schema %s: %w", s.Name, err)
		}
	}

	for _, t := range snap.Tables {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tables (s_name, t_name, description, data_source, sensitive, system_object, size_pretty,
			 size_plus_indexes, size_bytes, "rows", bytes_per_row)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Schema, t.Name, nullString(t.Description), nullString(t.DataSource), t.Sensitive, t.SystemObject,
			t.SizePretty, t.SizePlusIndexes, t.SizeBytes, t.Rows, t.BytesPerRow,
		); err != nil {
			return fmt.Errorf("failed to insert table %s.%s: %w", t.Schema, t.Name, err)
		}
	}

	for _, v := range snap.Views {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO views (s_name, v_name, view_type, description, system_object, size_plus_indexes, "rows")
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.Schema, v.Name, v.ViewType, nullString(v.Description), v.SystemObject, v.SizePlusIndexes, v.Rows,
		); err != nil {
			return fmt.Errorf("failed to insert view %s.%s: %w", v.Schema, v.Name, err)
		}
	}

	for _, c := range snap.Columns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO columns (s_name, source_type, t_name, column_name, "position", data_type, description,
			 data_source, sensitive, system_object)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.Schema, c.SourceType, c.Table, c.Name, c.Position, c.DataType, nullString(c.Description),
			nullString(c.DataSource), c.Sensitive, c.SystemObject,
		); err != nil {
			return fmt.Errorf("failed to insert column %s.%s.%s: %w", c.Schema, c.Table, c.Name, err)
		}
	}

	for _, f := range snap.Functions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO functions (s_name, f_name, result_data_types, argument_data_types, description, system_object)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			f.Schema, f.Name, f.ResultDataTypes, f.ArgumentDataTypes, nullString(f.Description), f.SystemObject,
		); err != nil {
			return fmt.Errorf("failed to insert function %s.%s: %w", f.Schema, f.Name, err)
		}
	}
	return nil
}

// nullString returns a sql.NullString for optional string fields.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
