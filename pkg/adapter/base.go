package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pgddui/pgddui/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Select, and SelectOne implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// namedParam matches @name references. A doubled @@ is left alone.
var namedParam = regexp.MustCompile(`@@|@([A-Za-z_][A-Za-z0-9_]*)`)

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// Select executes a query and collects every row into a core.Row.
func (b *BaseSQLAdapter) Select(ctx context.Context, query string, params map[string]any) ([]core.Row, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("%w: database connection not established", core.ErrDataSourceUnavailable)
	}

	bound, args, err := BindNamed(query, params)
	if err != nil {
		return nil, err
	}

	b.logger().Debug("executing query", slog.String("sql", bound), slog.Int("args", len(args)))

	rows, err := b.DB.QueryContext(ctx, bound, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute query: %w", core.ErrDataSourceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	result, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrDataSourceUnavailable, err)
	}
	return result, nil
}

// SelectOne executes a query and returns its first row, or nil if there is none.
func (b *BaseSQLAdapter) SelectOne(ctx context.Context, query string, params map[string]any) (core.Row, error) {
	rows, err := b.Select(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// BindNamed rewrites @name references into $N positional placeholders and
// returns the matching argument list. A name used twice reuses its placeholder.
// Referencing a name missing from params is an error.
func BindNamed(query string, params map[string]any) (string, []any, error) {
	var (
		args     []any
		missing  []string
		position = make(map[string]int)
	)

	bound := namedParam.ReplaceAllStringFunc(query, func(match string) string {
		if match == "@@" {
			return match
		}
		name := match[1:]
		if n, ok := position[name]; ok {
			return fmt.Sprintf("$%d", n)
		}
		val, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		args = append(args, val)
		position[name] = len(args)
		return fmt.Sprintf("$%d", len(args))
	})

	if len(missing) > 0 {
		return "", nil, fmt.Errorf("missing query parameters: %s", strings.Join(missing, ", "))
	}
	return bound, args, nil
}

// scanRows reads all rows into maps keyed by column name.
// []byte values are converted to strings for readability.
func scanRows(rows *sql.Rows) ([]core.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := make([]core.Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(core.Row, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}
