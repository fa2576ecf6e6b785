package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pgddui/pgddui/pkg/core"
)

// FakeQuerier answers queries by matching a registered fragment of the SQL
// text. When several fragments match, the longest wins. Rows flagged
// system_object are dropped when the query's show_system param is false.
type FakeQuerier struct {
	mu        sync.Mutex
	responses map[string][]core.Row
	failures  map[string]error
	calls     []string
}

// NewFakeQuerier creates an empty fake.
func NewFakeQuerier() *FakeQuerier {
	return &FakeQuerier{
		responses: make(map[string][]core.Row),
		failures:  make(map[string]error),
	}
}

// On registers rows for queries containing fragment.
func (f *FakeQuerier) On(fragment string, rows ...core.Row) *FakeQuerier {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rows == nil {
		rows = []core.Row{}
	}
	f.responses[fragment] = rows
	delete(f.failures, fragment)
	return f
}

// Fail makes queries containing fragment return err.
func (f *FakeQuerier) Fail(fragment string, err error) *FakeQuerier {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[fragment] = err
	return f
}

// Calls returns the queries executed so far.
func (f *FakeQuerier) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many executed queries contain fragment.
func (f *FakeQuerier) CallCount(fragment string) int {
	n := 0
	for _, q := range f.Calls() {
		if strings.Contains(q, fragment) {
			n++
		}
	}
	return n
}

// Select implements adapter.Querier.
func (f *FakeQuerier) Select(_ context.Context, query string, params map[string]any) ([]core.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)

	key, ok := f.match(query)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected query %q", core.ErrDataSourceUnavailable, query)
	}
	if err, failed := f.failures[key]; failed {
		return nil, err
	}

	showSystem, filtered := params["show_system"].(bool)
	out := make([]core.Row, 0, len(f.responses[key]))
	for _, row := range f.responses[key] {
		if filtered && !showSystem && row["system_object"] == true {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// SelectOne implements adapter.Querier.
func (f *FakeQuerier) SelectOne(ctx context.Context, query string, params map[string]any) (core.Row, error) {
	rows, err := f.Select(ctx, query, params)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (f *FakeQuerier) match(query string) (string, bool) {
	best := ""
	for fragment := range f.responses {
		if strings.Contains(query, fragment) && len(fragment) > len(best) {
			best = fragment
		}
	}
	for fragment := range f.failures {
		if strings.Contains(query, fragment) && len(fragment) > len(best) {
			best = fragment
		}
	}
	return best, best != ""
}

// SampleDatabase returns a fake loaded with a small PgDD-enabled database:
// two user schemas, one system schema, tables named users in two schemas,
// a view, columns, and functions.
func SampleDatabase() *FakeQuerier {
	return NewFakeQuerier().
		On("pg_extension", core.Row{"extversion": "0.5"}).
		On("SELECT version()", core.Row{"version": "PostgreSQL 16.2 on x86_64-pc-linux-gnu"}).
		On("SHOW server_version", core.Row{"server_version": "16.2"}).
		On("get_schemas",
			core.Row{"s_name": "app", "description": "Application data", "size_plus_indexes": "10 MB", "table_count": int64(2), "system_object": false},
			core.Row{"s_name": "audit", "description": nil, "size_plus_indexes": "8 kB", "table_count": int64(1), "system_object": false},
			core.Row{"s_name": "pg_catalog", "description": "system catalog", "size_plus_indexes": "12 MB", "system_object": true},
		).
		On("get_tables",
			core.Row{"s_name": "app", "t_name": "orders", "size_plus_indexes": "1 MB", "rows": int64(42), "system_object": false},
			core.Row{"s_name": "app", "t_name": "users", "description": "user accounts", "size_plus_indexes": "2 MB", "rows": int64(100), "system_object": false},
			core.Row{"s_name": "audit", "t_name": "users", "size_plus_indexes": "8 kB", "rows": int64(3), "system_object": false},
			core.Row{"s_name": "pg_catalog", "t_name": "pg_class", "size_plus_indexes": "200 kB", "rows": int64(400), "system_object": true},
		).
		On("get_views",
			core.Row{"s_name": "app", "v_name": "active_users", "view_type": "view", "description": "seen this week", "system_object": false},
		).
		On("get_columns",
			core.Row{"s_name": "app", "source_type": "table", "t_name": "orders", "column_name": "id", "position": int64(1), "data_type": "bigint", "system_object": false},
			core.Row{"s_name": "app", "source_type": "table", "t_name": "users", "column_name": "id", "position": int64(1), "data_type": "integer", "description": "primary key", "system_object": false},
			core.Row{"s_name": "app", "source_type": "table", "t_name": "users", "column_name": "email", "position": int64(2), "data_type": "text", "system_object": false},
			core.Row{"s_name": "audit", "source_type": "table", "t_name": "users", "column_name": "changed_at", "position": int64(1), "data_type": "timestamptz", "system_object": false},
			core.Row{"s_name": "app", "source_type": "view", "t_name": "active_users", "column_name": "id", "position": int64(1), "data_type": "integer", "system_object": false},
		).
		On("get_functions",
			core.Row{"s_name": "app", "f_name": "touch_updated_at", "result_data_types": "trigger", "argument_data_types": "", "system_object": false},
		)
}
