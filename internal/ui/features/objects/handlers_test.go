package objects

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pgddui/pgddui/internal/testutil"
	"github.com/pgddui/pgddui/internal/ui/features"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPage(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   []string
		notBody    []string
	}{
		{
			name:       "schemas hide system objects by default",
			path:       "/schemas",
			wantStatus: http.StatusOK,
			wantBody:   []string{"<title>Schemas - PgDD</title>", "Schemas <small>(2)</small>", "Application data"},
			notBody:    []string{"pg_catalog"},
		},
		{
			name:       "tables",
			path:       "/tables",
			wantStatus: http.StatusOK,
			wantBody:   []string{"<td>orders</td>", "<td>users</td>", "user accounts", "<td>100</td>"},
		},
		{
			name:       "views",
			path:       "/views",
			wantStatus: http.StatusOK,
			wantBody:   []string{"active_users", "seen this week"},
		},
		{
			name:       "columns",
			path:       "/columns",
			wantStatus: http.StatusOK,
			wantBody:   []string{"changed_at", "timestamptz"},
		},
		{
			name:       "functions",
			path:       "/functions",
			wantStatus: http.StatusOK,
			wantBody:   []string{"touch_updated_at", "trigger"},
		},
		{
			name:       "filtered",
			path:       "/tables?q=ord",
			wantStatus: http.StatusOK,
			wantBody:   []string{"<td>orders</td>"},
			notBody:    []string{"<td>users</td>"},
		},
		{
			name:       "unknown kind",
			path:       "/widgets",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"404 Not Found"},
		},
		{
			name:       "singular is not a route",
			path:       "/table",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := features.SetupTestFixture(t, nil)
			router := fixture.Router(t, SetupRoutes)

			rec := features.Do(router, http.MethodGet, tt.path)

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
			for _, not := range tt.notBody {
				assert.NotContains(t, rec.Body.String(), not)
			}
		})
	}
}

func TestListPage_ShowSystemFromSession(t *testing.T) {
	fixture := features.SetupTestFixture(t, nil)

	set := features.Do(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, fixture.Deps.Visibility.Set(w, r, true))
	}), http.MethodGet, "/")

	router := fixture.Router(t, SetupRoutes)
	rec := features.Do(router, http.MethodGet, "/schemas", features.Cookies(set)...)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pg_catalog")
	assert.Contains(t, rec.Body.String(), "Schemas <small>(3)</small>")
}

func TestListPage_DataSourceFailure(t *testing.T) {
	fixture := features.SetupTestFixture(t, testutil.SampleDatabase().Fail("get_tables", core.ErrDataSourceUnavailable))
	router := fixture.Router(t, SetupRoutes)

	rec := features.Do(router, http.MethodGet, "/tables")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListPage_KindCheckedBeforeExtension(t *testing.T) {
	tests := []struct {
		name       string
		version    core.Row
		fail       error
		path       string
		wantStatus int
	}{
		{name: "unknown kind, database down", fail: core.ErrDataSourceUnavailable, path: "/widgets", wantStatus: http.StatusNotFound},
		{name: "known kind, database down", fail: core.ErrDataSourceUnavailable, path: "/tables", wantStatus: http.StatusServiceUnavailable},
		{name: "unknown kind, outdated extension", version: core.Row{"extversion": "0.2"}, path: "/widgets", wantStatus: http.StatusNotFound},
		{name: "known kind, outdated extension", version: core.Row{"extversion": "0.2"}, path: "/tables", wantStatus: http.StatusNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testutil.SampleDatabase()
			if tt.fail != nil {
				q = q.Fail("pg_extension", tt.fail)
			}
			if tt.version != nil {
				q = q.On("pg_extension", tt.version)
			}
			fixture := features.SetupTestFixture(t, q)
			router := fixture.Router(t, SetupRoutes)

			rec := features.Do(router, http.MethodGet, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Zero(t, q.CallCount("get_tables"))
		})
	}
}

func TestListPage_DatastarFilter(t *testing.T) {
	fixture := features.SetupTestFixture(t, nil)
	router := fixture.Router(t, SetupRoutes)

	req := httptest.NewRequest(http.MethodGet, "/tables?q=ord", nil)
	req.Header.Set(datastarHeader, "true")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `<div id="listing">`)
	assert.Contains(t, body, "<td>orders</td>")
	assert.NotContains(t, body, "<td>users</td>")
	assert.NotContains(t, body, "<!doctype html>", "only the table is sent")
}
