// Package features provides shared test utilities for UI feature tests.
package features

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pgddui/pgddui/internal/catalog"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/internal/testutil"
	"github.com/pgddui/pgddui/internal/ui/features/common"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/internal/visibility"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/stretchr/testify/require"
)

// TestSessionSecret signs cookies in handler tests.
const TestSessionSecret = "test-secret-key-32-bytes-long!!"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Querier *testutil.FakeQuerier
	Deps    *common.Deps
}

// SetupTestFixture wires feature dependencies over q. A nil q means the
// sample database.
func SetupTestFixture(t *testing.T, q *testutil.FakeQuerier) *TestFixture {
	t.Helper()

	if q == nil {
		q = testutil.SampleDatabase()
	}
	logger := testutil.NewTestLogger(t)

	renderer, err := pages.NewRenderer("")
	require.NoError(t, err)

	gate := extension.NewGate(q, true, logger)
	target := core.AdapterConfig{Host: "localhost", Port: 5432, Database: "pgdd_test"}

	return &TestFixture{
		Querier: q,
		Deps: &common.Deps{
			Reader:     catalog.NewReader(q, "", logger),
			Stats:      catalog.NewStatsSource(q, gate, target, logger),
			Gate:       gate,
			Pages:      renderer,
			Visibility: visibility.NewSessionStore(visibility.NewCookieStore(TestSessionSecret, false), logger),
			Logger:     logger,
		},
	}
}

// Router returns a chi router with the visibility middleware installed.
// setup registers the feature routes under test.
func (f *TestFixture) Router(t *testing.T, setup func(chi.Router, *common.Deps) error) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	r.Use(f.Deps.Visibility.Middleware)
	require.NoError(t, setup(r, f.Deps))
	return r
}

// Do performs a request against h, sending the given cookies.
func Do(h http.Handler, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Cookies returns the cookies set by a response. When a name is set more
// than once the last value wins, as in a browser.
func Cookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	index := make(map[string]int)
	for _, c := range rec.Result().Cookies() {
		if i, ok := index[c.Name]; ok {
			out[i] = c
			continue
		}
		index[c.Name] = len(out)
		out = append(out, c)
	}
	return out
}
