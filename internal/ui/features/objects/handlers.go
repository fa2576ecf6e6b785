package objects

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/pgddui/pgddui/internal/ui/features/common"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/internal/visibility"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Handlers provides HTTP handlers for the listing pages.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

type kindKey struct{}

// RequireKind 404s unless the path names an object kind in its plural form.
// It runs ahead of the extension gate so a mistyped URL never reports a
// database problem.
func (h *Handlers) RequireKind(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, kindParam)
		kind, err := core.ParseKind(raw)
		if err != nil || kind.Plural() != raw {
			h.deps.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), kindKey{}, kind)))
	})
}

// ListPage renders the listing of the kind accepted by RequireKind.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := r.Context().Value(kindKey{}).(core.ObjectKind)
	if !ok {
		h.deps.NotFound(w, r)
		return
	}

	snap, err := h.deps.Reader.Fetch(r.Context(), kind, visibility.FromContext(r.Context()))
	if err != nil {
		h.deps.RenderError(w, r, err)
		return
	}

	listing, err := dictionary.NewListing(kind, snap)
	if err != nil {
		h.deps.RenderError(w, r, err)
		return
	}

	q := r.URL.Query().Get(queryParam)
	if q != "" {
		listing = listing.Filter(q)
	}

	// Filter input: swap the table in place.
	if r.Header.Get(datastarHeader) != "" {
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElementTempl(pages.ListingTable(&listing)); err != nil {
			h.deps.Log().Error("failed to patch listing", "kind", kind, "error", err)
		}
		return
	}

	title := cases.Title(language.English).String(kind.Plural())
	data := h.deps.PageData(r, title, kind.Plural())
	data.Listing = &listing
	data.Query = q
	h.deps.Render(w, r, http.StatusOK, pages.PageListing, data)
}
