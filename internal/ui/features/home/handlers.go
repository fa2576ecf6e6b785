package home

import (
	"net/http"

	"github.com/pgddui/pgddui/internal/ui/features/common"
	"github.com/pgddui/pgddui/internal/ui/pages"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// HomePage renders the database stats page.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Stats.Stats(r.Context())
	if err != nil {
		h.deps.RenderError(w, r, err)
		return
	}

	data := h.deps.PageData(r, indexTitle, "index")
	data.Stats = stats
	h.deps.Render(w, r, http.StatusOK, pages.PageIndex, data)
}
