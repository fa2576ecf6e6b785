package common

import (
	"encoding/json"
	"net/http"

	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/internal/visibility"
)

// PageData assembles the common page fields for a request. A stats failure
// leaves the footer empty rather than failing the page.
func (d *Deps) PageData(r *http.Request, title, active string) pages.PageData {
	data := pages.PageData{
		Title:      title,
		Active:     active,
		ShowSystem: visibility.FromContext(r.Context()),
		LiveReload: d.Dev,
	}
	if d.Stats != nil {
		stats, err := d.Stats.Stats(r.Context())
		if err != nil {
			d.Log().Warn("database stats unavailable", "error", err)
		} else {
			data.Stats = stats
		}
	}
	return data
}

// Render writes a full HTML page.
func (d *Deps) Render(w http.ResponseWriter, r *http.Request, status int, name string, data pages.PageData) {
	c, err := d.Pages.Page(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		d.Log().Error("failed to render page", "page", name, "error", err)
	}
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
