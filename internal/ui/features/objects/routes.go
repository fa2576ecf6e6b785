package objects

import (
	"github.com/go-chi/chi/v5"
	"github.com/pgddui/pgddui/internal/ui/features/common"
)

// SetupRoutes configures routes for the listing pages. The kind is checked
// before the extension gate.
func SetupRoutes(router chi.Router, deps *common.Deps) error {
	handlers := NewHandlers(deps)

	router.With(handlers.RequireKind, deps.RequireExtension).
		Get("/{"+kindParam+"}", handlers.ListPage)

	return nil
}
