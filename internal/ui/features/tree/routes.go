package tree

import (
	"github.com/go-chi/chi/v5"
	"github.com/pgddui/pgddui/internal/ui/features/common"
)

// SetupRoutes configures routes for the tree feature.
func SetupRoutes(router chi.Router, deps *common.Deps) error {
	handlers := NewHandlers(deps)

	router.Get("/tree", handlers.TreePage)
	router.Get(TablesPayloadPath, handlers.TablesPayload)
	router.Get(ViewsPayloadPath, handlers.ViewsPayload)

	return nil
}
