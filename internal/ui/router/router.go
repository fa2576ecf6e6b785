// Package router sets up HTTP routes for the UI server.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/pgddui/pgddui/internal/ui/features/common"
	homeFeature "github.com/pgddui/pgddui/internal/ui/features/home"
	objectsFeature "github.com/pgddui/pgddui/internal/ui/features/objects"
	settingsFeature "github.com/pgddui/pgddui/internal/ui/features/settings"
	treeFeature "github.com/pgddui/pgddui/internal/ui/features/tree"
	"github.com/pgddui/pgddui/internal/ui/notifier"
	"github.com/pgddui/pgddui/internal/ui/resources"
)

// HotReloadPath triggers a reload of every open page in dev mode.
const HotReloadPath = "/hotreload"

// SetupRoutes configures all routes for the UI server. notify is only used
// in dev mode and may be nil otherwise.
func SetupRoutes(router chi.Router, deps *common.Deps, notify *notifier.Notifier, isDev bool) error {
	if isDev && notify != nil {
		router.Get(notifier.ReloadPath, notify.ReloadHandler())
		router.Get(HotReloadPath, notify.TriggerHandler())
		router.Post(HotReloadPath, notify.TriggerHandler())
	}

	router.Handle("/static/*", resources.Handler())
	router.NotFound(deps.NotFound)

	var setupErr error
	router.Group(func(r chi.Router) {
		r.Use(deps.Visibility.Middleware)

		// The toggle needs no extension. Listings gate after checking the kind.
		for _, setup := range []func(chi.Router, *common.Deps) error{
			settingsFeature.SetupRoutes,
			objectsFeature.SetupRoutes,
		} {
			if err := setup(r, deps); err != nil {
				setupErr = err
				return
			}
		}

		r.Group(func(r chi.Router) {
			r.Use(deps.RequireExtension)

			for _, setup := range []func(chi.Router, *common.Deps) error{
				homeFeature.SetupRoutes,
				treeFeature.SetupRoutes,
			} {
				if err := setup(r, deps); err != nil {
					setupErr = err
					return
				}
			}
		})
	})
	return setupErr
}
