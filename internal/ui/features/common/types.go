// Package common provides shared types and utilities for UI features.
package common

import (
	"log/slog"

	"github.com/pgddui/pgddui/internal/catalog"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/internal/visibility"
)

// Deps are the collaborators every feature handler needs.
type Deps struct {
	Reader     *catalog.Reader
	Stats      *catalog.StatsSource
	Gate       *extension.Gate
	Pages      *pages.Renderer
	Visibility *visibility.SessionStore
	Logger     *slog.Logger

	// Dev makes pages subscribe to the live reload stream.
	Dev bool
}

// Log returns the logger, or a discarding one.
func (d *Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}
