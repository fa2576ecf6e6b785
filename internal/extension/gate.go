package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pgddui/pgddui/pkg/adapter"
)

// ErrExtensionMissing is returned when the pgdd extension is not installed,
// or its version cannot be read.
var ErrExtensionMissing = errors.New("pgdd extension is not installed")

// OutdatedError is returned when the installed extension is older than the
// minimum supported version.
type OutdatedError struct {
	Installed Version
	Required  Version
}

func (e *OutdatedError) Error() string {
	return fmt.Sprintf("PgDD extension version %s outdated. Requires at least %s", e.Installed, e.Required)
}

const versionQuery = `SELECT extversion FROM pg_catalog.pg_extension WHERE extname = 'pgdd' LIMIT 1`

// Gate decides whether the catalog extension can be trusted.
type Gate struct {
	querier adapter.Querier
	enabled bool
	minimum Version
	logger  *slog.Logger
}

// NewGate creates a version gate. When enabled is false the installed version
// is never queried and the gate reports the minimum supported version, for
// installs where the extension cannot be used (e.g. hosted PostgreSQL).
func NewGate(q adapter.Querier, enabled bool, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{
		querier: q,
		enabled: enabled,
		minimum: MustParseVersion(MinSupported),
		logger:  logger,
	}
}

// MinSupportedVersion returns the oldest supported extension version.
func (g *Gate) MinSupportedVersion() Version {
	return g.minimum
}

// CurrentVersion returns the installed extension version.
//
// A missing extension row, a NULL or unparsable extversion, or a failed query
// all yield ErrExtensionMissing. A failed query additionally wraps the
// underlying data-source error so callers can tell the two apart.
func (g *Gate) CurrentVersion(ctx context.Context) (Version, error) {
	if !g.enabled {
		g.logger.Warn("PgDD version check disabled, defaulting to min supported", slog.String("version", g.minimum.String()))
		return g.minimum, nil
	}

	row, err := g.querier.SelectOne(ctx, versionQuery, nil)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %w", ErrExtensionMissing, err)
	}
	if row == nil {
		return Version{}, ErrExtensionMissing
	}

	raw, ok := row["extversion"].(string)
	if !ok || raw == "" {
		return Version{}, fmt.Errorf("%w: extversion not reported", ErrExtensionMissing)
	}

	v, err := ParseVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %w", ErrExtensionMissing, err)
	}
	return v, nil
}

// Check verifies the installed extension is compatible and returns its version.
// It fails with ErrExtensionMissing or *OutdatedError.
func (g *Gate) Check(ctx context.Context) (Version, error) {
	installed, err := g.CurrentVersion(ctx)
	if err != nil {
		return Version{}, err
	}
	if !IsCompatible(installed, g.minimum) {
		return installed, &OutdatedError{Installed: installed, Required: g.minimum}
	}
	return installed, nil
}
