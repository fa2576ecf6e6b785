package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/pkg/adapter"
	"github.com/pgddui/pgddui/pkg/core"
)

const (
	serverVersionFullQuery  = "SELECT version()"
	serverVersionShortQuery = "SHOW server_version"
)

// StatsSource computes the DatabaseStats snapshot once per process.
// A failed computation is not cached; the next call retries.
type StatsSource struct {
	querier adapter.Querier
	gate    *extension.Gate
	target  core.AdapterConfig
	logger  *slog.Logger

	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	cached *core.DatabaseStats
}

// NewStatsSource creates a stats source for the database described by target.
func NewStatsSource(q adapter.Querier, gate *extension.Gate, target core.AdapterConfig, logger *slog.Logger) *StatsSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StatsSource{
		querier: q,
		gate:    gate,
		target:  target,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Stats returns the cached snapshot, computing it on first use.
func (s *StatsSource) Stats(ctx context.Context) (core.DatabaseStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return *s.cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return core.DatabaseStats{}, err
	}
	s.cached = &stats
	s.logger.Debug("database stats computed",
		slog.String("pgdd_version", stats.PgDDVersion),
		slog.String("build_id", stats.BuildID))
	return stats, nil
}

func (s *StatsSource) compute(ctx context.Context) (core.DatabaseStats, error) {
	version, err := s.gate.CurrentVersion(ctx)
	if err != nil {
		return core.DatabaseStats{}, fmt.Errorf("failed to read pgdd version: %w", err)
	}

	full, err := s.scalar(ctx, serverVersionFullQuery, "version")
	if err != nil {
		return core.DatabaseStats{}, err
	}
	short, err := s.scalar(ctx, serverVersionShortQuery, "server_version")
	if err != nil {
		return core.DatabaseStats{}, err
	}

	return core.DatabaseStats{
		PgDDVersion:    version.String(),
		PgVersionFull:  full,
		PgVersionShort: short,
		Host:           s.target.Host,
		Port:           s.target.Port,
		Database:       s.target.Database,
		GeneratedAt:    s.now().Format(core.StatsTimeLayout),
		BuildID:        s.newID(),
	}, nil
}

func (s *StatsSource) scalar(ctx context.Context, query, column string) (string, error) {
	row, err := s.querier.SelectOne(ctx, query, nil)
	if err != nil {
		return "", fmt.Errorf("failed to run %q: %w", query, err)
	}
	if row == nil {
		return "", fmt.Errorf("failed to run %q: no rows returned", query)
	}
	v, ok := row[column]
	if !ok || v == nil {
		return "", fmt.Errorf("failed to run %q: column %s missing", query, column)
	}
	return fmt.Sprint(v), nil
}
