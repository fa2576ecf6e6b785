package commands

import (
	"strconv"

	"github.com/pgddui/pgddui/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database and extension versions",
		Long: `Show the database summary printed in every page footer: PgDD and
PostgreSQL versions, connection target and generation time.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := cmdCtx.Stats.Stats(cmd.Context())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(stats)
	}

	r.Header(1, "Database")
	r.KeyValue("PgDD version", stats.PgDDVersion)
	r.KeyValue("PostgreSQL", stats.PgVersionShort)
	r.KeyValue("Server", stats.PgVersionFull)
	r.KeyValue("Host", stats.Host)
	r.KeyValue("Port", strconv.Itoa(stats.Port))
	r.KeyValue("Database", stats.Database)
	r.KeyValue("Generated at", stats.GeneratedAt)
	if stats.BuildID != "" {
		r.KeyValue("Build ID", stats.BuildID)
	}
	return nil
}
