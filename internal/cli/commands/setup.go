package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pgddui/pgddui/internal/catalog"
	"github.com/pgddui/pgddui/internal/cli/config"
	"github.com/pgddui/pgddui/internal/cli/output"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/pkg/adapter"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Command annotations read by the root command before loading config.
const (
	// AnnotationSkipConfig skips config loading entirely.
	AnnotationSkipConfig = "pgddui/skip-config"
	// AnnotationLenientConfig loads config without validating it.
	AnnotationLenientConfig = "pgddui/lenient-config"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Querier  adapter.Querier
	Gate     *extension.Gate
	Reader   *catalog.Reader
	Stats    *catalog.StatsSource
}

// connectTarget opens the target database. The returned querier is usable
// even when err is non-nil; its queries then fail as unavailable. Tests
// replace it.
var connectTarget = func(ctx context.Context, target *core.TargetConfig, logger *slog.Logger) (adapter.Querier, func(), error) {
	a, err := adapter.NewAdapter(target.Type, logger)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() { _ = a.Close() }
	if err := a.Connect(ctx, target.AdapterConfig()); err != nil {
		return a, cleanup, err
	}
	return a, cleanup, nil
}

// NewCommandContext connects to the target and wires the catalog reader,
// version gate and stats source. The cleanup function must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	return newCommandContext(cmd, true)
}

// NewCommandContextLenient is NewCommandContext for long-running servers:
// a failed connection is logged and the context is returned anyway, so
// requests report the database as unavailable instead of the process exiting.
func NewCommandContextLenient(cmd *cobra.Command) (*CommandContext, func(), error) {
	return newCommandContext(cmd, false)
}

func newCommandContext(cmd *cobra.Command, strict bool) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutDB(cmd)

	q, cleanup, err := connectTarget(cmd.Context(), cc.Cfg.Target, cc.Logger)
	if err != nil {
		if strict || q == nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to connect to %s: %w", describeTarget(cc.Cfg.Target), err)
		}
		cc.Logger.Warn("database unavailable, pages will report it until it comes back",
			slog.String("target", describeTarget(cc.Cfg.Target)),
			slog.String("error", err.Error()))
	}

	cc.Querier = q
	cc.Gate = extension.NewGate(q, cc.Cfg.CheckVersion, cc.Logger)
	cc.Reader = catalog.NewReader(q, cc.Cfg.CatalogSchema, cc.Logger)
	cc.Stats = catalog.NewStatsSource(q, cc.Gate, cc.Cfg.Target.AdapterConfig(), cc.Logger)

	return cc, cleanup, nil
}

// NewCommandContextWithoutDB creates a CommandContext without a database
// connection. Useful for commands that don't query the catalog.
func NewCommandContextWithoutDB(cmd *cobra.Command) *CommandContext {
	cfg := getConfig(cmd)
	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// getConfig returns the configuration loaded by the root command, or a
// defaulted one when the command runs standalone.
func getConfig(cmd *cobra.Command) *config.Config {
	if cmd.Context() != nil {
		if cfg := config.FromContext(cmd.Context()); cfg != nil {
			return cfg
		}
	}
	cfg, err := config.LoadUnvalidated(config.Options{})
	if err != nil {
		return &config.Config{Target: &core.TargetConfig{}, CheckVersion: true}
	}
	return cfg
}

func describeTarget(t *core.TargetConfig) string {
	if t == nil {
		return "target"
	}
	return fmt.Sprintf("%s://%s:%d/%s", t.Type, t.Host, t.Port, t.Database)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
