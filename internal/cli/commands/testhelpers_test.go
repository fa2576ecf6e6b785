package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pgddui/pgddui/internal/cli/config"
	"github.com/pgddui/pgddui/internal/testutil"
	"github.com/pgddui/pgddui/pkg/adapter"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/spf13/cobra"

	_ "github.com/pgddui/pgddui/pkg/adapters/postgres"
)

func testConfig(t *testing.T, format string) *config.Config {
	t.Helper()
	return &config.Config{
		Target: &core.TargetConfig{
			Type:     "postgres",
			Host:     "db.local",
			Port:     5432,
			Database: "pgdd",
		},
		CatalogSchema: "dd_ui",
		CheckVersion:  true,
		BuildPath:     t.TempDir(),
		OutputFormat:  format,
		UI:            config.UIConfig{Port: 5000},
		Docs:          config.DocsConfig{Port: 8080},
	}
}

// useDatabase makes commands connect to q, or fail with err.
func useDatabase(t *testing.T, q adapter.Querier, err error) *int {
	t.Helper()
	calls := 0
	prev := connectTarget
	connectTarget = func(_ context.Context, _ *core.TargetConfig, _ *slog.Logger) (adapter.Querier, func(), error) {
		calls++
		return q, func() {}, err
	}
	t.Cleanup(func() { connectTarget = prev })
	return &calls
}

type result struct {
	out    string
	errOut string
	err    error
}

// execute runs cmd with cfg in its context, the way the root command does.
// Usage and error echoing stay off as on the root, so out holds only what
// the command itself printed.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) result {
	t.Helper()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func sampleDB() *testutil.FakeQuerier {
	return testutil.SampleDatabase()
}
