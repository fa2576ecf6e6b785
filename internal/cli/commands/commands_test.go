package commands

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pgddui/pgddui/internal/cli/browse"
	"github.com/pgddui/pgddui/internal/cli/output"
	clitest "github.com/pgddui/pgddui/internal/cli/testutil"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/internal/testutil"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestListCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		want       []string
		notWant    []string
		errIs      error
		noConnect  bool
		wantHeader string
	}{
		{
			name:       "user tables",
			args:       []string{"tables"},
			want:       []string{"orders", "users", "audit"},
			notWant:    []string{"pg_class"},
			wantHeader: "# Tables (3)",
		},
		{
			name:       "singular kind accepted",
			args:       []string{"schema"},
			want:       []string{"app", "Application data"},
			notWant:    []string{"pg_catalog"},
			wantHeader: "# Schemas (2)",
		},
		{
			name:       "system objects",
			args:       []string{"tables", "--show-system"},
			want:       []string{"pg_class"},
			wantHeader: "# Tables (4)",
		},
		{
			name:       "fuzzy filter",
			args:       []string{"tables", "--filter", "ord"},
			want:       []string{"orders"},
			notWant:    []string{"audit"},
			wantHeader: "# Tables (1)",
		},
		{
			name:       "no match",
			args:       []string{"functions", "-f", "zzz"},
			want:       []string{`No functions match "zzz"`},
			wantHeader: "# Functions (0)",
		},
		{
			name:      "unknown kind",
			args:      []string{"indexes"},
			errIs:     core.ErrUnknownKind,
			noConnect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := useDatabase(t, sampleDB(), nil)

			res := execute(t, NewListCommand(), testConfig(t, "markdown"), tt.args...)
			if tt.errIs != nil {
				require.Error(t, res.err)
				assert.ErrorIs(t, res.err, tt.errIs)
				if tt.noConnect {
					assert.Zero(t, *calls)
				}
				return
			}
			require.NoError(t, res.err)
			assert.Contains(t, res.out, tt.wantHeader)
			for _, w := range tt.want {
				assert.Contains(t, res.out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, res.out, nw)
			}
		})
	}
}

func TestListCommand_JSON(t *testing.T) {
	useDatabase(t, sampleDB(), nil)

	res := execute(t, NewListCommand(), testConfig(t, "json"), "tables")
	require.NoError(t, res.err)

	var rows []ListRow
	require.NoError(t, json.Unmarshal([]byte(res.out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "app.orders", rows[0].Key)
	assert.Equal(t, "orders", rows[0].Fields["Table"])
	assert.Equal(t, "42", rows[0].Fields["Rows"])
	assert.Equal(t, "audit.users", rows[2].Key)
}

func TestListCommand_OutdatedExtension(t *testing.T) {
	q := testutil.NewFakeQuerier().On("pg_extension", core.Row{"extversion": "0.2"})
	useDatabase(t, q, nil)

	res := execute(t, NewListCommand(), testConfig(t, "markdown"), "tables")
	require.Error(t, res.err)
	var outdated *extension.OutdatedError
	assert.True(t, errors.As(res.err, &outdated))
	assert.Zero(t, q.CallCount("get_tables"))
}

func TestListCommand_ConnectionFailure(t *testing.T) {
	useDatabase(t, nil, core.ErrDataSourceUnavailable)

	res := execute(t, NewListCommand(), testConfig(t, "markdown"), "tables")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, core.ErrDataSourceUnavailable)
	assert.Contains(t, res.err.Error(), "postgres://db.local:5432/pgdd")
}

func TestTreeCommand(t *testing.T) {
	t.Run("tables", func(t *testing.T) {
		useDatabase(t, sampleDB(), nil)

		res := execute(t, NewTreeCommand(), testConfig(t, "markdown"))
		require.NoError(t, res.err)

		var tree []map[string]any
		require.NoError(t, json.Unmarshal([]byte(res.out), &tree))
		require.Len(t, tree, 2)
		assert.Contains(t, tree[0], "app: Application data (10 MB)")
	})

	t.Run("views", func(t *testing.T) {
		useDatabase(t, sampleDB(), nil)

		res := execute(t, NewTreeCommand(), testConfig(t, "markdown"), "--views")
		require.NoError(t, res.err)
		assert.JSONEq(t,
			`[{"app: Application data":[{"active_users: seen this week":["id (integer)"]}]},{"audit":[]}]`,
			res.out)
	})

	t.Run("system objects", func(t *testing.T) {
		useDatabase(t, sampleDB(), nil)

		res := execute(t, NewTreeCommand(), testConfig(t, "markdown"), "--show-system")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "pg_class")
	})
}

func TestStatsCommand(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		useDatabase(t, sampleDB(), nil)

		res := execute(t, NewStatsCommand(), testConfig(t, "markdown"))
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "- **PgDD version**: 0.5")
		assert.Contains(t, res.out, "- **PostgreSQL**: 16.2")
		assert.Contains(t, res.out, "- **Host**: db.local")
	})

	t.Run("json", func(t *testing.T) {
		useDatabase(t, sampleDB(), nil)

		res := execute(t, NewStatsCommand(), testConfig(t, "json"))
		require.NoError(t, res.err)

		var stats core.DatabaseStats
		require.NoError(t, json.Unmarshal([]byte(res.out), &stats))
		assert.Equal(t, "0.5", stats.PgDDVersion)
		assert.Equal(t, "pgdd", stats.Database)
		assert.Equal(t, 5432, stats.Port)
		assert.NotEmpty(t, stats.BuildID)
	})
}

func TestDoctorCommand(t *testing.T) {
	tests := []struct {
		name        string
		querier     *testutil.FakeQuerier
		connectErr  error
		mutate      func(cfgDatabase *string, checkVersion *bool)
		wantHealthy bool
		want        map[string]string
	}{
		{
			name:        "healthy",
			querier:     sampleDB(),
			wantHealthy: true,
			want: map[string]string{
				"Configuration":     statusPass,
				"Connection":        statusPass,
				"PgDD extension":    statusPass,
				"Catalog functions": statusPass,
				"Session secret":    statusWarn,
			},
		},
		{
			name:       "connection refused",
			connectErr: core.ErrDataSourceUnavailable,
			want: map[string]string{
				"Connection":        statusFail,
				"PgDD extension":    statusSkip,
				"Catalog functions": statusSkip,
			},
		},
		{
			name:    "outdated extension",
			querier: testutil.SampleDatabase().On("pg_extension", core.Row{"extversion": "0.2"}),
			want: map[string]string{
				"PgDD extension":    statusFail,
				"Catalog functions": statusPass,
			},
		},
		{
			name:    "version check disabled",
			querier: sampleDB(),
			mutate: func(_ *string, checkVersion *bool) {
				*checkVersion = false
			},
			wantHealthy: true,
			want: map[string]string{
				"PgDD extension": statusWarn,
			},
		},
		{
			name:    "missing catalog functions",
			querier: sampleDB().Fail("get_schemas", core.ErrDataSourceUnavailable),
			want: map[string]string{
				"Catalog functions": statusFail,
			},
		},
		{
			name: "invalid configuration",
			mutate: func(database *string, _ *bool) {
				*database = ""
			},
			want: map[string]string{
				"Configuration": statusFail,
				"Connection":    statusSkip,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.querier != nil {
				useDatabase(t, tt.querier, tt.connectErr)
			} else {
				useDatabase(t, nil, tt.connectErr)
			}
			cfg := testConfig(t, "json")
			if tt.mutate != nil {
				tt.mutate(&cfg.Target.Database, &cfg.CheckVersion)
			}

			res := execute(t, NewDoctorCommand(), cfg)
			if tt.wantHealthy {
				require.NoError(t, res.err)
			} else {
				require.Error(t, res.err)
				assert.Contains(t, res.err.Error(), "failing check")
				assert.NotContains(t, res.out, "Usage:")
			}

			var report DoctorReport
			require.NoError(t, json.Unmarshal([]byte(res.out), &report))
			assert.Equal(t, tt.wantHealthy, report.Healthy)

			got := make(map[string]string, len(report.Checks))
			for _, c := range report.Checks {
				got[c.Name] = c.Status
			}
			for name, status := range tt.want {
				assert.Equal(t, status, got[name], "check %q", name)
			}
		})
	}
}

func TestDoctorCommand_Markdown(t *testing.T) {
	useDatabase(t, sampleDB(), nil)
	cfg := testConfig(t, "markdown")
	cfg.UI.SessionSecret = "s3cret"

	res := execute(t, NewDoctorCommand(), cfg)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "- [ok] Connection")
	assert.Contains(t, res.out, "- [ok] PgDD extension: 0.5")
	assert.Contains(t, res.out, "- [ok] Session secret")
	assert.Contains(t, res.out, "Everything looks good")
}

func TestBuildCommand(t *testing.T) {
	useDatabase(t, sampleDB(), nil)
	cfg := testConfig(t, "markdown")
	dir := filepath.Join(t.TempDir(), "site")

	res := execute(t, NewBuildCommand(), cfg, "--dir", dir, "--markdown")
	require.NoError(t, res.err)

	assert.Contains(t, res.out, "# Site Built")
	assert.Contains(t, res.out, "- **Tables**: 3")
	assert.FileExists(t, filepath.Join(dir, "index.html"))
	assert.FileExists(t, filepath.Join(dir, "tables.html"))
	assert.FileExists(t, filepath.Join(dir, "DATA_DICTIONARY.md"))
	assert.NoFileExists(t, filepath.Join(dir, "pgdd.db"))
}

func TestBuildCommand_JSONUsesBuildPath(t *testing.T) {
	useDatabase(t, sampleDB(), nil)
	cfg := testConfig(t, "json")

	res := execute(t, NewBuildCommand(), cfg)
	require.NoError(t, res.err)

	var summary BuildSummary
	require.NoError(t, json.Unmarshal([]byte(res.out), &summary))
	assert.Equal(t, cfg.BuildPath, summary.OutputDir)
	assert.Equal(t, 2, summary.Counts["schemas"])
	assert.Equal(t, 1, summary.Counts["views"])
	assert.NotEmpty(t, summary.Files)
}

func TestSiteOptions(t *testing.T) {
	cfg := testConfig(t, "markdown")
	cfg.Docs.Minify = true
	cfg.Docs.SQLite = true
	cmdCtx := &CommandContext{Cfg: cfg}

	cmd := NewBuildCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--sqlite=false", "--markdown"}))

	opts := siteOptions(cmd, cmdCtx, "", true)
	assert.Equal(t, cfg.BuildPath, opts.OutputDir)
	assert.True(t, opts.ShowSystem)
	assert.True(t, opts.Minify, "unset flag keeps the config value")
	assert.True(t, opts.Markdown)
	assert.False(t, opts.SQLite, "set flag overrides the config value")

	opts = siteOptions(cmd, cmdCtx, "/tmp/out", false)
	assert.Equal(t, "/tmp/out", opts.OutputDir)
}

func TestInitCommand(t *testing.T) {
	useDatabase(t, nil, errors.New("init must not connect"))
	dir := filepath.Join(t.TempDir(), "project")
	cfg := testConfig(t, "markdown")
	cfg.Target.Database = "warehouse"

	res := execute(t, NewInitCommand(), cfg, dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "pgddui configured!")

	data, err := os.ReadFile(filepath.Join(dir, "pgddui.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# pgddui configuration.")

	var sample sampleConfig
	require.NoError(t, yaml.Unmarshal(data, &sample))
	assert.Equal(t, "warehouse", sample.Target.Database)
	assert.Equal(t, "db.local", sample.Target.Host)
	assert.Equal(t, "${PGDDUI_DB_PASSWORD}", sample.Target.Password)
	assert.Equal(t, "dd_ui", sample.CatalogSchema)
	assert.True(t, sample.CheckVersion)
	assert.Equal(t, 5000, sample.UI.Port)

	res = execute(t, NewInitCommand(), cfg, dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	res = execute(t, NewInitCommand(), cfg, dir, "--force")
	require.NoError(t, res.err)
}

func TestBrowseCommand(t *testing.T) {
	useDatabase(t, sampleDB(), nil)

	var got *browse.Model
	prev := runBrowser
	runBrowser = func(_ *cobra.Command, m browse.Model) error {
		got = &m
		return nil
	}
	t.Cleanup(func() { runBrowser = prev })

	res := execute(t, NewBrowseCommand(), testConfig(t, "markdown"))
	require.NoError(t, res.err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"app", "audit"}, got.Titles())
}

func TestNewCommandContextLenient(t *testing.T) {
	useDatabase(t, testutil.NewFakeQuerier(), core.ErrDataSourceUnavailable)

	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContextLenient(cmd)
			require.NoError(t, err)
			defer cleanup()
			assert.NotNil(t, cc.Reader)
			assert.NotNil(t, cc.Gate)
			assert.NotNil(t, cc.Stats)

			_, _, err = NewCommandContext(cmd)
			return err
		},
	}

	res := execute(t, cmd, testConfig(t, "markdown"))
	assert.ErrorIs(t, res.err, core.ErrDataSourceUnavailable)
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewUICommand(), use: "ui", flags: []string{"port", "no-browser", "dev"}},
		{cmd: NewBuildCommand(), use: "build", flags: []string{"dir", "show-system", "minify", "markdown", "sqlite"}},
		{cmd: NewListCommand(), use: "list <kind>", flags: []string{"filter", "show-system"}},
		{cmd: NewTreeCommand(), use: "tree", flags: []string{"views", "show-system"}},
		{cmd: NewStatsCommand(), use: "stats"},
		{cmd: NewDoctorCommand(), use: "doctor"},
		{cmd: NewBrowseCommand(), use: "browse", flags: []string{"show-system"}},
		{cmd: NewInitCommand(), use: "init [directory]", flags: []string{"force"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			for _, f := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(f), "flag %q should exist", f)
			}
		})
	}

	serve, _, err := NewDocsCommand().Find([]string{"serve"})
	require.NoError(t, err)
	for _, f := range []string{"dir", "port", "watch", "show-system", "minify"} {
		assert.NotNil(t, serve.Flags().Lookup(f), "flag %q should exist", f)
	}
}

func TestCommands_OutputModes(t *testing.T) {
	commands := map[string]func() *cobra.Command{
		"list":   NewListCommand,
		"stats":  NewStatsCommand,
		"doctor": NewDoctorCommand,
	}

	for name, newCmd := range commands {
		for _, mode := range []output.Mode{output.ModeMarkdown, output.ModeJSON} {
			t.Run(name+"/"+string(mode), func(t *testing.T) {
				useDatabase(t, sampleDB(), nil)
				cfg := testConfig(t, string(mode))
				cfg.UI.SessionSecret = "s3cret"

				var args []string
				if name == "list" {
					args = []string{"tables"}
				}
				res := execute(t, newCmd(), cfg, args...)
				require.NoError(t, res.err)
				clitest.AssertOutputMode(t, res.out, mode)
			})
		}
	}
}
