package commands

import (
	"fmt"
	"strconv"

	"github.com/pgddui/pgddui/internal/cli/output"
	"github.com/pgddui/pgddui/internal/docs"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/spf13/cobra"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Dir        string
	ShowSystem bool
	Minify     bool
	Markdown   bool
	SQLite     bool
}

// BuildSummary is the JSON output of the build command.
type BuildSummary struct {
	OutputDir string             `json:"output_dir"`
	Counts    map[string]int     `json:"counts"`
	Files     []string           `json:"files"`
	Stats     core.DatabaseStats `json:"stats"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the static data dictionary site",
		Long: `Generate a static HTML copy of the data dictionary.

The site contains one page per object kind, the schema trees, and the
row sets as .json and .js files so the pages work straight from disk.

Optional outputs:
  --markdown  DATA_DICTIONARY.md converted from the rendered pages
  --sqlite    pgdd.db, a queryable SQLite snapshot of the catalog`,
		Example: `  # Build into build_path (default ./_build)
  pgddui build

  # Build a minified site with a markdown export
  pgddui build --dir ./public --minify --markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Output directory (default: build_path)")
	cmd.Flags().BoolVar(&opts.ShowSystem, "show-system", false, "Include PostgreSQL system objects")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "Minify CSS and JS assets (default: docs.minify)")
	cmd.Flags().BoolVar(&opts.Markdown, "markdown", false, "Also write DATA_DICTIONARY.md (default: docs.markdown)")
	cmd.Flags().BoolVar(&opts.SQLite, "sqlite", false, "Also write the pgdd.db snapshot (default: docs.sqlite)")

	return cmd
}

// siteOptions merges flags over the docs config section.
func siteOptions(cmd *cobra.Command, cmdCtx *CommandContext, dir string, showSystem bool) docs.Options {
	cfg := cmdCtx.Cfg
	opts := docs.Options{
		OutputDir:  cfg.BuildPath,
		ShowSystem: showSystem,
		Minify:     cfg.Docs.Minify,
		Markdown:   cfg.Docs.Markdown,
		SQLite:     cfg.Docs.SQLite,
	}
	if dir != "" {
		opts.OutputDir = dir
	}
	flags := cmd.Flags()
	if flags.Changed("minify") {
		opts.Minify, _ = flags.GetBool("minify")
	}
	if flags.Changed("markdown") {
		opts.Markdown, _ = flags.GetBool("markdown")
	}
	if flags.Changed("sqlite") {
		opts.SQLite, _ = flags.GetBool("sqlite")
	}
	return opts
}

func newGenerator(cmdCtx *CommandContext) (*docs.Generator, error) {
	renderer, err := pages.NewRenderer(cmdCtx.Cfg.UI.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}
	return docs.NewGenerator(cmdCtx.Reader, cmdCtx.Stats, cmdCtx.Gate, renderer, cmdCtx.Logger), nil
}

func runBuild(cmd *cobra.Command, opts *BuildOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	gen, err := newGenerator(cmdCtx)
	if err != nil {
		return err
	}

	result, err := gen.Build(cmd.Context(), siteOptions(cmd, cmdCtx, opts.Dir, opts.ShowSystem))
	if err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}

	r := cmdCtx.Renderer
	summary := BuildSummary{
		OutputDir: result.OutputDir,
		Counts:    make(map[string]int, len(result.Counts)),
		Files:     result.Files,
		Stats:     result.Stats,
	}
	for kind, n := range result.Counts {
		summary.Counts[kind.Plural()] = n
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(summary)
	}

	r.Header(1, "Site built")
	r.KeyValue("Output", result.OutputDir)
	r.KeyValue("Database", fmt.Sprintf("%s on %s:%d", result.Stats.Database, result.Stats.Host, result.Stats.Port))
	for _, kind := range core.AllKinds {
		r.KeyValue(titleCase(kind.Plural()), strconv.Itoa(result.Counts[kind]))
	}
	r.KeyValue("Files", strconv.Itoa(len(result.Files)))
	r.Println()
	r.Success(fmt.Sprintf("Open %s/index.html in your browser", result.OutputDir))
	return nil
}
