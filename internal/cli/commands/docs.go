package commands

import (
	"fmt"

	"github.com/pgddui/pgddui/internal/docs"
	"github.com/spf13/cobra"
)

// DocsServeOptions holds options for the docs serve command.
type DocsServeOptions struct {
	Dir        string
	Port       int
	Watch      bool
	ShowSystem bool
}

// NewDocsCommand creates the docs command with subcommands.
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Build and serve the static site locally",
		Long: `Work with the static data dictionary site.

Use 'pgddui build' to only generate the files.`,
	}

	cmd.AddCommand(newDocsServeCommand())

	return cmd
}

func newDocsServeCommand() *cobra.Command {
	opts := &DocsServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the static site and serve it",
		Long: `Build the static site, then serve the output directory over HTTP.

With --watch the page templates in ui.templates_dir are watched; every
change rebuilds the site and reloads open pages.`,
		Example: `  # Serve on docs.port (default 8080)
  pgddui docs serve

  # Rebuild and reload on template changes
  pgddui docs serve --watch --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocsServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Output directory (default: build_path)")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: docs.port)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Rebuild and live reload when templates change")
	cmd.Flags().BoolVar(&opts.ShowSystem, "show-system", false, "Include PostgreSQL system objects")
	cmd.Flags().Bool("minify", false, "Minify CSS and JS assets (default: docs.minify)")
	cmd.Flags().Bool("markdown", false, "Also write DATA_DICTIONARY.md (default: docs.markdown)")
	cmd.Flags().Bool("sqlite", false, "Also write the pgdd.db snapshot (default: docs.sqlite)")

	return cmd
}

func runDocsServe(cmd *cobra.Command, opts *DocsServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	port := cfg.Docs.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	gen, err := newGenerator(cmdCtx)
	if err != nil {
		return err
	}
	siteOpts := siteOptions(cmd, cmdCtx, opts.Dir, opts.ShowSystem)

	if opts.Watch {
		if cfg.UI.TemplatesDir == "" {
			r.Warning("ui.templates_dir is not set; the site is built once and pages reload only on restart")
		}
		r.Success(fmt.Sprintf("Serving %s on http://localhost:%d with live reload", siteOpts.OutputDir, port))
		return docs.NewDevServer(gen, siteOpts, port, cfg.UI.TemplatesDir, cmdCtx.Logger).Serve(cmd.Context())
	}

	if _, err := gen.Build(cmd.Context(), siteOpts); err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}
	r.Success(fmt.Sprintf("Serving %s on http://localhost:%d", siteOpts.OutputDir, port))
	r.Muted("Press Ctrl+C to stop")
	return docs.Serve(cmd.Context(), siteOpts.OutputDir, port, cmdCtx.Logger)
}
