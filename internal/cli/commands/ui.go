package commands

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/pgddui/pgddui/internal/ui"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/spf13/cobra"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Port      int
	NoBrowser bool
	Dev       bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the data dictionary web viewer",
		Long: `Start a local web server browsing the PgDD data dictionary.

The viewer provides:
- Listings of schemas, tables, views, columns and functions
- Collapsible schema/table/column trees
- A per-browser toggle for PostgreSQL system objects

The viewer starts even when the database is unreachable; pages report
the outage until it comes back.`,
		Example: `  # Start the viewer on the configured port (default 5000)
  pgddui ui

  # Start on a custom port without opening a browser
  pgddui ui --port 3000 --no-browser

  # Live reload pages after POST /hotreload
  pgddui ui --dev`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: ui.port)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable live reload endpoints")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cmdCtx, cleanup, err := NewCommandContextLenient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	port := cfg.UI.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	secret, configured := cfg.SessionSecret()
	if !configured {
		logger.Warn("no session secret configured, using the public development default",
			slog.String("hint", "set ui.session_secret, PGDDUI_UI__SESSION_SECRET or APP_SECRET_KEY"))
	}

	var renderer *pages.Renderer
	if cfg.UI.TemplatesDir != "" {
		if renderer, err = pages.NewRenderer(cfg.UI.TemplatesDir); err != nil {
			return fmt.Errorf("failed to load templates from %s: %w", cfg.UI.TemplatesDir, err)
		}
	}

	server, err := ui.NewServer(ui.Config{
		Reader:        cmdCtx.Reader,
		Stats:         cmdCtx.Stats,
		Gate:          cmdCtx.Gate,
		Pages:         renderer,
		Port:          port,
		SessionSecret: secret,
		SecureCookies: cfg.UI.SecureCookies,
		Dev:           opts.Dev,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://localhost:%d", port)
	if cfg.UI.AutoOpen && !opts.NoBrowser {
		go openBrowser(url)
	}

	r := cmdCtx.Renderer
	r.Success(fmt.Sprintf("Serving data dictionary on %s", url))
	r.Muted("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
