// Package ui serves the interactive PgDD data dictionary viewer.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pgddui/pgddui/internal/catalog"
	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/internal/ui/features/common"
	"github.com/pgddui/pgddui/internal/ui/notifier"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/internal/ui/router"
	"github.com/pgddui/pgddui/internal/visibility"
	"golang.org/x/sync/errgroup"
)

// Server is the viewer HTTP server.
type Server struct {
	deps     *common.Deps
	port     int
	dev      bool
	logger   *slog.Logger
	notifier *notifier.Notifier
}

// Config holds configuration for the viewer.
type Config struct {
	Reader *catalog.Reader
	Stats  *catalog.StatsSource
	Gate   *extension.Gate
	// Pages overrides the embedded page templates. Nil uses the defaults.
	Pages         *pages.Renderer
	Port          int
	SessionSecret string
	// SecureCookies marks the session cookie Secure, for viewers behind TLS.
	SecureCookies bool
	// Dev enables the live reload endpoints.
	Dev    bool
	Logger *slog.Logger
}

// NewServer creates a new viewer instance.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	renderer := cfg.Pages
	if renderer == nil {
		var err error
		if renderer, err = pages.NewRenderer(""); err != nil {
			return nil, fmt.Errorf("failed to load page templates: %w", err)
		}
	}

	return &Server{
		deps: &common.Deps{
			Reader:     cfg.Reader,
			Stats:      cfg.Stats,
			Gate:       cfg.Gate,
			Pages:      renderer,
			Visibility: visibility.NewSessionStore(visibility.NewCookieStore(cfg.SessionSecret, cfg.SecureCookies), logger),
			Logger:     logger,
			Dev:        cfg.Dev,
		},
		port:     cfg.Port,
		dev:      cfg.Dev,
		logger:   logger,
		notifier: notifier.New(),
	}, nil
}

// Handler returns the fully routed viewer.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.deps, s.notifier, s.dev); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the viewer and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.logger.Info("starting data dictionary viewer", "addr", fmt.Sprintf("http://localhost:%d", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down viewer")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's reload notifier.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}
