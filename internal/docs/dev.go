package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pgddui/pgddui/internal/ui/notifier"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"golang.org/x/sync/errgroup"
)

// ReloadPath is the SSE endpoint pages subscribe to in watch mode.
const ReloadPath = notifier.ReloadPath

// Serve serves a built site until ctx is cancelled.
func Serve(ctx context.Context, dir string, port int, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := chi.NewMux()
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return listen(ctx, r, port, logger, nil)
}

// DevServer serves the site and rebuilds it when templates change. Open
// pages reload through a datastar SSE stream after each successful rebuild.
type DevServer struct {
	generator    *Generator
	opts         Options
	port         int
	templatesDir string
	logger       *slog.Logger
	notifier     *notifier.Notifier

	mu sync.Mutex
}

// NewDevServer creates a dev server. templatesDir may be empty, in which
// case nothing is watched and the site is built once.
func NewDevServer(gen *Generator, opts Options, port int, templatesDir string, logger *slog.Logger) *DevServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts.LiveReload = true
	return &DevServer{
		generator:    gen,
		opts:         opts,
		port:         port,
		templatesDir: templatesDir,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler serves the output directory plus the reload stream.
func (s *DevServer) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(middleware.Recoverer)
	r.Get(ReloadPath, s.notifier.ReloadHandler())
	files := http.FileServer(http.Dir(s.opts.OutputDir))
	r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		files.ServeHTTP(w, req)
	}))
	return r
}

// Rebuild regenerates the site and tells open pages to reload.
func (s *DevServer) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.generator
	if s.templatesDir != "" {
		renderer, err := pages.NewRenderer(s.templatesDir)
		if err != nil {
			return err
		}
		gen = gen.WithRenderer(renderer)
	}

	if _, err := gen.Build(ctx, s.opts); err != nil {
		return err
	}
	s.logger.Info("rebuild complete")
	s.notifier.Broadcast()
	return nil
}

// Serve builds the site, then serves it until ctx is cancelled.
func (s *DevServer) Serve(ctx context.Context) error {
	if err := s.Rebuild(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	var watch func(context.Context) error
	if s.templatesDir != "" {
		watch = s.watchLoop
	}
	return listen(ctx, s.Handler(), s.port, s.logger, watch)
}

func (s *DevServer) watchLoop(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.templatesDir); err != nil {
		return fmt.Errorf("failed to watch templates dir: %w", err)
	}
	s.logger.Info("watching templates", slog.String("dir", s.templatesDir))

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			switch filepath.Ext(event.Name) {
			case ".html", ".css", ".js":
			default:
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			name := event.Name
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("change detected", slog.String("file", filepath.Base(name)))
				if err := s.Rebuild(ctx); err != nil {
					s.logger.Error("rebuild failed", slog.String("error", err.Error()))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// listen runs an HTTP server, plus an optional background task, until ctx
// is cancelled, then shuts the server down gracefully.
func listen(ctx context.Context, handler http.Handler, port int, logger *slog.Logger, background func(context.Context) error) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if background != nil {
		eg.Go(func() error { return background(egctx) })
	}

	eg.Go(func() error {
		logger.Info("serving docs", slog.String("addr", fmt.Sprintf("http://localhost:%d", port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
