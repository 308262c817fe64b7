// Package server exposes the translator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ZaguanLabs/dialect"
	"github.com/ZaguanLabs/dialect/cache"
	"github.com/ZaguanLabs/dialect/internal/config"
)

// Options configures a Server.
type Options struct {
	Config     *config.Config
	Translator *dialect.Translator

	// Source is reloaded every Config.Tables.ReloadInterval when set.
	Source dialect.TableSource

	// Cache is restored from and saved to Config.Cache.SnapshotFile when it
	// can be enumerated.
	Cache cache.TranslationCache

	// Registry defaults to a fresh registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// Server is the HTTP front end of a Translator.
type Server struct {
	cfg        *config.Config
	translator *dialect.Translator
	source     dialect.TableSource
	cache      cache.TranslationCache
	metrics    *Metrics
	router     *Router
	logger     zerolog.Logger
}

// New builds a server and its handler chain.
func New(opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		cfg:        opts.Config,
		translator: opts.Translator,
		source:     opts.Source,
		cache:      opts.Cache,
		metrics:    NewMetrics(reg),
		router:     NewRouter(),
		logger:     opts.Logger,
	}
	s.metrics.TableRules.Set(float64(s.translator.Tables().Len()))

	s.router.Use(WithRequestID(s.logger))
	s.router.Use(AccessLog(s.metrics))
	s.router.Use(Recover)
	if rl := s.cfg.RateLimit; rl.Enabled {
		s.router.Use(NewRateLimiter(rl.RPS, rl.Burst, s.metrics).Middleware)
	}
	s.routes(reg)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. The cache snapshot, if configured, is restored before the first
// request and written after the last.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.restoreSnapshot(ctx)

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if interval := s.cfg.Tables.ReloadInterval; interval > 0 && s.source != nil {
		g.Go(func() error {
			s.reloadLoop(gctx, interval)
			return nil
		})
	}

	err := g.Wait()
	s.saveSnapshot(context.Background())
	return err
}

func (s *Server) reloadLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Reload(ctx)
		}
	}
}

// Reload swaps in freshly loaded tables from the configured source. A failed
// reload keeps the current tables.
func (s *Server) Reload(ctx context.Context) error {
	if s.source == nil {
		return errors.New("no table source configured")
	}
	if err := s.translator.Reload(ctx, s.source); err != nil {
		s.metrics.TableReloads.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("source", s.source.Name()).Msg("table reload failed")
		return err
	}
	s.metrics.TableReloads.WithLabelValues("ok").Inc()
	s.metrics.TableRules.Set(float64(s.translator.Tables().Len()))
	return nil
}

func (s *Server) restoreSnapshot(ctx context.Context) {
	path := s.cfg.Cache.SnapshotFile
	if path == "" || s.cache == nil {
		return
	}
	res, err := cache.NewImporter(s.cache).ImportFromFile(ctx, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return
	case err != nil:
		s.logger.Warn().Err(err).Str("path", path).Msg("cache snapshot not restored")
	default:
		s.logger.Info().Str("path", path).Int("imported", res.Imported).Int("failed", res.Failed).Msg("cache snapshot restored")
	}
}

func (s *Server) saveSnapshot(ctx context.Context) {
	path := s.cfg.Cache.SnapshotFile
	if path == "" {
		return
	}
	exportable, ok := s.cache.(cache.ExportableCache)
	if !ok {
		return
	}
	meta := map[string]string{"version": dialect.FullVersion(), "tables_fingerprint": s.translator.Fingerprint()}
	export, err := cache.NewExporter(exportable).ExportToFile(ctx, path, meta)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("cache snapshot not saved")
		return
	}
	s.logger.Info().Str("path", path).Int("entries", len(export.Entries)).Msg("cache snapshot saved")
}
