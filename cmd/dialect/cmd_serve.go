package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/dialect"
	"github.com/ZaguanLabs/dialect/cache"
	"github.com/ZaguanLabs/dialect/internal/config"
	"github.com/ZaguanLabs/dialect/internal/logging"
	"github.com/ZaguanLabs/dialect/internal/server"
	"github.com/ZaguanLabs/dialect/processor"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation API over HTTP",
		Long: `Starts the HTTP API:

  POST /api/translate        {"text": "...", "locale": "american-to-british"}
  POST /api/translate/batch  {"texts": ["..."], "locale": "british-to-american"}
  GET  /healthz
  GET  /metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := configSource(cfg.Tables)
	tbl, err := dialect.LoadTables(ctx, src)
	if err != nil {
		return fmt.Errorf("loading tables: %w", err)
	}

	resultCache, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	opts := []dialect.TranslatorOption{
		dialect.WithProcessor(processor.NewHTMLProcessor()),
		dialect.WithLogger(logger.With().Str("component", "translator").Logger()),
	}
	if resultCache != nil {
		opts = append(opts, dialect.WithCache(resultCache))
	}
	translator := dialect.NewTranslator(tbl, opts...)

	logger.Info().
		Str("version", dialect.FullVersion()).
		Str("tables", src.Name()).
		Int("rules", tbl.Len()).
		Str("fingerprint", tbl.Fingerprint()).
		Str("cache", cfg.Cache.Backend).
		Msg("starting")

	srv := server.New(server.Options{
		Config:     cfg,
		Translator: translator,
		Source:     src,
		Cache:      resultCache,
		Logger:     logger,
	})
	return srv.Run(ctx)
}

// openCache builds the configured result cache. The returned cache is nil
// for the "none" backend.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.ExportableCache, func(), error) {
	noop := func() {}
	ttl := int(cfg.TTL.Seconds())

	switch cfg.Backend {
	case config.CacheNone:
		return nil, noop, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:       cfg.RedisURL,
			TTL:       ttl,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("opening redis cache: %w", err)
		}
		return rc, func() {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("closing redis cache")
			}
		}, nil
	default:
		return cache.NewInMemoryCache(ttl, cfg.MaxEntries), noop, nil
	}
}
