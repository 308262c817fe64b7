package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/dialect"
	"github.com/ZaguanLabs/dialect/cache"
	"github.com/ZaguanLabs/dialect/internal/config"
)

var errCacheNotShared = errors.New("cache commands need the redis backend; the memory cache lives inside the server process (use cache.snapshot_file instead)")

func newCacheCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Export or import the shared result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write every cached result to a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeCache, err := openSharedCache(cmd, flags)
			if err != nil {
				return err
			}
			defer closeCache()

			meta := map[string]string{"version": dialect.FullVersion()}
			export, err := cache.NewExporter(c).ExportToFile(cmd.Context(), args[0], meta)
			if err != nil {
				return fmt.Errorf("exporting cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(export.Entries), args[0])
			if export.Skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d entries that are not valid JSON\n", export.Skipped)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON snapshot into the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeCache, err := openSharedCache(cmd, flags)
			if err != nil {
				return err
			}
			defer closeCache()

			res, err := cache.NewImporter(c).ImportFromFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("importing cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s (%d failed)\n", res.Imported, args[0], res.Failed)
			return nil
		},
	})
	return cmd
}

func openSharedCache(cmd *cobra.Command, flags *rootFlags) (cache.ExportableCache, func(), error) {
	cfg, err := flags.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Cache.Backend != config.CacheRedis {
		return nil, nil, errCacheNotShared
	}
	return openCache(cmd.Context(), cfg.Cache)
}
