package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/dialect"
	"github.com/ZaguanLabs/dialect/internal/config"
	"github.com/ZaguanLabs/dialect/tables"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   dialect.Name,
		Short: "Convert text between American and British English",
		Long: "dialect rewrites spelling, vocabulary, honorific titles and clock times\n" +
			"between American and British English, from the command line or over HTTP.",
		Version:       dialect.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default: $DIALECT_CONFIG or "+config.DefaultPath+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(newTranslateCmd())
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newTablesCmd())
	root.AddCommand(newCacheCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads the configuration and applies command line overrides.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

// tableRetry governs retries of remote table documents.
var tableRetry = dialect.DefaultRetryConfig()

// tableSource picks a source for location: the bundled tables when empty,
// a retrying HTTP source for http(s) URLs, a file otherwise.
func tableSource(location string) dialect.TableSource {
	switch {
	case location == "":
		return tables.Embedded()
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return dialect.NewRetryingSource(tables.NewHTTP(location), tableRetry)
	default:
		return tables.File{Path: location}
	}
}

func configSource(cfg config.TablesConfig) dialect.TableSource {
	if cfg.URL != "" {
		return tableSource(cfg.URL)
	}
	return tableSource(cfg.Path)
}

func loadTables(ctx context.Context, location string) (*dialect.Tables, dialect.TableSource, error) {
	src := tableSource(location)
	t, err := dialect.LoadTables(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	return t, src, nil
}
