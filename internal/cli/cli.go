// Package cli implements the ihmgraph command-line interface.
//
// The commands read and write integrative modeling files, look up
// citations on PubMed and draw the object graph of a file:
//
//   - stats: count the objects of each data block
//   - convert: read a file and write it back with normalized ids
//   - cite: fetch citations by PubMed id and print them as mmCIF
//   - graph: export the object graph as SVG, PDF, PNG, DOT or JSON
//   - cache: manage the citation cache
//
// Settings come from config.toml (see [Config]); --verbose overrides the
// configured log level.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmgraph/pkg/buildinfo"
	"github.com/matzehuels/ihmgraph/pkg/cache"
	"github.com/matzehuels/ihmgraph/pkg/integrations/pubmed"
)

// appName names the config and cache directories.
const appName = "ihmgraph"

// LogInfo is the starting log level used by main.go.
const LogInfo = log.InfoLevel

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
	verbose    bool
	noCache    bool
}

// New creates a CLI that logs to w at level, with the default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ihmgraph reads, writes and explores integrative modeling files",
		Long: `ihmgraph works with mmCIF files that describe integrative structural models:
their entities, datasets, restraints, protocols and model ensembles.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ~/.config/ihmgraph/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "do not read or write the citation cache")

	root.AddCommand(c.statsCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.citeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config, applies the log level and attaches the logger to
// the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path, explicit := c.configFile, c.configFile != ""
	if !explicit {
		if p, err := configPath(); err == nil {
			path = p
		}
	}
	cfg, unknown, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, _ := parseLevel(cfg.LogLevel)
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	c.Logger.Debug("Starting", "version", buildinfo.Version, "commit", buildinfo.Commit)
	for _, k := range unknown {
		c.Logger.Warn("Unknown config key", "key", k, "file", path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// openCache opens the configured citation cache, honoring --no-cache.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.cacheConfig(c.noCache)
	backend, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Opened cache", "backend", cfg.Backend)
	return backend, nil
}

// newPubMed creates a PubMed client over backend using the [pubmed] table.
func (c *CLI) newPubMed(backend cache.Cache) *pubmed.Client {
	var opts []pubmed.Option
	if c.Config.PubMed.BaseURL != "" {
		opts = append(opts, pubmed.WithBaseURL(c.Config.PubMed.BaseURL))
	}
	if c.Config.PubMed.APIKey != "" {
		opts = append(opts, pubmed.WithAPIKey(c.Config.PubMed.APIKey))
	}
	return pubmed.NewClient(backend, c.Config.Cache.TTL.Duration, opts...)
}
