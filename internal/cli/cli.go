// Package cli implements the anchorlayout command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/pkg/buildinfo"
	"github.com/matzehuels/anchorlayout/pkg/cache"
	"github.com/matzehuels/anchorlayout/pkg/config"
	"github.com/matzehuels/anchorlayout/pkg/pipeline"
	"github.com/matzehuels/anchorlayout/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer

	configPath string
	noCache    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		cfg:    config.Default(),
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
		Short: "Anchorlayout resolves anchor-based frame layouts",
		Long: `Anchorlayout resolves declarative frame layouts, where each frame is placed
relative to another frame or to the screen, into absolute rectangles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/anchorlayout/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the resolution cache")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Runner and Store Factories
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, c.keyer(), loggerFromContext(ctx))
	r.TTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

// keyer scopes file cache keys by the configured prefix. Redis applies the
// prefix itself.
func (c *CLI) keyer() cache.Keyer {
	if c.cfg.Cache.Prefix != "" && c.cfg.Cache.Backend != "redis" {
		return cache.NewScopedKeyer(nil, c.cfg.Cache.Prefix)
	}
	return cache.NewDefaultKeyer()
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.Password,
			DB:       c.cfg.Cache.RedisDB,
			Prefix:   c.cfg.Cache.Prefix,
		})
	}
	dir, err := c.cacheDir()
	if err != nil {
		loggerFromContext(ctx).Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured snapshot store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.cfg.Store.Backend {
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:      c.cfg.Store.MongoURI,
			Database: c.cfg.Store.MongoDatabase,
		})
	case "memory":
		return store.NewMemoryStore(), nil
	}
	return store.NewFileStore(c.cfg.Store.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/anchorlayout/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Version
// =============================================================================

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
