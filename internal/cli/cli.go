// Package cli implements the ringforge command-line interface.
//
// This package provides commands for generating CNC-ready board drawings
// from network topologies, inspecting ring layouts, managing stored plans,
// and serving live previews. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PDF, or PNG board drawings
//   - layout: Print the ring allocation table for a topology
//   - network: Render the topology as a node-link diagram
//   - boards: Save, list, show, and delete stored plans
//   - cache: Manage the artifact cache
//   - serve: Run a local preview server
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ringforge/ringforge/pkg/buildinfo"
	"github.com/ringforge/ringforge/pkg/cache"
	"github.com/ringforge/ringforge/pkg/pipeline"
	"github.com/ringforge/ringforge/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "ringforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the merged
// config file settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ringforge",
		Short:        "Ringforge turns network topologies into machinable ring boards",
		Long:         `Ringforge is a CLI tool for converting feed-forward network topologies into CNC-ready annular board drawings: concentric slide-rule scales, slider rings, and weight channels laid out on a single apparatus.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.networkCommand())
	root.AddCommand(c.boardsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(cmd, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func (c *CLI) newCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Redis.Addr != "" {
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore creates the plan store configured for this CLI.
// MongoDB is used when the config names a URI; otherwise plans live in
// JSON files under the config directory.
func (c *CLI) newStore(cmd *cobra.Command) (store.Store, error) {
	if c.Config.Mongo.URI != "" {
		return store.NewMongoStore(cmd.Context(), store.MongoConfig{
			URI:        c.Config.Mongo.URI,
			Database:   c.Config.Mongo.Database,
			Collection: c.Config.Mongo.Collection,
		})
	}
	return store.NewFileStore(c.Config.BoardsDir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ringforge/).
// A cache_dir config setting takes precedence.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseLayers parses a comma-separated layer list.
func parseLayers(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
