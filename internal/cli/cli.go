// Package cli implements the stepwise command-line interface.
//
// # Commands
//
//   - run: play an algorithm in the terminal, one line per step
//   - play: interactive step player with pseudocode highlighting
//   - trace: write the full step trace as JSON
//   - render: draw a frame of a graph algorithm as SVG or DOT
//   - pseudocode: print an algorithm's pseudocode listing
//   - algorithms: list the gallery
//   - serve: start the HTTP API
//   - cache: manage the trace cache
//
// Inputs come from flags or from a named scenario in a TOML file
// (--scenarios, --scenario).
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwise/pkg/buildinfo"
	"github.com/matzehuels/stepwise/pkg/cache"
	"github.com/matzehuels/stepwise/pkg/observability"
	"github.com/matzehuels/stepwise/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "stepwise"

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
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stepwise animates classic algorithms step by step",
		Long:         `Stepwise runs graph traversals, minimum spanning trees, heaps, string matching and recursion trees as sequences of explained steps, with the matching pseudocode line for each one.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			hooks := &logHooks{logger: c.Logger}
			observability.SetPlayerHooks(hooks)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pseudocodeCommand())
	root.AddCommand(c.algorithmsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory ($XDG_CACHE_HOME/stepwise or
// ~/.cache/stepwise).
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}
