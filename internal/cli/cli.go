// Package cli implements the dockyard command-line interface.
//
// # Commands
//
// The main commands are:
//   - play: Interactive docking editor in the terminal (mouse driven)
//   - script: Replay a recorded gesture script and print the result
//   - dot: Export a scripted layout as Graphviz DOT or SVG
//   - serve: Expose a workspace over HTTP/JSON
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Configuration
//
// Settings are read from --config, or from the default config path when
// that file exists. Command flags override file values.
package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "dockyard"

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

	configPath string
	stdout     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads --config, falling back to the default file and then to
// built-in defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Configuration loaded", "path", c.configPath, "panels", len(cfg.Panels))
	return cfg, nil
}
