// Package config loads dockyard settings from TOML.
//
// A file looks like:
//
//	[viewport]
//	width = 1280
//	height = 800
//
//	[layout]
//	gutter = 10
//	min_size = 100
//	split_ratio = 0.5
//	locked = false
//
//	[[panels]]
//	id = "editor"
//	name = "Editor"
//
//	[server]
//	addr = ":8080"
//
// Every field is optional; [Config.SetDefaults] fills the gaps.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dockyard/pkg/dock"
	errs "github.com/matzehuels/dockyard/pkg/errors"
)

// Defaults applied by SetDefaults.
const (
	DefaultWidth  = 1280.0
	DefaultHeight = 800.0
	DefaultAddr   = ":8080"
)

// DefaultPanels is the catalog used when a file declares none.
var DefaultPanels = []Panel{
	{ID: "editor", Name: "Editor"},
	{ID: "files", Name: "Files"},
	{ID: "terminal", Name: "Terminal"},
	{ID: "preview", Name: "Preview"},
	{ID: "outline", Name: "Outline"},
}

// Config is the root of a configuration file.
type Config struct {
	Viewport Viewport `toml:"viewport"`
	Layout   Layout   `toml:"layout"`
	Panels   []Panel  `toml:"panels"`
	Server   Server   `toml:"server"`
}

// Viewport is the initial size of the docking area in pixels.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Layout tunes the docking engine.
type Layout struct {
	Gutter     float64 `toml:"gutter"`
	MinSize    float64 `toml:"min_size"`
	SplitRatio float64 `toml:"split_ratio"`
	Locked     bool    `toml:"locked"`
}

// Panel is one entry of the catalog of panels that can be dragged in.
type Panel struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Server configures `dockyard serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Load reads, defaults and validates the file at path. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadOrDefault loads path when it exists. An empty path means
// DefaultPath, and a missing default file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "stat %s", path)
	}
	return Load(path)
}

// DefaultPath returns $XDG_CONFIG_HOME/dockyard/config.toml (or the
// platform equivalent), or "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dockyard", "config.toml")
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Viewport.Width == 0 {
		c.Viewport.Width = DefaultWidth
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = DefaultHeight
	}
	if c.Layout.Gutter == 0 {
		c.Layout.Gutter = dock.DefaultGutter
	}
	if c.Layout.MinSize == 0 {
		c.Layout.MinSize = dock.DefaultMinSize
	}
	if c.Layout.SplitRatio == 0 {
		c.Layout.SplitRatio = dock.DefaultSplitRatio
	}
	if len(c.Panels) == 0 {
		c.Panels = append([]Panel(nil), DefaultPanels...)
	}
	for i := range c.Panels {
		if c.Panels[i].Name == "" {
			c.Panels[i].Name = c.Panels[i].ID
		}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

// Validate checks value ranges and the panel catalog.
func (c *Config) Validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "viewport must not be negative (got %vx%v)", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Layout.Gutter < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "gutter must not be negative (got %v)", c.Layout.Gutter)
	}
	if c.Layout.MinSize < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "min_size must not be negative (got %v)", c.Layout.MinSize)
	}
	if r := c.Layout.SplitRatio; r <= 0 || r >= 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "split_ratio must be in (0,1) (got %v)", r)
	}
	seen := make(map[string]bool, len(c.Panels))
	for _, p := range c.Panels {
		if err := errs.ValidatePanelID(p.ID); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "panel %q", p.ID)
		}
		if err := errs.ValidateDisplayName(p.Name); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "panel %q", p.ID)
		}
		if seen[p.ID] {
			return errs.New(errs.ErrCodeInvalidConfig, "duplicate panel %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// DockOptions converts the layout section into engine options.
func (c *Config) DockOptions() dock.Options {
	return dock.Options{
		Gutter:     c.Layout.Gutter,
		MinSize:    c.Layout.MinSize,
		SplitRatio: c.Layout.SplitRatio,
	}
}
