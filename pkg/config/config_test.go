package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/dockyard/pkg/dock"
	errs "github.com/matzehuels/dockyard/pkg/errors"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Viewport.Width != DefaultWidth || c.Viewport.Height != DefaultHeight {
		t.Errorf("viewport = %+v", c.Viewport)
	}
	if c.Layout.Gutter != dock.DefaultGutter || c.Layout.MinSize != dock.DefaultMinSize || c.Layout.SplitRatio != dock.DefaultSplitRatio {
		t.Errorf("layout = %+v", c.Layout)
	}
	if len(c.Panels) != len(DefaultPanels) {
		t.Errorf("panels = %d, want %d", len(c.Panels), len(DefaultPanels))
	}
	if c.Server.Addr != DefaultAddr {
		t.Errorf("addr = %q", c.Server.Addr)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	// The catalog must be a copy.
	c.Panels[0].ID = "changed"
	if DefaultPanels[0].ID == "changed" {
		t.Error("SetDefaults aliased DefaultPanels")
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[viewport]
width = 640
height = 480

[layout]
gutter = 4
min_size = 40
split_ratio = 0.3
locked = true

[[panels]]
id = "logs"

[[panels]]
id = "map"
name = "World Map"

[server]
addr = "127.0.0.1:9000"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Viewport.Width != 640 || c.Viewport.Height != 480 {
		t.Errorf("viewport = %+v", c.Viewport)
	}
	if c.Layout != (Layout{Gutter: 4, MinSize: 40, SplitRatio: 0.3, Locked: true}) {
		t.Errorf("layout = %+v", c.Layout)
	}
	if len(c.Panels) != 2 || c.Panels[0].Name != "logs" || c.Panels[1].Name != "World Map" {
		t.Errorf("panels = %+v", c.Panels)
	}
	if c.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", c.Server.Addr)
	}

	o := c.DockOptions()
	if o.Gutter != 4 || o.MinSize != 40 || o.SplitRatio != 0.3 {
		t.Errorf("DockOptions = %+v", o)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[viewport\nwidth = 1"},
		{"unknown key", "[layout]\ngutters = 3"},
		{"negative gutter", "[layout]\ngutter = -1"},
		{"ratio out of range", "[layout]\nsplit_ratio = 1.5"},
		{"negative viewport", "[viewport]\nwidth = -5"},
		{"bad panel id", "[[panels]]\nid = \"a b\""},
		{"duplicate panel", "[[panels]]\nid = \"a\"\n[[panels]]\nid = \"a\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("Load() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("missing default file: %v", err)
	}
	if c.Viewport.Width != DefaultWidth {
		t.Errorf("viewport = %+v", c.Viewport)
	}

	if _, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml")); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("missing explicit file = %v, want INVALID_CONFIG", err)
	}

	path := writeFile(t, "[server]\naddr = \":1\"\n")
	c, err = LoadOrDefault(path)
	if err != nil || c.Server.Addr != ":1" {
		t.Errorf("LoadOrDefault(%s) = %+v, %v", path, c, err)
	}
}
