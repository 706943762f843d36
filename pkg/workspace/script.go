package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/config"
	errs "github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Script actions.
const (
	ActionDrop     = "drop"
	ActionMove     = "move"
	ActionRemove   = "remove"
	ActionResize   = "resize"
	ActionViewport = "viewport"
	ActionLock     = "lock"
	ActionUnlock   = "unlock"
)

// Script is a recorded sequence of gestures replayed against a fresh
// workspace. Besides [[steps]] a script file accepts the same [viewport],
// [layout] and [[panels]] sections as the configuration file:
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[[steps]]
//	action = "drop"
//	panel = "editor"
//	at = [400, 300]
//
//	[[steps]]
//	action = "resize"
//	at = [400, 300]
//	delta = -40
type Script struct {
	Config *config.Config
	Steps  []Step
}

// Step is one gesture. At is the pointer position; which other fields
// matter depends on Action.
type Step struct {
	Action string     `toml:"action"`
	Panel  string     `toml:"panel"`
	At     [2]float64 `toml:"at"`
	Delta  float64    `toml:"delta"`
	Width  float64    `toml:"width"`
	Height float64    `toml:"height"`
}

func (s Step) point() geom.Point { return geom.Pt(s.At[0], s.At[1]) }

type scriptFile struct {
	Viewport config.Viewport `toml:"viewport"`
	Layout   config.Layout   `toml:"layout"`
	Panels   []config.Panel  `toml:"panels"`
	Steps    []Step          `toml:"steps"`
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	var f scriptFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return newScript(f, md, path)
}

// ParseScript decodes a script from TOML text.
func ParseScript(data string) (*Script, error) {
	var f scriptFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse script")
	}
	return newScript(f, md, "script")
}

func newScript(f scriptFile, md toml.MetaData, name string) (*Script, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys %s", name, strings.Join(keys, ", "))
	}
	c := &config.Config{Viewport: f.Viewport, Layout: f.Layout, Panels: f.Panels}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for i, s := range f.Steps {
		switch s.Action {
		case ActionDrop, ActionMove, ActionRemove, ActionResize, ActionViewport, ActionLock, ActionUnlock:
		default:
			return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: step %d: unknown action %q", name, i+1, s.Action)
		}
	}
	return &Script{Config: c, Steps: f.Steps}, nil
}

// Result summarizes a replay.
type Result struct {
	Applied  int
	Rejected int
}

// Run replays the script against a new workspace built from its own
// configuration and returns that workspace.
func (s *Script) Run(ctx context.Context, logger *log.Logger) (*Workspace, Result, error) {
	w := FromConfig(s.Config, logger)
	res, err := s.Apply(ctx, w)
	return w, res, err
}

// Apply replays the steps against w and stops at the first error. Divider
// moves that hit a minimum are counted as rejected, not failed.
func (s *Script) Apply(ctx context.Context, w *Workspace) (Result, error) {
	var res Result
	for i, step := range s.Steps {
		ok, err := w.apply(ctx, step)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		if ok {
			res.Applied++
		} else {
			res.Rejected++
		}
	}
	return res, nil
}

func (w *Workspace) apply(ctx context.Context, s Step) (bool, error) {
	switch s.Action {
	case ActionDrop:
		_, err := w.DropAt(ctx, s.Panel, s.point())
		return err == nil, err
	case ActionMove:
		n, ok := w.tree.FindContent(s.Panel)
		if !ok {
			return false, errs.New(errs.ErrCodeNotFound, "panel %q is not docked", s.Panel)
		}
		if _, ok := w.DragOver(ctx, s.point()); !ok {
			return false, errs.New(errs.ErrCodeInvalidTarget, "no drop target at (%v, %v)", s.At[0], s.At[1])
		}
		_, err := w.MoveTo(ctx, n.Key)
		return err == nil, err
	case ActionRemove:
		err := w.RemovePanel(ctx, s.Panel)
		return err == nil, err
	case ActionResize:
		if _, err := w.BeginResizeAt(s.point()); err != nil {
			return false, err
		}
		defer w.EndResize()
		return w.ResizeBy(ctx, s.Delta)
	case ActionViewport:
		err := w.SetViewport(s.Width, s.Height)
		return err == nil, err
	case ActionLock:
		w.SetLocked(true)
		return true, nil
	case ActionUnlock:
		w.SetLocked(false)
		return true, nil
	}
	return false, errs.New(errs.ErrCodeInvalidInput, "unknown action %q", s.Action)
}
