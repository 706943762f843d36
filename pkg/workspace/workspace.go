// Package workspace owns one docking layout together with everything a
// rendering layer needs around it: the viewport, the catalog of panels
// that can be dragged in, the lock flag and the gesture in progress.
//
// A Workspace is not safe for concurrent use. The HTTP server serializes
// access with a mutex; the terminal UI is serialized by its update loop.
package workspace

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/config"
	"github.com/matzehuels/dockyard/pkg/dock"
	errs "github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
	"github.com/matzehuels/dockyard/pkg/observability"
)

// DividerSlop is how far from a gutter, in pixels, a pointer may be and
// still grab the divider.
const DividerSlop = 2.0

// Panel is a catalog entry.
type Panel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options configures a Workspace.
type Options struct {
	Width, Height float64
	Dock          dock.Options
	Panels        []Panel
	Locked        bool

	// Clamp makes divider drags stop at the minimum instead of rejecting
	// the whole step.
	Clamp bool

	Logger *log.Logger
}

// Workspace is a layout tree plus its interaction state.
type Workspace struct {
	tree     *dock.Tree
	viewport geom.Rect
	catalog  []Panel
	byID     map[string]Panel
	locked   bool
	clamp    bool
	gesture  dock.Gesture
	drag     *dock.DividerDrag
	logger   *log.Logger
}

// New creates an empty workspace.
func New(opts Options) *Workspace {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	w := &Workspace{
		tree:     dock.New(opts.Dock),
		viewport: geom.RectFromLTWH(0, 0, opts.Width, opts.Height),
		byID:     make(map[string]Panel, len(opts.Panels)),
		locked:   opts.Locked,
		clamp:    opts.Clamp,
		logger:   opts.Logger,
	}
	for _, p := range opts.Panels {
		if _, dup := w.byID[p.ID]; dup {
			continue
		}
		w.catalog = append(w.catalog, p)
		w.byID[p.ID] = p
	}
	return w
}

// FromConfig creates a workspace from a loaded configuration.
func FromConfig(c *config.Config, logger *log.Logger) *Workspace {
	panels := make([]Panel, len(c.Panels))
	for i, p := range c.Panels {
		panels[i] = Panel{ID: p.ID, Name: p.Name}
	}
	return New(Options{
		Width:  c.Viewport.Width,
		Height: c.Viewport.Height,
		Dock:   c.DockOptions(),
		Panels: panels,
		Locked: c.Layout.Locked,
		Logger: logger,
	})
}

// Tree returns the layout. Callers must not mutate it directly.
func (w *Workspace) Tree() *dock.Tree { return w.tree }

// Viewport returns the docking area in pixels.
func (w *Workspace) Viewport() geom.Rect { return w.viewport }

// SetViewport resizes the docking area. The tree is untouched: bounds are
// normalized, so every frame rescales on the next resolve.
func (w *Workspace) SetViewport(width, height float64) error {
	if !(width >= 0) || !(height >= 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return errs.New(errs.ErrCodeInvalidInput, "invalid viewport %vx%v", width, height)
	}
	w.viewport = geom.RectFromLTWH(0, 0, width, height)
	w.gesture.Reset()
	w.drag = nil
	w.logger.Debug("Viewport resized", "width", width, "height", height)
	return nil
}

// Locked reports whether the layout rejects changes.
func (w *Workspace) Locked() bool { return w.locked }

// SetLocked freezes or unfreezes the layout. Locking abandons any gesture
// in progress.
func (w *Workspace) SetLocked(locked bool) {
	if locked {
		w.gesture.Reset()
		w.drag = nil
	}
	w.locked = locked
	w.logger.Info("Layout lock changed", "locked", locked)
}

func (w *Workspace) checkUnlocked() error {
	if w.locked {
		return errs.New(errs.ErrCodeLocked, "layout is locked")
	}
	return nil
}

// =============================================================================
// Drag and drop
// =============================================================================

// DragOver hit-tests the pointer during a drag and remembers the result as
// the pending placement. A locked workspace offers no placements.
func (w *Workspace) DragOver(ctx context.Context, p geom.Point) (dock.Placement, bool) {
	if w.locked {
		return dock.Placement{}, false
	}
	pl, ok := w.gesture.HitTest(w.tree, w.viewport, p)
	if ok {
		observability.Layout().OnDragOver(ctx, string(pl.Target), pl.Side.String())
	} else {
		observability.Layout().OnDragOver(ctx, "", "")
	}
	return pl, ok
}

// DragLeave abandons the pending placement.
func (w *Workspace) DragLeave() { w.gesture.Reset() }

// Pending returns the placement the next drop would use.
func (w *Workspace) Pending() (dock.Placement, bool) { return w.gesture.Current() }

// Drop docks the catalog panel panelID at the pending placement. Dropping
// a panel that is already docked moves it.
func (w *Workspace) Drop(ctx context.Context, panelID string) (dock.Key, error) {
	key, err := w.drop(panelID)
	observability.Layout().OnDrop(ctx, panelID, string(key), err)
	return key, err
}

func (w *Workspace) drop(panelID string) (dock.Key, error) {
	if err := w.checkUnlocked(); err != nil {
		return "", err
	}
	if err := errs.ValidatePanelID(panelID); err != nil {
		return "", err
	}
	panel, ok := w.byID[panelID]
	if !ok {
		return "", errs.New(errs.ErrCodeUnknownPanel, "no panel %q in catalog", panelID)
	}
	if n, docked := w.tree.FindContent(panelID); docked {
		return w.move(n.Key)
	}
	pl, ok := w.gesture.Current()
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidTarget, "no drop target under the pointer")
	}
	key, err := w.tree.Insert(pl, dock.Content{ID: panel.ID, Name: panel.Name})
	if err != nil {
		return "", err
	}
	w.gesture.Reset()
	w.logger.Info("Docked panel", "panel", panel.ID, "side", pl.Side, "key", key)
	return key, nil
}

// DropAt is DragOver followed by Drop.
func (w *Workspace) DropAt(ctx context.Context, panelID string, p geom.Point) (dock.Key, error) {
	if err := w.checkUnlocked(); err != nil {
		return "", err
	}
	if _, ok := w.DragOver(ctx, p); !ok {
		return "", errs.New(errs.ErrCodeInvalidTarget, "no drop target at (%v, %v)", p.X, p.Y)
	}
	return w.Drop(ctx, panelID)
}

// MoveTo re-docks leaf src at the pending placement.
func (w *Workspace) MoveTo(ctx context.Context, src dock.Key) (dock.Key, error) {
	var key dock.Key
	err := w.checkUnlocked()
	if err == nil {
		key, err = w.move(src)
	}
	observability.Layout().OnMove(ctx, string(src), string(key), err)
	return key, err
}

func (w *Workspace) move(src dock.Key) (dock.Key, error) {
	pl, ok := w.gesture.Current()
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidTarget, "no drop target under the pointer")
	}
	key, err := w.tree.Move(src, pl)
	if err != nil {
		return "", err
	}
	w.gesture.Reset()
	w.logger.Info("Moved panel", "from", src, "to", key, "side", pl.Side)
	return key, nil
}

// Remove undocks leaf key.
func (w *Workspace) Remove(ctx context.Context, key dock.Key) error {
	err := w.remove(key)
	observability.Layout().OnRemove(ctx, string(key), err)
	return err
}

func (w *Workspace) remove(key dock.Key) error {
	if err := w.checkUnlocked(); err != nil {
		return err
	}
	holder, err := w.tree.Remove(key)
	if err != nil {
		return err
	}
	w.gesture.Reset()
	w.drag = nil
	w.logger.Info("Undocked panel", "key", key, "collapsed_into", holder)
	return nil
}

// RemovePanel undocks the leaf showing panelID.
func (w *Workspace) RemovePanel(ctx context.Context, panelID string) error {
	n, ok := w.tree.FindContent(panelID)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "panel %q is not docked", panelID)
	}
	return w.Remove(ctx, n.Key)
}

// =============================================================================
// Divider drags
// =============================================================================

// BeginResize starts dragging the divider of split.
func (w *Workspace) BeginResize(split dock.Key) error {
	if err := w.checkUnlocked(); err != nil {
		return err
	}
	d, err := w.tree.BeginDrag(split, dock.DragOptions{Clamp: w.clamp})
	if err != nil {
		return err
	}
	w.drag = d
	w.logger.Debug("Divider drag started", "split", split)
	return nil
}

// BeginResizeAt starts dragging the divider under p.
func (w *Workspace) BeginResizeAt(p geom.Point) (dock.Key, error) {
	if err := w.checkUnlocked(); err != nil {
		return "", err
	}
	split, ok := dock.DividerAt(w.tree, w.viewport, p, DividerSlop)
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidTarget, "no divider at (%v, %v)", p.X, p.Y)
	}
	return split, w.BeginResize(split)
}

// Resizing returns the split being dragged.
func (w *Workspace) Resizing() (dock.Key, bool) {
	if w.drag == nil {
		return "", false
	}
	return w.drag.Key(), true
}

// ResizeBy moves the active divider by delta pixels and reports whether
// the layout changed.
func (w *Workspace) ResizeBy(ctx context.Context, delta float64) (bool, error) {
	var (
		split dock.Key
		ok    bool
		err   error
	)
	switch {
	case w.locked:
		err = errs.New(errs.ErrCodeLocked, "layout is locked")
	case w.drag == nil:
		err = errs.New(errs.ErrCodeInvalidInput, "no divider drag in progress")
	default:
		split = w.drag.Key()
		ok, err = w.drag.Move(delta, w.viewport)
	}
	observability.Layout().OnResize(ctx, string(split), delta, ok, err)
	if err == nil && !ok {
		w.logger.Debug("Resize rejected", "split", split, "delta", delta)
	}
	return ok, err
}

// EndResize finishes the divider drag.
func (w *Workspace) EndResize() { w.drag = nil }
