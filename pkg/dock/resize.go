package dock

import (
	"math"

	errs "github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// DragOptions tunes a divider drag.
type DragOptions struct {
	// Clamp clips a move that would violate a minimum to the furthest
	// allowed position instead of rejecting it.
	Clamp bool
}

// DividerDrag is one pointer gesture on the divider of a single split.
// Minimum sizes are memoized for the life of the drag.
type DividerDrag struct {
	t    *Tree
	key  Key
	min  *Minimums
	opts DragOptions
}

// BeginDrag starts a divider drag on split k.
func (t *Tree) BeginDrag(k Key, opts DragOptions) (*DividerDrag, error) {
	if _, err := t.split(k); err != nil {
		return nil, err
	}
	return &DividerDrag{t: t, key: k, min: t.Minimums(), opts: opts}, nil
}

// Key returns the split being dragged.
func (d *DividerDrag) Key() Key { return d.key }

// Move applies one pointer delta in pixels along the split axis. It
// reports whether the tree changed. A delta that would leave either child
// smaller than its minimum is rejected without mutating anything, unless
// the drag clamps.
func (d *DividerDrag) Move(delta float64, viewport geom.Rect) (bool, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return false, errs.New(errs.ErrCodeInvalidInput, "invalid resize delta %v", delta)
	}
	s, extent, lo, hi, err := d.t.ratioRange(d.key, viewport, d.min)
	if err != nil {
		return false, err
	}
	a, b := d.t.nodes[s.Children[0]], d.t.nodes[s.Children[1]]
	_, cur := a.Bounds.span(s.Orientation)
	next := cur + delta/extent

	if d.opts.Clamp {
		if lo > hi+eps {
			return false, nil
		}
		next = min(max(next, lo), hi)
	} else if next < lo-eps || next > hi+eps {
		return false, nil
	}
	if next == cur {
		return delta == 0, nil
	}

	if s.Orientation == OrientationColumn {
		a.Bounds.Bottom, b.Bounds.Top = next, next
	} else {
		a.Bounds.Right, b.Bounds.Left = next, next
	}
	d.t.rev++
	// Moving a divider never changes minimums; keep the memo warm.
	if d.min.rev == d.t.rev-1 {
		d.min.rev = d.t.rev
	}
	return true, nil
}

// Resize moves the divider of split k by delta pixels. It is a drag of a
// single step.
func (t *Tree) Resize(k Key, delta float64, viewport geom.Rect) (bool, error) {
	d, err := t.BeginDrag(k, DragOptions{})
	if err != nil {
		return false, err
	}
	return d.Move(delta, viewport)
}

// DividerRange returns the pixel interval the shared boundary of split k
// may occupy without either child dropping below its minimum. When the
// split is too small for both minimums lo exceeds hi.
func (t *Tree) DividerRange(k Key, viewport geom.Rect) (lo, hi float64, err error) {
	_, _, rlo, rhi, err := t.ratioRange(k, viewport, nil)
	if err != nil {
		return 0, 0, err
	}
	f, _ := t.Frame(k, viewport)
	start, extent := f.Inner.Left, f.Inner.Width()
	if o := t.nodes[k].Orientation(); o == OrientationColumn {
		start, extent = f.Inner.Top, f.Inner.Height()
	}
	return start + rlo*extent, start + rhi*extent, nil
}

// ratioRange returns the split body, its inner extent along the split axis
// and the normalized interval its shared boundary may occupy. Each child's
// outer extent must cover its minimum plus its half gutter.
func (t *Tree) ratioRange(k Key, viewport geom.Rect, m *Minimums) (s Split, extent, lo, hi float64, err error) {
	s, err = t.split(k)
	if err != nil {
		return s, 0, 0, 0, err
	}
	f, err := t.Frame(k, viewport)
	if err != nil {
		return s, 0, 0, 0, err
	}
	extent = f.Inner.Width()
	if s.Orientation == OrientationColumn {
		extent = f.Inner.Height()
	}
	if !(extent > 0) {
		return s, 0, 0, 0, errs.New(errs.ErrCodeDegenerate, "split %q has no extent along its axis", k)
	}
	if m == nil {
		m = t.Minimums()
	}
	min0, err := m.along(s.Children[0], s.Orientation)
	if err != nil {
		return s, 0, 0, 0, err
	}
	min1, err := m.along(s.Children[1], s.Orientation)
	if err != nil {
		return s, 0, 0, 0, err
	}
	half := t.opts.Gutter / 2
	return s, extent, (min0 + half) / extent, 1 - (min1+half)/extent, nil
}

// split returns the body of split k, or INVALID_TARGET.
func (t *Tree) split(k Key) (Split, error) {
	n, err := t.lookup(k)
	if err != nil {
		return Split{}, err
	}
	s, ok := n.Body.(Split)
	if !ok {
		return Split{}, errs.New(errs.ErrCodeInvalidTarget, "node %q is a leaf, not a split", k)
	}
	return s, nil
}
