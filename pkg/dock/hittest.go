package dock

import (
	"fmt"
	"math"

	"github.com/matzehuels/dockyard/pkg/geom"
)

// Side names the edge of a leaf a dragged panel would dock against.
type Side int

const (
	// SideNone is used for the placement into an empty tree.
	SideNone Side = iota
	SideLeft
	SideTop
	SideRight
	SideBottom
)

var sideNames = [...]string{"none", "left", "top", "right", "bottom"}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("side(%d)", int(s))
	}
	return sideNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(sideNames) {
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
	return []byte(sideNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	for i, name := range sideNames {
		if name == string(b) {
			*s = Side(i)
			return nil
		}
	}
	return fmt.Errorf("invalid side %q", b)
}

// Orientation returns the split a drop on s creates.
func (s Side) Orientation() Orientation {
	switch s {
	case SideLeft, SideRight:
		return OrientationRow
	case SideTop, SideBottom:
		return OrientationColumn
	}
	return OrientationLeaf
}

// leading reports whether the new leaf goes first.
func (s Side) leading() bool { return s == SideLeft || s == SideTop }

// Placement describes where a drop would land.
type Placement struct {
	// Target is the leaf to split. Empty for the root placement.
	Target      Key
	Side        Side
	Orientation Orientation
	// Ratio is the normalized position of the new shared boundary.
	Ratio float64
	// Bounds are the normalized bounds the new leaf will get.
	Bounds Bounds
	// Region is the pixel polygon that selected this placement.
	Region geom.Polygon
	// Preview is the pixel rectangle the new panel would occupy.
	Preview geom.Rect
}

// IsRoot reports whether p creates the first node of an empty tree.
func (p Placement) IsRoot() bool { return p.Orientation == OrientationLeaf }

// HitTest finds the placement under p. It reports false when the viewport
// has no area, p is outside it, or p lies on a gutter.
func HitTest(t *Tree, viewport geom.Rect, p geom.Point) (Placement, bool) {
	if viewport.IsEmpty() || !viewport.Contains(p) {
		return Placement{}, false
	}
	if t.Empty() {
		return Placement{
			Side:        SideNone,
			Orientation: OrientationLeaf,
			Bounds:      Full,
			Region:      viewport.Polygon(),
			Preview:     viewport,
		}, true
	}

	n := t.nodes[t.root]
	f := Resolve(n.Bounds, ViewportFrame(viewport), geom.Insets{})
	if !f.Inner.Contains(p) {
		return Placement{}, false
	}
	for {
		s, ok := n.Body.(Split)
		if !ok {
			break
		}
		next := -1
		var nf Frame
		for i, c := range s.Children {
			cf := Resolve(t.nodes[c].Bounds, f, reservation(s.Orientation, i, t.opts.Gutter))
			if cf.Inner.Contains(p) {
				next, nf = i, cf
				break
			}
		}
		if next < 0 {
			return Placement{}, false
		}
		n, f = t.nodes[s.Children[next]], nf
	}
	return t.quadrant(n.Key, f, p)
}

// quadrant splits a leaf's inner rectangle into four triangles meeting at
// its center and returns the placement for the one containing p.
func (t *Tree) quadrant(k Key, f Frame, p geom.Point) (Placement, bool) {
	r := f.Inner
	if r.IsEmpty() {
		return Placement{}, false
	}
	tl, tr, br, bl := r.Corners()
	c := r.Center()
	regions := [...]struct {
		side Side
		poly geom.Polygon
	}{
		{SideLeft, geom.Polygon{tl, c, bl}},
		{SideTop, geom.Polygon{tl, tr, c}},
		{SideRight, geom.Polygon{tr, br, c}},
		{SideBottom, geom.Polygon{bl, c, br}},
	}

	side := SideNone
	var region geom.Polygon
	for _, q := range regions {
		if q.poly.Contains(p) {
			side, region = q.side, q.poly
			break
		}
	}
	if side == SideNone {
		// Edges and the center belong to no triangle under the parity rule.
		dx := (p.X - c.X) / r.Width()
		dy := (p.Y - c.Y) / r.Height()
		switch {
		case math.Abs(dx) >= math.Abs(dy) && dx < 0:
			side = SideLeft
		case math.Abs(dx) >= math.Abs(dy):
			side = SideRight
		case dy < 0:
			side = SideTop
		default:
			side = SideBottom
		}
		for _, q := range regions {
			if q.side == side {
				region = q.poly
			}
		}
	}

	o := side.Orientation()
	ratio := t.opts.SplitRatio
	first, second := splitBounds(o, ratio)
	nb, idx := second, 1
	if side.leading() {
		nb, idx = first, 0
	}
	preview := Resolve(nb, f, reservation(o, idx, t.opts.Gutter)).Inner
	return Placement{
		Target:      k,
		Side:        side,
		Orientation: o,
		Ratio:       ratio,
		Bounds:      nb,
		Region:      region,
		Preview:     preview,
	}, true
}

// Gesture remembers the last placement of one drag so that small pointer
// jitter inside the same drop region does not re-run the descent. The zero
// value is ready to use.
type Gesture struct {
	tree     *Tree
	rev      uint64
	viewport geom.Rect
	last     Placement
	active   bool
}

// HitTest returns the remembered placement while p stays inside its region
// and neither the tree nor the viewport changed; otherwise it runs a fresh
// HitTest. A miss clears the memory.
func (g *Gesture) HitTest(t *Tree, viewport geom.Rect, p geom.Point) (Placement, bool) {
	if g.active && g.tree == t && g.rev == t.rev && g.viewport == viewport && g.last.Region.Contains(p) {
		return g.last, true
	}
	pl, ok := HitTest(t, viewport, p)
	if !ok {
		g.Reset()
		return Placement{}, false
	}
	g.tree, g.rev, g.viewport, g.last, g.active = t, t.rev, viewport, pl, true
	return pl, true
}

// Current returns the remembered placement, if any.
func (g *Gesture) Current() (Placement, bool) { return g.last, g.active }

// Reset forgets the remembered placement.
func (g *Gesture) Reset() { *g = Gesture{} }

// DividerAt returns the split whose gutter contains p, widened by slop
// pixels on both sides along the split axis. Nested gutters resolve to the
// innermost split.
func DividerAt(t *Tree, viewport geom.Rect, p geom.Point, slop float64) (Key, bool) {
	if viewport.IsEmpty() || t.Empty() {
		return "", false
	}
	frames := t.Frames(viewport)
	var hit Key
	t.Walk(func(n Node, _ int) bool {
		s, ok := n.Body.(Split)
		if !ok {
			return false
		}
		g := dividerRect(s, frames[n.Key], frames[s.Children[0]], frames[s.Children[1]])
		if s.Orientation == OrientationRow {
			g.Left, g.Right = g.Left-slop, g.Right+slop
		} else {
			g.Top, g.Bottom = g.Top-slop, g.Bottom+slop
		}
		if g.Contains(p) {
			hit = n.Key
		}
		return true
	})
	return hit, hit != ""
}

// Divider returns the pixel rectangle of the gutter between the two
// children of split k.
func (t *Tree) Divider(k Key, viewport geom.Rect) (geom.Rect, error) {
	s, err := t.split(k)
	if err != nil {
		return geom.Rect{}, err
	}
	pf, err := t.Frame(k, viewport)
	if err != nil {
		return geom.Rect{}, err
	}
	a := Resolve(t.nodes[s.Children[0]].Bounds, pf, reservation(s.Orientation, 0, t.opts.Gutter))
	b := Resolve(t.nodes[s.Children[1]].Bounds, pf, reservation(s.Orientation, 1, t.opts.Gutter))
	return dividerRect(s, pf, a, b), nil
}

func dividerRect(s Split, parent, a, b Frame) geom.Rect {
	if s.Orientation == OrientationRow {
		return geom.Rect{Left: a.Inner.Right, Top: parent.Inner.Top, Right: b.Inner.Left, Bottom: parent.Inner.Bottom}
	}
	return geom.Rect{Left: parent.Inner.Left, Top: a.Inner.Bottom, Right: parent.Inner.Right, Bottom: b.Inner.Top}
}
