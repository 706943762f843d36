package dock

import (
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Frame is the resolved pixel geometry of a node. Outer is the area the
// node's bounds cover inside its parent; Inner is Outer minus the half
// gutter the node gives up to its divider. Children resolve against the
// parent's Inner rectangle.
type Frame struct {
	Outer geom.Rect
	Inner geom.Rect
}

// ViewportFrame is the frame the root resolves against.
func ViewportFrame(viewport geom.Rect) Frame {
	return Frame{Outer: viewport, Inner: viewport}
}

// Resolve maps normalized bounds into the parent's content box and removes
// the reserved gutter. A parent with no area yields a zero-size frame at
// its origin.
func Resolve(b Bounds, parent Frame, reserve geom.Insets) Frame {
	box := parent.Inner
	if box.IsEmpty() {
		origin := geom.Rect{Left: box.Left, Top: box.Top, Right: box.Left, Bottom: box.Top}
		return Frame{Outer: origin, Inner: origin}
	}
	w, h := box.Width(), box.Height()
	outer := geom.Rect{
		Left:   box.Left + b.Left*w,
		Top:    box.Top + b.Top*h,
		Right:  box.Left + b.Right*w,
		Bottom: box.Top + b.Bottom*h,
	}
	return Frame{Outer: outer, Inner: outer.Inset(reserve)}
}

// reservation returns the gutter share of the child at index i of an o
// split.
func reservation(o Orientation, i int, gutter float64) geom.Insets {
	half := gutter / 2
	switch {
	case o == OrientationRow && i == 0:
		return geom.Insets{Right: half}
	case o == OrientationRow:
		return geom.Insets{Left: half}
	case o == OrientationColumn && i == 0:
		return geom.Insets{Bottom: half}
	case o == OrientationColumn:
		return geom.Insets{Top: half}
	}
	return geom.Insets{}
}

// reserveOf returns the gutter reservation of n, derived from its position
// in its parent.
func (t *Tree) reserveOf(n *Node) geom.Insets {
	if n.Parent == "" {
		return geom.Insets{}
	}
	p := t.nodes[n.Parent]
	s := p.Body.(Split)
	i := 0
	if s.Children[1] == n.Key {
		i = 1
	}
	return reservation(s.Orientation, i, t.opts.Gutter)
}

// Frame resolves a single node by walking its ancestor chain.
func (t *Tree) Frame(k Key, viewport geom.Rect) (Frame, error) {
	n, err := t.lookup(k)
	if err != nil {
		return Frame{}, err
	}
	var chain []*Node
	for cur := n; ; cur = t.nodes[cur.Parent] {
		chain = append(chain, cur)
		if cur.Parent == "" {
			break
		}
	}
	f := ViewportFrame(viewport)
	for i := len(chain) - 1; i >= 0; i-- {
		f = Resolve(chain[i].Bounds, f, t.reserveOf(chain[i]))
	}
	return f, nil
}

// Frames resolves every node in one pass.
func (t *Tree) Frames(viewport geom.Rect) map[Key]Frame {
	out := make(map[Key]Frame, len(t.nodes))
	if t.root == "" {
		return out
	}
	var walk func(k Key, parent Frame, reserve geom.Insets)
	walk = func(k Key, parent Frame, reserve geom.Insets) {
		n := t.nodes[k]
		f := Resolve(n.Bounds, parent, reserve)
		out[k] = f
		if s, ok := n.Body.(Split); ok {
			for i, c := range s.Children {
				walk(c, f, reservation(s.Orientation, i, t.opts.Gutter))
			}
		}
	}
	walk(t.root, ViewportFrame(viewport), geom.Insets{})
	return out
}
