package dock

import (
	"math"

	"github.com/google/uuid"

	errs "github.com/matzehuels/dockyard/pkg/errors"
)

// Default engine settings, in pixels unless noted.
const (
	// DefaultGutter is the divider thickness between two siblings.
	DefaultGutter = 10.0

	// DefaultMinSize is the minimum content extent of a leaf on both axes.
	DefaultMinSize = 100.0

	// DefaultSplitRatio is where a fresh split puts its shared boundary
	// (normalized).
	DefaultSplitRatio = 0.5
)

// eps absorbs floating point noise in normalized comparisons.
const eps = 1e-9

// Options configures a Tree. Zero fields select the package defaults.
type Options struct {
	Gutter     float64
	MinSize    float64
	SplitRatio float64

	// NewKey generates node keys. Defaults to random UUIDs.
	NewKey func() Key
}

func (o *Options) setDefaults() {
	if o.Gutter <= 0 {
		o.Gutter = DefaultGutter
	}
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinSize
	}
	if o.SplitRatio <= 0 || o.SplitRatio >= 1 {
		o.SplitRatio = DefaultSplitRatio
	}
	if o.NewKey == nil {
		o.NewKey = func() Key { return Key(uuid.NewString()) }
	}
}

// Tree is an arena of layout nodes addressed by Key. Parent and child
// relations are stored as keys, so the tree owns every node exactly once.
//
// The zero value is not usable; use New. A Tree is not safe for concurrent
// use: mutations must be serialized by the owner.
type Tree struct {
	nodes map[Key]*Node
	root  Key
	opts  Options
	rev   uint64
}

// New creates an empty tree.
func New(opts Options) *Tree {
	opts.setDefaults()
	return &Tree{
		nodes: make(map[Key]*Node),
		opts:  opts,
	}
}

// Options returns the effective settings, defaults applied.
func (t *Tree) Options() Options { return t.opts }

// Revision increases with every successful mutation.
func (t *Tree) Revision() uint64 { return t.rev }

// Empty reports whether the tree has no root.
func (t *Tree) Empty() bool { return t.root == "" }

// Len returns the number of nodes, leaves and splits alike.
func (t *Tree) Len() int { return len(t.nodes) }

// RootKey returns the root's key, or "" for an empty tree.
func (t *Tree) RootKey() Key { return t.root }

// Root returns a copy of the root node.
func (t *Tree) Root() (Node, bool) { return t.Node(t.root) }

// Node returns a copy of the node stored under k.
func (t *Tree) Node(k Key) (Node, bool) {
	n, ok := t.nodes[k]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether k names a node of t.
func (t *Tree) Has(k Key) bool {
	_, ok := t.nodes[k]
	return ok
}

// Sibling returns the other child of k's parent.
func (t *Tree) Sibling(k Key) (Key, bool) {
	n, ok := t.nodes[k]
	if !ok || n.Parent == "" {
		return "", false
	}
	kids, _ := t.nodes[n.Parent].Children()
	if kids[0] == k {
		return kids[1], true
	}
	return kids[0], true
}

// Walk visits every node in pre-order, first child before second. Returning
// false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	if t.root == "" {
		return
	}
	var walk func(k Key, depth int)
	walk = func(k Key, depth int) {
		n := t.nodes[k]
		if !fn(*n, depth) {
			return
		}
		if kids, ok := n.Children(); ok {
			walk(kids[0], depth+1)
			walk(kids[1], depth+1)
		}
	}
	walk(t.root, 0)
}

// Leaves returns all leaves in reading order.
func (t *Tree) Leaves() []Node {
	var out []Node
	t.Walk(func(n Node, _ int) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindContent returns the leaf holding the content with the given ID.
func (t *Tree) FindContent(id string) (Node, bool) {
	for _, n := range t.Leaves() {
		if c, _ := n.Content(); c.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Clone returns an independent copy that shares only content references.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		nodes: make(map[Key]*Node, len(t.nodes)),
		root:  t.root,
		opts:  t.opts,
		rev:   t.rev,
	}
	for k, n := range t.nodes {
		cp := *n
		c.nodes[k] = &cp
	}
	return c
}

// Equal reports whether t and o have the same keys, shape, bounds and
// content identifiers. Content references are not compared.
func (t *Tree) Equal(o *Tree) bool {
	if t.root != o.root || len(t.nodes) != len(o.nodes) {
		return false
	}
	for k, a := range t.nodes {
		b, ok := o.nodes[k]
		if !ok || a.Parent != b.Parent || !boundsEqual(a.Bounds, b.Bounds) {
			return false
		}
		switch ab := a.Body.(type) {
		case Leaf:
			bb, ok := b.Body.(Leaf)
			if !ok || ab.Content.ID != bb.Content.ID || ab.Content.Name != bb.Content.Name {
				return false
			}
		case Split:
			if bb, ok := b.Body.(Split); !ok || ab != bb {
				return false
			}
		}
	}
	return true
}

func boundsEqual(a, b Bounds) bool {
	return math.Abs(a.Left-b.Left) < eps && math.Abs(a.Top-b.Top) < eps &&
		math.Abs(a.Right-b.Right) < eps && math.Abs(a.Bottom-b.Bottom) < eps
}

// Validate checks every structural invariant: leaf xor split, positive
// normalized extents, consistent parent links, continuous shared
// boundaries and full cross-axis extent for split children.
func (t *Tree) Validate() error {
	if t.root == "" {
		if len(t.nodes) != 0 {
			return errs.New(errs.ErrCodeCorruptTree, "empty tree holds %d nodes", len(t.nodes))
		}
		return nil
	}
	root, ok := t.nodes[t.root]
	if !ok {
		return errs.New(errs.ErrCodeCorruptTree, "root %q missing", t.root)
	}
	if root.Parent != "" {
		return errs.New(errs.ErrCodeCorruptTree, "root %q has parent %q", t.root, root.Parent)
	}

	seen := make(map[Key]bool, len(t.nodes))
	var check func(k Key) error
	check = func(k Key) error {
		if seen[k] {
			return errs.New(errs.ErrCodeCorruptTree, "node %q reachable twice", k)
		}
		seen[k] = true
		n := t.nodes[k]
		if !n.Bounds.Valid() {
			return errs.New(errs.ErrCodeCorruptTree, "node %q has invalid bounds %+v", k, n.Bounds)
		}
		switch b := n.Body.(type) {
		case Leaf:
			return nil
		case Split:
			if !b.Orientation.IsSplit() {
				return errs.New(errs.ErrCodeCorruptTree, "split %q has orientation %s", k, b.Orientation)
			}
			var kids [2]*Node
			for i, ck := range b.Children {
				c, ok := t.nodes[ck]
				if !ok {
					return errs.New(errs.ErrCodeCorruptTree, "split %q references missing child %q", k, ck)
				}
				if c.Parent != k {
					return errs.New(errs.ErrCodeCorruptTree, "child %q of %q points at parent %q", ck, k, c.Parent)
				}
				lead, trail := c.Bounds.cross(b.Orientation)
				if math.Abs(lead) > eps || math.Abs(trail-1) > eps {
					return errs.New(errs.ErrCodeCorruptTree, "child %q of %q does not span the cross axis", ck, k)
				}
				kids[i] = c
			}
			lead0, trail0 := kids[0].Bounds.span(b.Orientation)
			lead1, trail1 := kids[1].Bounds.span(b.Orientation)
			if math.Abs(lead0) > eps || math.Abs(trail1-1) > eps {
				return errs.New(errs.ErrCodeCorruptTree, "children of %q do not cover the split axis", k)
			}
			if trail0 != lead1 {
				return errs.New(errs.ErrCodeCorruptTree, "children of %q are not continuous (%v != %v)", k, trail0, lead1)
			}
			for _, ck := range b.Children {
				if err := check(ck); err != nil {
					return err
				}
			}
			return nil
		default:
			return errs.New(errs.ErrCodeCorruptTree, "node %q has no body", k)
		}
	}
	if err := check(t.root); err != nil {
		return err
	}
	if len(seen) != len(t.nodes) {
		return errs.New(errs.ErrCodeCorruptTree, "%d nodes unreachable from root", len(t.nodes)-len(seen))
	}
	return nil
}

// lookup returns the live node for k or an INVALID_TARGET error.
func (t *Tree) lookup(k Key) (*Node, error) {
	n, ok := t.nodes[k]
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidTarget, "no node %q in tree", k)
	}
	return n, nil
}

// newKey returns a key not yet used in t.
func (t *Tree) newKey() Key {
	for {
		k := t.opts.NewKey()
		if _, taken := t.nodes[k]; !taken && k != "" {
			return k
		}
	}
}
