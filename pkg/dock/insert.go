package dock

import (
	errs "github.com/matzehuels/dockyard/pkg/errors"
)

// Insert docks c at placement p and returns the key of the leaf holding c.
//
// On an empty tree p must be the root placement; the new leaf becomes the
// root with p.Bounds. Otherwise p.Target must be a leaf: it keeps its key
// and turns into a split of p.Orientation, its content moves into a fresh
// leaf, and c gets the other fresh leaf on the side p names.
func (t *Tree) Insert(p Placement, c Content) (Key, error) {
	if p.Orientation == OrientationLeaf {
		return t.insertRoot(p, c)
	}
	if !p.Orientation.IsSplit() {
		return "", errs.New(errs.ErrCodeInvalidInput, "invalid orientation %s", p.Orientation)
	}
	if p.Side.Orientation() != p.Orientation {
		return "", errs.New(errs.ErrCodeInvalidInput, "side %s does not produce a %s split", p.Side, p.Orientation)
	}
	if !(p.Ratio > 0 && p.Ratio < 1) {
		return "", errs.New(errs.ErrCodeInvalidInput, "split ratio %v outside (0,1)", p.Ratio)
	}
	target, err := t.lookup(p.Target)
	if err != nil {
		return "", err
	}
	old, ok := target.Body.(Leaf)
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidTarget, "node %q is a %s split, not a leaf", p.Target, target.Orientation())
	}

	first, second := splitBounds(p.Orientation, p.Ratio)
	moved := &Node{Key: t.newKey(), Parent: target.Key, Body: old}
	t.nodes[moved.Key] = moved
	added := &Node{Key: t.newKey(), Parent: target.Key, Body: Leaf{Content: c}}
	t.nodes[added.Key] = added

	var kids [2]Key
	if p.Side.leading() {
		added.Bounds, moved.Bounds = first, second
		kids = [2]Key{added.Key, moved.Key}
	} else {
		moved.Bounds, added.Bounds = first, second
		kids = [2]Key{moved.Key, added.Key}
	}
	target.Body = Split{Orientation: p.Orientation, Children: kids}
	t.rev++
	return added.Key, nil
}

func (t *Tree) insertRoot(p Placement, c Content) (Key, error) {
	if !t.Empty() {
		return "", errs.New(errs.ErrCodeInvalidTarget, "root placement on a non-empty tree")
	}
	if !p.Bounds.Valid() {
		return "", errs.New(errs.ErrCodeInvalidInput, "invalid root bounds %+v", p.Bounds)
	}
	n := &Node{Key: t.newKey(), Bounds: p.Bounds, Body: Leaf{Content: c}}
	t.nodes[n.Key] = n
	t.root = n.Key
	t.rev++
	return n.Key, nil
}
