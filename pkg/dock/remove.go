package dock

import (
	errs "github.com/matzehuels/dockyard/pkg/errors"
)

// Remove deletes leaf k and collapses its parent: the parent keeps its key
// and bounds but takes over the sibling's body, adopting the sibling's
// children if it had any. Remove returns the key now holding the sibling's
// subtree, or "" when the last leaf was removed.
func (t *Tree) Remove(k Key) (Key, error) {
	n, err := t.lookup(k)
	if err != nil {
		return "", err
	}
	if !n.IsLeaf() {
		return "", errs.New(errs.ErrCodeInvalidTarget, "node %q is a %s split, not a leaf", k, n.Orientation())
	}

	if n.Parent == "" {
		delete(t.nodes, k)
		t.root = ""
		t.rev++
		return "", nil
	}

	parent := t.nodes[n.Parent]
	sk, _ := t.Sibling(k)
	sib := t.nodes[sk]

	parent.Body = sib.Body
	if kids, ok := sib.Children(); ok {
		for _, c := range kids {
			t.nodes[c].Parent = parent.Key
		}
	}
	delete(t.nodes, k)
	delete(t.nodes, sk)
	t.rev++
	return parent.Key, nil
}

// Move undocks leaf src and docks its content at p as one step. The
// returned key holds src's content afterwards.
//
// Dropping a leaf onto itself changes nothing. Dropping it onto its own
// sibling targets the node that absorbs the sibling once src is gone.
func (t *Tree) Move(src Key, p Placement) (Key, error) {
	n, err := t.lookup(src)
	if err != nil {
		return "", err
	}
	c, ok := n.Content()
	if !ok {
		return "", errs.New(errs.ErrCodeInvalidTarget, "node %q is a %s split, not a leaf", src, n.Orientation())
	}
	if p.Target == src {
		return src, nil
	}
	if sk, ok := t.Sibling(src); ok && p.Target == sk {
		p.Target = n.Parent
	}

	work := t.Clone()
	if _, err := work.Remove(src); err != nil {
		return "", err
	}
	k, err := work.Insert(p, c)
	if err != nil {
		return "", err
	}
	t.nodes, t.root, t.rev = work.nodes, work.root, work.rev
	return k, nil
}
