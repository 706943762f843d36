package dock

// MinWidth returns the smallest outer width the subtree at k can take
// without any leaf dropping below MinSize. Rows add their children plus
// one gutter; columns take the wider child.
func (t *Tree) MinWidth(k Key) (float64, error) {
	if _, err := t.lookup(k); err != nil {
		return 0, err
	}
	return t.minExtent(k, OrientationRow, nil), nil
}

// MinHeight is MinWidth for the vertical axis.
func (t *Tree) MinHeight(k Key) (float64, error) {
	if _, err := t.lookup(k); err != nil {
		return 0, err
	}
	return t.minExtent(k, OrientationColumn, nil), nil
}

// minExtent computes the minimum along axis (Row = horizontal, Column =
// vertical), consulting memo when non-nil.
func (t *Tree) minExtent(k Key, axis Orientation, memo map[Key]float64) float64 {
	if v, ok := memo[k]; ok {
		return v
	}
	n := t.nodes[k]
	var v float64
	switch b := n.Body.(type) {
	case Split:
		a := t.minExtent(b.Children[0], axis, memo)
		c := t.minExtent(b.Children[1], axis, memo)
		if b.Orientation == axis {
			v = a + c + t.opts.Gutter
		} else {
			v = max(a, c)
		}
	default:
		v = t.opts.MinSize
	}
	if memo != nil {
		memo[k] = v
	}
	return v
}

// Minimums memoizes MinWidth and MinHeight for the length of one
// gesture. The memo drops itself whenever the tree's revision moves on.
type Minimums struct {
	t      *Tree
	rev    uint64
	width  map[Key]float64
	height map[Key]float64
}

// Minimums returns an empty memo bound to t.
func (t *Tree) Minimums() *Minimums {
	m := &Minimums{t: t}
	m.reset()
	return m
}

func (m *Minimums) reset() {
	m.rev = m.t.rev
	m.width = make(map[Key]float64)
	m.height = make(map[Key]float64)
}

// Width returns the memoized minimum width of k.
func (m *Minimums) Width(k Key) (float64, error) {
	return m.get(k, OrientationRow)
}

// Height returns the memoized minimum height of k.
func (m *Minimums) Height(k Key) (float64, error) {
	return m.get(k, OrientationColumn)
}

// along returns the minimum of k along the axis o splits.
func (m *Minimums) along(k Key, o Orientation) (float64, error) {
	if o == OrientationColumn {
		return m.Height(k)
	}
	return m.Width(k)
}

func (m *Minimums) get(k Key, axis Orientation) (float64, error) {
	if m.rev != m.t.rev {
		m.reset()
	}
	if _, err := m.t.lookup(k); err != nil {
		return 0, err
	}
	memo := m.width
	if axis == OrientationColumn {
		memo = m.height
	}
	return m.t.minExtent(k, axis, memo), nil
}
