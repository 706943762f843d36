package workspace

import (
	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Snapshot is a read-only view of a workspace for rendering layers.
type Snapshot struct {
	Viewport geom.Rect      `json:"viewport"`
	Locked   bool           `json:"locked"`
	Revision uint64         `json:"revision"`
	Root     dock.Key       `json:"root,omitempty"`
	Nodes    []NodeView     `json:"nodes"`
	Pending  *PlacementView `json:"pending,omitempty"`
	Resizing dock.Key       `json:"resizing,omitempty"`
}

// NodeView is one resolved node, listed in pre-order.
type NodeView struct {
	Key         dock.Key         `json:"key"`
	Parent      dock.Key         `json:"parent,omitempty"`
	Depth       int              `json:"depth"`
	Orientation dock.Orientation `json:"orientation"`
	Bounds      dock.Bounds      `json:"bounds"`
	Outer       geom.Rect        `json:"outer"`
	Inner       geom.Rect        `json:"inner"`
	Children    []dock.Key       `json:"children,omitempty"`
	Panel       string           `json:"panel,omitempty"`
	Name        string           `json:"name,omitempty"`
	// Divider is the gutter between the children of a split.
	Divider *geom.Rect `json:"divider,omitempty"`
}

// PlacementView is the JSON form of a pending drop.
type PlacementView struct {
	Target      dock.Key         `json:"target,omitempty"`
	Side        dock.Side        `json:"side"`
	Orientation dock.Orientation `json:"orientation"`
	Ratio       float64          `json:"ratio"`
	Bounds      dock.Bounds      `json:"bounds"`
	Region      []geom.Point     `json:"region"`
	Preview     geom.Rect        `json:"preview"`
}

// NewPlacementView converts a placement for serialization.
func NewPlacementView(p dock.Placement) *PlacementView {
	return &PlacementView{
		Target:      p.Target,
		Side:        p.Side,
		Orientation: p.Orientation,
		Ratio:       p.Ratio,
		Bounds:      p.Bounds,
		Region:      p.Region,
		Preview:     p.Preview,
	}
}

// PanelState is a catalog entry with its docking status.
type PanelState struct {
	Panel
	Docked bool     `json:"docked"`
	Key    dock.Key `json:"key,omitempty"`
}

// Snapshot resolves every node against the current viewport.
func (w *Workspace) Snapshot() Snapshot {
	s := Snapshot{
		Viewport: w.viewport,
		Locked:   w.locked,
		Revision: w.tree.Revision(),
		Root:     w.tree.RootKey(),
		Nodes:    make([]NodeView, 0, w.tree.Len()),
	}
	frames := w.tree.Frames(w.viewport)
	w.tree.Walk(func(n dock.Node, depth int) bool {
		f := frames[n.Key]
		v := NodeView{
			Key:         n.Key,
			Parent:      n.Parent,
			Depth:       depth,
			Orientation: n.Orientation(),
			Bounds:      n.Bounds,
			Outer:       f.Outer,
			Inner:       f.Inner,
		}
		if c, ok := n.Content(); ok {
			v.Panel, v.Name = c.ID, c.Name
		}
		if kids, ok := n.Children(); ok {
			v.Children = kids[:]
			if d, err := w.tree.Divider(n.Key, w.viewport); err == nil {
				v.Divider = &d
			}
		}
		s.Nodes = append(s.Nodes, v)
		return true
	})
	if p, ok := w.gesture.Current(); ok {
		s.Pending = NewPlacementView(p)
	}
	if k, ok := w.Resizing(); ok {
		s.Resizing = k
	}
	return s
}

// Panels lists the catalog in declaration order with docking status.
func (w *Workspace) Panels() []PanelState {
	out := make([]PanelState, len(w.catalog))
	for i, p := range w.catalog {
		out[i].Panel = p
		if n, ok := w.tree.FindContent(p.ID); ok {
			out[i].Docked, out[i].Key = true, n.Key
		}
	}
	return out
}

// Leaf returns the resolved view of the leaf showing panelID.
func (s Snapshot) Leaf(panelID string) (NodeView, bool) {
	for _, n := range s.Nodes {
		if n.Panel == panelID && n.Orientation == dock.OrientationLeaf {
			return n, true
		}
	}
	return NodeView{}, false
}
