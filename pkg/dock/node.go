package dock

import (
	"fmt"
	"math"
)

// Key identifies a node for its whole lifetime. Keys are assigned at
// creation and never reused within a tree.
type Key string

// Orientation describes how a node arranges its area.
type Orientation int

const (
	// OrientationLeaf marks a node that holds content and no children.
	OrientationLeaf Orientation = iota
	// OrientationRow arranges two children left to right.
	OrientationRow
	// OrientationColumn arranges two children top to bottom.
	OrientationColumn
)

// String returns "leaf", "row" or "column".
func (o Orientation) String() string {
	switch o {
	case OrientationLeaf:
		return "leaf"
	case OrientationRow:
		return "row"
	case OrientationColumn:
		return "column"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	switch o {
	case OrientationLeaf, OrientationRow, OrientationColumn:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("invalid orientation %d", int(o))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "leaf", "block":
		*o = OrientationLeaf
	case "row":
		*o = OrientationRow
	case "column":
		*o = OrientationColumn
	default:
		return fmt.Errorf("invalid orientation %q", b)
	}
	return nil
}

// IsSplit reports whether o arranges children.
func (o Orientation) IsSplit() bool { return o == OrientationRow || o == OrientationColumn }

// Bounds are a node's edges as fractions of its parent's content box.
// The root's bounds are fractions of the viewport.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Full covers the whole parent content box.
var Full = Bounds{Left: 0, Top: 0, Right: 1, Bottom: 1}

// Width returns the normalized horizontal span.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the normalized vertical span.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Valid reports whether b has positive extent on both axes and lies within
// the unit square.
func (b Bounds) Valid() bool {
	for _, v := range []float64{b.Left, b.Top, b.Right, b.Bottom} {
		if math.IsNaN(v) || v < -eps || v > 1+eps {
			return false
		}
	}
	return b.Right > b.Left && b.Bottom > b.Top
}

// span returns the leading and trailing edge along the axis o splits.
func (b Bounds) span(o Orientation) (lead, trail float64) {
	if o == OrientationColumn {
		return b.Top, b.Bottom
	}
	return b.Left, b.Right
}

// cross returns the leading and trailing edge across the axis o splits.
func (b Bounds) cross(o Orientation) (lead, trail float64) {
	if o == OrientationColumn {
		return b.Left, b.Right
	}
	return b.Top, b.Bottom
}

// splitBounds returns the bounds of both children of an o split whose
// shared boundary sits at ratio.
func splitBounds(o Orientation, ratio float64) (first, second Bounds) {
	if o == OrientationColumn {
		return Bounds{0, 0, 1, ratio}, Bounds{0, ratio, 1, 1}
	}
	return Bounds{0, 0, ratio, 1}, Bounds{ratio, 0, 1, 1}
}

// Content is the opaque payload of a leaf. ID is the identifier the
// rendering layer dragged in; Name is what it displays; Ref is anything the
// rendering layer wants to hang on the leaf.
type Content struct {
	ID   string
	Name string
	Ref  any
}

// Body is the variant part of a node: either a Leaf or a Split.
type Body interface {
	orientation() Orientation
}

// Leaf is the body of a node that displays content.
type Leaf struct {
	Content Content
}

func (Leaf) orientation() Orientation { return OrientationLeaf }

// Split is the body of a node divided into exactly two children.
type Split struct {
	Orientation Orientation
	Children    [2]Key
}

func (s Split) orientation() Orientation { return s.Orientation }

// Node is one entry of a Tree. Parent is empty for the root.
type Node struct {
	Key    Key
	Parent Key
	Bounds Bounds
	Body   Body
}

// Orientation returns OrientationLeaf for leaves and the split axis for
// splits.
func (n Node) Orientation() Orientation {
	if n.Body == nil {
		return OrientationLeaf
	}
	return n.Body.orientation()
}

// IsLeaf reports whether n holds content.
func (n Node) IsLeaf() bool {
	_, ok := n.Body.(Leaf)
	return ok
}

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool { return n.Parent == "" }

// Content returns the leaf content, or false for splits.
func (n Node) Content() (Content, bool) {
	l, ok := n.Body.(Leaf)
	return l.Content, ok
}

// Children returns both children of a split, or false for leaves.
func (n Node) Children() ([2]Key, bool) {
	s, ok := n.Body.(Split)
	return s.Children, ok
}
