// Package dock implements a dockable-panel layout: a binary partition of a
// rectangular viewport into resizable regions that grows and shrinks as
// panels are dragged in and out.
//
// # Overview
//
// A [Tree] is an arena of [Node] values addressed by [Key]. Every node is
// either a [Leaf], which displays one piece of [Content], or a [Split],
// which divides its area between exactly two children along a row or a
// column. Node geometry is stored as [Bounds]: fractions of the parent's
// content box, so resizing the viewport never touches the tree.
//
// # Geometry
//
// [Tree.Frame] and [Tree.Frames] turn bounds into pixel [Frame] values.
// Siblings are separated by a gutter of [Options.Gutter] pixels; each child
// gives up half of it on the edge it shares with its sibling. The root
// gives up nothing.
//
// # Docking
//
// [HitTest] maps a pointer position to a [Placement]: the leaf under the
// pointer is cut into four triangles meeting at its center, and the
// triangle holding the pointer picks the side the dragged panel docks
// against. A [Gesture] keeps the placement stable while the pointer stays
// inside the same triangle.
//
//	t := dock.New(dock.Options{})
//	vp := geom.RectFromLTWH(0, 0, 800, 600)
//	p, _ := dock.HitTest(t, vp, geom.Pt(400, 300))
//	a, _ := t.Insert(p, dock.Content{ID: "editor"})
//	p, _ = dock.HitTest(t, vp, geom.Pt(50, 300))
//	b, _ := t.Insert(p, dock.Content{ID: "files"})
//
// [Tree.Insert] turns the target leaf into a split, [Tree.Remove] collapses
// it back and [Tree.Move] does both in one step. Inserting and removing the
// same leaf restores the tree exactly, keys included.
//
// # Resizing
//
// [Tree.Resize] and [DividerDrag] move the shared boundary of a split. A
// move that would squeeze either side below its minimum ([Tree.MinWidth],
// [Tree.MinHeight]) is rejected. Use [DividerAt] to find the divider under
// the pointer and [Tree.DividerRange] to clamp a drag handle.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
package dock
