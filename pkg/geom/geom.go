package geom

import "math"

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Insets is the space reserved on each side of a rectangle.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Horizontal returns the total inset along the x axis.
func (i Insets) Horizontal() float64 { return i.Left + i.Right }

// Vertical returns the total inset along the y axis.
func (i Insets) Vertical() float64 { return i.Top + i.Bottom }

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the geometric center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IsEmpty reports whether the rectangle has zero or negative area.
// NaN edges also count as empty.
func (r Rect) IsEmpty() bool {
	return !(r.Right > r.Left) || !(r.Bottom > r.Top)
}

// Contains reports whether p lies inside r. Left and top edges are
// inclusive, right and bottom edges exclusive, so two rectangles sharing
// an edge never both contain the same point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Inset shrinks r by in. If the insets exceed the rectangle's extent the
// result collapses to a zero-size rectangle at the midpoint of the
// overlapping edges instead of turning inside out.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		Left:   r.Left + in.Left,
		Top:    r.Top + in.Top,
		Right:  r.Right - in.Right,
		Bottom: r.Bottom - in.Bottom,
	}
	if out.Right < out.Left {
		mid := (out.Left + out.Right) / 2
		out.Left, out.Right = mid, mid
	}
	if out.Bottom < out.Top {
		mid := (out.Top + out.Bottom) / 2
		out.Top, out.Bottom = mid, mid
	}
	return out
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() (tl, tr, br, bl Point) {
	return Point{r.Left, r.Top}, Point{r.Right, r.Top}, Point{r.Right, r.Bottom}, Point{r.Left, r.Bottom}
}

// Polygon returns r as a clockwise polygon.
func (r Rect) Polygon() Polygon {
	tl, tr, br, bl := r.Corners()
	return Polygon{tl, tr, br, bl}
}

// Round snaps every edge to the nearest integer. Adjacent rectangles that
// share an edge keep sharing it after rounding.
func (r Rect) Round() Rect {
	return Rect{
		Left:   math.Round(r.Left),
		Top:    math.Round(r.Top),
		Right:  math.Round(r.Right),
		Bottom: math.Round(r.Bottom),
	}
}
