// Package canvas draws resolved layouts as box-drawing text for terminals.
//
// A [Canvas] is a grid of runes, each tagged with a [Class] that a themed
// renderer can color. [Draw] resolves a layout into a canvas; [Canvas.String]
// returns plain text and [Canvas.Styled] colors it with lipgloss.
package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Class tags a cell for styling.
type Class uint8

const (
	ClassBlank Class = iota
	ClassBorder
	ClassActive
	ClassTitle
	ClassDivider
	ClassPreview
)

// wide marks the right half of a double-width rune.
const wide rune = 0

// BoxStyle is the set of glyphs used to outline a rectangle.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	// Rounded is the default panel outline.
	Rounded = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	// Heavy outlines the panel under the pointer.
	Heavy = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
)

// Canvas is a fixed-size grid of cells. Origin is top-left, coordinates are
// in cells.
type Canvas struct {
	width, height int
	cells         []rune
	classes       []Class
}

// New creates a blank canvas. Non-positive sizes yield an empty canvas.
func New(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		width:   width,
		height:  height,
		cells:   make([]rune, width*height),
		classes: make([]Class, width*height),
	}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

func (c *Canvas) in(x, y int) bool { return x >= 0 && x < c.width && y >= 0 && y < c.height }

// Get returns the rune at (x, y), or a space outside the canvas.
func (c *Canvas) Get(x, y int) rune {
	if !c.in(x, y) || c.cells[y*c.width+x] == wide {
		return ' '
	}
	return c.cells[y*c.width+x]
}

// ClassAt returns the class of (x, y).
func (c *Canvas) ClassAt(x, y int) Class {
	if !c.in(x, y) {
		return ClassBlank
	}
	return c.classes[y*c.width+x]
}

// Set writes one cell. Writes outside the canvas are dropped.
func (c *Canvas) Set(x, y int, r rune, class Class) {
	if !c.in(x, y) {
		return
	}
	c.cells[y*c.width+x] = r
	c.classes[y*c.width+x] = class
}

// Fill paints every cell of the inclusive rectangle.
func (c *Canvas) Fill(x0, y0, x1, y1 int, r rune, class Class) {
	for y := max(y0, 0); y <= min(y1, c.height-1); y++ {
		for x := max(x0, 0); x <= min(x1, c.width-1); x++ {
			c.Set(x, y, r, class)
		}
	}
}

// Box outlines the inclusive rectangle. Boxes narrower or shorter than two
// cells degrade to a line.
func (c *Canvas) Box(x0, y0, x1, y1 int, s BoxStyle, class Class) {
	if x1 < x0 || y1 < y0 {
		return
	}
	for x := x0 + 1; x < x1; x++ {
		c.Set(x, y0, s.Horizontal, class)
		c.Set(x, y1, s.Horizontal, class)
	}
	for y := y0 + 1; y < y1; y++ {
		c.Set(x0, y, s.Vertical, class)
		c.Set(x1, y, s.Vertical, class)
	}
	switch {
	case x0 == x1 && y0 == y1:
		c.Set(x0, y0, s.Horizontal, class)
	case y0 == y1:
		c.Set(x0, y0, s.Horizontal, class)
		c.Set(x1, y0, s.Horizontal, class)
	case x0 == x1:
		c.Set(x0, y0, s.Vertical, class)
		c.Set(x0, y1, s.Vertical, class)
	default:
		c.Set(x0, y0, s.TopLeft, class)
		c.Set(x1, y0, s.TopRight, class)
		c.Set(x0, y1, s.BottomLeft, class)
		c.Set(x1, y1, s.BottomRight, class)
	}
}

// Text writes s starting at (x, y), truncated to maxWidth display cells.
// Double-width runes take two cells.
func (c *Canvas) Text(x, y int, s string, maxWidth int, class Class) {
	if maxWidth <= 0 {
		return
	}
	if runewidth.StringWidth(s) > maxWidth {
		s = runewidth.Truncate(s, maxWidth, "…")
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.Set(x, y, r, class)
		if w == 2 {
			c.Set(x+1, y, wide, class)
		}
		x += w
	}
}

// String returns the canvas as lines joined by newlines, trailing spaces
// trimmed.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.width + 1) * c.height)
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		var line strings.Builder
		for _, r := range row {
			if r != wide {
				line.WriteRune(r)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
