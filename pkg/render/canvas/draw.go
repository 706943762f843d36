package canvas

import (
	"math"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Options configures Draw.
type Options struct {
	// Cols and Rows size the canvas. Zero means one cell per viewport unit.
	Cols, Rows int

	// Active is drawn with a heavy outline.
	Active dock.Key

	// Preview, when set, is shaded to show where a dragged panel would
	// land. It is given in viewport units.
	Preview *geom.Rect

	// Dividers draws the gutters between siblings.
	Dividers bool
}

// Draw resolves t against viewport and draws every leaf as a titled box.
func Draw(t *dock.Tree, viewport geom.Rect, opts Options) *Canvas {
	cols, rows := opts.Cols, opts.Rows
	if cols == 0 {
		cols = int(math.Round(viewport.Width()))
	}
	if rows == 0 {
		rows = int(math.Round(viewport.Height()))
	}
	c := New(cols, rows)
	if viewport.IsEmpty() || cols <= 0 || rows <= 0 {
		return c
	}
	m := mapper{
		origin: geom.Pt(viewport.Left, viewport.Top),
		sx:     float64(cols) / viewport.Width(),
		sy:     float64(rows) / viewport.Height(),
	}

	frames := t.Frames(viewport)
	t.Walk(func(n dock.Node, _ int) bool {
		if _, ok := n.Children(); ok {
			if opts.Dividers {
				if d, err := t.Divider(n.Key, viewport); err == nil {
					drawDivider(c, m, d, n.Orientation())
				}
			}
			return true
		}
		x0, y0, x1, y1, ok := m.cells(frames[n.Key].Inner)
		if !ok {
			return true
		}
		style, class := Rounded, ClassBorder
		if n.Key == opts.Active {
			style, class = Heavy, ClassActive
		}
		c.Box(x0, y0, x1, y1, style, class)
		if content, ok := n.Content(); ok {
			title := content.Name
			if title == "" {
				title = content.ID
			}
			c.Text(x0+2, y0, " "+title+" ", x1-x0-3, ClassTitle)
		}
		return true
	})

	if opts.Preview != nil {
		if x0, y0, x1, y1, ok := m.cells(*opts.Preview); ok {
			c.Fill(x0, y0, x1, y1, '░', ClassPreview)
		}
	}
	return c
}

func drawDivider(c *Canvas, m mapper, d geom.Rect, o dock.Orientation) {
	x0, y0, x1, y1, ok := m.cells(d)
	if !ok {
		return
	}
	r := '│'
	if o == dock.OrientationColumn {
		r = '─'
	}
	c.Fill(x0, y0, x1, y1, r, ClassDivider)
}

// mapper converts viewport units to cells.
type mapper struct {
	origin geom.Point
	sx, sy float64
}

// cells returns the inclusive cell rectangle covering r, or false when r
// rounds to nothing.
func (m mapper) cells(r geom.Rect) (x0, y0, x1, y1 int, ok bool) {
	x0 = int(math.Round((r.Left - m.origin.X) * m.sx))
	y0 = int(math.Round((r.Top - m.origin.Y) * m.sy))
	x1 = int(math.Round((r.Right-m.origin.X)*m.sx)) - 1
	y1 = int(math.Round((r.Bottom-m.origin.Y)*m.sy)) - 1
	return x0, y0, x1, y1, x1 >= x0 && y1 >= y0
}
