// Package dot exports layouts as Graphviz graphs, mainly for debugging
// tree shape after long editing sessions.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds normalized bounds and resolved pixel sizes to labels.
	Detailed bool
}

// ToDOT converts t into a DOT digraph: splits are ellipses, leaves are
// boxes, and each edge is labeled with the side the child occupies.
func ToDOT(t *dock.Tree, viewport geom.Rect, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10, color=gray40];\n")

	frames := t.Frames(viewport)
	var edges []string
	t.Walk(func(n dock.Node, _ int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Key, strings.Join(nodeAttrs(n, frames[n.Key], opts), ", "))
		if kids, ok := n.Children(); ok {
			first, second := edgeLabels(n.Orientation())
			edges = append(edges,
				fmt.Sprintf("  %q -> %q [label=%q];\n", n.Key, kids[0], first),
				fmt.Sprintf("  %q -> %q [label=%q];\n", n.Key, kids[1], second))
		}
		return true
	})
	if len(edges) > 0 {
		buf.WriteString("\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n dock.Node, f dock.Frame, opts Options) []string {
	var label string
	var attrs []string
	if c, ok := n.Content(); ok {
		label = c.Name
		if label == "" {
			label = c.ID
		}
		attrs = append(attrs, "shape=box", `style="rounded,filled"`, "fillcolor=white")
	} else {
		label = n.Orientation().String()
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=lightgrey")
	}
	if opts.Detailed {
		b := n.Bounds
		label += fmt.Sprintf("\n(%.2f, %.2f, %.2f, %.2f)\n%.0f×%.0f",
			b.Left, b.Top, b.Right, b.Bottom, f.Inner.Width(), f.Inner.Height())
	}
	return append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
}

func edgeLabels(o dock.Orientation) (string, string) {
	if o == dock.OrientationColumn {
		return "top", "bottom"
	}
	return "left", "right"
}

// RenderSVG lays out a DOT graph with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
