// Package pkg provides the libraries behind dockyard, a dockable panel
// layout engine.
//
// # Overview
//
// A layout is a binary tree. Leaves hold panels; splits divide their area
// between two children along one axis. Every node stores its bounds
// normalized to its parent, so the whole layout rescales when the viewport
// changes and only ratios are ever edited.
//
// The pkg directory is organized as:
//
//  1. [geom] - Points, rectangles, insets and polygons
//  2. [dock] - The layout tree: resolve, minimum sizes, hit-testing, insert,
//     remove, move and divider drags
//  3. [workspace] - One tree plus its viewport, panel catalog, lock flag and
//     the gesture in progress; gesture scripts
//  4. [render] - Terminal box drawing and Graphviz export
//  5. [config], [errors], [observability], [cache], [buildinfo] - Settings,
//     coded errors, hooks, render cache and version stamps
//
// # Data Flow
//
// A drag across the screen flows through the packages like this:
//
//	pointer position
//	         ↓
//	    [dock.HitTest] (leaf under pointer, side by triangle quadrant)
//	         ↓
//	    [workspace.Workspace.DragOver] (pending placement + preview rect)
//	         ↓
//	    [workspace.Workspace.Drop] → [dock.Tree.Insert]
//	         ↓
//	    [dock.Tree.Frames] → renderer
//
// # Quick Start
//
//	ws := workspace.New(workspace.Options{
//	    Width: 800, Height: 600,
//	    Panels: []workspace.Panel{{ID: "editor", Name: "Editor"}, {ID: "files", Name: "Files"}},
//	})
//	ws.DropAt(ctx, "editor", geom.Pt(400, 300)) // empty layout: becomes the root
//	ws.DropAt(ctx, "files", geom.Pt(10, 300))   // left edge: files docks left
//	for _, n := range ws.Snapshot().Nodes {
//	    fmt.Println(n.Key, n.Name, n.Inner)
//	}
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/geom
// [dock]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/dock
// [workspace]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/workspace
// [render]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/observability
// [cache]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/cache
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/buildinfo
package pkg
