// Package render groups the layers that turn a docking layout into
// something to look at.
//
//   - [canvas] draws resolved frames as box-drawing text for terminals.
//   - [dot] exports the tree as a Graphviz graph and renders it to SVG.
//
// Both consume only the public surface of the dock package: frames from
// [dock.Tree.Frames] and the node walk from [dock.Tree.Walk].
//
// [canvas]: github.com/matzehuels/dockyard/pkg/render/canvas
// [dot]: github.com/matzehuels/dockyard/pkg/render/dot
// [dock.Tree.Frames]: github.com/matzehuels/dockyard/pkg/dock#Tree.Frames
// [dock.Tree.Walk]: github.com/matzehuels/dockyard/pkg/dock#Tree.Walk
package render
