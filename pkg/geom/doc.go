// Package geom provides the small set of 2D primitives the dock engine is
// built on: points, axis-aligned rectangles, insets and polygons.
//
// All coordinates are float64 pixels with the origin at the top-left of the
// viewport and y growing downward.
//
// # Hit Testing
//
// [PointInPolygon] is a ray-casting parity test. It accepts any simple
// polygon (convex or not) given as an ordered vertex list. A point lying
// exactly on an edge may be reported either inside or outside; callers only
// use it for drop-zone previews where that ambiguity is harmless.
//
//	tri := geom.Polygon{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 0, Y: 600}}
//	geom.PointInPolygon(geom.Point{X: 50, Y: 300}, tri) // true
package geom
