package geom

// Polygon is an ordered list of vertices. The last vertex connects back to
// the first.
type Polygon []Point

// Contains is shorthand for PointInPolygon(p, poly).
func (poly Polygon) Contains(p Point) bool { return PointInPolygon(p, poly) }

// PointInPolygon reports whether p lies inside poly using the even-odd
// ray-casting rule: a horizontal ray cast from p toward +x crosses the
// polygon boundary an odd number of times iff p is inside.
//
// Polygons with fewer than three vertices contain nothing.
func PointInPolygon(p Point, poly Polygon) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		// The straddle check guarantees a.Y != b.Y below.
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
