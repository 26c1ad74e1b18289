package internal

import "strconv"

// A single closed ring. The closing edge from the last point back to the first
// is implicit.
type Polygon struct {
	Points []Point
}

func (poly Polygon) SignedArea() float64 {
	return SignedArea(poly.Points)
}

func (poly Polygon) IsCCW() bool {
	return poly.SignedArea() > 0
}

func (poly Polygon) IsCW() bool {
	return poly.SignedArea() < 0
}

func (poly Polygon) Edge(i int) Segment {
	n := len(poly.Points)
	return Segment{poly.Points[CircularIndex(i, n)], poly.Points[CircularIndex(i+1, n)]}
}

// Even-odd point-in-polygon test.
func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule
func (poly Polygon) CrossingCount(p Point) int {
	crossingCount := 0
	for i, vertex := range poly.Points {
		nextVertex := poly.Points[CircularIndex(i+1, len(poly.Points))]

		segment := Segment{vertex, nextVertex}
		if segment.IsRightOf(p) && vertex.Below(p) != nextVertex.Below(p) {
			crossingCount++
		}
	}
	return crossingCount
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{Points: make([]Point, 0, len(poly.Points))}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// The footprint: a counterclockwise outer boundary and any number of clockwise
// holes. Always construct through BuildPolygon, which validates the rings.
type PolygonWithHoles struct {
	Boundary Polygon
	Holes    []Polygon
}

// Rings in canonical order: the boundary first, then each hole.
func (pwh *PolygonWithHoles) Rings() []Polygon {
	rings := make([]Polygon, 0, len(pwh.Holes)+1)
	rings = append(rings, pwh.Boundary)
	return append(rings, pwh.Holes...)
}

// Number of vertices (and so of edges) across all rings.
func (pwh *PolygonWithHoles) VertexCount() int {
	n := len(pwh.Boundary.Points)
	for _, hole := range pwh.Holes {
		n += len(hole.Points)
	}
	return n
}

// Net area of the footprint. Holes are clockwise, so they subtract.
func (pwh *PolygonWithHoles) Area() float64 {
	area := pwh.Boundary.SignedArea()
	for _, hole := range pwh.Holes {
		area += hole.SignedArea()
	}
	return area
}

// Even-odd containment across all rings.
func (pwh *PolygonWithHoles) ContainsPointByEvenOdd(p Point) bool {
	count := 0
	for _, ring := range pwh.Rings() {
		count += ring.CrossingCount(p)
	}
	return count%2 == 1
}

// Bounding box of the outer boundary.
func (pwh *PolygonWithHoles) Bounds() (min, max Point) {
	min, max = pwh.Boundary.Points[0], pwh.Boundary.Points[0]
	for _, p := range pwh.Boundary.Points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Validate and assemble a footprint. The boundary must be counterclockwise and
// every hole clockwise and strictly inside the boundary. No ring may touch
// itself or another ring. Rings are copied, so the caller keeps ownership of
// the slices passed in.
func BuildPolygon(boundary []Point, holes [][]Point) (result *PolygonWithHoles, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	pwh := &PolygonWithHoles{Boundary: Polygon{Points: append([]Point(nil), boundary...)}}
	for _, hole := range holes {
		pwh.Holes = append(pwh.Holes, Polygon{Points: append([]Point(nil), hole...)})
	}

	validateRing(pwh.Boundary, "boundary")
	if !pwh.Boundary.IsCCW() {
		fatalf(ErrInvalidGeometry, "boundary is not counterclockwise")
	}
	for i, hole := range pwh.Holes {
		name := "hole " + strconv.Itoa(i)
		validateRing(hole, name)
		if !hole.IsCW() {
			fatalf(ErrInvalidGeometry, "%s is not clockwise", name)
		}
		if ringsTouch(pwh.Boundary, hole) {
			fatalf(ErrInvalidGeometry, "%s touches the boundary", name)
		}
		if !pwh.Boundary.ContainsPointByEvenOdd(hole.Points[0]) {
			fatalf(ErrInvalidGeometry, "%s lies outside the boundary", name)
		}
		for j, other := range pwh.Holes[:i] {
			if ringsTouch(other, hole) {
				fatalf(ErrInvalidGeometry, "%s touches hole %d", name, j)
			}
			if other.ContainsPointByEvenOdd(hole.Points[0]) || hole.ContainsPointByEvenOdd(other.Points[0]) {
				fatalf(ErrInvalidGeometry, "%s and hole %d are nested", name, j)
			}
		}
	}
	return pwh, nil
}

func validateRing(ring Polygon, name string) {
	n := len(ring.Points)
	if n < 3 {
		fatalf(ErrInvalidGeometry, "%s has %d points, need at least 3", name, n)
	}
	for i, p := range ring.Points {
		if !p.IsFinite() {
			fatalf(ErrInvalidGeometry, "%s point %d is not finite: %v", name, i, p)
		}
	}
	for i, p := range ring.Points {
		if p == ring.Points[CircularIndex(i+1, n)] {
			fatalf(ErrInvalidGeometry, "%s repeats point %v at index %d", name, p, i)
		}
	}

	// Collinear rings have no area no matter how they are wound
	collinear := true
	for i := 2; i < n && collinear; i++ {
		collinear = Orient(ring.Points[0], ring.Points[1], ring.Points[i]) == 0
	}
	if collinear {
		fatalf(ErrInvalidGeometry, "%s has zero area", name)
	}

	for i := 0; i < n; i++ {
		a := ring.Edge(i)
		// Adjacent edges share an endpoint, so they only conflict when the ring
		// doubles back on itself.
		next := ring.Edge(i + 1)
		if Orient(a.Start, a.End, next.End) == 0 && a.Vector().Dot(next.Vector()) < 0 {
			fatalf(ErrInvalidGeometry, "%s doubles back at %v", name, a.End)
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b := ring.Edge(j)
			if SegmentsIntersect(a.Start, a.End, b.Start, b.End) {
				fatalf(ErrInvalidGeometry, "%s intersects itself between edges %d and %d", name, i, j)
			}
		}
	}
}

func ringsTouch(a, b Polygon) bool {
	for i := range a.Points {
		ea := a.Edge(i)
		for j := range b.Points {
			eb := b.Edge(j)
			if SegmentsIntersect(ea.Start, ea.End, eb.Start, eb.End) {
				return true
			}
		}
	}
	return false
}
