package internal

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Z component of the 3D cross product of two vectors in the plane.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Length()
}

// Unit vector in the same direction. The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// Left normal, rotated a quarter turn counterclockwise.
func (p Point) Perp() Point {
	return Point{-p.Y, p.X}
}

func (p Point) Midpoint(q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// A common convention in our geometry is that if two points have the same Y
// value, the one with the smaller X value is "lower". This simulates a slightly
// rotated coordinate system, allowing sweeps to assume Y values are never
// equal. Unlike Equal, the comparison is exact so that it can drive a sort.
func (p Point) Below(q Point) bool {
	if p.Y == q.Y {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func (p Point) Above(q Point) bool {
	return q.Below(p)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

type Segment struct {
	Start, End Point
}

func (s Segment) Vector() Point {
	return s.End.Sub(s.Start)
}

func (s Segment) Length() float64 {
	return s.Vector().Length()
}

// Is the segment to the right of the point? Horizontal segments never are.
// This is the crossing test for even-odd containment.
func (s Segment) IsRightOf(p Point) bool {
	if s.Start.Y == s.End.Y {
		return false
	}
	t := (p.Y - s.Start.Y) / (s.End.Y - s.Start.Y)
	x := s.Start.X + t*(s.End.X-s.Start.X)
	return x > p.X
}

// Signed area of a closed ring of points. Positive for counterclockwise rings.
func SignedArea(points []Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[CircularIndex(i+1, len(points))]
		sum += p.Cross(q)
	}
	return sum / 2
}

// Angle swept clockwise when turning from direction `from` to direction `to`,
// in the half open range (0, 2π]. A direction identical to `from` is the full
// turn, so callers walking a planar graph prefer every other way out before
// doubling back.
func clockwiseAngle(from, to Point) float64 {
	a := math.Atan2(from.Y, from.X) - math.Atan2(to.Y, to.X)
	for a <= 0 {
		a += 2 * math.Pi
	}
	for a > 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Index of the candidate position reached by the smallest clockwise turn from
// the direction pointing back at `from`. Walking a planar graph by always
// taking this branch keeps the traced face on the left.
func nextClockwise(at, from Point, candidates []Point) int {
	back := from.Sub(at)
	best := -1
	bestAngle := math.Inf(1)
	for i, c := range candidates {
		angle := clockwiseAngle(back, c.Sub(at))
		if angle < bestAngle {
			best = i
			bestAngle = angle
		}
	}
	return best
}
