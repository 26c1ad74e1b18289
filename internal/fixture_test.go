package internal

import "math"

// Footprints shared by the tests. Each one panics if it fails validation, since
// that is a bug in the fixture rather than in the code under test.

func mustPolygon(boundary []Point, holes ...[]Point) *PolygonWithHoles {
	poly, err := BuildPolygon(boundary, holes)
	if err != nil {
		panic(err)
	}
	return poly
}

func Square() *PolygonWithHoles {
	return mustPolygon([]Point{
		{0, 0},
		{4, 0},
		{4, 4},
		{0, 4},
	})
}

// A 6x2 rectangle. Its skeleton has a ridge from (1, 1) to (5, 1).
func Rectangle() *PolygonWithHoles {
	return mustPolygon([]Point{
		{0, 0},
		{6, 0},
		{6, 2},
		{0, 2},
	})
}

// Two arms of width 2 meeting at a reflex corner at (2, 2).
func LShape() *PolygonWithHoles {
	return mustPolygon([]Point{
		{0, 0},
		{4, 0},
		{4, 2},
		{2, 2},
		{2, 4},
		{0, 4},
	})
}

// A bar of width 2 with a stem of width 2 hanging below its middle.
func TShape() *PolygonWithHoles {
	return mustPolygon([]Point{
		{2, 0},
		{4, 0},
		{4, 2},
		{6, 2},
		{6, 4},
		{0, 4},
		{0, 2},
		{2, 2},
	})
}

// A 10x10 square with a 4x4 hole in the middle, leaving a ring of width 3.
func SquareWithHole() *PolygonWithHoles {
	return mustPolygon(
		[]Point{
			{0, 0},
			{10, 0},
			{10, 10},
			{0, 10},
		},
		[]Point{
			{3, 3},
			{3, 7},
			{7, 7},
			{7, 3},
		},
	)
}

// A 12x4 block with a V notch cut down from its top edge to (7, 3). The notch
// corner runs into the bottom edge at t = 3(√2 - 1), splitting the wavefront
// into two pieces that then shrink on their own.
func Notched() *PolygonWithHoles {
	return mustPolygon([]Point{
		{0, 0},
		{12, 0},
		{12, 4},
		{8, 4},
		{7, 3},
		{6, 4},
		{0, 4},
	})
}

// Two 4x4 squares joined by a 2x1 neck. The neck closes at t = 0.5, leaving
// two squares behind.
func Dumbbell() *PolygonWithHoles {
	return mustPolygon([]Point{
		{0, 0},
		{4, 0},
		{4, 1.5},
		{6, 1.5},
		{6, 0},
		{10, 0},
		{10, 4},
		{6, 4},
		{6, 2.5},
		{4, 2.5},
		{4, 4},
		{0, 4},
	})
}

// Two arms of width 2 standing on a 6x2 base.
func UShape() *PolygonWithHoles {
	return mustPolygon([]Point{
		{0, 0},
		{6, 0},
		{6, 5},
		{4, 5},
		{4, 2},
		{2, 2},
		{2, 5},
		{0, 5},
	})
}

// Convex, with no two edges parallel.
func Pentagon() *PolygonWithHoles {
	return mustPolygon([]Point{
		{0, 0},
		{7, 1},
		{8, 5},
		{3, 8},
		{-1, 4},
	})
}

// The footprint turned counterclockwise about the origin.
func rotated(poly *PolygonWithHoles, angle float64) *PolygonWithHoles {
	sin, cos := math.Sincos(angle)
	turn := func(ring Polygon) []Point {
		points := make([]Point, len(ring.Points))
		for i, p := range ring.Points {
			points[i] = Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
		}
		return points
	}
	var holes [][]Point
	for _, hole := range poly.Holes {
		holes = append(holes, turn(hole))
	}
	return mustPolygon(turn(poly.Boundary), holes...)
}
