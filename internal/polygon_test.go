package internal

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPolygon(t *testing.T) {
	poly := SquareWithHole()
	assert.Equal(t, 8, poly.VertexCount())
	assert.Equal(t, 100.0-16.0, poly.Area())
	assert.Len(t, poly.Rings(), 2)

	assert.True(t, poly.ContainsPointByEvenOdd(Point{1, 1}))
	assert.False(t, poly.ContainsPointByEvenOdd(Point{5, 5}))
	assert.False(t, poly.ContainsPointByEvenOdd(Point{11, 5}))

	min, max := poly.Bounds()
	assert.Equal(t, Point{0, 0}, min)
	assert.Equal(t, Point{10, 10}, max)
}

func TestBuildPolygon_CopiesInput(t *testing.T) {
	boundary := []Point{{0, 0}, {1, 0}, {0, 1}}
	poly, err := BuildPolygon(boundary, nil)
	require.NoError(t, err)
	boundary[0] = Point{5, 5}
	assert.Equal(t, Point{0, 0}, poly.Boundary.Points[0])
}

func TestBuildPolygon_Invalid(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	hole := []Point{{3, 3}, {3, 7}, {7, 7}, {7, 3}}
	reversed := func(points []Point) []Point {
		return Polygon{points}.Reverse().Points
	}

	cases := map[string]struct {
		boundary []Point
		holes    [][]Point
	}{
		"too few points":        {[]Point{{0, 0}, {1, 0}}, nil},
		"not finite":            {[]Point{{0, 0}, {1, 0}, {math.NaN(), 1}}, nil},
		"infinite":              {[]Point{{0, 0}, {math.Inf(1), 0}, {0, 1}}, nil},
		"repeated point":        {[]Point{{0, 0}, {1, 0}, {1, 0}, {0, 1}}, nil},
		"collinear":             {[]Point{{0, 0}, {1, 0}, {2, 0}}, nil},
		"doubles back":          {[]Point{{0, 0}, {2, 0}, {1, 0}, {1, 1}}, nil},
		"bowtie":                {[]Point{{0, 0}, {2, 2}, {2, 0}, {0, 2}}, nil},
		"clockwise boundary":    {reversed(square), nil},
		"counterclockwise hole": {square, [][]Point{reversed(hole)}},
		"hole outside":          {square, [][]Point{{{13, 3}, {13, 7}, {17, 7}, {17, 3}}}},
		"hole touching":         {square, [][]Point{{{0, 3}, {0, 7}, {7, 7}, {7, 3}}}},
		"hole crossing":         {square, [][]Point{{{3, 3}, {3, 7}, {12, 7}, {12, 3}}}},
		"holes touching": {square, [][]Point{
			{{1, 1}, {1, 4}, {4, 4}, {4, 1}},
			{{4, 4}, {4, 6}, {6, 6}, {6, 4}},
		}},
		"holes nested": {square, [][]Point{
			{{1, 1}, {1, 9}, {9, 9}, {9, 1}},
			hole,
		}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			poly, err := BuildPolygon(c.boundary, c.holes)
			assert.Nil(t, poly)
			assert.True(t, errors.Is(err, ErrInvalidGeometry), "got %v", err)
		})
	}
}

func TestPolygon_Edge(t *testing.T) {
	ring := Square().Boundary
	assert.Equal(t, Segment{Point{0, 4}, Point{0, 0}}, ring.Edge(3))
	assert.Equal(t, ring.Edge(0), ring.Edge(4))
	assert.Equal(t, 4.0, ring.Edge(1).Length())
}
