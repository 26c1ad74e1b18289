package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrapezoidize_Square(t *testing.T) {
	points := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	slots := newSweepSlots(points, [][]int{{0, 1, 2, 3}})
	trapezoids := trapezoidize(points, slots)

	// The top edge is only tilted by the lexicographic rotation, so the square
	// is a sliver over a parallelogram over a sliver.
	assert.Equal(t, []Trapezoid{
		{Left: 2, Right: 1, Top: 2, Bottom: 3},
		{Left: 3, Right: 1, Top: 3, Bottom: 1},
		{Left: 3, Right: 0, Top: 1, Bottom: 0},
	}, trapezoids)
	for _, trapezoid := range trapezoids {
		assert.False(t, trapezoid.needsDiagonal(slots))
	}
}

func TestTrapezoidize_Ring(t *testing.T) {
	points, loops := ringLoops()
	slots := newSweepSlots(points, loops)
	assert.Equal(t, splitVertex, slots[6].kind)
	assert.Equal(t, mergeVertex, slots[4].kind)

	trapezoids := trapezoidize(points, slots)
	require.Len(t, trapezoids, 8)

	var diagonals [][2]int
	for _, trapezoid := range trapezoids {
		// Slots and vertices coincide here
		assert.True(t, points[trapezoid.Top].Above(points[trapezoid.Bottom]))
		if trapezoid.needsDiagonal(slots) {
			diagonals = append(diagonals, [2]int{trapezoid.Top, trapezoid.Bottom})
		}
	}
	// The hole's top corner reaches up to the outer top left corner, and its
	// bottom corner down to the outer bottom right corner.
	assert.Equal(t, [][2]int{{3, 6}, {4, 1}}, diagonals)
}

func TestTrapezoidize_Clockwise(t *testing.T) {
	// Wound clockwise, the loop has nothing inside it.
	points := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	slots := newSweepSlots(points, [][]int{{3, 2, 1, 0}})
	assert.Empty(t, trapezoidize(points, slots))
}
