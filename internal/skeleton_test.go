package internal

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Nodes made by events, in creation order.
func steinerNodes(sk *Skeleton) []SkeletonNode {
	var nodes []SkeletonNode
	for _, n := range sk.Nodes {
		if !n.Original() {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func TestComputeSkeleton_Square(t *testing.T) {
	poly := Square()
	sk, err := ComputeSkeleton(poly)
	require.NoError(t, err)
	AssertValidSkeleton(t, poly, sk)

	apex := steinerNodes(sk)
	require.Len(t, apex, 1)
	assert.InDelta(t, 2, apex[0].Point.X, 1e-9)
	assert.InDelta(t, 2, apex[0].Point.Y, 1e-9)
	assert.InDelta(t, 2, apex[0].Time, 1e-9)
	assert.Len(t, sk.Arcs, 8)
	assert.Equal(t, 4, sk.Degree(4, BisectorArc))
}

func TestComputeSkeleton_Rectangle(t *testing.T) {
	poly := Rectangle()
	sk, err := ComputeSkeleton(poly)
	require.NoError(t, err)
	AssertValidSkeleton(t, poly, sk)

	ridge := steinerNodes(sk)
	require.Len(t, ridge, 2)
	ends := []Point{ridge[0].Point, ridge[1].Point}
	for _, want := range []Point{{1, 1}, {5, 1}} {
		found := false
		for _, p := range ends {
			found = found || p.Dist(want) < 1e-9
		}
		assert.True(t, found, "no ridge end at %v: %v", want, ends)
	}
	for _, n := range ridge {
		assert.InDelta(t, 1, n.Time, 1e-9)
	}

	// The ridge separates the two long sides
	var ridgeArc *Arc
	for i, arc := range sk.Arcs {
		if !sk.Nodes[arc.A].Original() && !sk.Nodes[arc.B].Original() {
			ridgeArc = &sk.Arcs[i]
		}
	}
	require.NotNil(t, ridgeArc)
	assert.True(t, ridgeArc.Separates(0))
	assert.True(t, ridgeArc.Separates(2))
}

func TestComputeSkeleton_ReflexCorners(t *testing.T) {
	for name, poly := range map[string]*PolygonWithHoles{
		"L": LShape(),
		"T": TShape(),
	} {
		t.Run(name, func(t *testing.T) {
			sk, err := ComputeSkeleton(poly)
			require.NoError(t, err)
			AssertValidSkeleton(t, poly, sk)
			// Every arm is 2 wide
			assert.InDelta(t, 1, sk.MaxTime(), 1e-9)
		})
	}
}

// Split events that were acted on, in order.
func splitEvents(t *testing.T, poly *PolygonWithHoles) []TraceEvent {
	var splits []TraceEvent
	sk, err := ComputeSkeleton(poly, WithTrace(func(ev TraceEvent) {
		if ev.Kind == "split" && !ev.Stale {
			splits = append(splits, ev)
		}
	}))
	require.NoError(t, err)
	AssertValidSkeleton(t, poly, sk)
	return splits
}

func TestComputeSkeleton_Split(t *testing.T) {
	poly := Notched()
	splits := splitEvents(t, poly)
	require.Len(t, splits, 1)

	// The notch corner moves straight down at √2 while the bottom edge rises at 1
	hit := 3 * (math.Sqrt2 - 1)
	split := splits[0]
	assert.Equal(t, 0, split.Edge)
	assert.Equal(t, 4, split.Vertices[0])
	assert.InDelta(t, hit, split.Time, 1e-9)
	assert.InDelta(t, 0, split.Point.Dist(Point{7, hit}), 1e-9)

	// Both halves then close along y = 2
	sk, err := ComputeSkeleton(poly)
	require.NoError(t, err)
	assert.InDelta(t, 2, sk.MaxTime(), 1e-9)
	ridge := []Point{{2, 2}, {8 - 2*math.Sqrt2, 2}, {6 + 2*math.Sqrt2, 2}, {10, 2}}
	for _, want := range ridge {
		found := false
		for _, n := range steinerNodes(sk) {
			found = found || (n.Point.Dist(want) < 1e-9 && math.Abs(n.Time-2) < 1e-9)
		}
		assert.True(t, found, "no node at %v", want)
	}
}

func TestComputeSkeleton_Dumbbell(t *testing.T) {
	poly := Dumbbell()
	splits := splitEvents(t, poly)
	// All four neck corners arrive at once, and the first one settles the rest
	require.Len(t, splits, 1)
	assert.InDelta(t, 0.5, splits[0].Time, 1e-12)

	sk, err := ComputeSkeleton(poly)
	require.NoError(t, err)
	assert.InDelta(t, 2, sk.MaxTime(), 1e-9)
	for _, want := range []Point{{3.5, 2}, {6.5, 2}} {
		found := false
		for i, n := range sk.Nodes {
			if !n.Original() && n.Point.Dist(want) < 1e-9 {
				found = true
				assert.InDelta(t, 0.5, n.Time, 1e-12)
				// Two corners, the neck ridge, and the way on into a square
				assert.Equal(t, 4, sk.Degree(i), "neck end %v", want)
			}
		}
		assert.True(t, found, "no node at %v", want)
	}
}

func TestComputeSkeleton_Irregular(t *testing.T) {
	for name, poly := range map[string]*PolygonWithHoles{
		"U":         UShape(),
		"pentagon":  Pentagon(),
		"rotated L": rotated(LShape(), 0.5),
		"rotated T": rotated(TShape(), -2),
	} {
		t.Run(name, func(t *testing.T) {
			sk, err := ComputeSkeleton(poly)
			require.NoError(t, err)
			AssertValidSkeleton(t, poly, sk)
		})
	}
}

func TestComputeSkeleton_SquareWithHole(t *testing.T) {
	poly := SquareWithHole()
	sk, err := ComputeSkeleton(poly)
	require.NoError(t, err)
	AssertValidSkeleton(t, poly, sk)

	// The ring is 3 wide, so everything meets along the square halfway across
	assert.InDelta(t, 1.5, sk.MaxTime(), 1e-9)
	for _, n := range steinerNodes(sk) {
		assert.InDelta(t, 1.5, n.Time, 1e-9)
		halfway := math.Max(math.Abs(n.Point.X-5), math.Abs(n.Point.Y-5))
		assert.InDelta(t, 3.5, halfway, 1e-9, "node at %v is off the midline", n.Point)
	}

	// Each hole corner runs straight out to the matching corner of the midline
	for i := 4; i < 8; i++ {
		var corner Point
		for _, ai := range sk.Incident(i) {
			if arc := sk.Arcs[ai]; arc.Kind == BisectorArc {
				corner = sk.Nodes[arc.Other(i)].Point
			}
		}
		d := corner.Sub(sk.Nodes[i].Point)
		assert.InDelta(t, 1.5, math.Abs(d.X), 1e-9)
		assert.InDelta(t, 1.5, math.Abs(d.Y), 1e-9)
	}
}

// Traced vertex positions must stay on both of their lines, so a footprint
// scaled up has a skeleton scaled up by the same amount.
func TestComputeSkeleton_ScaleInvariant(t *testing.T) {
	small, err := ComputeSkeleton(LShape())
	require.NoError(t, err)

	const k = 1000.0
	var points []Point
	for _, p := range LShape().Boundary.Points {
		points = append(points, p.Scale(k))
	}
	large, err := ComputeSkeleton(mustPolygon(points))
	require.NoError(t, err)

	require.Len(t, large.Nodes, len(small.Nodes))
	for i := range small.Nodes {
		assert.InDelta(t, small.Nodes[i].Time*k, large.Nodes[i].Time, 1e-6)
		assert.InDelta(t, 0, small.Nodes[i].Point.Scale(k).Dist(large.Nodes[i].Point), 1e-6)
	}
}

func TestComputeSkeleton_MaxEvents(t *testing.T) {
	_, err := ComputeSkeleton(Rectangle(), WithMaxEvents(1))
	assert.True(t, errors.Is(err, ErrDegenerateSkeleton), "got %v", err)
}

func TestComputeSkeleton_Trace(t *testing.T) {
	var events []TraceEvent
	_, err := ComputeSkeleton(Square(), WithTrace(func(ev TraceEvent) {
		events = append(events, ev)
	}))
	require.NoError(t, err)
	require.NotEmpty(t, events)

	first := events[0]
	assert.Equal(t, "edge", first.Kind)
	assert.False(t, first.Stale)
	assert.InDelta(t, 2, first.Time, 1e-9)
	assert.Equal(t, 0, first.Edge)

	// Everything after the first collapse is already resolved
	for _, ev := range events[1:] {
		assert.True(t, ev.Stale, "event %+v", ev)
	}
}

func TestComputeSkeleton_Nil(t *testing.T) {
	_, err := ComputeSkeleton(nil)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestConnected(t *testing.T) {
	sk := newSkeleton(Square())
	connected, err := sk.Connected()
	require.NoError(t, err)
	assert.True(t, connected)

	sk.addNode(Point{2, 2}, 2)
	connected, err = sk.Connected()
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestArcKind_String(t *testing.T) {
	assert.Equal(t, "boundary", BoundaryArc.String())
	assert.Equal(t, "bisector", BisectorArc.String())
}
