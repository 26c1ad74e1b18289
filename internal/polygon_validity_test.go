package internal

// This contains no actual tests. It is just a helper for checking skeletons and
// meshes.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a skeleton is valid. The rules are:
// 1. Every node is reachable from every other.
// 2. Original nodes sit at time zero on the footprint vertex they stand for.
// 3. Every node created by an event joins at least three arcs.
// 4. Every footprint edge has a face, bounded by its own boundary arc and at
// least one bisector arc at each end.
// 5. Bisector arcs never run backwards in time.
func AssertValidSkeleton(t *testing.T, poly *PolygonWithHoles, sk *Skeleton) {
	connected, err := sk.Connected()
	require.NoError(t, err)
	require.True(t, connected, "skeleton is not connected")

	require.Len(t, sk.Edges, poly.VertexCount())
	var footprint []Point
	for _, ring := range poly.Rings() {
		footprint = append(footprint, ring.Points...)
	}

	for i, n := range sk.Nodes {
		if i < len(footprint) {
			require.True(t, n.Original(), "node %d should be original", i)
			assert.Equal(t, footprint[i], n.Point)
			assert.Equal(t, 0.0, n.Time)
			assert.Equal(t, 1, sk.Degree(i, BisectorArc), "footprint vertex %d should start one bisector", i)
			continue
		}
		require.False(t, n.Original(), "node %d should be made by an event", i)
		assert.GreaterOrEqual(t, sk.Degree(i), 3, "node %d at %v has too few arcs", i, n.Point)
		assert.True(t, poly.ContainsPointByEvenOdd(n.Point), "node %d at %v is outside the footprint", i, n.Point)
	}

	faceArcs := make([]int, len(sk.Edges))
	for _, arc := range sk.Arcs {
		if arc.Kind == BisectorArc {
			a, b := sk.Nodes[arc.A], sk.Nodes[arc.B]
			assert.LessOrEqual(t, a.Time, b.Time+1e-9, "arc %v runs backwards in time", arc)
			require.GreaterOrEqual(t, arc.Left, 0)
			require.GreaterOrEqual(t, arc.Right, 0)
			faceArcs[arc.Left]++
			faceArcs[arc.Right]++
		}
	}
	for e, count := range faceArcs {
		assert.GreaterOrEqual(t, count, 2, "face of edge %d is not closed", e)
	}
}

// Helper to check that a mesh is a closed solid made of flat facets facing
// outward, whose volume matches the one given.
func AssertValidMesh(t *testing.T, mesh *Mesh, volume float64) {
	assert.InDelta(t, volume, AssertClosedMesh(t, mesh), 1e-6)
}

// Like AssertValidMesh, for solids whose volume is not known up front. The
// volume is returned.
func AssertClosedMesh(t *testing.T, mesh *Mesh) float64 {
	require.True(t, mesh.IsWatertight(), "open edges: %v", mesh.OpenEdges())
	AssertPlanarFacets(t, mesh)

	// Divergence theorem over the triangulated surface
	triangles, err := mesh.Triangulate()
	require.NoError(t, err)
	var sum float64
	for _, tri := range triangles {
		a, b, c := mesh.Vertices[tri[0]], mesh.Vertices[tri[1]], mesh.Vertices[tri[2]]
		sum += a.Dot(b.Cross(c))
	}
	return sum / 6
}

// Every vertex of a roof facet is as high as it is far from the footprint edge
// the facet rises from.
func AssertRoofHeights(t *testing.T, poly *PolygonWithHoles, mesh *Mesh) {
	var edges []Segment
	for _, ring := range poly.Rings() {
		for k := range ring.Points {
			edges = append(edges, ring.Edge(k))
		}
	}
	for i, f := range mesh.Facets {
		if f.Kind != RoofFacet {
			continue
		}
		require.True(t, f.Edge >= 0 && f.Edge < len(edges), "facet %d has no edge", i)
		edge := edges[f.Edge]
		dir := edge.Vector().Normalize()
		for _, v := range f.Vertices {
			p := mesh.Vertices[v]
			distance := dir.Cross(Point{p.X, p.Y}.Sub(edge.Start))
			assert.InDelta(t, distance, p.Z, 1e-9, "facet %d vertex %d is off its edge's slope", i, v)
		}
	}
}

// Every facet lies in one plane, and roof facets face up and away from their
// footprint edge.
func AssertPlanarFacets(t *testing.T, mesh *Mesh) {
	for i, f := range mesh.Facets {
		normal := mesh.FacetNormal(i)
		require.Greater(t, normal.Length(), 0.0, "facet %d has no area", i)
		unit := normal.MulScalar(1 / normal.Length())
		origin := mesh.Vertices[f.Vertices[0]]
		for _, v := range f.Vertices {
			assert.InDelta(t, 0, mesh.Vertices[v].Sub(origin).Dot(unit), 1e-9, "facet %d is not flat", i)
		}

		switch f.Kind {
		case RoofFacet:
			// 45 degree slope
			assert.InDelta(t, math.Sqrt2/2, unit.Z, 1e-9, "roof facet %d has the wrong slope", i)
		case CapFacet:
			assert.InDelta(t, 1, unit.Z, 1e-9, "cap facet %d is not level", i)
		case BaseFacet:
			assert.InDelta(t, -1, unit.Z, 1e-9, "base facet %d does not face down", i)
		}
	}
}
