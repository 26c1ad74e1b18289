package internal

import (
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

type FacetKind int

const (
	// Sloped face rising from one footprint edge.
	RoofFacet FacetKind = iota
	// Flat top where the roof was cut off at the maximum height.
	CapFacet
	// The footprint itself, facing down.
	BaseFacet
)

func (k FacetKind) String() string {
	switch k {
	case RoofFacet:
		return "roof"
	case CapFacet:
		return "cap"
	case BaseFacet:
		return "base"
	}
	return "FacetKind(" + strconv.Itoa(int(k)) + ")"
}

// A planar polygon of the mesh. Vertices are listed counterclockwise when
// seen from outside the solid.
type Facet struct {
	Vertices []int
	Kind     FacetKind
	// Footprint edge a roof facet rises from, -1 for other facets.
	Edge int
}

type Mesh struct {
	Vertices []v3.Vec
	Facets   []Facet
}

func (m *Mesh) addVertex(x, y, z float64) int {
	m.Vertices = append(m.Vertices, v3.Vec{X: x, Y: y, Z: z})
	return len(m.Vertices) - 1
}

func (m *Mesh) addFacet(vertices []int, kind FacetKind, edge int) {
	m.Facets = append(m.Facets, Facet{Vertices: vertices, Kind: kind, Edge: edge})
}

// Scale every vertex in place, independently per axis.
func (m *Mesh) Scale(sx, sy, sz float64) {
	for i := range m.Vertices {
		m.Vertices[i].X *= sx
		m.Vertices[i].Y *= sy
		m.Vertices[i].Z *= sz
	}
}

func (m *Mesh) MaxHeight() float64 {
	var max float64
	for _, v := range m.Vertices {
		if v.Z > max {
			max = v.Z
		}
	}
	return max
}

func (m *Mesh) FacetsOfKind(kind FacetKind) []Facet {
	var facets []Facet
	for _, f := range m.Facets {
		if f.Kind == kind {
			facets = append(facets, f)
		}
	}
	return facets
}

// Newell normal of a facet, not normalized. Its length is twice the facet
// area.
func (m *Mesh) FacetNormal(i int) v3.Vec {
	var n v3.Vec
	loop := m.Facets[i].Vertices
	for k, vi := range loop {
		a := m.Vertices[vi]
		b := m.Vertices[loop[CircularIndex(k+1, len(loop))]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// Directed facet edges that are not matched by exactly one edge running the
// other way. A closed, consistently oriented mesh has none.
func (m *Mesh) OpenEdges() [][2]int {
	count := make(map[[2]int]int)
	var order [][2]int
	for _, f := range m.Facets {
		for k, a := range f.Vertices {
			b := f.Vertices[CircularIndex(k+1, len(f.Vertices))]
			key := [2]int{a, b}
			if count[key] == 0 {
				order = append(order, key)
			}
			count[key]++
		}
	}
	var open [][2]int
	for _, key := range order {
		if count[key] != 1 || count[[2]int{key[1], key[0]}] != 1 {
			open = append(open, key)
		}
	}
	return open
}

func (m *Mesh) IsWatertight() bool {
	return len(m.Facets) > 0 && len(m.OpenEdges()) == 0
}

// Split every facet into triangles, preserving orientation. No facet is
// vertical, so each one is triangulated in its projection onto the ground
// plane.
func (m *Mesh) Triangulate() (triangles [][3]int, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			triangles = nil
			err = recoveredErr
		}
	}()

	points := make([]Point, len(m.Vertices))
	for i, v := range m.Vertices {
		points[i] = Point{v.X, v.Y}
	}
	for _, f := range m.Facets {
		loop := append([]int(nil), f.Vertices...)
		flipped := SignedArea(pointsOf(points, loop)) < 0
		if flipped {
			reverseInts(loop)
		}
		for _, piece := range PartitionMonotone(points, [][]int{loop}) {
			for _, tri := range TriangulateMonotone(points, piece) {
				if flipped {
					tri[1], tri[2] = tri[2], tri[1]
				}
				triangles = append(triangles, tri)
			}
		}
	}
	return triangles, nil
}

func pointsOf(points []Point, indices []int) []Point {
	result := make([]Point, len(indices))
	for i, index := range indices {
		result[i] = points[index]
	}
	return result
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
