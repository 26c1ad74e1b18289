package internal

import (
	"math"
)

type extrudeConfig struct {
	base bool
}

type ExtrudeOption func(*extrudeConfig)

// Leave the footprint open instead of closing it with a downward facing base.
// The mesh is then not watertight along the footprint edges.
func WithoutBase() ExtrudeOption {
	return func(c *extrudeConfig) {
		c.base = false
	}
}

// Lift a skeleton into a roof. Every skeleton node rises to its offset
// distance; anything above maxHeight is cut off and closed with flat caps.
// maxHeight may be +Inf for an uncapped roof.
func Extrude(poly *PolygonWithHoles, sk *Skeleton, maxHeight float64, opts ...ExtrudeOption) (mesh *Mesh, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			mesh = nil
			err = recoveredErr
		}
	}()

	if math.IsNaN(maxHeight) || maxHeight <= 0 {
		fatalf(ErrExtrusionFailure, "maximum height must be positive, got %v", maxHeight)
	}
	if poly == nil || sk == nil {
		fatalf(ErrExtrusionFailure, "missing footprint or skeleton")
	}
	if len(sk.Edges) != poly.VertexCount() {
		fatalf(ErrExtrusionFailure, "skeleton has %d edges but the footprint has %d", len(sk.Edges), poly.VertexCount())
	}

	config := extrudeConfig{base: true}
	for _, opt := range opts {
		opt(&config)
	}

	x := newExtruder(poly, sk, maxHeight)
	for e := range sk.Edges {
		x.addRoofFacet(e)
	}
	x.addCaps()
	if config.base {
		x.addBase(poly)
	}
	return x.mesh, nil
}

type extruder struct {
	sk     *Skeleton
	height float64
	// Nodes within this distance of the cap plane are on it.
	eps float64

	mesh        *Mesh
	nodeVertex  []int
	crossingVtx map[[2]int]int
	// Mesh vertices lying on the cap plane.
	onCap []bool
	// Pieces of facet boundary along the cap plane, in facet order.
	chords [][2]int
}

func newExtruder(poly *PolygonWithHoles, sk *Skeleton, maxHeight float64) *extruder {
	min, max := poly.Bounds()
	x := &extruder{
		sk:          sk,
		height:      maxHeight,
		eps:         math.Max(max.X-min.X, max.Y-min.Y) * 1e-9,
		mesh:        &Mesh{},
		nodeVertex:  make([]int, len(sk.Nodes)),
		crossingVtx: make(map[[2]int]int),
	}
	for i := range x.nodeVertex {
		x.nodeVertex[i] = -1
	}
	// Footprint vertices come first, so mesh vertex i is footprint vertex i.
	for i := range sk.Edges {
		x.vertexForNode(i)
	}
	return x
}

func (x *extruder) above(node int) bool {
	return x.sk.Nodes[node].Time > x.height+x.eps
}

func (x *extruder) onPlane(node int) bool {
	return math.Abs(x.sk.Nodes[node].Time-x.height) <= x.eps
}

func (x *extruder) addVertex(p Point, z float64, onCap bool) int {
	x.onCap = append(x.onCap, onCap)
	return x.mesh.addVertex(p.X, p.Y, z)
}

func (x *extruder) vertexForNode(node int) int {
	if v := x.nodeVertex[node]; v >= 0 {
		return v
	}
	n := x.sk.Nodes[node]
	var v int
	if x.onPlane(node) {
		v = x.addVertex(n.Point, x.height, true)
	} else {
		v = x.addVertex(n.Point, n.Time, false)
	}
	x.nodeVertex[node] = v
	return v
}

// Vertex where the arc between two nodes crosses the cap plane. Both faces
// along the arc share it.
func (x *extruder) crossing(a, b int) int {
	if a > b {
		a, b = b, a
	}
	key := [2]int{a, b}
	if v, ok := x.crossingVtx[key]; ok {
		return v
	}
	na, nb := x.sk.Nodes[a], x.sk.Nodes[b]
	u := (x.height - na.Time) / (nb.Time - na.Time)
	p := na.Point.Add(nb.Point.Sub(na.Point).Scale(u))
	v := x.addVertex(p, x.height, true)
	x.crossingVtx[key] = v
	return v
}

// Nodes around the face of a footprint edge, counterclockwise, starting with
// the edge itself.
func (x *extruder) walkFace(e int) []int {
	sk := x.sk
	start, end := e, sk.EdgeEnd(e)
	face := []int{start, end}
	prev, cur := start, end
	used := -1
	for steps := 0; ; steps++ {
		if steps > len(sk.Arcs) {
			fatalf(ErrExtrusionFailure, "face of edge %d does not close", e)
		}
		var arcs []int
		var targets []Point
		for _, ai := range sk.Incident(cur) {
			arc := sk.Arcs[ai]
			if arc.Kind != BisectorArc || ai == used || !arc.Separates(e) {
				continue
			}
			arcs = append(arcs, ai)
			targets = append(targets, sk.Nodes[arc.Other(cur)].Point)
		}
		if len(arcs) == 0 {
			fatalf(ErrExtrusionFailure, "face of edge %d is open at node %d", e, cur)
		}
		ai := arcs[nextClockwise(sk.Nodes[cur].Point, sk.Nodes[prev].Point, targets)]
		next := sk.Arcs[ai].Other(cur)
		if next == start {
			return face
		}
		face = append(face, next)
		prev, cur, used = cur, next, ai
	}
}

// Clip the face of a footprint edge to the cap plane and add what is left as a
// roof facet. Stretches of the clipped boundary lying on the cap plane are
// remembered for the caps.
func (x *extruder) addRoofFacet(e int) {
	face := x.walkFace(e)
	var loop []int
	for i, cur := range face {
		next := face[CircularIndex(i+1, len(face))]
		curAbove, nextAbove := x.above(cur), x.above(next)
		if !curAbove {
			loop = append(loop, x.vertexForNode(cur))
		}
		if curAbove != nextAbove && !x.onPlane(cur) && !x.onPlane(next) {
			loop = append(loop, x.crossing(cur, next))
		}
	}
	loop = dedupeLoop(loop)
	if len(loop) < 3 {
		fatalf(ErrExtrusionFailure, "roof facet of edge %d collapsed", e)
	}
	for i, a := range loop {
		b := loop[CircularIndex(i+1, len(loop))]
		if x.onCap[a] && x.onCap[b] {
			x.chords = append(x.chords, [2]int{a, b})
		}
	}
	x.mesh.addFacet(loop, RoofFacet, e)
}

// Drop consecutive repeats, including a repeat across the seam.
func dedupeLoop(loop []int) []int {
	result := make([]int, 0, len(loop))
	for _, v := range loop {
		if len(result) > 0 && result[len(result)-1] == v {
			continue
		}
		result = append(result, v)
	}
	for len(result) > 1 && result[0] == result[len(result)-1] {
		result = result[:len(result)-1]
	}
	return result
}

// Close the bottom with the footprint, facing down.
func (x *extruder) addBase(poly *PolygonWithHoles) {
	var loops [][]int
	base := 0
	for _, ring := range poly.Rings() {
		loop := make([]int, len(ring.Points))
		for i := range ring.Points {
			loop[i] = x.nodeVertex[base+i]
		}
		base += len(ring.Points)
		loops = append(loops, loop)
	}
	for _, piece := range x.partition(loops) {
		reverseInts(piece)
		x.mesh.addFacet(piece, BaseFacet, -1)
	}
}

// Split a region given as CCW outer and CW inner loops into simple facets. A
// region without holes is already one.
func (x *extruder) partition(loops [][]int) [][]int {
	if len(loops) == 1 {
		return loops
	}
	points := make([]Point, len(x.mesh.Vertices))
	for i, v := range x.mesh.Vertices {
		points[i] = Point{v.X, v.Y}
	}
	return PartitionMonotone(points, loops)
}
