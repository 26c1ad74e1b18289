package internal

import (
	"math"
	"strconv"

	"github.com/katalvlaran/lvlath/graph/algorithms"
	"github.com/katalvlaran/lvlath/graph/core"
	"github.com/pkg/errors"
)

// A vertex of the straight skeleton. Original nodes sit on the footprint at
// time zero; every other node was produced by a wavefront event.
type SkeletonNode struct {
	Point Point
	// Offset distance at which the wavefront reached this node.
	Time float64
	// Index of the footprint vertex this node stands for, or -1 for nodes
	// created by events.
	Vertex int
}

func (n SkeletonNode) Original() bool {
	return n.Vertex >= 0
}

type ArcKind int

const (
	// Coincides with an edge of the footprint.
	BoundaryArc ArcKind = iota
	// Traced by a moving wavefront vertex.
	BisectorArc
)

func (k ArcKind) String() string {
	switch k {
	case BoundaryArc:
		return "boundary"
	case BisectorArc:
		return "bisector"
	}
	return "ArcKind(" + strconv.Itoa(int(k)) + ")"
}

// An edge of the skeleton graph between two nodes. Left and Right are the
// footprint edges whose faces lie on either side when walking from A to B.
// Boundary arcs only have a face on their left, so Right is -1.
type Arc struct {
	A, B        int
	Kind        ArcKind
	Left, Right int
}

// Does the arc bound the face of the given footprint edge?
func (a Arc) Separates(edge int) bool {
	return a.Left == edge || a.Right == edge
}

// The other endpoint of the arc.
func (a Arc) Other(node int) int {
	if a.A == node {
		return a.B
	}
	return a.A
}

// The straight skeleton of a polygon with holes, stored as flat arrays. Node i
// for i < len(Edges) is footprint vertex i, and edge i runs from vertex i to
// vertex EdgeEnd(i). Vertices and edges are numbered in ring order: the
// boundary first, then each hole.
type Skeleton struct {
	Nodes []SkeletonNode
	Arcs  []Arc
	Edges []Segment

	// Index of the next edge in the same ring.
	edgeNext []int
	// Arcs incident to each node.
	incident [][]int
}

func newSkeleton(poly *PolygonWithHoles) *Skeleton {
	sk := &Skeleton{}
	for _, ring := range poly.Rings() {
		base := len(sk.Edges)
		n := len(ring.Points)
		for i, p := range ring.Points {
			sk.Nodes = append(sk.Nodes, SkeletonNode{Point: p, Vertex: base + i})
			sk.incident = append(sk.incident, nil)
			sk.Edges = append(sk.Edges, ring.Edge(i))
			sk.edgeNext = append(sk.edgeNext, base+CircularIndex(i+1, n))
		}
	}
	for i := range sk.Edges {
		sk.addArc(Arc{A: i, B: sk.edgeNext[i], Kind: BoundaryArc, Left: i, Right: -1})
	}
	return sk
}

func (sk *Skeleton) addNode(p Point, t float64) int {
	sk.Nodes = append(sk.Nodes, SkeletonNode{Point: p, Time: t, Vertex: -1})
	sk.incident = append(sk.incident, nil)
	return len(sk.Nodes) - 1
}

func (sk *Skeleton) addArc(arc Arc) {
	sk.Arcs = append(sk.Arcs, arc)
	i := len(sk.Arcs) - 1
	sk.incident[arc.A] = append(sk.incident[arc.A], i)
	sk.incident[arc.B] = append(sk.incident[arc.B], i)
}

// Node at the far end of footprint edge i. The near end is node i.
func (sk *Skeleton) EdgeEnd(i int) int {
	return sk.edgeNext[i]
}

// Indices of the arcs touching a node.
func (sk *Skeleton) Incident(node int) []int {
	return sk.incident[node]
}

// Number of arcs touching a node, optionally restricted to one kind.
func (sk *Skeleton) Degree(node int, kinds ...ArcKind) int {
	if len(kinds) == 0 {
		return len(sk.incident[node])
	}
	count := 0
	for _, i := range sk.incident[node] {
		for _, k := range kinds {
			if sk.Arcs[i].Kind == k {
				count++
				break
			}
		}
	}
	return count
}

// Largest offset distance reached by the wavefront.
func (sk *Skeleton) MaxTime() float64 {
	var max float64
	for _, n := range sk.Nodes {
		max = math.Max(max, n.Time)
	}
	return max
}

// Is every node reachable from node 0?
func (sk *Skeleton) Connected() (bool, error) {
	if len(sk.Nodes) == 0 {
		return true, nil
	}
	g := core.NewGraph(false, false)
	id := func(i int) string {
		return strconv.Itoa(i)
	}
	for i := range sk.Nodes {
		g.AddVertex(&core.Vertex{ID: id(i)})
	}
	for _, arc := range sk.Arcs {
		if g.HasEdge(id(arc.A), id(arc.B)) {
			continue
		}
		g.AddEdge(id(arc.A), id(arc.B), 0)
	}
	result, err := algorithms.BFS(g, id(0), nil)
	if err != nil {
		return false, errors.Wrap(err, "walking skeleton")
	}
	return len(result.Order) == len(sk.Nodes), nil
}
