package internal

import (
	"math"
)

// Straight skeleton by wavefront propagation. Every footprint edge moves
// inward at unit speed; the wavefront is a set of circular lists of vertices,
// each vertex sitting where its two moving edge lines meet. Vertices are never
// edited in place. Whenever an event changes the wavefront, the affected
// vertices are retired (tracing an arc from where they were born to where they
// died) and new ones are born at the event point.

// A footprint edge as a moving line: at time t it is the set of points p with
// normal·p = offset + t.
type wavefrontEdge struct {
	dir    Point
	normal Point
	offset float64
	// Original segment endpoints, for exact orientation tests.
	segment Segment
}

type wavefrontVertex struct {
	origin Point
	born   float64
	// Skeleton node the vertex was born at.
	node int
	// Edges before and after the vertex, walking the wavefront with the
	// unswept interior on the left.
	in, out    int
	prev, next int
	velocity   Point
	// The edge lines are antiparallel and the vertex has no velocity. This is a
	// zero width sliver of wavefront that collapses as soon as it appears.
	stalled bool
	reflex  bool
	active  bool
}

func (v *wavefrontVertex) at(t float64) Point {
	return v.origin.Add(v.velocity.Scale(t - v.born))
}

type skeletonConfig struct {
	maxEvents int
	trace     func(TraceEvent)
}

type SkeletonOption func(*skeletonConfig)

// Abort with ErrDegenerateSkeleton after processing this many events. The
// default is proportional to the number of footprint vertices.
func WithMaxEvents(n int) SkeletonOption {
	return func(c *skeletonConfig) {
		c.maxEvents = n
	}
}

// Receive a report for every event popped from the queue.
func WithTrace(fn func(TraceEvent)) SkeletonOption {
	return func(c *skeletonConfig) {
		c.trace = fn
	}
}

// What happened to one event taken from the queue.
type TraceEvent struct {
	Kind  string
	Time  float64
	Point Point
	// Wavefront vertex ids involved, in event order.
	Vertices []int
	// Footprint edge collapsing or being hit.
	Edge int
	// The event no longer applied when it was popped and was discarded.
	Stale bool
}

type builder struct {
	edges []wavefrontEdge
	verts []wavefrontVertex
	queue *eventQueue
	sk    *Skeleton

	// Length tolerance, relative to the footprint size.
	eps float64
	// Tolerance on dimensionless rates and determinants.
	slack float64

	arcs      map[[2]int]bool
	config    skeletonConfig
	processed int
}

// Compute the straight skeleton of a footprint.
func ComputeSkeleton(poly *PolygonWithHoles, opts ...SkeletonOption) (sk *Skeleton, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			sk = nil
			err = recoveredErr
		}
	}()

	if poly == nil || len(poly.Boundary.Points) < 3 {
		fatalf(ErrInvalidGeometry, "no footprint to build a skeleton for")
	}

	config := skeletonConfig{maxEvents: 64*poly.VertexCount() + 1024}
	for _, opt := range opts {
		opt(&config)
	}

	b := newBuilder(poly, config)
	b.run()
	return b.sk, nil
}

func newBuilder(poly *PolygonWithHoles, config skeletonConfig) *builder {
	min, max := poly.Bounds()
	scale := math.Max(max.X-min.X, max.Y-min.Y)

	b := &builder{
		sk:     newSkeleton(poly),
		eps:    scale * 1e-9,
		slack:  1e-9,
		arcs:   make(map[[2]int]bool),
		config: config,
	}
	b.queue = newEventQueue(b.sk.Edges, scale)

	for _, seg := range b.sk.Edges {
		dir := seg.Vector().Normalize()
		normal := dir.Perp()
		b.edges = append(b.edges, wavefrontEdge{
			dir:     dir,
			normal:  normal,
			offset:  normal.Dot(seg.Start),
			segment: seg,
		})
	}

	// Vertex i sits between edge i-1 and edge i of its ring, so it gets
	// wavefront id i and skeleton node i.
	for _, ring := range poly.Rings() {
		base := len(b.verts)
		n := len(ring.Points)
		for i, p := range ring.Points {
			prev := base + CircularIndex(i-1, n)
			next := base + CircularIndex(i+1, n)
			b.verts = append(b.verts, wavefrontVertex{
				origin: p,
				node:   base + i,
				in:     prev,
				out:    base + i,
				prev:   prev,
				next:   next,
				active: true,
			})
		}
	}
	for i := range b.verts {
		b.initMotion(i)
	}
	return b
}

func (b *builder) run() {
	for i := range b.verts {
		b.queueEvents(i)
	}

	for b.queue.Len() > 0 {
		if b.processed >= b.config.maxEvents {
			fatalf(ErrDegenerateSkeleton, "gave up after %d events", b.processed)
		}
		e := b.queue.pop()
		switch e.kind {
		case edgeEvent:
			b.handleEdgeEvent(e)
		case splitEvent:
			b.handleSplitEvent(e)
		}
	}

	for i := range b.verts {
		if b.verts[i].active {
			fatalf(ErrDegenerateSkeleton, "wavefront vertex %d at %v never collapsed", i, b.verts[i].origin)
		}
	}
}

func (b *builder) report(e *event, stale bool, vertices ...int) {
	if b.config.trace == nil {
		return
	}
	b.config.trace(TraceEvent{
		Kind:     e.kind.String(),
		Time:     e.time,
		Point:    e.point,
		Vertices: vertices,
		Edge:     e.edge,
		Stale:    stale,
	})
}

// Velocity and convexity of a vertex from its two edges. The velocity keeps
// the vertex on both moving lines: normal_in·v = normal_out·v = 1.
func (b *builder) initMotion(id int) {
	v := &b.verts[id]
	in, out := &b.edges[v.in], &b.edges[v.out]
	det := in.normal.Cross(out.normal)
	switch {
	case math.Abs(det) > b.slack:
		v.velocity = Point{
			(out.normal.Y - in.normal.Y) / det,
			(in.normal.X - out.normal.X) / det,
		}
	case in.normal.Dot(out.normal) > 0:
		// Collinear edges, the vertex just rides along with them
		v.velocity = in.normal.Add(out.normal).Normalize()
	default:
		v.stalled = true
	}
	v.reflex = crossSign(in.segment.Start, in.segment.End, out.segment.Start, out.segment.End) < 0
}

func (b *builder) newVertex(p Point, t float64, node, in, out int) int {
	b.verts = append(b.verts, wavefrontVertex{
		origin: p,
		born:   t,
		node:   node,
		in:     in,
		out:    out,
		prev:   -1,
		next:   -1,
		active: true,
	})
	id := len(b.verts) - 1
	b.initMotion(id)
	return id
}

func (b *builder) link(a, c int) {
	b.verts[a].next = c
	b.verts[c].prev = a
}

// Skeleton node for position p at time t. Nodes are created in time order, so
// only the most recent ones can be close enough in time to be merged with.
func (b *builder) node(p Point, t float64) int {
	nodes := b.sk.Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Time < t-b.eps {
			break
		}
		if math.Abs(n.Time-t) <= b.eps && n.Point.Dist(p) <= b.eps {
			return i
		}
	}
	return b.sk.addNode(p, t)
}

func (b *builder) arc(from, to, left, right int) {
	if from == to {
		return
	}
	key := [2]int{from, to}
	if from > to {
		key = [2]int{to, from}
	}
	if b.arcs[key] {
		return
	}
	b.arcs[key] = true
	b.sk.addArc(Arc{A: from, B: to, Kind: BisectorArc, Left: left, Right: right})
}

// Deactivate a vertex and trace its path up to the given node. Walking from
// where the vertex was born, its in edge is on the left and its out edge on the
// right.
func (b *builder) retire(id, node int) {
	v := &b.verts[id]
	v.active = false
	b.arc(v.node, node, v.in, v.out)
}

// Retire a vertex at wherever it is at time t.
func (b *builder) retireAt(id int, t float64) int {
	node := b.node(b.verts[id].at(t), t)
	b.retire(id, node)
	return node
}

// Queue the events a freshly settled vertex takes part in: the collapse of
// either of its edges and, if it is reflex, running into another edge.
func (b *builder) queueEvents(id int) {
	v := &b.verts[id]
	b.queueEdgeEvent(v.prev, id)
	b.queueEdgeEvent(id, v.next)
	if v.reflex {
		for o := range b.edges {
			b.queueSplitEvent(id, o)
		}
	}
}

// Rate at which the wavefront edge between two adjacent vertices grows.
func (b *builder) growth(a, c int) float64 {
	va, vc := &b.verts[a], &b.verts[c]
	return b.edges[va.out].dir.Dot(vc.velocity.Sub(va.velocity))
}

func (b *builder) queueEdgeEvent(a, c int) {
	va, vc := &b.verts[a], &b.verts[c]
	if a == c || va.stalled || vc.stalled || vc.next == a {
		// Loops of two vertices are closed when they form.
		return
	}
	e := va.out
	t0 := math.Max(va.born, vc.born)
	length := b.edges[e].dir.Dot(vc.at(t0).Sub(va.at(t0)))
	rate := b.growth(a, c)

	var t float64
	switch {
	case length <= b.eps:
		// Already gone, unless it is just starting to grow
		if length >= -b.eps && rate > b.slack {
			return
		}
		t = t0
	case rate < -b.slack:
		t = t0 + length/-rate
	default:
		return
	}
	b.queue.push(&event{
		kind:  edgeEvent,
		time:  t,
		point: va.at(t).Midpoint(vc.at(t)),
		a:     a,
		b:     c,
		edge:  e,
		lines: [3]int{va.in, e, vc.out},
	})
}

func (b *builder) queueSplitEvent(id, o int) {
	v := &b.verts[id]
	if o == v.in || o == v.out || v.stalled {
		return
	}
	edge := &b.edges[o]
	// How fast the vertex approaches the moving line, and how far ahead of it
	// the vertex is now.
	closing := edge.normal.Dot(v.velocity) - 1
	ahead := edge.normal.Dot(v.origin) - edge.offset - v.born
	if closing >= -b.slack || ahead < -b.eps {
		return
	}
	t := v.born + math.Max(ahead, 0)/-closing
	b.queue.push(&event{
		kind:  splitEvent,
		time:  t,
		point: v.at(t),
		a:     id,
		b:     -1,
		edge:  o,
		lines: [3]int{v.in, v.out, o},
	})
}

func (b *builder) handleEdgeEvent(e *event) {
	va, vc := &b.verts[e.a], &b.verts[e.b]
	if !va.active || !vc.active || va.next != e.b {
		b.report(e, true, e.a, e.b)
		return
	}
	b.processed++
	b.report(e, false, e.a, e.b)
	if id := b.collapseEdge(e.a, e.b, e.point, e.time); id >= 0 {
		b.settle(id, e.time)
	}
}

// Merge the two ends of a vanished wavefront edge at p. Returns the new vertex
// replacing them, or -1 when the whole loop closed.
func (b *builder) collapseEdge(a, c int, p Point, t float64) int {
	node := b.node(p, t)
	b.retire(a, node)
	b.retire(c, node)

	prev, next := b.verts[a].prev, b.verts[c].next
	if prev == c {
		return -1
	}
	if prev == next {
		// Triangle: all three lines meet here, the third vertex too.
		x := b.retireAt(prev, t)
		if x != node {
			b.arc(x, node, b.verts[prev].in, b.verts[prev].out)
		}
		return -1
	}
	id := b.newVertex(p, t, node, b.verts[a].in, b.verts[c].out)
	b.link(prev, id)
	b.link(id, next)
	return id
}

func (b *builder) handleSplitEvent(e *event) {
	v := &b.verts[e.a]
	if !v.active {
		b.report(e, true, e.a)
		return
	}
	u := b.findSegment(e.edge, e.a, e.point, e.time)
	if u < 0 {
		b.report(e, true, e.a)
		return
	}
	b.processed++
	w := b.verts[u].next
	b.report(e, false, e.a, u, w)

	node := b.node(e.point, e.time)
	b.retire(e.a, node)
	prev, next, in, out := v.prev, v.next, v.in, v.out

	// The vertex pierces the segment u→w. One side continues along prev→v1→w,
	// the other along u→v2→next. If u→w belonged to another loop this joins the
	// two loops instead of splitting one.
	v1 := b.newVertex(e.point, e.time, node, in, e.edge)
	v2 := b.newVertex(e.point, e.time, node, e.edge, out)
	b.link(prev, v1)
	b.link(v1, w)
	b.link(u, v2)
	b.link(v2, next)

	b.settle(v1, e.time)
	b.settle(v2, e.time)
}

// Find the active wavefront vertex u whose out edge is o and whose segment
// u→u.next contains p at time t. Returns -1 when no segment does.
func (b *builder) findSegment(o, reflex int, p Point, t float64) int {
	dir := b.edges[o].dir
	best := -1
	bestSlack := math.Inf(-1)
	for u := range b.verts {
		vu := &b.verts[u]
		if !vu.active || vu.out != o || u == reflex || vu.next == reflex {
			continue
		}
		w := &b.verts[vu.next]
		start := vu.at(t)
		length := dir.Dot(w.at(t).Sub(start))
		s := dir.Dot(p.Sub(start))
		if s < -b.eps || s > length+b.eps {
			continue
		}
		// Prefer the segment that contains p most comfortably
		slack := math.Min(s, length-s)
		if slack > bestSlack {
			best = u
			bestSlack = slack
		}
	}
	return best
}

// Bring a new vertex into a consistent state at time t before queueing its
// events. Degenerate configurations are resolved on the spot, which may retire
// the vertex and produce another one to settle in its place.
func (b *builder) settle(id int, t float64) {
	for id >= 0 {
		v := &b.verts[id]
		if !v.active {
			return
		}
		if v.next == id {
			v.active = false
			return
		}
		if b.verts[v.next].next == id {
			b.closePair(id, v.next, t)
			return
		}
		if v.stalled {
			id = b.collapseStalled(id, t)
			continue
		}
		if merged, ok := b.mergeCoincident(id, t); ok {
			id = merged
			continue
		}
		b.queueEvents(id)
		return
	}
}

// Close a loop of two vertices. Both sit on the same two lines, so either they
// coincide or the lines are the same and the ridge runs between them.
func (b *builder) closePair(a, c int, t float64) {
	va, vc := &b.verts[a], &b.verts[c]
	pa, pc := va.at(t), vc.at(t)
	if pa.Dist(pc) <= b.eps {
		node := b.node(pa.Midpoint(pc), t)
		b.retire(a, node)
		b.retire(c, node)
		return
	}
	na := b.retireAt(a, t)
	nc := b.retireAt(c, t)
	b.arc(na, nc, va.in, va.out)
}

// A stalled vertex sits between two edges sweeping over each other. The
// overlap runs to whichever neighbour is nearer; that stretch of wavefront
// vanishes at once, leaving a ridge behind.
func (b *builder) collapseStalled(id int, t float64) int {
	v := &b.verts[id]
	prev, next := v.prev, v.next
	pp, pn := b.verts[prev].at(t), b.verts[next].at(t)
	here := v.at(t)

	if here.Dist(pp) <= here.Dist(pn) {
		node := b.node(pp, t)
		b.retire(id, node)
		b.retire(prev, node)
		nv := b.newVertex(pp, t, node, b.verts[prev].in, v.out)
		b.link(b.verts[prev].prev, nv)
		b.link(nv, next)
		return nv
	}
	node := b.node(pn, t)
	b.retire(id, node)
	b.retire(next, node)
	nv := b.newVertex(pn, t, node, v.in, b.verts[next].out)
	b.link(prev, nv)
	b.link(nv, b.verts[next].next)
	return nv
}

// Collapse an edge of the new vertex that already has zero length and is not
// growing. Returns the vertex replacing the pair and whether anything
// happened.
func (b *builder) mergeCoincident(id int, t float64) (int, bool) {
	v := &b.verts[id]
	for _, pair := range [2][2]int{{v.prev, id}, {id, v.next}} {
		a, c := pair[0], pair[1]
		if b.verts[a].stalled || b.verts[c].stalled {
			continue
		}
		pa, pc := b.verts[a].at(t), b.verts[c].at(t)
		if pa.Dist(pc) <= b.eps && b.growth(a, c) <= b.slack {
			return b.collapseEdge(a, c, pa.Midpoint(pc), t), true
		}
	}
	return -1, false
}
