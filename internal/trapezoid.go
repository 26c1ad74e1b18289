package internal

import "sort"

// Trapezoidal decomposition after Seidel 1991. Horizontal lines through every
// vertex, extended until they meet the boundary, cut a region into
// trapezoids. It uses the same lexicographic convention as elsewhere, so no two
// vertices share a horizontal and no side is ever horizontal.
//
// Regions are index loops flattened into sweep slots. Edges are named by the
// slot they leave from.

type Trapezoid struct {
	Left, Right int
	// The top and bottom are slots rather than y values. Because of the unique
	// Y value assumption, exactly one vertex lies on each of them. It may be an
	// endpoint of a side, or it may lie away from the sides.
	Top, Bottom int
}

// Does the trapezoid need a diagonal between its top and bottom? Only the
// trapezoids under a merge vertex or over a split vertex break monotonicity.
func (t Trapezoid) needsDiagonal(slots []sweepSlot) bool {
	return slots[t.Top].kind == mergeVertex || slots[t.Bottom].kind == splitVertex
}

type vertexType int

const (
	startVertex vertexType = iota
	endVertex
	splitVertex
	mergeVertex
	regularVertex
)

type sweepSlot struct {
	vertex     int
	prev, next int
	kind       vertexType
}

// Flatten loops into slots and classify each by how the sweep meets it.
func newSweepSlots(points []Point, loops [][]int) []sweepSlot {
	var slots []sweepSlot
	for _, loop := range loops {
		base := len(slots)
		n := len(loop)
		for k, vertex := range loop {
			slots = append(slots, sweepSlot{
				vertex: vertex,
				prev:   base + CircularIndex(k-1, n),
				next:   base + CircularIndex(k+1, n),
			})
		}
	}

	for s := range slots {
		u := points[slots[slots[s].prev].vertex]
		v := points[slots[s].vertex]
		w := points[slots[slots[s].next].vertex]
		convex := crossSign(u, v, v, w) > 0
		switch {
		case u.Below(v) && w.Below(v):
			if convex {
				slots[s].kind = startVertex
			} else {
				slots[s].kind = splitVertex
			}
		case v.Below(u) && v.Below(w):
			if convex {
				slots[s].kind = endVertex
			} else {
				slots[s].kind = mergeVertex
			}
		default:
			slots[s].kind = regularVertex
		}
	}
	return slots
}

// Sweep the slots from the top down, keeping the boundary edges crossing the
// sweep line in left to right order. Every span between two of them whose left
// edge points down is inside, and has an open trapezoid. A vertex closes the
// spans it touches and opens the spans below it. Only trapezoids inside the
// region are returned, in the order they close.
func trapezoidize(points []Point, slots []sweepSlot) []Trapezoid {
	pos := func(s int) Point {
		return points[slots[s].vertex]
	}
	pointsDown := func(e int) bool {
		return pos(slots[e].next).Below(pos(e))
	}
	// Is edge e left of p? An edge running through p is compared against q
	// instead, a point on the boundary leaving p downward.
	leftOf := func(e int, p, q Point) bool {
		top, bottom := pos(e), pos(slots[e].next)
		if top.Below(bottom) {
			top, bottom = bottom, top
		}
		o := Orient(bottom, top, p)
		if o == 0 {
			o = Orient(bottom, top, q)
		}
		return o < 0
	}

	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return pos(order[i]).Above(pos(order[j]))
	})

	var active []int
	// Top of the open trapezoid right of each left side
	open := make(map[int]int)
	var trapezoids []Trapezoid

	for first := 0; first < len(order); {
		v := pos(order[first])
		last := first
		for last < len(order) && pos(order[last]) == v {
			last++
		}
		group := order[first:last]
		first = last

		// Slots sharing a position are handled together, so loops may touch at
		// a vertex.
		at := make(map[int]int)
		far := make(map[int]Point)
		ending := make(map[int]bool)
		var starting []int
		for _, s := range group {
			for _, e := range [2][2]int{{slots[s].prev, slots[s].prev}, {s, slots[s].next}} {
				edge, end := e[0], pos(e[1])
				if end == v {
					fatalf(ErrExtrusionFailure, "zero length edge at %v", v)
				}
				at[edge] = s
				far[edge] = end
				if end.Above(v) {
					ending[edge] = true
				} else {
					starting = append(starting, edge)
				}
			}
		}
		sort.SliceStable(starting, func(i, j int) bool {
			return crossSign(v, far[starting[i]], v, far[starting[j]]) > 0
		})

		lo, hi := len(active), -1
		for i, e := range active {
			if ending[e] {
				lo = min(lo, i)
				hi = max(hi, i)
			}
		}
		if hi < 0 {
			lo = 0
			for lo < len(active) && leftOf(active[lo], v, far[starting[0]]) {
				lo++
			}
		}

		// The slot at v on a side of the span, if any
		side := func(left, right, fallback int) int {
			if s, ok := at[right]; ok {
				return s
			}
			if s, ok := at[left]; ok {
				return s
			}
			return fallback
		}

		closeTo := hi
		if hi < 0 {
			closeTo = lo - 1
		}
		for i := lo - 1; i <= closeTo; i++ {
			if i < 0 || i+1 >= len(active) || !pointsDown(active[i]) {
				continue
			}
			left, right := active[i], active[i+1]
			top, ok := open[left]
			if !ok {
				fatalf(ErrExtrusionFailure, "no open trapezoid right of the edge from %v", pos(left))
			}
			delete(open, left)
			fallback := group[0]
			if len(starting) > 0 {
				fallback = at[starting[0]]
			}
			trapezoids = append(trapezoids, Trapezoid{
				Left:   left,
				Right:  right,
				Top:    top,
				Bottom: side(left, right, fallback),
			})
		}

		next := make([]int, 0, len(active)+len(starting))
		next = append(next, active[:lo]...)
		next = append(next, starting...)
		for _, e := range active[lo:] {
			if !ending[e] {
				next = append(next, e)
			}
		}
		active = next

		openTo := lo + len(starting) - 1
		if len(starting) == 0 {
			openTo = lo - 1
		}
		for i := lo - 1; i <= openTo; i++ {
			if i < 0 || i+1 >= len(active) || !pointsDown(active[i]) {
				continue
			}
			open[active[i]] = side(active[i], active[i+1], group[0])
		}
	}

	if len(active) > 0 || len(open) > 0 {
		fatalf(ErrExtrusionFailure, "sweep ended with %d edges still crossing it", len(active))
	}
	return trapezoids
}
