package internal

import (
	"container/heap"
	"math"
	"math/big"
)

type eventKind int

const (
	// A wavefront edge shrinks to nothing.
	edgeEvent eventKind = iota
	// A reflex wavefront vertex runs into the segment of another edge.
	splitEvent
)

func (k eventKind) String() string {
	if k == edgeEvent {
		return "edge"
	}
	return "split"
}

type event struct {
	kind  eventKind
	time  float64
	point Point
	// Edge events: the wavefront vertices at either end of the collapsing edge.
	// Split events: the reflex vertex in a, and -1 in b.
	a, b int
	// Edge events: the collapsing edge. Split events: the edge being hit.
	edge int
	// The three footprint edges whose offset lines meet at the event.
	lines [3]int

	exact      *big.Float
	exactKnown bool
}

// Min-priority queue of events. Events are never removed when they go stale;
// the builder checks them when they are popped.
type eventQueue struct {
	events []*event
	edges  []Segment
	// Times closer than this are compared in extended precision.
	band float64
	// Extended precision times closer than this are considered simultaneous.
	tie *big.Float
}

func newEventQueue(edges []Segment, scale float64) *eventQueue {
	return &eventQueue{
		edges: edges,
		band:  scale * 1e-9,
		tie:   new(big.Float).SetPrec(eventPrecision).SetFloat64(scale * 1e-30),
	}
}

func (q *eventQueue) Len() int { return len(q.events) }

func (q *eventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

func (q *eventQueue) Push(x interface{}) { q.events = append(q.events, x.(*event)) }

func (q *eventQueue) Pop() interface{} {
	old := q.events
	e := old[len(old)-1]
	old[len(old)-1] = nil
	q.events = old[:len(old)-1]
	return e
}

// Events are ordered by time, then edge events before split events, then by
// edge index, then by vertex index. The order only depends on the footprint,
// so symmetric inputs always resolve the same way.
func (q *eventQueue) Less(i, j int) bool {
	return q.compare(q.events[i], q.events[j]) < 0
}

func (q *eventQueue) compare(a, b *event) int {
	if c := q.compareTimes(a, b); c != 0 {
		return c
	}
	if a.kind != b.kind {
		return compareInts(int(a.kind), int(b.kind))
	}
	if a.edge != b.edge {
		return compareInts(a.edge, b.edge)
	}
	if a.a != b.a {
		return compareInts(a.a, b.a)
	}
	return compareInts(a.b, b.b)
}

func (q *eventQueue) compareTimes(a, b *event) int {
	d := a.time - b.time
	if math.Abs(d) > q.band {
		if d < 0 {
			return -1
		}
		return 1
	}
	ea, eb := q.exactTime(a), q.exactTime(b)
	if ea == nil || eb == nil {
		return 0
	}
	diff := new(big.Float).SetPrec(eventPrecision).Sub(ea, eb)
	if diff.Abs(diff).Cmp(q.tie) <= 0 {
		return 0
	}
	return ea.Cmp(eb)
}

func (q *eventQueue) exactTime(e *event) *big.Float {
	if !e.exactKnown {
		e.exactKnown = true
		e.exact = tripleLineTime([3]Segment{q.edges[e.lines[0]], q.edges[e.lines[1]], q.edges[e.lines[2]]})
	}
	return e.exact
}

func (q *eventQueue) push(e *event) {
	heap.Push(q, e)
}

func (q *eventQueue) pop() *event {
	return heap.Pop(q).(*event)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
