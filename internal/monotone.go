package internal

// Facilities for splitting a polygon with holes into Y-monotone pieces, and for
// converting a Y-monotone polygon into triangles. A Y monotone polygon is a
// simple polygon such that any horizontal line intersects at most two edges.
//
// The lexicographic Point.Below() method is used to simulate a slightly rotated
// coordinate system that eliminates horizontal segments. Both passes use the
// same convention, so the pieces produced by PartitionMonotone are always
// acceptable to TriangulateMonotone.
//
// Polygons are given as index loops into a shared point slice. Every loop must
// have the interior on its left: counterclockwise outer loops, clockwise holes.

// Split a region into Y-monotone pieces. The region is cut into trapezoids,
// and the trapezoids that have a cusp on their top or bottom are split on the
// diagonal between their two vertices. The pieces are returned as
// counterclockwise index loops and use no vertices other than those of the
// input loops.
func PartitionMonotone(points []Point, loops [][]int) [][]int {
	slots := newSweepSlots(points, loops)
	var diagonals [][2]int
	seen := make(map[[2]int]bool)
	for _, t := range trapezoidize(points, slots) {
		if !t.needsDiagonal(slots) {
			continue
		}
		d := [2]int{t.Top, t.Bottom}
		if seen[d] || points[slots[d[0]].vertex] == points[slots[d[1]].vertex] {
			continue
		}
		seen[d] = true
		diagonals = append(diagonals, d)
	}
	return tracePieces(points, slots, diagonals)
}

// Walk the faces of the loops cut by the diagonals, always keeping the face on
// the left.
func tracePieces(points []Point, slots []sweepSlot, diagonals [][2]int) [][]int {
	outgoing := make([][]int, len(slots))
	for s := range slots {
		outgoing[s] = append(outgoing[s], slots[s].next)
	}
	for _, d := range diagonals {
		outgoing[d[0]] = append(outgoing[d[0]], d[1])
		outgoing[d[1]] = append(outgoing[d[1]], d[0])
	}
	pos := func(s int) Point {
		return points[slots[s].vertex]
	}

	used := make(map[[2]int]bool)
	var pieces [][]int
	for s := range slots {
		first := [2]int{s, slots[s].next}
		if used[first] {
			continue
		}
		piece := []int{slots[s].vertex}
		prev, cur := s, slots[s].next
		used[first] = true
		for steps := 0; cur != s; steps++ {
			if steps > len(slots)+2*len(diagonals) {
				fatalf(ErrExtrusionFailure, "monotone piece starting at %v does not close", pos(s))
			}
			piece = append(piece, slots[cur].vertex)
			candidates := make([]Point, len(outgoing[cur]))
			for i, target := range outgoing[cur] {
				candidates[i] = pos(target)
			}
			next := outgoing[cur][nextClockwise(pos(cur), pos(prev), candidates)]
			used[[2]int{cur, next}] = true
			prev, cur = cur, next
		}
		pieces = append(pieces, piece)
	}
	return pieces
}

// Triangulate a counterclockwise Y-monotone polygon given as an index loop.
// Triangles are returned as counterclockwise index triples.
func TriangulateMonotone(points []Point, polygon []int) [][3]int {
	if len(polygon) < 3 {
		fatalf(ErrExtrusionFailure, "cannot triangulate degenerate polygon with point count: %d", len(polygon))
	}
	if len(polygon) == 3 {
		return appendTriangle(points, nil, [3]int{polygon[0], polygon[1], polygon[2]})
	}

	n := len(polygon)
	pointAt := func(k int) Point {
		return points[polygon[k]]
	}
	triangles := make([][3]int, 0, n-2)

	// Sort positions so top point is at the top of the array.
	sorted := make([]int, 0, n)

	// Find the top point
	var top int
	for k := range polygon {
		if pointAt(k).Above(pointAt(top)) {
			top = k
		}
	}
	sorted = append(sorted, top)

	// Structure for determining which chain a point is on
	leftChain := map[int]bool{}

	// Merge sort points starting from top, noting which are on the left chain,
	// and track the bottom point separately
	leftOffset := 1
	rightOffset := 1
	var bottom int
	for {
		left := CircularIndex(top+leftOffset, n)
		right := CircularIndex(top-rightOffset, n)

		// If we've met up, we're done. We don't add the bottom point to the list,
		// as it's handled at the very end.
		if left == right {
			bottom = left
			break
		}

		if pointAt(left).Above(pointAt(right)) {
			leftChain[left] = true
			sorted = append(sorted, left)
			leftOffset++
		} else {
			sorted = append(sorted, right)
			rightOffset++
		}
	}

	tri := func(a, b, c int) [3]int {
		return [3]int{polygon[a], polygon[b], polygon[c]}
	}

	// Create the stack and populate it with the first two points
	stack := make(indexStack, 0)
	stack.Push(sorted[0])
	stack.Push(sorted[1])
	for i, p := range sorted[2:] {
		// Adjust index to account for the offset
		i := i + 2

		left := leftChain[p]
		if left != leftChain[stack.Peek()] {
			// If we've jumped to the other chain, monotonicity guarantees that all
			// stack points are visible from the current point.
			for !stack.Empty() {
				a := stack.Pop()
				if !stack.Empty() {
					b := stack.Peek()
					if left {
						triangles = appendTriangle(points, triangles, tri(p, a, b))
					} else {
						triangles = appendTriangle(points, triangles, tri(a, p, b))
					}
				}
			}
			// Put the last two points on the stack
			stack.Push(sorted[i-1])
			stack.Push(sorted[i])
		} else {
			// Always pop the last point off. If we don't create any triangles this
			// time, we'll put it back
			v := stack.Pop()
			for !stack.Empty() {
				topOfStack := stack.Peek()
				// The easiest way to see if the point "sees" the top of the stack is to
				// try creating the triangle, and see if it's CCW
				var potential [3]int
				if left {
					potential = tri(p, topOfStack, v)
				} else {
					potential = tri(p, v, topOfStack)
				}
				if Orient(points[potential[0]], points[potential[1]], points[potential[2]]) > 0 {
					v = stack.Pop()
					triangles = append(triangles, potential)
				} else {
					break
				}
			}
			stack.Push(v)
			stack.Push(p)
		}
	}

	// Finally, add triangles for all remaining points on the stack. Note that we
	// always have two points.
	l := stack.Pop()
	for !stack.Empty() {
		p := stack.Pop()
		if leftChain[l] {
			triangles = appendTriangle(points, triangles, tri(bottom, p, l))
		} else {
			triangles = appendTriangle(points, triangles, tri(bottom, l, p))
		}
		l = p
	}
	return triangles
}

// This is pulled out so that it's easy to add instrumentation. Slivers with no
// area are dropped.
func appendTriangle(points []Point, triangles [][3]int, tri [3]int) [][3]int {
	switch Orient(points[tri[0]], points[tri[1]], points[tri[2]]) {
	case -1:
		fatalf(ErrExtrusionFailure, "triangle is clockwise: %v", tri)
	case 0:
		return triangles
	}
	return append(triangles, tri)
}

type indexStack []int

func (s *indexStack) Push(i int) {
	*s = append(*s, i)
}

func (s *indexStack) Pop() int {
	if len(*s) == 0 {
		return -1
	}
	i := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return i
}

func (s *indexStack) Peek() int {
	if len(*s) == 0 {
		return -1
	}
	return (*s)[len(*s)-1]
}

func (s *indexStack) Empty() bool {
	return len(*s) == 0
}
