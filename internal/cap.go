package internal

import (
	"math"
	"sort"
)

// Flat tops where the roof was cut off. Every roof facet that reached the cap
// plane left chords along it with the facet on their left. Reversed, the
// chords have the cap on their left, and chaining them gives counterclockwise
// loops around each cap and clockwise loops around the gaps inside caps.
func (x *extruder) addCaps() {
	if len(x.chords) == 0 {
		return
	}

	// A ridge lying exactly on the cap plane is a chord of both its facets, once
	// in each direction. Such a cap has no area there.
	count := make(map[[2]int]int)
	for _, c := range x.chords {
		count[c]++
	}
	var edges [][2]int
	for _, c := range x.chords {
		if count[[2]int{c[1], c[0]}] > 0 {
			continue
		}
		edges = append(edges, [2]int{c[1], c[0]})
	}

	var outers, holes [][]int
	for _, loop := range x.chainLoops(edges) {
		area := SignedArea(x.planar(loop))
		if len(loop) < 3 || math.Abs(area) <= x.eps*x.eps {
			continue
		}
		if area > 0 {
			outers = append(outers, loop)
		} else {
			holes = append(holes, loop)
		}
	}

	// Each gap belongs to the smallest cap around it
	sort.SliceStable(outers, func(i, j int) bool {
		return SignedArea(x.planar(outers[i])) < SignedArea(x.planar(outers[j]))
	})
	regions := make([][][]int, len(outers))
	for i, outer := range outers {
		regions[i] = [][]int{outer}
	}
	for _, hole := range holes {
		owner := -1
		for i, outer := range outers {
			if (Polygon{Points: x.planar(outer)}).ContainsPointByEvenOdd(x.interiorPoint(hole)) {
				owner = i
				break
			}
		}
		if owner < 0 {
			fatalf(ErrExtrusionFailure, "cap gap at %v is not inside any cap", x.planar(hole)[0])
		}
		regions[owner] = append(regions[owner], hole)
	}

	for _, region := range regions {
		for _, piece := range x.partition(region) {
			x.mesh.addFacet(piece, CapFacet, -1)
		}
	}
}

// Chain directed edges into closed loops. Where several edges leave the same
// vertex the loop keeps turning as little clockwise as possible, which keeps
// the region on its left.
func (x *extruder) chainLoops(edges [][2]int) [][]int {
	outgoing := make(map[int][]int)
	for i, e := range edges {
		outgoing[e[0]] = append(outgoing[e[0]], i)
	}
	used := make([]bool, len(edges))

	var loops [][]int
	for i := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		start := edges[i][0]
		loop := []int{start}
		prev, cur := start, edges[i][1]
		for cur != start {
			loop = append(loop, cur)
			var candidates []int
			var targets []Point
			for _, j := range outgoing[cur] {
				if !used[j] {
					candidates = append(candidates, j)
					targets = append(targets, x.planarPoint(edges[j][1]))
				}
			}
			if len(candidates) == 0 {
				fatalf(ErrExtrusionFailure, "cap outline is open at %v", x.planarPoint(cur))
			}
			j := candidates[nextClockwise(x.planarPoint(cur), x.planarPoint(prev), targets)]
			used[j] = true
			prev, cur = cur, edges[j][1]
		}
		loops = append(loops, dedupeLoop(loop))
	}
	return loops
}

func (x *extruder) planarPoint(v int) Point {
	p := x.mesh.Vertices[v]
	return Point{p.X, p.Y}
}

func (x *extruder) planar(loop []int) []Point {
	points := make([]Point, len(loop))
	for i, v := range loop {
		points[i] = x.planarPoint(v)
	}
	return points
}

// A point just inside a clockwise loop's first edge, on the side of the cap
// surrounding it. Vertices of a gap can touch the cap outline, so they are no
// good for containment tests.
func (x *extruder) interiorPoint(loop []int) Point {
	points := x.planar(loop)
	a, b := points[0], points[1]
	d := b.Sub(a)
	mid := a.Midpoint(b)
	// Clockwise loop: the cap is on the left.
	step := math.Max(d.Length()*1e-6, x.eps*10)
	return mid.Add(d.Normalize().Perp().Scale(step))
}
