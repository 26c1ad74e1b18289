package internal

import (
	"math"
	"math/big"
)

// Filtered predicates. Each predicate is evaluated in float64 first, and only
// when the result is within the rounding error bound is it recomputed exactly
// with big.Rat. Every finite float64 is exactly representable as a rational, so
// the slow path is exact for any valid input.

// Relative error bound for a 2x2 determinant of differences, from Shewchuk's
// "Adaptive Precision Floating-Point Arithmetic".
const orientErrBound = 3.3306690738754716e-16

// Orient reports which side of the directed line a→b the point c is on: +1 for
// left (counterclockwise), -1 for right, and 0 for exactly collinear.
func Orient(a, b, c Point) int {
	return crossSign(a, b, a, c)
}

// Sign of the cross product (b - a) × (d - c).
func crossSign(a, b, c, d Point) int {
	left := (b.X - a.X) * (d.Y - c.Y)
	right := (b.Y - a.Y) * (d.X - c.X)
	det := left - right
	bound := orientErrBound * (math.Abs(left) + math.Abs(right))
	if det > bound {
		return 1
	}
	if -det > bound {
		return -1
	}
	return exactCrossSign(a, b, c, d)
}

func exactCrossSign(a, b, c, d Point) int {
	rat := func(f float64) *big.Rat {
		return new(big.Rat).SetFloat64(f)
	}
	sub := func(x, y float64) *big.Rat {
		return new(big.Rat).Sub(rat(x), rat(y))
	}
	left := new(big.Rat).Mul(sub(b.X, a.X), sub(d.Y, c.Y))
	right := new(big.Rat).Mul(sub(b.Y, a.Y), sub(d.X, c.X))
	return left.Cmp(right)
}

// Does c lie on the closed segment a-b? Exact.
func onSegment(a, b, c Point) bool {
	if Orient(a, b, c) != 0 {
		return false
	}
	return math.Min(a.X, b.X) <= c.X && c.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= c.Y && c.Y <= math.Max(a.Y, b.Y)
}

// Do the closed segments a-b and c-d share any point? Exact.
func SegmentsIntersect(a, b, c, d Point) bool {
	o1 := Orient(a, b, c)
	o2 := Orient(a, b, d)
	o3 := Orient(c, d, a)
	o4 := Orient(c, d, b)
	if o1 != o2 && o3 != o4 && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return true
	}
	return (o1 == 0 && onSegment(a, b, c)) ||
		(o2 == 0 && onSegment(a, b, d)) ||
		(o3 == 0 && onSegment(c, d, a)) ||
		(o4 == 0 && onSegment(c, d, b))
}

// Precision of the extended event time computation. Event times involve a
// square root per supporting line, so they cannot be exact, but 256 bits is
// far below any difference that float64 inputs can produce.
const eventPrecision = 256

// Time at which the offset lines of three polygon edges meet, computed in
// extended precision. Each edge i supports the line n_i·p = c_i + t where n_i
// is the unit inward normal. Returns nil when the system is singular, which
// happens whenever two of the lines are parallel.
func tripleLineTime(edges [3]Segment) *big.Float {
	newFloat := func() *big.Float {
		return new(big.Float).SetPrec(eventPrecision)
	}
	var rows [3][4]*big.Float
	for i, e := range edges {
		dx := newFloat().Sub(newFloat().SetFloat64(e.End.X), newFloat().SetFloat64(e.Start.X))
		dy := newFloat().Sub(newFloat().SetFloat64(e.End.Y), newFloat().SetFloat64(e.Start.Y))
		length := newFloat().Add(newFloat().Mul(dx, dx), newFloat().Mul(dy, dy))
		if length.Sign() == 0 {
			return nil
		}
		length.Sqrt(length)
		nx := newFloat().Quo(newFloat().Neg(dy), length)
		ny := newFloat().Quo(dx, length)
		c := newFloat().Add(
			newFloat().Mul(nx, newFloat().SetFloat64(e.Start.X)),
			newFloat().Mul(ny, newFloat().SetFloat64(e.Start.Y)),
		)
		rows[i] = [4]*big.Float{nx, ny, newFloat().SetInt64(-1), c}
	}

	det3 := func(c0, c1, c2 int) *big.Float {
		m := func(r, c int) *big.Float { return rows[r][c] }
		minor := func(r1, r2, ca, cb int) *big.Float {
			return newFloat().Sub(newFloat().Mul(m(r1, ca), m(r2, cb)), newFloat().Mul(m(r1, cb), m(r2, ca)))
		}
		sum := newFloat().Mul(m(0, c0), minor(1, 2, c1, c2))
		sum.Sub(sum, newFloat().Mul(m(0, c1), minor(1, 2, c0, c2)))
		sum.Add(sum, newFloat().Mul(m(0, c2), minor(1, 2, c0, c1)))
		return sum
	}

	den := det3(0, 1, 2)
	if den.Sign() == 0 || den.MantExp(nil) < -eventPrecision/2 {
		return nil
	}
	num := det3(0, 1, 3)
	return newFloat().Quo(num, den)
}
