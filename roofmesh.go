// Straight skeleton roofs for Go.
//
// This package turns a 2D footprint, an outer boundary with any number of
// holes, into a closed 3D mesh. Every footprint edge becomes a roof facet
// sloping inward at 45 degrees until it meets the others along the straight
// skeleton of the footprint. Roofs can be cut off at a maximum height, leaving
// flat tops.
package roofmesh

import "github.com/osuushi/roofmesh/internal"

type Point = internal.Point
type Polygon = internal.Polygon
type PolygonWithHoles = internal.PolygonWithHoles
type Skeleton = internal.Skeleton
type SkeletonNode = internal.SkeletonNode
type Arc = internal.Arc
type Mesh = internal.Mesh
type Facet = internal.Facet
type SkeletonOption = internal.SkeletonOption
type ExtrudeOption = internal.ExtrudeOption
type TraceEvent = internal.TraceEvent

var (
	ErrInvalidGeometry    = internal.ErrInvalidGeometry
	ErrDegenerateSkeleton = internal.ErrDegenerateSkeleton
	ErrExtrusionFailure   = internal.ErrExtrusionFailure
)

var (
	WithMaxEvents = internal.WithMaxEvents
	WithTrace     = internal.WithTrace
	WithoutBase   = internal.WithoutBase
)

// Validate a footprint. The boundary must wind counterclockwise and holes
// clockwise. Holes must lie strictly inside the boundary without touching it
// or each other.
func BuildPolygon(boundary []Point, holes ...[]Point) (*PolygonWithHoles, error) {
	return internal.BuildPolygon(boundary, holes)
}

// Compute the straight skeleton of a footprint.
func ComputeSkeleton(poly *PolygonWithHoles, opts ...SkeletonOption) (*Skeleton, error) {
	return internal.ComputeSkeleton(poly, opts...)
}

// Lift a skeleton into a roof mesh capped at maxHeight.
func Extrude(poly *PolygonWithHoles, sk *Skeleton, maxHeight float64, opts ...ExtrudeOption) (*Mesh, error) {
	return internal.Extrude(poly, sk, maxHeight, opts...)
}

// Build the roof of a footprint in one go. Pass math.Inf(1) as maxHeight for a
// roof that is never cut off.
func Roof(poly *PolygonWithHoles, maxHeight float64, opts ...ExtrudeOption) (*Mesh, error) {
	sk, err := ComputeSkeleton(poly)
	if err != nil {
		return nil, err
	}
	return Extrude(poly, sk, maxHeight, opts...)
}
