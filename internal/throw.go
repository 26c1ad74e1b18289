package internal

import "github.com/pkg/errors"

// Threading errors up and down the event cascade of the wavefront and the face
// walks of the extruder would add a ton of complexity to the code. Instead, we
// use panics, and every exported entry point recovers to convert to an error.

var (
	// The input footprint is not a valid polygon with holes.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// The wavefront could not be propagated to completion.
	ErrDegenerateSkeleton = errors.New("degenerate skeleton")
	// The skeleton could not be turned into a closed mesh.
	ErrExtrusionFailure = errors.New("extrusion failure")
)

// Panic payload used by fatalf. Keeping it a distinct type means genuine
// runtime panics are never mistaken for library errors.
type roofError struct {
	err error
}

// Panic with an error wrapping one of the sentinel errors above.
func fatalf(kind error, format string, args ...interface{}) {
	panic(roofError{errors.Wrapf(kind, format, args...)})
}

func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if roofErr, ok := r.(roofError); ok {
			return roofErr.err
		}
		panic(r)
	}
	return nil
}
