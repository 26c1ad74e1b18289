// Package footprint reads building footprints from files.
//
// Two formats are understood. The text format lists an exterior ring and any
// number of holes, one "x y" pair per line:
//
//	EXTERIOR
//	0 0
//	4 0
//	4 4
//	0 4
//	HOLE
//	1 1
//	1 3
//	3 3
//	3 1
//	END
//
// SVG files are read for their <polygon> elements: the first is the exterior
// and every other one a hole.
package footprint

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/osuushi/roofmesh/internal"
	"github.com/pkg/errors"
)

type Footprint struct {
	Exterior []internal.Point
	Holes    [][]internal.Point
}

// Validate the rings and assemble the polygon. A closing point repeating the
// first point of a ring is dropped first, since many exporters write one.
func (f *Footprint) Polygon() (*internal.PolygonWithHoles, error) {
	holes := make([][]internal.Point, len(f.Holes))
	for i, hole := range f.Holes {
		holes[i] = stripClosingPoint(hole)
	}
	return internal.BuildPolygon(stripClosingPoint(f.Exterior), holes)
}

func stripClosingPoint(ring []internal.Point) []internal.Point {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

// Read a footprint file, choosing the format from the extension.
func ReadFile(path string) (*Footprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening footprint")
	}
	defer file.Close()

	var footprint *Footprint
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		footprint, err = ReadSVG(file)
	} else {
		footprint, err = ReadText(file)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return footprint, nil
}
