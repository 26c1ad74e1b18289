package footprint

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/roofmesh/internal"
	"github.com/pkg/errors"
)

// Read the <polygon> elements of an SVG document. This is not a full (or even
// correct) SVG reader: transforms and every other element are ignored. SVG is
// y-down, so the Y axis is flipped. SVG has no winding convention either, so
// the exterior is wound counterclockwise and holes clockwise, whichever way
// they were drawn.
func ReadSVG(r io.Reader) (*Footprint, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	polygons := root.FindAll("polygon")
	if len(polygons) == 0 {
		return nil, errors.New("no polygons found in svg")
	}

	footprint := &Footprint{}
	for i, el := range polygons {
		ring, err := parsePointList(el.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		ring = stripClosingPoint(ring)
		area := internal.SignedArea(ring)
		if i == 0 {
			if area < 0 {
				ring = internal.Polygon{Points: ring}.Reverse().Points
			}
			footprint.Exterior = ring
		} else {
			if area > 0 {
				ring = internal.Polygon{Points: ring}.Reverse().Points
			}
			footprint.Holes = append(footprint.Holes, ring)
		}
	}
	return footprint, nil
}

// Parse an SVG points attribute. Coordinates may be separated by commas,
// whitespace, or both.
func parsePointList(attr string) ([]internal.Point, error) {
	fields := strings.FieldsFunc(attr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", attr)
	}
	points := make([]internal.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, internal.Point{X: x, Y: -y})
	}
	return points, nil
}
