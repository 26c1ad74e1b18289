package footprint

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/osuushi/roofmesh/internal"
	"github.com/pkg/errors"
)

// Read the EXTERIOR/HOLE/END text format. Blank lines and points outside of a
// section are ignored.
func ReadText(r io.Reader) (*Footprint, error) {
	footprint := &Footprint{}
	var current *[]internal.Point

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "EXTERIOR":
			current = &footprint.Exterior
			continue
		case "HOLE":
			footprint.Holes = append(footprint.Holes, nil)
			current = &footprint.Holes[len(footprint.Holes)-1]
			continue
		case "END":
			current = nil
			continue
		}

		if current == nil {
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		*current = append(*current, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning footprint")
	}
	return footprint, nil
}

func parsePoint(line string) (internal.Point, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return internal.Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return internal.Point{}, errors.Wrapf(err, "invalid x value %q", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return internal.Point{}, errors.Wrapf(err, "invalid y value %q", fields[1])
	}
	return internal.Point{X: x, Y: y}, nil
}
