// Command roofmesh reads a footprint and writes the roof mesh over it.
//
//	roofmesh footprint.txt roof.ply 3 --scale 1,1,0.5
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/roofmesh/dbg"
	"github.com/osuushi/roofmesh/footprint"
	"github.com/osuushi/roofmesh/internal"
	"github.com/osuushi/roofmesh/meshio"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	exitIO = 1 + iota
	exitInvalidGeometry
	exitDegenerateSkeleton
	exitExtrusionFailure
)

func main() {
	app := kingpin.New("roofmesh", "Build a straight skeleton roof over a 2D footprint.")
	settings := defaultSettings()
	settings.register(app)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := settings.loadConfig(); err != nil {
		fail(err)
	}
	if err := run(settings); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, internal.ErrInvalidGeometry):
		return exitInvalidGeometry
	case errors.Is(err, internal.ErrDegenerateSkeleton):
		return exitDegenerateSkeleton
	case errors.Is(err, internal.ErrExtrusionFailure):
		return exitExtrusionFailure
	default:
		return exitIO
	}
}

func run(s *settings) error {
	fp, err := footprint.ReadFile(s.input)
	if err != nil {
		return err
	}
	poly, err := fp.Polygon()
	if err != nil {
		return err
	}

	var skeletonOpts []internal.SkeletonOption
	if s.maxEvents > 0 {
		skeletonOpts = append(skeletonOpts, internal.WithMaxEvents(s.maxEvents))
	}
	if s.verbose {
		log.Printf("Exterior points: %d", len(poly.Boundary.Points))
		for i, hole := range poly.Holes {
			log.Printf("Hole %d points: %d", i, len(hole.Points))
		}
		skeletonOpts = append(skeletonOpts, internal.WithTrace(dbg.Tracer(log.Printf)))
	}

	sk, err := internal.ComputeSkeleton(poly, skeletonOpts...)
	if err != nil {
		return err
	}
	if s.verbose {
		log.Printf("Skeleton: %d nodes, %d arcs, depth %v", len(sk.Nodes), len(sk.Arcs), sk.MaxTime())
	}
	if s.debugPNG != "" {
		if err := dbg.DrawSkeleton(sk, s.debugPNG, 20); err != nil {
			return errors.Wrap(err, "drawing skeleton")
		}
		if s.imgcat {
			if err := dbg.Show(s.debugPNG); err != nil {
				log.Printf("Could not show %s: %v", s.debugPNG, err)
			}
		}
	}

	var extrudeOpts []internal.ExtrudeOption
	if s.noBase {
		extrudeOpts = append(extrudeOpts, internal.WithoutBase())
	}
	mesh, err := internal.Extrude(poly, sk, s.maxHeight, extrudeOpts...)
	if err != nil {
		return err
	}
	if s.verbose {
		log.Printf("Mesh: %d vertices, %d facets", len(mesh.Vertices), len(mesh.Facets))
	}

	scale, err := parseScale(s.scale)
	if err != nil {
		return err
	}
	format, err := meshio.ParseFormat(s.format)
	if err != nil {
		return err
	}
	return meshio.Write(s.output, mesh, meshio.Options{
		Scale:     scale,
		Precision: s.precision,
		Format:    format,
	})
}
