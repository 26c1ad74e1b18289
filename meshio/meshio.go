// Package meshio writes roof meshes to common interchange formats.
package meshio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/osuushi/roofmesh/internal"
	"github.com/pkg/errors"
)

type Format int

const (
	// Pick the format from the file extension.
	FormatAuto Format = iota
	// ASCII Stanford polygon file.
	FormatPLY
	// Wavefront OBJ.
	FormatOBJ
	// Object File Format.
	FormatOFF
	// Binary STL. Facets are triangulated.
	FormatSTL
)

var formatNames = map[string]Format{
	"ply": FormatPLY,
	"obj": FormatOBJ,
	"off": FormatOFF,
	"stl": FormatSTL,
}

func (f Format) String() string {
	for name, format := range formatNames {
		if format == f {
			return name
		}
	}
	return "auto"
}

func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "" || name == "auto" {
		return FormatAuto, nil
	}
	if format, ok := formatNames[name]; ok {
		return format, nil
	}
	return FormatAuto, errors.Errorf("unknown mesh format %q", name)
}

func FormatFromPath(path string) (Format, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatAuto, err
	}
	if format == FormatAuto {
		return FormatAuto, errors.Errorf("cannot tell mesh format of %q", path)
	}
	return format, nil
}

type Options struct {
	// Per axis scale applied to every vertex before writing. The zero value
	// leaves the mesh as is.
	Scale [3]float64
	// Significant digits for coordinates in text formats. Zero means
	// DefaultPrecision.
	Precision int
	Format    Format
}

// Enough digits to round trip any float64.
const DefaultPrecision = 17

// Scale the mesh in place and write it to path.
func Write(path string, mesh *internal.Mesh, opts Options) error {
	if opts.Scale != [3]float64{} {
		mesh.Scale(opts.Scale[0], opts.Scale[1], opts.Scale[2])
	}

	format := opts.Format
	if format == FormatAuto {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	if format == FormatSTL {
		return writeSTL(path, mesh)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating mesh file")
	}
	w := bufio.NewWriter(file)
	if err := Encode(w, mesh, format, opts.Precision); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return errors.Wrap(err, "writing mesh file")
	}
	return errors.Wrap(file.Close(), "closing mesh file")
}

// Write a mesh in one of the text formats.
func Encode(w io.Writer, mesh *internal.Mesh, format Format, precision int) error {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	enc := &encoder{w: w, precision: precision}
	switch format {
	case FormatPLY:
		enc.ply(mesh)
	case FormatOBJ:
		enc.obj(mesh)
	case FormatOFF:
		enc.off(mesh)
	default:
		return errors.Errorf("%v is not a text mesh format", format)
	}
	return errors.Wrap(enc.err, "encoding mesh")
}

func writeSTL(path string, mesh *internal.Mesh) error {
	triangles, err := mesh.Triangulate()
	if err != nil {
		return errors.Wrap(err, "triangulating mesh")
	}
	stl := make([]*sdf.Triangle3, len(triangles))
	for i, tri := range triangles {
		stl[i] = &sdf.Triangle3{mesh.Vertices[tri[0]], mesh.Vertices[tri[1]], mesh.Vertices[tri[2]]}
	}
	return errors.Wrap(render.SaveSTL(path, stl), "writing stl")
}
