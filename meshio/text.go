package meshio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/osuushi/roofmesh/internal"
)

// Line oriented writer that remembers the first error, so the format
// functions can be written straight through.
type encoder struct {
	w         io.Writer
	precision int
	err       error
}

func (e *encoder) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *encoder) float(f float64) string {
	return strconv.FormatFloat(f, 'g', e.precision, 64)
}

func (e *encoder) vertex(prefix string, mesh *internal.Mesh, i int) {
	v := mesh.Vertices[i]
	e.printf("%s%s %s %s\n", prefix, e.float(v.X), e.float(v.Y), e.float(v.Z))
}

func (e *encoder) ply(mesh *internal.Mesh) {
	countType := "uchar"
	for _, f := range mesh.Facets {
		if len(f.Vertices) > 255 {
			countType = "uint"
		}
	}
	e.printf("ply\n")
	e.printf("format ascii 1.0\n")
	e.printf("element vertex %d\n", len(mesh.Vertices))
	e.printf("property double x\n")
	e.printf("property double y\n")
	e.printf("property double z\n")
	e.printf("element face %d\n", len(mesh.Facets))
	e.printf("property list %s int vertex_indices\n", countType)
	e.printf("end_header\n")
	for i := range mesh.Vertices {
		e.vertex("", mesh, i)
	}
	for _, f := range mesh.Facets {
		e.printf("%d", len(f.Vertices))
		for _, v := range f.Vertices {
			e.printf(" %d", v)
		}
		e.printf("\n")
	}
}

// OBJ indices are one based.
func (e *encoder) obj(mesh *internal.Mesh) {
	for i := range mesh.Vertices {
		e.vertex("v ", mesh, i)
	}
	for _, f := range mesh.Facets {
		e.printf("f")
		for _, v := range f.Vertices {
			e.printf(" %d", v+1)
		}
		e.printf("\n")
	}
}

func (e *encoder) off(mesh *internal.Mesh) {
	e.printf("OFF\n")
	e.printf("%d %d 0\n", len(mesh.Vertices), len(mesh.Facets))
	for i := range mesh.Vertices {
		e.vertex("", mesh, i)
	}
	for _, f := range mesh.Facets {
		e.printf("%d", len(f.Vertices))
		for _, v := range f.Vertices {
			e.printf(" %d", v)
		}
		e.printf("\n")
	}
}
