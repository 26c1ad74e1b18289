package dbg

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/roofmesh/internal"
)

// This is for debugging purposes only

const drawPadding = 20

// Render a skeleton to a PNG file. Boundary arcs are drawn in cyan, bisector
// arcs shaded from green at the footprint to yellow at the deepest node.
func DrawSkeleton(sk *internal.Skeleton, path string, scale float64) error {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, n := range sk.Nodes {
		minX = math.Min(minX, n.Point.X)
		minY = math.Min(minY, n.Point.Y)
		maxX = math.Max(maxX, n.Point.X)
		maxY = math.Max(maxY, n.Point.Y)
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(drawPadding, drawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	depth := sk.MaxTime()
	c.SetLineWidth(2)
	for _, arc := range sk.Arcs {
		a, b := sk.Nodes[arc.A], sk.Nodes[arc.B]
		if arc.Kind == internal.BoundaryArc {
			c.SetRGB(0, 1, 1)
		} else {
			shade := 0.0
			if depth > 0 {
				shade = math.Max(a.Time, b.Time) / depth
			}
			c.SetRGB(shade, 1, 0)
		}
		c.MoveTo(a.Point.X, a.Point.Y)
		c.LineTo(b.Point.X, b.Point.Y)
		c.Stroke()
	}

	c.SetRGB(1, 0.3, 0.3)
	for _, n := range sk.Nodes {
		if !n.Original() {
			c.DrawCircle(n.Point.X, n.Point.Y, 3/scale)
			c.Fill()
		}
	}

	return c.SavePNG(path)
}

// Print an image inline, for terminals that support it.
func Show(path string) error {
	return imgcat.CatFile(path, os.Stdout)
}
