package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/mapgen"
)

// groundThickness is the height of the base slab under the city.
const groundThickness = 20.0

// WriteSTL emits an ASCII STL mesh: a ground slab for the world rectangle
// plus each building lot extruded by its height. Triangulation fans from
// the polygon centroid, which is adequate for the near-convex lots the
// subdivider produces.
func WriteSTL(w io.Writer, m *mapgen.MapModel, world geo.Rect) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "solid city")

	writeExtrusion(bw, world.Polygon(), -groundThickness, 0)
	for _, b := range m.Buildings {
		writeExtrusion(bw, b.Lot, 0, b.Height)
	}

	fmt.Fprintln(bw, "endsolid city")
	return bw.Flush()
}

// writeExtrusion emits the prism made by sweeping a polygon from z0 to z1.
func writeExtrusion(w io.Writer, p geo.Polygon, z0, z1 float64) {
	if p.IsEmpty() {
		return
	}
	poly := p.EnsureCCW()
	c := poly.Centroid()
	n := len(poly.Vertices)

	for i := 0; i < n; i++ {
		a, b := poly.Edge(i)
		// Bottom cap, wound downward.
		writeFacet(w, tri{pt(a, z0), pt(c, z0), pt(b, z0)})
		// Top cap, wound upward.
		writeFacet(w, tri{pt(a, z1), pt(b, z1), pt(c, z1)})
		// Side wall.
		writeFacet(w, tri{pt(a, z0), pt(b, z0), pt(b, z1)})
		writeFacet(w, tri{pt(a, z0), pt(b, z1), pt(a, z1)})
	}
}

type point3 struct{ x, y, z float64 }

type tri [3]point3

func pt(v geo.Vec, z float64) point3 {
	return point3{v.X, v.Y, z}
}

// writeFacet emits one STL facet with its right-hand-rule normal.
func writeFacet(w io.Writer, t tri) {
	ux, uy, uz := t[1].x-t[0].x, t[1].y-t[0].y, t[1].z-t[0].z
	vx, vy, vz := t[2].x-t[0].x, t[2].y-t[0].y, t[2].z-t[0].z
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx

	fmt.Fprintf(w, "  facet normal %g %g %g\n", nx, ny, nz)
	fmt.Fprintln(w, "    outer loop")
	for _, p := range t {
		fmt.Fprintf(w, "      vertex %g %g %g\n", p.x, p.y, p.z)
	}
	fmt.Fprintln(w, "    endloop")
	fmt.Fprintln(w, "  endfacet")
}
