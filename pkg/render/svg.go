package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/mapgen"
)

// Style bundles the colours and line widths used by the SVG and PNG
// writers.
type Style struct {
	Land      string
	Sea       string
	River     string
	Park      string
	Road      string
	RoadWidth float64
	Lot       string
	LotLine   string
}

// DefaultStyle is a muted paper-map palette.
func DefaultStyle() Style {
	return Style{
		Land:      "#efe9dc",
		Sea:       "#a9c8de",
		River:     "#a9c8de",
		Park:      "#b8d4a6",
		Road:      "#5a5a5a",
		RoadWidth: 1.5,
		Lot:       "#d8d0bd",
		LotLine:   "#a39a84",
	}
}

// WriteSVG renders the map model as an SVG document. Geometry is
// translated so the world origin sits at the top-left corner.
func WriteSVG(w io.Writer, m *mapgen.MapModel, world geo.Rect, style Style) {
	canvas := svg.New(w)
	width := int(world.Dims.X)
	height := int(world.Dims.Y)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+style.Land)

	toLocal := func(v geo.Vec) (int, int) {
		p := v.Sub(world.Origin)
		return int(p.X), int(p.Y)
	}

	drawPolygon := func(p geo.Polygon, s string) {
		if p.IsEmpty() {
			return
		}
		xs := make([]int, len(p.Vertices))
		ys := make([]int, len(p.Vertices))
		for i, v := range p.Vertices {
			xs[i], ys[i] = toLocal(v)
		}
		canvas.Polygon(xs, ys, s)
	}
	drawPolyline := func(line []geo.Vec, s string) {
		if len(line) < 2 {
			return
		}
		xs := make([]int, len(line))
		ys := make([]int, len(line))
		for i, v := range line {
			xs[i], ys[i] = toLocal(v)
		}
		canvas.Polyline(xs, ys, s)
	}

	drawPolygon(m.Sea, "fill:"+style.Sea)
	drawPolygon(m.River, "fill:"+style.River)
	for _, park := range m.Parks {
		drawPolygon(park, "fill:"+style.Park)
	}

	roadStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", style.Road, style.RoadWidth)
	for _, group := range [][][]geo.Vec{m.CoastlineRoads, m.MainRoads, m.MajorRoads, m.MinorRoads} {
		for _, line := range group {
			drawPolyline(line, roadStyle)
		}
	}
	drawPolyline(m.SecondaryRiver, roadStyle)

	lotStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.5", style.Lot, style.LotLine)
	for _, lot := range m.Lots {
		drawPolygon(lot, lotStyle)
	}

	for _, c := range m.FieldCentres {
		x, y := toLocal(c)
		canvas.Circle(x, y, 4, "fill:#c0392b")
	}

	canvas.End()
}
