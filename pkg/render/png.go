package render

import (
	"io"

	"github.com/fogleman/gg"

	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/mapgen"
)

// WritePNG rasterizes the map model at the given pixel scale.
func WritePNG(w io.Writer, m *mapgen.MapModel, world geo.Rect, scale float64, style Style) error {
	width := int(world.Dims.X * scale)
	height := int(world.Dims.Y * scale)
	dc := gg.NewContext(width, height)

	toLocal := func(v geo.Vec) (float64, float64) {
		p := v.Sub(world.Origin).Scale(scale)
		return p.X, p.Y
	}
	tracePolygon := func(p geo.Polygon) {
		dc.NewSubPath()
		for _, v := range p.Vertices {
			dc.LineTo(toLocal(v))
		}
		dc.ClosePath()
	}
	fillPolygon := func(p geo.Polygon, hex string) {
		if p.IsEmpty() {
			return
		}
		tracePolygon(p)
		dc.SetHexColor(hex)
		dc.Fill()
	}
	strokePolyline := func(line []geo.Vec, hex string, width float64) {
		if len(line) < 2 {
			return
		}
		dc.NewSubPath()
		for _, v := range line {
			dc.LineTo(toLocal(v))
		}
		dc.SetHexColor(hex)
		dc.SetLineWidth(width)
		dc.Stroke()
	}

	dc.SetHexColor(style.Land)
	dc.Clear()

	fillPolygon(m.Sea, style.Sea)
	fillPolygon(m.River, style.River)
	for _, park := range m.Parks {
		fillPolygon(park, style.Park)
	}

	for _, group := range [][][]geo.Vec{m.CoastlineRoads, m.MainRoads, m.MajorRoads, m.MinorRoads} {
		for _, line := range group {
			strokePolyline(line, style.Road, style.RoadWidth*scale)
		}
	}
	strokePolyline(m.SecondaryRiver, style.Road, style.RoadWidth*scale)

	for _, lot := range m.Lots {
		if lot.IsEmpty() {
			continue
		}
		tracePolygon(lot)
		dc.SetHexColor(style.Lot)
		dc.FillPreserve()
		dc.SetHexColor(style.LotLine)
		dc.SetLineWidth(0.5 * scale)
		dc.Stroke()
	}

	return dc.EncodePNG(w)
}
