package mapgen

import (
	"github.com/violet-summer/MapGenerator/pkg/buildings"
	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// MapModel is the complete generated output: labeled polygonal geometry in
// world coordinates, plus the screen-space building projections.
type MapModel struct {
	Sea            geo.Polygon       `json:"sea"`
	River          geo.Polygon       `json:"river"`
	Coastline      []geo.Vec         `json:"coastline"`
	CoastlineRoads [][]geo.Vec       `json:"coastlineRoads"`
	SecondaryRiver []geo.Vec         `json:"secondaryRiver"`
	MainRoads      [][]geo.Vec       `json:"mainRoads"`
	MajorRoads     [][]geo.Vec       `json:"majorRoads"`
	MinorRoads     [][]geo.Vec       `json:"minorRoads"`
	Parks          []geo.Polygon     `json:"parks"`
	Blocks         []geo.Polygon     `json:"blocks"`
	Lots           []geo.Polygon     `json:"lots"`
	Buildings      []buildings.Model `json:"buildings"`
	// FieldCentres holds the basis-field centre points when the
	// drawCentre option is set.
	FieldCentres []geo.Vec `json:"fieldCentres,omitempty"`
}
