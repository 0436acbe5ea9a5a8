package types

import (
	"math"

	"github.com/google/uuid"
)

// Junction is a connection point carrying only a position.
type Junction struct {
	ID       uuid.UUID `json:"id"`
	Position Coord     `json:"position"`
}

// HoleShape is the drill shape of a hole.
type HoleShape int

// Hole shapes.
const (
	HoleShapeRound HoleShape = iota
	HoleShapeSlot
)

// Hole is a drilled hole in a package or padstack.
type Hole struct {
	ID             uuid.UUID `json:"id"`
	Placement      Placement `json:"placement"`
	Diameter       int64     `json:"diameter"`
	Length         int64     `json:"length"`
	Shape          HoleShape `json:"shape"`
	Plated         bool      `json:"plated"`
	ParameterClass string    `json:"parameter_class"`
}

// Line is a straight graphic segment.
type Line struct {
	ID    uuid.UUID `json:"id"`
	From  Coord     `json:"from"`
	To    Coord     `json:"to"`
	Width int64     `json:"width"`
	Layer int       `json:"layer"`
}

// Arc is a circular graphic segment drawn counter-clockwise from From to To
// around Center.
type Arc struct {
	ID     uuid.UUID `json:"id"`
	From   Coord     `json:"from"`
	To     Coord     `json:"to"`
	Center Coord     `json:"center"`
	Width  int64     `json:"width"`
	Layer  int       `json:"layer"`
}

// Reverse swaps the arc's endpoints, reversing its winding.
func (a *Arc) Reverse() {
	a.From, a.To = a.To, a.From
}

// Font selects the stroke font of a text.
type Font int

// Fonts.
const (
	FontSimplex Font = iota
	FontSans
	FontSerif
	FontScript
)

// Text is a placed string.
type Text struct {
	ID        uuid.UUID `json:"id"`
	Placement Placement `json:"placement"`
	Text      string    `json:"text"`
	Size      int64     `json:"size"`
	Width     int64     `json:"width"`
	Font      Font      `json:"font"`
	Layer     int       `json:"layer"`
}

// DimensionMode selects which component of P1-P0 a dimension measures.
type DimensionMode int

// Dimension modes.
const (
	DimensionDistance DimensionMode = iota
	DimensionHorizontal
	DimensionVertical
)

// Dimension annotates the distance between two points. LabelDistance is the
// signed offset of the label perpendicular to the measured axis.
type Dimension struct {
	ID            uuid.UUID     `json:"id"`
	P0            Coord         `json:"p0"`
	P1            Coord         `json:"p1"`
	LabelDistance int64         `json:"label_distance"`
	LabelSize     int64         `json:"label_size"`
	Mode          DimensionMode `json:"mode"`
}

// vector returns the measured axis.
func (d *Dimension) vector() Coord {
	v := d.P1.Sub(d.P0)
	switch d.Mode {
	case DimensionHorizontal:
		return Coord{X: v.X}
	case DimensionVertical:
		return Coord{Y: v.Y}
	}
	return v
}

// Length returns the measured length.
func (d *Dimension) Length() int64 {
	v := d.vector()
	return int64(math.Round(math.Hypot(float64(v.X), float64(v.Y))))
}

// Project returns the length of c projected onto the dimension's label axis,
// perpendicular to the measured axis. A zero-length dimension projects to 0.
func (d *Dimension) Project(c Coord) int64 {
	v := d.vector()
	n := Coord{X: -v.Y, Y: v.X}
	mag := math.Hypot(float64(n.X), float64(n.Y))
	if mag == 0 {
		return 0
	}
	return int64(math.Round(float64(n.Dot(c)) / mag))
}

// PolygonVertexType tells whether the edge leaving a vertex is straight or an arc.
type PolygonVertexType int

// Polygon vertex types.
const (
	VertexLine PolygonVertexType = iota
	VertexArc
)

// PolygonVertex is one corner of a polygon.
type PolygonVertex struct {
	Position   Coord             `json:"position"`
	Type       PolygonVertexType `json:"type"`
	ArcCenter  Coord             `json:"arc_center"`
	ArcReverse bool              `json:"arc_reverse"`
}

// PolygonUsageType is the kind of object a polygon is used by.
type PolygonUsageType int

// Polygon usage types. UsageUnknown stands for a usage this core does not
// recognize.
const (
	UsagePlane PolygonUsageType = iota + 1
	UsageKeepout
	UsageUnknown
)

// PolygonUsage links a polygon to the plane or keepout that uses it.
type PolygonUsage struct {
	Type PolygonUsageType `json:"type"`
	ID   uuid.UUID        `json:"id"`
}

// Polygon is an ordered vertex list on a layer.
type Polygon struct {
	ID             uuid.UUID       `json:"id"`
	Vertices       []PolygonVertex `json:"vertices"`
	Layer          int             `json:"layer"`
	ParameterClass string          `json:"parameter_class"`
	Usage          *PolygonUsage   `json:"usage,omitempty"`
}

// Keepout restricts a polygon area for a class of objects.
type Keepout struct {
	ID           uuid.UUID `json:"id"`
	KeepoutClass string    `json:"keepout_class"`
	PolygonID    uuid.UUID `json:"polygon"`
}

// SymbolPin is a pin drawn in a symbol.
type SymbolPin struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Position    Coord       `json:"position"`
	Length      int64       `json:"length"`
	Orientation Orientation `json:"orientation"`
}

// PinDisplayMode selects which pin names a schematic symbol shows.
type PinDisplayMode int

// Pin display modes.
const (
	PinDisplaySelectedOnly PinDisplayMode = iota
	PinDisplayBoth
	PinDisplayAll
	PinDisplayCustomOnly
)

var pinDisplayModeNames = map[PinDisplayMode]string{
	PinDisplaySelectedOnly: "selected_only",
	PinDisplayBoth:         "both",
	PinDisplayAll:          "all",
	PinDisplayCustomOnly:   "custom_only",
}

func (m PinDisplayMode) String() string {
	if s, ok := pinDisplayModeNames[m]; ok {
		return s
	}
	return "invalid"
}

// SchematicSymbol places one gate of a component on a sheet. ComponentID and
// GateID are looked up in the Block on demand.
type SchematicSymbol struct {
	ID             uuid.UUID      `json:"id"`
	Placement      Placement      `json:"placement"`
	ComponentID    uuid.UUID      `json:"component"`
	GateID         uuid.UUID      `json:"gate"`
	PinDisplayMode PinDisplayMode `json:"pin_display_mode"`
	TextIDs        []uuid.UUID    `json:"texts,omitempty"`
	Smashed        bool           `json:"smashed"`
	Expand         int            `json:"expand"`
}

// BoardPackage is a package placed on a board. Flip puts it on the bottom side.
type BoardPackage struct {
	ID        uuid.UUID `json:"id"`
	Placement Placement `json:"placement"`
	Flip      bool      `json:"flip"`
	Refdes    string    `json:"refdes,omitempty"`
}

// Pad is a padstack instance inside a package.
type Pad struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Placement Placement `json:"placement"`
}

// BoardHole is a free-standing hole on a board.
type BoardHole struct {
	ID        uuid.UUID `json:"id"`
	Placement Placement `json:"placement"`
}

// Track is a copper connection between two points.
type Track struct {
	ID    uuid.UUID `json:"id"`
	From  Coord     `json:"from"`
	To    Coord     `json:"to"`
	Width int64     `json:"width"`
	Layer int       `json:"layer"`
}

// Shape is a copper shape inside a padstack.
type Shape struct {
	ID        uuid.UUID `json:"id"`
	Placement Placement `json:"placement"`
	Layer     int       `json:"layer"`
}

// NetLabel names the net at a junction.
type NetLabel struct {
	ID          uuid.UUID   `json:"id"`
	Position    Coord       `json:"position"`
	Orientation Orientation `json:"orientation"`
}

// BusLabel names the bus at a junction.
type BusLabel struct {
	ID          uuid.UUID   `json:"id"`
	Position    Coord       `json:"position"`
	Orientation Orientation `json:"orientation"`
}

// PowerSymbol marks a power net at a junction. Mirror flips vertical symbols
// about their own axis.
type PowerSymbol struct {
	ID          uuid.UUID   `json:"id"`
	Position    Coord       `json:"position"`
	Orientation Orientation `json:"orientation"`
	Mirror      bool        `json:"mirror"`
}

// MirrorX reflects the symbol about its own vertical axis: horizontal symbols
// swap LEFT and RIGHT, vertical ones toggle Mirror.
func (p *PowerSymbol) MirrorX() {
	switch p.Orientation {
	case OrientationLeft, OrientationRight:
		p.Orientation = p.Orientation.Mirrored()
	default:
		p.Mirror = !p.Mirror
	}
}

// BusRipper connects a bus to one of its members. Orientation names the
// quadrant the member leaves into: UP is up-right, RIGHT down-right, DOWN
// down-left, LEFT up-left.
type BusRipper struct {
	ID          uuid.UUID   `json:"id"`
	Position    Coord       `json:"position"`
	Orientation Orientation `json:"orientation"`
	MemberID    uuid.UUID   `json:"bus_member,omitempty"`
}

// Mirror reflects the ripper about its own vertical axis.
func (r *BusRipper) Mirror() {
	switch r.Orientation {
	case OrientationUp:
		r.Orientation = OrientationLeft
	case OrientationLeft:
		r.Orientation = OrientationUp
	case OrientationRight:
		r.Orientation = OrientationDown
	case OrientationDown:
		r.Orientation = OrientationRight
	}
}
