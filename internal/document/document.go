// Package document is the entity store of the layout core. A Document owns
// every object of an open design, grouped into one table per object kind,
// and carries the handles the core needs from the surrounding application:
// the layer catalog, the block graph and the change hook.
//
// A Document is not safe for concurrent use; callers serialize access.
package document

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// Document is the entity store plus its consistency state.
type Document struct {
	Junctions        *Table[types.Junction]
	Holes            *Table[types.Hole]
	Lines            *Table[types.Line]
	Arcs             *Table[types.Arc]
	Texts            *Table[types.Text]
	Dimensions       *Table[types.Dimension]
	Polygons         *Table[types.Polygon]
	Keepouts         *Table[types.Keepout]
	SymbolPins       *Table[types.SymbolPin]
	SchematicSymbols *Table[types.SchematicSymbol]
	BoardPackages    *Table[types.BoardPackage]
	Pads             *Table[types.Pad]
	BoardHoles       *Table[types.BoardHole]
	Tracks           *Table[types.Track]
	Shapes           *Table[types.Shape]
	NetLabels        *Table[types.NetLabel]
	BusLabels        *Table[types.BusLabel]
	PowerSymbols     *Table[types.PowerSymbol]
	BusRippers       *Table[types.BusRipper]

	// Block is the netlist aggregate symbols resolve their component and
	// gate against. It may be nil for documents without a schematic.
	Block *types.Block

	layers types.LayerProvider
	hook   types.ChangeHook
	logger zerolog.Logger

	txDepth   int
	txChanged bool
	needsSave bool
}

// Option configures a Document.
type Option func(*Document)

// WithLayerProvider sets the layer catalog used for layer metadata.
func WithLayerProvider(p types.LayerProvider) Option {
	return func(d *Document) { d.layers = p }
}

// WithChangeHook sets the hook notified after each committed mutation.
func WithChangeHook(h types.ChangeHook) Option {
	return func(d *Document) { d.hook = h }
}

// WithBlock attaches the block graph.
func WithBlock(b *types.Block) Option {
	return func(d *Document) { d.Block = b }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Document) { d.logger = l.With().Str("component", "document").Logger() }
}

// New returns an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		Junctions:        NewTable[types.Junction](),
		Holes:            NewTable[types.Hole](),
		Lines:            NewTable[types.Line](),
		Arcs:             NewTable[types.Arc](),
		Texts:            NewTable[types.Text](),
		Dimensions:       NewTable[types.Dimension](),
		Polygons:         NewTable[types.Polygon](),
		Keepouts:         NewTable[types.Keepout](),
		SymbolPins:       NewTable[types.SymbolPin](),
		SchematicSymbols: NewTable[types.SchematicSymbol](),
		BoardPackages:    NewTable[types.BoardPackage](),
		Pads:             NewTable[types.Pad](),
		BoardHoles:       NewTable[types.BoardHole](),
		Tracks:           NewTable[types.Track](),
		Shapes:           NewTable[types.Shape](),
		NetLabels:        NewTable[types.NetLabel](),
		BusLabels:        NewTable[types.BusLabel](),
		PowerSymbols:     NewTable[types.PowerSymbol](),
		BusRippers:       NewTable[types.BusRipper](),
		layers:           types.DefaultBoardLayers,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Layers returns the document's layer catalog.
func (d *Document) Layers() []types.Layer {
	if d.layers == nil {
		return nil
	}
	return d.layers.Layers()
}

// Logger returns the document logger.
func (d *Document) Logger() zerolog.Logger {
	return d.logger
}

// newID generates a UUID v7 for new objects.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func insert[T any](t *Table[T], kind types.ObjectKind, id *uuid.UUID, v *T) (uuid.UUID, error) {
	if *id == uuid.Nil {
		*id = newID()
	}
	if !t.Insert(*id, v) {
		return uuid.Nil, eris.Wrapf(types.ErrDuplicateID, "%s %s", kind, *id)
	}
	return *id, nil
}

// Add stores a new object. A nil id is replaced by a fresh UUID v7. It
// returns the id used.
func (d *Document) Add(obj any) (uuid.UUID, error) {
	switch o := obj.(type) {
	case *types.Junction:
		return insert(d.Junctions, types.KindJunction, &o.ID, o)
	case *types.Hole:
		return insert(d.Holes, types.KindHole, &o.ID, o)
	case *types.Line:
		return insert(d.Lines, types.KindLine, &o.ID, o)
	case *types.Arc:
		return insert(d.Arcs, types.KindArc, &o.ID, o)
	case *types.Text:
		return insert(d.Texts, types.KindText, &o.ID, o)
	case *types.Dimension:
		return insert(d.Dimensions, types.KindDimension, &o.ID, o)
	case *types.Polygon:
		return insert(d.Polygons, types.KindPolygon, &o.ID, o)
	case *types.Keepout:
		return insert(d.Keepouts, types.KindKeepout, &o.ID, o)
	case *types.SymbolPin:
		return insert(d.SymbolPins, types.KindSymbolPin, &o.ID, o)
	case *types.SchematicSymbol:
		return insert(d.SchematicSymbols, types.KindSchematicSymbol, &o.ID, o)
	case *types.BoardPackage:
		return insert(d.BoardPackages, types.KindBoardPackage, &o.ID, o)
	case *types.Pad:
		return insert(d.Pads, types.KindPad, &o.ID, o)
	case *types.BoardHole:
		return insert(d.BoardHoles, types.KindBoardHole, &o.ID, o)
	case *types.Track:
		return insert(d.Tracks, types.KindTrack, &o.ID, o)
	case *types.Shape:
		return insert(d.Shapes, types.KindShape, &o.ID, o)
	case *types.NetLabel:
		return insert(d.NetLabels, types.KindNetLabel, &o.ID, o)
	case *types.BusLabel:
		return insert(d.BusLabels, types.KindBusLabel, &o.ID, o)
	case *types.PowerSymbol:
		return insert(d.PowerSymbols, types.KindPowerSymbol, &o.ID, o)
	case *types.BusRipper:
		return insert(d.BusRippers, types.KindBusRipper, &o.ID, o)
	default:
		return uuid.Nil, eris.Wrapf(types.ErrUnknownKind, "cannot store %T", obj)
	}
}

// Delete removes an object. Polygon sub-element kinds delete the polygon.
func (d *Document) Delete(kind types.ObjectKind, id uuid.UUID) error {
	var ok bool
	switch kind {
	case types.KindJunction:
		ok = d.Junctions.Delete(id)
	case types.KindHole:
		ok = d.Holes.Delete(id)
	case types.KindLine:
		ok = d.Lines.Delete(id)
	case types.KindArc:
		ok = d.Arcs.Delete(id)
	case types.KindText:
		ok = d.Texts.Delete(id)
	case types.KindDimension:
		ok = d.Dimensions.Delete(id)
	case types.KindPolygon, types.KindPolygonVertex, types.KindPolygonArcCenter:
		ok = d.Polygons.Delete(id)
	case types.KindKeepout:
		ok = d.Keepouts.Delete(id)
	case types.KindSymbolPin:
		ok = d.SymbolPins.Delete(id)
	case types.KindSchematicSymbol:
		ok = d.SchematicSymbols.Delete(id)
	case types.KindBoardPackage:
		ok = d.BoardPackages.Delete(id)
	case types.KindPad:
		ok = d.Pads.Delete(id)
	case types.KindBoardHole:
		ok = d.BoardHoles.Delete(id)
	case types.KindTrack:
		ok = d.Tracks.Delete(id)
	case types.KindShape:
		ok = d.Shapes.Delete(id)
	case types.KindNetLabel:
		ok = d.NetLabels.Delete(id)
	case types.KindBusLabel:
		ok = d.BusLabels.Delete(id)
	case types.KindPowerSymbol:
		ok = d.PowerSymbols.Delete(id)
	case types.KindBusRipper:
		ok = d.BusRippers.Delete(id)
	default:
		return eris.Wrapf(types.ErrUnknownKind, "%s", kind)
	}
	if !ok {
		return eris.Wrapf(types.ErrNotFound, "%s %s", kind, id)
	}
	return nil
}

// Object returns the object a ref points at, as a pointer to its entity
// struct. Sub-element refs return the owning polygon or dimension.
func (d *Document) Object(kind types.ObjectKind, id uuid.UUID) (any, error) {
	var (
		v  any
		ok bool
	)
	switch kind {
	case types.KindJunction:
		v, ok = lookup(d.Junctions, id)
	case types.KindHole:
		v, ok = lookup(d.Holes, id)
	case types.KindLine:
		v, ok = lookup(d.Lines, id)
	case types.KindArc:
		v, ok = lookup(d.Arcs, id)
	case types.KindText:
		v, ok = lookup(d.Texts, id)
	case types.KindDimension:
		v, ok = lookup(d.Dimensions, id)
	case types.KindPolygon, types.KindPolygonVertex, types.KindPolygonArcCenter:
		v, ok = lookup(d.Polygons, id)
	case types.KindKeepout:
		v, ok = lookup(d.Keepouts, id)
	case types.KindSymbolPin:
		v, ok = lookup(d.SymbolPins, id)
	case types.KindSchematicSymbol:
		v, ok = lookup(d.SchematicSymbols, id)
	case types.KindBoardPackage:
		v, ok = lookup(d.BoardPackages, id)
	case types.KindPad:
		v, ok = lookup(d.Pads, id)
	case types.KindBoardHole:
		v, ok = lookup(d.BoardHoles, id)
	case types.KindTrack:
		v, ok = lookup(d.Tracks, id)
	case types.KindShape:
		v, ok = lookup(d.Shapes, id)
	case types.KindNetLabel:
		v, ok = lookup(d.NetLabels, id)
	case types.KindBusLabel:
		v, ok = lookup(d.BusLabels, id)
	case types.KindPowerSymbol:
		v, ok = lookup(d.PowerSymbols, id)
	case types.KindBusRipper:
		v, ok = lookup(d.BusRippers, id)
	default:
		return nil, eris.Wrapf(types.ErrUnknownKind, "%s", kind)
	}
	if !ok {
		return nil, eris.Wrapf(types.ErrNotFound, "%s %s", kind, id)
	}
	return v, nil
}

func lookup[T any](t *Table[T], id uuid.UUID) (any, bool) {
	v, ok := t.Get(id)
	if !ok {
		return nil, false
	}
	return v, true
}

// Resolve checks that ref points at a live object and, when it carries a
// sub-element index, at an existing sub-element: a polygon vertex or a
// dimension endpoint. It returns ErrStaleReference otherwise.
func (d *Document) Resolve(ref types.ObjectRef) error {
	obj, err := d.Object(ref.Kind, ref.ID)
	if err != nil {
		return eris.Wrapf(types.ErrStaleReference, "%s: %v", ref, err)
	}
	switch ref.Kind {
	case types.KindPolygonVertex, types.KindPolygonArcCenter:
		poly := obj.(*types.Polygon)
		if ref.Vertex < 0 || ref.Vertex >= len(poly.Vertices) {
			return eris.Wrapf(types.ErrStaleReference, "%s: polygon has %d vertices", ref, len(poly.Vertices))
		}
	case types.KindDimension:
		if ref.HasVertex() && ref.Vertex > 1 {
			return eris.Wrapf(types.ErrStaleReference, "%s: dimension has endpoints 0 and 1", ref)
		}
	default:
		if ref.HasVertex() {
			return eris.Wrapf(types.ErrStaleReference, "%s: %s has no sub-elements", ref, ref.Kind)
		}
	}
	return nil
}

// Get returns a typed object from its table or ErrNotFound.
func Get[T any](t *Table[T], kind types.ObjectKind, id uuid.UUID) (*T, error) {
	v, ok := t.Get(id)
	if !ok {
		return nil, eris.Wrapf(types.ErrNotFound, "%s %s", kind, id)
	}
	return v, nil
}

// Hole returns the hole with the given id.
func (d *Document) Hole(id uuid.UUID) (*types.Hole, error) {
	return Get(d.Holes, types.KindHole, id)
}

// Text returns the text with the given id.
func (d *Document) Text(id uuid.UUID) (*types.Text, error) {
	return Get(d.Texts, types.KindText, id)
}

// Dimension returns the dimension with the given id.
func (d *Document) Dimension(id uuid.UUID) (*types.Dimension, error) {
	return Get(d.Dimensions, types.KindDimension, id)
}

// Polygon returns the polygon with the given id.
func (d *Document) Polygon(id uuid.UUID) (*types.Polygon, error) {
	return Get(d.Polygons, types.KindPolygon, id)
}

// SchematicSymbol returns the schematic symbol with the given id.
func (d *Document) SchematicSymbol(id uuid.UUID) (*types.SchematicSymbol, error) {
	return Get(d.SchematicSymbols, types.KindSchematicSymbol, id)
}

// IDs returns the ids stored for kind in insertion order. Polygon
// sub-element kinds have no table of their own and return nil.
func (d *Document) IDs(kind types.ObjectKind) []uuid.UUID {
	switch kind {
	case types.KindJunction:
		return d.Junctions.IDs()
	case types.KindHole:
		return d.Holes.IDs()
	case types.KindLine:
		return d.Lines.IDs()
	case types.KindArc:
		return d.Arcs.IDs()
	case types.KindText:
		return d.Texts.IDs()
	case types.KindDimension:
		return d.Dimensions.IDs()
	case types.KindPolygon:
		return d.Polygons.IDs()
	case types.KindKeepout:
		return d.Keepouts.IDs()
	case types.KindSymbolPin:
		return d.SymbolPins.IDs()
	case types.KindSchematicSymbol:
		return d.SchematicSymbols.IDs()
	case types.KindBoardPackage:
		return d.BoardPackages.IDs()
	case types.KindPad:
		return d.Pads.IDs()
	case types.KindBoardHole:
		return d.BoardHoles.IDs()
	case types.KindTrack:
		return d.Tracks.IDs()
	case types.KindShape:
		return d.Shapes.IDs()
	case types.KindNetLabel:
		return d.NetLabels.IDs()
	case types.KindBusLabel:
		return d.BusLabels.IDs()
	case types.KindPowerSymbol:
		return d.PowerSymbols.IDs()
	case types.KindBusRipper:
		return d.BusRippers.IDs()
	}
	return nil
}

// Len returns the number of stored objects across all kinds.
func (d *Document) Len() int {
	n := 0
	for _, kind := range types.ObjectKinds() {
		n += len(d.IDs(kind))
	}
	return n
}

// NewObject returns a zero entity of kind, ready to be decoded into and
// passed to Add.
func NewObject(kind types.ObjectKind) (any, error) {
	switch kind {
	case types.KindJunction:
		return &types.Junction{}, nil
	case types.KindHole:
		return &types.Hole{}, nil
	case types.KindLine:
		return &types.Line{}, nil
	case types.KindArc:
		return &types.Arc{}, nil
	case types.KindText:
		return &types.Text{}, nil
	case types.KindDimension:
		return &types.Dimension{}, nil
	case types.KindPolygon:
		return &types.Polygon{}, nil
	case types.KindKeepout:
		return &types.Keepout{}, nil
	case types.KindSymbolPin:
		return &types.SymbolPin{}, nil
	case types.KindSchematicSymbol:
		return &types.SchematicSymbol{}, nil
	case types.KindBoardPackage:
		return &types.BoardPackage{}, nil
	case types.KindPad:
		return &types.Pad{}, nil
	case types.KindBoardHole:
		return &types.BoardHole{}, nil
	case types.KindTrack:
		return &types.Track{}, nil
	case types.KindShape:
		return &types.Shape{}, nil
	case types.KindNetLabel:
		return &types.NetLabel{}, nil
	case types.KindBusLabel:
		return &types.BusLabel{}, nil
	case types.KindPowerSymbol:
		return &types.PowerSymbol{}, nil
	case types.KindBusRipper:
		return &types.BusRipper{}, nil
	}
	return nil, eris.Wrapf(types.ErrUnknownKind, "%s has no table", kind)
}
