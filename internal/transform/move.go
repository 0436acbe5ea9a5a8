// Package transform moves, rotates and mirrors the selected objects of a
// document. Every kind carries its own rule for what translating, turning or
// reflecting it means; the rules live in one switch per operation.
package transform

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// Mover drags a selection. Begin anchors the move; each Update applies only
// the difference to what was applied before, so positions never drift. The
// Mover does not notify the document; the caller either commits or cancels.
type Mover struct {
	doc    *document.Document
	sel    *types.Selection
	logger zerolog.Logger

	refs []types.ObjectRef
	// dimensions whose endpoints are selected; dragging their body must not
	// also shift the label.
	noLabelDistance map[uuid.UUID]struct{}
	// label distances at Begin of dimensions whose label is dragged.
	labelStart map[uuid.UUID]int64

	origin types.Coord
	last   types.Coord
}

// MoverOption configures a Mover.
type MoverOption func(*Mover)

// WithMoverLogger sets the mover's logger.
func WithMoverLogger(l zerolog.Logger) MoverOption {
	return func(m *Mover) { m.logger = l.With().Str("component", "mover").Logger() }
}

// NewMover returns a Mover over sel. The selection is read at Begin.
func NewMover(doc *document.Document, sel *types.Selection, opts ...MoverOption) *Mover {
	m := &Mover{
		doc:    doc,
		sel:    sel,
		logger: doc.Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin anchors the move at start and snapshots the selection.
func (m *Mover) Begin(start types.Coord) {
	m.origin = start
	m.last = start
	m.refs = m.sel.Refs()
	m.noLabelDistance = make(map[uuid.UUID]struct{})
	for _, ref := range m.refs {
		if ref.Kind == types.KindDimension && isEndpoint(ref.Vertex) {
			m.noLabelDistance[ref.ID] = struct{}{}
		}
	}
	m.labelStart = make(map[uuid.UUID]int64)
	for _, ref := range m.refs {
		if ref.Kind != types.KindDimension || ref.HasVertex() {
			continue
		}
		if _, skip := m.noLabelDistance[ref.ID]; skip {
			continue
		}
		if dim, err := m.doc.Dimension(ref.ID); err == nil {
			m.labelStart[ref.ID] = dim.LabelDistance
		}
	}
}

// Update moves every selected object by delta. Stale references are skipped
// and reported together in the returned error; the rest are still moved.
func (m *Mover) Update(delta types.Coord) error {
	m.last = m.last.Add(delta)
	var errs []error
	for _, ref := range m.refs {
		if err := m.moveRef(ref, delta); err != nil {
			m.logger.Warn().Err(err).Str("ref", ref.String()).Msg("skipping stale reference")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UpdateCursor follows a cursor, constrained by restrict. A nil restrict
// behaves as RestrictNone.
func (m *Mover) UpdateCursor(cursor types.Coord, restrict RestrictFunc) error {
	if restrict == nil {
		restrict = RestrictNone
	}
	p := restrict(m.origin, cursor)
	return m.Update(p.Sub(m.last))
}

// Delta returns the total displacement applied since Begin.
func (m *Mover) Delta() types.Coord {
	return m.last.Sub(m.origin)
}

// Commit records the accumulated move as one document change.
func (m *Mover) Commit() {
	m.doc.Commit()
}

// Cancel moves everything back to where it was at Begin. Dragged dimension
// labels get their starting distance back exactly, since each Update rounds
// its own projection.
func (m *Mover) Cancel() error {
	d := m.Delta()
	err := m.Update(types.Coord{X: -d.X, Y: -d.Y})
	for id, ld := range m.labelStart {
		if dim, derr := m.doc.Dimension(id); derr == nil {
			dim.LabelDistance = ld
		}
	}
	return err
}

func isEndpoint(vertex int) bool {
	return vertex == 0 || vertex == 1
}

func translate(p *types.Coord, d types.Coord) {
	*p = p.Add(d)
}

func stale(ref types.ObjectRef, err error) error {
	return eris.Wrapf(types.ErrStaleReference, "%s: %v", ref, err)
}

func (m *Mover) moveRef(ref types.ObjectRef, d types.Coord) error {
	if err := m.doc.Resolve(ref); err != nil {
		return err
	}
	obj, err := m.doc.Object(ref.Kind, ref.ID)
	if err != nil {
		return stale(ref, err)
	}

	switch o := obj.(type) {
	case *types.Junction:
		translate(&o.Position, d)
	case *types.Hole:
		translate(&o.Placement.Shift, d)
	case *types.Line:
		translate(&o.From, d)
		translate(&o.To, d)
	case *types.Arc:
		translate(&o.From, d)
		translate(&o.To, d)
		translate(&o.Center, d)
	case *types.Text:
		translate(&o.Placement.Shift, d)
	case *types.Dimension:
		switch {
		case ref.Vertex == 0:
			translate(&o.P0, d)
		case ref.Vertex == 1:
			translate(&o.P1, d)
		default:
			if _, skip := m.noLabelDistance[ref.ID]; !skip {
				o.LabelDistance += o.Project(d)
			}
		}
	case *types.Polygon:
		switch ref.Kind {
		case types.KindPolygonVertex:
			translate(&o.Vertices[ref.Vertex].Position, d)
		case types.KindPolygonArcCenter:
			translate(&o.Vertices[ref.Vertex].ArcCenter, d)
		default:
			for i := range o.Vertices {
				translate(&o.Vertices[i].Position, d)
				translate(&o.Vertices[i].ArcCenter, d)
			}
		}
	case *types.SymbolPin:
		translate(&o.Position, d)
	case *types.SchematicSymbol:
		translate(&o.Placement.Shift, d)
	case *types.BoardPackage:
		translate(&o.Placement.Shift, d)
	case *types.Pad:
		translate(&o.Placement.Shift, d)
	case *types.BoardHole:
		translate(&o.Placement.Shift, d)
	case *types.Track:
		translate(&o.From, d)
		translate(&o.To, d)
	case *types.Shape:
		translate(&o.Placement.Shift, d)
	case *types.NetLabel:
		translate(&o.Position, d)
	case *types.BusLabel:
		translate(&o.Position, d)
	case *types.PowerSymbol:
		translate(&o.Position, d)
	case *types.BusRipper:
		translate(&o.Position, d)
	}
	return nil
}
