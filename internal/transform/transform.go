package transform

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// Mode selects the transform Apply performs.
type Mode int

// Modes.
const (
	Rotate90 Mode = iota
	Mirror
)

func (m Mode) String() string {
	switch m {
	case Rotate90:
		return "rotate"
	case Mirror:
		return "mirror"
	}
	return "invalid"
}

// Engine rotates and mirrors selections about a point.
type Engine struct {
	doc      *document.Document
	expander types.BoardExpander
	placer   types.SymbolPlacer
	logger   zerolog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithBoardExpander sets the collaborator that re-expands flipped packages.
func WithBoardExpander(b types.BoardExpander) EngineOption {
	return func(e *Engine) { e.expander = b }
}

// WithSymbolPlacer sets the collaborator that redraws transformed symbols.
func WithSymbolPlacer(p types.SymbolPlacer) EngineOption {
	return func(e *Engine) { e.placer = p }
}

// WithEngineLogger sets the engine's logger.
func WithEngineLogger(l zerolog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l.With().Str("component", "transform").Logger() }
}

// NewEngine returns an Engine over doc.
func NewEngine(doc *document.Document, opts ...EngineOption) *Engine {
	e := &Engine{doc: doc, logger: doc.Logger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// transformPoint rotates p a quarter turn clockwise about center, or
// reflects it across the vertical line through center.
func transformPoint(p *types.Coord, center types.Coord, rotate bool) {
	d := p.Sub(center)
	if rotate {
		d = types.Coord{X: d.Y, Y: -d.X}
	} else {
		d.X = -d.X
	}
	*p = center.Add(d)
}

func transformOrientation(o types.Orientation, rotate bool) types.Orientation {
	if rotate {
		return o.Rotated(false)
	}
	return o.Mirrored()
}

// Apply transforms every object in sel about center and commits the result
// as one document change. Flipped board packages are handed to the board
// expander in a single call. Stale references are skipped and returned
// joined; the rest of the selection is still transformed. When no ref could
// be applied nothing is committed.
func (e *Engine) Apply(sel *types.Selection, center types.Coord, mode Mode) error {
	rotate := mode == Rotate90
	var (
		errs    []error
		expand  []uuid.UUID
		applied int
	)
	for _, ref := range sel.Refs() {
		pkg, err := e.apply(ref, center, rotate)
		if err != nil {
			e.logger.Warn().Err(err).Str("ref", ref.String()).Str("mode", mode.String()).Msg("skipping stale reference")
			errs = append(errs, err)
			continue
		}
		applied++
		if pkg {
			expand = append(expand, ref.ID)
		}
	}
	if len(expand) > 0 && e.expander != nil {
		e.logger.Debug().Int("packages", len(expand)).Msg("expanding flipped packages")
		e.expander.ExpandPackages(expand)
	}
	if applied > 0 {
		e.doc.Commit()
	}
	return errors.Join(errs...)
}

// apply transforms one object and reports whether it is a board package
// that needs re-expansion.
func (e *Engine) apply(ref types.ObjectRef, center types.Coord, rotate bool) (bool, error) {
	if err := e.doc.Resolve(ref); err != nil {
		return false, err
	}
	obj, err := e.doc.Object(ref.Kind, ref.ID)
	if err != nil {
		return false, stale(ref, err)
	}

	switch o := obj.(type) {
	case *types.Junction:
		transformPoint(&o.Position, center, rotate)

	case *types.Hole:
		transformPlaced(&o.Placement, center, rotate)
	case *types.Pad:
		transformPlaced(&o.Placement, center, rotate)
	case *types.BoardHole:
		transformPlaced(&o.Placement, center, rotate)
	case *types.Shape:
		transformPlaced(&o.Placement, center, rotate)

	case *types.Line:
		transformPoint(&o.From, center, rotate)
		transformPoint(&o.To, center, rotate)
		if !rotate {
			o.From, o.To = o.To, o.From
		}
	case *types.Arc:
		transformPoint(&o.From, center, rotate)
		transformPoint(&o.To, center, rotate)
		transformPoint(&o.Center, center, rotate)
		if !rotate {
			o.Reverse()
		}
	case *types.Track:
		transformPoint(&o.From, center, rotate)
		transformPoint(&o.To, center, rotate)
		if !rotate {
			o.Layer = flipCopper(o.Layer)
		}

	case *types.Text:
		transformMirrorable(&o.Placement, center, rotate)
	case *types.SchematicSymbol:
		transformMirrorable(&o.Placement, center, rotate)
		if e.placer != nil {
			e.placer.ApplyPlacement(o)
		}

	case *types.Dimension:
		switch {
		case ref.Vertex == 0:
			transformPoint(&o.P0, center, rotate)
		case ref.Vertex == 1:
			transformPoint(&o.P1, center, rotate)
		case !rotate:
			o.P0, o.P1 = o.P1, o.P0
			o.LabelDistance = -o.LabelDistance
		}

	case *types.Polygon:
		switch ref.Kind {
		case types.KindPolygonVertex:
			transformPoint(&o.Vertices[ref.Vertex].Position, center, rotate)
		case types.KindPolygonArcCenter:
			transformArcCenter(&o.Vertices[ref.Vertex], center, rotate)
		default:
			for i := range o.Vertices {
				transformPoint(&o.Vertices[i].Position, center, rotate)
				transformArcCenter(&o.Vertices[i], center, rotate)
			}
		}

	case *types.SymbolPin:
		transformPoint(&o.Position, center, rotate)
		o.Orientation = transformOrientation(o.Orientation, rotate)
	case *types.NetLabel:
		transformPoint(&o.Position, center, rotate)
		o.Orientation = transformOrientation(o.Orientation, rotate)
	case *types.BusLabel:
		transformPoint(&o.Position, center, rotate)
		o.Orientation = transformOrientation(o.Orientation, rotate)

	case *types.PowerSymbol:
		transformPoint(&o.Position, center, rotate)
		if rotate {
			o.Orientation = o.Orientation.Rotated(false)
		} else {
			o.MirrorX()
		}
	case *types.BusRipper:
		transformPoint(&o.Position, center, rotate)
		if rotate {
			o.Orientation = o.Orientation.Rotated(false)
		} else {
			o.Mirror()
		}

	case *types.BoardPackage:
		transformPoint(&o.Placement.Shift, center, rotate)
		if rotate {
			o.Placement.IncAngleDeg(-90)
			return false, nil
		}
		o.Flip = !o.Flip
		o.Placement.InvertAngle()
		return true, nil
	}
	return false, nil
}

// transformPlaced handles placements without a mirror state: only the
// position is reflected, rotation turns the angle too.
func transformPlaced(p *types.Placement, center types.Coord, rotate bool) {
	transformPoint(&p.Shift, center, rotate)
	if rotate {
		p.IncAngleDeg(-90)
	}
}

// transformMirrorable handles texts and symbols. A mirrored placement turns
// the other way.
func transformMirrorable(p *types.Placement, center types.Coord, rotate bool) {
	transformPoint(&p.Shift, center, rotate)
	if !rotate {
		p.Mirror = !p.Mirror
		return
	}
	if p.Mirror {
		p.IncAngleDeg(90)
	} else {
		p.IncAngleDeg(-90)
	}
}

func transformArcCenter(v *types.PolygonVertex, center types.Coord, rotate bool) {
	transformPoint(&v.ArcCenter, center, rotate)
	if !rotate && v.Type == types.VertexArc {
		v.ArcReverse = !v.ArcReverse
	}
}

// flipCopper moves a track between the outer copper layers. Inner layers
// stay where they are.
func flipCopper(layer int) int {
	switch layer {
	case types.LayerTopCopper:
		return types.LayerBottomCopper
	case types.LayerBottomCopper:
		return types.LayerTopCopper
	}
	return layer
}
