// Package properties is the uniform, typed property interface over every
// object kind of a document. Each (kind, property) pair is either supported,
// with a fixed value variant, or reports types.ErrPropertyUnsupported.
package properties

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// Registry reads and writes object properties of one document.
type Registry struct {
	doc *document.Document
}

// NewRegistry returns a registry bound to doc.
func NewRegistry(doc *document.Document) *Registry {
	return &Registry{doc: doc}
}

func unsupported(kind types.ObjectKind, prop types.PropertyID) error {
	return eris.Wrapf(types.ErrPropertyUnsupported, "%s.%s", kind, prop)
}

// Get returns the value of prop on the object. Unsupported pairs return
// ErrPropertyUnsupported; missing objects ErrNotFound.
func (r *Registry) Get(kind types.ObjectKind, id uuid.UUID, prop types.PropertyID) (types.Value, error) {
	switch kind {
	case types.KindHole:
		hole, err := r.doc.Hole(id)
		if err != nil {
			return nil, err
		}
		switch prop {
		case types.PropertyPlated:
			return types.BoolValue(hole.Plated), nil
		case types.PropertyDiameter:
			return types.IntValue(hole.Diameter), nil
		case types.PropertyLength:
			return types.IntValue(hole.Length), nil
		case types.PropertyShape:
			return types.IntValue(hole.Shape), nil
		case types.PropertyParameterClass:
			return types.TextValue(hole.ParameterClass), nil
		case types.PropertyPositionX, types.PropertyPositionY, types.PropertyAngle:
			return getPlacement(&hole.Placement, prop), nil
		}

	case types.KindLine:
		line, err := document.Get(r.doc.Lines, kind, id)
		if err != nil {
			return nil, err
		}
		switch prop {
		case types.PropertyWidth:
			return types.IntValue(line.Width), nil
		case types.PropertyLayer:
			return types.IntValue(line.Layer), nil
		}

	case types.KindArc:
		arc, err := document.Get(r.doc.Arcs, kind, id)
		if err != nil {
			return nil, err
		}
		switch prop {
		case types.PropertyWidth:
			return types.IntValue(arc.Width), nil
		case types.PropertyLayer:
			return types.IntValue(arc.Layer), nil
		}

	case types.KindText:
		text, err := r.doc.Text(id)
		if err != nil {
			return nil, err
		}
		switch prop {
		case types.PropertyWidth:
			return types.IntValue(text.Width), nil
		case types.PropertySize:
			return types.IntValue(text.Size), nil
		case types.PropertyLayer:
			return types.IntValue(text.Layer), nil
		case types.PropertyText:
			return types.TextValue(text.Text), nil
		case types.PropertyPositionX, types.PropertyPositionY, types.PropertyMirror:
			return getPlacement(&text.Placement, prop), nil
		case types.PropertyAngle:
			return types.IntValue(visibleTextAngle(text.Placement)), nil
		case types.PropertyFont:
			return types.IntValue(text.Font), nil
		}

	case types.KindDimension:
		dim, err := r.doc.Dimension(id)
		if err != nil {
			return nil, err
		}
		switch prop {
		case types.PropertySize:
			return types.IntValue(dim.LabelSize), nil
		case types.PropertyMode:
			return types.IntValue(dim.Mode), nil
		}

	case types.KindPolygon:
		poly, err := r.doc.Polygon(id)
		if err != nil {
			return nil, err
		}
		switch prop {
		case types.PropertyLayer:
			return types.IntValue(poly.Layer), nil
		case types.PropertyParameterClass:
			return types.TextValue(poly.ParameterClass), nil
		case types.PropertyUsage:
			return types.TextValue(usageName(poly.Usage)), nil
		}

	case types.KindKeepout:
		keepout, err := document.Get(r.doc.Keepouts, kind, id)
		if err != nil {
			return nil, err
		}
		if prop == types.PropertyKeepoutClass {
			return types.TextValue(keepout.KeepoutClass), nil
		}
	}
	return nil, unsupported(kind, prop)
}

// Set writes prop on the object. The value must carry the property's
// variant, otherwise ErrTypeMismatch is returned and nothing changes. A
// successful set notifies the document, deferred while a property
// transaction is open.
func (r *Registry) Set(kind types.ObjectKind, id uuid.UUID, prop types.PropertyID, value types.Value) error {
	if err := r.set(kind, id, prop, value); err != nil {
		return err
	}
	r.doc.Changed()
	return nil
}

func (r *Registry) set(kind types.ObjectKind, id uuid.UUID, prop types.PropertyID, value types.Value) error {
	switch kind {
	case types.KindHole:
		hole, err := r.doc.Hole(id)
		if err != nil {
			return err
		}
		switch prop {
		case types.PropertyPlated:
			return setBool(&hole.Plated, value)
		case types.PropertyDiameter:
			return setInt(&hole.Diameter, value)
		case types.PropertyLength:
			if hole.Shape != types.HoleShapeSlot {
				return eris.Wrapf(types.ErrPropertyUnsupported, "%s.%s: hole is not a slot", kind, prop)
			}
			return setInt(&hole.Length, value)
		case types.PropertyShape:
			return setEnum(&hole.Shape, value)
		case types.PropertyParameterClass:
			return setText(&hole.ParameterClass, value)
		case types.PropertyPositionX, types.PropertyPositionY, types.PropertyAngle:
			return setPlacement(&hole.Placement, prop, value)
		}

	case types.KindLine:
		line, err := document.Get(r.doc.Lines, kind, id)
		if err != nil {
			return err
		}
		switch prop {
		case types.PropertyWidth:
			return setInt(&line.Width, value)
		case types.PropertyLayer:
			return setEnum(&line.Layer, value)
		}

	case types.KindArc:
		arc, err := document.Get(r.doc.Arcs, kind, id)
		if err != nil {
			return err
		}
		switch prop {
		case types.PropertyWidth:
			return setInt(&arc.Width, value)
		case types.PropertyLayer:
			return setEnum(&arc.Layer, value)
		}

	case types.KindText:
		text, err := r.doc.Text(id)
		if err != nil {
			return err
		}
		switch prop {
		case types.PropertyWidth:
			return setInt(&text.Width, value)
		case types.PropertySize:
			return setInt(&text.Size, value)
		case types.PropertyLayer:
			return setEnum(&text.Layer, value)
		case types.PropertyText:
			return setText(&text.Text, value)
		case types.PropertyPositionX, types.PropertyPositionY, types.PropertyMirror:
			return setPlacement(&text.Placement, prop, value)
		case types.PropertyAngle:
			a, err := types.AsInt(value)
			if err != nil {
				return err
			}
			setVisibleTextAngle(&text.Placement, int(a))
			return nil
		case types.PropertyFont:
			return setEnum(&text.Font, value)
		}

	case types.KindDimension:
		dim, err := r.doc.Dimension(id)
		if err != nil {
			return err
		}
		switch prop {
		case types.PropertySize:
			return setInt(&dim.LabelSize, value)
		case types.PropertyMode:
			return setEnum(&dim.Mode, value)
		}

	case types.KindPolygon:
		poly, err := r.doc.Polygon(id)
		if err != nil {
			return err
		}
		switch prop {
		case types.PropertyLayer:
			return setEnum(&poly.Layer, value)
		case types.PropertyParameterClass:
			return setText(&poly.ParameterClass, value)
		}

	case types.KindKeepout:
		keepout, err := document.Get(r.doc.Keepouts, kind, id)
		if err != nil {
			return err
		}
		if prop == types.PropertyKeepoutClass {
			return setText(&keepout.KeepoutClass, value)
		}
	}
	return unsupported(kind, prop)
}

// Meta describes whether prop can currently be set and which layers it may
// take. Pairs without special rules return the default metadata together
// with ErrPropertyUnsupported.
func (r *Registry) Meta(kind types.ObjectKind, id uuid.UUID, prop types.PropertyID) (types.PropertyMeta, error) {
	meta := types.DefaultPropertyMeta()
	switch kind {
	case types.KindHole:
		if prop == types.PropertyLength {
			hole, err := r.doc.Hole(id)
			if err != nil {
				return meta, err
			}
			meta.Settable = hole.Shape == types.HoleShapeSlot
			return meta, nil
		}
	case types.KindText, types.KindLine, types.KindArc, types.KindPolygon:
		if prop == types.PropertyLayer {
			meta.Layers = r.doc.Layers()
			return meta, nil
		}
	}
	return meta, unsupported(kind, prop)
}

// Supported lists the properties Get accepts for kind, in declaration order.
func Supported(kind types.ObjectKind) []types.PropertyID {
	return supportedByKind[kind]
}

var supportedByKind = map[types.ObjectKind][]types.PropertyID{
	types.KindHole: {
		types.PropertyShape, types.PropertyDiameter, types.PropertyLength, types.PropertyPlated,
		types.PropertyParameterClass, types.PropertyPositionX, types.PropertyPositionY, types.PropertyAngle,
	},
	types.KindLine: {types.PropertyWidth, types.PropertyLayer},
	types.KindArc:  {types.PropertyWidth, types.PropertyLayer},
	types.KindText: {
		types.PropertyWidth, types.PropertyLayer, types.PropertySize, types.PropertyText, types.PropertyFont,
		types.PropertyPositionX, types.PropertyPositionY, types.PropertyAngle, types.PropertyMirror,
	},
	types.KindDimension: {types.PropertySize, types.PropertyMode},
	types.KindPolygon:   {types.PropertyLayer, types.PropertyParameterClass, types.PropertyUsage},
	types.KindKeepout:   {types.PropertyKeepoutClass},
}

func usageName(u *types.PolygonUsage) string {
	if u == nil {
		return "None"
	}
	switch u.Type {
	case types.UsagePlane:
		return "Plane"
	case types.UsageKeepout:
		return "Keepout"
	default:
		return "Invalid"
	}
}
