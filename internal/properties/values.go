package properties

import (
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// Setters decode the value before touching the target so that a mismatch
// leaves the object unchanged.

func setBool(dst *bool, v types.Value) error {
	b, err := types.AsBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func setInt(dst *int64, v types.Value) error {
	i, err := types.AsInt(v)
	if err != nil {
		return err
	}
	*dst = i
	return nil
}

func setText(dst *string, v types.Value) error {
	s, err := types.AsText(v)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

// setEnum stores an integer value into an integer-backed field such as a
// layer id, shape or mode.
func setEnum[E ~int](dst *E, v types.Value) error {
	i, err := types.AsInt(v)
	if err != nil {
		return err
	}
	*dst = E(i)
	return nil
}

func getPlacement(p *types.Placement, prop types.PropertyID) types.Value {
	switch prop {
	case types.PropertyPositionX:
		return types.IntValue(p.Shift.X)
	case types.PropertyPositionY:
		return types.IntValue(p.Shift.Y)
	case types.PropertyAngle:
		return types.IntValue(p.GetAngle())
	case types.PropertyMirror:
		return types.BoolValue(p.Mirror)
	}
	return nil
}

func setPlacement(p *types.Placement, prop types.PropertyID, v types.Value) error {
	switch prop {
	case types.PropertyPositionX:
		return setInt(&p.Shift.X, v)
	case types.PropertyPositionY:
		return setInt(&p.Shift.Y, v)
	case types.PropertyAngle:
		a, err := types.AsInt(v)
		if err != nil {
			return err
		}
		p.SetAngle(int(a))
		return nil
	case types.PropertyMirror:
		return setBool(&p.Mirror, v)
	}
	return types.ErrPropertyUnsupported
}

// visibleTextAngle is the angle a user sees on a text. A mirrored text is
// stored with its angle inverted and turned by half a turn.
func visibleTextAngle(p types.Placement) int {
	if p.Mirror {
		p.InvertAngle()
		p.IncAngle(types.AngleHalfTurn)
	}
	return p.GetAngle()
}

// setVisibleTextAngle stores a so that visibleTextAngle returns it.
func setVisibleTextAngle(p *types.Placement, a int) {
	p.SetAngle(a)
	if p.Mirror {
		p.InvertAngle()
		p.IncAngle(types.AngleHalfTurn)
	}
}
