package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacementAngleNormalized(t *testing.T) {
	tests := []struct {
		name string
		set  int
		want int
	}{
		{"zero", 0, 0},
		{"in range", 1234, 1234},
		{"full turn wraps", AngleFullTurn, 0},
		{"negative wraps", -DegToAngle(90), DegToAngle(270)},
		{"above full turn", AngleFullTurn + 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Placement
			p.SetAngle(tt.set)
			assert.Equal(t, tt.want, p.GetAngle())
		})
	}
}

func TestPlacementIncAndInvert(t *testing.T) {
	var p Placement
	p.IncAngleDeg(-90)
	assert.Equal(t, DegToAngle(270), p.GetAngle())

	p.InvertAngle()
	assert.Equal(t, DegToAngle(90), p.GetAngle())

	p.SetAngle(0)
	p.InvertAngle()
	assert.Equal(t, 0, p.GetAngle())
}

func TestOrientationRotateCycle(t *testing.T) {
	assert.Equal(t, OrientationRight, OrientationUp.Rotated(false))
	assert.Equal(t, OrientationDown, OrientationRight.Rotated(false))
	assert.Equal(t, OrientationLeft, OrientationDown.Rotated(false))
	assert.Equal(t, OrientationUp, OrientationLeft.Rotated(false))

	for _, o := range []Orientation{OrientationUp, OrientationDown, OrientationLeft, OrientationRight} {
		assert.Equal(t, o, o.Rotated(false).Rotated(true), "reverse undoes %s", o)
		assert.Equal(t, o, o.Mirrored().Mirrored(), "mirror is an involution for %s", o)
	}
	assert.Equal(t, OrientationUp, OrientationUp.Mirrored())
	assert.Equal(t, OrientationRight, OrientationLeft.Mirrored())
}

func TestDimensionLengthAndProject(t *testing.T) {
	d := Dimension{P0: Coord{0, 0}, P1: Coord{3000, 4000}}
	assert.Equal(t, int64(5000), d.Length())

	d.Mode = DimensionHorizontal
	assert.Equal(t, int64(3000), d.Length())
	assert.Equal(t, int64(70), d.Project(Coord{X: 500, Y: 70}))

	d.Mode = DimensionVertical
	assert.Equal(t, int64(4000), d.Length())
	assert.Equal(t, int64(-500), d.Project(Coord{X: 500, Y: 70}))

	flat := Dimension{P0: Coord{1, 1}, P1: Coord{1, 1}}
	assert.Equal(t, int64(0), flat.Project(Coord{X: 10, Y: 10}))
}

func TestBusRipperAndPowerSymbolMirrorInvolution(t *testing.T) {
	for _, o := range []Orientation{OrientationUp, OrientationDown, OrientationLeft, OrientationRight} {
		r := BusRipper{Orientation: o}
		r.Mirror()
		assert.NotEqual(t, o, r.Orientation)
		r.Mirror()
		assert.Equal(t, o, r.Orientation)

		p := PowerSymbol{Orientation: o}
		p.MirrorX()
		p.MirrorX()
		assert.Equal(t, PowerSymbol{Orientation: o}, p)
	}
}
