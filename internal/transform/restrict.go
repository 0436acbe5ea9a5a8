package transform

import (
	"math"

	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// RestrictFunc constrains a cursor position relative to the move origin and
// returns the point the move should follow.
type RestrictFunc func(origin, cursor types.Coord) types.Coord

// RestrictNone follows the cursor.
func RestrictNone(_, cursor types.Coord) types.Coord {
	return cursor
}

// RestrictHV keeps the larger of the two axis components.
func RestrictHV(origin, cursor types.Coord) types.Coord {
	d := cursor.Sub(origin)
	if abs(d.X) >= abs(d.Y) {
		return types.Coord{X: cursor.X, Y: origin.Y}
	}
	return types.Coord{X: origin.X, Y: cursor.Y}
}

// tan(22.5°)
var octantSlope = math.Sqrt2 - 1

// RestrictHV45 snaps to the nearest horizontal, vertical or diagonal.
func RestrictHV45(origin, cursor types.Coord) types.Coord {
	d := cursor.Sub(origin)
	ax, ay := abs(d.X), abs(d.Y)
	switch {
	case float64(ay) <= float64(ax)*octantSlope:
		return types.Coord{X: cursor.X, Y: origin.Y}
	case float64(ax) <= float64(ay)*octantSlope:
		return types.Coord{X: origin.X, Y: cursor.Y}
	}
	m := (ax + ay) / 2
	return origin.Add(types.Coord{X: sign(d.X) * m, Y: sign(d.Y) * m})
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int64) int64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
