package types

// Coord is an integer point in nanometers.
type Coord struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// Add returns c+o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c-o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Dot returns the dot product of c and o.
func (c Coord) Dot(o Coord) int64 {
	return c.X*o.X + c.Y*o.Y
}

// Angle units. A full turn is AngleFullTurn units.
const (
	AngleFullTurn = 65536
	AngleHalfTurn = AngleFullTurn / 2
)

// wrapAngle normalizes a into [0, AngleFullTurn).
func wrapAngle(a int) int {
	a %= AngleFullTurn
	if a < 0 {
		a += AngleFullTurn
	}
	return a
}

// DegToAngle converts degrees to angle units.
func DegToAngle(deg int) int {
	return deg * AngleFullTurn / 360
}

// Placement is the position, rotation and mirror flag shared by most
// placeable entities. Angle is kept normalized by the accessors.
type Placement struct {
	Shift  Coord `json:"shift"`
	Angle  int   `json:"angle"`
	Mirror bool  `json:"mirror"`
}

// GetAngle returns the normalized angle.
func (p *Placement) GetAngle() int {
	return wrapAngle(p.Angle)
}

// SetAngle stores a, normalized.
func (p *Placement) SetAngle(a int) {
	p.Angle = wrapAngle(a)
}

// IncAngle adds a to the angle.
func (p *Placement) IncAngle(a int) {
	p.SetAngle(p.Angle + a)
}

// IncAngleDeg adds deg degrees to the angle.
func (p *Placement) IncAngleDeg(deg int) {
	p.IncAngle(DegToAngle(deg))
}

// InvertAngle negates the angle.
func (p *Placement) InvertAngle() {
	p.SetAngle(-p.Angle)
}

// Orientation is the direction of axis-locked entities such as pins and labels.
type Orientation int

// Orientations.
const (
	OrientationUp Orientation = iota
	OrientationDown
	OrientationLeft
	OrientationRight
)

var orientationNames = map[Orientation]string{
	OrientationUp:    "up",
	OrientationDown:  "down",
	OrientationLeft:  "left",
	OrientationRight: "right",
}

func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return "invalid"
}

// Rotated returns the orientation after a clockwise quarter turn
// (UP→RIGHT→DOWN→LEFT→UP), or the counter-clockwise one when reverse is set.
func (o Orientation) Rotated(reverse bool) Orientation {
	if reverse {
		switch o {
		case OrientationUp:
			return OrientationLeft
		case OrientationDown:
			return OrientationRight
		case OrientationLeft:
			return OrientationDown
		case OrientationRight:
			return OrientationUp
		}
		return o
	}
	switch o {
	case OrientationUp:
		return OrientationRight
	case OrientationDown:
		return OrientationLeft
	case OrientationLeft:
		return OrientationUp
	case OrientationRight:
		return OrientationDown
	}
	return o
}

// Mirrored swaps LEFT and RIGHT; UP and DOWN are fixed.
func (o Orientation) Mirrored() Orientation {
	switch o {
	case OrientationLeft:
		return OrientationRight
	case OrientationRight:
		return OrientationLeft
	}
	return o
}
