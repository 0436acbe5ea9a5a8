package types

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/rotisserie/eris"
)

// ObjectKind names the table an object lives in.
type ObjectKind int

// Object kinds. PolygonVertex and PolygonArcCenter address a sub-element of a
// polygon; the object id is the polygon's.
const (
	KindInvalid ObjectKind = iota
	KindJunction
	KindHole
	KindLine
	KindArc
	KindText
	KindDimension
	KindPolygon
	KindPolygonVertex
	KindPolygonArcCenter
	KindKeepout
	KindSymbolPin
	KindSchematicSymbol
	KindBoardPackage
	KindPad
	KindBoardHole
	KindTrack
	KindShape
	KindNetLabel
	KindBusLabel
	KindPowerSymbol
	KindBusRipper
)

var kindNames = map[ObjectKind]string{
	KindJunction:         "junction",
	KindHole:             "hole",
	KindLine:             "line",
	KindArc:              "arc",
	KindText:             "text",
	KindDimension:        "dimension",
	KindPolygon:          "polygon",
	KindPolygonVertex:    "polygon_vertex",
	KindPolygonArcCenter: "polygon_arc_center",
	KindKeepout:          "keepout",
	KindSymbolPin:        "symbol_pin",
	KindSchematicSymbol:  "schematic_symbol",
	KindBoardPackage:     "board_package",
	KindPad:              "pad",
	KindBoardHole:        "board_hole",
	KindTrack:            "track",
	KindShape:            "shape",
	KindNetLabel:         "net_label",
	KindBusLabel:         "bus_label",
	KindPowerSymbol:      "power_symbol",
	KindBusRipper:        "bus_ripper",
}

var kindsByName = func() map[string]ObjectKind {
	m := make(map[string]ObjectKind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

func (k ObjectKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// ObjectKinds returns every valid kind in declaration order.
func ObjectKinds() []ObjectKind {
	kinds := make([]ObjectKind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseObjectKind maps a snake_case name to its kind. Unknown names return
// ErrUnknownKind with the closest known name as a hint.
func ParseObjectKind(name string) (ObjectKind, error) {
	if k, ok := kindsByName[name]; ok {
		return k, nil
	}
	return KindInvalid, eris.Wrapf(ErrUnknownKind, "%q%s", name, suggest(name, kindsByName))
}

// suggest returns a "did you mean" hint for the candidate closest to name,
// or "" when nothing is reasonably close.
func suggest[T any](name string, candidates map[string]T) string {
	best, bestDist := "", -1
	for c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > len(name)/2+1 {
		return ""
	}
	return " (did you mean " + best + "?)"
}
