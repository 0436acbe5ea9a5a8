package transform

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// populate adds one object of every transformable kind and returns a
// selection over all of them.
func populate(t *testing.T, doc *document.Document) *types.Selection {
	t.Helper()
	sel := types.NewSelection()
	ref := func(kind types.ObjectKind, obj any) uuid.UUID {
		id := add(t, doc, obj)
		sel.Add(types.Ref(kind, id))
		return id
	}
	ref(types.KindJunction, &types.Junction{Position: c(3, 8)})
	ref(types.KindHole, &types.Hole{Placement: types.Placement{Shift: c(-4, 1), Angle: 100}})
	ref(types.KindLine, &types.Line{From: c(0, 0), To: c(5, 2)})
	ref(types.KindArc, &types.Arc{From: c(1, 0), To: c(0, 1), Center: c(0, 0)})
	ref(types.KindText, &types.Text{Placement: types.Placement{Shift: c(7, 7), Angle: 5000}})
	ref(types.KindText, &types.Text{Placement: types.Placement{Shift: c(-7, 2), Angle: 123, Mirror: true}})
	ref(types.KindSchematicSymbol, &types.SchematicSymbol{Placement: types.Placement{Shift: c(20, -3)}})
	ref(types.KindBoardPackage, &types.BoardPackage{Placement: types.Placement{Shift: c(9, 9), Angle: 777}})
	ref(types.KindPad, &types.Pad{Placement: types.Placement{Shift: c(1, 2)}})
	ref(types.KindBoardHole, &types.BoardHole{Placement: types.Placement{Shift: c(2, 1)}})
	ref(types.KindTrack, &types.Track{From: c(0, 0), To: c(10, 0), Layer: types.LayerTopCopper})
	ref(types.KindShape, &types.Shape{Placement: types.Placement{Shift: c(-2, -2)}})
	ref(types.KindSymbolPin, &types.SymbolPin{Position: c(4, 0), Orientation: types.OrientationLeft})
	ref(types.KindNetLabel, &types.NetLabel{Position: c(0, 6), Orientation: types.OrientationRight})
	ref(types.KindBusLabel, &types.BusLabel{Position: c(6, 0), Orientation: types.OrientationUp})
	ref(types.KindPowerSymbol, &types.PowerSymbol{Position: c(5, 5), Orientation: types.OrientationUp})
	ref(types.KindPowerSymbol, &types.PowerSymbol{Position: c(5, -5), Orientation: types.OrientationLeft})
	ref(types.KindBusRipper, &types.BusRipper{Position: c(-1, 3), Orientation: types.OrientationRight})
	ref(types.KindPolygon, &types.Polygon{Vertices: []types.PolygonVertex{
		{Position: c(0, 0)}, {Position: c(4, 0), Type: types.VertexArc, ArcCenter: c(2, 2)},
	}})

	ref(types.KindDimension, &types.Dimension{P0: c(0, 0), P1: c(30, 0), LabelDistance: 12})
	did := add(t, doc, &types.Dimension{P0: c(5, 5), P1: c(5, 40), LabelDistance: -3})
	sel.Add(types.VertexRef(types.KindDimension, did, 0))

	pid := add(t, doc, &types.Polygon{Vertices: []types.PolygonVertex{
		{Position: c(1, 1)}, {Position: c(3, 3), Type: types.VertexArc, ArcCenter: c(2, 9)},
	}})
	sel.Add(types.VertexRef(types.KindPolygonVertex, pid, 0))
	sel.Add(types.VertexRef(types.KindPolygonArcCenter, pid, 1))
	return sel
}

// snapshot deep-copies every table so states can be compared.
func snapshot(t *testing.T, doc *document.Document) map[uuid.UUID]any {
	t.Helper()
	out := make(map[uuid.UUID]any)
	for _, kind := range types.ObjectKinds() {
		for _, id := range doc.IDs(kind) {
			obj, err := doc.Object(kind, id)
			require.NoError(t, err)
			out[id] = clone(obj)
		}
	}
	return out
}

func clone(obj any) any {
	switch o := obj.(type) {
	case *types.Polygon:
		cp := *o
		cp.Vertices = append([]types.PolygonVertex(nil), o.Vertices...)
		return cp
	case *types.Junction:
		return *o
	case *types.Hole:
		return *o
	case *types.Line:
		return *o
	case *types.Arc:
		return *o
	case *types.Text:
		return *o
	case *types.Dimension:
		return *o
	case *types.SymbolPin:
		return *o
	case *types.SchematicSymbol:
		return *o
	case *types.BoardPackage:
		return *o
	case *types.Pad:
		return *o
	case *types.BoardHole:
		return *o
	case *types.Track:
		return *o
	case *types.Shape:
		return *o
	case *types.NetLabel:
		return *o
	case *types.BusLabel:
		return *o
	case *types.PowerSymbol:
		return *o
	case *types.BusRipper:
		return *o
	}
	return obj
}

func TestApply_MirrorTwiceIsIdentity(t *testing.T) {
	for _, center := range []types.Coord{c(0, 0), c(13, -4), c(-1000, 77)} {
		doc := document.New()
		sel := populate(t, doc)
		before := snapshot(t, doc)
		e := NewEngine(doc)

		require.NoError(t, e.Apply(sel, center, Mirror))
		assert.NotEqual(t, before, snapshot(t, doc))
		require.NoError(t, e.Apply(sel, center, Mirror))
		assert.Equal(t, before, snapshot(t, doc), "center %v", center)
	}
}

func TestApply_RotateFourTimesIsIdentity(t *testing.T) {
	for _, center := range []types.Coord{c(0, 0), c(13, -4), c(-1000, 77)} {
		doc := document.New()
		sel := populate(t, doc)
		before := snapshot(t, doc)
		e := NewEngine(doc)

		for i := 0; i < 4; i++ {
			require.NoError(t, e.Apply(sel, center, Rotate90))
			if i < 3 {
				assert.NotEqual(t, before, snapshot(t, doc))
			}
		}
		assert.Equal(t, before, snapshot(t, doc), "center %v", center)
	}
}

func TestApply_Primitive(t *testing.T) {
	doc := document.New()
	j := &types.Junction{Position: c(15, 12)}
	sel := types.NewSelection(types.Ref(types.KindJunction, add(t, doc, j)))
	e := NewEngine(doc)

	require.NoError(t, e.Apply(sel, c(10, 10), Rotate90))
	assert.Equal(t, c(12, 5), j.Position, "(5,2) -> (2,-5)")

	require.NoError(t, e.Apply(sel, c(10, 10), Mirror))
	assert.Equal(t, c(8, 5), j.Position, "(2,-5) -> (-2,-5)")
}

func TestApply_SecondaryRules(t *testing.T) {
	doc := document.New()
	text := &types.Text{}
	mirrored := &types.Text{Placement: types.Placement{Mirror: true}}
	pkg := &types.BoardPackage{Placement: types.Placement{Angle: types.DegToAngle(30)}}
	pin := &types.SymbolPin{Orientation: types.OrientationUp}
	arc := &types.Arc{From: c(1, 0), To: c(0, 1)}
	dim := &types.Dimension{P0: c(0, 0), P1: c(10, 0), LabelDistance: 4}
	sel := types.NewSelection(
		types.Ref(types.KindText, add(t, doc, text)),
		types.Ref(types.KindText, add(t, doc, mirrored)),
		types.Ref(types.KindBoardPackage, add(t, doc, pkg)),
		types.Ref(types.KindSymbolPin, add(t, doc, pin)),
		types.Ref(types.KindArc, add(t, doc, arc)),
		types.Ref(types.KindDimension, add(t, doc, dim)),
	)
	e := NewEngine(doc)

	require.NoError(t, e.Apply(sel, c(0, 0), Rotate90))
	assert.Equal(t, types.DegToAngle(270), text.Placement.GetAngle())
	assert.Equal(t, types.DegToAngle(90), mirrored.Placement.GetAngle())
	assert.Equal(t, types.DegToAngle(30)-types.DegToAngle(90)+types.AngleFullTurn, pkg.Placement.GetAngle())
	assert.False(t, pkg.Flip)
	assert.Equal(t, types.OrientationRight, pin.Orientation)
	assert.Equal(t, c(0, 0), dim.P0, "rotating a dimension body leaves it alone")
	assert.Equal(t, int64(4), dim.LabelDistance)

	require.NoError(t, e.Apply(sel, c(0, 0), Mirror))
	assert.True(t, text.Placement.Mirror)
	assert.False(t, mirrored.Placement.Mirror)
	assert.Equal(t, types.DegToAngle(270), text.Placement.GetAngle(), "mirror keeps the stored angle")
	assert.True(t, pkg.Flip)
	assert.Equal(t, types.DegToAngle(90)-types.DegToAngle(30), pkg.Placement.GetAngle())
	assert.Equal(t, types.OrientationLeft, pin.Orientation)
	assert.Equal(t, c(-1, 0), arc.From)
	assert.Equal(t, c(0, -1), arc.To)
	assert.Equal(t, c(10, 0), dim.P0)
	assert.Equal(t, c(0, 0), dim.P1)
	assert.Equal(t, int64(-4), dim.LabelDistance)
}

func TestApply_TrackLayerSwap(t *testing.T) {
	tests := []struct {
		name        string
		layer       int
		first, back int
	}{
		{"top", types.LayerTopCopper, types.LayerBottomCopper, types.LayerTopCopper},
		{"bottom", types.LayerBottomCopper, types.LayerTopCopper, types.LayerBottomCopper},
		{"inner", -1, -1, -1},
		{"silkscreen", types.LayerTopSilkscreen, types.LayerTopSilkscreen, types.LayerTopSilkscreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New()
			track := &types.Track{Layer: tt.layer}
			sel := types.NewSelection(types.Ref(types.KindTrack, add(t, doc, track)))
			e := NewEngine(doc)

			require.NoError(t, e.Apply(sel, c(0, 0), Mirror))
			assert.Equal(t, tt.first, track.Layer)
			require.NoError(t, e.Apply(sel, c(0, 0), Mirror))
			assert.Equal(t, tt.back, track.Layer)

			require.NoError(t, e.Apply(sel, c(0, 0), Rotate90))
			assert.Equal(t, tt.back, track.Layer, "rotation keeps the layer")
		})
	}
}

func TestApply_BatchesPackageExpansion(t *testing.T) {
	doc := document.New()
	sel := types.NewSelection()
	want := make([]uuid.UUID, 0, 10)
	for i := 0; i < 10; i++ {
		id := add(t, doc, &types.BoardPackage{Placement: types.Placement{Shift: c(int64(i), 0)}})
		sel.Add(types.Ref(types.KindBoardPackage, id))
		want = append(want, id)
	}
	sel.Add(types.Ref(types.KindJunction, add(t, doc, &types.Junction{})))

	var calls [][]uuid.UUID
	e := NewEngine(doc, WithBoardExpander(types.BoardExpanderFunc(func(ids []uuid.UUID) {
		calls = append(calls, ids)
	})))

	require.NoError(t, e.Apply(sel, c(0, 0), Mirror))
	require.Len(t, calls, 1)
	assert.Equal(t, want, calls[0])

	require.NoError(t, e.Apply(sel, c(0, 0), Rotate90))
	assert.Len(t, calls, 1, "rotation does not flip packages")
}

type placerFunc func(*types.SchematicSymbol)

func (f placerFunc) ApplyPlacement(s *types.SchematicSymbol) { f(s) }

func TestApply_SymbolPlacementAndCommit(t *testing.T) {
	hook := &hookCounter{}
	doc := document.New(document.WithChangeHook(hook))
	sym := &types.SchematicSymbol{Placement: types.Placement{Shift: c(4, 0)}}
	sel := types.NewSelection(types.Ref(types.KindSchematicSymbol, add(t, doc, sym)))

	var placed []types.Placement
	e := NewEngine(doc, WithSymbolPlacer(placerFunc(func(s *types.SchematicSymbol) {
		placed = append(placed, s.Placement)
	})))

	require.NoError(t, e.Apply(sel, c(0, 0), Mirror))
	require.Len(t, placed, 1)
	assert.Equal(t, c(-4, 0), placed[0].Shift)
	assert.True(t, placed[0].Mirror)
	assert.Equal(t, 1, hook.n)
}

func TestApply_SkipsStaleReferences(t *testing.T) {
	hook := &hookCounter{}
	doc := document.New(document.WithChangeHook(hook))
	j := &types.Junction{Position: c(2, 0)}
	sel := types.NewSelection(
		types.Ref(types.KindHole, uuid.New()),
		types.Ref(types.KindJunction, add(t, doc, j)),
	)

	err := NewEngine(doc).Apply(sel, c(0, 0), Mirror)
	assert.ErrorIs(t, err, types.ErrStaleReference)
	assert.Equal(t, c(-2, 0), j.Position)
	assert.Equal(t, 1, hook.n)
}

func TestApply_NoCommitWithoutChanges(t *testing.T) {
	tests := []struct {
		name string
		sel  *types.Selection
	}{
		{"empty selection", types.NewSelection()},
		{"all stale", types.NewSelection(
			types.Ref(types.KindHole, uuid.New()),
			types.Ref(types.KindJunction, uuid.New()),
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := &hookCounter{}
			doc := document.New(document.WithChangeHook(hook))
			_ = NewEngine(doc).Apply(tt.sel, c(0, 0), Mirror)
			assert.Equal(t, 0, hook.n)
			assert.False(t, doc.NeedsSave())
		})
	}
}

func TestApply_MirrorTogglesOnlyArcVertices(t *testing.T) {
	doc := document.New()
	poly := &types.Polygon{Vertices: []types.PolygonVertex{
		{Position: c(0, 0)},
		{Position: c(4, 0), Type: types.VertexArc, ArcCenter: c(2, 2)},
		{Position: c(4, 4)},
	}}
	id := add(t, doc, poly)
	e := NewEngine(doc)

	require.NoError(t, e.Apply(types.NewSelection(types.Ref(types.KindPolygon, id)), c(0, 0), Mirror))
	assert.False(t, poly.Vertices[0].ArcReverse)
	assert.True(t, poly.Vertices[1].ArcReverse)
	assert.False(t, poly.Vertices[2].ArcReverse)
	assert.Equal(t, c(-2, 2), poly.Vertices[1].ArcCenter)

	require.NoError(t, e.Apply(types.NewSelection(types.VertexRef(types.KindPolygonArcCenter, id, 0)), c(0, 0), Mirror))
	assert.False(t, poly.Vertices[0].ArcReverse, "line vertices never carry a winding")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "rotate", Rotate90.String())
	assert.Equal(t, "mirror", Mirror.String())
	assert.Equal(t, "invalid", Mode(9).String())
}
