package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

func attach(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	for _, name := range []string{databaseFile, documentJSONL} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")

	_, err := b.LoadDocument()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.SaveDocument(document.New()), types.ErrStoreDetached)
	_, err = b.IDs(types.KindHole)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.Counts()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_EmptyDocument(t *testing.T) {
	b := attach(t, t.TempDir())
	doc, err := b.LoadDocument()
	require.NoError(t, err)
	assert.Zero(t, doc.Len())
	assert.Nil(t, doc.Block)
	assert.False(t, doc.NeedsSave())
}

func buildDocument(t *testing.T) (*document.Document, uuid.UUID, types.PinPath) {
	t.Helper()
	gate := &types.Gate{ID: uuid.New(), Name: "A", Pins: []types.UnitPin{{ID: uuid.New(), Name: "1"}}}
	comp := &types.Component{
		ID:          uuid.New(),
		Refdes:      "R1",
		Gates:       map[uuid.UUID]*types.Gate{gate.ID: gate},
		Connections: map[types.PinPath]types.Connection{},
	}
	path := types.PinPath{Gate: gate.ID, Pin: gate.Pins[0].ID}
	comp.Connections[path] = types.Connection{}
	block := types.NewBlock(uuid.New())
	block.Components[comp.ID] = comp

	doc := document.New(document.WithBlock(block))
	objs := []any{
		&types.Junction{Position: types.Coord{X: 1, Y: 2}},
		&types.Hole{Diameter: 800, Shape: types.HoleShapeSlot, Length: 2000, Plated: true},
		&types.Text{Text: "hello", Placement: types.Placement{Angle: 16384, Mirror: true}},
		&types.Dimension{P0: types.Coord{X: 0}, P1: types.Coord{X: 100}, LabelDistance: -5, Mode: types.DimensionVertical},
		&types.Polygon{Layer: types.LayerTopCopper, Usage: &types.PolygonUsage{Type: types.UsagePlane, ID: uuid.New()},
			Vertices: []types.PolygonVertex{{Position: types.Coord{X: 1}}, {Type: types.VertexArc, ArcReverse: true}}},
		&types.Track{Layer: types.LayerBottomCopper, Width: 250},
		&types.SchematicSymbol{ComponentID: comp.ID, GateID: gate.ID, PinDisplayMode: types.PinDisplayAll},
		&types.BusRipper{Orientation: types.OrientationLeft},
	}
	var symID uuid.UUID
	for _, obj := range objs {
		id, err := doc.Add(obj)
		require.NoError(t, err)
		if _, ok := obj.(*types.SchematicSymbol); ok {
			symID = id
		}
	}
	return doc, symID, path
}

func TestBackend_SaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc, symID, path := buildDocument(t)
	doc.Commit()
	require.True(t, doc.NeedsSave())

	b := attach(t, dir)
	require.NoError(t, b.SaveDocument(doc))
	assert.False(t, doc.NeedsSave())
	require.NoError(t, b.Detach())

	b2 := attach(t, dir)
	loaded, err := b2.LoadDocument()
	require.NoError(t, err)

	for _, kind := range types.ObjectKinds() {
		require.Equal(t, doc.IDs(kind), loaded.IDs(kind), kind.String())
		for _, id := range doc.IDs(kind) {
			want, _ := doc.Object(kind, id)
			got, err := loaded.Object(kind, id)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s %s", kind, id)
		}
	}

	require.NotNil(t, loaded.Block)
	assert.Equal(t, doc.Block.ID, loaded.Block.ID)
	sym, err := loaded.SchematicSymbol(symID)
	require.NoError(t, err)
	comp, err := loaded.Block.Component(sym.ComponentID)
	require.NoError(t, err)
	assert.Equal(t, "R1", comp.Refdes)
	conn, ok := comp.Connections[path]
	require.True(t, ok)
	assert.True(t, conn.IsNC())
}

func TestBackend_SaveWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	doc, _, _ := buildDocument(t)
	b := attach(t, dir)
	require.NoError(t, b.SaveDocument(doc))

	data, err := os.ReadFile(filepath.Join(dir, documentJSONL))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, doc.Len()+1)
	assert.Contains(t, lines[len(lines)-1], `"kind":"block"`)
	assert.Contains(t, string(data), `"hello"`)
}

func TestBackend_IDsAndCounts(t *testing.T) {
	b := attach(t, t.TempDir())
	doc := document.New()
	var holes []uuid.UUID
	for i := 0; i < 3; i++ {
		id, err := doc.Add(&types.Hole{Diameter: int64(i)})
		require.NoError(t, err)
		holes = append(holes, id)
	}
	_, err := doc.Add(&types.Junction{})
	require.NoError(t, err)
	require.NoError(t, b.SaveDocument(doc))

	ids, err := b.IDs(types.KindHole)
	require.NoError(t, err)
	assert.Equal(t, holes, ids)

	counts, err := b.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[types.ObjectKind]int{types.KindHole: 3, types.KindJunction: 1}, counts)
}

func TestBackend_SaveReplacesDeleted(t *testing.T) {
	dir := t.TempDir()
	b := attach(t, dir)
	doc := document.New()
	id, err := doc.Add(&types.Junction{})
	require.NoError(t, err)
	require.NoError(t, b.SaveDocument(doc))

	require.NoError(t, doc.Delete(types.KindJunction, id))
	require.NoError(t, b.SaveDocument(doc))

	loaded, err := b.LoadDocument()
	require.NoError(t, err)
	assert.Zero(t, loaded.Len())
}

func TestBackend_LoadSkipsUndecodableRecords(t *testing.T) {
	dir := t.TempDir()
	good := uuid.New()
	content := `{"kind":"junction","id":"` + good.String() + `","data":{}}
{"kind":"hole","id":"not-a-uuid","data":{}}
{"kind":"text","id":"` + uuid.NewString() + `","data":{"text":42}}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, documentJSONL), []byte(content), 0o644))

	b := attach(t, dir)
	doc, err := b.LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
	assert.True(t, doc.Junctions.Has(good))
}
