package types

// Layer is one entry of a layer catalog.
type Layer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Board layer ids. Inner copper layers count down from -1.
const (
	LayerTopNotes      = 200
	LayerOutline       = 100
	LayerTopSilkscreen = 20
	LayerTopMask       = 10
	LayerTopCopper     = 0
	LayerBottomCopper  = -100
	LayerBottomMask    = -110
	LayerBottomSilk    = -120
	LayerBottomNotes   = -200
)

// LayerProvider supplies the ordered layer catalog of a document.
type LayerProvider interface {
	Layers() []Layer
}

// LayerCatalog is a fixed LayerProvider.
type LayerCatalog []Layer

// Layers returns a copy of the catalog.
func (c LayerCatalog) Layers() []Layer {
	out := make([]Layer, len(c))
	copy(out, c)
	return out
}

// DefaultBoardLayers is the catalog used when a document has none configured.
var DefaultBoardLayers = LayerCatalog{
	{ID: LayerTopNotes, Name: "Top Notes"},
	{ID: LayerOutline, Name: "Outline"},
	{ID: LayerTopSilkscreen, Name: "Top Silkscreen"},
	{ID: LayerTopMask, Name: "Top Mask"},
	{ID: LayerTopCopper, Name: "Top Copper"},
	{ID: LayerBottomCopper, Name: "Bottom Copper"},
	{ID: LayerBottomMask, Name: "Bottom Mask"},
	{ID: LayerBottomSilk, Name: "Bottom Silkscreen"},
	{ID: LayerBottomNotes, Name: "Bottom Notes"},
}
