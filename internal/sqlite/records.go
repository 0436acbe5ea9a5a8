package sqlite

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// blockKind tags the single block record of a document file.
const blockKind = "block"

// record is one line of document.jsonl and one row of the entities table.
type record struct {
	Kind string          `json:"kind"`
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// encodeDocument flattens doc into records, kinds in declaration order and
// objects in insertion order. The block, if any, comes last.
func encodeDocument(doc *document.Document) ([]record, error) {
	var out []record
	for _, kind := range types.ObjectKinds() {
		for _, id := range doc.IDs(kind) {
			obj, err := doc.Object(kind, id)
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(obj)
			if err != nil {
				return nil, eris.Wrapf(err, "encoding %s %s", kind, id)
			}
			out = append(out, record{Kind: kind.String(), ID: id.String(), Data: data})
		}
	}
	if doc.Block != nil {
		data, err := json.Marshal(doc.Block)
		if err != nil {
			return nil, eris.Wrap(err, "encoding block")
		}
		out = append(out, record{Kind: blockKind, ID: doc.Block.ID.String(), Data: data})
	}
	return out, nil
}

// decodeRecord turns an entity record into its object. The record id wins
// over any id inside the data.
func decodeRecord(rec record) (any, error) {
	kind, err := types.ParseObjectKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, eris.Wrapf(types.ErrInvalidID, "%s %q", rec.Kind, rec.ID)
	}
	obj, err := document.NewObject(kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rec.Data, obj); err != nil {
		return nil, eris.Wrapf(err, "decoding %s %s", kind, id)
	}
	setID(obj, id)
	return obj, nil
}

func setID(obj any, id uuid.UUID) {
	switch o := obj.(type) {
	case *types.Junction:
		o.ID = id
	case *types.Hole:
		o.ID = id
	case *types.Line:
		o.ID = id
	case *types.Arc:
		o.ID = id
	case *types.Text:
		o.ID = id
	case *types.Dimension:
		o.ID = id
	case *types.Polygon:
		o.ID = id
	case *types.Keepout:
		o.ID = id
	case *types.SymbolPin:
		o.ID = id
	case *types.SchematicSymbol:
		o.ID = id
	case *types.BoardPackage:
		o.ID = id
	case *types.Pad:
		o.ID = id
	case *types.BoardHole:
		o.ID = id
	case *types.Track:
		o.ID = id
	case *types.Shape:
		o.ID = id
	case *types.NetLabel:
		o.ID = id
	case *types.BusLabel:
		o.ID = id
	case *types.PowerSymbol:
		o.ID = id
	case *types.BusRipper:
		o.ID = id
	}
}

func decodeBlock(data []byte) (*types.Block, error) {
	var b types.Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, eris.Wrap(err, "decoding block")
	}
	if b.Components == nil {
		b.Components = make(map[uuid.UUID]*types.Component)
	}
	if b.Nets == nil {
		b.Nets = make(map[uuid.UUID]*types.Net)
	}
	return &b, nil
}
