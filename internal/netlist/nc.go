// Package netlist edits the connection maps of components reached through
// the schematic symbols of a selection.
package netlist

import (
	"errors"

	"github.com/rotisserie/eris"

	"github.com/mesh-intelligence/layoutcore/internal/document"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// Op is a not-connected edit.
type Op int

// Ops.
const (
	// SetAllNC marks every unconnected pin as explicitly not connected.
	SetAllNC Op = iota
	// ClearAllNC removes the explicit not-connected markers.
	ClearAllNC
)

func (o Op) String() string {
	switch o {
	case SetAllNC:
		return "set"
	case ClearAllNC:
		return "clear"
	}
	return "invalid"
}

// ParseOp maps "set" and "clear" to their Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "set":
		return SetAllNC, nil
	case "clear":
		return ClearAllNC, nil
	}
	return 0, eris.Errorf("unknown nc op %q, want set or clear", s)
}

// pinEdit is one connection entry an op would add or remove.
type pinEdit struct {
	comp *types.Component
	path types.PinPath
}

// plan walks the selected symbols and returns the entries op would touch.
// Symbols whose component or gate no longer resolves are skipped and
// reported.
func plan(doc *document.Document, sel *types.Selection, op Op) ([]pinEdit, error) {
	var (
		edits []pinEdit
		errs  []error
	)
	for _, ref := range sel.Refs() {
		if ref.Kind != types.KindSchematicSymbol {
			continue
		}
		sym, err := doc.SchematicSymbol(ref.ID)
		if err != nil {
			errs = append(errs, eris.Wrapf(types.ErrStaleReference, "%s: %v", ref, err))
			continue
		}
		comp, err := doc.Block.Component(sym.ComponentID)
		if err != nil {
			errs = append(errs, eris.Wrapf(types.ErrStaleReference, "%s: component %s: %v", ref, sym.ComponentID, err))
			continue
		}
		gate, err := comp.Gate(sym.GateID)
		if err != nil {
			errs = append(errs, eris.Wrapf(types.ErrStaleReference, "%s: gate %s: %v", ref, sym.GateID, err))
			continue
		}
		for _, pin := range gate.Pins {
			path := types.PinPath{Gate: gate.ID, Pin: pin.ID}
			conn, ok := comp.Connections[path]
			switch op {
			case SetAllNC:
				if !ok {
					edits = append(edits, pinEdit{comp, path})
				}
			case ClearAllNC:
				if ok && conn.IsNC() {
					edits = append(edits, pinEdit{comp, path})
				}
			}
		}
	}
	return edits, errors.Join(errs...)
}

// CanApply reports whether op would change at least one pin of the selected
// symbols.
func CanApply(doc *document.Document, sel *types.Selection, op Op) bool {
	edits, _ := plan(doc, sel, op)
	return len(edits) > 0
}

// Apply performs op on every pin of the selected symbols' gates and commits
// once. It returns the number of connection entries added or removed.
// Stale symbols are skipped and reported in the error.
func Apply(doc *document.Document, sel *types.Selection, op Op) (int, error) {
	edits, err := plan(doc, sel, op)
	if err != nil {
		logger := doc.Logger()
		logger.Warn().Err(err).Str("op", op.String()).Msg("skipping unresolved symbols")
	}
	for _, e := range edits {
		switch op {
		case SetAllNC:
			if e.comp.Connections == nil {
				e.comp.Connections = make(map[types.PinPath]types.Connection)
			}
			e.comp.Connections[e.path] = types.Connection{}
		case ClearAllNC:
			delete(e.comp.Connections, e.path)
		}
	}
	doc.Commit()
	return len(edits), err
}
