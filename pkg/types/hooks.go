package types

import "github.com/google/uuid"

// ChangeHook is told when the document has been modified. The surrounding
// application marks the document dirty and rebuilds derived state.
type ChangeHook interface {
	NotifyChanged()
}

// ChangeHookFunc adapts a function to ChangeHook.
type ChangeHookFunc func()

// NotifyChanged calls f.
func (f ChangeHookFunc) NotifyChanged() { f() }

// BoardExpander recomputes the derived layout of flipped or moved packages.
// Transforms call it at most once per operation.
type BoardExpander interface {
	ExpandPackages(ids []uuid.UUID)
}

// BoardExpanderFunc adapts a function to BoardExpander.
type BoardExpanderFunc func(ids []uuid.UUID)

// ExpandPackages calls f.
func (f BoardExpanderFunc) ExpandPackages(ids []uuid.UUID) { f(ids) }

// SymbolPlacer re-applies a schematic symbol's placement to its drawn
// geometry after the placement changed.
type SymbolPlacer interface {
	ApplyPlacement(sym *SchematicSymbol)
}
