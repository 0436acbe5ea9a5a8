package document

import (
	"github.com/google/uuid"
)

// Table holds the objects of one kind keyed by id. Iteration follows
// insertion order so that documents serialize deterministically.
type Table[T any] struct {
	rows  map[uuid.UUID]*T
	order []uuid.UUID
}

// NewTable returns an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[uuid.UUID]*T)}
}

// Get returns the object with the given id.
func (t *Table[T]) Get(id uuid.UUID) (*T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// Has reports whether id is present.
func (t *Table[T]) Has(id uuid.UUID) bool {
	_, ok := t.rows[id]
	return ok
}

// Insert stores v under id. It reports false if id is already taken.
func (t *Table[T]) Insert(id uuid.UUID, v *T) bool {
	if _, ok := t.rows[id]; ok {
		return false
	}
	t.rows[id] = v
	t.order = append(t.order, id)
	return true
}

// Delete removes id, keeping the order of the remaining rows.
func (t *Table[T]) Delete(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, x := range t.order {
		if x == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the ids in insertion order.
func (t *Table[T]) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	return len(t.order)
}

// Each calls fn for every row in insertion order.
func (t *Table[T]) Each(fn func(id uuid.UUID, v *T)) {
	for _, id := range t.order {
		fn(id, t.rows[id])
	}
}
