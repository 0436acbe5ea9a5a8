package types

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// NoVertex marks a reference that addresses a whole object.
const NoVertex = -1

// ObjectRef names an object by kind and id, plus an optional sub-element
// index for polygon vertices and dimension endpoints. Refs never hold
// pointers; a ref to a deleted object simply fails to resolve.
type ObjectRef struct {
	Kind   ObjectKind
	ID     uuid.UUID
	Vertex int
}

// Ref builds a whole-object reference.
func Ref(kind ObjectKind, id uuid.UUID) ObjectRef {
	return ObjectRef{Kind: kind, ID: id, Vertex: NoVertex}
}

// VertexRef builds a reference to a sub-element.
func VertexRef(kind ObjectKind, id uuid.UUID, vertex int) ObjectRef {
	return ObjectRef{Kind: kind, ID: id, Vertex: vertex}
}

// HasVertex reports whether the ref addresses a sub-element.
func (r ObjectRef) HasVertex() bool {
	return r.Vertex >= 0
}

// String renders the ref as kind:uuid[:vertex].
func (r ObjectRef) String() string {
	s := r.Kind.String() + ":" + r.ID.String()
	if r.HasVertex() {
		s += ":" + strconv.Itoa(r.Vertex)
	}
	return s
}

// ParseRef parses the kind:uuid[:vertex] form produced by String.
func ParseRef(s string) (ObjectRef, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ObjectRef{}, eris.Wrapf(ErrInvalidRef, "%q", s)
	}
	kind, err := ParseObjectKind(parts[0])
	if err != nil {
		return ObjectRef{}, err
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return ObjectRef{}, eris.Wrapf(ErrInvalidRef, "%q: %v", s, err)
	}
	ref := Ref(kind, id)
	if len(parts) == 3 {
		v, err := strconv.Atoi(parts[2])
		if err != nil || v < 0 {
			return ObjectRef{}, eris.Wrapf(ErrInvalidRef, "%q: bad vertex", s)
		}
		ref.Vertex = v
	}
	return ref, nil
}

// Selection is an ordered set of object references. The zero value is an
// empty selection ready to use.
type Selection struct {
	refs  []ObjectRef
	index map[ObjectRef]struct{}
}

// NewSelection returns a selection holding refs in order, duplicates dropped.
func NewSelection(refs ...ObjectRef) *Selection {
	s := &Selection{}
	for _, r := range refs {
		s.Add(r)
	}
	return s
}

// Add appends r unless it is already selected. It reports whether r was added.
func (s *Selection) Add(r ObjectRef) bool {
	if s.index == nil {
		s.index = make(map[ObjectRef]struct{})
	}
	if _, ok := s.index[r]; ok {
		return false
	}
	s.index[r] = struct{}{}
	s.refs = append(s.refs, r)
	return true
}

// Remove drops r, keeping the order of the rest.
func (s *Selection) Remove(r ObjectRef) bool {
	if _, ok := s.index[r]; !ok {
		return false
	}
	delete(s.index, r)
	for i, x := range s.refs {
		if x == r {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether r is selected.
func (s *Selection) Contains(r ObjectRef) bool {
	_, ok := s.index[r]
	return ok
}

// Refs returns a copy of the selected refs in order.
func (s *Selection) Refs() []ObjectRef {
	out := make([]ObjectRef, len(s.refs))
	copy(out, s.refs)
	return out
}

// Len returns the number of selected refs.
func (s *Selection) Len() int {
	return len(s.refs)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.refs = nil
	s.index = nil
}
