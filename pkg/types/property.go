package types

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
)

// PropertyID identifies an editable field of an object.
type PropertyID int

// Property identifiers.
const (
	PropertyInvalid PropertyID = iota
	PropertyWidth
	PropertyLayer
	PropertySize
	PropertyText
	PropertyFont
	PropertyShape
	PropertyDiameter
	PropertyLength
	PropertyMode
	PropertyPlated
	PropertyParameterClass
	PropertyKeepoutClass
	PropertyUsage
	PropertyPositionX
	PropertyPositionY
	PropertyAngle
	PropertyMirror
)

var propertyNames = map[PropertyID]string{
	PropertyWidth:          "width",
	PropertyLayer:          "layer",
	PropertySize:           "size",
	PropertyText:           "text",
	PropertyFont:           "font",
	PropertyShape:          "shape",
	PropertyDiameter:       "diameter",
	PropertyLength:         "length",
	PropertyMode:           "mode",
	PropertyPlated:         "plated",
	PropertyParameterClass: "parameter_class",
	PropertyKeepoutClass:   "keepout_class",
	PropertyUsage:          "usage",
	PropertyPositionX:      "position_x",
	PropertyPositionY:      "position_y",
	PropertyAngle:          "angle",
	PropertyMirror:         "mirror",
}

var propertiesByName = func() map[string]PropertyID {
	m := make(map[string]PropertyID, len(propertyNames))
	for p, n := range propertyNames {
		m[n] = p
	}
	return m
}()

func (p PropertyID) String() string {
	if s, ok := propertyNames[p]; ok {
		return s
	}
	return "invalid"
}

// PropertyIDs returns every valid property in declaration order.
func PropertyIDs() []PropertyID {
	ids := make([]PropertyID, 0, len(propertyNames))
	for p := PropertyWidth; p <= PropertyMirror; p++ {
		ids = append(ids, p)
	}
	return ids
}

// ParsePropertyID maps a snake_case name to its property.
func ParsePropertyID(name string) (PropertyID, error) {
	if p, ok := propertiesByName[name]; ok {
		return p, nil
	}
	return PropertyInvalid, eris.Wrapf(ErrUnknownProperty, "%q%s", name, suggest(name, propertiesByName))
}

// ValueKind tags the variant held by a Value.
type ValueKind int

// Value kinds.
const (
	ValueKindBool ValueKind = iota + 1
	ValueKindInt
	ValueKindText
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindBool:
		return "bool"
	case ValueKindInt:
		return "int"
	case ValueKindText:
		return "text"
	}
	return "invalid"
}

// Value is a property value. The set of implementations is closed: BoolValue,
// IntValue and TextValue.
type Value interface {
	Kind() ValueKind
	String() string
	value()
}

// BoolValue is a boolean property value.
type BoolValue bool

// IntValue is an integer property value.
type IntValue int64

// TextValue is a string property value.
type TextValue string

func (BoolValue) Kind() ValueKind { return ValueKindBool }
func (IntValue) Kind() ValueKind  { return ValueKindInt }
func (TextValue) Kind() ValueKind { return ValueKindText }

func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }
func (v IntValue) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v TextValue) String() string { return string(v) }

func (BoolValue) value() {}
func (IntValue) value()  {}
func (TextValue) value() {}

// AsBool returns v as a bool or ErrTypeMismatch.
func AsBool(v Value) (bool, error) {
	if b, ok := v.(BoolValue); ok {
		return bool(b), nil
	}
	return false, mismatch(ValueKindBool, v)
}

// AsInt returns v as an int64 or ErrTypeMismatch.
func AsInt(v Value) (int64, error) {
	if i, ok := v.(IntValue); ok {
		return int64(i), nil
	}
	return 0, mismatch(ValueKindInt, v)
}

// AsText returns v as a string or ErrTypeMismatch.
func AsText(v Value) (string, error) {
	if s, ok := v.(TextValue); ok {
		return string(s), nil
	}
	return "", mismatch(ValueKindText, v)
}

func mismatch(want ValueKind, got Value) error {
	if got == nil {
		return eris.Wrapf(ErrTypeMismatch, "want %s, got nil", want)
	}
	return eris.Wrapf(ErrTypeMismatch, "want %s, got %s", want, got.Kind())
}

// ParseValue parses s into a value of the given kind.
func ParseValue(kind ValueKind, s string) (Value, error) {
	switch kind {
	case ValueKindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, eris.Wrapf(ErrTypeMismatch, "parse bool %q", s)
		}
		return BoolValue(b), nil
	case ValueKindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, eris.Wrapf(ErrTypeMismatch, "parse int %q", s)
		}
		return IntValue(i), nil
	case ValueKindText:
		return TextValue(s), nil
	}
	return nil, eris.Wrap(ErrTypeMismatch, fmt.Sprintf("no value kind %d", kind))
}

// PropertyMeta describes whether a property can currently be set and, for
// layer properties, which layers it may take.
type PropertyMeta struct {
	Settable bool
	Layers   []Layer
}

// DefaultPropertyMeta is the metadata of a property with no special rules.
func DefaultPropertyMeta() PropertyMeta {
	return PropertyMeta{Settable: true}
}
